package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/name-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/name-tracker-api/internal/domain"
)

const reportsTable = "reports r"

//go:generate mockgen -source=report.go -destination=mocks/report.go -package=mocks

type ReportRepository interface {
	GetLatest(kind domain.ReportKind, key string) (*domain.Report, error)
	Save(report *domain.Report) error
	ListKeys(kind domain.ReportKind) ([]string, error)
}

type reportRepository struct {
	conn postgres.Queryer
}

func NewReportRepository(conn *postgres.Connection) ReportRepository {
	return &reportRepository{
		conn: conn,
	}
}

func (r *reportRepository) GetLatest(kind domain.ReportKind, key string) (*domain.Report, error) {
	reportSQL, reportArgs, err := squirrel.
		Select("r.id, r.kind, r.key, r.content, r.generated_at").
		From(reportsTable).
		Where(squirrel.Eq{"r.kind": kind, "r.key": key}).
		OrderBy("r.generated_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(reportSQL, reportArgs...)

	report := &domain.Report{}
	if err := row.Scan(
		&report.ID,
		&report.Kind,
		&report.Key,
		&report.Content,
		&report.GeneratedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return report, nil
}

func (r *reportRepository) Save(report *domain.Report) error {
	// Snapshots são sobrescritos por (kind, key): mantemos apenas a versão
	// mais recente de cada relatório
	query := squirrel.StatementBuilder.
		Insert("reports").
		Columns("id", "kind", "key", "content", "generated_at").
		Values(report.ID, report.Kind, report.Key, report.Content, report.GeneratedAt).
		Suffix(`
			ON CONFLICT (kind, key) DO UPDATE SET
				id = EXCLUDED.id,
				content = EXCLUDED.content,
				generated_at = EXCLUDED.generated_at
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

func (r *reportRepository) ListKeys(kind domain.ReportKind) ([]string, error) {
	keysSQL, keysArgs, err := squirrel.
		Select("r.key").
		From(reportsTable).
		Where(squirrel.Eq{"r.kind": kind}).
		OrderBy("r.key ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(keysSQL, keysArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	keys := make([]string, 0)

	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return keys, nil
}
