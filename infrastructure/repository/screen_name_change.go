package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/name-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/name-tracker-api/internal/domain"
)

const changesTable = "screen_name_changes c"

//go:generate mockgen -source=screen_name_change.go -destination=mocks/screen_name_change.go -package=mocks

type ChangeRepository interface {
	ListByAccount(accountID string) ([]*domain.ScreenNameChange, error)
	ListAll() ([]*domain.ScreenNameChange, error)
	ListSince(since time.Time) ([]*domain.ScreenNameChange, error)
	LatestByAccount(accountID string) (*domain.ScreenNameChange, error)
	SaveBatch(changes []*domain.ScreenNameChange) (int, error)
	ListChangedAccountIDs(since time.Time) ([]string, error)
}

type changeRepository struct {
	conn *postgres.Connection
}

func NewChangeRepository(conn *postgres.Connection) ChangeRepository {
	return &changeRepository{
		conn: conn,
	}
}

func (c *changeRepository) ListByAccount(accountID string) ([]*domain.ScreenNameChange, error) {
	return c.list(squirrel.Eq{"c.account_id": accountID})
}

func (c *changeRepository) ListAll() ([]*domain.ScreenNameChange, error) {
	return c.list(nil)
}

func (c *changeRepository) ListSince(since time.Time) ([]*domain.ScreenNameChange, error) {
	return c.list(squirrel.GtOrEq{"c.observed_at": since})
}

func (c *changeRepository) list(where interface{}) ([]*domain.ScreenNameChange, error) {
	queryBuilder := squirrel.
		Select("c.account_id, c.observed_at, c.previous_name, c.new_name, c.followers_count").
		From(changesTable).
		OrderBy("c.account_id ASC", "c.observed_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	if where != nil {
		queryBuilder = queryBuilder.Where(where)
	}

	changesSQL, changesArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := c.conn.Query(changesSQL, changesArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	changes := make([]*domain.ScreenNameChange, 0)

	for rows.Next() {
		change, err := c.deserializeChange(rows)
		if err != nil {
			return nil, err
		}

		changes = append(changes, change)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	if len(changes) == 0 {
		return nil, nil
	}

	return changes, nil
}

// LatestByAccount retorna a troca mais recente de uma conta. A invariante de
// encadeamento é verificada contra este registro antes de aceitar uma nova
// troca.
func (c *changeRepository) LatestByAccount(accountID string) (*domain.ScreenNameChange, error) {
	changeSQL, changeArgs, err := squirrel.
		Select("c.account_id, c.observed_at, c.previous_name, c.new_name, c.followers_count").
		From(changesTable).
		Where(squirrel.Eq{"c.account_id": accountID}).
		OrderBy("c.observed_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := c.conn.QueryRow(changeSQL, changeArgs...)

	change := &domain.ScreenNameChange{}
	if err := row.Scan(
		&change.AccountID,
		&change.ObservedAt,
		&change.PreviousName,
		&change.NewName,
		&change.FollowersCount,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return change, nil
}

// saveBatchChunkSize limita os parâmetros por statement; o Postgres aceita
// no máximo 65535 por query
const saveBatchChunkSize = 1000

func (c *changeRepository) SaveBatch(changes []*domain.ScreenNameChange) (int, error) {
	if len(changes) == 0 {
		return 0, nil
	}

	inserted := 0

	// Um dataset entra inteiro ou não entra: os chunks compartilham a transação
	err := c.conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
		for start := 0; start < len(changes); start += saveBatchChunkSize {
			end := start + saveBatchChunkSize
			if end > len(changes) {
				end = len(changes)
			}

			n, err := c.saveChunk(tx, changes[start:end])
			if err != nil {
				return err
			}

			inserted += n
		}

		return nil
	})
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return 0, fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return 0, fmt.Errorf("failed to execute query: %w", err)
	}

	return inserted, nil
}

func (c *changeRepository) saveChunk(q postgres.Queryer, changes []*domain.ScreenNameChange) (int, error) {
	query := squirrel.StatementBuilder.
		Insert("screen_name_changes").
		Columns("account_id", "observed_at", "previous_name", "new_name", "followers_count").
		PlaceholderFormat(squirrel.Dollar)

	for _, change := range changes {
		query = query.Values(
			change.AccountID,
			change.ObservedAt,
			change.PreviousName,
			change.NewName,
			change.FollowersCount,
		)
	}

	// Registros já importados são ignorados; a unicidade (account_id,
	// observed_at) é a invariante de ordenação total por conta
	query = query.Suffix(`ON CONFLICT (account_id, observed_at) DO NOTHING`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	result, err := q.Exec(sqlQuery, args...)
	if err != nil {
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error getting rows affected: %w", err)
	}

	return int(rowsAffected), nil
}

func (c *changeRepository) ListChangedAccountIDs(since time.Time) ([]string, error) {
	idsSQL, idsArgs, err := squirrel.
		Select("DISTINCT c.account_id").
		From(changesTable).
		Where(squirrel.GtOrEq{"c.observed_at": since}).
		OrderBy("c.account_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := c.conn.Query(idsSQL, idsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return ids, nil
}

func (c *changeRepository) deserializeChange(rows *sql.Rows) (*domain.ScreenNameChange, error) {
	change := &domain.ScreenNameChange{}

	if err := rows.Scan(
		&change.AccountID,
		&change.ObservedAt,
		&change.PreviousName,
		&change.NewName,
		&change.FollowersCount,
	); err != nil {
		return nil, err
	}

	return change, nil
}
