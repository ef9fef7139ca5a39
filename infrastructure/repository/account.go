package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	_ "github.com/lib/pq"
	"github.com/vfg2006/name-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/name-tracker-api/internal/domain"
)

const accountsTable = "accounts a"

//go:generate mockgen -source=account.go -destination=mocks/account.go -package=mocks

type AccountRepository interface {
	GetAccountByID(accountID string) (*domain.Account, error)
	ListAccounts(availableStatus []domain.AccountStatus) ([]*domain.Account, error)
	ListAccountsMap() (map[string]struct{}, error)
	SaveOrUpdate(accounts []*domain.Account) error
	UpdateAccount(account *domain.UpdateAccountRequest) error
}

type accountRepository struct {
	conn postgres.Queryer
}

func NewAccountRepository(conn *postgres.Connection) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

func (a *accountRepository) GetAccountByID(accountID string) (*domain.Account, error) {
	accountsSQL, accountsArgs, err := squirrel.
		Select("a.id, a.current_screen_name, a.followers_count, a.verified, a.protected, a.profile_image_url, a.status, a.notes, a.first_seen_at, a.updated_at").
		From(accountsTable).
		Where(squirrel.Eq{"a.id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := a.conn.QueryRow(accountsSQL, accountsArgs...)

	acc, err := a.deserializeAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return acc, err
}

func (a *accountRepository) deserializeAccount(row *sql.Row) (*domain.Account, error) {
	acc := &domain.Account{}

	if err := row.Scan(
		&acc.ID,
		&acc.CurrentScreenName,
		&acc.FollowersCount,
		&acc.Verified,
		&acc.Protected,
		&acc.ProfileImageURL,
		&acc.Status,
		&acc.Notes,
		&acc.FirstSeenAt,
		&acc.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return acc, nil
}

func (a *accountRepository) ListAccounts(availableStatus []domain.AccountStatus) ([]*domain.Account, error) {
	queryBuilder := squirrel.
		Select("a.id, a.current_screen_name, a.followers_count, a.verified, a.protected, a.profile_image_url, a.status, a.notes, a.first_seen_at, a.updated_at").
		From(accountsTable).
		OrderBy("a.id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(availableStatus) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"a.status": availableStatus})
	}

	accountsSQL, accountsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := a.conn.Query(accountsSQL, accountsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)

	for rows.Next() {
		acc := &domain.Account{}
		if err := rows.Scan(
			&acc.ID,
			&acc.CurrentScreenName,
			&acc.FollowersCount,
			&acc.Verified,
			&acc.Protected,
			&acc.ProfileImageURL,
			&acc.Status,
			&acc.Notes,
			&acc.FirstSeenAt,
			&acc.UpdatedAt,
		); err != nil {
			return nil, err
		}

		accounts = append(accounts, acc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	if len(accounts) == 0 {
		return nil, nil
	}

	return accounts, nil
}

func (r *accountRepository) SaveOrUpdate(accounts []*domain.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	// Cria a query de inserção ou atualização
	query := squirrel.StatementBuilder.
		Insert("accounts").
		Columns("id", "current_screen_name", "followers_count", "verified", "protected", "profile_image_url", "status").
		PlaceholderFormat(squirrel.Dollar)

	// Adiciona os valores de cada account ao batch
	for _, account := range accounts {
		query = query.Values(
			account.ID,
			account.CurrentScreenName,
			account.FollowersCount,
			account.Verified,
			account.Protected,
			account.ProfileImageURL,
			account.Status,
		)
	}

	// Define o comportamento em caso de conflito (atualiza os campos mutáveis;
	// notes é gerido manualmente e nunca sobrescrito pelo import)
	query = query.Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				current_screen_name = EXCLUDED.current_screen_name,
				followers_count = EXCLUDED.followers_count,
				verified = EXCLUDED.verified,
				protected = EXCLUDED.protected,
				profile_image_url = EXCLUDED.profile_image_url,
				status = EXCLUDED.status,
				updated_at = NOW()
		`)

	// Converte a query para SQL
	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	// Executa a query
	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

func (a *accountRepository) UpdateAccount(account *domain.UpdateAccountRequest) error {
	if account.ID == "" {
		return errors.New("ID is required")
	}

	// Constrói a query de atualização
	queryBuilder := squirrel.
		Update("accounts").
		Where(squirrel.Eq{"id": account.ID}).
		Set("updated_at", squirrel.Expr("NOW()")).
		PlaceholderFormat(squirrel.Dollar)

	// Adiciona os campos que foram fornecidos para atualização
	if account.Status != nil {
		queryBuilder = queryBuilder.Set("status", *account.Status)
	}

	if account.Notes != nil {
		queryBuilder = queryBuilder.Set("notes", *account.Notes)
	}

	// Converte a query para SQL
	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	// Executa a query
	result, err := a.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	// Verifica se algum registro foi afetado
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("account not found")
	}

	return nil
}

func (a *accountRepository) ListAccountsMap() (map[string]struct{}, error) {
	// Query simplificada para buscar apenas os IDs
	accountsSQL, accountsArgs, err := squirrel.
		Select("a.id").
		From(accountsTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := a.conn.Query(accountsSQL, accountsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return make(map[string]struct{}, 0), nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]struct{})

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("erro ao deserializar a conta: %w", err)
		}

		accountsMap[id] = struct{}{}
	}

	// Verifica se houve erros durante a iteração
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return accountsMap, nil
}
