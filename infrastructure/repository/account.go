package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/pkg/utils"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/vfg2006/ads-dashboard-api/infrastructure/repository AccountRepository,CredentialStore,SnapshotRepository

const (
	accountsTable  = "accounts a"
	accountColumns = "a.id, a.external_id, a.name, COALESCE(a.currency, ''), COALESCE(a.business_id, ''), COALESCE(bm.name, ''), a.status, a.connected_at"
)

var ErrAccountNotFound = errors.New("account not found")

type AccountRepository interface {
	GetAccountByID(ctx context.Context, accountID string) (*domain.AdAccount, error)
	GetAccountByExternalID(ctx context.Context, externalID string) (*domain.AdAccount, error)
	ListAccounts(ctx context.Context, availableStatus []domain.AdAccountStatus) ([]*domain.AdAccount, error)
	SaveOrUpdate(ctx context.Context, option domain.AdAccountOption) (*domain.AdAccount, error)
	UpdateStatus(ctx context.Context, externalID string, status domain.AdAccountStatus) error
}

type accountRepository struct {
	conn postgres.Queryer
}

func NewAccountRepository(conn postgres.Queryer) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

func (a *accountRepository) GetAccountByExternalID(ctx context.Context, externalID string) (*domain.AdAccount, error) {
	return a.getAccount(ctx, squirrel.Eq{"a.external_id": domain.NormalizeAdAccountID(externalID)})
}

func (a *accountRepository) GetAccountByID(ctx context.Context, accountID string) (*domain.AdAccount, error) {
	return a.getAccount(ctx, squirrel.Eq{"a.id": accountID})
}

func selectAccounts() squirrel.SelectBuilder {
	return squirrel.
		Select(accountColumns).
		From(accountsTable).
		LeftJoin("business_manager bm ON a.business_id = bm.id").
		PlaceholderFormat(squirrel.Dollar)
}

func (a *accountRepository) getAccount(ctx context.Context, whereClause squirrel.Eq) (*domain.AdAccount, error) {
	accountsSQL, accountsArgs, err := selectAccounts().Where(whereClause).ToSql()
	if err != nil {
		return nil, err
	}

	acc, err := scanAccount(a.conn.QueryRow(ctx, accountsSQL, accountsArgs...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return acc, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*domain.AdAccount, error) {
	acc := &domain.AdAccount{}

	if err := row.Scan(
		&acc.ID,
		&acc.ExternalID,
		&acc.Name,
		&acc.Currency,
		&acc.BusinessID,
		&acc.BusinessName,
		&acc.Status,
		&acc.ConnectedAt,
	); err != nil {
		return nil, err
	}

	return acc, nil
}

func buildListAccountsQuery(availableStatus []domain.AdAccountStatus) (string, []interface{}, error) {
	queryBuilder := selectAccounts().OrderBy("a.name ASC")

	if len(availableStatus) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"a.status": availableStatus})
	}

	return queryBuilder.ToSql()
}

func (a *accountRepository) ListAccounts(ctx context.Context, availableStatus []domain.AdAccountStatus) ([]*domain.AdAccount, error) {
	accountsSQL, accountsArgs, err := buildListAccountsQuery(availableStatus)
	if err != nil {
		return nil, err
	}

	rows, err := a.conn.Query(ctx, accountsSQL, accountsArgs...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.AdAccount, 0)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao deserializar a conta: %w", err)
		}
		accounts = append(accounts, acc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return accounts, nil
}

// SaveOrUpdate registra a conta escolhida pelo usuário. Se já existir, só o
// nome, a moeda e o status são atualizados e o id interno é mantido.
func (a *accountRepository) SaveOrUpdate(ctx context.Context, option domain.AdAccountOption) (*domain.AdAccount, error) {
	var businessID *string
	if option.BusinessID != "" {
		id, err := a.saveOrUpdateBusinessManager(ctx, option.BusinessID, option.BusinessName)
		if err != nil {
			return nil, err
		}
		businessID = &id
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id da conta: %w", err)
	}

	sqlQuery, args, err := buildUpsertAccountQuery(id, option, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var savedID string
	if err := a.conn.QueryRow(ctx, sqlQuery, args...).Scan(&savedID); err != nil {
		return nil, wrapDatabaseError(err)
	}

	return a.GetAccountByID(ctx, savedID)
}

func buildUpsertAccountQuery(id string, option domain.AdAccountOption, businessID *string) (string, []interface{}, error) {
	return squirrel.StatementBuilder.
		Insert("accounts").
		Columns("id", "external_id", "name", "currency", "business_id", "status").
		Values(
			id,
			domain.NormalizeAdAccountID(option.ID),
			option.Name,
			option.Currency,
			businessID,
			domain.AdAccountStatusActive,
		).
		Suffix(`
			ON CONFLICT (external_id) DO UPDATE SET
				name = EXCLUDED.name,
				currency = EXCLUDED.currency,
				business_id = COALESCE(EXCLUDED.business_id, accounts.business_id),
				status = EXCLUDED.status
			RETURNING id
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (a *accountRepository) saveOrUpdateBusinessManager(ctx context.Context, externalID, name string) (string, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return "", fmt.Errorf("erro ao gerar id do business manager: %w", err)
	}

	sqlQuery, args, err := squirrel.StatementBuilder.
		Insert("business_manager").
		Columns("id", "external_id", "name").
		Values(id, externalID, name).
		Suffix(`
			ON CONFLICT (external_id) DO UPDATE SET
				name = EXCLUDED.name RETURNING id
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build query: %w", err)
	}

	var savedID string
	if err := a.conn.QueryRow(ctx, sqlQuery, args...).Scan(&savedID); err != nil {
		return "", wrapDatabaseError(err)
	}

	return savedID, nil
}

func (a *accountRepository) UpdateStatus(ctx context.Context, externalID string, status domain.AdAccountStatus) error {
	sqlQuery, args, err := squirrel.
		Update("accounts").
		Set("status", status).
		Where(squirrel.Eq{"external_id": domain.NormalizeAdAccountID(externalID)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := a.conn.Exec(ctx, sqlQuery, args...)
	if err != nil {
		return wrapDatabaseError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func wrapDatabaseError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
	}
	return fmt.Errorf("failed to execute query: %w", err)
}
