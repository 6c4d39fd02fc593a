package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/traffic-sync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-sync-engine/internal/domain"
)

//go:generate mockgen -source=account.go -destination=mocks/account_mock.go -package=mocks

const (
	accountsTable   = "ad_accounts a"
	accountsColumns = "a.id, a.external_id, a.name, a.platform, a.timezone, a.currency, a.branch_id, a.status, a.synced_at"
)

type AccountRepository interface {
	GetAccountByID(ctx context.Context, accountID string) (*domain.AdAccount, error)
	ListAccounts(ctx context.Context, availableStatus []domain.AdAccountStatus) ([]*domain.AdAccount, error)
	ListAccountsByBranch(ctx context.Context, branchID string) ([]*domain.AdAccount, error)
	UpdateSyncedAt(ctx context.Context, accountID string, syncedAt time.Time) error
}

type accountRepository struct {
	conn postgres.Queryer
}

func NewAccountRepository(conn postgres.Queryer) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

func (a *accountRepository) GetAccountByID(ctx context.Context, accountID string) (*domain.AdAccount, error) {
	query, args, err := squirrel.
		Select(accountsColumns).
		From(accountsTable).
		Where(squirrel.Eq{"a.id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	acc, err := scanAccount(a.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar conta %s: %w", accountID, err)
	}

	return acc, nil
}

func (a *accountRepository) ListAccounts(ctx context.Context, availableStatus []domain.AdAccountStatus) ([]*domain.AdAccount, error) {
	queryBuilder := squirrel.
		Select(accountsColumns).
		From(accountsTable).
		OrderBy("a.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(availableStatus) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"a.status": availableStatus})
	}

	return a.list(ctx, queryBuilder)
}

func (a *accountRepository) ListAccountsByBranch(ctx context.Context, branchID string) ([]*domain.AdAccount, error) {
	queryBuilder := squirrel.
		Select(accountsColumns).
		From(accountsTable).
		Where(squirrel.Eq{"a.branch_id": branchID}).
		OrderBy("a.platform ASC, a.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	return a.list(ctx, queryBuilder)
}

func (a *accountRepository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]*domain.AdAccount, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := a.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError("erro ao listar contas", err)
	}
	defer rows.Close()

	accounts := make([]*domain.AdAccount, 0)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear conta: %w", err)
		}
		accounts = append(accounts, acc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return accounts, nil
}

func (a *accountRepository) UpdateSyncedAt(ctx context.Context, accountID string, syncedAt time.Time) error {
	query, args, err := squirrel.
		Update("ad_accounts").
		Set("synced_at", syncedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := a.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapDBError("erro ao atualizar synced_at da conta", err)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (*domain.AdAccount, error) {
	acc := &domain.AdAccount{}
	var (
		timezone sql.NullString
		currency sql.NullString
		branchID sql.NullString
		syncedAt sql.NullTime
	)

	if err := row.Scan(
		&acc.ID,
		&acc.ExternalID,
		&acc.Name,
		&acc.Platform,
		&timezone,
		&currency,
		&branchID,
		&acc.Status,
		&syncedAt,
	); err != nil {
		return nil, err
	}

	acc.Timezone = timezone.String
	acc.Currency = currency.String
	if branchID.Valid {
		acc.BranchID = &branchID.String
	}
	if syncedAt.Valid {
		acc.SyncedAt = &syncedAt.Time
	}

	return acc, nil
}

// wrapDBError anexa o código do PostgreSQL quando disponível
func wrapDBError(msg string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%s: erro no banco de dados: %w (código: %s)", msg, err, pqErr.Code)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
