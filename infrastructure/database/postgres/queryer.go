package postgres

import (
	"context"
	"database/sql"
)

//go:generate mockgen -source=queryer.go -destination=mocks/queryer_mock.go -package=mocks

// Queryer é satisfeito tanto por *sql.DB quanto por *sql.Tx
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
