package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/traffic-sync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-sync-engine/internal/domain"
)

//go:generate mockgen -source=rollup.go -destination=mocks/rollup_mock.go -package=mocks

type RollupRepository interface {
	AggregateDaily(ctx context.Context, branchID string, date time.Time) ([]domain.RollupStat, error)
}

type rollupRepository struct {
	conn postgres.Queryer
}

func NewRollupRepository(conn postgres.Queryer) RollupRepository {
	return &rollupRepository{
		conn: conn,
	}
}

// AggregateDaily soma as métricas diárias das contas da filial, uma linha por plataforma.
// Plataformas sem métricas no dia retornam zeros.
func (r *rollupRepository) AggregateDaily(ctx context.Context, branchID string, date time.Time) ([]domain.RollupStat, error) {
	day := date.Format(time.DateOnly)

	query, args, err := squirrel.
		Select(
			"a.platform",
			"COALESCE(SUM(ai.spend), 0)",
			"COALESCE(SUM(ai.impressions), 0)",
			"COALESCE(SUM(ai.clicks), 0)",
			"COALESCE(SUM(ai.results), 0)",
			"COUNT(DISTINCT a.id)",
		).
		From("ad_accounts a").
		LeftJoin("ad_insights ai ON ai.account_id = a.id AND ai.date = ?::date", day).
		Where(squirrel.Eq{"a.branch_id": branchID}).
		GroupBy("a.platform").
		OrderBy("a.platform ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError("erro ao consolidar métricas da filial", err)
	}
	defer rows.Close()

	stats := make([]domain.RollupStat, 0)
	for rows.Next() {
		stat, err := scanRollupStat(rows, branchID, date)
		if err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return stats, nil
}

func scanRollupStat(row scanner, branchID string, date time.Time) (domain.RollupStat, error) {
	stat := domain.RollupStat{
		BranchID: branchID,
		Date:     domain.TruncateDay(date),
	}
	var spend decimal.Decimal
	if err := row.Scan(
		&stat.Platform,
		&spend,
		&stat.Impressions,
		&stat.Clicks,
		&stat.Results,
		&stat.AccountsCount,
	); err != nil {
		return domain.RollupStat{}, fmt.Errorf("erro ao escanear consolidação: %w", err)
	}
	stat.Spend = spend
	return stat, nil
}
