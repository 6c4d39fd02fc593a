package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/traffic-sync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-sync-engine/internal/domain"
)

//go:generate mockgen -source=ad_insight.go -destination=mocks/ad_insight_mock.go -package=mocks

const (
	adInsightsTable       = "ad_insights ai"
	adInsightsHourlyTable = "ad_insights_hourly aih"
)

// Métricas com crescimento calculado nas faixas horárias
var GrowthMetrics = []string{"spend", "impressions", "clicks", "results", "conversions"}

var breakdownTables = map[string]bool{
	"insight_device_breakdowns":     true,
	"insight_age_gender_breakdowns": true,
	"insight_region_breakdowns":     true,
}

type AdInsightRepository interface {
	DailyInsightIDs(ctx context.Context, accountID string, adIDs []string, dateRange domain.DateRange) (map[domain.InsightKey]string, error)
	HourlyRows(ctx context.Context, accountID string, adIDs []string, dates []time.Time) ([]domain.HourlyMetrics, error)
	DeleteBreakdowns(ctx context.Context, table string, insightIDs []string) (int64, error)
	DeleteHourlyBefore(ctx context.Context, before time.Time) (int64, error)
}

type adInsightRepository struct {
	conn postgres.Queryer
}

func NewAdInsightRepository(conn postgres.Queryer) AdInsightRepository {
	return &adInsightRepository{
		conn: conn,
	}
}

// DailyInsightIDs retorna o id de cada linha diária gravada, por anúncio e data
func (r *adInsightRepository) DailyInsightIDs(ctx context.Context, accountID string, adIDs []string, dateRange domain.DateRange) (map[domain.InsightKey]string, error) {
	ids := make(map[domain.InsightKey]string)
	if len(adIDs) == 0 {
		return ids, nil
	}

	query, args, err := squirrel.
		Select("ai.ad_id, ai.date, ai.id").
		From(adInsightsTable).
		Where(squirrel.Eq{"ai.account_id": accountID}).
		Where(squirrel.Expr("ai.ad_id = ANY(?)", pq.Array(adIDs))).
		Where(squirrel.Expr("ai.date BETWEEN ?::date AND ?::date",
			dateRange.Since.Format(time.DateOnly),
			dateRange.Until.Format(time.DateOnly),
		)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError("erro ao buscar ids de métricas diárias", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			adID string
			date time.Time
			id   string
		)
		if err := rows.Scan(&adID, &date, &id); err != nil {
			return nil, fmt.Errorf("erro ao escanear métrica diária: %w", err)
		}
		ids[domain.InsightKey{AdID: adID, Date: date.Format(time.DateOnly)}] = id
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return ids, nil
}

// HourlyRows carrega as faixas horárias já gravadas para o cálculo de crescimento
func (r *adInsightRepository) HourlyRows(ctx context.Context, accountID string, adIDs []string, dates []time.Time) ([]domain.HourlyMetrics, error) {
	result := make([]domain.HourlyMetrics, 0)
	if len(adIDs) == 0 || len(dates) == 0 {
		return result, nil
	}

	days := make([]string, len(dates))
	for i, d := range dates {
		days[i] = d.Format(time.DateOnly)
	}

	query, args, err := squirrel.
		Select("aih.ad_id, aih.date, aih.hour, aih.spend, aih.impressions, aih.clicks, aih.results, aih.conversions").
		From(adInsightsHourlyTable).
		Where(squirrel.Eq{"aih.account_id": accountID}).
		Where(squirrel.Expr("aih.ad_id = ANY(?)", pq.Array(adIDs))).
		Where(squirrel.Expr("aih.date = ANY(?::date[])", pq.Array(days))).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError("erro ao buscar métricas por hora", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			m           domain.HourlyMetrics
			spend       decimal.NullDecimal
			impressions sql.NullInt64
			clicks      sql.NullInt64
			results     sql.NullInt64
			conversions sql.NullInt64
		)
		if err := rows.Scan(&m.AdID, &m.Date, &m.Hour, &spend, &impressions, &clicks, &results, &conversions); err != nil {
			return nil, fmt.Errorf("erro ao escanear métrica por hora: %w", err)
		}

		m.Values = make(map[string]decimal.Decimal, len(GrowthMetrics))
		if spend.Valid {
			m.Values["spend"] = spend.Decimal
		}
		setInt(m.Values, "impressions", impressions)
		setInt(m.Values, "clicks", clicks)
		setInt(m.Values, "results", results)
		setInt(m.Values, "conversions", conversions)

		result = append(result, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return result, nil
}

func setInt(values map[string]decimal.Decimal, key string, v sql.NullInt64) {
	if v.Valid {
		values[key] = decimal.NewFromInt(v.Int64)
	}
}

func (r *adInsightRepository) DeleteBreakdowns(ctx context.Context, table string, insightIDs []string) (int64, error) {
	if !breakdownTables[table] {
		return 0, fmt.Errorf("tabela de quebra desconhecida: %s", table)
	}
	if len(insightIDs) == 0 {
		return 0, nil
	}

	query, args, err := squirrel.
		Delete(table).
		Where(squirrel.Expr("insight_id = ANY(?)", pq.Array(insightIDs))).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	res, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, wrapDBError(fmt.Sprintf("erro ao remover linhas de %s", table), err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

// DeleteHourlyBefore remove as faixas horárias com data anterior a before
func (r *adInsightRepository) DeleteHourlyBefore(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := squirrel.
		Delete("ad_insights_hourly").
		Where(squirrel.Expr("date < ?::date", before.Format(time.DateOnly))).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	res, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, wrapDBError("erro ao remover métricas por hora antigas", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}
