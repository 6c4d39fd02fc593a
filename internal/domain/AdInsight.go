package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Granularity string

const (
	GranularityDaily  Granularity = "DAILY"
	GranularityHourly Granularity = "HOURLY"
)

func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case GranularityDaily, "":
		return GranularityDaily, nil
	case GranularityHourly:
		return GranularityHourly, nil
	}
	return "", errors.New("granularidade inválida: use DAILY ou HOURLY")
}

type Breakdown string

const (
	BreakdownDevice    Breakdown = "device"
	BreakdownAgeGender Breakdown = "age_gender"
	BreakdownRegion    Breakdown = "region"
)

var AllBreakdowns = []Breakdown{BreakdownDevice, BreakdownAgeGender, BreakdownRegion}

// DateRange é um intervalo de datas de calendário, inclusivo nas duas pontas
type DateRange struct {
	Since time.Time `json:"since"`
	Until time.Time `json:"until"`
}

var ErrInvalidDateRange = errors.New("intervalo de datas inválido: since maior que until")

func NewDateRange(since, until time.Time) (DateRange, error) {
	r := DateRange{Since: TruncateDay(since), Until: TruncateDay(until)}
	if r.Since.After(r.Until) {
		return DateRange{}, ErrInvalidDateRange
	}
	return r, nil
}

// SingleDay cria um intervalo de um único dia
func SingleDay(date time.Time) DateRange {
	d := TruncateDay(date)
	return DateRange{Since: d, Until: d}
}

// Days retorna todas as datas do intervalo em ordem crescente
func (r DateRange) Days() []time.Time {
	days := make([]time.Time, 0)
	for d := TruncateDay(r.Since); !d.After(TruncateDay(r.Until)); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func (r DateRange) String() string {
	return r.Since.Format(time.DateOnly) + ".." + r.Until.Format(time.DateOnly)
}

// TruncateDay zera o horário mantendo a data de calendário e o fuso
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Totals são as somas de métricas usadas em resumos e consolidações
type Totals struct {
	Spend       decimal.Decimal `json:"spend"`
	Impressions int64           `json:"impressions"`
	Clicks      int64           `json:"clicks"`
	Reach       int64           `json:"reach"`
	Results     int64           `json:"results"`
	Conversions int64           `json:"conversions"`
}

func (t *Totals) Add(o Totals) {
	t.Spend = t.Spend.Add(o.Spend)
	t.Impressions += o.Impressions
	t.Clicks += o.Clicks
	t.Reach += o.Reach
	t.Results += o.Results
	t.Conversions += o.Conversions
}

// SyncSummary é enviado ao notificador após uma passada de métricas
type SyncSummary struct {
	AccountID   string      `json:"account_id"`
	AccountName string      `json:"account_name"`
	Granularity Granularity `json:"granularity"`
	Range       DateRange   `json:"range"`
	AdsCount    int         `json:"ads_count"`
	RowsWritten int64       `json:"rows_written"`
	Totals      Totals      `json:"totals"`
}

// InsightKey identifica uma linha diária de métricas de um anúncio
type InsightKey struct {
	AdID string
	Date string
}

// HourlyMetrics são as métricas de uma faixa horária já gravada
type HourlyMetrics struct {
	AdID   string
	Date   time.Time
	Hour   int
	Values map[string]decimal.Decimal
}
