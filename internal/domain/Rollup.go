package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RollupStat é a consolidação diária por filial e plataforma
type RollupStat struct {
	BranchID      string          `json:"branch_id"`
	Date          time.Time       `json:"date"`
	Platform      Platform        `json:"platform"`
	Spend         decimal.Decimal `json:"spend"`
	Impressions   int64           `json:"impressions"`
	Clicks        int64           `json:"clicks"`
	Results       int64           `json:"results"`
	AccountsCount int             `json:"accounts_count"`
}
