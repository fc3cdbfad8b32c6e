package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Grouping dimensions accepted by the spending aggregator.
const (
	GroupByCategory = "category"
	GroupByMerchant = "merchant"
	GroupByType     = "type"
	GroupByDay      = "day"
	GroupByWeek     = "week"
	GroupByMonth    = "month"
)

// IsValidGroupBy reports whether key names a supported grouping dimension.
func IsValidGroupBy(key string) bool {
	switch key {
	case GroupByCategory, GroupByMerchant, GroupByType,
		GroupByDay, GroupByWeek, GroupByMonth:
		return true
	}
	return false
}

// GroupTotals holds per-group sums for one aggregation bucket. TotalOutflow
// is reported as a positive magnitude; Net keeps the canonical sign.
type GroupTotals struct {
	Key          string          `json:"key"`
	Count        int             `json:"count"`
	PendingCount int             `json:"pending_count"`
	TotalInflow  decimal.Decimal `json:"total_inflow"`
	TotalOutflow decimal.Decimal `json:"total_outflow"`
	Net          decimal.Decimal `json:"net"`
}

// Aggregation is the result of bucketing transactions by period and dimension.
// Groups partition the filtered input: summing group totals reproduces the
// totals of the filtered transaction set.
type Aggregation struct {
	GroupBy      string          `json:"group_by"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	Groups       []GroupTotals   `json:"groups"`
	Top          []GroupTotals   `json:"top"`
	TotalInflow  decimal.Decimal `json:"total_inflow"`
	TotalOutflow decimal.Decimal `json:"total_outflow"`
	Net          decimal.Decimal `json:"net"`
	Count        int             `json:"count"`
	PendingCount int             `json:"pending_count"`
}

// MerchantProfile summarizes spending at a single merchant.
type MerchantProfile struct {
	MerchantNormalized string          `json:"merchant_normalized"`
	TotalSpent         decimal.Decimal `json:"total_spent"`
	Count              int             `json:"count"`
	AverageAmount      decimal.Decimal `json:"average_amount"`
	FirstSeen          time.Time       `json:"first_seen"`
	LastSeen           time.Time       `json:"last_seen"`
	MeanGapDays        decimal.Decimal `json:"mean_gap_days"`
}
