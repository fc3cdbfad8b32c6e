package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ForecastPoint is one projected day in a cash-flow forecast.
// ContributingEvents names the recurring expenses applied on that day.
type ForecastPoint struct {
	Date               time.Time       `json:"date"`
	ProjectedBalance   decimal.Decimal `json:"projected_balance"`
	NetFlow            decimal.Decimal `json:"net_flow"`
	ContributingEvents []string        `json:"contributing_events,omitempty"`
}

// ForecastSummary aggregates a completed forecast run.
type ForecastSummary struct {
	StartingBalance decimal.Decimal `json:"starting_balance"`
	EndingBalance   decimal.Decimal `json:"ending_balance"`
	NetChange       decimal.Decimal `json:"net_change"`
	BaselineDaily   decimal.Decimal `json:"baseline_daily_net"`
	HorizonDays     int             `json:"horizon_days"`
	Points          []ForecastPoint `json:"points"`
}
