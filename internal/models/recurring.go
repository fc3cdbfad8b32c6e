package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency labels for recurring expenses, derived from the median interval.
const (
	FrequencyWeekly    = "weekly"
	FrequencyBiweekly  = "biweekly"
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
	FrequencyAnnual    = "annual"
	FrequencyIrregular = "irregular"
)

// RecurringExpense is a cluster of outflows sharing a merchant and an
// approximate amount that recur at a consistent interval.
type RecurringExpense struct {
	MerchantNormalized string          `json:"merchant_normalized"`
	TypicalAmount      decimal.Decimal `json:"typical_amount"`
	Tolerance          decimal.Decimal `json:"tolerance"`
	IntervalDays       int             `json:"interval_days"`
	Frequency          string          `json:"frequency"`
	Occurrences        []Transaction   `json:"occurrences"`
	NextExpectedDate   time.Time       `json:"next_expected_date"`
}

// LastOccurrence returns the most recent matched transaction date.
// Occurrences are ordered date ascending.
func (r *RecurringExpense) LastOccurrence() time.Time {
	if len(r.Occurrences) == 0 {
		return time.Time{}
	}
	return r.Occurrences[len(r.Occurrences)-1].Date
}

// FrequencyForInterval maps a median interval in days onto the label bands
// used for reporting.
func FrequencyForInterval(days int) string {
	switch {
	case days >= 6 && days <= 8:
		return FrequencyWeekly
	case days >= 13 && days <= 16:
		return FrequencyBiweekly
	case days >= 25 && days <= 35:
		return FrequencyMonthly
	case days >= 85 && days <= 95:
		return FrequencyQuarterly
	case days >= 350 && days <= 380:
		return FrequencyAnnual
	default:
		return FrequencyIrregular
	}
}
