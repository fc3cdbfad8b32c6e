package analysis

import (
	"fmt"
	"log/slog"
	"time"

	"finsight/internal/models"

	"github.com/shopspring/decimal"
)

const defaultTrailingWindowDays = 90

type forecaster struct {
	metrics MetricsRecorderInterface
}

// NewForecaster builds the cash-flow forecaster.
func NewForecaster(metrics MetricsRecorderInterface) ForecasterInterface {
	return &forecaster{metrics: metrics}
}

func (f *forecaster) Forecast(
	transactions []models.Transaction,
	startingBalance decimal.Decimal,
	recurring []models.RecurringExpense,
	params ForecastParams,
) (*models.ForecastSummary, error) {
	started := time.Now()

	if params.HorizonDays <= 0 {
		return nil, fmt.Errorf("%w: horizon_days must be positive", ErrInvalidParams)
	}
	if len(transactions) == 0 {
		return nil, fmt.Errorf("%w: no transaction history", ErrInsufficientData)
	}

	window := params.TrailingWindowDays
	if window <= 0 {
		window = defaultTrailingWindowDays
	}
	now := truncateToDay(params.Now)

	baseline := f.baselineDailyNet(transactions, recurring, now, window, params.ExcludePending)

	events := recurring
	if !params.IncludeRecurring {
		events = nil
	}

	points := make([]models.ForecastPoint, 0, params.HorizonDays)
	balance := startingBalance

	for day := 1; day <= params.HorizonDays; day++ {
		date := now.AddDate(0, 0, day)
		net := baseline
		var contributing []string

		for _, expense := range events {
			if occursOn(expense, date) {
				net = net.Add(expense.TypicalAmount)
				contributing = append(contributing, expense.MerchantNormalized)
			}
		}

		balance = balance.Add(net)
		points = append(points, models.ForecastPoint{
			Date:               date,
			ProjectedBalance:   balance,
			NetFlow:            net,
			ContributingEvents: contributing,
		})
	}

	summary := &models.ForecastSummary{
		StartingBalance: startingBalance,
		EndingBalance:   balance,
		NetChange:       balance.Sub(startingBalance),
		BaselineDaily:   baseline,
		HorizonDays:     params.HorizonDays,
		Points:          points,
	}

	f.metrics.RecordAnalysis("forecast", "ok")
	f.metrics.RecordDuration("forecast", time.Since(started))

	slog.Info("cash flow forecast generated",
		"horizon_days", params.HorizonDays,
		"baseline_daily_net", baseline.String(),
		"ending_balance", balance.String())

	return summary, nil
}

// baselineDailyNet averages the net flow of non-recurring history over the
// trailing window. Transactions matched by a recurring expense are excluded
// so their effect is not counted twice when the recurrence is projected.
func (f *forecaster) baselineDailyNet(
	transactions []models.Transaction,
	recurring []models.RecurringExpense,
	now time.Time,
	windowDays int,
	excludePending bool,
) decimal.Decimal {
	recurringIDs := make(map[string]struct{})
	for _, expense := range recurring {
		for _, occurrence := range expense.Occurrences {
			recurringIDs[occurrence.ID] = struct{}{}
		}
	}

	windowStart := now.AddDate(0, 0, -windowDays)
	net := decimal.Zero
	for _, txn := range transactions {
		if txn.Date.Before(windowStart) || txn.Date.After(now) {
			continue
		}
		if excludePending && txn.Pending {
			continue
		}
		if _, isRecurring := recurringIDs[txn.ID]; isRecurring {
			continue
		}
		net = net.Add(txn.Amount)
	}

	return net.Div(decimal.NewFromInt(int64(windowDays)))
}

// occursOn projects the expense forward from its next expected date by
// integer interval multiples and reports whether one lands on date.
func occursOn(expense models.RecurringExpense, date time.Time) bool {
	if expense.IntervalDays <= 0 || expense.NextExpectedDate.IsZero() {
		return false
	}
	next := truncateToDay(expense.NextExpectedDate)
	day := truncateToDay(date)
	if day.Before(next) {
		return false
	}
	offset := daysBetween(next, day)
	return offset%expense.IntervalDays == 0
}
