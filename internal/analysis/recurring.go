package analysis

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"finsight/internal/models"

	"github.com/shopspring/decimal"
)

// gapConsistencyThreshold is the maximum coefficient of variation of
// inter-occurrence gaps for a cluster to count as recurring.
const gapConsistencyThreshold = 0.5

type recurringDetector struct {
	metrics MetricsRecorderInterface
}

// NewRecurringDetector builds the recurring-expense detector.
func NewRecurringDetector(metrics MetricsRecorderInterface) RecurringDetectorInterface {
	return &recurringDetector{metrics: metrics}
}

func (d *recurringDetector) DetectRecurring(transactions []models.Transaction, params RecurringParams) ([]models.RecurringExpense, error) {
	started := time.Now()

	if params.MinOccurrences < 2 {
		return nil, fmt.Errorf("%w: min_occurrences must be at least 2", ErrInvalidParams)
	}
	if params.AmountTolerance.IsNegative() {
		return nil, fmt.Errorf("%w: amount_tolerance must be non-negative", ErrInvalidParams)
	}
	if params.WindowDays <= 0 {
		return nil, fmt.Errorf("%w: window_days must be positive", ErrInvalidParams)
	}

	now := truncateToDay(params.Now)
	windowStart := now.AddDate(0, 0, -params.WindowDays)

	// Only recently-active spending can recur; a pattern whose occurrences
	// fall outside the window is excluded however regular it once was.
	byMerchant := make(map[string][]models.Transaction)
	for _, txn := range transactions {
		if !txn.IsOutflow() {
			continue
		}
		if txn.Date.Before(windowStart) || txn.Date.After(now) {
			continue
		}
		merchant := txn.Merchant()
		byMerchant[merchant] = append(byMerchant[merchant], txn)
	}

	results := make([]models.RecurringExpense, 0)
	for merchant, group := range byMerchant {
		if len(group) < params.MinOccurrences {
			continue
		}
		for _, cluster := range clusterByAmount(group, params.AmountTolerance) {
			expense, ok := d.qualifyCluster(merchant, cluster, params)
			if ok {
				results = append(results, expense)
			}
		}
	}

	// Largest commitments first; merchant key breaks ties deterministically.
	sort.Slice(results, func(i, j int) bool {
		mi, mj := results[i].TypicalAmount.Abs(), results[j].TypicalAmount.Abs()
		if !mi.Equal(mj) {
			return mi.GreaterThan(mj)
		}
		return results[i].MerchantNormalized < results[j].MerchantNormalized
	})

	d.metrics.RecordAnalysis("detect_recurring", "ok")
	d.metrics.RecordDuration("detect_recurring", time.Since(started))

	slog.Info("recurring expenses detected",
		"merchants_considered", len(byMerchant),
		"recurring_found", len(results),
		"window_days", params.WindowDays)

	return results, nil
}

// clusterByAmount splits a merchant group into amount clusters using a
// transitively chained tolerance band: after sorting by outflow magnitude,
// each value within tolerance of its predecessor joins the same cluster.
// A and C therefore cluster together whenever a B bridges them, even if
// |A-C| exceeds the tolerance. This is the documented policy.
func clusterByAmount(group []models.Transaction, tolerance decimal.Decimal) [][]models.Transaction {
	sorted := make([]models.Transaction, len(group))
	copy(sorted, group)
	sort.Slice(sorted, func(i, j int) bool {
		mi, mj := sorted[i].OutflowMagnitude(), sorted[j].OutflowMagnitude()
		if !mi.Equal(mj) {
			return mi.LessThan(mj)
		}
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].ID < sorted[j].ID
	})

	var clusters [][]models.Transaction
	for i, txn := range sorted {
		if i > 0 {
			prev := sorted[i-1].OutflowMagnitude()
			if txn.OutflowMagnitude().Sub(prev).LessThanOrEqual(tolerance) {
				clusters[len(clusters)-1] = append(clusters[len(clusters)-1], txn)
				continue
			}
		}
		clusters = append(clusters, []models.Transaction{txn})
	}

	// Cluster membership order is date ascending, ID breaking exact ties.
	for _, cluster := range clusters {
		sort.Slice(cluster, func(i, j int) bool {
			if !cluster[i].Date.Equal(cluster[j].Date) {
				return cluster[i].Date.Before(cluster[j].Date)
			}
			return cluster[i].ID < cluster[j].ID
		})
	}
	return clusters
}

// qualifyCluster decides whether an amount cluster recurs regularly and, if
// so, derives the reported expense.
func (d *recurringDetector) qualifyCluster(merchant string, cluster []models.Transaction, params RecurringParams) (models.RecurringExpense, bool) {
	if len(cluster) < params.MinOccurrences {
		return models.RecurringExpense{}, false
	}

	gaps := make([]int, 0, len(cluster)-1)
	gapsF := make([]float64, 0, len(cluster)-1)
	for i := 1; i < len(cluster); i++ {
		gap := daysBetween(cluster[i-1].Date, cluster[i].Date)
		if gap == 0 {
			// Same-day duplicates are separate purchases, not a cadence.
			return models.RecurringExpense{}, false
		}
		gaps = append(gaps, gap)
		gapsF = append(gapsF, float64(gap))
	}

	if coefficientOfVariation(gapsF) >= gapConsistencyThreshold {
		return models.RecurringExpense{}, false
	}

	interval := medianInt(gaps)
	amounts := make([]decimal.Decimal, len(cluster))
	for i, txn := range cluster {
		amounts[i] = txn.Amount
	}

	last := cluster[len(cluster)-1].Date
	return models.RecurringExpense{
		MerchantNormalized: merchant,
		TypicalAmount:      medianDecimal(amounts),
		Tolerance:          params.AmountTolerance,
		IntervalDays:       interval,
		Frequency:          models.FrequencyForInterval(interval),
		Occurrences:        cluster,
		NextExpectedDate:   last.AddDate(0, 0, interval),
	}, true
}

func truncateToDay(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(a, b time.Time) int {
	return int(truncateToDay(b).Sub(truncateToDay(a)).Hours() / 24)
}

// coefficientOfVariation is the population standard deviation over the mean.
// Zero-mean input returns 0 (degenerate, never divides).
func coefficientOfVariation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return 0
	}
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return math.Sqrt(variance) / mean
}

func medianInt(values []int) int {
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func medianDecimal(values []decimal.Decimal) decimal.Decimal {
	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return sorted[n/2-1].Add(sorted[n/2]).Div(decimal.NewFromInt(2))
}
