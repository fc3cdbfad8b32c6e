package analysis

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"finsight/internal/models"

	"github.com/shopspring/decimal"
)

const defaultTopN = 5

type aggregator struct {
	metrics MetricsRecorderInterface
}

// NewAggregator builds the spending/cash-flow aggregator.
func NewAggregator(metrics MetricsRecorderInterface) AggregatorInterface {
	return &aggregator{metrics: metrics}
}

func (a *aggregator) Aggregate(transactions []models.Transaction, params AggregateParams) (*models.Aggregation, error) {
	started := time.Now()

	if !models.IsValidGroupBy(params.GroupBy) {
		return nil, fmt.Errorf("%w: unknown group_by %q", ErrInvalidParams, params.GroupBy)
	}
	if !params.StartDate.IsZero() && !params.EndDate.IsZero() && params.EndDate.Before(params.StartDate) {
		return nil, fmt.Errorf("%w: end_date precedes start_date", ErrInvalidParams)
	}
	topN := params.TopN
	if topN <= 0 {
		topN = defaultTopN
	}

	byKey := make(map[string]*models.GroupTotals)
	result := &models.Aggregation{
		GroupBy:   params.GroupBy,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
	}

	for _, txn := range transactions {
		if !inDateRange(txn.Date, params.StartDate, params.EndDate) {
			continue
		}

		key := groupKey(txn, params.GroupBy)
		group, ok := byKey[key]
		if !ok {
			group = &models.GroupTotals{Key: key}
			byKey[key] = group
		}

		group.Count++
		result.Count++
		if txn.Pending {
			group.PendingCount++
			result.PendingCount++
		}
		if txn.IsInflow() {
			group.TotalInflow = group.TotalInflow.Add(txn.Amount)
			result.TotalInflow = result.TotalInflow.Add(txn.Amount)
		} else {
			group.TotalOutflow = group.TotalOutflow.Add(txn.OutflowMagnitude())
			result.TotalOutflow = result.TotalOutflow.Add(txn.OutflowMagnitude())
		}
		group.Net = group.Net.Add(txn.Amount)
		result.Net = result.Net.Add(txn.Amount)
	}

	result.Groups = make([]models.GroupTotals, 0, len(byKey))
	for _, group := range byKey {
		result.Groups = append(result.Groups, *group)
	}
	sort.Slice(result.Groups, func(i, j int) bool {
		return result.Groups[i].Key < result.Groups[j].Key
	})

	result.Top = topByOutflow(result.Groups, topN)

	a.metrics.RecordAnalysis("aggregate", "ok")
	a.metrics.RecordDuration("aggregate", time.Since(started))

	slog.Info("transactions aggregated",
		"group_by", params.GroupBy,
		"groups", len(result.Groups),
		"transactions", result.Count,
		"pending", result.PendingCount)

	return result, nil
}

func (a *aggregator) Search(transactions []models.Transaction, query SearchQuery) []models.Transaction {
	text := strings.ToLower(query.Text)
	matches := make([]models.Transaction, 0)

	for _, txn := range transactions {
		if text != "" && !matchesText(txn, text) {
			continue
		}
		if query.MinAmount != nil && txn.Amount.LessThan(*query.MinAmount) {
			continue
		}
		if query.MaxAmount != nil && txn.Amount.GreaterThan(*query.MaxAmount) {
			continue
		}
		if !inDateRange(txn.Date, query.StartDate, query.EndDate) {
			continue
		}
		matches = append(matches, txn)
	}

	a.metrics.RecordAnalysis("search", "ok")
	return matches
}

func (a *aggregator) AnalyzeMerchants(transactions []models.Transaction, params MerchantParams) ([]models.MerchantProfile, error) {
	started := time.Now()

	if params.WindowDays <= 0 {
		return nil, fmt.Errorf("%w: window_days must be positive", ErrInvalidParams)
	}
	topN := params.TopN
	if topN <= 0 {
		topN = defaultTopN
	}

	now := truncateToDay(params.Now)
	windowStart := now.AddDate(0, 0, -params.WindowDays)

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

	profiles := make([]models.MerchantProfile, 0, len(byMerchant))
	for merchant, group := range byMerchant {
		sort.Slice(group, func(i, j int) bool { return group[i].Date.Before(group[j].Date) })

		total := decimal.Zero
		for _, txn := range group {
			total = total.Add(txn.OutflowMagnitude())
		}

		profile := models.MerchantProfile{
			MerchantNormalized: merchant,
			TotalSpent:         total,
			Count:              len(group),
			AverageAmount:      total.Div(decimal.NewFromInt(int64(len(group)))),
			FirstSeen:          group[0].Date,
			LastSeen:           group[len(group)-1].Date,
		}
		if len(group) >= 2 {
			span := daysBetween(group[0].Date, group[len(group)-1].Date)
			profile.MeanGapDays = decimal.NewFromInt(int64(span)).
				Div(decimal.NewFromInt(int64(len(group) - 1)))
		}
		profiles = append(profiles, profile)
	}

	sort.Slice(profiles, func(i, j int) bool {
		if !profiles[i].TotalSpent.Equal(profiles[j].TotalSpent) {
			return profiles[i].TotalSpent.GreaterThan(profiles[j].TotalSpent)
		}
		return profiles[i].MerchantNormalized < profiles[j].MerchantNormalized
	})
	if len(profiles) > topN {
		profiles = profiles[:topN]
	}

	a.metrics.RecordAnalysis("analyze_merchants", "ok")
	a.metrics.RecordDuration("analyze_merchants", time.Since(started))

	return profiles, nil
}

// inDateRange checks inclusive bounds; zero bounds are open.
func inDateRange(date, start, end time.Time) bool {
	if !start.IsZero() && date.Before(start) {
		return false
	}
	if !end.IsZero() && date.After(end) {
		return false
	}
	return true
}

func matchesText(txn models.Transaction, loweredQuery string) bool {
	if strings.Contains(strings.ToLower(txn.Description), loweredQuery) {
		return true
	}
	if strings.Contains(txn.Merchant(), loweredQuery) {
		return true
	}
	return strings.Contains(strings.ToLower(txn.Category), loweredQuery)
}

func groupKey(txn models.Transaction, groupBy string) string {
	switch groupBy {
	case models.GroupByCategory:
		if txn.Category == "" {
			return models.CategoryOther
		}
		return txn.Category
	case models.GroupByMerchant:
		return txn.Merchant()
	case models.GroupByType:
		if txn.IsInflow() {
			return "credit"
		}
		return "debit"
	case models.GroupByDay:
		return txn.Date.Format("2006-01-02")
	case models.GroupByWeek:
		year, week := txn.Date.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	default: // models.GroupByMonth
		return txn.Date.Format("2006-01")
	}
}

// topByOutflow ranks groups by absolute outflow descending, ties broken by
// key ascending, and returns at most n entries.
func topByOutflow(groups []models.GroupTotals, n int) []models.GroupTotals {
	ranked := make([]models.GroupTotals, len(groups))
	copy(ranked, groups)
	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].TotalOutflow.Equal(ranked[j].TotalOutflow) {
			return ranked[i].TotalOutflow.GreaterThan(ranked[j].TotalOutflow)
		}
		return ranked[i].Key < ranked[j].Key
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
