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

const monthKeyLayout = "2006-01"

// incomeStabilityThreshold is the maximum coefficient of variation across
// monthly income totals for the stream to count as stable.
const incomeStabilityThreshold = 0.2

// payDayConcentration is the share of deposits that must land on the same
// day(s) of the month before a pay-day pattern is reported.
const payDayConcentration = 0.7

type incomeAnalyzer struct {
	metrics MetricsRecorderInterface
}

// NewIncomeAnalyzer returns an IncomeAnalyzerInterface that profiles deposit
// cadence, month-over-month growth, and income stability.
func NewIncomeAnalyzer(metrics MetricsRecorderInterface) IncomeAnalyzerInterface {
	return &incomeAnalyzer{metrics: metrics}
}

func (a *incomeAnalyzer) AnalyzeIncome(transactions []models.Transaction) (*models.IncomeReport, error) {
	started := time.Now()

	deposits := make([]models.Transaction, 0, len(transactions))
	for _, txn := range transactions {
		if txn.IsInflow() {
			deposits = append(deposits, txn)
		}
	}
	if len(deposits) == 0 {
		a.metrics.RecordAnalysis("analyze_income", "error")
		return nil, fmt.Errorf("%w: no income transactions in history", ErrInsufficientData)
	}

	sort.Slice(deposits, func(i, j int) bool {
		if !deposits[i].Date.Equal(deposits[j].Date) {
			return deposits[i].Date.Before(deposits[j].Date)
		}
		return deposits[i].ID < deposits[j].ID
	})

	monthly := monthlyIncomeTotals(deposits)
	totals := make([]float64, len(monthly))
	for i, month := range monthly {
		totals[i] = month.Total.InexactFloat64()
	}
	cv := coefficientOfVariation(totals)

	sources, primary := incomeSources(deposits)
	pattern, payDays := payDayPattern(deposits)

	report := &models.IncomeReport{
		MonthsAnalyzed:       len(monthly),
		Monthly:              monthly,
		Trend:                incomeTrend(monthly),
		PayFrequency:         payFrequencyFor(deposits),
		PayDayPattern:        pattern,
		PayDays:              payDays,
		VariationCoefficient: decimal.NewFromFloat(cv).Round(4),
		Stable:               cv < incomeStabilityThreshold,
		Sources:              sources,
		PrimarySource:        primary,
		TransactionCount:     len(deposits),
	}

	a.metrics.RecordAnalysis("analyze_income", "ok")
	a.metrics.RecordDuration("analyze_income", time.Since(started))

	slog.Info("income pattern analyzed",
		"deposits", len(deposits),
		"months", len(monthly),
		"pay_frequency", report.PayFrequency,
		"stable", report.Stable)

	return report, nil
}

// monthlyIncomeTotals sums deposits per calendar month, ordered oldest first.
// Deposits must already be sorted by date.
func monthlyIncomeTotals(deposits []models.Transaction) []models.MonthlyIncome {
	monthly := make([]models.MonthlyIncome, 0)
	for _, txn := range deposits {
		key := txn.Date.Format(monthKeyLayout)
		if n := len(monthly); n > 0 && monthly[n-1].Month == key {
			monthly[n-1].Total = monthly[n-1].Total.Add(txn.Amount)
			continue
		}
		monthly = append(monthly, models.MonthlyIncome{Month: key, Total: txn.Amount})
	}
	return monthly
}

// incomeTrend compares the first and last observed months. The monthly growth
// rate is the compound rate implied by the endpoints, so gaps between months
// are accounted for rather than averaged away.
func incomeTrend(monthly []models.MonthlyIncome) models.IncomeTrend {
	trend := models.IncomeTrend{
		FirstMonth: monthly[0].Month,
		LastMonth:  monthly[len(monthly)-1].Month,
	}
	if len(monthly) < 2 {
		return trend
	}

	first := monthly[0].Total
	last := monthly[len(monthly)-1].Total
	trend.GrowthAmount = last.Sub(first)
	if first.IsPositive() {
		trend.GrowthPercent = trend.GrowthAmount.Div(first).Mul(oneHundred).Round(2)
	}

	months := monthsBetween(trend.FirstMonth, trend.LastMonth)
	if first.IsPositive() && months > 0 {
		rate := math.Pow(last.InexactFloat64()/first.InexactFloat64(), 1/float64(months)) - 1
		trend.MonthlyGrowthRatePct = decimal.NewFromFloat(rate * 100).Round(2)
	}
	return trend
}

func monthsBetween(first, last string) int {
	a, errA := time.Parse(monthKeyLayout, first)
	b, errB := time.Parse(monthKeyLayout, last)
	if errA != nil || errB != nil {
		return 0
	}
	return (b.Year()-a.Year())*12 + int(b.Month()-a.Month())
}

// payFrequencyFor derives a cadence label from the average gap between
// consecutive deposits. Same-day deposits from multiple sources contribute
// zero-length gaps, which pulls mixed streams toward irregular.
func payFrequencyFor(deposits []models.Transaction) string {
	if len(deposits) < 2 {
		return models.PayFrequencyUnknown
	}
	total := 0
	for i := 1; i < len(deposits); i++ {
		total += daysBetween(deposits[i-1].Date, deposits[i].Date)
	}
	avg := float64(total) / float64(len(deposits)-1)
	return models.FrequencyForInterval(int(math.Round(avg)))
}

// payDayPattern reports which day(s) of the month deposits concentrate on.
func payDayPattern(deposits []models.Transaction) (string, []int) {
	counts := make(map[int]int)
	for _, txn := range deposits {
		counts[txn.Date.Day()]++
	}

	maxCount := 0
	for _, count := range counts {
		if count > maxCount {
			maxCount = count
		}
	}
	commonDays := make([]int, 0, 2)
	for day, count := range counts {
		if count == maxCount {
			commonDays = append(commonDays, day)
		}
	}
	sort.Ints(commonDays)

	threshold := int(math.Ceil(payDayConcentration * float64(len(deposits))))
	if len(commonDays) == 1 && maxCount >= threshold {
		day := commonDays[0]
		switch {
		case day <= 5:
			return models.PayDayBeginningOfMonth, commonDays
		case day >= 10 && day <= 20:
			return models.PayDayMiddleOfMonth, commonDays
		case day >= 25:
			return models.PayDayEndOfMonth, commonDays
		default:
			return models.PayDaySpecificDay, commonDays
		}
	}
	if len(commonDays) == 2 && maxCount*2 >= threshold && commonDays[0] <= 15 && commonDays[1] >= 15 {
		return models.PayDayTwiceMonthly, commonDays
	}

	// Month-end payrolls land on the 28th through the 31st depending on the
	// month, so no single day clears the threshold above.
	lastDay := 0
	for _, txn := range deposits {
		if txn.Date.AddDate(0, 0, 1).Day() == 1 {
			lastDay++
		}
	}
	if lastDay >= threshold {
		return models.PayDayEndOfMonth, nil
	}

	return models.PayDayIrregular, nil
}

// incomeSources groups deposits by merchant and names the largest stream.
func incomeSources(deposits []models.Transaction) ([]models.IncomeSource, string) {
	byMerchant := make(map[string]*models.IncomeSource)
	order := make([]string, 0)
	for _, txn := range deposits {
		name := txn.Merchant()
		source, ok := byMerchant[name]
		if !ok {
			source = &models.IncomeSource{Name: name}
			byMerchant[name] = source
			order = append(order, name)
		}
		source.Total = source.Total.Add(txn.Amount)
		source.Count++
	}

	sources := make([]models.IncomeSource, 0, len(order))
	for _, name := range order {
		source := byMerchant[name]
		source.AverageAmount = source.Total.Div(decimal.NewFromInt(int64(source.Count))).Round(2)
		sources = append(sources, *source)
	}
	sort.Slice(sources, func(i, j int) bool {
		if !sources[i].Total.Equal(sources[j].Total) {
			return sources[i].Total.GreaterThan(sources[j].Total)
		}
		return sources[i].Name < sources[j].Name
	})

	return sources, sources[0].Name
}
