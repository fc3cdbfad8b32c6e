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

// Sub-score normalization caps: a 20% savings rate, six months of expenses
// in liquid assets, a 36% debt-to-income ratio, and 30% credit utilization
// mark the ends of their respective scales.
var (
	savingsRateCapPct    = decimal.NewFromInt(20)
	emergencyFundCapMo   = decimal.NewFromInt(6)
	debtToIncomeCapPct   = decimal.NewFromInt(36)
	creditUtilizationCap = decimal.NewFromInt(30)

	subScoreWeight = decimal.NewFromInt(25)
)

const maxProjectionMonths = 120

type planner struct {
	metrics MetricsRecorderInterface
}

// NewPlanner builds the financial health / debt / savings planner.
func NewPlanner(metrics MetricsRecorderInterface) PlannerInterface {
	return &planner{metrics: metrics}
}

func (p *planner) AssessHealth(
	accounts []models.Account,
	transactions []models.Transaction,
	liabilities []models.Liability,
	now time.Time,
) (*models.HealthReport, error) {
	started := time.Now()

	if len(accounts) == 0 && len(transactions) == 0 {
		return nil, fmt.Errorf("%w: no balances or transactions to assess", ErrInsufficientData)
	}
	now = truncateToDay(now)

	metrics := p.computeHealthMetrics(accounts, transactions, liabilities, now)

	subScores := models.HealthSubScores{
		SavingsRate:       ratioCapped(metrics.SavingsRatePct, savingsRateCapPct),
		EmergencyFund:     ratioCapped(metrics.EmergencyFundMonths, emergencyFundCapMo),
		DebtManagement:    inverseRatioCapped(metrics.DebtToIncomePct, debtToIncomeCapPct),
		CreditUtilization: inverseRatioCapped(metrics.CreditUtilizationPct, creditUtilizationCap),
	}

	score := subScores.SavingsRate.Mul(subScoreWeight).
		Add(subScores.EmergencyFund.Mul(subScoreWeight)).
		Add(subScores.DebtManagement.Mul(subScoreWeight)).
		Add(subScores.CreditUtilization.Mul(subScoreWeight))

	report := &models.HealthReport{
		Score:           score,
		Status:          models.HealthStatusForScore(score),
		SubScores:       subScores,
		Metrics:         metrics,
		Recommendations: healthRecommendations(metrics),
	}

	p.metrics.RecordAnalysis("assess_health", "ok")
	p.metrics.RecordDuration("assess_health", time.Since(started))

	slog.Info("financial health assessed",
		"score", score.StringFixed(1),
		"status", report.Status,
		"recommendations", len(report.Recommendations))

	return report, nil
}

func (p *planner) computeHealthMetrics(
	accounts []models.Account,
	transactions []models.Transaction,
	liabilities []models.Liability,
	now time.Time,
) models.HealthMetrics {
	var metrics models.HealthMetrics

	liquidAssets := decimal.Zero
	for _, account := range accounts {
		metrics.TotalAssets = metrics.TotalAssets.Add(account.Balances.Current)
		if account.IsLiquid() {
			liquidAssets = liquidAssets.Add(account.SpendableBalance())
		}
	}

	monthlyPayments := decimal.Zero
	creditBalances := decimal.Zero
	creditLimits := decimal.Zero
	for _, liability := range liabilities {
		metrics.TotalLiabilities = metrics.TotalLiabilities.Add(liability.OutstandingBalance)
		monthlyPayments = monthlyPayments.Add(liability.PaymentAmount)
		if liability.Type == models.LiabilityTypeCredit {
			creditBalances = creditBalances.Add(liability.OutstandingBalance)
			creditLimits = creditLimits.Add(liability.CreditLimit)
		}
	}
	metrics.NetWorth = metrics.TotalAssets.Sub(metrics.TotalLiabilities)

	// Income and expenses over the trailing 30 days.
	monthStart := now.AddDate(0, 0, -30)
	for _, txn := range transactions {
		if txn.Date.Before(monthStart) || txn.Date.After(now) {
			continue
		}
		if txn.IsInflow() {
			metrics.MonthlyIncome = metrics.MonthlyIncome.Add(txn.Amount)
		} else {
			metrics.MonthlyExpenses = metrics.MonthlyExpenses.Add(txn.OutflowMagnitude())
		}
	}

	if metrics.MonthlyIncome.IsPositive() {
		metrics.SavingsRatePct = metrics.MonthlyIncome.Sub(metrics.MonthlyExpenses).
			Div(metrics.MonthlyIncome).Mul(oneHundred)
		metrics.DebtToIncomePct = monthlyPayments.Div(metrics.MonthlyIncome).Mul(oneHundred)
	}
	if metrics.MonthlyExpenses.IsPositive() {
		metrics.EmergencyFundMonths = liquidAssets.Div(metrics.MonthlyExpenses)
	}
	if creditLimits.IsPositive() {
		metrics.CreditUtilizationPct = creditBalances.Div(creditLimits).Mul(oneHundred)
	}

	return metrics
}

func healthRecommendations(m models.HealthMetrics) []string {
	var recommendations []string
	if m.EmergencyFundMonths.LessThan(decimal.NewFromInt(3)) {
		recommendations = append(recommendations, "Build an emergency fund covering at least 3-6 months of expenses")
	}
	if m.DebtToIncomePct.GreaterThan(debtToIncomeCapPct) {
		recommendations = append(recommendations, "Reduce debt to bring the debt-to-income ratio under 36%")
	}
	if m.CreditUtilizationPct.GreaterThan(creditUtilizationCap) {
		recommendations = append(recommendations, "Pay down credit card balances to lower credit utilization below 30%")
	}
	if m.SavingsRatePct.LessThan(decimal.NewFromInt(15)) {
		recommendations = append(recommendations, "Increase the savings rate to at least 15% of income")
	}
	return recommendations
}

func (p *planner) AnalyzeDebt(liabilities []models.Liability, monthlyIncome decimal.Decimal) (*models.DebtReport, error) {
	started := time.Now()

	if monthlyIncome.IsNegative() {
		return nil, fmt.Errorf("%w: monthly income cannot be negative", ErrInvalidParams)
	}

	report := &models.DebtReport{}
	byType := make(map[string][]models.Liability)

	for _, liability := range liabilities {
		report.TotalDebt = report.TotalDebt.Add(liability.OutstandingBalance)
		report.MonthlyPayments = report.MonthlyPayments.Add(liability.PaymentAmount)
		byType[liability.Type] = append(byType[liability.Type], liability)
	}

	if monthlyIncome.IsPositive() {
		report.DebtToIncomePct = report.MonthlyPayments.Div(monthlyIncome).Mul(oneHundred)
	}
	report.Status = models.DebtStatusForRatio(report.DebtToIncomePct)

	types := make([]string, 0, len(byType))
	for debtType := range byType {
		types = append(types, debtType)
	}
	sort.Strings(types)

	for _, debtType := range types {
		group := byType[debtType]
		summary := models.DebtTypeSummary{Type: debtType, Count: len(group)}
		for _, liability := range group {
			summary.TotalBalance = summary.TotalBalance.Add(liability.OutstandingBalance)
			summary.TotalPayment = summary.TotalPayment.Add(liability.PaymentAmount)
			summary.AverageInterest = summary.AverageInterest.Add(liability.InterestRate)
		}
		summary.AverageInterest = summary.AverageInterest.Div(decimal.NewFromInt(int64(len(group))))
		if report.TotalDebt.IsPositive() {
			summary.PercentOfTotal = summary.TotalBalance.Div(report.TotalDebt).Mul(oneHundred)
		}
		report.ByType = append(report.ByType, summary)
	}

	report.Avalanche = prioritize(liabilities, func(a, b models.Liability) bool {
		if !a.InterestRate.Equal(b.InterestRate) {
			return a.InterestRate.GreaterThan(b.InterestRate)
		}
		return a.AccountID < b.AccountID
	})
	report.Snowball = prioritize(liabilities, func(a, b models.Liability) bool {
		if !a.OutstandingBalance.Equal(b.OutstandingBalance) {
			return a.OutstandingBalance.LessThan(b.OutstandingBalance)
		}
		return a.AccountID < b.AccountID
	})

	report.Recommendations = debtRecommendations(report.DebtToIncomePct, report.TotalDebt, monthlyIncome)

	p.metrics.RecordAnalysis("analyze_debt", "ok")
	p.metrics.RecordDuration("analyze_debt", time.Since(started))

	return report, nil
}

func prioritize(liabilities []models.Liability, less func(a, b models.Liability) bool) []models.DebtPriority {
	ordered := make([]models.Liability, len(liabilities))
	copy(ordered, liabilities)
	sort.Slice(ordered, func(i, j int) bool { return less(ordered[i], ordered[j]) })

	priorities := make([]models.DebtPriority, len(ordered))
	for i, liability := range ordered {
		priorities[i] = models.DebtPriority{
			AccountID:    liability.AccountID,
			Type:         liability.Type,
			Balance:      liability.OutstandingBalance,
			InterestRate: liability.InterestRate,
			Priority:     i + 1,
		}
	}
	return priorities
}

func debtRecommendations(dtiPct, totalDebt, monthlyIncome decimal.Decimal) []string {
	var recommendations []string
	if dtiPct.GreaterThanOrEqual(decimal.NewFromInt(43)) {
		recommendations = append(recommendations,
			"Consider debt consolidation to reduce interest rates",
			"Prioritize paying off the highest-interest debt first")
	}
	if dtiPct.GreaterThanOrEqual(debtToIncomeCapPct) {
		recommendations = append(recommendations, "Avoid taking on additional debt until the ratio improves")
	}
	if totalDebt.GreaterThan(monthlyIncome.Mul(decimal.NewFromInt(12))) {
		recommendations = append(recommendations, "Focus on increasing income or reducing expenses to accelerate payoff")
	}
	if dtiPct.LessThan(decimal.NewFromInt(20)) && totalDebt.IsPositive() {
		recommendations = append(recommendations, "Consider investing additional funds instead of accelerating low-interest payoff")
	}
	return recommendations
}

func (p *planner) PlanSavingsGoal(
	goalAmount, currentSavings, monthlyContribution, annualInterestRate decimal.Decimal,
) (*models.SavingsPlan, error) {
	started := time.Now()

	if !goalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: goal_amount must be positive", ErrInvalidParams)
	}
	if currentSavings.IsNegative() || monthlyContribution.IsNegative() || annualInterestRate.IsNegative() {
		return nil, fmt.Errorf("%w: savings inputs cannot be negative", ErrInvalidParams)
	}

	plan := &models.SavingsPlan{
		GoalAmount:          goalAmount,
		CurrentSavings:      currentSavings,
		MonthlyContribution: monthlyContribution,
		AnnualInterestRate:  annualInterestRate,
	}

	if currentSavings.GreaterThanOrEqual(goalAmount) {
		plan.MonthsToGoal = 0
		p.metrics.RecordAnalysis("plan_savings_goal", "ok")
		return plan, nil
	}

	months, err := monthsToGoal(goalAmount, currentSavings, monthlyContribution, annualInterestRate)
	if err != nil {
		p.metrics.RecordAnalysis("plan_savings_goal", "error")
		return nil, err
	}
	plan.MonthsToGoal = months
	plan.Projection = savingsProjection(goalAmount, currentSavings, monthlyContribution, annualInterestRate, months)
	plan.Recommendations = savingsRecommendations(plan)

	p.metrics.RecordAnalysis("plan_savings_goal", "ok")
	p.metrics.RecordDuration("plan_savings_goal", time.Since(started))

	return plan, nil
}

// monthsToGoal solves the future-value annuity equation
// P(1+r)^n + PMT((1+r)^n - 1)/r = goal for n, degenerating to linear
// accumulation at zero interest and to pure compounding at zero contribution.
func monthsToGoal(goal, current, contribution, annualRate decimal.Decimal) (int, error) {
	remaining := goal.Sub(current)

	if annualRate.IsZero() {
		if contribution.IsZero() {
			return 0, ErrUnreachableGoal
		}
		return int(remaining.Div(contribution).Ceil().IntPart()), nil
	}

	monthlyRate := annualRate.InexactFloat64() / 12
	goalF := goal.InexactFloat64()
	currentF := current.InexactFloat64()
	pmt := contribution.InexactFloat64()

	if contribution.IsZero() {
		if currentF <= 0 {
			return 0, ErrUnreachableGoal
		}
		return int(math.Ceil(math.Log(goalF/currentF) / math.Log(1+monthlyRate))), nil
	}

	numerator := math.Log(goalF*monthlyRate+pmt) - math.Log(currentF*monthlyRate+pmt)
	return int(math.Ceil(numerator / math.Log(1+monthlyRate))), nil
}

func savingsProjection(goal, current, contribution, annualRate decimal.Decimal, months int) []models.SavingsProjectionMonth {
	horizon := months
	if horizon > maxProjectionMonths {
		horizon = maxProjectionMonths
	}

	monthlyRate := annualRate.Div(decimal.NewFromInt(12))
	balance := current
	projection := make([]models.SavingsProjectionMonth, 0, horizon)

	for month := 1; month <= horizon; month++ {
		interest := balance.Mul(monthlyRate)
		balance = balance.Add(interest).Add(contribution)
		projection = append(projection, models.SavingsProjectionMonth{
			Month:          month,
			Balance:        balance,
			InterestEarned: interest,
			PercentOfGoal:  balance.Div(goal).Mul(oneHundred),
		})
	}
	return projection
}

// ratioCapped normalizes value/limit into [0,1].
func ratioCapped(value, limit decimal.Decimal) decimal.Decimal {
	if value.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	ratio := value.Div(limit)
	if ratio.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return ratio
}

// inverseRatioCapped normalizes value/limit into [0,1] where lower is
// better: zero value scores 1, the limit or beyond scores 0.
func inverseRatioCapped(value, limit decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Sub(ratioCapped(value, limit))
}

func savingsRecommendations(plan *models.SavingsPlan) []string {
	var recommendations []string
	if plan.MonthsToGoal > 60 {
		recommendations = append(recommendations, "Consider increasing the monthly contribution to reach the goal faster")
	}
	if plan.AnnualInterestRate.LessThan(decimal.NewFromFloat(0.01)) {
		recommendations = append(recommendations, "Look for higher-yield savings options to accelerate the goal")
	}
	if plan.MonthlyContribution.LessThan(plan.GoalAmount.Mul(decimal.NewFromFloat(0.02))) {
		recommendations = append(recommendations, "The contribution rate is low relative to the goal amount")
	}
	return recommendations
}
