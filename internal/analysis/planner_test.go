package analysis

import (
	"testing"
	"time"

	"finsight/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PlannerTestSuite struct {
	suite.Suite
	planner PlannerInterface
	now     time.Time
}

func TestPlannerSuite(t *testing.T) {
	suite.Run(t, new(PlannerTestSuite))
}

func (s *PlannerTestSuite) SetupTest() {
	s.planner = NewPlanner(NewNoopMetrics())
	s.now = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
}

func (s *PlannerTestSuite) monthOf(income, expenses float64) []models.Transaction {
	return []models.Transaction{
		{
			ID: "t-income", AccountID: "acc-1", Date: s.now.AddDate(0, 0, -20),
			Amount: decimal.NewFromFloat(income), Description: "PAYROLL",
		},
		{
			ID: "t-spend", AccountID: "acc-1", Date: s.now.AddDate(0, 0, -10),
			Amount: decimal.NewFromFloat(-expenses), Description: "SPEND",
		},
	}
}

// Health assessment

func (s *PlannerTestSuite) TestAssessHealth_PerfectProfile() {
	// 20% savings rate, six months of expenses in liquid assets, no debt:
	// every sub-score saturates and the composite is a clean 100.
	accounts := []models.Account{
		{
			ID: "acc-1", Name: "Checking", Type: models.AccountTypeChecking,
			Balances: models.Balances{Current: decimal.NewFromInt(24000)},
		},
	}
	transactions := s.monthOf(5000, 4000)

	report, err := s.planner.AssessHealth(accounts, transactions, nil, s.now)

	s.Require().NoError(err)
	s.True(report.Score.Equal(decimal.NewFromInt(100)), "score was %s", report.Score)
	s.Equal(models.HealthStatusExcellent, report.Status)
	s.True(report.SubScores.SavingsRate.Equal(decimal.NewFromInt(1)))
	s.True(report.SubScores.EmergencyFund.Equal(decimal.NewFromInt(1)))
	s.True(report.SubScores.DebtManagement.Equal(decimal.NewFromInt(1)))
	s.True(report.SubScores.CreditUtilization.Equal(decimal.NewFromInt(1)))
	s.True(report.Metrics.SavingsRatePct.Equal(decimal.NewFromInt(20)))
	s.True(report.Metrics.EmergencyFundMonths.Equal(decimal.NewFromInt(6)))
	s.Empty(report.Recommendations)
}

func (s *PlannerTestSuite) TestAssessHealth_StrainedProfile() {
	accounts := []models.Account{
		{
			ID: "acc-1", Name: "Checking", Type: models.AccountTypeChecking,
			Balances: models.Balances{Current: decimal.NewFromInt(2000)},
		},
	}
	// Spending everything that comes in.
	transactions := s.monthOf(4000, 4000)
	liabilities := []models.Liability{
		{
			AccountID: "card-1", Type: models.LiabilityTypeCredit,
			InterestRate:       decimal.NewFromFloat(24.99),
			PaymentAmount:      decimal.NewFromInt(800),
			OutstandingBalance: decimal.NewFromInt(9000),
			CreditLimit:        decimal.NewFromInt(10000),
		},
	}

	report, err := s.planner.AssessHealth(accounts, transactions, liabilities, s.now)

	s.Require().NoError(err)
	// Savings rate 0, half a month of runway, 20% DTI, 90% utilization.
	s.True(report.SubScores.SavingsRate.IsZero())
	s.True(report.SubScores.CreditUtilization.IsZero())
	s.Equal(models.HealthStatusPoor, report.Status)
	s.NotEmpty(report.Recommendations)
	s.True(report.Metrics.NetWorth.Equal(decimal.NewFromInt(-7000)))
}

func (s *PlannerTestSuite) TestAssessHealth_SubScoresStayInRange() {
	// Extreme inputs must clamp, not overflow the [0,1] sub-score range.
	accounts := []models.Account{
		{
			ID: "acc-1", Name: "Savings", Type: models.AccountTypeSavings,
			Balances: models.Balances{Current: decimal.NewFromInt(1000000)},
		},
	}
	transactions := s.monthOf(50000, 500)

	report, err := s.planner.AssessHealth(accounts, transactions, nil, s.now)

	s.Require().NoError(err)
	for _, sub := range []decimal.Decimal{
		report.SubScores.SavingsRate,
		report.SubScores.EmergencyFund,
		report.SubScores.DebtManagement,
		report.SubScores.CreditUtilization,
	} {
		s.True(sub.GreaterThanOrEqual(decimal.Zero))
		s.True(sub.LessThanOrEqual(decimal.NewFromInt(1)))
	}
	s.True(report.Score.Equal(decimal.NewFromInt(100)))
}

func (s *PlannerTestSuite) TestAssessHealth_NoDataRejected() {
	report, err := s.planner.AssessHealth(nil, nil, nil, s.now)

	s.Nil(report)
	s.ErrorIs(err, ErrInsufficientData)
}

func (s *PlannerTestSuite) TestAssessHealth_OldTransactionsIgnored() {
	accounts := []models.Account{
		{
			ID: "acc-1", Name: "Checking", Type: models.AccountTypeChecking,
			Balances: models.Balances{Current: decimal.NewFromInt(5000)},
		},
	}
	old := models.Transaction{
		ID: "t-old", AccountID: "acc-1", Date: s.now.AddDate(0, 0, -45),
		Amount: decimal.NewFromInt(9999), Description: "OLD BONUS",
	}

	report, err := s.planner.AssessHealth(accounts, []models.Transaction{old}, nil, s.now)

	s.Require().NoError(err)
	s.True(report.Metrics.MonthlyIncome.IsZero(), "income outside the trailing 30 days must not count")
}

// Debt analysis

func (s *PlannerTestSuite) debts() []models.Liability {
	return []models.Liability{
		{
			AccountID: "card-1", Type: models.LiabilityTypeCredit,
			InterestRate:       decimal.NewFromFloat(19.99),
			PaymentAmount:      decimal.NewFromInt(150),
			OutstandingBalance: decimal.NewFromInt(5000),
			CreditLimit:        decimal.NewFromInt(8000),
		},
		{
			AccountID: "loan-1", Type: models.LiabilityTypeStudent,
			InterestRate:       decimal.NewFromFloat(5.5),
			PaymentAmount:      decimal.NewFromInt(200),
			OutstandingBalance: decimal.NewFromInt(3000),
		},
		{
			AccountID: "auto-1", Type: models.LiabilityTypeAuto,
			InterestRate:       decimal.NewFromFloat(7.2),
			PaymentAmount:      decimal.NewFromInt(300),
			OutstandingBalance: decimal.NewFromInt(12000),
		},
	}
}

func (s *PlannerTestSuite) TestAnalyzeDebt_TotalsAndStatus() {
	report, err := s.planner.AnalyzeDebt(s.debts(), decimal.NewFromInt(5000))

	s.Require().NoError(err)
	s.True(report.TotalDebt.Equal(decimal.NewFromInt(20000)))
	s.True(report.MonthlyPayments.Equal(decimal.NewFromInt(650)))
	s.True(report.DebtToIncomePct.Equal(decimal.NewFromInt(13)))
	s.Equal(models.DebtStatusExcellent, report.Status)
}

func (s *PlannerTestSuite) TestAnalyzeDebt_AvalancheOrdersByInterest() {
	report, err := s.planner.AnalyzeDebt(s.debts(), decimal.NewFromInt(5000))

	s.Require().NoError(err)
	s.Require().Len(report.Avalanche, 3)
	s.Equal("card-1", report.Avalanche[0].AccountID)
	s.Equal("auto-1", report.Avalanche[1].AccountID)
	s.Equal("loan-1", report.Avalanche[2].AccountID)
	s.Equal(1, report.Avalanche[0].Priority)
	s.Equal(3, report.Avalanche[2].Priority)
}

func (s *PlannerTestSuite) TestAnalyzeDebt_SnowballOrdersByBalance() {
	report, err := s.planner.AnalyzeDebt(s.debts(), decimal.NewFromInt(5000))

	s.Require().NoError(err)
	s.Require().Len(report.Snowball, 3)
	s.Equal("loan-1", report.Snowball[0].AccountID)
	s.Equal("card-1", report.Snowball[1].AccountID)
	s.Equal("auto-1", report.Snowball[2].AccountID)
}

func (s *PlannerTestSuite) TestAnalyzeDebt_ByTypeSummaries() {
	report, err := s.planner.AnalyzeDebt(s.debts(), decimal.NewFromInt(5000))

	s.Require().NoError(err)
	s.Require().Len(report.ByType, 3)
	// Sorted by type name.
	s.Equal(models.LiabilityTypeAuto, report.ByType[0].Type)
	s.Equal(models.LiabilityTypeCredit, report.ByType[1].Type)
	s.Equal(models.LiabilityTypeStudent, report.ByType[2].Type)
	s.True(report.ByType[1].TotalBalance.Equal(decimal.NewFromInt(5000)))
	s.True(report.ByType[1].PercentOfTotal.Equal(decimal.NewFromInt(25)))
}

func (s *PlannerTestSuite) TestAnalyzeDebt_CriticalRatio() {
	liabilities := []models.Liability{{
		AccountID: "card-1", Type: models.LiabilityTypeCredit,
		InterestRate:       decimal.NewFromFloat(24.99),
		PaymentAmount:      decimal.NewFromInt(2600),
		OutstandingBalance: decimal.NewFromInt(30000),
	}}

	report, err := s.planner.AnalyzeDebt(liabilities, decimal.NewFromInt(5000))

	s.Require().NoError(err)
	s.Equal(models.DebtStatusCritical, report.Status)
	s.NotEmpty(report.Recommendations)
}

func (s *PlannerTestSuite) TestAnalyzeDebt_NegativeIncomeRejected() {
	report, err := s.planner.AnalyzeDebt(s.debts(), decimal.NewFromInt(-1))

	s.Nil(report)
	s.ErrorIs(err, ErrInvalidParams)
}

func (s *PlannerTestSuite) TestAnalyzeDebt_NoLiabilities() {
	report, err := s.planner.AnalyzeDebt(nil, decimal.NewFromInt(5000))

	s.Require().NoError(err)
	s.True(report.TotalDebt.IsZero())
	s.Equal(models.DebtStatusExcellent, report.Status)
	s.Empty(report.Avalanche)
	s.Empty(report.Snowball)
}

// Savings planning

func (s *PlannerTestSuite) TestPlanSavingsGoal_GoalAlreadyMet() {
	plan, err := s.planner.PlanSavingsGoal(
		decimal.NewFromInt(1000), decimal.NewFromInt(1000), decimal.Zero, decimal.Zero)

	s.Require().NoError(err)
	s.Equal(0, plan.MonthsToGoal)
	s.Empty(plan.Projection)
}

func (s *PlannerTestSuite) TestPlanSavingsGoal_LinearWithoutInterest() {
	plan, err := s.planner.PlanSavingsGoal(
		decimal.NewFromInt(1000), decimal.Zero, decimal.NewFromInt(100), decimal.Zero)

	s.Require().NoError(err)
	s.Equal(10, plan.MonthsToGoal)
	s.Require().Len(plan.Projection, 10)
	s.True(plan.Projection[9].Balance.Equal(decimal.NewFromInt(1000)))
	s.True(plan.Projection[9].PercentOfGoal.Equal(decimal.NewFromInt(100)))
}

func (s *PlannerTestSuite) TestPlanSavingsGoal_PartialMonthRoundsUp() {
	plan, err := s.planner.PlanSavingsGoal(
		decimal.NewFromInt(1000), decimal.Zero, decimal.NewFromInt(300), decimal.Zero)

	s.Require().NoError(err)
	s.Equal(4, plan.MonthsToGoal)
}

func (s *PlannerTestSuite) TestPlanSavingsGoal_InterestShortensTheClimb() {
	// 12% annual, compounded monthly: the goal arrives in 10 months but the
	// final balance overshoots the contribution-only figure.
	plan, err := s.planner.PlanSavingsGoal(
		decimal.NewFromInt(1000), decimal.Zero, decimal.NewFromInt(100), decimal.NewFromFloat(0.12))

	s.Require().NoError(err)
	s.Equal(10, plan.MonthsToGoal)
	s.Require().Len(plan.Projection, 10)
	final := plan.Projection[len(plan.Projection)-1]
	s.True(final.Balance.GreaterThanOrEqual(decimal.NewFromInt(1000)))
	s.True(final.InterestEarned.IsPositive())
}

func (s *PlannerTestSuite) TestPlanSavingsGoal_UnreachableWithoutContribution() {
	plan, err := s.planner.PlanSavingsGoal(
		decimal.NewFromInt(1000), decimal.Zero, decimal.Zero, decimal.Zero)

	s.Nil(plan)
	s.ErrorIs(err, ErrUnreachableGoal)

	plan, err = s.planner.PlanSavingsGoal(
		decimal.NewFromInt(1000), decimal.Zero, decimal.Zero, decimal.NewFromFloat(0.05))

	s.Nil(plan)
	s.ErrorIs(err, ErrUnreachableGoal)
}

func (s *PlannerTestSuite) TestPlanSavingsGoal_CompoundingAloneCanReach() {
	// 10000 at 12% annual with no contributions doubles in roughly 70 months.
	plan, err := s.planner.PlanSavingsGoal(
		decimal.NewFromInt(20000), decimal.NewFromInt(10000), decimal.Zero, decimal.NewFromFloat(0.12))

	s.Require().NoError(err)
	s.Equal(70, plan.MonthsToGoal)
}

func (s *PlannerTestSuite) TestPlanSavingsGoal_InputValidation() {
	testCases := []struct {
		goal, current, contribution, rate decimal.Decimal
		name                              string
	}{
		{decimal.Zero, decimal.Zero, decimal.NewFromInt(100), decimal.Zero, "zero goal"},
		{decimal.NewFromInt(-5), decimal.Zero, decimal.NewFromInt(100), decimal.Zero, "negative goal"},
		{decimal.NewFromInt(1000), decimal.NewFromInt(-1), decimal.NewFromInt(100), decimal.Zero, "negative savings"},
		{decimal.NewFromInt(1000), decimal.Zero, decimal.NewFromInt(-100), decimal.Zero, "negative contribution"},
		{decimal.NewFromInt(1000), decimal.Zero, decimal.NewFromInt(100), decimal.NewFromFloat(-0.01), "negative rate"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			plan, err := s.planner.PlanSavingsGoal(tc.goal, tc.current, tc.contribution, tc.rate)
			s.Nil(plan)
			s.ErrorIs(err, ErrInvalidParams)
		})
	}
}
