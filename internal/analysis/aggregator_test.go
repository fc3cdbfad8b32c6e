package analysis

import (
	"testing"
	"time"

	"finsight/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AggregatorTestSuite struct {
	suite.Suite
	aggregator AggregatorInterface
	base       time.Time
}

func TestAggregatorSuite(t *testing.T) {
	suite.Run(t, new(AggregatorTestSuite))
}

func (s *AggregatorTestSuite) SetupTest() {
	s.aggregator = NewAggregator(NewNoopMetrics())
	s.base = time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
}

func (s *AggregatorTestSuite) transaction(category string, amount float64, day int) models.Transaction {
	return models.Transaction{
		ID:          uuid.NewString(),
		AccountID:   "acc-1",
		Date:        s.base.AddDate(0, 0, day),
		Amount:      decimal.NewFromFloat(amount),
		Description: category + " purchase",
		Category:    category,
	}
}

func (s *AggregatorTestSuite) TestAggregate_ByCategory() {
	transactions := []models.Transaction{
		s.transaction("groceries", -120.00, 0),
		s.transaction("groceries", -80.00, 3),
		s.transaction("dining", -45.00, 5),
		s.transaction("income", 3200.00, 1),
	}

	result, err := s.aggregator.Aggregate(transactions, AggregateParams{GroupBy: models.GroupByCategory})

	s.Require().NoError(err)
	s.Equal(4, result.Count)
	s.Require().Len(result.Groups, 3)

	// Groups are sorted by key.
	s.Equal("dining", result.Groups[0].Key)
	s.Equal("groceries", result.Groups[1].Key)
	s.Equal("income", result.Groups[2].Key)

	s.True(result.Groups[1].TotalOutflow.Equal(decimal.NewFromInt(200)))
	s.Equal(2, result.Groups[1].Count)
	s.True(result.Groups[2].TotalInflow.Equal(decimal.NewFromInt(3200)))
	s.True(result.Net.Equal(decimal.NewFromFloat(2955.00)))
}

func (s *AggregatorTestSuite) TestAggregate_GroupsPartitionTotals() {
	history := NewFixtureGenerator(7).GenerateHistory("acc-1", s.base, 120)

	result, err := s.aggregator.Aggregate(history, AggregateParams{GroupBy: models.GroupByMerchant})
	s.Require().NoError(err)

	inflow, outflow, net := decimal.Zero, decimal.Zero, decimal.Zero
	count := 0
	for _, group := range result.Groups {
		inflow = inflow.Add(group.TotalInflow)
		outflow = outflow.Add(group.TotalOutflow)
		net = net.Add(group.Net)
		count += group.Count
	}

	s.True(inflow.Equal(result.TotalInflow), "group inflows must sum to the total")
	s.True(outflow.Equal(result.TotalOutflow), "group outflows must sum to the total")
	s.True(net.Equal(result.Net), "group nets must sum to the total")
	s.Equal(result.Count, count)
	s.Equal(len(history), result.Count)
}

func (s *AggregatorTestSuite) TestAggregate_TopGroupRefeedConsistency() {
	history := NewFixtureGenerator(11).GenerateHistory("acc-1", s.base, 90)

	result, err := s.aggregator.Aggregate(history, AggregateParams{GroupBy: models.GroupByMerchant, TopN: 3})
	s.Require().NoError(err)
	s.Require().NotEmpty(result.Top)

	top := result.Top[0]

	// Re-aggregating only the top merchant's transactions reproduces its totals.
	subset := make([]models.Transaction, 0)
	for _, txn := range history {
		if txn.Merchant() == top.Key {
			subset = append(subset, txn)
		}
	}

	refeed, err := s.aggregator.Aggregate(subset, AggregateParams{GroupBy: models.GroupByMerchant})
	s.Require().NoError(err)
	s.Require().Len(refeed.Groups, 1)
	s.Equal(top.Key, refeed.Groups[0].Key)
	s.Equal(top.Count, refeed.Groups[0].Count)
	s.True(top.TotalOutflow.Equal(refeed.Groups[0].TotalOutflow))
	s.True(top.Net.Equal(refeed.Groups[0].Net))
}

func (s *AggregatorTestSuite) TestAggregate_TopRankedByOutflow() {
	transactions := []models.Transaction{
		s.transaction("rentco", -1850.00, 1),
		s.transaction("grocer", -300.00, 2),
		s.transaction("coffee", -20.00, 3),
		s.transaction("employer", 3200.00, 4),
	}
	for i := range transactions {
		transactions[i].MerchantNormalized = transactions[i].Category
	}

	result, err := s.aggregator.Aggregate(transactions, AggregateParams{GroupBy: models.GroupByMerchant, TopN: 2})

	s.Require().NoError(err)
	s.Require().Len(result.Top, 2)
	s.Equal("rentco", result.Top[0].Key)
	s.Equal("grocer", result.Top[1].Key)
}

func (s *AggregatorTestSuite) TestAggregate_DateRangeInclusive() {
	transactions := []models.Transaction{
		s.transaction("groceries", -10.00, 0),
		s.transaction("groceries", -20.00, 5),
		s.transaction("groceries", -40.00, 10),
	}

	result, err := s.aggregator.Aggregate(transactions, AggregateParams{
		GroupBy:   models.GroupByCategory,
		StartDate: s.base,
		EndDate:   s.base.AddDate(0, 0, 5),
	})

	s.Require().NoError(err)
	s.Equal(2, result.Count)
	s.True(result.TotalOutflow.Equal(decimal.NewFromInt(30)))
}

func (s *AggregatorTestSuite) TestAggregate_PendingCounted() {
	pending := s.transaction("dining", -25.00, 1)
	pending.Pending = true
	transactions := []models.Transaction{pending, s.transaction("dining", -30.00, 2)}

	result, err := s.aggregator.Aggregate(transactions, AggregateParams{GroupBy: models.GroupByCategory})

	s.Require().NoError(err)
	s.Equal(1, result.PendingCount)
	s.Require().Len(result.Groups, 1)
	s.Equal(1, result.Groups[0].PendingCount)
	s.True(result.TotalOutflow.Equal(decimal.NewFromInt(55)),
		"pending transactions still count toward totals")
}

func (s *AggregatorTestSuite) TestAggregate_UncategorizedFallsBackToOther() {
	txn := s.transaction("", -15.00, 1)

	result, err := s.aggregator.Aggregate([]models.Transaction{txn}, AggregateParams{GroupBy: models.GroupByCategory})

	s.Require().NoError(err)
	s.Require().Len(result.Groups, 1)
	s.Equal(models.CategoryOther, result.Groups[0].Key)
}

func (s *AggregatorTestSuite) TestAggregate_ByTypeAndPeriods() {
	transactions := []models.Transaction{
		s.transaction("income", 3200.00, 0),
		s.transaction("dining", -45.00, 0),
	}

	testCases := []struct {
		groupBy      string
		expectedKeys []string
		name         string
	}{
		{models.GroupByType, []string{"credit", "debit"}, "by type"},
		{models.GroupByDay, []string{"2025-04-01"}, "by day"},
		{models.GroupByWeek, []string{"2025-W14"}, "by ISO week"},
		{models.GroupByMonth, []string{"2025-04"}, "by month"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			result, err := s.aggregator.Aggregate(transactions, AggregateParams{GroupBy: tc.groupBy})
			s.Require().NoError(err)
			keys := make([]string, len(result.Groups))
			for i, group := range result.Groups {
				keys[i] = group.Key
			}
			s.Equal(tc.expectedKeys, keys)
		})
	}
}

func (s *AggregatorTestSuite) TestAggregate_ParamValidation() {
	transactions := []models.Transaction{s.transaction("dining", -45.00, 0)}

	result, err := s.aggregator.Aggregate(transactions, AggregateParams{GroupBy: "vibe"})
	s.Nil(result)
	s.ErrorIs(err, ErrInvalidParams)

	result, err = s.aggregator.Aggregate(transactions, AggregateParams{
		GroupBy:   models.GroupByCategory,
		StartDate: s.base.AddDate(0, 0, 10),
		EndDate:   s.base,
	})
	s.Nil(result)
	s.ErrorIs(err, ErrInvalidParams)
}

// Search

func (s *AggregatorTestSuite) TestSearch_TextMatchesAcrossFields() {
	transactions := []models.Transaction{
		s.transaction("dining", -14.50, 1),
		s.transaction("groceries", -84.12, 2),
	}
	transactions[0].Description = "CHIPOTLE ONLINE"

	matches := s.aggregator.Search(transactions, SearchQuery{Text: "chipotle"})
	s.Len(matches, 1)

	matches = s.aggregator.Search(transactions, SearchQuery{Text: "groceries"})
	s.Len(matches, 1, "text should match the category too")
}

func (s *AggregatorTestSuite) TestSearch_AmountAndDateRanges() {
	transactions := []models.Transaction{
		s.transaction("dining", -14.50, 1),
		s.transaction("groceries", -84.12, 5),
		s.transaction("income", 3200.00, 9),
	}

	min := decimal.NewFromInt(-100)
	max := decimal.NewFromInt(0)
	matches := s.aggregator.Search(transactions, SearchQuery{MinAmount: &min, MaxAmount: &max})
	s.Len(matches, 2, "amount range should select only the outflows")

	matches = s.aggregator.Search(transactions, SearchQuery{
		StartDate: s.base.AddDate(0, 0, 4),
		EndDate:   s.base.AddDate(0, 0, 6),
	})
	s.Require().Len(matches, 1)
	s.Equal("groceries", matches[0].Category)
}

func (s *AggregatorTestSuite) TestSearch_EmptyQueryReturnsAll() {
	transactions := []models.Transaction{
		s.transaction("dining", -14.50, 1),
		s.transaction("groceries", -84.12, 2),
	}

	matches := s.aggregator.Search(transactions, SearchQuery{})
	s.Len(matches, len(transactions))
}

// Merchant profiles

func (s *AggregatorTestSuite) TestAnalyzeMerchants_ProfilesAndRanking() {
	transactions := []models.Transaction{
		s.transaction("groceries", -100.00, 0),
		s.transaction("groceries", -140.00, 14),
		s.transaction("groceries", -120.00, 28),
		s.transaction("dining", -20.00, 10),
	}
	transactions[0].MerchantNormalized = "grocer"
	transactions[1].MerchantNormalized = "grocer"
	transactions[2].MerchantNormalized = "grocer"
	transactions[3].MerchantNormalized = "cafe"

	profiles, err := s.aggregator.AnalyzeMerchants(transactions, MerchantParams{
		WindowDays: 60,
		TopN:       5,
		Now:        s.base.AddDate(0, 0, 30),
	})

	s.Require().NoError(err)
	s.Require().Len(profiles, 2)

	grocer := profiles[0]
	s.Equal("grocer", grocer.MerchantNormalized)
	s.True(grocer.TotalSpent.Equal(decimal.NewFromInt(360)))
	s.Equal(3, grocer.Count)
	s.True(grocer.AverageAmount.Equal(decimal.NewFromInt(120)))
	s.True(grocer.MeanGapDays.Equal(decimal.NewFromInt(14)))
	s.True(grocer.FirstSeen.Equal(s.base))
	s.True(grocer.LastSeen.Equal(s.base.AddDate(0, 0, 28)))

	s.Equal("cafe", profiles[1].MerchantNormalized)
}

func (s *AggregatorTestSuite) TestAnalyzeMerchants_WindowValidation() {
	profiles, err := s.aggregator.AnalyzeMerchants(nil, MerchantParams{WindowDays: 0})
	s.Nil(profiles)
	s.ErrorIs(err, ErrInvalidParams)
}
