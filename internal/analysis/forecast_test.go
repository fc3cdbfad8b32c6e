package analysis

import (
	"testing"
	"time"

	"finsight/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ForecasterTestSuite struct {
	suite.Suite
	forecaster ForecasterInterface
	now        time.Time
}

func TestForecasterSuite(t *testing.T) {
	suite.Run(t, new(ForecasterTestSuite))
}

func (s *ForecasterTestSuite) SetupTest() {
	s.forecaster = NewForecaster(NewNoopMetrics())
	s.now = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
}

func (s *ForecasterTestSuite) transaction(amount float64, daysAgo int) models.Transaction {
	return models.Transaction{
		ID:          uuid.NewString(),
		AccountID:   "acc-1",
		Date:        s.now.AddDate(0, 0, -daysAgo),
		Amount:      decimal.NewFromFloat(amount),
		Description: "HISTORY",
	}
}

func (s *ForecasterTestSuite) TestForecast_BaselineProjection() {
	// 90 days of history netting -9 per day.
	transactions := make([]models.Transaction, 0, 90)
	for day := 0; day < 90; day++ {
		transactions = append(transactions, s.transaction(-9, day))
	}

	summary, err := s.forecaster.Forecast(transactions, decimal.NewFromInt(1000), nil, ForecastParams{
		HorizonDays: 10,
		Now:         s.now,
	})

	s.Require().NoError(err)
	s.Equal(10, summary.HorizonDays)
	s.Require().Len(summary.Points, 10)
	s.True(summary.BaselineDaily.Equal(decimal.NewFromInt(-9)))
	s.True(summary.EndingBalance.Equal(decimal.NewFromInt(910)))
	s.True(summary.NetChange.Equal(decimal.NewFromInt(-90)))

	s.True(summary.Points[0].Date.Equal(s.now.AddDate(0, 0, 1)))
	s.True(summary.Points[0].ProjectedBalance.Equal(decimal.NewFromInt(991)))
	s.True(summary.Points[9].ProjectedBalance.Equal(summary.EndingBalance))
}

func (s *ForecasterTestSuite) TestForecast_RecurringEventsApplied() {
	occurrence := s.transaction(-50, 10)
	rent := models.RecurringExpense{
		MerchantNormalized: "city rent llc",
		TypicalAmount:      decimal.NewFromInt(-50),
		IntervalDays:       30,
		Frequency:          models.FrequencyMonthly,
		Occurrences:        []models.Transaction{occurrence},
		NextExpectedDate:   s.now.AddDate(0, 0, 5),
	}

	// The only history is the recurring occurrence itself, so the baseline
	// must be zero: its effect shows up only through the projected event.
	summary, err := s.forecaster.Forecast(
		[]models.Transaction{occurrence},
		decimal.NewFromInt(500),
		[]models.RecurringExpense{rent},
		ForecastParams{HorizonDays: 40, IncludeRecurring: true, Now: s.now},
	)

	s.Require().NoError(err)
	s.True(summary.BaselineDaily.IsZero(), "recurring occurrences are excluded from the baseline")
	s.True(summary.EndingBalance.Equal(decimal.NewFromInt(400)), "two rent events fall inside the horizon")

	day5 := summary.Points[4]
	s.True(day5.NetFlow.Equal(decimal.NewFromInt(-50)))
	s.Equal([]string{"city rent llc"}, day5.ContributingEvents)

	day35 := summary.Points[34]
	s.True(day35.NetFlow.Equal(decimal.NewFromInt(-50)), "the event repeats one interval later")

	day6 := summary.Points[5]
	s.True(day6.NetFlow.IsZero())
	s.Empty(day6.ContributingEvents)
}

func (s *ForecasterTestSuite) TestForecast_RecurringExcludedWhenDisabled() {
	occurrence := s.transaction(-50, 10)
	rent := models.RecurringExpense{
		MerchantNormalized: "city rent llc",
		TypicalAmount:      decimal.NewFromInt(-50),
		IntervalDays:       30,
		Occurrences:        []models.Transaction{occurrence},
		NextExpectedDate:   s.now.AddDate(0, 0, 5),
	}

	summary, err := s.forecaster.Forecast(
		[]models.Transaction{occurrence},
		decimal.NewFromInt(500),
		[]models.RecurringExpense{rent},
		ForecastParams{HorizonDays: 40, IncludeRecurring: false, Now: s.now},
	)

	s.Require().NoError(err)
	s.True(summary.EndingBalance.Equal(decimal.NewFromInt(500)),
		"with recurring disabled and a zero baseline the balance is flat")
}

func (s *ForecasterTestSuite) TestForecast_ExcludePending() {
	pending := s.transaction(-900, 5)
	pending.Pending = true
	transactions := []models.Transaction{
		s.transaction(-90, 10),
		pending,
	}

	withPending, err := s.forecaster.Forecast(transactions, decimal.Zero, nil, ForecastParams{
		HorizonDays: 1, TrailingWindowDays: 30, Now: s.now,
	})
	s.Require().NoError(err)

	withoutPending, err := s.forecaster.Forecast(transactions, decimal.Zero, nil, ForecastParams{
		HorizonDays: 1, TrailingWindowDays: 30, ExcludePending: true, Now: s.now,
	})
	s.Require().NoError(err)

	s.True(withPending.BaselineDaily.Equal(decimal.NewFromInt(-33)))
	s.True(withoutPending.BaselineDaily.Equal(decimal.NewFromInt(-3)))
}

func (s *ForecasterTestSuite) TestForecast_Deterministic() {
	history := NewFixtureGenerator(3).GenerateHistory("acc-1", s.now, 120)
	params := ForecastParams{HorizonDays: 30, IncludeRecurring: false, Now: s.now}

	first, err := s.forecaster.Forecast(history, decimal.NewFromInt(2500), nil, params)
	s.Require().NoError(err)
	second, err := s.forecaster.Forecast(history, decimal.NewFromInt(2500), nil, params)
	s.Require().NoError(err)

	s.Equal(first, second, "identical inputs must produce identical forecasts")
}

func (s *ForecasterTestSuite) TestForecast_NonPositiveHorizonRejected() {
	transactions := []models.Transaction{s.transaction(-10, 1)}

	for _, horizon := range []int{0, -7} {
		summary, err := s.forecaster.Forecast(transactions, decimal.Zero, nil, ForecastParams{
			HorizonDays: horizon, Now: s.now,
		})
		s.Nil(summary)
		s.ErrorIs(err, ErrInvalidParams)
	}
}

func (s *ForecasterTestSuite) TestForecast_EmptyHistoryRejected() {
	summary, err := s.forecaster.Forecast(nil, decimal.NewFromInt(1000), nil, ForecastParams{
		HorizonDays: 30, Now: s.now,
	})

	s.Nil(summary)
	s.ErrorIs(err, ErrInsufficientData)
}
