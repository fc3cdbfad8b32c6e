package analysis

import (
	"fmt"
	"time"

	"finsight/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

// FixtureGenerator produces realistic transaction histories for demos and
// local development. A fixed seed yields a reproducible history.
type FixtureGenerator struct {
	faker *gofakeit.Faker
}

func NewFixtureGenerator(seed uint64) *FixtureGenerator {
	return &FixtureGenerator{faker: gofakeit.New(seed)}
}

type fixtureMerchant struct {
	name string
	min  float64
	max  float64
}

var fixtureMerchants = []fixtureMerchant{
	{"WHOLE FOODS MARKET", 20, 180},
	{"STARBUCKS", 4, 12},
	{"UBER TRIP", 8, 45},
	{"AMAZON.COM", 10, 220},
	{"SHELL OIL", 30, 70},
	{"CVS PHARMACY", 8, 60},
	{"CHIPOTLE", 10, 25},
	{"TARGET", 15, 150},
}

var fixtureBills = []struct {
	name   string
	amount float64
	day    int
}{
	{"NETFLIX.COM", 15.49, 3},
	{"SPOTIFY", 10.99, 7},
	{"COMCAST INTERNET", 79.99, 12},
	{"GEICO INSURANCE", 142.50, 18},
	{"CITY RENT LLC", 1850.00, 1},
}

// GenerateHistory builds a history of days length ending at end: biweekly
// salary credits, fixed monthly bills, and random daily purchases, all in
// the canonical sign convention.
func (g *FixtureGenerator) GenerateHistory(accountID string, end time.Time, days int) []models.Transaction {
	end = truncateToDay(end)
	start := end.AddDate(0, 0, -days)
	var transactions []models.Transaction

	// Biweekly payroll.
	for payday := start; !payday.After(end); payday = payday.AddDate(0, 0, 14) {
		transactions = append(transactions, g.transaction(
			accountID, payday, 3200.00, "ACME CORP PAYROLL"))
	}

	// Monthly bills on their fixed day of month.
	for _, bill := range fixtureBills {
		for month := start; !month.After(end); month = month.AddDate(0, 1, 0) {
			due := time.Date(month.Year(), month.Month(), bill.day, 0, 0, 0, 0, time.UTC)
			if due.Before(start) || due.After(end) {
				continue
			}
			transactions = append(transactions, g.transaction(
				accountID, due, -bill.amount, bill.name))
		}
	}

	// One to three purchases on random days.
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		purchases := g.faker.Number(0, 2)
		for i := 0; i < purchases; i++ {
			merchant := fixtureMerchants[g.faker.Number(0, len(fixtureMerchants)-1)]
			transactions = append(transactions, g.transaction(
				accountID, day, -g.faker.Price(merchant.min, merchant.max),
				fmt.Sprintf("%s #%s", merchant.name, g.faker.Numerify("####"))))
		}
	}

	return transactions
}

func (g *FixtureGenerator) transaction(accountID string, date time.Time, amount float64, description string) models.Transaction {
	return models.Transaction{
		ID:                 g.faker.UUID(),
		AccountID:          accountID,
		Date:               date,
		Amount:             decimal.NewFromFloat(amount).Round(2),
		Description:        description,
		MerchantNormalized: models.NormalizeMerchant(description),
	}
}
