package sources

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PlaidTestSuite struct {
	suite.Suite
}

func TestPlaidSuite(t *testing.T) {
	suite.Run(t, new(PlaidTestSuite))
}

func (s *PlaidTestSuite) TestNormalizeTransactions_InvertsSign() {
	raw := []PlaidTransaction{
		{
			TransactionID: "p-1",
			AccountID:     "acc-1",
			Amount:        12.99, // Plaid: positive = debit
			Date:          "2025-03-01",
			Name:          "NETFLIX.COM 8844332",
			MerchantName:  "Netflix",
			Category:      []string{"Entertainment"},
		},
		{
			TransactionID: "p-2",
			AccountID:     "acc-1",
			Amount:        -3200.00, // Plaid: negative = credit
			Date:          "2025-03-05",
			Name:          "ACME CORP PAYROLL",
		},
	}

	normalized, rejected := NormalizePlaidTransactions(raw)

	s.Empty(rejected)
	s.Require().Len(normalized, 2)

	debit := normalized[0]
	s.True(debit.Amount.Equal(decimal.NewFromFloat(-12.99)), "Plaid debits become canonical outflows")
	s.True(debit.IsOutflow())
	s.Equal("netflix", debit.MerchantNormalized, "merchant name wins over the raw descriptor")
	s.Equal("entertainment", debit.Category)
	s.True(debit.Date.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))

	credit := normalized[1]
	s.True(credit.Amount.Equal(decimal.NewFromInt(3200)))
	s.True(credit.IsInflow())
}

func (s *PlaidTestSuite) TestNormalizeTransactions_PendingCarriedThrough() {
	raw := []PlaidTransaction{{
		TransactionID: "p-1", AccountID: "acc-1", Amount: 25.00,
		Date: "2025-03-01", Name: "CHIPOTLE", Pending: true,
	}}

	normalized, rejected := NormalizePlaidTransactions(raw)

	s.Empty(rejected)
	s.Require().Len(normalized, 1)
	s.True(normalized[0].Pending)
}

func (s *PlaidTestSuite) TestNormalizeTransactions_SkipsAndReportsMalformed() {
	raw := []PlaidTransaction{
		{TransactionID: "p-1", AccountID: "acc-1", Amount: 10, Date: "03/01/2025", Name: "BAD DATE"},
		{TransactionID: "", AccountID: "acc-1", Amount: 10, Date: "2025-03-01", Name: "NO ID"},
		{TransactionID: "p-3", AccountID: "acc-1", Amount: 10, Date: "2025-03-01", Name: "GOOD"},
	}

	normalized, rejected := NormalizePlaidTransactions(raw)

	s.Len(normalized, 1)
	s.Require().Len(rejected, 2)
	s.Equal(0, rejected[0].Index)
	s.Contains(rejected[0].Reason, "unparseable date")
	s.Equal(1, rejected[1].Index)
}

func (s *PlaidTestSuite) TestNormalizeAccounts_SubtypePreferred() {
	available := 950.25
	raw := []PlaidAccount{{
		AccountID: "acc-1",
		Name:      "Everyday Checking",
		Type:      "depository",
		Subtype:   "checking",
	}}
	raw[0].Balances.Available = &available
	raw[0].Balances.Current = 1000.00
	raw[0].Balances.ISOCurrencyCode = "USD"

	normalized, rejected := NormalizePlaidAccounts(raw)

	s.Empty(rejected)
	s.Require().Len(normalized, 1)

	account := normalized[0]
	s.Equal("checking", account.Type, "Plaid's subtype names the canonical type")
	s.True(account.Balances.Available.Equal(decimal.NewFromFloat(950.25)))
	s.True(account.Balances.Current.Equal(decimal.NewFromInt(1000)))
	s.Equal("USD", account.Currency)
}

func (s *PlaidTestSuite) TestNormalizeAccounts_UnknownTypeRejected() {
	raw := []PlaidAccount{{
		AccountID: "acc-1",
		Name:      "Mystery",
		Type:      "depository",
		Subtype:   "prepaid",
	}}

	normalized, rejected := NormalizePlaidAccounts(raw)

	s.Empty(normalized)
	s.Require().Len(rejected, 1)
	s.Equal("acc-1", rejected[0].ID)
}
