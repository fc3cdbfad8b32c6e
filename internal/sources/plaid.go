// Package sources maps vendor wire formats onto the canonical models.
// The analytics core never sees a vendor shape; each adapter owns the
// quirks of its API, most importantly sign conventions.
package sources

import (
	"fmt"
	"time"

	"finsight/internal/models"

	"github.com/shopspring/decimal"
)

const plaidDateLayout = "2006-01-02"

// PlaidTransaction mirrors the fields of a Plaid /transactions/get item that
// the canonical model consumes. Plaid reports debits as positive amounts.
type PlaidTransaction struct {
	TransactionID string   `json:"transaction_id"`
	AccountID     string   `json:"account_id"`
	Amount        float64  `json:"amount"`
	Date          string   `json:"date"`
	Name          string   `json:"name"`
	MerchantName  string   `json:"merchant_name,omitempty"`
	Pending       bool     `json:"pending"`
	Category      []string `json:"category,omitempty"`
}

// PlaidAccount mirrors a Plaid /accounts/get item.
type PlaidAccount struct {
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Subtype   string `json:"subtype,omitempty"`
	Balances  struct {
		Available       *float64 `json:"available"`
		Current         float64  `json:"current"`
		ISOCurrencyCode string   `json:"iso_currency_code,omitempty"`
	} `json:"balances"`
}

// NormalizePlaidTransactions maps Plaid items to canonical transactions,
// inverting Plaid's sign convention (positive = debit) to the canonical one
// (negative = outflow). Malformed items are skipped and reported.
func NormalizePlaidTransactions(raw []PlaidTransaction) ([]models.Transaction, []models.RecordError) {
	normalized := make([]models.Transaction, 0, len(raw))
	rejected := make([]models.RecordError, 0)

	for i, item := range raw {
		date, err := time.Parse(plaidDateLayout, item.Date)
		if err != nil {
			rejected = append(rejected, models.RecordError{
				Index:  i,
				ID:     item.TransactionID,
				Reason: fmt.Sprintf("unparseable date %q", item.Date),
			})
			continue
		}

		description := item.Name
		if item.MerchantName != "" {
			description = item.MerchantName
		}

		txn := models.Transaction{
			ID:                 item.TransactionID,
			AccountID:          item.AccountID,
			Date:               date,
			Amount:             decimal.NewFromFloat(item.Amount).Neg(),
			Description:        item.Name,
			MerchantNormalized: models.NormalizeMerchant(description),
			Pending:            item.Pending,
		}
		if len(item.Category) > 0 {
			txn.Category = models.NormalizeMerchant(item.Category[0])
		}

		if err := txn.Validate(); err != nil {
			rejected = append(rejected, models.RecordError{
				Index:  i,
				ID:     item.TransactionID,
				Reason: err.Error(),
			})
			continue
		}
		normalized = append(normalized, txn)
	}

	return normalized, rejected
}

// NormalizePlaidAccounts maps Plaid accounts to the canonical account model.
// Plaid's subtype (e.g. "checking") is more specific than its type
// ("depository") and is preferred when it names a canonical type.
func NormalizePlaidAccounts(raw []PlaidAccount) ([]models.Account, []models.RecordError) {
	normalized := make([]models.Account, 0, len(raw))
	rejected := make([]models.RecordError, 0)

	for i, item := range raw {
		accountType := item.Type
		if models.IsValidAccountType(item.Subtype) {
			accountType = item.Subtype
		}

		account := models.Account{
			ID:       item.AccountID,
			Name:     item.Name,
			Type:     accountType,
			Currency: item.Balances.ISOCurrencyCode,
		}
		account.Balances.Current = decimal.NewFromFloat(item.Balances.Current)
		if item.Balances.Available != nil {
			account.Balances.Available = decimal.NewFromFloat(*item.Balances.Available)
		}

		if err := account.Validate(); err != nil {
			rejected = append(rejected, models.RecordError{
				Index:  i,
				ID:     item.AccountID,
				Reason: err.Error(),
			})
			continue
		}
		normalized = append(normalized, account)
	}

	return normalized, rejected
}
