package models

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingTransactionID = errors.New("transaction ID is required")
	ErrMissingAccountID     = errors.New("account ID is required")
	ErrMissingDate          = errors.New("transaction date is required")
)

// CategoryOther is the fallback for transactions no rule matches.
// CategoryUnbudgeted collects spending in categories a budget does not name.
const (
	CategoryOther      = "other"
	CategoryUnbudgeted = "unbudgeted"
)

// Transaction is the canonical, vendor-agnostic record for a single financial
// movement. Sign convention: Amount < 0 is an outflow (debit), Amount > 0 is
// an inflow (credit). Source adapters normalize to this convention; Plaid in
// particular reports debits as positive and is inverted during mapping.
type Transaction struct {
	ID                 string          `json:"id"`
	AccountID          string          `json:"account_id"`
	Date               time.Time       `json:"date"`
	Amount             decimal.Decimal `json:"amount"`
	Description        string          `json:"description"`
	Category           string          `json:"category,omitempty"`
	MerchantNormalized string          `json:"merchant_normalized,omitempty"`
	Pending            bool            `json:"pending"`
}

// Validate checks the invariants every well-formed transaction must satisfy.
func (t *Transaction) Validate() error {
	if t.ID == "" {
		return ErrMissingTransactionID
	}
	if t.AccountID == "" {
		return ErrMissingAccountID
	}
	if t.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}

// IsOutflow reports whether the transaction is a debit.
func (t *Transaction) IsOutflow() bool {
	return t.Amount.IsNegative()
}

// IsInflow reports whether the transaction is a credit.
func (t *Transaction) IsInflow() bool {
	return t.Amount.IsPositive()
}

// OutflowMagnitude returns the absolute debit amount, or zero for credits.
func (t *Transaction) OutflowMagnitude() decimal.Decimal {
	if t.IsOutflow() {
		return t.Amount.Neg()
	}
	return decimal.Zero
}

// Merchant returns the normalized merchant key, deriving it from the
// description when the adapter did not populate it.
func (t *Transaction) Merchant() string {
	if t.MerchantNormalized != "" {
		return t.MerchantNormalized
	}
	return NormalizeMerchant(t.Description)
}

// trailingReference matches transaction-id style suffixes that processors
// append to merchant descriptors, e.g. "NETFLIX.COM 8844332" or "UBER *TRIP 91X".
var trailingReference = regexp.MustCompile(`[\s*#]+\d[\dA-Za-z]*$`)

// NormalizeMerchant lower-cases, trims, and strips trailing reference suffixes
// from a raw merchant descriptor so that occurrences of the same merchant
// compare equal across statements.
func NormalizeMerchant(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	for {
		stripped := strings.TrimSpace(trailingReference.ReplaceAllString(s, ""))
		if stripped == s || stripped == "" {
			break
		}
		s = stripped
	}
	return s
}

// RecordError reports a single malformed record skipped during a batch
// operation. Batches never abort on individual bad records; callers receive
// the successful subset plus the rejections.
type RecordError struct {
	Index  int    `json:"index"`
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
}

func (e RecordError) Error() string {
	return e.Reason
}
