package models

import (
	"errors"

	"github.com/shopspring/decimal"
)

const (
	AccountTypeChecking   = "checking"
	AccountTypeSavings    = "savings"
	AccountTypeCredit     = "credit"
	AccountTypeInvestment = "investment"
	AccountTypeLoan       = "loan"
)

var ErrInvalidAccountType = errors.New("invalid account type")

// Balances carries the two balance views vendors report. Available may lag
// Current while transactions are pending.
type Balances struct {
	Available decimal.Decimal `json:"available"`
	Current   decimal.Decimal `json:"current"`
}

// Account is the canonical representation of a financial account.
type Account struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Balances Balances `json:"balances"`
	Currency string   `json:"currency"`
}

// Validate checks identity and type invariants.
func (a *Account) Validate() error {
	if a.ID == "" {
		return ErrMissingAccountID
	}
	if !IsValidAccountType(a.Type) {
		return ErrInvalidAccountType
	}
	return nil
}

// IsLiquid reports whether the account holds readily spendable funds.
func (a *Account) IsLiquid() bool {
	return a.Type == AccountTypeChecking || a.Type == AccountTypeSavings
}

// SpendableBalance prefers the available balance, falling back to current
// when the vendor did not report availability.
func (a *Account) SpendableBalance() decimal.Decimal {
	if !a.Balances.Available.IsZero() {
		return a.Balances.Available
	}
	return a.Balances.Current
}

func IsValidAccountType(t string) bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCredit,
		AccountTypeInvestment, AccountTypeLoan:
		return true
	}
	return false
}
