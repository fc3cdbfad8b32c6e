package models

import "github.com/shopspring/decimal"

const (
	LiabilityTypeCredit   = "credit"
	LiabilityTypeStudent  = "student"
	LiabilityTypeMortgage = "mortgage"
	LiabilityTypeAuto     = "auto"
	LiabilityTypePersonal = "personal"
)

// Liability is an outstanding debt obligation. InterestRate is an annual
// percentage (e.g. 19.99 for a card), PaymentAmount the required monthly
// payment.
type Liability struct {
	AccountID          string          `json:"account_id"`
	Type               string          `json:"type"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	PaymentAmount      decimal.Decimal `json:"payment_amount"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	CreditLimit        decimal.Decimal `json:"credit_limit,omitempty"`
}
