package sources

import (
	"fmt"
	"time"

	"finsight/internal/models"

	"github.com/shopspring/decimal"
)

const (
	tellerDateLayout   = "2006-01-02"
	tellerStatusPosted = "posted"
)

// TellerTransaction mirrors a Teller /accounts/{id}/transactions item.
// Teller serializes amounts as signed decimal strings and already uses the
// canonical sign convention (negative = outflow).
type TellerTransaction struct {
	ID          string `json:"id"`
	AccountID   string `json:"account_id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Status      string `json:"status"`
	Type        string `json:"type,omitempty"`
	Details     struct {
		Category     string `json:"category,omitempty"`
		Counterparty struct {
			Name string `json:"name,omitempty"`
		} `json:"counterparty"`
	} `json:"details"`
}

// TellerAccount mirrors a Teller /accounts item joined with its balance.
type TellerAccount struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Subtype   string `json:"subtype,omitempty"`
	Currency  string `json:"currency,omitempty"`
	Available string `json:"available,omitempty"`
	Ledger    string `json:"ledger,omitempty"`
}

// NormalizeTellerTransactions maps Teller items to canonical transactions.
// Amount strings are parsed exactly; anything unparseable is skipped and
// reported rather than rounded through a float.
func NormalizeTellerTransactions(raw []TellerTransaction) ([]models.Transaction, []models.RecordError) {
	normalized := make([]models.Transaction, 0, len(raw))
	rejected := make([]models.RecordError, 0)

	for i, item := range raw {
		date, err := time.Parse(tellerDateLayout, item.Date)
		if err != nil {
			rejected = append(rejected, models.RecordError{
				Index:  i,
				ID:     item.ID,
				Reason: fmt.Sprintf("unparseable date %q", item.Date),
			})
			continue
		}

		amount, err := decimal.NewFromString(item.Amount)
		if err != nil {
			rejected = append(rejected, models.RecordError{
				Index:  i,
				ID:     item.ID,
				Reason: fmt.Sprintf("unparseable amount %q", item.Amount),
			})
			continue
		}

		merchant := item.Details.Counterparty.Name
		if merchant == "" {
			merchant = item.Description
		}

		txn := models.Transaction{
			ID:                 item.ID,
			AccountID:          item.AccountID,
			Date:               date,
			Amount:             amount,
			Description:        item.Description,
			MerchantNormalized: models.NormalizeMerchant(merchant),
			Pending:            item.Status != tellerStatusPosted,
		}
		if item.Details.Category != "" {
			txn.Category = models.NormalizeMerchant(item.Details.Category)
		}

		if err := txn.Validate(); err != nil {
			rejected = append(rejected, models.RecordError{
				Index:  i,
				ID:     item.ID,
				Reason: err.Error(),
			})
			continue
		}
		normalized = append(normalized, txn)
	}

	return normalized, rejected
}

// NormalizeTellerAccounts maps Teller accounts to the canonical account
// model. The ledger balance is Teller's settled figure and maps to Current.
func NormalizeTellerAccounts(raw []TellerAccount) ([]models.Account, []models.RecordError) {
	normalized := make([]models.Account, 0, len(raw))
	rejected := make([]models.RecordError, 0)

	for i, item := range raw {
		accountType := item.Type
		if models.IsValidAccountType(item.Subtype) {
			accountType = item.Subtype
		}

		account := models.Account{
			ID:       item.ID,
			Name:     item.Name,
			Type:     accountType,
			Currency: item.Currency,
		}

		if item.Ledger != "" {
			current, err := decimal.NewFromString(item.Ledger)
			if err != nil {
				rejected = append(rejected, models.RecordError{
					Index:  i,
					ID:     item.ID,
					Reason: fmt.Sprintf("unparseable ledger balance %q", item.Ledger),
				})
				continue
			}
			account.Balances.Current = current
		}
		if item.Available != "" {
			available, err := decimal.NewFromString(item.Available)
			if err != nil {
				rejected = append(rejected, models.RecordError{
					Index:  i,
					ID:     item.ID,
					Reason: fmt.Sprintf("unparseable available balance %q", item.Available),
				})
				continue
			}
			account.Balances.Available = available
		}

		if err := account.Validate(); err != nil {
			rejected = append(rejected, models.RecordError{
				Index:  i,
				ID:     item.ID,
				Reason: err.Error(),
			})
			continue
		}
		normalized = append(normalized, account)
	}

	return normalized, rejected
}
