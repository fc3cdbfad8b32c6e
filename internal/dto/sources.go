package dto

import (
	"finsight/internal/models"
	"finsight/internal/sources"
)

// Source normalization DTOs. The request bodies are the vendor payloads
// verbatim; the response is always the canonical model plus rejections.

// NormalizePlaidRequest carries raw Plaid transactions and accounts.
type NormalizePlaidRequest struct {
	Transactions []sources.PlaidTransaction `json:"transactions" validate:"omitempty,dive"`
	Accounts     []sources.PlaidAccount     `json:"accounts" validate:"omitempty,dive"`
}

// NormalizeTellerRequest carries raw Teller transactions and accounts.
type NormalizeTellerRequest struct {
	Transactions []sources.TellerTransaction `json:"transactions" validate:"omitempty,dive"`
	Accounts     []sources.TellerAccount     `json:"accounts" validate:"omitempty,dive"`
}

// NormalizeResponse returns the canonical records plus per-record rejections.
type NormalizeResponse struct {
	Transactions []models.Transaction `json:"transactions"`
	Accounts     []models.Account     `json:"accounts,omitempty"`
	Rejected     []models.RecordError `json:"rejected,omitempty"`
}
