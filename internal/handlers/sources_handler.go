package handlers

import (
	"net/http"

	"finsight/internal/dto"
	"finsight/internal/errors"
	"finsight/internal/sources"

	"github.com/labstack/echo/v4"
)

// SourcesHandler normalizes vendor payloads into the canonical model.
type SourcesHandler struct{}

// NewSourcesHandler creates a new sources handler
func NewSourcesHandler() *SourcesHandler {
	return &SourcesHandler{}
}

// NormalizePlaid maps a raw Plaid payload to canonical transactions/accounts
func (h *SourcesHandler) NormalizePlaid(c echo.Context) error {
	var req dto.NormalizePlaidRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.SourceMalformedPayload, errors.WithDetails(err.Error()))
	}
	if len(req.Transactions) == 0 && len(req.Accounts) == 0 {
		return SendError(c, errors.ValidationRequiredField,
			errors.WithDetails("either transactions or accounts must be present"))
	}

	transactions, rejectedTxns := sources.NormalizePlaidTransactions(req.Transactions)
	accounts, rejectedAccounts := sources.NormalizePlaidAccounts(req.Accounts)

	response := dto.NormalizeResponse{
		Transactions: transactions,
		Accounts:     accounts,
		Rejected:     append(rejectedTxns, rejectedAccounts...),
	}
	if len(response.Transactions) == 0 && len(response.Accounts) == 0 {
		return SendError(c, errors.SourceAllRecordsInvalid)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: response})
}

// NormalizeTeller maps a raw Teller payload to canonical transactions/accounts
func (h *SourcesHandler) NormalizeTeller(c echo.Context) error {
	var req dto.NormalizeTellerRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.SourceMalformedPayload, errors.WithDetails(err.Error()))
	}
	if len(req.Transactions) == 0 && len(req.Accounts) == 0 {
		return SendError(c, errors.ValidationRequiredField,
			errors.WithDetails("either transactions or accounts must be present"))
	}

	transactions, rejectedTxns := sources.NormalizeTellerTransactions(req.Transactions)
	accounts, rejectedAccounts := sources.NormalizeTellerAccounts(req.Accounts)

	response := dto.NormalizeResponse{
		Transactions: transactions,
		Accounts:     accounts,
		Rejected:     append(rejectedTxns, rejectedAccounts...),
	}
	if len(response.Transactions) == 0 && len(response.Accounts) == 0 {
		return SendError(c, errors.SourceAllRecordsInvalid)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: response})
}
