package handlers

import (
	"net/http"
	"time"

	"finsight/internal/analysis"
	"finsight/internal/dto"
	"finsight/internal/errors"

	"github.com/labstack/echo/v4"
)

// AnalysisHandler exposes the analytics services over HTTP. Every operation
// is a pure transformation of the request payload; nothing is stored.
type AnalysisHandler struct {
	categorizer analysis.CategorizerInterface
	detector    analysis.RecurringDetectorInterface
	aggregator  analysis.AggregatorInterface
	budget      analysis.BudgetAnalyzerInterface
	forecaster  analysis.ForecasterInterface
	planner     analysis.PlannerInterface
	income      analysis.IncomeAnalyzerInterface
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(
	categorizer analysis.CategorizerInterface,
	detector analysis.RecurringDetectorInterface,
	aggregator analysis.AggregatorInterface,
	budget analysis.BudgetAnalyzerInterface,
	forecaster analysis.ForecasterInterface,
	planner analysis.PlannerInterface,
	income analysis.IncomeAnalyzerInterface,
) *AnalysisHandler {
	return &AnalysisHandler{
		categorizer: categorizer,
		detector:    detector,
		aggregator:  aggregator,
		budget:      budget,
		forecaster:  forecaster,
		planner:     planner,
		income:      income,
	}
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// Categorize labels a batch of transactions
func (h *AnalysisHandler) Categorize(c echo.Context) error {
	var req dto.CategorizeRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}
	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	categorized, rejected := h.categorizer.Categorize(req.Transactions)

	return c.JSON(http.StatusOK, SuccessResponse{Data: dto.CategorizeResponse{
		Transactions: categorized,
		Rejected:     rejected,
	}})
}

// DetectRecurring finds regularly repeating outflows
func (h *AnalysisHandler) DetectRecurring(c echo.Context) error {
	var req dto.RecurringRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}
	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	recurring, err := h.detector.DetectRecurring(req.Transactions, analysis.RecurringParams{
		MinOccurrences:  req.MinOccurrences,
		AmountTolerance: req.AmountTolerance,
		WindowDays:      req.WindowDays,
		Now:             timeOrZero(req.AsOf),
	})
	if err != nil {
		return SendAnalysisError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: dto.RecurringResponse{
		Recurring: recurring,
		Count:     len(recurring),
	}})
}

// Aggregate buckets transactions by a grouping dimension
func (h *AnalysisHandler) Aggregate(c echo.Context) error {
	var req dto.AggregateRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}
	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	result, err := h.aggregator.Aggregate(req.Transactions, analysis.AggregateParams{
		GroupBy:   req.GroupBy,
		StartDate: timeOrZero(req.StartDate),
		EndDate:   timeOrZero(req.EndDate),
		TopN:      req.TopN,
	})
	if err != nil {
		return SendAnalysisError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: result})
}

// Search filters transactions by text and ranges
func (h *AnalysisHandler) Search(c echo.Context) error {
	var req dto.SearchRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}
	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	matches := h.aggregator.Search(req.Transactions, analysis.SearchQuery{
		Text:      req.Text,
		MinAmount: req.MinAmount,
		MaxAmount: req.MaxAmount,
		StartDate: timeOrZero(req.StartDate),
		EndDate:   timeOrZero(req.EndDate),
	})

	return c.JSON(http.StatusOK, SuccessResponse{Data: dto.SearchResponse{
		Transactions: matches,
		Count:        len(matches),
	}})
}

// Merchants profiles spending per merchant over a trailing window
func (h *AnalysisHandler) Merchants(c echo.Context) error {
	var req dto.MerchantsRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}
	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	profiles, err := h.aggregator.AnalyzeMerchants(req.Transactions, analysis.MerchantParams{
		WindowDays: req.WindowDays,
		TopN:       req.TopN,
		Now:        timeOrZero(req.AsOf),
	})
	if err != nil {
		return SendAnalysisError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: dto.MerchantsResponse{Merchants: profiles}})
}

// AnalyzeBudget compares a budget against actual spending
func (h *AnalysisHandler) AnalyzeBudget(c echo.Context) error {
	var req dto.BudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}
	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	report, err := h.budget.AnalyzeBudget(req.Budget, req.Transactions)
	if err != nil {
		return SendAnalysisError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: report})
}

// Forecast projects cash flow forward from history
func (h *AnalysisHandler) Forecast(c echo.Context) error {
	var req dto.ForecastRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}
	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	summary, err := h.forecaster.Forecast(req.Transactions, req.StartingBalance, req.Recurring,
		analysis.ForecastParams{
			HorizonDays:        req.HorizonDays,
			IncludeRecurring:   req.IncludeRecurring,
			ExcludePending:     req.ExcludePending,
			TrailingWindowDays: req.TrailingWindow,
			Now:                timeOrZero(req.AsOf),
		})
	if err != nil {
		return SendAnalysisError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: summary})
}

// AssessHealth derives the composite financial health score
func (h *AnalysisHandler) AssessHealth(c echo.Context) error {
	var req dto.HealthAssessmentRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}
	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	report, err := h.planner.AssessHealth(req.Accounts, req.Transactions, req.Liabilities, timeOrZero(req.AsOf))
	if err != nil {
		return SendAnalysisError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: report})
}

// AnalyzeDebt analyzes liabilities against income
func (h *AnalysisHandler) AnalyzeDebt(c echo.Context) error {
	var req dto.DebtRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}
	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	report, err := h.planner.AnalyzeDebt(req.Liabilities, req.MonthlyIncome)
	if err != nil {
		return SendAnalysisError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: report})
}

// AnalyzeIncome profiles income cadence, stability, and growth
func (h *AnalysisHandler) AnalyzeIncome(c echo.Context) error {
	var req dto.IncomeRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}
	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	report, err := h.income.AnalyzeIncome(req.Transactions)
	if err != nil {
		return SendAnalysisError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: report})
}

// PlanSavingsGoal plans the path to a savings target
func (h *AnalysisHandler) PlanSavingsGoal(c echo.Context) error {
	var req dto.SavingsGoalRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}
	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	plan, err := h.planner.PlanSavingsGoal(
		req.GoalAmount, req.CurrentSavings, req.MonthlyContribution, req.AnnualInterestRate)
	if err != nil {
		return SendAnalysisError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: plan})
}
