package handlers

import (
	stderrors "errors"
	"log/slog"
	"net/http"

	"finsight/internal/analysis"
	"finsight/internal/errors"

	"github.com/labstack/echo/v4"
)

// STANDARDIZED ERROR HANDLING PATTERNS
//
// All handlers must use the following standardized error response functions:
//
// 1. SendError - For client errors and business logic errors (4xx responses)
// 2. SendAnalysisError - For errors returned by the analysis services; maps
//    the package sentinels onto ANALYSIS_* codes
// 3. SendSystemError - For system/internal errors (500 responses)
//
// DO NOT USE:
//    - echo.NewHTTPError() - Use the helpers instead
//    - Direct c.JSON() for errors - Use the helper functions
//    - return err without wrapping - Use SendSystemError to protect internal details

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = errors.ErrorResponse

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendAnalysisError maps an analysis sentinel error onto its error code.
// Unrecognized errors are treated as system errors.
func SendAnalysisError(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, analysis.ErrInvalidParams):
		return SendError(c, errors.AnalysisInvalidParams, errors.WithDetails(err.Error()))
	case stderrors.Is(err, analysis.ErrInsufficientData):
		return SendError(c, errors.AnalysisInsufficientData, errors.WithDetails(err.Error()))
	case stderrors.Is(err, analysis.ErrUnreachableGoal):
		return SendError(c, errors.AnalysisUnreachableGoal)
	default:
		return SendSystemError(c, err)
	}
}

// SendSystemError wraps a system error with generic message and logs the internal error
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)
	errorResponse, internal := errors.WrapSystemError(err, traceID)
	slog.Error("internal error",
		"trace_id", traceID,
		"path", c.Path(),
		"error", internal)
	return c.JSON(http.StatusInternalServerError, errorResponse)
}
