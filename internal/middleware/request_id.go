package middleware

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// TraceIDHeader carries the trace ID across service boundaries
	TraceIDHeader = "X-Trace-ID"
	// TraceIDContextKey is the echo context key for the trace ID
	TraceIDContextKey = "trace_id"
)

type traceIDKey struct{}

// RequestID assigns every request a trace ID and threads it through the echo
// context, the request's context.Context, and the response header. An inbound
// X-Trace-ID is honored only when it parses as a UUID, so upstream callers
// can correlate but cannot inject arbitrary strings into the logs.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get(TraceIDHeader)
			if _, err := uuid.Parse(traceID); err != nil {
				traceID = uuid.NewString()
			}

			c.Set(TraceIDContextKey, traceID)
			c.Response().Header().Set(TraceIDHeader, traceID)

			ctx := context.WithValue(c.Request().Context(), traceIDKey{}, traceID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetTraceID extracts the trace ID from the echo context, empty if unset.
func GetTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// TraceIDFromContext recovers the trace ID below the handler layer, where
// only the request context travels.
func TraceIDFromContext(ctx context.Context) string {
	traceID, _ := ctx.Value(traceIDKey{}).(string)
	return traceID
}
