package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"finsight/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var panicsRecovered = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "panics_recovered_total",
		Help: "Total number of recovered panics by endpoint",
	},
	[]string{"endpoint"},
)

// PanicRecovery converts a panic anywhere below it in the chain into a
// SYSTEM_001 response. An analysis request must never take the process down:
// the payload that caused the panic is gone with the request, and the next
// request gets a clean slate.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				traceID := GetTraceID(c)
				if traceID == "" {
					traceID = "unknown"
				}

				slog.ErrorContext(c.Request().Context(), "Recovered from panic",
					"trace_id", traceID,
					"panic", fmt.Sprint(r),
					"stack", string(debug.Stack()),
					"path", c.Request().URL.Path,
					"method", c.Request().Method,
				)
				panicsRecovered.WithLabelValues(c.Path()).Inc()

				if c.Response().Committed {
					return
				}
				response := errors.NewErrorResponse(errors.SystemInternalError, traceID)
				if err := c.JSON(http.StatusInternalServerError, response); err != nil {
					slog.Error("Failed to send panic response",
						"trace_id", traceID,
						"error", err.Error(),
					)
				}
			}()

			return next(c)
		}
	}
}
