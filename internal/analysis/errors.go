package analysis

import "errors"

// Call-level failures. Per-record problems are reported as
// models.RecordError values alongside partial results and never abort a
// batch; these sentinels abort the whole call.
var (
	// ErrInvalidParams signals a parameter that makes the requested analysis
	// meaningless, e.g. a negative tolerance or a non-positive horizon.
	ErrInvalidParams = errors.New("invalid analysis parameters")

	// ErrInsufficientData signals too few data points for a meaningful
	// statistical result, e.g. forecasting from an empty history. An empty
	// result set ("no recurring expenses found") is not an error.
	ErrInsufficientData = errors.New("insufficient data for analysis")

	// ErrUnreachableGoal signals a savings goal that can never be reached
	// with the supplied contribution and rate.
	ErrUnreachableGoal = errors.New("savings goal unreachable with given contribution")
)
