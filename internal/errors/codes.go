package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials ErrorCode = "AUTH_001"
	AuthMissingToken       ErrorCode = "AUTH_002"
	AuthExpiredToken       ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat ErrorCode = "AUTH_004"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidDate   ErrorCode = "VALIDATION_005"
)

// Analysis error codes (ANALYSIS_*)
const (
	AnalysisInvalidParams    ErrorCode = "ANALYSIS_001"
	AnalysisInsufficientData ErrorCode = "ANALYSIS_002"
	AnalysisUnreachableGoal  ErrorCode = "ANALYSIS_003"
	AnalysisUnknownGroupBy   ErrorCode = "ANALYSIS_004"
)

// Source normalization error codes (SOURCE_*)
const (
	SourceUnknownProvider   ErrorCode = "SOURCE_001"
	SourceMalformedPayload  ErrorCode = "SOURCE_002"
	SourceAllRecordsInvalid ErrorCode = "SOURCE_003"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemServiceUnavailable ErrorCode = "SYSTEM_002"
	SystemConfigurationError ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthInvalidCredentials: "Invalid API credentials",
	AuthMissingToken:       "Authorization token is required",
	AuthExpiredToken:       "Authorization token has expired",
	AuthInvalidTokenFormat: "Invalid authorization token format",

	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",
	ValidationInvalidDate:   "Invalid date format or range",

	// Analysis errors
	AnalysisInvalidParams:    "Analysis parameters are invalid",
	AnalysisInsufficientData: "Not enough data for a meaningful analysis",
	AnalysisUnreachableGoal:  "Savings goal cannot be reached with the given inputs",
	AnalysisUnknownGroupBy:   "Unknown grouping dimension",

	// Source errors
	SourceUnknownProvider:   "Unknown data provider",
	SourceMalformedPayload:  "Provider payload could not be parsed",
	SourceAllRecordsInvalid: "No valid records in the provider payload",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemConfigurationError: "System configuration error",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
