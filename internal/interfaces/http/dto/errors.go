package dto

import "net/http"

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeInvalidJSON  = "INVALID_JSON"
	ErrCodeValidation   = "VALIDATION_ERROR"
)

// Resource error codes
const (
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeProductNotFound = "PRODUCT_NOT_FOUND"
	ErrCodeSessionNotFound = "SESSION_NOT_FOUND"
)

// Checkout flow error codes. CART_EMPTY and SUBMIT_IN_PROGRESS are domain
// states, not faults: they map onto client-visible 4xx statuses.
const (
	ErrCodeCartEmpty        = "CART_EMPTY"
	ErrCodeSubmitInProgress = "SUBMIT_IN_PROGRESS"
	ErrCodeInvalidState     = "INVALID_STATE"
)

// Upstream error codes
const (
	ErrCodeOrderSubmitFailed   = "ORDER_SUBMIT_FAILED"
	ErrCodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,

	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeProductNotFound: http.StatusNotFound,
	ErrCodeSessionNotFound: http.StatusNotFound,

	ErrCodeCartEmpty:        http.StatusUnprocessableEntity,
	ErrCodeInvalidState:     http.StatusUnprocessableEntity,
	ErrCodeSubmitInProgress: http.StatusConflict,

	ErrCodeOrderSubmitFailed:   http.StatusBadGateway,
	ErrCodeUpstreamUnavailable: http.StatusBadGateway,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to
// 500 for codes without a mapping
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
