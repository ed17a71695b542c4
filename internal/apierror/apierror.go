// Package apierror provides the standardized error envelopes for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Message string `json:"message"`
}

func New(msg string) *APIError {
	return &APIError{Message: msg}
}

// MultiError carries a summary message plus one entry per independent
// business-rule violation, e.g. one line per product short on stock.
type MultiError struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func NewMulti(msg string, errs []string) *MultiError {
	return &MultiError{Message: msg, Errors: errs}
}
