// Package apperrors defines the error taxonomy surfaced at the HTTP
// boundary. User-visible messages stay coarse; diagnostic detail is logged
// server-side and never includes applicant text content.
package apperrors

import "net/http"

// APIError pairs a stable machine code with an HTTP status and a generic
// user-facing message.
type APIError struct {
	HTTPStatus int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

var (
	// ErrValidation: bad input shape or unsupported mode. The request is
	// never attempted.
	ErrValidation = &APIError{
		HTTPStatus: http.StatusBadRequest,
		Code:       "invalid_request",
		Message:    "invalid or missing request fields",
	}

	// ErrConfiguration: the translation capability is unconfigured. The
	// request is never attempted.
	ErrConfiguration = &APIError{
		HTTPStatus: http.StatusInternalServerError,
		Code:       "not_configured",
		Message:    "translation service is not configured",
	}

	// ErrInternal: an unhandled internal fault.
	ErrInternal = &APIError{
		HTTPStatus: http.StatusInternalServerError,
		Code:       "internal_error",
		Message:    "internal server error",
	}
)

// WithMessage returns a copy of e carrying a more specific user-facing
// message (still content-free).
func (e *APIError) WithMessage(msg string) *APIError {
	return &APIError{HTTPStatus: e.HTTPStatus, Code: e.Code, Message: msg}
}
