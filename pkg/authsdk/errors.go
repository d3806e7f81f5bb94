package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/powoftech/relic-chat/pkg/httpx"
)

// Error codes shared by the server handlers and the SDK.
const (
	ErrorCodeInvalidRequest   = "invalid_request"
	ErrorCodeValidation       = "validation_error"
	ErrorCodeDuplicateAccount = "duplicate_account"
	ErrorCodeUnauthorized     = "unauthorized"
	ErrorCodeInvalidCode      = "invalid_code"
	ErrorCodeInvalidToken     = "invalid_token"
	ErrorCodeServerError      = "server_error"
)

// APIError is the error body served on every failure. It implements
// the error interface, so the server uses it to write responses and the
// SDK uses it to represent them.
type APIError struct {
	// StatusCode is the HTTP status for this error.
	StatusCode int `json:"-"`

	// Code is the machine-readable error code.
	Code string `json:"error"`

	// Description is a human-readable description. Authentication
	// failures keep this deliberately vague.
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
	})
}

var (
	// ErrInvalidRequest is served when the request body or parameters
	// cannot be parsed.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrDuplicateAccount is served on a signup collision. One message
	// for both fields; the availability endpoint is the only place that
	// reveals which one collided.
	ErrDuplicateAccount = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeDuplicateAccount,
		Description: "an account with that email or username already exists",
	}

	// ErrUnauthorized covers bad credentials and unknown accounts
	// without distinguishing them.
	ErrUnauthorized = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthorized,
		Description: "invalid credentials",
	}

	// ErrInvalidCode is served when the supplied one-time code does not
	// match or has expired.
	ErrInvalidCode = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCode,
		Description: "invalid or expired code",
	}

	// ErrInvalidToken is served when a verification or access token is
	// malformed, mis-signed or expired.
	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "invalid or expired token",
	}

	// ErrServerError is the opaque body for unexpected failures. Detail
	// stays in the server logs.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "unexpected error",
	}
)

// NewValidationError builds the 400 body for a specific violated rule.
func NewValidationError(description string) *APIError {
	return &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeValidation,
		Description: description,
	}
}

// parseErrorResponse turns a non-2xx response into a typed *APIError.
// Returns nil for success responses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
