package accountsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/accounts/pkg/httpx"
)

// Error codes carried in the "error" field of every error response.
const (
	ErrorCodeInvalidRequest     = httpx.CodeInvalidRequest
	ErrorCodeInvalidToken       = httpx.CodeInvalidToken
	ErrorCodeServerError        = httpx.CodeServerError
	ErrorCodeEmailTaken         = "email_taken"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeEmailNotVerified   = "email_not_verified"
	ErrorCodeInvalidCode        = "invalid_code"
	ErrorCodeAccountNotFound    = "account_not_found"
)

// APIError is an error response of the accounts service. Handlers write the
// predefined values below and the client parses responses back into it.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"error"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WriteError writes e as the JSON response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteError(w, e.StatusCode, e.Code, e.Message)
}

// WithMessage returns a copy of e with a different message.
func (e *APIError) WithMessage(msg string) *APIError {
	return &APIError{StatusCode: e.StatusCode, Code: e.Code, Message: msg}
}

var (
	ErrInvalidRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidRequest,
		Message:    "the request is malformed or missing required fields",
	}

	ErrInvalidToken = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidToken,
		Message:    "the access token is missing, invalid or expired",
	}

	ErrEmailTaken = &APIError{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeEmailTaken,
		Message:    "Email already registered",
	}

	// ErrInvalidCredentials covers both unknown emails and wrong passwords.
	ErrInvalidCredentials = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidCredentials,
		Message:    "Invalid credentials",
	}

	ErrEmailNotVerified = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeEmailNotVerified,
		Message:    "Email not verified",
	}

	// ErrInvalidCode is returned for unknown, used, expired and
	// wrong-purpose codes alike.
	ErrInvalidCode = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidCode,
		Message:    "Invalid code",
	}

	ErrAccountNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       ErrorCodeAccountNotFound,
		Message:    "Account not found",
	}

	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeServerError,
		Message:    "internal server error",
	}
)

// IsErrorCode reports whether err is an *APIError with the given code.
func IsErrorCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// parseErrorResponse turns a non-2xx response into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       errResp.Error,
			Message:    errResp.Message,
		}
	}

	// Fallback: create generic error from status code
	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       ErrorCodeServerError,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
