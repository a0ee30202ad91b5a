package adminsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/saasadmin/pkg/httpx"
)

// APIError is the error body every endpoint returns: {"error": "<message>"}.
// The server writes it with WriteError; the client decodes it from responses.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Message is the human-readable reason
	Message string `json:"error"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, e)
}

// NewAPIError creates an APIError with the given status and message.
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message}
}

// Errors shared by several endpoints.
var (
	ErrAuthorizationRequired = NewAPIError(http.StatusUnauthorized, "Authorization token required")
	ErrInvalidToken          = NewAPIError(http.StatusUnauthorized, "Invalid or expired token")
	ErrInvalidCredentials    = NewAPIError(http.StatusUnauthorized, "Invalid email or password")
	ErrInvalidRefreshToken   = NewAPIError(http.StatusUnauthorized, "Invalid or expired refresh token")
	ErrRefreshTokenRequired  = NewAPIError(http.StatusBadRequest, "Refresh token is required")
	ErrRoleNotFound          = NewAPIError(http.StatusBadRequest, "Role not found")
	ErrInvalidBody           = NewAPIError(http.StatusBadRequest, "Invalid request body")
	ErrUserNotFound          = NewAPIError(http.StatusNotFound, "User not found")
	ErrTenantNotFound        = NewAPIError(http.StatusNotFound, "Tenant not found")
	ErrTenantConstraint      = NewAPIError(http.StatusInternalServerError, "Organization requires an existing tenant")
)

// parseErrorResponse turns a non-success response body into an *APIError.
// Bodies that are not JSON keep the raw text as the message.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
	}
	return apiErr
}
