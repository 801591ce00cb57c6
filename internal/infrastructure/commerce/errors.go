// internal/infrastructure/commerce/errors.go
package commerce

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx answer from the commerce API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("commerce api: %d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("commerce api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// IsNotFound reports whether err is a 404 from the commerce API
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether the commerce API rejected the access token
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// Message returns the server-provided message of an API error, or fallback
// for anything else
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// parseAPIError reads {"message": "..."} or {"message": ["...", "..."]}
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}

	var single string
	var many []string
	switch {
	case json.Unmarshal(payload.Message, &single) == nil && single != "":
		apiErr.Message = single
	case json.Unmarshal(payload.Message, &many) == nil && len(many) > 0:
		apiErr.Message = strings.Join(many, "; ")
	}
	return apiErr
}
