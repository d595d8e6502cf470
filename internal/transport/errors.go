package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx answer from the CRM proxy.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("crm api error (%d): %s", e.StatusCode, e.Message)
}

// NetworkError is a request that never produced a response.
type NetworkError struct {
	Operation string
	URL       string
	Err       error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s to %s: %v", e.Operation, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

// newAPIError builds an APIError from an error body, preferring the
// server's own message over the status text.
func newAPIError(status int, body []byte, requestID string) *APIError {
	var payload struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		var s string
		if json.Unmarshal(payload.Error, &s) == nil {
			msg = s
		}
		if strings.TrimSpace(msg) == "" {
			msg = payload.Message
		}
	}
	if strings.TrimSpace(msg) == "" {
		msg = http.StatusText(status)
	}
	if msg == "" {
		msg = "unknown error"
	}
	return &APIError{StatusCode: status, Message: msg, RequestID: requestID}
}
