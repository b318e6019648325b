package client

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	StatusNetworkError = 0

	msgTimeout      = "Request timeout"
	msgCanceled     = "Request canceled"
	msgNetwork      = "Network error - Make sure backend server is running"
	msgRequestFail  = "Request failed"
	msgInvalidJSON  = "Invalid JSON response"
	msgEncodeFailed = "Request body could not be encoded"
	msgNoUpload     = "No image provided"
)

// APIError is the only error kind Do returns. Status is the HTTP status for
// server rejections, 408 for a client-side timeout and 0 when no response
// was received.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Status == StatusNetworkError {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func statusOf(err error) (int, bool) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return 0, false
	}
	return apiErr.Status, true
}

func IsNotFound(err error) bool {
	status, ok := statusOf(err)
	return ok && status == http.StatusNotFound
}

// IsUnauthorized reports whether the session token was missing, expired or
// rejected. Callers should ask the user to sign in again.
func IsUnauthorized(err error) bool {
	status, ok := statusOf(err)
	return ok && (status == http.StatusUnauthorized || status == http.StatusForbidden)
}

func IsTimeout(err error) bool {
	status, ok := statusOf(err)
	return ok && status == http.StatusRequestTimeout
}

func IsNetwork(err error) bool {
	status, ok := statusOf(err)
	return ok && status == StatusNetworkError
}
