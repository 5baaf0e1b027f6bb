package client

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// APIError is a non-2xx response. Message is the backend's own text when it
// sent one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %d %s", e.Status, e.Message)
}

func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := ""
	if len(body) > 0 && sonic.Unmarshal(body, &payload) == nil {
		msg = strings.TrimSpace(payload.Message)
		if msg == "" {
			msg = strings.TrimSpace(payload.Error)
		}
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{Status: status, Message: msg}
}

// ShapeError means the backend answered 2xx with a body that does not fit
// the documented schema.
type ShapeError struct {
	Err error
}

func (e *ShapeError) Error() string {
	return "backend: unexpected response shape: " + e.Err.Error()
}

func (e *ShapeError) Unwrap() error { return e.Err }

// Message returns the text to show the user: the backend message for API
// errors, fallback for everything else.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
