package provider

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is a failed provider call. StatusCode is zero for transport-level
// failures (timeout, DNS, refused connection), in which case Cause carries
// the underlying error.
type Error struct {
	StatusCode int
	Message    string
	Body       string
	Cause      error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	parts := make([]string, 0, 3)
	parts = append(parts, "provider error")

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	if msg := strings.TrimSpace(e.Message); msg != "" {
		parts = append(parts, msg)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}

	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// instanceErrorMarkers are the message fragments the provider uses when the
// named instance itself is missing or invalid.
var instanceErrorMarkers = []string{
	"instance",
	"nenhuma instância",
	"not found",
}

// IsInstanceError reports whether a send failure points at the instance
// itself rather than the message, making it eligible for fallback.
func IsInstanceError(err error) bool {
	var providerErr *Error
	if !errors.As(err, &providerErr) {
		return false
	}
	if providerErr.StatusCode == http.StatusNotFound {
		return true
	}

	message := strings.ToLower(providerErr.Message)
	for _, marker := range instanceErrorMarkers {
		if strings.Contains(message, marker) {
			return true
		}
	}
	return false
}

// IsTransportError reports whether the provider was never reached.
func IsTransportError(err error) bool {
	var providerErr *Error
	if !errors.As(err, &providerErr) {
		return false
	}
	return providerErr.StatusCode == 0
}
