package provider

import (
	"context"

	"github.com/Orlando-rp/barbersmart-gateway/internal/domain"
)

// API is the outbound messaging provider port. Implementations never panic
// and, for the two read operations, never return errors: unreachable or
// misbehaving providers degrade to failure verdicts and empty inventories.
type API interface {
	// ConnectionState probes a single instance's live connection state.
	ConnectionState(ctx context.Context, endpoint, credential, instance string) domain.HealthVerdict
	// FetchInstances lists every instance known to the account. Best effort:
	// any failure yields an empty list.
	FetchInstances(ctx context.Context, endpoint, credential string) []domain.InstanceInfo
	// SendText sends one text message through the named instance. Failures
	// are returned as *Error.
	SendText(ctx context.Context, endpoint, credential, instance, number, text string) (*SendResult, error)
}

// SendResult stores provider call metadata for audit and persistence.
type SendResult struct {
	StatusCode int
	Body       string
	MessageID  string
}
