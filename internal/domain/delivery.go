package domain

import (
	"fmt"
	"strings"
	"time"
)

// DeliveryStatus is the terminal status of a delivery attempt.
type DeliveryStatus string

const (
	DeliverySent   DeliveryStatus = "sent"
	DeliveryFailed DeliveryStatus = "failed"
)

func (s DeliveryStatus) String() string { return string(s) }

func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliverySent, DeliveryFailed:
		return true
	}
	return false
}

// DeliveryRecord is the append-only audit record of one dispatch attempt that
// reached the provider. It is created exactly once and never mutated.
type DeliveryRecord struct {
	ID                string
	TenantID          *string
	RecipientAddress  string
	RecipientName     string
	Body              string
	Category          string
	Status            DeliveryStatus
	Provider          string
	ProviderMessageID *string
	RelatedEntityID   *string
	ActorID           *string
	RawResponse       *string
	ErrorMessage      *string
	CreatedAt         time.Time
}

func (r *DeliveryRecord) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: delivery record is nil", ErrValidation)
	}
	if strings.TrimSpace(r.RecipientAddress) == "" {
		return fmt.Errorf("%w: recipient address is required", ErrValidation)
	}
	if !r.Status.IsValid() {
		return fmt.Errorf("%w: invalid delivery status %q", ErrValidation, r.Status)
	}
	return nil
}
