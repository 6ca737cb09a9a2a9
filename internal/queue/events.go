package queue

import (
	"fmt"
	"strings"
	"time"

	"github.com/Orlando-rp/barbersmart-gateway/internal/domain"
)

// DeliveriesQueue carries one event per dispatch attempt that reached the
// provider, for downstream consumers (campaign analytics, tenant dashboards).
const DeliveriesQueue = "gateway.deliveries"

// DeliveryEvent is the broker payload describing one delivery attempt.
type DeliveryEvent struct {
	TenantID   string                `json:"tenantId,omitempty"`
	Recipient  string                `json:"recipient"`
	Status     domain.DeliveryStatus `json:"status"`
	Instance   string                `json:"instance"`
	SourceTier domain.SourceTier     `json:"sourceTier"`
	MessageID  string                `json:"messageId,omitempty"`
	Category   string                `json:"category,omitempty"`
	OccurredAt time.Time             `json:"occurredAt"`
}

func (e DeliveryEvent) Validate() error {
	if strings.TrimSpace(e.Recipient) == "" {
		return fmt.Errorf("recipient is required")
	}
	if !e.Status.IsValid() {
		return fmt.Errorf("invalid delivery status %q", e.Status)
	}
	return nil
}
