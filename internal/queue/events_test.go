package queue

import (
	"testing"
	"time"

	"github.com/Orlando-rp/barbersmart-gateway/internal/domain"
)

func TestDeliveryEventValidate(t *testing.T) {
	valid := DeliveryEvent{
		TenantID:   "tenant-1",
		Recipient:  "5511999999999",
		Status:     domain.DeliverySent,
		Instance:   "barber-main",
		SourceTier: domain.SourceTierTenant,
		OccurredAt: time.Now().UTC(),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}

	missingRecipient := valid
	missingRecipient.Recipient = "  "
	if err := missingRecipient.Validate(); err == nil {
		t.Fatal("expected error for missing recipient")
	}

	badStatus := valid
	badStatus.Status = domain.DeliveryStatus("pending")
	if err := badStatus.Validate(); err == nil {
		t.Fatal("expected error for invalid status")
	}
}
