package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Orlando-rp/barbersmart-gateway/internal/domain"
	"github.com/Orlando-rp/barbersmart-gateway/internal/observability"
	"github.com/Orlando-rp/barbersmart-gateway/internal/provider"
	"github.com/Orlando-rp/barbersmart-gateway/internal/queue"
	"github.com/Orlando-rp/barbersmart-gateway/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LogContext carries the audit metadata for one send. When nil, no delivery
// record is written; the send itself is unaffected.
type LogContext struct {
	TenantID        string
	Category        string
	RecipientName   string
	RelatedEntityID string
	ActorID         string
}

// Dispatcher sends a single text message through an already-resolved config
// and persists a delivery record for every attempt that reached the provider.
// Delivery logging and event publishing are best effort: their failures never
// change the returned outcome.
type Dispatcher struct {
	api           provider.API
	deliveryLog   repository.DeliveryLog
	events        queue.Publisher
	countryPrefix string
	logger        *zap.Logger
	metrics       *observability.Metrics
}

func NewDispatcher(
	api provider.API,
	deliveryLog repository.DeliveryLog,
	events queue.Publisher,
	countryPrefix string,
	logger *zap.Logger,
	metrics *observability.Metrics,
) (*Dispatcher, error) {
	if api == nil {
		return nil, fmt.Errorf("provider api is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Dispatcher{
		api:           api,
		deliveryLog:   deliveryLog,
		events:        events,
		countryPrefix: countryPrefix,
		logger:        logger,
		metrics:       metrics,
	}, nil
}

func (d *Dispatcher) Dispatch(ctx context.Context, cfg domain.ResolvedConfig, to, body string, logCtx *LogContext) domain.SendOutcome {
	if ctx == nil {
		ctx = context.Background()
	}

	number := domain.NormalizePhone(to, d.countryPrefix)

	start := time.Now()
	result, err := d.api.SendText(ctx, cfg.EndpointURL, cfg.CredentialKey, cfg.InstanceName, number, body)
	d.metrics.ObserveProviderRequest("send_text", time.Since(start))

	outcome := domain.SendOutcome{
		InstanceUsed: cfg.InstanceName,
		SourceTier:   cfg.SourceTier,
	}

	switch {
	case err == nil:
		outcome.Success = true
		outcome.MessageID = result.MessageID

		d.metrics.IncSend(cfg.SourceTier.String(), "sent")
		d.record(ctx, number, body, logCtx, domain.DeliverySent, result.MessageID, result.Body, "")
		d.publish(ctx, number, logCtx, cfg, domain.DeliverySent, result.MessageID)

	case provider.IsTransportError(err):
		outcome.ErrorClass = domain.ErrorClassException
		outcome.ErrorMessage = err.Error()

		d.metrics.IncSend(cfg.SourceTier.String(), "failed")
		d.record(ctx, number, body, logCtx, domain.DeliveryFailed, "", "", outcome.ErrorMessage)
		d.publish(ctx, number, logCtx, cfg, domain.DeliveryFailed, "")

	default:
		var providerErr *provider.Error
		if errors.As(err, &providerErr) {
			outcome.ErrorMessage = providerErr.Message
		} else {
			outcome.ErrorMessage = err.Error()
		}
		if provider.IsInstanceError(err) {
			outcome.ErrorClass = domain.ErrorClassInstance
		} else {
			outcome.ErrorClass = domain.ErrorClassSendFailed
		}

		rawResponse := ""
		if providerErr != nil {
			rawResponse = providerErr.Body
		}

		d.metrics.IncSend(cfg.SourceTier.String(), "failed")
		d.record(ctx, number, body, logCtx, domain.DeliveryFailed, "", rawResponse, outcome.ErrorMessage)
		d.publish(ctx, number, logCtx, cfg, domain.DeliveryFailed, "")
	}

	return outcome
}

func (d *Dispatcher) record(
	ctx context.Context,
	address, body string,
	logCtx *LogContext,
	status domain.DeliveryStatus,
	messageID, rawResponse, errorMessage string,
) {
	if d.deliveryLog == nil || logCtx == nil {
		return
	}

	record := &domain.DeliveryRecord{
		ID:                uuid.NewString(),
		TenantID:          optionalString(logCtx.TenantID),
		RecipientAddress:  address,
		RecipientName:     logCtx.RecipientName,
		Body:              body,
		Category:          logCtx.Category,
		Status:            status,
		Provider:          domain.ProviderName,
		ProviderMessageID: optionalString(messageID),
		RelatedEntityID:   optionalString(logCtx.RelatedEntityID),
		ActorID:           optionalString(logCtx.ActorID),
		RawResponse:       optionalString(rawResponse),
		ErrorMessage:      optionalString(errorMessage),
		CreatedAt:         time.Now().UTC(),
	}

	if err := d.deliveryLog.Insert(ctx, record); err != nil {
		d.logger.Warn("failed to write delivery log",
			zap.String("recipient", address),
			zap.String("status", status.String()),
			zap.Error(err),
		)
	}
}

func (d *Dispatcher) publish(
	ctx context.Context,
	address string,
	logCtx *LogContext,
	cfg domain.ResolvedConfig,
	status domain.DeliveryStatus,
	messageID string,
) {
	if d.events == nil {
		return
	}

	event := queue.DeliveryEvent{
		Recipient:  address,
		Status:     status,
		Instance:   cfg.InstanceName,
		SourceTier: cfg.SourceTier,
		MessageID:  messageID,
		OccurredAt: time.Now().UTC(),
	}
	if logCtx != nil {
		event.TenantID = logCtx.TenantID
		event.Category = logCtx.Category
	}

	if err := d.events.PublishDelivery(ctx, event); err != nil {
		d.logger.Warn("failed to publish delivery event",
			zap.String("recipient", address),
			zap.Error(err),
		)
	}
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
