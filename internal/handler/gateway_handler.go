package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Orlando-rp/barbersmart-gateway/internal/domain"
	"github.com/Orlando-rp/barbersmart-gateway/internal/repository"
	"github.com/Orlando-rp/barbersmart-gateway/internal/service"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultPage     = 1
	defaultPageSize = 50
	maxPageSize     = 100
)

type GatewayService interface {
	SendWithFailover(ctx context.Context, tenantID, to, body string, logCtx *service.LogContext) domain.SendOutcome
	Diagnose(ctx context.Context, tenantID string) (*service.DiagnosticsSnapshot, error)
}

type GatewayHandler struct {
	gateway    GatewayService
	deliveries repository.DeliveryLog
}

func NewGatewayHandler(gateway GatewayService, deliveries repository.DeliveryLog) (*GatewayHandler, error) {
	if gateway == nil {
		return nil, fmt.Errorf("gateway service is required")
	}
	return &GatewayHandler{gateway: gateway, deliveries: deliveries}, nil
}

func RegisterGatewayRoutes(router fiber.Router, gateway GatewayService, deliveries repository.DeliveryLog) error {
	h, err := NewGatewayHandler(gateway, deliveries)
	if err != nil {
		return err
	}

	v1 := router.Group("/v1")
	v1.Post("/messages/send", h.SendMessage)
	v1.Get("/diagnostics", h.Diagnostics)
	v1.Get("/deliveries", h.ListDeliveries)

	return nil
}

type sendMessageRequest struct {
	TenantID        string `json:"tenantId"`
	To              string `json:"to"`
	Body            string `json:"body"`
	Category        string `json:"category"`
	RecipientName   string `json:"recipientName"`
	RelatedEntityID string `json:"relatedEntityId"`
	ActorID         string `json:"actorId"`
	SkipDeliveryLog bool   `json:"skipDeliveryLog"`
}

type sendMessageResponse struct {
	Success      bool   `json:"success"`
	MessageID    string `json:"messageId,omitempty"`
	ErrorClass   string `json:"errorClass,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	InstanceUsed string `json:"instanceUsed,omitempty"`
	SourceTier   string `json:"sourceTier,omitempty"`
}

type deliveryResponse struct {
	ID                string    `json:"id"`
	TenantID          *string   `json:"tenantId,omitempty"`
	RecipientAddress  string    `json:"recipientAddress"`
	RecipientName     string    `json:"recipientName,omitempty"`
	Body              string    `json:"body"`
	Category          string    `json:"category,omitempty"`
	Status            string    `json:"status"`
	Provider          string    `json:"provider"`
	ProviderMessageID *string   `json:"providerMessageId,omitempty"`
	ErrorMessage      *string   `json:"errorMessage,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

type listDeliveriesResponse struct {
	Data []deliveryResponse `json:"data"`
	Meta listMeta           `json:"meta"`
}

type listMeta struct {
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
}

func (h *GatewayHandler) SendMessage(c *fiber.Ctx) error {
	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	req.To = strings.TrimSpace(req.To)
	req.Body = strings.TrimSpace(req.Body)
	if req.To == "" {
		return toHTTPError(fmt.Errorf("%w: to is required", domain.ErrValidation))
	}
	if req.Body == "" {
		return toHTTPError(fmt.Errorf("%w: body is required", domain.ErrValidation))
	}

	var logCtx *service.LogContext
	if !req.SkipDeliveryLog {
		logCtx = &service.LogContext{
			TenantID:        strings.TrimSpace(req.TenantID),
			Category:        strings.TrimSpace(req.Category),
			RecipientName:   strings.TrimSpace(req.RecipientName),
			RelatedEntityID: strings.TrimSpace(req.RelatedEntityID),
			ActorID:         strings.TrimSpace(req.ActorID),
		}
	}

	outcome := h.gateway.SendWithFailover(c.Context(), strings.TrimSpace(req.TenantID), req.To, req.Body, logCtx)

	return c.Status(outcomeStatusCode(outcome)).JSON(sendMessageResponse{
		Success:      outcome.Success,
		MessageID:    outcome.MessageID,
		ErrorClass:   outcome.ErrorClass.String(),
		ErrorMessage: outcome.ErrorMessage,
		InstanceUsed: outcome.InstanceUsed,
		SourceTier:   outcome.SourceTier.String(),
	})
}

func (h *GatewayHandler) Diagnostics(c *fiber.Ctx) error {
	tenantID := strings.TrimSpace(c.Query("tenantId"))

	snapshot, err := h.gateway.Diagnose(c.Context(), tenantID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(snapshot)
}

func (h *GatewayHandler) ListDeliveries(c *fiber.Ctx) error {
	if h.deliveries == nil {
		return fiber.NewError(fiber.StatusNotImplemented, "delivery log is not configured")
	}

	tenantID := strings.TrimSpace(c.Query("tenantId"))
	if tenantID == "" {
		return toHTTPError(fmt.Errorf("%w: tenantId is required", domain.ErrValidation))
	}

	page := c.QueryInt("page", defaultPage)
	pageSize := c.QueryInt("pageSize", defaultPageSize)
	if page < 1 {
		return toHTTPError(fmt.Errorf("%w: page must be >= 1", domain.ErrValidation))
	}
	if pageSize < 1 || pageSize > maxPageSize {
		return toHTTPError(fmt.Errorf("%w: pageSize must be between 1 and %d", domain.ErrValidation, maxPageSize))
	}

	records, total, err := h.deliveries.ListByTenant(c.Context(), tenantID, page, pageSize)
	if err != nil {
		return toHTTPError(err)
	}

	data := make([]deliveryResponse, 0, len(records))
	for _, record := range records {
		data = append(data, toDeliveryResponse(record))
	}

	return c.Status(fiber.StatusOK).JSON(listDeliveriesResponse{
		Data: data,
		Meta: listMeta{
			Page:     page,
			PageSize: pageSize,
			Total:    total,
		},
	})
}

// outcomeStatusCode maps a send outcome onto an HTTP status. The outcome body
// is authoritative either way; the code exists for callers that only look at
// status lines.
func outcomeStatusCode(outcome domain.SendOutcome) int {
	if outcome.Success {
		return fiber.StatusOK
	}

	switch outcome.ErrorClass {
	case domain.ErrorClassNoConfig:
		return fiber.StatusServiceUnavailable
	case domain.ErrorClassException:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusUnprocessableEntity
	}
}

func toDeliveryResponse(record domain.DeliveryRecord) deliveryResponse {
	return deliveryResponse{
		ID:                record.ID,
		TenantID:          record.TenantID,
		RecipientAddress:  record.RecipientAddress,
		RecipientName:     record.RecipientName,
		Body:              record.Body,
		Category:          record.Category,
		Status:            record.Status.String(),
		Provider:          record.Provider,
		ProviderMessageID: record.ProviderMessageID,
		ErrorMessage:      record.ErrorMessage,
		CreatedAt:         record.CreatedAt,
	}
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return err
	}
}
