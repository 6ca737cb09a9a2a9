package repository

import (
	"time"

	"github.com/Orlando-rp/barbersmart-gateway/internal/domain"
)

// PlatformSettingModel is the persistence model for platform_settings, the
// generic key/value store deployment-wide configuration lives in.
type PlatformSettingModel struct {
	Key       string `gorm:"primaryKey;type:varchar(100)"`
	Value     string `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (PlatformSettingModel) TableName() string {
	return "platform_settings"
}

// TenantGatewayConfigModel is the persistence model for tenant_gateway_configs.
type TenantGatewayConfigModel struct {
	ID            string  `gorm:"type:uuid;primaryKey"`
	TenantID      string  `gorm:"type:uuid;not null"`
	Provider      string  `gorm:"type:varchar(30);not null;default:evolution"`
	InstanceName  string  `gorm:"type:varchar(100);not null"`
	EndpointURL   *string `gorm:"type:varchar(255)"`
	CredentialKey *string `gorm:"type:varchar(255)"`
	IsActive      bool    `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (TenantGatewayConfigModel) TableName() string {
	return "tenant_gateway_configs"
}

// DeliveryRecordModel is the persistence model for delivery_logs.
type DeliveryRecordModel struct {
	ID                string                `gorm:"type:uuid;primaryKey"`
	TenantID          *string               `gorm:"type:uuid"`
	RecipientAddress  string                `gorm:"type:varchar(30);not null"`
	RecipientName     string                `gorm:"type:varchar(255)"`
	Body              string                `gorm:"type:text;not null"`
	Category          string                `gorm:"type:varchar(50)"`
	Status            domain.DeliveryStatus `gorm:"type:varchar(10);not null"`
	Provider          string                `gorm:"type:varchar(30);not null"`
	ProviderMessageID *string               `gorm:"type:varchar(255)"`
	RelatedEntityID   *string               `gorm:"type:uuid"`
	ActorID           *string               `gorm:"type:uuid"`
	RawResponse       *string               `gorm:"type:text"`
	ErrorMessage      *string               `gorm:"type:text"`
	CreatedAt         time.Time
}

func (DeliveryRecordModel) TableName() string {
	return "delivery_logs"
}

func tenantConfigModelToDomain(m *TenantGatewayConfigModel) *domain.TenantConfig {
	if m == nil {
		return nil
	}

	cfg := &domain.TenantConfig{
		TenantID:     m.TenantID,
		InstanceName: m.InstanceName,
		IsActive:     m.IsActive,
	}
	if m.EndpointURL != nil {
		cfg.EndpointURL = *m.EndpointURL
	}
	if m.CredentialKey != nil {
		cfg.CredentialKey = *m.CredentialKey
	}
	return cfg
}

func deliveryRecordModelFromDomain(r *domain.DeliveryRecord) *DeliveryRecordModel {
	if r == nil {
		return nil
	}

	return &DeliveryRecordModel{
		ID:                r.ID,
		TenantID:          r.TenantID,
		RecipientAddress:  r.RecipientAddress,
		RecipientName:     r.RecipientName,
		Body:              r.Body,
		Category:          r.Category,
		Status:            r.Status,
		Provider:          r.Provider,
		ProviderMessageID: r.ProviderMessageID,
		RelatedEntityID:   r.RelatedEntityID,
		ActorID:           r.ActorID,
		RawResponse:       r.RawResponse,
		ErrorMessage:      r.ErrorMessage,
		CreatedAt:         r.CreatedAt,
	}
}

func deliveryRecordModelToDomain(m *DeliveryRecordModel) *domain.DeliveryRecord {
	if m == nil {
		return nil
	}

	return &domain.DeliveryRecord{
		ID:                m.ID,
		TenantID:          m.TenantID,
		RecipientAddress:  m.RecipientAddress,
		RecipientName:     m.RecipientName,
		Body:              m.Body,
		Category:          m.Category,
		Status:            m.Status,
		Provider:          m.Provider,
		ProviderMessageID: m.ProviderMessageID,
		RelatedEntityID:   m.RelatedEntityID,
		ActorID:           m.ActorID,
		RawResponse:       m.RawResponse,
		ErrorMessage:      m.ErrorMessage,
		CreatedAt:         m.CreatedAt,
	}
}
