package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Orlando-rp/barbersmart-gateway/internal/domain"
	"gorm.io/gorm"
)

// Well-known platform_settings keys the gateway reads.
const (
	SettingKeyGateway         = "whatsapp_gateway"
	SettingKeyDefaultInstance = "whatsapp_default_instance"
)

// ConfigStore reads gateway configuration. Absent configuration is reported
// as (nil, nil): the resolver treats absence as a tier miss, not a failure.
type ConfigStore interface {
	GlobalConfig(ctx context.Context) (*domain.GlobalConfig, error)
	TenantConfig(ctx context.Context, tenantID string) (*domain.TenantConfig, error)
}

// DeliveryLog is the append-only audit trail port. There are deliberately no
// update or delete methods.
type DeliveryLog interface {
	Insert(ctx context.Context, record *domain.DeliveryRecord) error
	ListByTenant(ctx context.Context, tenantID string, page, pageSize int) ([]domain.DeliveryRecord, int64, error)
}

type gatewaySettingValue struct {
	URL    string `json:"url"`
	APIKey string `json:"apikey"`
}

type defaultInstanceSettingValue struct {
	Instance string `json:"instance"`
}

type GormConfigStore struct {
	db *gorm.DB
}

func NewGormConfigStore(db *gorm.DB) *GormConfigStore {
	return &GormConfigStore{db: db}
}

var _ ConfigStore = (*GormConfigStore)(nil)

// GlobalConfig assembles the deployment-wide config from two settings keys:
// the endpoint/credential pair and the separate default send instance.
func (s *GormConfigStore) GlobalConfig(ctx context.Context) (*domain.GlobalConfig, error) {
	raw, err := s.settingValue(ctx, SettingKeyGateway)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var gateway gatewaySettingValue
	if err := json.Unmarshal(raw, &gateway); err != nil {
		return nil, fmt.Errorf("malformed %s setting: %w", SettingKeyGateway, err)
	}

	cfg := &domain.GlobalConfig{
		EndpointURL:   gateway.URL,
		CredentialKey: gateway.APIKey,
	}

	rawInstance, err := s.settingValue(ctx, SettingKeyDefaultInstance)
	if err != nil {
		return nil, err
	}
	if rawInstance != nil {
		var instance defaultInstanceSettingValue
		if err := json.Unmarshal(rawInstance, &instance); err != nil {
			return nil, fmt.Errorf("malformed %s setting: %w", SettingKeyDefaultInstance, err)
		}
		cfg.DefaultInstance = instance.Instance
	}

	return cfg, nil
}

func (s *GormConfigStore) TenantConfig(ctx context.Context, tenantID string) (*domain.TenantConfig, error) {
	var model TenantGatewayConfigModel
	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND provider = ? AND is_active = ?", tenantID, domain.ProviderName, true).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return tenantConfigModelToDomain(&model), nil
}

func (s *GormConfigStore) settingValue(ctx context.Context, key string) (json.RawMessage, error) {
	var model PlatformSettingModel
	err := s.db.WithContext(ctx).First(&model, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(model.Value), nil
}
