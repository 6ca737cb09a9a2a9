package repository

import (
	"context"
	"fmt"

	"github.com/Orlando-rp/barbersmart-gateway/internal/domain"
	"gorm.io/gorm"
)

type GormDeliveryLog struct {
	db *gorm.DB
}

func NewGormDeliveryLog(db *gorm.DB) *GormDeliveryLog {
	return &GormDeliveryLog{db: db}
}

var _ DeliveryLog = (*GormDeliveryLog)(nil)

func (r *GormDeliveryLog) Insert(ctx context.Context, record *domain.DeliveryRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	model := deliveryRecordModelFromDomain(record)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to insert delivery record: %w", err)
	}
	record.CreatedAt = model.CreatedAt
	return nil
}

func (r *GormDeliveryLog) ListByTenant(ctx context.Context, tenantID string, page, pageSize int) ([]domain.DeliveryRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&DeliveryRecordModel{})
	if tenantID != "" {
		query = query.Where("tenant_id = ?", tenantID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page = max(page, 1)
	if pageSize < 1 {
		pageSize = 50
	}
	pageSize = min(pageSize, 100)

	var models []DeliveryRecordModel
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	records := make([]domain.DeliveryRecord, 0, len(models))
	for i := range models {
		records = append(records, *deliveryRecordModelToDomain(&models[i]))
	}

	return records, total, nil
}
