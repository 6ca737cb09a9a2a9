package migrations

import (
	"github.com/Orlando-rp/barbersmart-gateway/internal/repository"
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func createTenantGatewayConfigsTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000002_create_tenant_gateway_configs",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&repository.TenantGatewayConfigModel{}); err != nil {
				return err
			}
			// One active config per tenant and provider.
			return tx.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_tenant_gateway_configs_active ON tenant_gateway_configs (tenant_id, provider) WHERE is_active`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&repository.TenantGatewayConfigModel{})
		},
	}
}
