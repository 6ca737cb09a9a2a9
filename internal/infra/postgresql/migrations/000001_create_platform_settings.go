package migrations

import (
	"github.com/Orlando-rp/barbersmart-gateway/internal/repository"
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func createPlatformSettingsTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000001_create_platform_settings",
		Migrate: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&repository.PlatformSettingModel{})
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&repository.PlatformSettingModel{})
		},
	}
}
