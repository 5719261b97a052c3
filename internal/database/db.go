package database

import (
	"fmt"

	"taxsync/internal/model"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
}

// Migrate creates or alters the rate, option and audit tables.
// Rate and option tables carry the shop's table prefix.
func Migrate(db *gorm.DB, tablePrefix string, logger *zap.Logger) error {
	tables := []struct {
		name  string
		model interface{}
	}{
		{tablePrefix + model.TaxRatesTable, &model.TaxRate{}},
		{tablePrefix + model.OptionsTable, &model.Option{}},
	}
	for _, t := range tables {
		if err := db.Table(t.name).AutoMigrate(t.model); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", t.name, err)
		}
		logger.Debug("table migrated", zap.String("table", t.name))
	}

	if err := db.AutoMigrate(&model.AuditLog{}); err != nil {
		// Audit is best effort, the reconciliation itself does not need it
		logger.Warn("failed to auto-migrate audit log", zap.Error(err))
	}
	return nil
}
