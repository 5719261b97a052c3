package repository

import (
	"context"
	"errors"

	"taxsync/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OptionRepository interface {
	Get(ctx context.Context, name string) (string, error)
	Set(ctx context.Context, name, value string) error
}

type optionRepository struct {
	db    *gorm.DB
	table string
}

// NewOptionRepository works on <prefix>options
func NewOptionRepository(db *gorm.DB, tablePrefix string) OptionRepository {
	return &optionRepository{db: db, table: tablePrefix + model.OptionsTable}
}

// Get returns the option value, or "" when the option was never set
func (r *optionRepository) Get(ctx context.Context, name string) (string, error) {
	var opt model.Option
	err := GetDB(ctx, r.db).Table(r.table).Where("option_name = ?", name).Take(&opt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return opt.Value, nil
}

// Set creates or overwrites the option value
func (r *optionRepository) Set(ctx context.Context, name, value string) error {
	opt := model.Option{Name: name, Value: value, Autoload: "yes"}
	return GetDB(ctx, r.db).Table(r.table).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "option_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"option_value"}),
	}).Create(&opt).Error
}
