package repository

import (
	"context"

	"taxsync/internal/model"

	"gorm.io/gorm"
)

type TaxRateRepository interface {
	ListByClass(ctx context.Context, class string) ([]model.TaxRate, error)
	ListAll(ctx context.Context) ([]model.TaxRate, error)
	List(ctx context.Context, page, limit int) ([]model.TaxRate, int64, error)
	Insert(ctx context.Context, rate model.RateFields) (uint, error)
	Update(ctx context.Context, id uint, rate model.RateFields) (int64, error)
}

type taxRateRepository struct {
	db    *gorm.DB
	table string
}

// NewTaxRateRepository works on <prefix>woocommerce_tax_rates
func NewTaxRateRepository(db *gorm.DB, tablePrefix string) TaxRateRepository {
	return &taxRateRepository{db: db, table: tablePrefix + model.TaxRatesTable}
}

func (r *taxRateRepository) query(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).Table(r.table)
}

// ListByClass returns the rates of one class slug in the order the shop applies them
func (r *taxRateRepository) ListByClass(ctx context.Context, class string) ([]model.TaxRate, error) {
	var rates []model.TaxRate
	if err := r.query(ctx).
		Where("tax_rate_class = ?", class).
		Order("tax_rate_priority, tax_rate_order, tax_rate_id").
		Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}

func (r *taxRateRepository) ListAll(ctx context.Context) ([]model.TaxRate, error) {
	var rates []model.TaxRate
	if err := r.query(ctx).Order("tax_rate_id").Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}

func (r *taxRateRepository) List(ctx context.Context, page, limit int) ([]model.TaxRate, int64, error) {
	var rates []model.TaxRate
	var total int64

	if err := r.query(ctx).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := r.query(ctx).Order("tax_rate_id").Offset(offset).Limit(limit).Find(&rates).Error; err != nil {
		return nil, 0, err
	}

	return rates, total, nil
}

// Insert stores a new rate and returns its tax_rate_id
func (r *taxRateRepository) Insert(ctx context.Context, rate model.RateFields) (uint, error) {
	row := model.TaxRate{RateFields: rate}
	if err := r.query(ctx).Create(&row).Error; err != nil {
		return 0, err
	}
	return row.ID, nil
}

// Update replaces every column of a stored rate. Zero rows affected means the id does not exist.
func (r *taxRateRepository) Update(ctx context.Context, id uint, rate model.RateFields) (int64, error) {
	res := r.query(ctx).Where("tax_rate_id = ?", id).Updates(rate.Columns())
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
