package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TaxRatesTable is the platform's rate table name, without the site prefix
const TaxRatesTable = "woocommerce_tax_rates"

// StandardClass is the implicit, unlabeled class every shop has
const StandardClass = ""

// RateFields is the comparable part of a tax rate. Nil/invalid fields are
// absent and never equal to a zero value.
type RateFields struct {
	Country  string              `gorm:"column:tax_rate_country;type:varchar(2);not null;default:''" json:"country"`
	Rate     decimal.NullDecimal `gorm:"column:tax_rate;type:decimal(8,4)" json:"rate"`
	Name     string              `gorm:"column:tax_rate_name;type:varchar(200);not null;default:''" json:"name"`
	Priority *int                `gorm:"column:tax_rate_priority" json:"priority"`
	Order    *int                `gorm:"column:tax_rate_order" json:"order"`
	Class    string              `gorm:"column:tax_rate_class;type:varchar(200);not null;default:'';index" json:"class"`
}

// DeclaredRate is the authoritative rate for a country, read from a declaration file
type DeclaredRate = RateFields

// TaxRate is a rate persisted in the shop database
type TaxRate struct {
	ID uint `gorm:"column:tax_rate_id;primaryKey;autoIncrement" json:"id"`
	RateFields
}

// Equal reports whether every field matches, treating absence and zero as different.
func (f RateFields) Equal(o RateFields) bool {
	return f.Country == o.Country &&
		f.Name == o.Name &&
		f.Class == o.Class &&
		nullDecimalEqual(f.Rate, o.Rate) &&
		intPtrEqual(f.Priority, o.Priority) &&
		intPtrEqual(f.Order, o.Order)
}

// Diff returns the column names whose values differ.
func (f RateFields) Diff(o RateFields) []string {
	var cols []string
	if f.Country != o.Country {
		cols = append(cols, "tax_rate_country")
	}
	if !nullDecimalEqual(f.Rate, o.Rate) {
		cols = append(cols, "tax_rate")
	}
	if f.Name != o.Name {
		cols = append(cols, "tax_rate_name")
	}
	if !intPtrEqual(f.Priority, o.Priority) {
		cols = append(cols, "tax_rate_priority")
	}
	if !intPtrEqual(f.Order, o.Order) {
		cols = append(cols, "tax_rate_order")
	}
	if f.Class != o.Class {
		cols = append(cols, "tax_rate_class")
	}
	return cols
}

// Columns maps every column to its value, absent fields as NULL.
// Used for full-replacement updates so zero values are written too.
func (f RateFields) Columns() map[string]interface{} {
	cols := map[string]interface{}{
		"tax_rate_country":  f.Country,
		"tax_rate":          nil,
		"tax_rate_name":     f.Name,
		"tax_rate_priority": nil,
		"tax_rate_order":    nil,
		"tax_rate_class":    f.Class,
	}
	if f.Rate.Valid {
		cols["tax_rate"] = f.Rate.Decimal
	}
	if f.Priority != nil {
		cols["tax_rate_priority"] = *f.Priority
	}
	if f.Order != nil {
		cols["tax_rate_order"] = *f.Order
	}
	return cols
}

// ClassSlug converts a class label ("Reduced rate") to the key rates are stored under ("reduced-rate").
func ClassSlug(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), "-")
}

func nullDecimalEqual(a, b decimal.NullDecimal) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Decimal.Equal(b.Decimal)
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
