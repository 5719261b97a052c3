package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func intp(v int) *int { return &v }

func rate(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func TestRateFieldsEqual(t *testing.T) {
	base := RateFields{Country: "FR", Rate: rate("5.5"), Name: "TVA", Priority: intp(1), Order: intp(0), Class: "reduced-rate"}

	tests := []struct {
		name   string
		mutate func(f *RateFields)
		equal  bool
	}{
		{"identical", func(f *RateFields) {}, true},
		{"same rate different scale", func(f *RateFields) { f.Rate = rate("5.5000") }, true},
		{"rate changed", func(f *RateFields) { f.Rate = rate("10") }, false},
		{"rate absent", func(f *RateFields) { f.Rate = decimal.NullDecimal{} }, false},
		{"order zero vs absent", func(f *RateFields) { f.Order = nil }, false},
		{"priority changed", func(f *RateFields) { f.Priority = intp(2) }, false},
		{"name changed", func(f *RateFields) { f.Name = "VAT" }, false},
		{"country changed", func(f *RateFields) { f.Country = "BE" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := base
			tt.mutate(&other)
			assert.Equal(t, tt.equal, base.Equal(other))
			assert.Equal(t, tt.equal, other.Equal(base))
			assert.Equal(t, tt.equal, len(base.Diff(other)) == 0)
		})
	}
}

func TestRateFieldsDiff(t *testing.T) {
	a := RateFields{Country: "FR", Rate: rate("20"), Order: intp(0), Class: ""}
	b := RateFields{Country: "FR", Rate: rate("19.6"), Class: ""}

	assert.Equal(t, []string{"tax_rate", "tax_rate_order"}, a.Diff(b))
}

func TestRateFieldsColumns(t *testing.T) {
	cols := RateFields{Country: "FR", Rate: rate("2.1"), Name: "TVA", Order: intp(0), Class: "super-reduced-rate"}.Columns()

	assert.Len(t, cols, 6)
	assert.Nil(t, cols["tax_rate_priority"])
	assert.Equal(t, 0, cols["tax_rate_order"])
	assert.True(t, decimal.RequireFromString("2.1").Equal(cols["tax_rate"].(decimal.Decimal)))
	assert.Equal(t, "super-reduced-rate", cols["tax_rate_class"])
}

func TestClassSlug(t *testing.T) {
	assert.Equal(t, "reduced-rate", ClassSlug("Reduced-rate"))
	assert.Equal(t, "zero-rate", ClassSlug("  Zero   Rate "))
	assert.Equal(t, "", ClassSlug(""))
}
