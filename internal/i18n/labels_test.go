package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVAT(t *testing.T) {
	labels := NewLabels()

	tests := []struct {
		country string
		want    string
	}{
		{"fr", "TVA"},
		{"FR", "TVA"},
		{"be", "TVA"},
		{"de", "MwSt."},
		{"es", "IVA"},
		{"gb", "VAT"},
		{"", "VAT"},
	}

	for _, tt := range tests {
		t.Run(tt.country, func(t *testing.T) {
			assert.Equal(t, tt.want, labels.VAT(tt.country))
		})
	}
}
