package lib

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatBDT(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "BDT 0.00"},
		{"60", "BDT 60.00"},
		{"1234.5", "BDT 1234.50"},
		{"999.999", "BDT 1000.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBDT(decimal.RequireFromString(tt.in)))
	}
}

func TestFormatBDTGrouped(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "BDT 0.00"},
		{"560", "BDT 560.00"},
		{"1200", "BDT 1,200.00"},
		{"12500", "BDT 12,500.00"},
		{"1234567.89", "BDT 1,234,567.89"},
		{"-1200", "BDT -1,200.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBDTGrouped(decimal.RequireFromString(tt.in)))
	}
}
