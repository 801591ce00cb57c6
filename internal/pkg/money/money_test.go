package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"200", "₹200"},
		{"1300", "₹1,300"},
		{"199.5", "₹199.50"},
		{"0", "₹0"},
		{"12345.678", "₹12,345.68"},
		{"-50", "-₹50"},
		{"100000", "₹1,00,000"},
		{"1300000", "₹13,00,000"},
		{"1234567.5", "₹12,34,567.50"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(decimal.RequireFromString(tt.in)))
		})
	}
}
