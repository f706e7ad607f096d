package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"plain", "500.00", "500", false},
		{"western grouping", "12,345.67", "12345.67", false},
		{"indian grouping", "1,23,456.78", "123456.78", false},
		{"rupee prefix", "Rs. 1,500", "1500", false},
		{"rupee symbol", "₹ 45.10", "45.1", false},
		{"inr code", "INR 18", "18", false},
		{"empty", "", "", true},
		{"text", "abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, amount.Equal(decimal.RequireFromString(tt.expected)), "got %s", amount)
		})
	}
}

func TestFormatINR(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"0", "₹0.00"},
		{"999.5", "₹999.50"},
		{"1000", "₹1,000.00"},
		{"123456.78", "₹1,23,456.78"},
		{"12345678", "₹1,23,45,678.00"},
		{"-2500", "-₹2,500.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatINR(decimal.RequireFromString(tt.input)))
	}
}

func TestPercent(t *testing.T) {
	assert.True(t, Percent(decimal.NewFromInt(3), decimal.NewFromInt(6)).Equal(decimal.NewFromInt(50)))
	assert.True(t, Percent(decimal.NewFromInt(3), decimal.Zero).IsZero())
}
