package pricing

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		subtotal string
		tax      string
		shipping string
		total    string
	}{
		{"flat shipping below threshold", "50.00", "4.00", "9.99", "63.99"},
		{"free shipping above threshold", "150.00", "12.00", "0.00", "162.00"},
		{"threshold itself is not free", "100.00", "8.00", "9.99", "117.99"},
		{"just above threshold", "100.01", "8.00", "0.00", "108.01"},
		{"empty cart", "0", "0.00", "9.99", "9.99"},
		{"tax rounds to cents", "19.99", "1.60", "9.99", "31.58"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Compute(decimal.RequireFromString(tt.subtotal))
			assert.Equal(t, tt.tax, Format(b.Tax))
			assert.Equal(t, tt.shipping, Format(b.Shipping))
			assert.Equal(t, tt.total, Format(b.Total))
		})
	}
}

func TestBreakdown_FreeShipping(t *testing.T) {
	assert.True(t, Compute(decimal.NewFromInt(101)).FreeShipping())
	assert.False(t, Compute(decimal.NewFromInt(100)).FreeShipping())
}

func TestBreakdown_JSONUsesTwoDecimals(t *testing.T) {
	b := Compute(decimal.NewFromInt(150))

	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `{"subtotal":"150.00","tax":"12.00","shipping":"0.00","total":"162.00"}`, string(data))

	var decoded Breakdown
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Total.Equal(b.Total))
	assert.True(t, decoded.Shipping.IsZero())
}
