package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name     string
		quantity float64
		price    float64
		expect   float64
	}{
		{"basic multiplication", 5, 100, 500},
		{"zero qty", 0, 100, 0},
		{"zero price", 1, 0, 0},
		{"decimal values", 2.5, 100.50, 251.25},
		{"binary unfriendly", 0.1, 3, 0.3},
		{"negative price", 2, -15.25, -30.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineTotal(tt.quantity, tt.price)
			assert.InDelta(t, tt.expect, got, 1e-9, "LineTotal(%v, %v)", tt.quantity, tt.price)
			assert.InDelta(t, tt.quantity*tt.price, got, 1e-9)
		})
	}
}

func TestSumTotals(t *testing.T) {
	tests := []struct {
		name   string
		items  []LineItem
		expect float64
	}{
		{"empty", nil, 0},
		{"defaults", []LineItem{{Total: 500}, {Total: 500}, {Total: 500}}, 1500},
		{"cents do not drift", []LineItem{{Total: 0.1}, {Total: 0.2}, {Total: 0.3}}, 0.6},
		{"mixed signs", []LineItem{{Total: 100}, {Total: -40.5}}, 59.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, SumTotals(tt.items))
		})
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{1500, "1,500.00"},
		{0, "0.00"},
		{1234567.891, "1,234,567.89"},
		{99.5, "99.50"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMoney(tt.input))
	}
}
