package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIssueDate(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  time.Time
		ok    bool
	}{
		{
			name:  "iso datetime",
			value: "2024-01-15T10:30:00",
			want:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "space separated datetime",
			value: "2024-01-15 10:30:00",
			want:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "bare date",
			value: "2024-01-15",
			want:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "three element array",
			value: []interface{}{float64(2024), float64(1), float64(15)},
			want:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "six element array",
			value: []interface{}{float64(2024), float64(1), float64(15), float64(10), float64(30), float64(45)},
			want:  time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC),
			ok:    true,
		},
		{name: "short array", value: []interface{}{float64(2024), float64(1)}, ok: false},
		{name: "invalid month in array", value: []interface{}{float64(2024), float64(13), float64(1)}, ok: false},
		{name: "invalid day in array", value: []interface{}{float64(2024), float64(2), float64(30)}, ok: false},
		{name: "garbage string", value: "mañana", ok: false},
		{name: "nil", value: nil, ok: false},
		{name: "number", value: 20240115.0, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseIssueDate(tt.value)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"100", 100, true},
		{"150,00€", 150, true},
		{"150.00", 150, true},
		{"1.234,56", 1234.56, true},
		{"1,234.56", 1234.56, true},
		{"1,234", 1234, true},
		{"1.234.567", 1234567, true},
		{"  99,95 € ", 99.95, true},
		{"$42.50", 42.5, true},
		{"", 0, false},
		{"€", 0, false},
		{"abc", 0, false},
		{"12x", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseMoney(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInvoiceFromMapLenientDecoding(t *testing.T) {
	invoice := InvoiceFromMap(map[string]interface{}{
		"factura_id":    "F001",
		"cliente_id":    float64(7),
		"comercial_id":  float64(2),
		"producto_id":   float64(9),
		"fecha_emision": "2024-05-01",
		"estado":        "pagada",
		"total":         121.0,
		"subtotal":      100.0,
		"total_iva":     21.0,
	})

	assert.Equal(t, "F001", invoice.ID)
	assert.Equal(t, int64(7), invoice.CustomerID)
	assert.Equal(t, int64(2), invoice.AgentID)
	assert.Equal(t, int64(9), invoice.ProductID)
	assert.Equal(t, "pagada", invoice.Status)
	assert.Equal(t, 121.0, invoice.Total)

	// Missing and mistyped fields zero out instead of failing.
	empty := InvoiceFromMap(map[string]interface{}{"cliente_id": "no-soy-un-id"})
	assert.Zero(t, empty.CustomerID)
	assert.Zero(t, empty.Total)
	assert.Empty(t, empty.Status)
}

func TestCustomerFromMap(t *testing.T) {
	customer := CustomerFromMap(map[string]interface{}{
		"cliente_id":   float64(4),
		"nombre":       "Ana",
		"apellidos":    "García",
		"edad":         float64(34),
		"email":        "ana@example.com",
		"comercial_id": float64(2),
	})

	assert.Equal(t, int64(4), customer.ID)
	assert.Equal(t, "Ana", customer.Name)
	assert.Equal(t, "García", customer.Surname)
	assert.Equal(t, 34, customer.Age)
	assert.Equal(t, int64(2), customer.AgentID)
}
