package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRenamesKeys(t *testing.T) {
	input := map[string]interface{}{
		"clienteId":         1,
		"fechaEmision":      "2024-01-15T00:00:00",
		"plazasDisponibles": 20,
		"nombre":            "Ana",
	}

	result, ok := Normalize(input).(map[string]interface{})
	require.True(t, ok)

	assert.Equal(t, 1, result["cliente_id"])
	assert.Equal(t, "2024-01-15T00:00:00", result["fecha_emision"])
	assert.Equal(t, 20, result["plazas_disponibles"])
	assert.Equal(t, "Ana", result["nombre"])
	assert.NotContains(t, result, "clienteId")
	assert.NotContains(t, result, "fechaEmision")
}

func TestNormalizeFlattensNestedRelation(t *testing.T) {
	input := map[string]interface{}{
		"cliente": map[string]interface{}{
			"clienteId": 7,
			"nombre":    "Ana",
		},
		"total": "150,00€",
	}

	result, ok := Normalize(input).(map[string]interface{})
	require.True(t, ok)

	assert.Equal(t, map[string]interface{}{
		"cliente_id": 7,
		"total":      150.0,
	}, result)
}

func TestNormalizeFlattensSnakeCaseNestedID(t *testing.T) {
	input := map[string]interface{}{
		"comercial": map[string]interface{}{
			"comercial_id": 3,
			"nombre":       "Luis",
		},
	}

	result := Normalize(input).(map[string]interface{})
	assert.Equal(t, 3, result["comercial_id"])
	assert.NotContains(t, result, "comercial")
}

func TestNormalizeDropsRelationWithoutID(t *testing.T) {
	input := map[string]interface{}{
		"producto": map[string]interface{}{
			"nombre": "Curso de Go",
		},
		"seccion": map[string]interface{}{
			"seccionId": nil,
		},
		"estado": "pagada",
	}

	result := Normalize(input).(map[string]interface{})

	// Neither a null nor the nested object survives; the key vanishes.
	assert.Equal(t, map[string]interface{}{"estado": "pagada"}, result)
}

func TestNormalizeRelationKeyWithScalarValue(t *testing.T) {
	// A bare foreign key under a relation name is not an embedded object
	// and must pass through the rename path untouched.
	input := map[string]interface{}{"cliente": 5}

	result := Normalize(input).(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"cliente": 5}, result)
}

func TestNormalizeNonRelationNestedObjectRecurses(t *testing.T) {
	input := map[string]interface{}{
		"detalle": map[string]interface{}{
			"precioBase": "10,50€",
		},
	}

	result := Normalize(input).(map[string]interface{})
	nested := result["detalle"].(map[string]interface{})
	assert.Equal(t, 10.5, nested["precio_base"])
}

func TestNormalizeSequencesPreserveOrder(t *testing.T) {
	input := []interface{}{
		map[string]interface{}{"facturaId": "F1"},
		map[string]interface{}{"facturaId": "F2"},
		"scalar",
	}

	result := Normalize(input).([]interface{})
	require.Len(t, result, 3)
	assert.Equal(t, "F1", result[0].(map[string]interface{})["factura_id"])
	assert.Equal(t, "F2", result[1].(map[string]interface{})["factura_id"])
	assert.Equal(t, "scalar", result[2])
}

func TestNormalizeScalarsPassThrough(t *testing.T) {
	assert.Equal(t, 42.0, Normalize(42.0))
	assert.Equal(t, "hola", Normalize("hola"))
	assert.Equal(t, true, Normalize(true))
	assert.Nil(t, Normalize(nil))
}

func TestNormalizeMonetaryCoercion(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  interface{}
	}{
		{"native float", 100.0, 100.0},
		{"native int", 100, 100.0},
		{"plain string", "100", 100.0},
		{"euro decimal comma", "150,00€", 150.0},
		{"european thousands", "1.234,56", 1234.56},
		{"us thousands", "1,234.56", 1234.56},
		{"thousands only comma", "1,234", 1234.0},
		{"malformed string", "abc", 0.0},
		{"empty string", "", 0.0},
		{"null passes through", nil, nil},
		{"bool passes through", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(map[string]interface{}{"total": tt.value}).(map[string]interface{})
			assert.Equal(t, tt.want, result["total"])
		})
	}
}

func TestNormalizeCoercesAllMonetaryFields(t *testing.T) {
	input := map[string]interface{}{
		"total":      "200",
		"subtotal":   "165,29",
		"totalIva":   "34,71",
		"precioBase": 99,
	}

	result := Normalize(input).(map[string]interface{})
	assert.Equal(t, 200.0, result["total"])
	assert.Equal(t, 165.29, result["subtotal"])
	assert.Equal(t, 34.71, result["total_iva"])
	assert.Equal(t, 99.0, result["precio_base"])
}

func TestNormalizeIdempotent(t *testing.T) {
	// For trees with no embedded relation objects, a second pass is a
	// no-op: renamed keys stay renamed and floats stay floats.
	inputs := []interface{}{
		map[string]interface{}{
			"facturaId":    "F9",
			"total":        "99,95€",
			"fechaEmision": "2024-06-01",
			"estado":       "pendiente",
		},
		[]interface{}{
			map[string]interface{}{"precioBase": 12.5, "nombre": "Taller"},
		},
		"scalar",
		nil,
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		assert.Equal(t, once, twice)
	}
}
