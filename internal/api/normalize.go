package api

import (
	"encoding/json"

	"xtart-crm/internal/models"
)

// keyRenames translates the backend's camelCase field names to the
// snake_case convention the rest of the client uses. Unmapped keys pass
// through untouched.
var keyRenames = map[string]string{
	"clienteId":         "cliente_id",
	"comercialId":       "comercial_id",
	"productoId":        "producto_id",
	"seccionId":         "seccion_id",
	"facturaId":         "factura_id",
	"passwordHash":      "password_hash",
	"fechaEmision":      "fecha_emision",
	"totalIva":          "total_iva",
	"precioBase":        "precio_base",
	"plazasDisponibles": "plazas_disponibles",
}

// relationKeys are the composite-entity fields the backend may embed as
// full objects. They flatten to "<relation>_id".
var relationKeys = map[string]bool{
	"cliente":   true,
	"comercial": true,
	"producto":  true,
	"seccion":   true,
}

// monetaryKeys (post-rename) always come out of normalization as float64.
var monetaryKeys = map[string]bool{
	"total":       true,
	"subtotal":    true,
	"total_iva":   true,
	"precio_base": true,
}

// Normalize reshapes a JSON-decoded response tree into the internal
// convention: renamed keys, embedded relation objects flattened to foreign
// keys, monetary fields coerced to float64. It is pure and total over any
// decoded value; scalars and null pass through unchanged and array order
// is preserved.
func Normalize(v interface{}) interface{} {
	switch value := v.(type) {
	case map[string]interface{}:
		return normalizeObject(value)
	case []interface{}:
		out := make([]interface{}, len(value))
		for i, item := range value {
			out[i] = Normalize(item)
		}
		return out
	default:
		return v
	}
}

func normalizeObject(obj map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(obj))

	for key, value := range obj {
		// Relation flattening wins over renaming, but only when the value
		// really is an embedded object; a bare scalar under "cliente" etc.
		// falls through to the normal path.
		if nested, ok := value.(map[string]interface{}); ok && relationKeys[key] {
			if id, found := nestedID(key, nested); found {
				out[key+"_id"] = id
			}
			// No recognizable id: the key is dropped entirely, not set to
			// null. Long-standing behavior the dashboards rely on.
			continue
		}

		newKey := key
		if renamed, ok := keyRenames[key]; ok {
			newKey = renamed
		}

		normalized := Normalize(value)
		if monetaryKeys[newKey] {
			if amount, ok := coerceAmount(normalized); ok {
				normalized = amount
			}
		}
		out[newKey] = normalized
	}

	return out
}

// nestedID looks for the embedded entity's id under either naming
// convention the backend has been seen to use.
func nestedID(relation string, nested map[string]interface{}) (interface{}, bool) {
	if id, ok := nested[relation+"Id"]; ok && id != nil {
		return id, true
	}
	if id, ok := nested[relation+"_id"]; ok && id != nil {
		return id, true
	}
	return nil, false
}

// coerceAmount converts numbers and numeric-looking strings to float64.
// Malformed monetary strings become 0 rather than failing; non-numeric,
// non-string values are left alone.
func coerceAmount(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, true
		}
		return f, true
	case string:
		f, _ := models.ParseMoney(n)
		return f, true
	default:
		return 0, false
	}
}
