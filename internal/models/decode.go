package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Decoding from normalized response maps is lenient on purpose: a missing
// or mistyped field zeroes out instead of failing, so one malformed record
// never takes a whole list down. The reporting layer decides what to skip.

func CustomerFromMap(m map[string]interface{}) Customer {
	return Customer{
		ID:      asInt64(m["cliente_id"]),
		Name:    asString(m["nombre"]),
		Surname: asString(m["apellidos"]),
		Age:     int(asInt64(m["edad"])),
		Email:   asString(m["email"]),
		Phone:   asString(m["telefono"]),
		Address: asString(m["direccion"]),
		AgentID: asInt64(m["comercial_id"]),
	}
}

func AgentFromMap(m map[string]interface{}) Agent {
	return Agent{
		ID:       asInt64(m["comercial_id"]),
		Name:     asString(m["nombre"]),
		Email:    asString(m["email"]),
		Phone:    asString(m["telefono"]),
		Role:     asString(m["rol"]),
		Username: asString(m["username"]),
	}
}

func ProductFromMap(m map[string]interface{}) Product {
	return Product{
		ID:             asInt64(m["producto_id"]),
		Name:           asString(m["nombre"]),
		BasePrice:      asAmount(m["precio_base"]),
		AvailableSlots: int(asInt64(m["plazas_disponibles"])),
		SectionID:      asInt64(m["seccion_id"]),
	}
}

func SectionFromMap(m map[string]interface{}) Section {
	return Section{
		ID:   asInt64(m["seccion_id"]),
		Name: asString(m["nombre"]),
	}
}

func InvoiceFromMap(m map[string]interface{}) Invoice {
	return Invoice{
		ID:         asString(m["factura_id"]),
		CustomerID: asInt64(m["cliente_id"]),
		AgentID:    asInt64(m["comercial_id"]),
		ProductID:  asInt64(m["producto_id"]),
		IssueDate:  m["fecha_emision"],
		Status:     asString(m["estado"]),
		Total:      asAmount(m["total"]),
		Subtotal:   asAmount(m["subtotal"]),
		TaxTotal:   asAmount(m["total_iva"]),
	}
}

func StatisticsFromMap(m map[string]interface{}) APIStatistics {
	return APIStatistics{
		TotalRequests:       asInt64(m["totalRequests"]),
		SuccessfulRequests:  asInt64(m["successfulRequests"]),
		FailedRequests:      asInt64(m["failedRequests"]),
		AverageResponseTime: asAmount(m["averageResponseTime"]),
	}
}

// asInt64 accepts the numeric shapes a decoded JSON tree can carry for an
// id field. Anything unrecognizable is zero, the "absent" sentinel.
func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0
		}
		return i
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

func asString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		// json decodes all numbers to float64; ids formatted back without
		// a fractional part.
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(s, 10)
	case int:
		return strconv.Itoa(s)
	case bool:
		return strconv.FormatBool(s)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}

// asAmount is the tolerant monetary read: numbers pass through, display
// strings go through ParseMoney, anything else is 0.
func asAmount(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, _ := ParseMoney(n)
		return f
	default:
		return 0
	}
}
