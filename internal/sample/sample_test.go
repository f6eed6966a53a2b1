package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSynthesize(t *testing.T) {
	tests := []struct {
		column string
		want   string
	}{
		{"nombre", `"Juan Pérez"`},
		{"username", `"Juan Pérez"`},
		{"edad", "25"},
		{"Age", "25"},
		{"correo", `"juan.perez@example.com"`},
		{"email_contacto", `"juan.perez@example.com"`},
		{"activo", "true"},
		{"is_active", "true"},
		{"fecha_alta", `"2024-01-15"`},
		{"updated_date", `"2024-01-15"`},
		{"precio", "99.99"},
		{"unit_price", "99.99"},
		{"telefono", `"555-123-4567"`},
		{"phone", `"555-123-4567"`},
		{"texto", `"texto de ejemplo"`},
		{"descripcion_string", `"texto de ejemplo"`},
		{"numero", "42"},
		{"cantidad_int", "42"},
		{"logico", "true"},
		{"flag_bool", "true"},
		{"ciudad", `"valor de ejemplo"`},
		{"", `"valor de ejemplo"`},
	}
	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			assert.Equal(t, tt.want, Synthesize(tt.column))
		})
	}
}

// Ambiguous names resolve by rule order, not by the most specific keyword.
func TestSynthesize_PriorityOrder(t *testing.T) {
	tests := []struct {
		column string
		rule   string
	}{
		{"nombre_fecha", "name"},
		{"fecha_nombre", "name"},
		{"edad_email", "age"},
		{"correo_activo", "email"},
		{"activo_desde_fecha", "active"},
		{"fecha_precio", "date"},
		{"precio_telefono", "price"},
		{"telefono_texto", "phone"},
		{"texto_numero", "text"},
		{"numero_bool", "number"},
		{"image", "age"},
		{"identificador", "default"},
	}
	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			assert.Equal(t, tt.rule, Match(tt.column).Name)
		})
	}
}

func TestSynthesize_Deterministic(t *testing.T) {
	for _, c := range []string{"nombre", "edad", "x", "precio"} {
		assert.Equal(t, Synthesize(c), Synthesize(c))
	}
}

func TestValues(t *testing.T) {
	assert.Equal(t, []any{"Juan Pérez", 25, true}, Values([]string{"nombre", "edad", "activo"}))
	assert.Empty(t, Values(nil))
}

func TestRules_OrderPinned(t *testing.T) {
	var names []string
	for _, r := range Rules {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"name", "age", "email", "active", "date", "price", "phone", "text", "number", "boolean"}, names)
}
