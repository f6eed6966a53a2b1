// Package sample proposes example values for columns from their names alone.
package sample

import (
	"fmt"
	"strings"
)

// Rule maps a set of name fragments to an example value.
type Rule struct {
	Name     string
	Keywords []string
	Value    any
}

// Rules is evaluated top to bottom against the lower-cased column name and
// the first rule with a matching keyword wins. The order is part of the
// contract: "nombre_fecha" is a name, not a date.
var Rules = []Rule{
	{Name: "name", Keywords: []string{"nombre", "name"}, Value: "Juan Pérez"},
	{Name: "age", Keywords: []string{"edad", "age"}, Value: 25},
	{Name: "email", Keywords: []string{"email", "correo"}, Value: "juan.perez@example.com"},
	{Name: "active", Keywords: []string{"activo", "active"}, Value: true},
	{Name: "date", Keywords: []string{"fecha", "date"}, Value: "2024-01-15"},
	{Name: "price", Keywords: []string{"precio", "price"}, Value: 99.99},
	{Name: "phone", Keywords: []string{"telefono", "phone"}, Value: "555-123-4567"},
	{Name: "text", Keywords: []string{"texto", "text", "string"}, Value: "texto de ejemplo"},
	{Name: "number", Keywords: []string{"numero", "num", "int"}, Value: 42},
	{Name: "boolean", Keywords: []string{"logico", "bool"}, Value: true},
}

// Default is used when no rule matches.
var Default = Rule{Name: "default", Value: "valor de ejemplo"}

// Match returns the rule that fires for column.
func Match(column string) Rule {
	lower := strings.ToLower(column)
	for _, r := range Rules {
		for _, k := range r.Keywords {
			if strings.Contains(lower, k) {
				return r
			}
		}
	}
	return Default
}

// Value returns the example value for column.
func Value(column string) any {
	return Match(column).Value
}

// Synthesize returns the example value for column as Go literal text.
func Synthesize(column string) string {
	return Literal(Value(column))
}

// Literal renders v the same way jen.Lit does.
func Literal(v any) string {
	return fmt.Sprintf("%#v", v)
}

// Values returns one example value per column, in order.
func Values(columns []string) []any {
	out := make([]any, len(columns))
	for i, c := range columns {
		out[i] = Value(c)
	}
	return out
}
