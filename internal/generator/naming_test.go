package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	assert.Equal(t, "nombre", sanitize("nombre"))
	assert.Equal(t, "ano", sanitize("año"))
	assert.Equal(t, "descripcion", sanitize("descripción"))
	assert.Equal(t, "a_b", sanitize("a-b"))
	assert.Equal(t, "x1st", sanitize("1st"))
	assert.Equal(t, "cliente", sanitize(`"cliente"`))
	assert.Equal(t, "x", sanitize("--"))
}

func TestExportedName(t *testing.T) {
	assert.Equal(t, "Usuarios", exportedName("usuarios"))
	assert.Equal(t, "OrderItems", exportedName("order_items"))
}

func TestParamNames(t *testing.T) {
	assert.Equal(t, []string{"nombre", "edad"}, paramNames([]string{"nombre", "edad"}))
	assert.Equal(t, []string{"type2", "ctx2", "nombre", "nombre2"}, paramNames([]string{"type", "ctx", "nombre", "nombre"}))
	assert.Equal(t, []string{"any2", "key2"}, paramNames([]string{"any", "key"}))
}

func TestResultKey(t *testing.T) {
	assert.Equal(t, "usuario_id", resultKey("Usuario_ID"))
	assert.Equal(t, "Usuario_ID", resultKey(`"Usuario_ID"`))
}
