package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyColumn(t *testing.T) {
	tests := []struct {
		name     string
		columns  []string
		key      string
		fallback bool
	}{
		{"plain id", []string{"id", "nombre"}, "id", false},
		{"first id-like wins", []string{"nombre", "usuario_id", "id"}, "usuario_id", false},
		{"case-insensitive", []string{"codigo", "ID_Cliente"}, "ID_Cliente", false},
		{"substring counts", []string{"nombre", "identificador"}, "identificador", false},
		{"fallback to first", []string{"codigo", "nombre"}, "codigo", true},
		{"no columns", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := Table{Name: "t", Columns: tt.columns}
			assert.Equal(t, tt.key, tbl.KeyColumn())
			assert.Equal(t, tt.fallback, tbl.KeyFallback())
		})
	}
}

// Pinned quirk: only exact id and *_id are excluded. Any other name that
// merely contains "id" stays insertable.
func TestInsertColumns_PinnedQuirk(t *testing.T) {
	tbl := Table{Name: "t", Columns: []string{"id", "usuario_id", "identificador", "ciudad", "Cliente_ID", "nombre"}}
	assert.Equal(t, []string{"identificador", "ciudad", "nombre"}, tbl.InsertColumns())
	assert.Equal(t, []string{"identificador", "ciudad", "nombre"}, tbl.UpdateColumns())
}

func TestInsertColumns_UsuarioID(t *testing.T) {
	tbl := Table{Name: "pedidos", Columns: []string{"usuario_id", "total"}}
	assert.NotContains(t, tbl.InsertColumns(), "usuario_id")

	only := Table{Name: "docs", Columns: []string{"identificador", "titulo"}}
	assert.Contains(t, only.InsertColumns(), "identificador")
	assert.Equal(t, "identificador", only.KeyColumn())
}

func TestUpdateColumns_ExcludesID(t *testing.T) {
	tbl := Table{Name: "usuarios", Columns: []string{"id", "nombre", "edad"}}
	assert.Equal(t, []string{"nombre", "edad"}, tbl.InsertColumns())
	assert.Equal(t, []string{"nombre", "edad"}, tbl.UpdateColumns())
}

func TestClone(t *testing.T) {
	orig := Table{Name: "t", Columns: []string{"a"}}
	c := orig.Clone()
	c.Columns[0] = "b"
	c.Selected = true
	assert.Equal(t, "a", orig.Columns[0])
	assert.False(t, orig.Selected)
}

func TestTableByName(t *testing.T) {
	tables := []Table{{Name: "a"}, {Name: "b"}}
	assert.Equal(t, "b", TableByName(tables, "b").Name)
	assert.Nil(t, TableByName(tables, "c"))
	assert.Equal(t, []string{"a", "b"}, Names(tables))
}
