package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satyammistari/gysql/internal/schema"
)

func sampleTables() []schema.Table {
	return []schema.Table{
		{Name: "usuarios", Columns: []string{"id", "nombre"}},
		{Name: "pedidos", Columns: []string{"id", "usuario_id"}},
		{Name: "productos", Columns: []string{"id", "precio"}},
	}
}

func TestNew_StartsUnselected(t *testing.T) {
	in := sampleTables()
	in[0].Selected = true
	r := New(in)
	assert.Equal(t, 3, r.Len())
	assert.Zero(t, r.SelectedCount())
	assert.Empty(t, r.SelectedTables())
}

func TestToggleSelection(t *testing.T) {
	r := New(sampleTables())
	r.ToggleSelection("pedidos")
	assert.Equal(t, 1, r.SelectedCount())
	assert.Equal(t, []string{"pedidos"}, schema.Names(r.SelectedTables()))

	r.ToggleSelection("pedidos")
	assert.Zero(t, r.SelectedCount())

	r.ToggleSelection("missing")
	assert.Zero(t, r.SelectedCount())
}

func TestSelectedTables_DeclarationOrder(t *testing.T) {
	r := New(sampleTables())
	r.ToggleSelection("productos")
	r.ToggleSelection("usuarios")
	assert.Equal(t, []string{"usuarios", "productos"}, schema.Names(r.SelectedTables()))
}

func TestToggleAll(t *testing.T) {
	r := New(sampleTables())

	r.ToggleSelection("usuarios")
	r.ToggleAll()
	assert.Equal(t, 3, r.SelectedCount(), "partial selection selects all")

	r.ToggleAll()
	assert.Zero(t, r.SelectedCount(), "full selection deselects all")
}

func TestToggleAll_TwiceRestores(t *testing.T) {
	for _, start := range []bool{false, true} {
		r := New(sampleTables())
		if start {
			r.ToggleAll()
		}
		before := r.Tables()
		r.ToggleAll()
		r.ToggleAll()
		assert.Equal(t, before, r.Tables())
	}
}

func TestReplace_ResetsSelection(t *testing.T) {
	r := New(sampleTables())
	r.ToggleAll()
	require.Equal(t, 3, r.SelectedCount())

	r.Replace([]schema.Table{{Name: "usuarios", Columns: []string{"id"}}})
	assert.Equal(t, 1, r.Len())
	assert.Zero(t, r.SelectedCount())
}

func TestSelect(t *testing.T) {
	r := New(sampleTables())
	r.ToggleSelection("pedidos")

	unknown := r.Select("usuarios", "facturas", "productos")
	assert.Equal(t, []string{"facturas"}, unknown)
	assert.Equal(t, []string{"usuarios", "productos"}, schema.Names(r.SelectedTables()))
}

func TestSnapshotsAreCopies(t *testing.T) {
	r := New(sampleTables())
	tables := r.Tables()
	tables[0].Selected = true
	tables[0].Columns[0] = "changed"

	assert.Zero(t, r.SelectedCount())
	assert.Equal(t, "id", r.Tables()[0].Columns[0])
}

func TestConcurrentReaders(t *testing.T) {
	r := New(sampleTables())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				n := r.SelectedCount()
				assert.True(t, n == 0 || n == 3)
				_ = r.SelectedTables()
			}
		}()
	}
	for j := 0; j < 100; j++ {
		r.ToggleAll()
	}
	wg.Wait()
}

func TestZeroValue(t *testing.T) {
	var r Registry
	assert.Zero(t, r.Len())
	r.ToggleAll()
	r.ToggleSelection("x")
	assert.Empty(t, r.SelectedTables())
}
