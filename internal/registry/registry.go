// Package registry holds the parsed tables and their selection state.
//
// The table set is an immutable snapshot published atomically: readers call
// Tables or SelectedTables without locking, and every mutation copies the
// current snapshot, edits the copy and swaps it in.
package registry

import (
	"sync"
	"sync/atomic"

	"github.com/satyammistari/gysql/internal/schema"
)

type snapshot struct {
	tables []schema.Table
}

// Registry tracks which parsed tables are selected for generation.
type Registry struct {
	mu   sync.Mutex // serializes writers
	snap atomic.Pointer[snapshot]
}

// New returns a Registry over tables with every table unselected.
func New(tables []schema.Table) *Registry {
	r := &Registry{}
	r.Replace(tables)
	return r
}

// Replace swaps in a freshly parsed table set. Prior selection is discarded.
func (r *Registry) Replace(tables []schema.Table) {
	next := make([]schema.Table, len(tables))
	for i, t := range tables {
		next[i] = t.Clone()
		next[i].Selected = false
	}
	r.mu.Lock()
	r.snap.Store(&snapshot{tables: next})
	r.mu.Unlock()
}

// Tables returns a copy of every table in declaration order.
func (r *Registry) Tables() []schema.Table {
	return cloneAll(r.load())
}

// Len returns the number of tables.
func (r *Registry) Len() int {
	return len(r.load())
}

// ToggleSelection flips the selection of the named table. Unknown names are ignored.
func (r *Registry) ToggleSelection(name string) {
	r.update(func(tables []schema.Table) {
		for i := range tables {
			if tables[i].Name == name {
				tables[i].Selected = !tables[i].Selected
				return
			}
		}
	})
}

// ToggleAll deselects everything when every table is selected and selects
// everything otherwise.
func (r *Registry) ToggleAll() {
	r.update(func(tables []schema.Table) {
		target := !allSelected(tables)
		for i := range tables {
			tables[i].Selected = target
		}
	})
}

// Select marks exactly the named tables as selected and returns the names
// that matched no table.
func (r *Registry) Select(names ...string) []string {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	r.update(func(tables []schema.Table) {
		for i := range tables {
			tables[i].Selected = want[tables[i].Name]
			delete(want, tables[i].Name)
		}
	})
	var unknown []string
	for _, n := range names {
		if want[n] {
			unknown = append(unknown, n)
			delete(want, n)
		}
	}
	return unknown
}

// SelectedTables returns the selected tables in declaration order.
func (r *Registry) SelectedTables() []schema.Table {
	var out []schema.Table
	for _, t := range r.load() {
		if t.Selected {
			out = append(out, t.Clone())
		}
	}
	return out
}

// SelectedCount returns how many tables are selected.
func (r *Registry) SelectedCount() int {
	n := 0
	for _, t := range r.load() {
		if t.Selected {
			n++
		}
	}
	return n
}

func (r *Registry) load() []schema.Table {
	s := r.snap.Load()
	if s == nil {
		return nil
	}
	return s.tables
}

func (r *Registry) update(fn func([]schema.Table)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := cloneAll(r.load())
	fn(next)
	r.snap.Store(&snapshot{tables: next})
}

func cloneAll(tables []schema.Table) []schema.Table {
	out := make([]schema.Table, len(tables))
	for i, t := range tables {
		out[i] = t.Clone()
	}
	return out
}

func allSelected(tables []schema.Table) bool {
	for _, t := range tables {
		if !t.Selected {
			return false
		}
	}
	return true
}
