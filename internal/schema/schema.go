package schema

import "strings"

// Table represents a parsed database table.
type Table struct {
	Name     string
	Columns  []string // declaration order, duplicates preserved
	Selected bool
}

// Clone returns a copy of t that shares no memory with it.
func (t Table) Clone() Table {
	c := t
	c.Columns = append([]string(nil), t.Columns...)
	return c
}

// keyRule is one step of the id-column inference chain.
type keyRule struct {
	name  string
	match func(cols []string) (string, bool)
}

// keyRules are evaluated top to bottom; the first rule that returns a column wins.
var keyRules = []keyRule{
	{"contains-id", func(cols []string) (string, bool) {
		for _, c := range cols {
			if strings.Contains(strings.ToLower(c), "id") {
				return c, true
			}
		}
		return "", false
	}},
	{"first-column", func(cols []string) (string, bool) {
		if len(cols) == 0 {
			return "", false
		}
		return cols[0], true
	}},
}

// KeyColumn returns the column used to address a single row. It is empty
// only when the table has no columns.
func (t Table) KeyColumn() string {
	col, _ := t.keyRule()
	return col
}

// KeyFallback reports whether KeyColumn had to fall back to the first column.
func (t Table) KeyFallback() bool {
	_, rule := t.keyRule()
	return rule == "first-column"
}

func (t Table) keyRule() (string, string) {
	for _, r := range keyRules {
		if col, ok := r.match(t.Columns); ok {
			return col, r.name
		}
	}
	return "", ""
}

// InsertColumns returns the columns accepted by a generated insert.
// Only a column named exactly "id" or ending in "_id" is left out;
// "identificador" and friends stay insertable.
func (t Table) InsertColumns() []string {
	var out []string
	for _, c := range t.Columns {
		lower := strings.ToLower(c)
		if lower == "id" || strings.HasSuffix(lower, "_id") {
			continue
		}
		out = append(out, c)
	}
	return out
}

// UpdateColumns returns InsertColumns without any column literally named "id".
func (t Table) UpdateColumns() []string {
	var out []string
	for _, c := range t.InsertColumns() {
		if c == "id" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// TableByName returns a table by name from the slice.
func TableByName(tables []Table, name string) *Table {
	for i := range tables {
		if tables[i].Name == name {
			return &tables[i]
		}
	}
	return nil
}

// Names returns the table names in order.
func Names(tables []Table) []string {
	out := make([]string, 0, len(tables))
	for _, t := range tables {
		out = append(out, t.Name)
	}
	return out
}
