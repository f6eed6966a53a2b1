package generator

import (
	"io"

	"github.com/dave/jennifer/jen"
)

const (
	pgxPkg     = "github.com/jackc/pgx/v5"
	pgxpoolPkg = "github.com/jackc/pgx/v5/pgxpool"
)

// Module accumulates the parts of one generated file: a shared preamble,
// one section per table, the integration driver and a summary footer.
type Module struct {
	Package  string
	Preamble []jen.Code
	Sections []Section
	Driver   []jen.Code
	Footer   []string
}

// Section is the generated code for one table.
type Section struct {
	Table     string
	Functions []string
	Decls     []jen.Code
}

func newModule(pkg string) *Module {
	return &Module{Package: pkg}
}

// Functions returns every per-table function name in section order.
func (m *Module) Functions() []string {
	var out []string
	for _, s := range m.Sections {
		out = append(out, s.Functions...)
	}
	return out
}

// File assembles the module into a jennifer file.
func (m *Module) File() *jen.File {
	f := jen.NewFile(m.Package)
	f.HeaderComment("Code generated by gysql. DO NOT EDIT.")
	f.ImportName(pgxPkg, "pgx")
	f.ImportName(pgxpoolPkg, "pgxpool")

	add := func(decls []jen.Code) {
		for _, d := range decls {
			f.Add(d)
			f.Line()
		}
	}
	add(m.Preamble)
	for _, s := range m.Sections {
		f.Commentf("--- %s ---", s.Table)
		f.Line()
		add(s.Decls)
	}
	add(m.Driver)
	for _, line := range m.Footer {
		f.Comment(line)
	}
	return f
}

// Render writes the gofmt-formatted module to w.
func (m *Module) Render(w io.Writer) error {
	return m.File().Render(w)
}
