package generator

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/satyammistari/gysql/internal/sample"
)

// driver returns RunIntegrationTests and one test function per table. The
// driver inserts and updates sample rows but never deletes them.
func driver(specs []*tableSpec) []jen.Code {
	run := jen.Comment("RunIntegrationTests exercises the generated functions against ConnConfig.").Line().
		Comment("It inserts and updates sample rows and never deletes anything.").Line().
		Func().Id("RunIntegrationTests").Params(ctxParam()).BlockFunc(func(g *jen.Group) {
		for _, s := range specs {
			g.Id(s.testName()).Call(jen.Id("ctx"))
		}
	})

	out := []jen.Code{run}
	for _, s := range specs {
		out = append(out, s.test())
	}
	return out
}

func literals(columns []string) []jen.Code {
	out := make([]jen.Code, len(columns))
	for i, v := range sample.Values(columns) {
		out[i] = jen.Lit(v)
	}
	return out
}

func (s *tableSpec) test() jen.Code {
	name := s.table.Name
	stamp := jen.Qual("time", "Now").Call().Dot("Format").Call(jen.Qual("time", "RFC3339"))
	insertArgs := append([]jen.Code{jen.Id("ctx")}, literals(s.insertCols)...)
	updateArgs := append([]jen.Code{jen.Id("ctx"), jen.Id("key")}, literals(s.updateCols)...)

	return jen.Func().Id(s.testName()).Params(ctxParam()).Block(
		jen.Qual("log", "Printf").Call(jen.Lit("[%s] "+name+": checking connection"), stamp),
		jen.If(jen.Err().Op(":=").Id("ping").Call(jen.Id("ctx")), jen.Err().Op("!=").Nil()).Block(
			s.logf("connection failed: %v", jen.Err()),
			jen.Return(),
		),
		s.logf("%d rows before insert", jen.Len(jen.Id(s.listName()).Call(jen.Id("ctx")))),

		jen.Id("created").Op(":=").Id(s.insertName()).Call(insertArgs...),
		jen.If(jen.Id("created").Op("==").Nil()).Block(
			s.logf("insert failed"),
			jen.Return(),
		),
		jen.Id("key").Op(":=").Id("created").Index(jen.Lit(resultKey(s.key))),
		s.logf("inserted %v", jen.Id(s.getName()).Call(jen.Id("ctx"), jen.Id("key"))),

		jen.If(jen.Id(s.updateName()).Call(updateArgs...).Op("==").Nil()).Block(
			s.logf("update failed"),
		),
		s.logf("after update %v", jen.Id(s.getName()).Call(jen.Id("ctx"), jen.Id("key"))),
		s.logf("%d rows after insert", jen.Len(jen.Id(s.listName()).Call(jen.Id("ctx")))),

		jen.Comment("To remove the sample row:"),
		jen.Commentf("%s(ctx, key)", s.deleteName()),
	)
}

// resultKey returns the map key under which pgx.RowToMap reports column.
// PostgreSQL folds unquoted identifiers to lower case.
func resultKey(column string) string {
	if len(column) >= 2 && (column[0] == '"' || column[0] == '`') && column[len(column)-1] == column[0] {
		return column[1 : len(column)-1]
	}
	return strings.ToLower(column)
}

// footer summarizes the module in comment lines.
func footer(database string, sections []Section) []string {
	lines := []string{
		"Summary",
		fmt.Sprintf("  database: %s", database),
		fmt.Sprintf("  tables:   %d", len(sections)),
	}
	for _, s := range sections {
		if len(s.Functions) == 0 {
			lines = append(lines, fmt.Sprintf("  - %s: skipped, no columns", s.Table))
			continue
		}
		lines = append(lines, fmt.Sprintf("  - %s: %s", s.Table, strings.Join(s.Functions, ", ")))
	}
	return lines
}
