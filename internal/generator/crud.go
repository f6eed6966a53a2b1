package generator

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/satyammistari/gysql/internal/schema"
)

// tableSpec carries everything the section and the driver need about one table.
type tableSpec struct {
	table  schema.Table
	goName string
	key    string

	insertCols   []string
	insertParams []string
	updateCols   []string
	updateParams []string
}

func newTableSpec(t schema.Table, names nameSet) *tableSpec {
	s := &tableSpec{
		table:      t,
		goName:     names.take(exportedName(t.Name)),
		key:        t.KeyColumn(),
		insertCols: t.InsertColumns(),
		updateCols: t.UpdateColumns(),
	}
	s.insertParams = paramNames(s.insertCols)
	s.updateParams = paramNames(s.updateCols)
	return s
}

func (s *tableSpec) hasFunctions() bool { return len(s.table.Columns) > 0 }

func (s *tableSpec) listName() string   { return "List" + s.goName }
func (s *tableSpec) getName() string    { return "Get" + s.goName + "ByID" }
func (s *tableSpec) insertName() string { return "Insert" + s.goName }
func (s *tableSpec) updateName() string { return "Update" + s.goName }
func (s *tableSpec) deleteName() string { return "Delete" + s.goName }
func (s *tableSpec) testName() string   { return "test" + s.goName }

func (s *tableSpec) section() Section {
	sec := Section{Table: s.table.Name}
	if !s.hasFunctions() {
		sec.Decls = []jen.Code{
			jen.Commentf("%s declares no columns; no functions were generated for it.", s.table.Name),
		}
		return sec
	}
	sec.Functions = []string{s.listName(), s.getName(), s.insertName(), s.updateName(), s.deleteName()}
	sec.Decls = []jen.Code{s.list(), s.get(), s.insert(), s.update(), s.del()}
	return sec
}

// logf renders log.Printf("<table>: <format>", args...).
func (s *tableSpec) logf(format string, args ...jen.Code) *jen.Statement {
	return jen.Qual("log", "Printf").Call(append([]jen.Code{jen.Lit(s.table.Name + ": " + format)}, args...)...)
}

func ctxParam() jen.Code {
	return jen.Id("ctx").Qual("context", "Context")
}

func rowType() *jen.Statement {
	return jen.Map(jen.String()).Any()
}

func anyParams(names []string) []jen.Code {
	out := make([]jen.Code, len(names))
	for i, n := range names {
		out[i] = jen.Id(n).Any()
	}
	return out
}

func ids(names []string) []jen.Code {
	out := make([]jen.Code, len(names))
	for i, n := range names {
		out[i] = jen.Id(n)
	}
	return out
}

func placeholders(from, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("$%d", from+i)
	}
	return out
}

func (s *tableSpec) list() jen.Code {
	query := fmt.Sprintf("SELECT * FROM %s", s.table.Name)
	return jen.Commentf("%s returns every row of %s. An empty table yields an empty slice.", s.listName(), s.table.Name).Line().
		Func().Id(s.listName()).Params(ctxParam()).Index().Add(rowType()).Block(
		jen.List(jen.Id("rows"), jen.Err()).Op(":=").Id("queryRows").Call(jen.Id("ctx"), jen.Lit(query)),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			s.logf("list: %v", jen.Err()),
			jen.Return(jen.Index().Add(rowType()).Values()),
		),
		jen.Return(jen.Id("rows")),
	)
}

func (s *tableSpec) get() jen.Code {
	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = $1", s.table.Name, s.key)
	return jen.Commentf("%s returns the %s row whose %s equals key, or nil when there is none.", s.getName(), s.table.Name, s.key).Line().
		Func().Id(s.getName()).Params(ctxParam(), jen.Id("key").Any()).Add(rowType()).Block(
		jen.List(jen.Id("rows"), jen.Err()).Op(":=").Id("queryRows").Call(jen.Id("ctx"), jen.Lit(query), jen.Id("key")),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			s.logf("get: %v", jen.Err()),
			jen.Return(jen.Nil()),
		),
		jen.If(jen.Len(jen.Id("rows")).Op("==").Lit(0)).Block(
			jen.Return(jen.Nil()),
		),
		jen.Return(jen.Id("rows").Index(jen.Lit(0))),
	)
}

// txReturning renders a withConn call that runs query inside a transaction,
// stores the single returned row in row and commits.
func txReturning(query string, args []jen.Code) *jen.Statement {
	return jen.Err().Op(":=").Id("withConn").Call(
		jen.Id("ctx"),
		jen.Func().Params(jen.Id("conn").Op("*").Qual(pgxPkg, "Conn")).Error().Block(
			jen.List(jen.Id("tx"), jen.Err()).Op(":=").Id("conn").Dot("Begin").Call(jen.Id("ctx")),
			jen.If(jen.Err().Op("!=").Nil()).Block(
				jen.Return(jen.Err()),
			),
			jen.Defer().Id("tx").Dot("Rollback").Call(jen.Id("ctx")),
			jen.List(jen.Id("rows"), jen.Err()).Op(":=").Id("tx").Dot("Query").Call(
				append([]jen.Code{jen.Id("ctx"), jen.Lit(query)}, args...)...,
			),
			jen.If(jen.Err().Op("!=").Nil()).Block(
				jen.Return(jen.Err()),
			),
			jen.List(jen.Id("row"), jen.Err()).Op("=").Qual(pgxPkg, "CollectOneRow").Call(jen.Id("rows"), jen.Qual(pgxPkg, "RowToMap")),
			jen.If(jen.Err().Op("!=").Nil()).Block(
				jen.Return(jen.Err()),
			),
			jen.Return(jen.Id("tx").Dot("Commit").Call(jen.Id("ctx"))),
		),
	)
}

func (s *tableSpec) insertQuery() string {
	if len(s.insertCols) == 0 {
		return fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING *", s.table.Name)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		s.table.Name,
		strings.Join(s.insertCols, ", "),
		strings.Join(placeholders(1, len(s.insertCols)), ", "),
	)
}

func (s *tableSpec) insert() jen.Code {
	params := append([]jen.Code{ctxParam()}, anyParams(s.insertParams)...)
	return jen.Commentf("%s inserts one %s row and returns it. On failure the transaction", s.insertName(), s.table.Name).Line().
		Comment("is rolled back and nil is returned.").Line().
		Func().Id(s.insertName()).Params(params...).Add(rowType()).Block(
		jen.Var().Id("row").Add(rowType()),
		txReturning(s.insertQuery(), ids(s.insertParams)),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			s.logf("insert: %v", jen.Err()),
			jen.Return(jen.Nil()),
		),
		jen.Return(jen.Id("row")),
	)
}

func (s *tableSpec) updateQuery() string {
	sets := make([]string, len(s.updateCols))
	for i, c := range s.updateCols {
		sets[i] = fmt.Sprintf("%s = $%d", c, i+1)
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d RETURNING *",
		s.table.Name, strings.Join(sets, ", "), s.key, len(s.updateCols)+1)
}

func (s *tableSpec) update() jen.Code {
	params := append([]jen.Code{ctxParam(), jen.Id("key").Any()}, anyParams(s.updateParams)...)
	notFound := fmt.Sprintf("update: no row with %s = %%v", s.key)
	doc := jen.Commentf("%s updates the %s row whose %s equals key and returns it.", s.updateName(), s.table.Name, s.key).Line().
		Comment("It returns nil when no row matches or when the update fails.").Line()

	if len(s.updateCols) == 0 {
		return doc.Func().Id(s.updateName()).Params(params...).Add(rowType()).Block(
			jen.Comment("No updatable columns: re-read the row."),
			jen.Id("row").Op(":=").Id(s.getName()).Call(jen.Id("ctx"), jen.Id("key")),
			jen.If(jen.Id("row").Op("==").Nil()).Block(
				s.logf(notFound, jen.Id("key")),
			),
			jen.Return(jen.Id("row")),
		)
	}

	args := append(ids(s.updateParams), jen.Id("key"))
	return doc.Func().Id(s.updateName()).Params(params...).Add(rowType()).Block(
		jen.Var().Id("row").Add(rowType()),
		txReturning(s.updateQuery(), args),
		jen.If(jen.Qual("errors", "Is").Call(jen.Err(), jen.Qual(pgxPkg, "ErrNoRows"))).Block(
			s.logf(notFound, jen.Id("key")),
			jen.Return(jen.Nil()),
		),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			s.logf("update: %v", jen.Err()),
			jen.Return(jen.Nil()),
		),
		jen.Return(jen.Id("row")),
	)
}

func (s *tableSpec) del() jen.Code {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", s.table.Name, s.key)
	return jen.Commentf("%s deletes the %s row whose %s equals key. It reports false when", s.deleteName(), s.table.Name, s.key).Line().
		Comment("no row matched or the delete failed.").Line().
		Func().Id(s.deleteName()).Params(ctxParam(), jen.Id("key").Any()).Bool().Block(
		jen.Var().Id("affected").Int64(),
		jen.Err().Op(":=").Id("withConn").Call(
			jen.Id("ctx"),
			jen.Func().Params(jen.Id("conn").Op("*").Qual(pgxPkg, "Conn")).Error().Block(
				jen.List(jen.Id("tag"), jen.Err()).Op(":=").Id("conn").Dot("Exec").Call(jen.Id("ctx"), jen.Lit(query), jen.Id("key")),
				jen.If(jen.Err().Op("!=").Nil()).Block(
					jen.Return(jen.Err()),
				),
				jen.Id("affected").Op("=").Id("tag").Dot("RowsAffected").Call(),
				jen.Return(jen.Nil()),
			),
		),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			s.logf("delete: %v", jen.Err()),
			jen.Return(jen.False()),
		),
		jen.Return(jen.Id("affected").Op(">").Lit(0)),
	)
}
