package generator

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"
)

// connFormat is the key/value connection string the generated connString
// builds. Every value is passed through quoteConnValue first.
const connFormat = "host=%s port=%d user=%s password=%s dbname=%s"

// connEscapes are the replacer pairs applied inside a quoted value.
var connEscapes = []string{`\`, `\\`, `'`, `\'`}

// QuoteConnValue single-quotes v for a key/value connection string, so empty
// values and values with spaces survive parsing.
func QuoteConnValue(v string) string {
	return "'" + strings.NewReplacer(connEscapes...).Replace(v) + "'"
}

// ConnString is the connection string the generated module builds from c and
// database before ConnConfig is changed.
func (c Connection) ConnString(database string) string {
	return fmt.Sprintf(connFormat,
		QuoteConnValue(c.Host), c.Port, QuoteConnValue(c.User), QuoteConnValue(c.Password), QuoteConnValue(database))
}

// preamble returns the declarations shared by every table section: the
// connection parameters and the two connection helpers.
func preamble(c Connection, database string) []jen.Code {
	return []jen.Code{
		jen.Comment("ConnParams describes how to reach the database.").Line().
			Type().Id("ConnParams").Struct(
			jen.Id("Host").String(),
			jen.Id("Port").Int(),
			jen.Id("User").String(),
			jen.Id("Password").String(),
			jen.Id("Database").String(),
		),

		jen.Comment("ConnConfig is read by every generated function. Adjust it before the first call.").Line().
			Var().Id("ConnConfig").Op("=").Id("ConnParams").Values(jen.Dict{
			jen.Id("Host"):     jen.Lit(c.Host),
			jen.Id("Port"):     jen.Lit(c.Port),
			jen.Id("User"):     jen.Lit(c.User),
			jen.Id("Password"): jen.Lit(c.Password),
			jen.Id("Database"): jen.Lit(database),
		}),

		jen.Func().Id("connString").Params().String().Block(
			jen.Return(jen.Qual("fmt", "Sprintf").Call(
				jen.Lit(connFormat),
				jen.Id("quoteConnValue").Call(jen.Id("ConnConfig").Dot("Host")),
				jen.Id("ConnConfig").Dot("Port"),
				jen.Id("quoteConnValue").Call(jen.Id("ConnConfig").Dot("User")),
				jen.Id("quoteConnValue").Call(jen.Id("ConnConfig").Dot("Password")),
				jen.Id("quoteConnValue").Call(jen.Id("ConnConfig").Dot("Database")),
			)),
		),

		jen.Func().Id("quoteConnValue").Params(jen.Id("v").String()).String().Block(
			jen.Return(jen.Lit("'").Op("+").Qual("strings", "NewReplacer").CallFunc(func(g *jen.Group) {
				for _, e := range connEscapes {
					g.Lit(e)
				}
			}).Dot("Replace").Call(jen.Id("v")).Op("+").Lit("'")),
		),

		jen.Comment("withConn opens a dedicated connection for cursor-style work and closes it").Line().
			Comment("on every exit path. Each call opens its own connection.").Line().
			Func().Id("withConn").Params(
			jen.Id("ctx").Qual("context", "Context"),
			jen.Id("fn").Func().Params(jen.Id("conn").Op("*").Qual(pgxPkg, "Conn")).Error(),
		).Error().Block(
			jen.List(jen.Id("conn"), jen.Err()).Op(":=").Qual(pgxPkg, "Connect").Call(jen.Id("ctx"), jen.Id("connString").Call()),
			jen.If(jen.Err().Op("!=").Nil()).Block(
				jen.Return(jen.Err()),
			),
			jen.Defer().Id("conn").Dot("Close").Call(jen.Id("ctx")),
			jen.Return(jen.Id("fn").Call(jen.Id("conn"))),
		),

		jen.Comment("queryRows runs a read query on a short-lived pool and collects every row.").Line().
			Comment("The pool is closed on every exit path.").Line().
			Func().Id("queryRows").Params(
			jen.Id("ctx").Qual("context", "Context"),
			jen.Id("query").String(),
			jen.Id("args").Op("...").Any(),
		).Params(jen.Index().Map(jen.String()).Any(), jen.Error()).Block(
			jen.List(jen.Id("pool"), jen.Err()).Op(":=").Qual(pgxpoolPkg, "New").Call(jen.Id("ctx"), jen.Id("connString").Call()),
			jen.If(jen.Err().Op("!=").Nil()).Block(
				jen.Return(jen.Nil(), jen.Err()),
			),
			jen.Defer().Id("pool").Dot("Close").Call(),
			jen.List(jen.Id("rows"), jen.Err()).Op(":=").Id("pool").Dot("Query").Call(jen.Id("ctx"), jen.Id("query"), jen.Id("args").Op("...")),
			jen.If(jen.Err().Op("!=").Nil()).Block(
				jen.Return(jen.Nil(), jen.Err()),
			),
			jen.Return(jen.Qual(pgxPkg, "CollectRows").Call(jen.Id("rows"), jen.Qual(pgxPkg, "RowToMap"))),
		),

		jen.Func().Id("ping").Params(jen.Id("ctx").Qual("context", "Context")).Error().Block(
			jen.Return(jen.Id("withConn").Call(
				jen.Id("ctx"),
				jen.Func().Params(jen.Id("conn").Op("*").Qual(pgxPkg, "Conn")).Error().Block(
					jen.Return(jen.Id("conn").Dot("Ping").Call(jen.Id("ctx"))),
				),
			)),
		),
	}
}
