package generator

import (
	"fmt"
	"go/token"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// reserved are identifiers a generated parameter must not shadow: locals,
// preamble helpers, imported packages and the predeclared names we rely on.
var reserved = []string{
	"ctx", "conn", "tx", "rows", "row", "err", "tag", "affected", "fn", "pool", "query", "args", "key", "created",
	"connString", "quoteConnValue", "withConn", "queryRows", "ping",
	"context", "errors", "fmt", "log", "strings", "time", "pgx", "pgxpool",
	"any", "bool", "error", "int", "int64", "string", "len", "nil", "true", "false",
}

// sanitize reduces s to ASCII letters, digits and underscores. Accents are
// dropped first, so "año" becomes "ano" rather than "a_o".
func sanitize(s string) string {
	if folded, _, err := transform.String(foldAccents(), s); err == nil {
		s = folded
	}
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, s)
	clean = strings.Trim(clean, "_")
	if clean == "" {
		return "x"
	}
	if clean[0] >= '0' && clean[0] <= '9' {
		clean = "x" + clean
	}
	return clean
}

func foldAccents() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// exportedName turns a table name into the suffix of generated function names.
func exportedName(table string) string {
	name := inflect.Camelize(sanitize(table))
	if name == "" {
		return "Table"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// paramName turns a column name into a Go parameter name.
func paramName(column string) string {
	name := inflect.CamelizeDownFirst(sanitize(column))
	if name == "" {
		return "v"
	}
	return name
}

// nameSet hands out identifiers that were not handed out before.
type nameSet map[string]bool

func newNameSet(taken ...string) nameSet {
	s := nameSet{}
	for _, r := range taken {
		s[r] = true
	}
	return s
}

func (s nameSet) take(name string) string {
	candidate := name
	if token.IsKeyword(candidate) || s[candidate] {
		for i := 2; ; i++ {
			candidate = fmt.Sprintf("%s%d", name, i)
			if !s[candidate] {
				break
			}
		}
	}
	s[candidate] = true
	return candidate
}

// paramNames maps columns to unique parameter names that never shadow
// generated locals or Go keywords.
func paramNames(columns []string) []string {
	set := newNameSet(reserved...)
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = set.take(paramName(c))
	}
	return out
}
