package schema

import (
	"bufio"
	"regexp"
	"strings"
)

// Mode selects how a CREATE TABLE body is cut into column segments.
type Mode int

const (
	// ModeLegacy splits the body on every comma, ignoring parentheses.
	ModeLegacy Mode = iota
	// ModeBracket splits only on commas outside parentheses and skips
	// table-level constraint segments.
	ModeBracket
)

func (m Mode) String() string {
	switch m {
	case ModeBracket:
		return "bracket"
	default:
		return "legacy"
	}
}

// ParseMode maps a config value to a Mode. Unknown values fall back to ModeLegacy.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy":
		return ModeLegacy, true
	case "bracket":
		return ModeBracket, true
	}
	return ModeLegacy, false
}

type options struct {
	mode Mode
}

// Option configures Parse.
type Option func(*options)

// WithMode selects the body splitting mode.
func WithMode(m Mode) Option {
	return func(o *options) { o.mode = m }
}

var (
	legacyTableRe = regexp.MustCompile("(?is)CREATE\\s+TABLE\\s+(?:IF\\s+NOT\\s+EXISTS\\s+)?[\"`]?(\\w+)[\"`]?\\s*\\((.*?)\\)\\s*;")
	tableHeaderRe = regexp.MustCompile("(?i)CREATE\\s+TABLE\\s+(?:IF\\s+NOT\\s+EXISTS\\s+)?[\"`]?(\\w+)[\"`]?\\s*\\(")
)

// Parse extracts the tables declared by CREATE TABLE statements, in the order
// they appear. Text without any complete statement yields no tables.
func Parse(sql string, opts ...Option) []Table {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	var tables []Table
	if o.mode == ModeBracket {
		tables = parseBracket(sql)
	} else {
		tables = parseLegacy(sql)
	}
	return dedupe(tables)
}

func parseLegacy(sql string) []Table {
	var tables []Table
	for _, m := range legacyTableRe.FindAllStringSubmatch(sql, -1) {
		t := Table{Name: m[1], Columns: []string{}}
		for _, part := range strings.Split(m[2], ",") {
			if col, ok := columnName(part); ok {
				t.Columns = append(t.Columns, col)
			}
		}
		tables = append(tables, t)
	}
	return tables
}

func parseBracket(sql string) []Table {
	content := stripComments(sql)
	var tables []Table
	pos := 0
	for pos < len(content) {
		loc := tableHeaderRe.FindStringSubmatchIndex(content[pos:])
		if loc == nil {
			break
		}
		name := content[pos+loc[2] : pos+loc[3]]
		open := pos + loc[1] - 1
		body, end, ok := extractParenBlock(content, open)
		if !ok || !terminated(content[end+1:]) {
			pos += loc[1]
			continue
		}
		t := Table{Name: name, Columns: []string{}}
		for _, part := range splitTopLevel(body, ',') {
			if isTableConstraint(part) {
				continue
			}
			if col, ok := columnName(part); ok {
				t.Columns = append(t.Columns, col)
			}
		}
		tables = append(tables, t)
		pos = end + 1
	}
	return tables
}

// columnName applies the per-segment rules shared by both modes.
func columnName(segment string) (string, bool) {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return "", false
	}
	if strings.Contains(strings.ToUpper(segment), "FOREIGN KEY") {
		return "", false
	}
	fields := strings.Fields(segment)
	return fields[0], true
}

var constraintPrefixes = []string{"PRIMARY KEY", "UNIQUE", "CHECK", "CONSTRAINT"}

func isTableConstraint(segment string) bool {
	upper := strings.ToUpper(strings.Join(strings.Fields(segment), " "))
	for _, p := range constraintPrefixes {
		if upper == p || strings.HasPrefix(upper, p+" ") || strings.HasPrefix(upper, p+"(") {
			return true
		}
	}
	return false
}

func stripComments(s string) string {
	var b strings.Builder
	sc := bufio.NewScanner(strings.NewReader(s))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if i := strings.Index(line, "--"); i >= 0 {
			line = line[:i]
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// extractParenBlock returns the text between s[open] == '(' and its matching
// ')' together with the index of that ')'.
func extractParenBlock(s string, open int) (string, int, bool) {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[open+1 : i], i, true
			}
		}
	}
	return "", 0, false
}

func terminated(rest string) bool {
	return strings.HasPrefix(strings.TrimSpace(rest), ";")
}

func splitTopLevel(s string, sep byte) []string {
	var parts []string
	var cur strings.Builder
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '(':
			depth++
			cur.WriteByte(c)
		case ')':
			depth--
			cur.WriteByte(c)
		case sep:
			if depth == 0 {
				parts = append(parts, cur.String())
				cur.Reset()
			} else {
				cur.WriteByte(c)
			}
		default:
			cur.WriteByte(c)
		}
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}

// dedupe keeps the first declaration of every table name.
func dedupe(tables []Table) []Table {
	seen := make(map[string]bool, len(tables))
	out := make([]Table, 0, len(tables))
	for _, t := range tables {
		if seen[t.Name] {
			continue
		}
		seen[t.Name] = true
		out = append(out, t)
	}
	return out
}
