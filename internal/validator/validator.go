// Package validator reports schema problems that make the generated module
// behave differently from what the DDL author probably meant.
package validator

import (
	"fmt"
	"strings"

	"github.com/satyammistari/gysql/internal/schema"
)

// Severity of an Issue.
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Issue is one finding for one table.
type Issue struct {
	Table    string
	Severity Severity
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Table, i.Message)
}

// constraintWords are leading tokens of table-level constraints. Legacy
// parsing keeps them as column names.
var constraintWords = []string{"PRIMARY", "UNIQUE", "CHECK", "CONSTRAINT"}

// ValidateTable checks one table.
func ValidateTable(t schema.Table) []Issue {
	var issues []Issue
	add := func(sev Severity, format string, args ...any) {
		issues = append(issues, Issue{Table: t.Name, Severity: sev, Message: fmt.Sprintf(format, args...)})
	}

	if len(t.Columns) == 0 {
		add(Error, "no columns, no functions will be generated")
		return issues
	}

	seen := make(map[string]bool, len(t.Columns))
	for _, col := range t.Columns {
		key := strings.ToLower(col)
		if seen[key] {
			add(Warning, "duplicate column %q", col)
		}
		seen[key] = true
		for _, w := range constraintWords {
			if strings.EqualFold(col, w) {
				add(Warning, "%q looks like a table constraint parsed as a column (try --mode bracket)", col)
			}
		}
	}

	if t.KeyFallback() {
		add(Warning, "no column contains \"id\", using %q as key", t.KeyColumn())
	}
	if len(t.InsertColumns()) == 0 {
		add(Warning, "no insertable columns, Insert uses DEFAULT VALUES")
	}
	return issues
}

// Check runs ValidateTable on each table and returns all issues in table order.
func Check(tables []schema.Table) []Issue {
	var issues []Issue
	for _, t := range tables {
		issues = append(issues, ValidateTable(t)...)
	}
	return issues
}

// HasErrors reports whether any issue has Error severity.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == Error {
			return true
		}
	}
	return false
}
