package schema

import (
	"bufio"
	"strings"
)

const (
	createDatabase = "CREATE DATABASE"
	useDatabase    = "USE "
)

// DatabaseName returns the name declared by the first CREATE DATABASE line.
func DatabaseName(sql string) (string, bool) {
	for _, line := range lines(sql) {
		if !hasPrefixFold(line, createDatabase) {
			continue
		}
		rest := line[len(createDatabase):]
		if i := strings.IndexByte(rest, ';'); i >= 0 {
			rest = rest[:i]
		}
		name := strings.TrimSpace(rest)
		return name, name != ""
	}
	return "", false
}

// LifecycleStatements returns every line that creates or switches databases.
func LifecycleStatements(sql string) []string {
	lifecycle, _ := SplitLifecycle(sql)
	return lifecycle
}

// SplitLifecycle separates database-lifecycle lines (CREATE DATABASE, USE)
// from the remaining script. The match is line-granular and only the leading
// keyword is compared case-insensitively.
func SplitLifecycle(sql string) ([]string, string) {
	var lifecycle []string
	var rest strings.Builder
	for _, line := range lines(sql) {
		if hasPrefixFold(line, createDatabase) || hasPrefixFold(line, useDatabase) {
			lifecycle = append(lifecycle, line)
			continue
		}
		rest.WriteString(line)
		rest.WriteByte('\n')
	}
	return lifecycle, rest.String()
}

// lines returns the trimmed lines of s.
func lines(s string) []string {
	var out []string
	sc := bufio.NewScanner(strings.NewReader(s))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		out = append(out, strings.TrimSpace(sc.Text()))
	}
	return out
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
