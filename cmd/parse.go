package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/satyammistari/gysql/internal/reporter"
	"github.com/satyammistari/gysql/internal/schema"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "List the tables, columns and inferred keys found in a schema",
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	sql, tables, err := loadSchema(cmd)
	if err != nil {
		return err
	}

	if db, ok := schema.DatabaseName(sql); ok {
		reporter.Ok("database: " + db)
	} else {
		reporter.Warn("no CREATE DATABASE found, generated code will use " + cfg.Database.Fallback)
	}
	for _, stmt := range schema.LifecycleStatements(sql) {
		reporter.Info("  " + stmt)
	}

	if len(tables) == 0 {
		reporter.Warn("no CREATE TABLE statements found")
		return nil
	}
	reporter.Ok(fmt.Sprintf("%d tables (%s mode)", len(tables), cfg.ParserMode()))

	rows := make([][]string, 0, len(tables))
	for _, t := range tables {
		key := t.KeyColumn()
		if t.KeyFallback() {
			key += " (first column)"
		}
		rows = append(rows, []string{
			t.Name,
			strconv.Itoa(len(t.Columns)),
			key,
			strings.Join(t.InsertColumns(), ", "),
		})
	}
	reporter.Table([]string{"table", "columns", "key", "insert columns"}, rows)
	return nil
}
