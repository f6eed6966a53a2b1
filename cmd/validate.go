package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satyammistari/gysql/internal/inserter"
	"github.com/satyammistari/gysql/internal/registry"
	"github.com/satyammistari/gysql/internal/reporter"
	"github.com/satyammistari/gysql/internal/schema"
	"github.com/satyammistari/gysql/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the schema and try one sample row per table in a rolled-back sandbox",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	addSelectionFlags(validateCmd)
	validateCmd.Flags().String("sandbox", "", "Sandbox connection: sqlite::memory: (default), sqlite:path or postgres://...")
	validateCmd.Flags().Bool("no-sandbox", false, "Only run the static schema checks")
}

func runValidate(cmd *cobra.Command, args []string) error {
	sql, tables, err := loadSchema(cmd)
	if err != nil {
		return err
	}
	reg := registry.New(tables)
	if err := applySelection(cmd, reg); err != nil {
		return err
	}
	if reg.SelectedCount() == 0 {
		reg.ToggleAll()
	}
	selected := reg.SelectedTables()
	if len(selected) == 0 {
		reporter.Warn("no CREATE TABLE statements found")
		return nil
	}

	issues := validator.Check(selected)
	for _, is := range issues {
		if is.Severity == validator.Error {
			reporter.Err(is.String())
		} else {
			reporter.Warn(is.String())
		}
	}
	allPassed := !validator.HasErrors(issues)
	if len(issues) == 0 {
		reporter.Ok(fmt.Sprintf("%d tables: no schema issues", len(selected)))
	}

	if skip, _ := cmd.Flags().GetBool("no-sandbox"); !skip {
		conn, _ := cmd.Flags().GetString("sandbox")
		ok, err := runSandbox(cmd, conn, sql, selected)
		if err != nil {
			return err
		}
		allPassed = allPassed && ok
	}

	reporter.Info("")
	if !allPassed {
		return fmt.Errorf("validation failed")
	}
	reporter.Ok("All tables passed validation.")
	return nil
}

func runSandbox(cmd *cobra.Command, conn, sql string, tables []schema.Table) (bool, error) {
	sb, err := inserter.Open(cmd.Context(), conn)
	if err != nil {
		return false, err
	}
	defer sb.Close()

	results, err := sb.Check(cmd.Context(), sql, tables)
	if err != nil {
		reporter.Err(err.Error())
		return false, nil
	}
	ok := true
	for _, r := range results {
		if r.Err != nil {
			reporter.Err(fmt.Sprintf("%s: %v", r.Table, r.Err))
			ok = false
			continue
		}
		visible, err := sb.Count(cmd.Context(), r.Table)
		if err != nil {
			reporter.Err(fmt.Sprintf("%s: count rows: %v", r.Table, err))
			ok = false
			continue
		}
		reporter.Ok(fmt.Sprintf("%s: %d sample row(s) accepted by %s, %d visible", r.Table, r.Rows, sb.Driver(), visible))
	}
	return ok, nil
}
