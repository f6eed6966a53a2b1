package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/satyammistari/gysql/internal/generator"
	"github.com/satyammistari/gysql/internal/registry"
	"github.com/satyammistari/gysql/internal/reporter"
	"github.com/satyammistari/gysql/internal/schema"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the Go data-access module for the selected tables",
	RunE:  runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addSelectionFlags(generateCmd)
	addOutputFlags(generateCmd)
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("database", "d", "", "Database name (overrides CREATE DATABASE)")
	cmd.Flags().StringP("out", "o", "", "Write the module to this file instead of stdout")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	sql, tables, err := loadSchema(cmd)
	if err != nil {
		return err
	}
	reg := registry.New(tables)
	if err := applySelection(cmd, reg); err != nil {
		return err
	}
	return emit(cmd, sql, reg)
}

// emit generates the module for the selection in reg and writes it to --out
// or stdout.
func emit(cmd *cobra.Command, sql string, reg *registry.Registry) error {
	database, _ := cmd.Flags().GetString("database")
	if database == "" {
		database, _ = schema.DatabaseName(sql)
	}

	res, err := generator.New(cfg.Generator()).Generate(reg.SelectedTables(), database)
	if errors.Is(err, generator.ErrNothingSelected) {
		return fmt.Errorf("%w: pass --table <name> or --all", err)
	}
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	if err := writeModule(cmd.OutOrStdout(), out, res.Code); err != nil {
		return err
	}
	reporter.Ok(fmt.Sprintf("%d tables, %d functions, database %s", len(res.Tables), len(res.Functions), res.Database))
	if out != "" {
		reporter.Ok("wrote " + out)
	}
	return nil
}

func writeModule(stdout io.Writer, path, code string) error {
	if path == "" {
		_, err := io.WriteString(stdout, code)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		return fmt.Errorf("write module: %w", err)
	}
	return nil
}
