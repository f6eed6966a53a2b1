package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/satyammistari/gysql/internal/config"
	"github.com/satyammistari/gysql/internal/registry"
	"github.com/satyammistari/gysql/internal/reporter"
	"github.com/satyammistari/gysql/internal/schema"
)

const version = "0.1.0"

var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "gysql",
	Short: "Turn CREATE TABLE scripts into a Go data-access module",
	Long: `gysql reads a SQL schema script, lets you pick tables and writes a Go
module with List/Get/Insert/Update/Delete functions for each of them, plus a
non-destructive integration driver that exercises them against PostgreSQL.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		noColor, _ := cmd.Flags().GetBool("no-color")
		reporter.NoColor = noColor

		// A missing .env is fine; variables already set win over it.
		_ = godotenv.Load()

		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded

		if cmd.Flags().Changed("mode") {
			mode, _ := cmd.Flags().GetString("mode")
			if _, ok := schema.ParseMode(mode); !ok {
				return fmt.Errorf("--mode %q: want legacy or bracket", mode)
			}
			cfg.Parser.Mode = mode
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		reporter.Err(err.Error())
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default "+config.DefaultPath+" if present)")
	pf.StringP("schema", "s", "", "Path to .sql schema file")
	pf.String("mode", "", "Parser mode: legacy or bracket (overrides config)")
	pf.Bool("no-color", false, "Disable colored output")
	rootCmd.Version = version
}

// loadSchema reads the --schema file and parses it with the configured mode.
func loadSchema(cmd *cobra.Command) (string, []schema.Table, error) {
	path, _ := cmd.Flags().GetString("schema")
	if path == "" {
		return "", nil, fmt.Errorf("--schema is required")
	}
	return readSchema(path)
}

func readSchema(path string) (string, []schema.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("schema file: %w", err)
	}
	sql := string(data)
	return sql, schema.Parse(sql, schema.WithMode(cfg.ParserMode())), nil
}

// addSelectionFlags registers the flags shared by commands that pick tables.
func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("table", "t", nil, "Table to include (repeatable or comma separated)")
	cmd.Flags().Bool("all", false, "Include every table")
}

// applySelection marks the tables chosen by --table/--all in reg.
func applySelection(cmd *cobra.Command, reg *registry.Registry) error {
	all, _ := cmd.Flags().GetBool("all")
	names, _ := cmd.Flags().GetStringSlice("table")
	var unknown []string
	if all {
		if reg.SelectedCount() != reg.Len() {
			reg.ToggleAll()
		}
		tables := reg.Tables()
		for _, n := range names {
			if schema.TableByName(tables, n) == nil {
				unknown = append(unknown, n)
			}
		}
	} else {
		unknown = reg.Select(names...)
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown table(s): %s", strings.Join(unknown, ", "))
	}
	return nil
}
