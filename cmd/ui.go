package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satyammistari/gysql/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the interactive terminal shell",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("schema")
		database, _ := cmd.Flags().GetString("database")
		return tui.Run(tui.Config{
			SchemaPath: path,
			Database:   database,
			Mode:       cfg.ParserMode(),
			StageDelay: cfg.StageDelay,
			Generator:  cfg.Generator(),
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "gysql v"+version)
	},
}

func init() {
	rootCmd.AddCommand(uiCmd, versionCmd)
	uiCmd.Flags().StringP("database", "d", "", "Database name (overrides CREATE DATABASE)")
}
