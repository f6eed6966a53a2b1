package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/satyammistari/gysql/internal/registry"
	"github.com/satyammistari/gysql/internal/reporter"
	"github.com/satyammistari/gysql/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the module every time the schema file changes",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addSelectionFlags(watchCmd)
	addOutputFlags(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("schema")
	if path == "" {
		return errors.New("--schema is required")
	}
	w, err := watch.New(path)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	reg := registry.New(nil)
	regenerate := func() {
		sql, tables, err := readSchema(path)
		if err != nil {
			reporter.Err(err.Error())
			return
		}
		// A re-parse clears the selection; the flags are applied again.
		reg.Replace(tables)
		if err := applySelection(cmd, reg); err != nil {
			reporter.Err(err.Error())
			return
		}
		if err := emit(cmd, sql, reg); err != nil {
			reporter.Err(err.Error())
		}
	}

	regenerate()
	reporter.Info("watching " + w.Path() + " (Ctrl+C to stop)")
	for {
		if err := w.Next(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		reporter.Info("change detected, regenerating")
		regenerate()
	}
}
