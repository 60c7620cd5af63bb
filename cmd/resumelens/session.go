package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/resumelens/internal/tui"
)

var sessionCmd = &cobra.Command{
	Use:   "session FILE",
	Short: "Work with a resume interactively (TUI)",
	Long:  "Extracts the resume once, then offers analysis, skill extraction, suggestions and job matching from a menu.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSession,
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}

func runSession(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	// The TUI owns the terminal; log output during the alt-screen corrupts the display.
	silentLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg, executor, err := setup(context.Background(), silentLogger)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	sess, err := openDocument(args[0], logger)
	if err != nil {
		return err
	}

	return tui.Run(sess, executor, tui.Options{
		ReportPath: cfg.Output.ReportPath,
		Timeout:    cfg.AI.Timeout,
	})
}
