package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/resumelens/internal/report"
)

var reportOut string

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE",
	Short: "Review a resume and save the report",
	Long:  "Extracts the resume text, asks the model for a full analysis, prints it and saves it as a plain-text report.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&reportOut, "output", "o", "", "report file (default: output.report_path from config)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, executor, err := setup(ctx, logger)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	sess, err := openDocument(args[0], logger)
	if err != nil {
		return err
	}
	printExtracted(cmd, sess)

	analysis, err := executor.AnalyzeResume(ctx, sess.ResumeText)
	if err != nil {
		return fmt.Errorf("analyze resume: %w", err)
	}
	sess.SetReport(analysis)
	fmt.Fprintln(cmd.OutOrStdout(), analysis)

	path := reportOut
	if path == "" {
		path = cfg.Output.ReportPath
	}
	if err := report.WriteReport(path, sess.Report); err != nil {
		return err
	}
	logger.Info("report saved", "path", path)
	return nil
}
