package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/resumelens/internal/ai"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the model credential with one request",
	Long:  "Loads config, then sends one trivial prompt to the configured model and reports the outcome.",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider, err := setupProvider(ctx, cfg, logger)
	if err != nil {
		return err
	}

	reply, err := provider.Complete(ctx, ai.CompletionRequest{
		Prompt:      "Reply with the single word: ok",
		Temperature: 0,
	})
	if err != nil {
		logger.Error("check failed", "provider", cfg.AI.Provider, "category", ai.Categorize(err), "error", err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s/%s reachable: %s\n", cfg.AI.Provider, cfg.AI.Model, strings.TrimSpace(reply))
	return nil
}
