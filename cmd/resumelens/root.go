package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/amishk599/resumelens/internal/ai"
	"github.com/amishk599/resumelens/internal/config"
	"github.com/amishk599/resumelens/internal/extract"
	"github.com/amishk599/resumelens/internal/session"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:          "resumelens",
	Short:        "AI resume analyzer",
	Long:         "resumelens reads a PDF or DOCX resume and asks an LLM to review it, extract skills, suggest skills for a role and match it against a job description.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: RESUMELENS_CONFIG env var or ./resumelens.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > RESUMELENS_CONFIG env var > "./resumelens.yaml".
// The file is optional; without one, defaults and environment variables apply.
func loadConfig(path string) (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	if path == "" {
		if env := os.Getenv("RESUMELENS_CONFIG"); env != "" {
			path = env
		} else if _, err := os.Stat("resumelens.yaml"); err == nil {
			path = "resumelens.yaml"
		}
	}
	return config.Load(path)
}

// setupLogger logs to stderr so stdout carries only command output.
func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// setupProvider builds the one model client used for the whole process.
func setupProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ai.LLMProvider, error) {
	httpClient := &http.Client{Timeout: cfg.AI.Timeout}
	logger.Debug("configuring llm provider",
		"provider", cfg.AI.Provider,
		"model", cfg.AI.Model,
		"timeout", cfg.AI.Timeout.String(),
	)
	switch cfg.AI.Provider {
	case config.ProviderGemini:
		return ai.NewGeminiProvider(ctx, cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.MaxTokens, httpClient)
	default:
		return ai.NewOpenAIProvider(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.MaxTokens, httpClient), nil
	}
}

// setup loads config and builds the executor shared by every command.
func setup(ctx context.Context, logger *slog.Logger) (*config.Config, *ai.Executor, error) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	provider, err := setupProvider(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return cfg, ai.NewExecutor(provider, logger), nil
}

// openDocument extracts the resume at path into a new session.
func openDocument(path string, logger *slog.Logger) (*session.Session, error) {
	text, err := extract.ExtractFile(path)
	if err != nil {
		return nil, err
	}
	sess := session.New(filepath.Base(path), text)
	logger.Debug("document extracted", "session", sess.ID, "document", sess.Document, "chars", sess.CharCount())
	return sess, nil
}

func printExtracted(cmd *cobra.Command, sess *session.Session) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Extracted %d characters from %s\n", sess.CharCount(), sess.Document)
}
