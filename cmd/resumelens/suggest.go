package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/resumelens/internal/ai"
	"github.com/amishk599/resumelens/internal/report"
)

var targetRole string

var suggestCmd = &cobra.Command{
	Use:   "suggest FILE",
	Short: "Suggest skills to add for a target role",
	Long:  "Extracts the resume's skills, then asks the model which skills to add for the target role.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggest,
}

func init() {
	suggestCmd.Flags().StringVar(&targetRole, "role", ai.DefaultTargetRole, "target role")
	suggestCmd.Flags().BoolVar(&jsonOut, "json", false, "print the suggestions as JSON")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, executor, err := setup(ctx, logger)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	sess, err := openDocument(args[0], logger)
	if err != nil {
		return err
	}
	printExtracted(cmd, sess)

	extracted := executor.ExtractResumeSkillsResult(ctx, sess.ResumeText)
	sess.SetSkills(extracted.Value)
	skills, err := requireExtractedSkills(cmd, sess, extracted)
	if err != nil {
		return err
	}

	res := executor.SuggestMissingSkillsResult(ctx, skills, targetRole)
	sess.SetSuggestions(targetRole, res.Value)
	printNote(cmd, report.Outcome(res.Status, res.Reason))

	if jsonOut {
		return writeJSON(cmd.OutOrStdout(), sess.Suggestions)
	}
	fmt.Fprint(cmd.OutOrStdout(), report.RenderSuggestions(sess.TargetRole, sess.Suggestions))
	return nil
}
