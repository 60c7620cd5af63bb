package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/resumelens/internal/model"
	"github.com/amishk599/resumelens/internal/report"
	"github.com/amishk599/resumelens/internal/session"
)

var jsonOut bool

var skillsCmd = &cobra.Command{
	Use:   "skills FILE",
	Short: "Extract categorized skills from a resume",
	Args:  cobra.ExactArgs(1),
	RunE:  runSkills,
}

func init() {
	skillsCmd.Flags().BoolVar(&jsonOut, "json", false, "print the skill profile as JSON")
	rootCmd.AddCommand(skillsCmd)
}

func runSkills(cmd *cobra.Command, args []string) error {
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

	res := executor.ExtractResumeSkillsResult(ctx, sess.ResumeText)
	sess.SetSkills(res.Value)
	printNote(cmd, report.Outcome(res.Status, res.Reason))

	if jsonOut {
		return writeJSON(cmd.OutOrStdout(), res.Value)
	}
	fmt.Fprint(cmd.OutOrStdout(), report.RenderSkills(res.Value))
	return nil
}

// requireExtractedSkills returns the session's skills, explaining first why
// extraction came back empty when it did.
func requireExtractedSkills(cmd *cobra.Command, sess *session.Session, res model.Result[model.SkillProfile]) (model.SkillProfile, error) {
	skills, err := sess.RequireSkills()
	if err == nil {
		return skills, nil
	}
	printNote(cmd, report.Outcome(res.Status, res.Reason))
	if res.Status == model.StatusFailed {
		return model.SkillProfile{}, fmt.Errorf("skill extraction failed (%s): %w", res.Reason, res.Err)
	}
	return model.SkillProfile{}, errors.New("no skills found in the resume")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printNote(cmd *cobra.Command, note string) {
	if note != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), note)
	}
}
