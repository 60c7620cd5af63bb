package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/resumelens/internal/report"
)

var jdPath string

var matchCmd = &cobra.Command{
	Use:   "match FILE",
	Short: "Match a resume against a job description",
	Long:  "Extracts the resume's skills, then asks the model how well they fit the job description. Use --jd - to read it from stdin.",
	Args:  cobra.ExactArgs(1),
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&jdPath, "jd", "", "job description file, or - for stdin")
	matchCmd.Flags().BoolVar(&jsonOut, "json", false, "print the match result as JSON")
	_ = matchCmd.MarkFlagRequired("jd")
	rootCmd.AddCommand(matchCmd)
}

func readJobDescription(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read job description: %w", err)
	}
	return string(data), nil
}

func runMatch(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	jd, err := readJobDescription(jdPath, cmd.InOrStdin())
	if err != nil {
		return err
	}

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

	res := executor.MatchToJobDescriptionResult(ctx, skills, jd)
	sess.SetMatch(jd, res.Value)
	printNote(cmd, report.Outcome(res.Status, res.Reason))

	if jsonOut {
		return writeJSON(cmd.OutOrStdout(), res.Value)
	}
	fmt.Fprint(cmd.OutOrStdout(), report.RenderMatch(res.Value))
	return nil
}
