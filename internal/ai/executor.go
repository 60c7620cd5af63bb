package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/xeipuuv/gojsonschema"

	"github.com/amishk599/resumelens/internal/model"
)

const (
	// MinResumeChars is the shortest trimmed resume text worth a skill extraction call.
	MinResumeChars = 50

	// DefaultTargetRole is used when a suggestion request names no role.
	DefaultTargetRole = "AI/ML Engineer"

	// rawLogLimit bounds how much of a bad model reply is written to the log.
	rawLogLimit = 200
)

// Skip reasons reported in Result.Reason.
const (
	SkipShortText     = "resume_text_too_short"
	SkipNoSkills      = "no_current_skills"
	SkipNoResumeSkill = "no_resume_skills"
	SkipNoJobDesc     = "no_job_description"
)

// ErrEmptyResume is returned by AnalyzeResume for blank input.
var ErrEmptyResume = errors.New("resume text is empty")

// Executor fills prompt templates, sends them to the model and turns the
// reply into typed results. It performs one call per operation, never retries
// and never caches.
type Executor struct {
	provider LLMProvider
	logger   *slog.Logger
}

// NewExecutor creates an executor. The provider is built once per process by
// the caller and injected here.
func NewExecutor(provider LLMProvider, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Executor{
		provider: provider,
		logger:   logger,
	}
}

// Run renders template id with slots and returns the model's raw text.
func (e *Executor) Run(ctx context.Context, id TemplateID, slots map[string]string) (string, error) {
	t, err := Lookup(id)
	if err != nil {
		return "", err
	}
	prompt, err := t.Render(slots)
	if err != nil {
		return "", err
	}

	e.logger.Debug("sending prompt", "template", id, "prompt_chars", len(prompt))
	raw, err := e.provider.Complete(ctx, CompletionRequest{
		System:      t.System,
		Prompt:      prompt,
		Temperature: t.Temperature,
		JSON:        t.Format == FormatJSONObject,
	})
	if err != nil {
		return "", fmt.Errorf("llm complete %s: %w", id, err)
	}
	e.logger.Debug("received completion", "template", id, "response_chars", len(raw))
	return raw, nil
}

// AnalyzeResume returns the markdown analysis report for resumeText.
func (e *Executor) AnalyzeResume(ctx context.Context, resumeText string) (string, error) {
	if strings.TrimSpace(resumeText) == "" {
		return "", ErrEmptyResume
	}
	report, err := e.Run(ctx, FullAnalysis, map[string]string{SlotResumeText: resumeText})
	if err != nil {
		e.logger.Error("resume analysis failed", "category", Categorize(err), "error", err)
		return "", err
	}
	return report, nil
}

// ExtractResumeSkills returns the categorized skills in resumeText, or the
// empty profile when the text is too short or the call fails.
func (e *Executor) ExtractResumeSkills(ctx context.Context, resumeText string) model.SkillProfile {
	return e.ExtractResumeSkillsResult(ctx, resumeText).Value
}

// ExtractResumeSkillsResult is ExtractResumeSkills with the outcome attached.
func (e *Executor) ExtractResumeSkillsResult(ctx context.Context, resumeText string) model.Result[model.SkillProfile] {
	if utf8.RuneCountInString(strings.TrimSpace(resumeText)) < MinResumeChars {
		return model.Skipped(model.EmptySkillProfile(), SkipShortText)
	}

	var profile model.SkillProfile
	if err := e.query(ctx, ExtractSkills, map[string]string{SlotResumeText: resumeText}, skillProfileSchema, &profile); err != nil {
		return model.Failed(model.EmptySkillProfile(), Categorize(err), err)
	}
	profile = profile.Normalized()
	return model.OK(profile, profile.IsEmpty())
}

// SuggestMissingSkills recommends skills to add for targetRole. It returns an
// empty list without calling the model when current holds no skills.
func (e *Executor) SuggestMissingSkills(ctx context.Context, current model.SkillProfile, targetRole string) []model.SkillSuggestion {
	return e.SuggestMissingSkillsResult(ctx, current, targetRole).Value
}

// SuggestMissingSkillsResult is SuggestMissingSkills with the outcome attached.
func (e *Executor) SuggestMissingSkillsResult(ctx context.Context, current model.SkillProfile, targetRole string) model.Result[[]model.SkillSuggestion] {
	if current.IsEmpty() {
		return model.Skipped(model.EmptySuggestions(), SkipNoSkills)
	}
	if strings.TrimSpace(targetRole) == "" {
		targetRole = DefaultTargetRole
	}

	skillsJSON, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return model.Failed(model.EmptySuggestions(), CategorySchemaMismatch, err)
	}

	var suggestions []model.SkillSuggestion
	slots := map[string]string{
		SlotCurrentSkills: string(skillsJSON),
		SlotTargetRole:    targetRole,
	}
	if err := e.query(ctx, SuggestSkills, slots, skillSuggestionsSchema, &suggestions); err != nil {
		return model.Failed(model.EmptySuggestions(), Categorize(err), err)
	}
	if suggestions == nil {
		suggestions = model.EmptySuggestions()
	}
	return model.OK(suggestions, len(suggestions) == 0)
}

// MatchToJobDescription compares resumeSkills with jobDescription. It returns
// the empty result without calling the model when either input is empty.
func (e *Executor) MatchToJobDescription(ctx context.Context, resumeSkills model.SkillProfile, jobDescription string) model.JobMatchResult {
	return e.MatchToJobDescriptionResult(ctx, resumeSkills, jobDescription).Value
}

// MatchToJobDescriptionResult is MatchToJobDescription with the outcome attached.
func (e *Executor) MatchToJobDescriptionResult(ctx context.Context, resumeSkills model.SkillProfile, jobDescription string) model.Result[model.JobMatchResult] {
	if resumeSkills.IsEmpty() {
		return model.Skipped(model.EmptyJobMatch(), SkipNoResumeSkill)
	}
	if strings.TrimSpace(jobDescription) == "" {
		return model.Skipped(model.EmptyJobMatch(), SkipNoJobDesc)
	}

	skillsJSON, err := json.MarshalIndent(resumeSkills, "", "  ")
	if err != nil {
		return model.Failed(model.EmptyJobMatch(), CategorySchemaMismatch, err)
	}

	var match model.JobMatchResult
	slots := map[string]string{
		SlotResumeSkills:   string(skillsJSON),
		SlotJobDescription: jobDescription,
	}
	if err := e.query(ctx, MatchJob, slots, jobMatchSchema, &match); err != nil {
		return model.Failed(model.EmptyJobMatch(), Categorize(err), err)
	}
	match = match.Normalized()
	return model.OK(match, match.IsEmpty())
}

// query runs one structured call and decodes the reply into out. Every
// failure is logged here; callers only pick the default.
func (e *Executor) query(ctx context.Context, id TemplateID, slots map[string]string, schema *gojsonschema.Schema, out any) error {
	raw, err := e.Run(ctx, id, slots)
	if err != nil {
		e.logger.Error("llm call failed",
			"template", id,
			"category", Categorize(err),
			"error", err,
		)
		return err
	}

	if err := decodeStrict(raw, schema, out); err != nil {
		e.logger.Error("invalid llm response",
			"template", id,
			"category", Categorize(err),
			"error", err,
			"raw", truncate(raw, rawLogLimit),
		)
		return err
	}
	return nil
}
