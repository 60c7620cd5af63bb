package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amishk599/resumelens/internal/model"
)

// mockProvider is a stub LLMProvider that records every request.
type mockProvider struct {
	response string
	err      error
	requests []CompletionRequest
}

func (m *mockProvider) Complete(_ context.Context, req CompletionRequest) (string, error) {
	m.requests = append(m.requests, req)
	return m.response, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestExecutor(p LLMProvider) *Executor {
	return NewExecutor(p, discardLogger())
}

func sampleProfile() model.SkillProfile {
	return model.SkillProfile{
		TechnicalSkills: map[string][]string{
			"programming_languages": {"Python", "Go"},
			"devops":                {"Docker"},
		},
		SoftSkills:      []string{"Leadership"},
		DomainKnowledge: []string{"Fintech"},
		Certifications:  []string{},
	}
}

const longResume = "Jane Doe. Senior engineer with eight years of Python, Go, Docker and AWS experience."

func TestExtractResumeSkills_BlankInputSkipsCall(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t  \n"} {
		p := &mockProvider{}
		res := newTestExecutor(p).ExtractResumeSkillsResult(context.Background(), text)

		assert.Equal(t, model.EmptySkillProfile(), res.Value)
		assert.Equal(t, model.StatusSkipped, res.Status)
		assert.Equal(t, SkipShortText, res.Reason)
		assert.Empty(t, p.requests, "provider called for %q", text)
	}
}

func TestExtractResumeSkills_ThresholdBoundary(t *testing.T) {
	valid, err := json.Marshal(sampleProfile())
	require.NoError(t, err)

	fortyNine := "  " + strings.Repeat("a", 49) + "  "
	p := &mockProvider{response: string(valid)}
	got := newTestExecutor(p).ExtractResumeSkills(context.Background(), fortyNine)
	assert.Equal(t, model.EmptySkillProfile(), got)
	assert.Empty(t, p.requests, "49 trimmed characters must not call the model")

	fifty := "  " + strings.Repeat("a", 50) + "  "
	p = &mockProvider{response: string(valid)}
	got = newTestExecutor(p).ExtractResumeSkills(context.Background(), fifty)
	assert.Equal(t, sampleProfile(), got)
	assert.Len(t, p.requests, 1, "50 trimmed characters must call the model")
}

func TestExtractResumeSkills_ThresholdCountsCharacters(t *testing.T) {
	valid, err := json.Marshal(sampleProfile())
	require.NoError(t, err)

	fortyNine := " " + strings.Repeat("é", 49) + " "
	require.Greater(t, len(fortyNine), 2*MinResumeChars)
	p := &mockProvider{response: string(valid)}
	res := newTestExecutor(p).ExtractResumeSkillsResult(context.Background(), fortyNine)
	assert.Equal(t, model.StatusSkipped, res.Status)
	assert.Empty(t, p.requests, "49 multibyte characters must not call the model")

	fifty := " " + strings.Repeat("日", 50) + " "
	p = &mockProvider{response: string(valid)}
	res = newTestExecutor(p).ExtractResumeSkillsResult(context.Background(), fifty)
	assert.Equal(t, model.StatusOK, res.Status)
	assert.Len(t, p.requests, 1, "50 multibyte characters must call the model")
}

func TestExtractResumeSkills_RoundTrip(t *testing.T) {
	want := sampleProfile()
	raw, err := json.Marshal(want)
	require.NoError(t, err)

	p := &mockProvider{response: string(raw)}
	res := newTestExecutor(p).ExtractResumeSkillsResult(context.Background(), longResume)

	require.Equal(t, model.StatusOK, res.Status)
	assert.Equal(t, want, res.Value)

	require.Len(t, p.requests, 1)
	req := p.requests[0]
	assert.True(t, req.JSON)
	assert.Equal(t, 0.1, req.Temperature)
	assert.Contains(t, req.Prompt, longResume)
}

func TestExtractResumeSkills_StripsCodeFence(t *testing.T) {
	raw, err := json.Marshal(sampleProfile())
	require.NoError(t, err)

	p := &mockProvider{response: "```json\n" + string(raw) + "\n```"}
	got := newTestExecutor(p).ExtractResumeSkills(context.Background(), longResume)
	assert.Equal(t, sampleProfile(), got)
}

func TestExtractResumeSkills_NotJSONLogsRawPrefix(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	p := &mockProvider{response: "not json"}

	res := NewExecutor(p, logger).ExtractResumeSkillsResult(context.Background(), longResume)

	assert.Equal(t, model.EmptySkillProfile(), res.Value)
	assert.Equal(t, model.StatusFailed, res.Status)
	assert.Equal(t, CategoryInvalidJSON, res.Reason)
	assert.Contains(t, logs.String(), "level=ERROR")
	assert.Contains(t, logs.String(), `raw="not json"`)
	assert.Contains(t, logs.String(), "category=invalid_json")
}

func TestExtractResumeSkills_LogTruncatesLongRaw(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	p := &mockProvider{response: "Sure! " + strings.Repeat("x", 500)}

	NewExecutor(p, logger).ExtractResumeSkills(context.Background(), longResume)

	out := logs.String()
	assert.Contains(t, out, "Sure! ")
	assert.NotContains(t, out, strings.Repeat("x", 300))
}

func TestExtractResumeSkills_SchemaMismatchDefaults(t *testing.T) {
	p := &mockProvider{response: `{"technical_skills": ["Go"], "soft_skills": []}`}
	res := newTestExecutor(p).ExtractResumeSkillsResult(context.Background(), longResume)

	assert.Equal(t, model.EmptySkillProfile(), res.Value)
	assert.Equal(t, CategorySchemaMismatch, res.Reason)
}

func TestExtractResumeSkills_EmptyButValidIsEmptyStatus(t *testing.T) {
	raw, err := json.Marshal(model.EmptySkillProfile())
	require.NoError(t, err)

	p := &mockProvider{response: string(raw)}
	res := newTestExecutor(p).ExtractResumeSkillsResult(context.Background(), longResume)

	assert.Equal(t, model.StatusEmpty, res.Status)
	assert.True(t, res.Succeeded())
	assert.Equal(t, model.EmptySkillProfile(), res.Value)
}

func TestExtractResumeSkills_ProviderErrorDefaults(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	p := &mockProvider{err: &model.HTTPError{StatusCode: 401, Err: errors.New("invalid api key")}}

	res := NewExecutor(p, logger).ExtractResumeSkillsResult(context.Background(), longResume)

	assert.Equal(t, model.EmptySkillProfile(), res.Value)
	assert.Equal(t, model.StatusFailed, res.Status)
	assert.Equal(t, CategoryAuth, res.Reason)
	assert.Error(t, res.Err)
	assert.Contains(t, logs.String(), "category=auth")
}

func TestSuggestMissingSkills_EmptySkillsSkipsCall(t *testing.T) {
	p := &mockProvider{}
	got := newTestExecutor(p).SuggestMissingSkills(context.Background(), model.EmptySkillProfile(), "Data Scientist")

	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, p.requests)

	got = newTestExecutor(p).SuggestMissingSkills(context.Background(), model.SkillProfile{}, "Data Scientist")
	assert.NotNil(t, got)
	assert.Empty(t, p.requests)
}

func TestSuggestMissingSkills_RoundTrip(t *testing.T) {
	want := []model.SkillSuggestion{
		{Skill: "Kubernetes", Priority: model.PriorityHigh, Reason: "Production ML serving"},
		{Skill: "MLflow", Priority: model.PriorityMedium, Reason: "Experiment tracking"},
		{Skill: "Rust", Priority: model.PriorityLow, Reason: "Performance work"},
	}
	raw, err := json.Marshal(want)
	require.NoError(t, err)

	p := &mockProvider{response: string(raw)}
	res := newTestExecutor(p).SuggestMissingSkillsResult(context.Background(), sampleProfile(), "Data Scientist")

	assert.Equal(t, model.StatusOK, res.Status)
	assert.Equal(t, want, res.Value)

	require.Len(t, p.requests, 1)
	assert.False(t, p.requests[0].JSON, "json_object mode cannot return an array")
	assert.Contains(t, p.requests[0].Prompt, "Data Scientist")
	assert.Contains(t, p.requests[0].Prompt, `"Python"`)
}

func TestSuggestMissingSkills_DefaultRole(t *testing.T) {
	p := &mockProvider{response: "[]"}
	res := newTestExecutor(p).SuggestMissingSkillsResult(context.Background(), sampleProfile(), "  ")

	assert.Equal(t, model.StatusEmpty, res.Status)
	assert.NotNil(t, res.Value)
	require.Len(t, p.requests, 1)
	assert.Contains(t, p.requests[0].Prompt, DefaultTargetRole)
}

func TestSuggestMissingSkills_AcceptsAnyLength(t *testing.T) {
	p := &mockProvider{response: `[{"skill":"SQL","priority":"High","reason":"everywhere"}]`}
	got := newTestExecutor(p).SuggestMissingSkills(context.Background(), sampleProfile(), "Data Analyst")
	assert.Len(t, got, 1)
}

func TestSuggestMissingSkills_MalformedDefaults(t *testing.T) {
	p := &mockProvider{response: `[{"skill": "SQL", "priority": "High"`}
	got := newTestExecutor(p).SuggestMissingSkills(context.Background(), sampleProfile(), "Data Analyst")
	assert.Equal(t, model.EmptySuggestions(), got)
}

func TestMatchToJobDescription_BlankJobSkipsCall(t *testing.T) {
	for _, jd := range []string{"", "   \n"} {
		p := &mockProvider{}
		res := newTestExecutor(p).MatchToJobDescriptionResult(context.Background(), sampleProfile(), jd)

		assert.Equal(t, model.EmptyJobMatch(), res.Value)
		assert.Equal(t, SkipNoJobDesc, res.Reason)
		assert.Empty(t, p.requests)
	}
}

func TestMatchToJobDescription_EmptySkillsSkipsCall(t *testing.T) {
	p := &mockProvider{}
	res := newTestExecutor(p).MatchToJobDescriptionResult(context.Background(), model.EmptySkillProfile(), "Senior Go engineer")

	assert.Equal(t, model.EmptyJobMatch(), res.Value)
	assert.Equal(t, SkipNoResumeSkill, res.Reason)
	assert.Empty(t, p.requests)
}

func TestMatchToJobDescription_ReturnsModelStructureUnchanged(t *testing.T) {
	raw := `{"match_percentage": 72, "matching_skills": ["Python"], "missing_critical_skills": ["Kubernetes"], "nice_to_have_missing": [], "recommendations": ["Learn Kubernetes basics"]}`
	p := &mockProvider{response: raw}

	got := newTestExecutor(p).MatchToJobDescription(context.Background(), sampleProfile(), "Python + Kubernetes platform role")

	want := model.JobMatchResult{
		MatchPercentage:       72,
		MatchingSkills:        []string{"Python"},
		MissingCriticalSkills: []string{"Kubernetes"},
		NiceToHaveMissing:     []string{},
		Recommendations:       []string{"Learn Kubernetes basics"},
	}
	assert.Equal(t, want, got)
	require.Len(t, p.requests, 1)
	assert.True(t, p.requests[0].JSON)
	assert.Contains(t, p.requests[0].Prompt, "Python + Kubernetes platform role")
}

func TestMatchToJobDescription_MalformedDefaults(t *testing.T) {
	for _, raw := range []string{"not json", `{"match_percentage": "high"}`, ""} {
		p := &mockProvider{response: raw}
		got := newTestExecutor(p).MatchToJobDescription(context.Background(), sampleProfile(), "Go role")
		assert.Equal(t, model.EmptyJobMatch(), got, "raw %q", raw)
	}
}

func TestMatchToJobDescription_TimeoutDefaults(t *testing.T) {
	p := &mockProvider{err: context.DeadlineExceeded}
	res := newTestExecutor(p).MatchToJobDescriptionResult(context.Background(), sampleProfile(), "Go role")

	assert.Equal(t, model.EmptyJobMatch(), res.Value)
	assert.Equal(t, CategoryTimeout, res.Reason)
}

func TestAnalyzeResume(t *testing.T) {
	p := &mockProvider{response: "## Overall Assessment\nSolid."}
	report, err := newTestExecutor(p).AnalyzeResume(context.Background(), longResume)

	require.NoError(t, err)
	assert.Equal(t, "## Overall Assessment\nSolid.", report)
	require.Len(t, p.requests, 1)
	assert.False(t, p.requests[0].JSON)
	assert.Equal(t, 0.3, p.requests[0].Temperature)
}

func TestAnalyzeResume_EmptyInput(t *testing.T) {
	p := &mockProvider{}
	_, err := newTestExecutor(p).AnalyzeResume(context.Background(), "  ")

	assert.ErrorIs(t, err, ErrEmptyResume)
	assert.Empty(t, p.requests)
}

func TestAnalyzeResume_ProviderError(t *testing.T) {
	cause := errors.New("connection reset")
	p := &mockProvider{err: cause}
	_, err := newTestExecutor(p).AnalyzeResume(context.Background(), longResume)

	assert.ErrorIs(t, err, cause)
}

func TestRun_NoRetryNoCache(t *testing.T) {
	p := &mockProvider{err: &model.HTTPError{StatusCode: 503}}
	e := newTestExecutor(p)

	e.ExtractResumeSkills(context.Background(), longResume)
	assert.Len(t, p.requests, 1, "failed call must not be retried")

	p.err = nil
	p.response = "{}"
	e.ExtractResumeSkills(context.Background(), longResume)
	e.ExtractResumeSkills(context.Background(), longResume)
	assert.Len(t, p.requests, 3, "identical input must produce a new call")
}

func TestRun_MissingSlot(t *testing.T) {
	p := &mockProvider{}
	_, err := newTestExecutor(p).Run(context.Background(), MatchJob, map[string]string{SlotResumeSkills: "{}"})

	assert.ErrorIs(t, err, ErrMissingSlot)
	assert.Empty(t, p.requests)
}

func TestNewExecutor_NilLogger(t *testing.T) {
	p := &mockProvider{response: "not json"}
	assert.NotPanics(t, func() {
		NewExecutor(p, nil).ExtractResumeSkills(context.Background(), longResume)
	})
}
