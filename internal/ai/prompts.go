package ai

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"text/template"
)

//go:embed prompts/*.md
var promptFiles embed.FS

// TemplateID names one of the fixed prompt templates.
type TemplateID string

const (
	FullAnalysis  TemplateID = "full_analysis"
	ExtractSkills TemplateID = "extract_skills"
	SuggestSkills TemplateID = "suggest_skills"
	MatchJob      TemplateID = "match_job"
)

// Slot names used by the templates.
const (
	SlotResumeText     = "resume_text"
	SlotCurrentSkills  = "current_skills"
	SlotTargetRole     = "target_role"
	SlotResumeSkills   = "resume_skills"
	SlotJobDescription = "job_description"
)

var (
	ErrUnknownTemplate = errors.New("unknown prompt template")
	ErrMissingSlot     = errors.New("missing prompt slot")
)

// ResponseFormat is the shape a template asks the model to reply in.
type ResponseFormat int

const (
	FormatMarkdown ResponseFormat = iota
	FormatJSONObject
	FormatJSONArray
)

// PromptTemplate is a parsed template plus the call parameters it is sent with.
type PromptTemplate struct {
	ID          TemplateID
	System      string
	Slots       []string
	Temperature float64
	Format      ResponseFormat
	tmpl        *template.Template
}

// templates is parsed once at package init and reused on every call.
var templates = map[TemplateID]*PromptTemplate{
	FullAnalysis: mustParse(FullAnalysis,
		"You are an expert resume analyst and career coach.",
		0.3, FormatMarkdown, SlotResumeText),
	ExtractSkills: mustParse(ExtractSkills,
		"You are an expert at extracting and categorizing skills from resumes.",
		0.1, FormatJSONObject, SlotResumeText),
	SuggestSkills: mustParse(SuggestSkills,
		"You are a career coach who recommends high-value skills for a target role.",
		0.3, FormatJSONArray, SlotCurrentSkills, SlotTargetRole),
	MatchJob: mustParse(MatchJob,
		"You compare candidate skills against job requirements.",
		0.1, FormatJSONObject, SlotResumeSkills, SlotJobDescription),
}

func mustParse(id TemplateID, system string, temperature float64, format ResponseFormat, slots ...string) *PromptTemplate {
	raw, err := promptFiles.ReadFile("prompts/" + string(id) + ".md")
	if err != nil {
		panic(fmt.Sprintf("prompt %s: %v", id, err))
	}
	return &PromptTemplate{
		ID:          id,
		System:      system,
		Slots:       slots,
		Temperature: temperature,
		Format:      format,
		tmpl:        template.Must(template.New(string(id)).Option("missingkey=error").Parse(string(raw))),
	}
}

// Lookup returns the template registered under id.
func Lookup(id TemplateID) (*PromptTemplate, error) {
	t, ok := templates[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}
	return t, nil
}

// Render fills the template's slots. Substitution is literal; values are not escaped.
func (t *PromptTemplate) Render(slots map[string]string) (string, error) {
	for _, name := range t.Slots {
		if _, ok := slots[name]; !ok {
			return "", fmt.Errorf("%w: %s needs %q", ErrMissingSlot, t.ID, name)
		}
	}
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, slots); err != nil {
		return "", fmt.Errorf("render %s: %w", t.ID, err)
	}
	return buf.String(), nil
}

// Render looks up id and fills its slots.
func Render(id TemplateID, slots map[string]string) (string, error) {
	t, err := Lookup(id)
	if err != nil {
		return "", err
	}
	return t.Render(slots)
}

// MustRender is Render for callers that build slots themselves; a missing
// slot there is a programming error.
func MustRender(id TemplateID, slots map[string]string) string {
	prompt, err := Render(id, slots)
	if err != nil {
		panic(err)
	}
	return prompt
}
