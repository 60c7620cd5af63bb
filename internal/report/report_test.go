package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amishk599/resumelens/internal/model"
)

func TestCategoryLabel(t *testing.T) {
	tests := map[string]string{
		"programming_languages": "Programming Languages",
		"frameworks_libraries":  "Frameworks Libraries",
		"ai_ml":                 "AI ML",
		"devops":                "DevOps",
		"other_technical":       "Other Technical",
	}
	for in, want := range tests {
		if got := CategoryLabel(in); got != want {
			t.Errorf("CategoryLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderSkills(t *testing.T) {
	p := model.SkillProfile{
		TechnicalSkills: map[string][]string{
			"programming_languages": {"Go", "Python"},
			"databases":             {},
		},
		SoftSkills:     []string{"Leadership"},
		Certifications: []string{"CKA"},
	}
	out := RenderSkills(p)

	for _, want := range []string{"Skills found: 4", "Programming Languages: Go, Python", "Soft Skills", "  - Leadership", "Certifications"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Databases") {
		t.Error("empty category should be omitted")
	}
	if strings.Contains(out, "Domain Knowledge") {
		t.Error("empty list should be omitted")
	}
}

func TestRenderSkills_Empty(t *testing.T) {
	if got := RenderSkills(model.EmptySkillProfile()); got != "No skills found.\n" {
		t.Errorf("got %q", got)
	}
}

func TestRenderSuggestions_OrdersByPriority(t *testing.T) {
	out := RenderSuggestions("Data Scientist", []model.SkillSuggestion{
		{Skill: "Rust", Priority: model.PriorityLow},
		{Skill: "PyTorch", Priority: model.PriorityHigh, Reason: "Core DL framework"},
		{Skill: "dbt", Priority: model.PriorityMedium},
		{Skill: "SQL", Priority: model.PriorityHigh},
	})

	order := []string{"PyTorch", "SQL", "dbt", "Rust"}
	last := -1
	for _, skill := range order {
		idx := strings.Index(out, skill)
		if idx < 0 || idx < last {
			t.Fatalf("unexpected order for %q:\n%s", skill, out)
		}
		last = idx
	}
	if !strings.Contains(out, "Core DL framework") {
		t.Error("reason missing")
	}
}

func TestRenderSuggestions_Empty(t *testing.T) {
	out := RenderSuggestions("Data Scientist", model.EmptySuggestions())
	if !strings.Contains(out, "No skill suggestions") {
		t.Errorf("got %q", out)
	}
}

func TestRenderMatch(t *testing.T) {
	out := RenderMatch(model.JobMatchResult{
		MatchPercentage:       72,
		MatchingSkills:        []string{"Python"},
		MissingCriticalSkills: []string{"Kubernetes"},
		NiceToHaveMissing:     []string{},
		Recommendations:       []string{"Learn Kubernetes basics"},
	})
	for _, want := range []string{"Match: 72%", "[##############......]", "Missing Critical Skills", "Learn Kubernetes basics"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMeter_Clamps(t *testing.T) {
	if got := meter(150, 4); got != "[####]" {
		t.Errorf("meter(150) = %q", got)
	}
	if got := meter(-3, 4); got != "[....]" {
		t.Errorf("meter(-3) = %q", got)
	}
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "resume_analysis.txt")
	if err := WriteReport(path, "## Overall Assessment\nGood."); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "## Overall Assessment\nGood." {
		t.Errorf("file = %q", data)
	}
}

func TestOutcome(t *testing.T) {
	if got := Outcome(model.StatusOK, ""); got != "" {
		t.Errorf("ok outcome = %q, want empty", got)
	}
	if got := Outcome(model.StatusSkipped, "resume_text_too_short"); got != "Skipped: resume text too short." {
		t.Errorf("skipped outcome = %q", got)
	}
	if got := Outcome(model.StatusFailed, "invalid_json"); !strings.Contains(got, "invalid json") {
		t.Errorf("failed outcome = %q", got)
	}
	if got := Outcome(model.StatusEmpty, ""); got == "" {
		t.Error("empty outcome should explain itself")
	}
}
