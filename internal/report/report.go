// Package report formats query results as plain text and writes the
// downloadable analysis file.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/amishk599/resumelens/internal/model"
)

var titler = cases.Title(language.English)

// acronyms keeps well-known category fragments upper-case after title casing.
var acronyms = map[string]string{
	"Ai":     "AI",
	"Ml":     "ML",
	"Devops": "DevOps",
}

// CategoryLabel turns a snake_case category key into a display label:
// "frameworks_libraries" becomes "Frameworks Libraries", "ai_ml" becomes "AI ML".
func CategoryLabel(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	for i, w := range words {
		w = titler.String(w)
		if a, ok := acronyms[w]; ok {
			w = a
		}
		words[i] = w
	}
	return strings.Join(words, " ")
}

// RenderSkills lists the profile grouped by category. Empty categories are omitted.
func RenderSkills(p model.SkillProfile) string {
	if p.IsEmpty() {
		return "No skills found.\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Skills found: %d\n", p.Count())

	categories := make([]string, 0, len(p.TechnicalSkills))
	for c, skills := range p.TechnicalSkills {
		if len(skills) > 0 {
			categories = append(categories, c)
		}
	}
	sort.Strings(categories)
	if len(categories) > 0 {
		sb.WriteString("\nTechnical Skills\n")
		for _, c := range categories {
			fmt.Fprintf(&sb, "  %s: %s\n", CategoryLabel(c), strings.Join(p.TechnicalSkills[c], ", "))
		}
	}

	writeList(&sb, "Soft Skills", p.SoftSkills)
	writeList(&sb, "Domain Knowledge", p.DomainKnowledge)
	writeList(&sb, "Certifications", p.Certifications)
	return sb.String()
}

// RenderSuggestions lists suggestions ordered High, Medium, Low, keeping the
// model's order within a priority.
func RenderSuggestions(role string, suggestions []model.SkillSuggestion) string {
	if len(suggestions) == 0 {
		return fmt.Sprintf("No skill suggestions for %s.\n", role)
	}

	ordered := make([]model.SkillSuggestion, len(suggestions))
	copy(ordered, suggestions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return priorityRank(ordered[i].Priority) < priorityRank(ordered[j].Priority)
	})

	var sb strings.Builder
	fmt.Fprintf(&sb, "Skills to add for %s\n\n", role)
	for i, s := range ordered {
		fmt.Fprintf(&sb, "%2d. [%s] %s\n", i+1, s.Priority, s.Skill)
		if s.Reason != "" {
			fmt.Fprintf(&sb, "    %s\n", s.Reason)
		}
	}
	return sb.String()
}

// RenderMatch shows the match percentage as a metric plus each list.
func RenderMatch(m model.JobMatchResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Match: %d%%  %s\n", m.MatchPercentage, meter(m.MatchPercentage, 20))
	writeList(&sb, "Matching Skills", m.MatchingSkills)
	writeList(&sb, "Missing Critical Skills", m.MissingCriticalSkills)
	writeList(&sb, "Nice To Have (Missing)", m.NiceToHaveMissing)
	writeList(&sb, "Recommendations", m.Recommendations)
	return sb.String()
}

// WriteReport saves the markdown analysis as a plain-text file, creating the
// parent directory if needed.
func WriteReport(path, markdown string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s\n", title)
	for _, item := range items {
		fmt.Fprintf(sb, "  - %s\n", item)
	}
}

func priorityRank(p model.Priority) int {
	switch p {
	case model.PriorityHigh:
		return 0
	case model.PriorityMedium:
		return 1
	case model.PriorityLow:
		return 2
	default:
		return 3
	}
}

// meter draws a fixed-width bar for a 0-100 percentage.
func meter(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

// Outcome explains a result that did not come straight from the model. It is
// empty for a normal answer.
func Outcome(status model.Status, reason string) string {
	readable := strings.ReplaceAll(reason, "_", " ")
	switch status {
	case model.StatusEmpty:
		return "The model found nothing to report."
	case model.StatusSkipped:
		return "Skipped: " + readable + "."
	case model.StatusFailed:
		return "The model call failed (" + readable + "); showing empty defaults."
	default:
		return ""
	}
}
