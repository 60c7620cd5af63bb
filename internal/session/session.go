// Package session holds the results of one user's session with a resume.
package session

import (
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/amishk599/resumelens/internal/model"
)

// DefaultPreviewChars is how much extracted text the preview shows.
const DefaultPreviewChars = 1000

// ErrNoSkills is returned when an action needs extracted skills and none exist yet.
var ErrNoSkills = errors.New("no skills extracted yet: run skill extraction first")

// Session is the typed per-session state passed to whichever handler needs it.
// Each Set call replaces the previous result; nothing is merged.
type Session struct {
	ID             uuid.UUID
	Document       string // file name of the uploaded document
	ResumeText     string
	Report         string
	Skills         *model.SkillProfile
	Suggestions    []model.SkillSuggestion // nil until computed
	Match          *model.JobMatchResult
	TargetRole     string
	JobDescription string
}

// New starts a session for a freshly extracted document.
func New(document, resumeText string) *Session {
	return &Session{
		ID:         uuid.New(),
		Document:   document,
		ResumeText: resumeText,
	}
}

// SetReport stores the latest analysis report.
func (s *Session) SetReport(report string) {
	s.Report = report
}

// SetSkills stores the latest skill profile.
func (s *Session) SetSkills(p model.SkillProfile) {
	s.Skills = &p
}

// SetSuggestions stores the latest suggestions for role.
func (s *Session) SetSuggestions(role string, suggestions []model.SkillSuggestion) {
	if suggestions == nil {
		suggestions = model.EmptySuggestions()
	}
	s.TargetRole = role
	s.Suggestions = suggestions
}

// SetMatch stores the latest job match for jobDescription.
func (s *Session) SetMatch(jobDescription string, m model.JobMatchResult) {
	s.JobDescription = jobDescription
	s.Match = &m
}

// RequireSkills returns the extracted skills or ErrNoSkills.
func (s *Session) RequireSkills() (model.SkillProfile, error) {
	if s.Skills == nil || s.Skills.IsEmpty() {
		return model.SkillProfile{}, ErrNoSkills
	}
	return *s.Skills, nil
}

// Preview returns the first n characters of the resume text, with "..."
// appended when it was cut.
func (s *Session) Preview(n int) string {
	if utf8.RuneCountInString(s.ResumeText) <= n {
		return s.ResumeText
	}
	runes := []rune(s.ResumeText)
	return string(runes[:n]) + "..."
}

// CharCount is the number of characters extracted from the document.
func (s *Session) CharCount() int {
	return utf8.RuneCountInString(s.ResumeText)
}
