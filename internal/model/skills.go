package model

// SkillProfile is the categorized skill inventory extracted from a resume.
// All four fields are always populated, never nil, so callers do not need to
// check for presence.
type SkillProfile struct {
	TechnicalSkills map[string][]string `json:"technical_skills"`
	SoftSkills      []string            `json:"soft_skills"`
	DomainKnowledge []string            `json:"domain_knowledge"`
	Certifications  []string            `json:"certifications"`
}

// EmptySkillProfile returns the default profile used when extraction is
// skipped or fails.
func EmptySkillProfile() SkillProfile {
	return SkillProfile{
		TechnicalSkills: map[string][]string{},
		SoftSkills:      []string{},
		DomainKnowledge: []string{},
		Certifications:  []string{},
	}
}

// IsEmpty reports whether the profile holds no skill at all.
func (p SkillProfile) IsEmpty() bool {
	for _, skills := range p.TechnicalSkills {
		if len(skills) > 0 {
			return false
		}
	}
	return len(p.SoftSkills) == 0 && len(p.DomainKnowledge) == 0 && len(p.Certifications) == 0
}

// Count returns the total number of skills across all categories.
func (p SkillProfile) Count() int {
	n := len(p.SoftSkills) + len(p.DomainKnowledge) + len(p.Certifications)
	for _, skills := range p.TechnicalSkills {
		n += len(skills)
	}
	return n
}

// Normalized returns a copy where every nil container is replaced by an empty one.
func (p SkillProfile) Normalized() SkillProfile {
	out := SkillProfile{
		TechnicalSkills: make(map[string][]string, len(p.TechnicalSkills)),
		SoftSkills:      orEmpty(p.SoftSkills),
		DomainKnowledge: orEmpty(p.DomainKnowledge),
		Certifications:  orEmpty(p.Certifications),
	}
	for category, skills := range p.TechnicalSkills {
		out.TechnicalSkills[category] = orEmpty(skills)
	}
	return out
}

// Priority ranks how urgently a suggested skill should be learned.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// SkillSuggestion is one skill the model recommends adding for a target role.
type SkillSuggestion struct {
	Skill    string   `json:"skill"`
	Priority Priority `json:"priority"`
	Reason   string   `json:"reason"`
}

// EmptySuggestions returns the empty, non-nil suggestion list. A nil slice
// means "not computed yet"; an empty one is a real answer.
func EmptySuggestions() []SkillSuggestion {
	return []SkillSuggestion{}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
