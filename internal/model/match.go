package model

// JobMatchResult compares a candidate's skills with a job description.
type JobMatchResult struct {
	MatchPercentage       int      `json:"match_percentage"`
	MatchingSkills        []string `json:"matching_skills"`
	MissingCriticalSkills []string `json:"missing_critical_skills"`
	NiceToHaveMissing     []string `json:"nice_to_have_missing"`
	Recommendations       []string `json:"recommendations"`
}

// EmptyJobMatch returns the default match result used when matching is
// skipped or fails.
func EmptyJobMatch() JobMatchResult {
	return JobMatchResult{
		MatchPercentage:       0,
		MatchingSkills:        []string{},
		MissingCriticalSkills: []string{},
		NiceToHaveMissing:     []string{},
		Recommendations:       []string{},
	}
}

// IsEmpty reports whether the result carries no information.
func (m JobMatchResult) IsEmpty() bool {
	return m.MatchPercentage == 0 &&
		len(m.MatchingSkills) == 0 &&
		len(m.MissingCriticalSkills) == 0 &&
		len(m.NiceToHaveMissing) == 0 &&
		len(m.Recommendations) == 0
}

// Normalized returns a copy where every nil list is replaced by an empty one.
func (m JobMatchResult) Normalized() JobMatchResult {
	m.MatchingSkills = orEmpty(m.MatchingSkills)
	m.MissingCriticalSkills = orEmpty(m.MissingCriticalSkills)
	m.NiceToHaveMissing = orEmpty(m.NiceToHaveMissing)
	m.Recommendations = orEmpty(m.Recommendations)
	return m
}
