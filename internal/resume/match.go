package resume

import (
	"math"
	"strings"
)

// SkillMatch compares a candidate's skills against a role's requirements.
type SkillMatch struct {
	MatchedRequired  []string `json:"matched_required"`
	MatchedPreferred []string `json:"matched_preferred"`
	MissingRequired  []string `json:"missing_required"`
	AdditionalSkills []string `json:"additional_skills"`
	MatchScore       int      `json:"match_score"`
}

// MatchSkills scores candidate skills against required and preferred skill
// lists. Required skills carry 70% of the score, preferred skills 30%.
// Matching is a case-insensitive substring test in either direction, so
// "PostgreSQL" matches "postgres" and vice versa.
func MatchSkills(candidateSkills, requiredSkills, preferredSkills []string) SkillMatch {
	match := SkillMatch{
		MatchedRequired:  []string{},
		MatchedPreferred: []string{},
		MissingRequired:  []string{},
		AdditionalSkills: []string{},
	}

	for _, required := range requiredSkills {
		if anySkillMatches(candidateSkills, required) {
			match.MatchedRequired = append(match.MatchedRequired, required)
		} else {
			match.MissingRequired = append(match.MissingRequired, required)
		}
	}

	for _, preferred := range preferredSkills {
		if anySkillMatches(candidateSkills, preferred) {
			match.MatchedPreferred = append(match.MatchedPreferred, preferred)
		}
	}

	for _, skill := range candidateSkills {
		if !anySkillMatches(requiredSkills, skill) && !anySkillMatches(preferredSkills, skill) {
			match.AdditionalSkills = append(match.AdditionalSkills, skill)
		}
	}

	requiredScore := float64(len(match.MatchedRequired)) / float64(len(requiredSkills)) * 70
	preferredScore := float64(len(match.MatchedPreferred)) / math.Max(float64(len(preferredSkills)), 1) * 30
	match.MatchScore = int(math.Round(requiredScore + preferredScore))

	return match
}

func anySkillMatches(skills []string, target string) bool {
	lowerTarget := strings.ToLower(target)
	for _, skill := range skills {
		lowerSkill := strings.ToLower(skill)
		if strings.Contains(lowerSkill, lowerTarget) || strings.Contains(lowerTarget, lowerSkill) {
			return true
		}
	}
	return false
}
