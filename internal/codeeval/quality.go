package codeeval

import (
	"regexp"
	"strings"

	"github.com/abdibrokhim/ai-interviewer/internal/models"
)

var (
	commentMarkers = regexp.MustCompile(`//|/\*|#`)

	singleLetterVars = regexp.MustCompile(`\b[a-z]\b`)

	jsErrorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`try\s*\{`),
		regexp.MustCompile(`catch\s*\(`),
		regexp.MustCompile(`\.catch\(`),
		regexp.MustCompile(`if\s*\(\s*error\s*\)`),
	}
	pyErrorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`try\s*:`),
		regexp.MustCompile(`except\s*`),
		regexp.MustCompile(`if\s+.*is\s+None`),
	}
	javaErrorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`try\s*\{`),
		regexp.MustCompile(`catch\s*\(`),
		regexp.MustCompile(`throws\s+\w+Exception`),
	}
	cppErrorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`try\s*\{`),
		regexp.MustCompile(`catch\s*\(`),
	}
	goErrorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`if\s+err\s*!=\s*nil`),
		regexp.MustCompile(`errors\.`),
	}

	edgeCasePatterns = []*regexp.Regexp{
		regexp.MustCompile(`if\s*\(\s*\w+\.length\s*={2,3}\s*0\s*\)`),
		regexp.MustCompile(`if\s*\(\s*!\w+\s*\)`),
		regexp.MustCompile(`if\s*\(\s*\w+\s*={2,3}\s*null\s*\)`),
		regexp.MustCompile(`if\s*\(\s*len\(\w+\)\s*==\s*0\s*\)`),
		regexp.MustCompile(`if\s+not\s+\w+`),
		regexp.MustCompile(`if\s+len\(\w+\)\s*==\s*0`),
		regexp.MustCompile(`\w+\s*\?\.`),
	}

	loopOrCondition = regexp.MustCompile(`for\s*\(|while\s*\(|for\s+\w+\s+in|while\s+`)
	conditionals    = regexp.MustCompile(`if\s*\(|if\s+`)
)

// Conventional loop/index names that don't count against descriptive naming.
var allowedSingleLetters = map[string]bool{
	"i": true, "j": true, "k": true, "x": true, "y": true, "n": true, "m": true,
}

// AnalyzeQuality runs the static checks behind the quality score and collects
// ranked improvement suggestions.
func AnalyzeQuality(code, language string) models.QualityAnalysis {
	analysis := models.QualityAnalysis{
		HasComments:         commentMarkers.MatchString(code),
		HasDescriptiveNames: checkDescriptiveNames(code),
		HasErrorHandling:    checkErrorHandling(code, language),
		HasEdgeCases:        checkEdgeCases(code),
		Complexity:          structuralComplexity(code),
		LineCount:           len(strings.Split(code, "\n")),
	}

	// Language-specific suggestions first, then general ones.
	switch language {
	case "javascript", "typescript":
		if !analysis.HasErrorHandling && !strings.Contains(code, "try") {
			analysis.Suggestions = append(analysis.Suggestions, "Consider adding error handling with try-catch blocks")
		}
		if strings.Contains(code, "var ") {
			analysis.Suggestions = append(analysis.Suggestions, "Use const/let instead of var for better scoping")
		}
	case "python":
		if !strings.Contains(code, "def ") && !strings.Contains(code, "class ") {
			analysis.Suggestions = append(analysis.Suggestions, "Consider organizing code into functions or classes")
		}
		if !analysis.HasComments && !strings.Contains(code, `"""`) {
			analysis.Suggestions = append(analysis.Suggestions, "Add docstrings to document your functions")
		}
	}

	if !analysis.HasComments {
		analysis.Suggestions = append(analysis.Suggestions, "Add comments to explain complex logic")
	}
	if analysis.Complexity == "high" {
		analysis.Suggestions = append(analysis.Suggestions, "Consider breaking down complex functions into smaller ones")
	}
	if !analysis.HasEdgeCases {
		analysis.Suggestions = append(analysis.Suggestions, "Consider handling edge cases (empty inputs, null values, etc.)")
	}

	return analysis
}

// QualityScore maps the analysis to 0-100: base 50, +10 comments,
// +15 descriptive names, +15 error handling, +10 edge cases, ±5 complexity.
func QualityScore(analysis models.QualityAnalysis) int {
	score := 50

	if analysis.HasComments {
		score += 10
	}
	if analysis.HasDescriptiveNames {
		score += 15
	}
	if analysis.HasErrorHandling {
		score += 15
	}
	if analysis.HasEdgeCases {
		score += 10
	}

	switch analysis.Complexity {
	case "low":
		score += 5
	case "high":
		score -= 5
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// checkDescriptiveNames flags code with three or more single-letter
// identifiers outside the conventional loop-index allow-list.
func checkDescriptiveNames(code string) bool {
	problematic := 0
	for _, name := range singleLetterVars.FindAllString(code, -1) {
		if !allowedSingleLetters[name] {
			problematic++
		}
	}
	return problematic < 3
}

func checkErrorHandling(code, language string) bool {
	var patterns []*regexp.Regexp
	switch language {
	case "javascript", "typescript":
		patterns = jsErrorPatterns
	case "python":
		patterns = pyErrorPatterns
	case "java":
		patterns = javaErrorPatterns
	case "cpp", "c":
		patterns = cppErrorPatterns
	case "go":
		patterns = goErrorPatterns
	}

	for _, p := range patterns {
		if p.MatchString(code) {
			return true
		}
	}
	return false
}

func checkEdgeCases(code string) bool {
	for _, p := range edgeCasePatterns {
		if p.MatchString(code) {
			return true
		}
	}
	return false
}

// structuralComplexity scores loops heaviest, then branches, then sheer size.
func structuralComplexity(code string) string {
	lines := len(strings.Split(code, "\n"))
	loops := len(loopOrCondition.FindAllString(code, -1))
	conditions := len(conditionals.FindAllString(code, -1))

	score := float64(loops*3) + float64(conditions*2) + float64(lines)/10

	if score > 20 {
		return "high"
	}
	if score > 10 {
		return "medium"
	}
	return "low"
}
