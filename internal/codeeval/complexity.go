package codeeval

import (
	"regexp"

	"github.com/abdibrokhim/ai-interviewer/internal/models"
)

// Static-pattern complexity heuristics. Deliberately approximate: the rule
// set and thresholds are part of the scoring contract, so changing them
// changes every downstream score.
var (
	nestedForLoops   = regexp.MustCompile(`(?is)for.*\{[\s\S]*?for.*\{`)
	nestedWhileLoops = regexp.MustCompile(`(?is)while.*\{[\s\S]*?while.*\{`)
	anyLoop          = regexp.MustCompile(`for|while`)

	// Recursion by name matching: a named function (or an anonymous function
	// bound to a const) whose name reappears as a call after the definition.
	funcDefName = regexp.MustCompile(`\bfunction\s+([A-Za-z_]\w*)|\bconst\s+([A-Za-z_]\w*)\s*=\s*\(|\bdef\s+([A-Za-z_]\w*)|\bfunc\s+([A-Za-z_]\w*)`)

	hashStructures = regexp.MustCompile(`(?i)Map|Set|Object|Dictionary|HashMap`)
	arrayGrowth    = regexp.MustCompile(`(?i)\[\]|Array|push|pop|append`)
)

// EstimateComplexity classifies time/space complexity from code shape.
func EstimateComplexity(code string) models.Complexity {
	hasNestedLoops := nestedForLoops.MatchString(code) || nestedWhileLoops.MatchString(code)
	hasRecursion := detectRecursion(code)

	timeComplexity := "O(1)"
	spaceComplexity := "O(1)"

	if hasNestedLoops {
		timeComplexity = "O(n²)"
	} else if len(anyLoop.FindAllString(code, -1)) == 1 {
		timeComplexity = "O(n)"
	} else if hasRecursion {
		timeComplexity = "O(n) to O(2ⁿ) depending on recursion"
	}

	if hashStructures.MatchString(code) || arrayGrowth.MatchString(code) {
		spaceComplexity = "O(n)"
	}
	if hasRecursion {
		spaceComplexity = "O(n) call stack"
	}

	return models.Complexity{Time: timeComplexity, Space: spaceComplexity}
}

// detectRecursion finds a function definition whose name reappears as a call
// later in the source. Name matching, not call-graph analysis.
func detectRecursion(code string) bool {
	for _, match := range funcDefName.FindAllStringSubmatchIndex(code, -1) {
		name := ""
		for group := 1; group <= 4; group++ {
			if match[2*group] >= 0 {
				name = code[match[2*group]:match[2*group+1]]
				break
			}
		}
		if name == "" {
			continue
		}

		callPattern, err := regexp.Compile(`\b` + regexp.QuoteMeta(name) + `\s*\(`)
		if err != nil {
			continue
		}

		// A self-call must occur after the definition site.
		body := code[match[1]:]
		if callPattern.MatchString(body) {
			return true
		}
	}
	return false
}
