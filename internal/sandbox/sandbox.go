package sandbox

import (
	"context"
	"fmt"
)

// Submission is one code run against one stdin.
type Submission struct {
	SourceCode     string
	LanguageID     int
	Stdin          string
	ExpectedOutput string
	CPUTimeLimit   float64 // seconds
	MemoryLimit    int     // KB
}

// Execution is the backend's verdict for a single submission.
type Execution struct {
	StatusID          int
	StatusDescription string
	Stdout            string
	Stderr            string
	Time              float64 // seconds
	Memory            int     // KB
}

// Runner executes a single submission in an isolated environment. How the
// sandboxing works is the backend's business.
type Runner interface {
	Run(ctx context.Context, sub Submission) (*Execution, error)
}

// Execution backend status ids. A test passes only on StatusAccepted; a
// lenient string match is not acceptance.
const (
	StatusInQueue             = 1
	StatusProcessing          = 2
	StatusAccepted            = 3
	StatusWrongAnswer         = 4
	StatusTimeLimitExceeded   = 5
	StatusCompilationError    = 6
	StatusRuntimeError        = 11
	StatusInternalError       = 13
	StatusExecFormatError     = 14
)

// Language ids understood by the execution backend. The enumeration is fixed;
// anything else is rejected before dispatch.
var languageIDs = map[string]int{
	"javascript": 63,
	"python":     71,
	"java":       62,
	"cpp":        54,
	"c":          50,
	"typescript": 74,
	"go":         60,
	"rust":       73,
	"ruby":       72,
	"php":        68,
}

// LanguageID resolves a language identifier to the backend's numeric id.
func LanguageID(language string) (int, error) {
	id, ok := languageIDs[language]
	if !ok {
		return 0, fmt.Errorf("unsupported language: %s", language)
	}
	return id, nil
}

// SupportedLanguages returns the fixed language enumeration.
func SupportedLanguages() []string {
	langs := make([]string, 0, len(languageIDs))
	for l := range languageIDs {
		langs = append(langs, l)
	}
	return langs
}
