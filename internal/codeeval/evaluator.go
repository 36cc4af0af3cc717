package codeeval

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/abdibrokhim/ai-interviewer/internal/models"
	"github.com/abdibrokhim/ai-interviewer/internal/sandbox"
	"github.com/rs/zerolog"
)

const (
	defaultTimeLimitSec   = 5
	defaultMemoryLimitMB  = 128
	statusRuntimeError    = "Runtime Error"
)

// Evaluator runs submissions against the execution-service capability and
// turns the raw executions into an aggregated CodeEvaluationResult.
type Evaluator struct {
	runner sandbox.Runner
	logger *zerolog.Logger
}

func NewEvaluator(runner sandbox.Runner, logger *zerolog.Logger) *Evaluator {
	return &Evaluator{
		runner: runner,
		logger: logger,
	}
}

// Evaluate dispatches all test cases concurrently, waits for every case (or
// its individual timeout), and aggregates. A failed dispatch degrades that
// one case to a Runtime Error result instead of aborting the batch; a case is
// never retried once dispatched.
func (e *Evaluator) Evaluate(ctx context.Context, problem models.CodeProblem, code, language string, timeSpentMin float64) (models.CodeEvaluationResult, error) {
	languageID, err := sandbox.LanguageID(language)
	if err != nil {
		return models.CodeEvaluationResult{}, err
	}
	if len(problem.TestCases) == 0 {
		return models.CodeEvaluationResult{}, fmt.Errorf("problem %s has no test cases", problem.ID)
	}

	timeLimit := problem.TimeLimit
	if timeLimit == 0 {
		timeLimit = defaultTimeLimitSec
	}
	memoryLimit := problem.MemoryLimit
	if memoryLimit == 0 {
		memoryLimit = defaultMemoryLimitMB
	}

	results := make([]models.TestCaseResult, len(problem.TestCases))
	var wg sync.WaitGroup

	for i, tc := range problem.TestCases {
		wg.Add(1)
		go func(i int, tc models.TestCase) {
			defer wg.Done()
			results[i] = e.runCase(ctx, tc, code, languageID, timeLimit, memoryLimit)
		}(i, tc)
	}

	wg.Wait()

	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}

	visible := make([]models.TestCaseResult, 0, len(results))
	for _, r := range results {
		if !r.IsHidden {
			visible = append(visible, r)
		}
	}

	complexity := EstimateComplexity(code)
	quality := AnalyzeQuality(code, language)
	qualityScore := QualityScore(quality)

	score := SubmissionScore(ScoreInput{
		PassedTests:     passed,
		TotalTests:      len(results),
		TimeComplexity:  complexity.Time,
		QualityScore:    qualityScore,
		TimeSpentMin:    timeSpentMin,
		ExpectedTimeMin: expectedSolveMinutes(problem.Difficulty),
	})

	result := models.CodeEvaluationResult{
		Success:        passed == len(results),
		PassedTests:    passed,
		TotalTests:     len(results),
		VisibleResults: visible,
		AllResults:     results,
		Complexity:     complexity,
		Quality:        quality,
		QualityScore:   qualityScore,
		Score:          score,
	}
	result.Feedback = buildFeedback(result)

	e.logger.Info().
		Str("problem_id", problem.ID).
		Str("language", language).
		Int("passed", passed).
		Int("total", len(results)).
		Int("score", score).
		Msg("code evaluation complete")

	return result, nil
}

// runCase executes one test case with its own timeout carved from the
// problem's limits.
func (e *Evaluator) runCase(ctx context.Context, tc models.TestCase, code string, languageID, timeLimitSec, memoryLimitMB int) models.TestCaseResult {
	result := models.TestCaseResult{
		Input:          tc.Input,
		ExpectedOutput: tc.ExpectedOutput,
		IsHidden:       tc.IsHidden,
	}

	// A case with no input or expected output cannot be judged.
	if tc.Input == "" || tc.ExpectedOutput == "" {
		result.ActualOutput = "Malformed test case"
		result.Status = statusRuntimeError
		return result
	}

	// Dispatch timeout: the configured per-case CPU limit plus scheduling
	// headroom, so a wedged backend cannot hang the batch.
	caseCtx, cancel := context.WithTimeout(ctx, time.Duration(timeLimitSec)*time.Second+10*time.Second)
	defer cancel()

	exec, err := e.runner.Run(caseCtx, sandbox.Submission{
		SourceCode:     code,
		LanguageID:     languageID,
		Stdin:          tc.Input,
		ExpectedOutput: tc.ExpectedOutput,
		CPUTimeLimit:   float64(timeLimitSec),
		MemoryLimit:    memoryLimitMB * 1024,
	})
	if err != nil {
		e.logger.Warn().Err(err).Msg("test case execution failed")
		result.ActualOutput = "Error running test case"
		result.Status = statusRuntimeError
		return result
	}

	output := exec.Stdout
	if output == "" {
		output = exec.Stderr
	}

	result.Passed = exec.StatusID == sandbox.StatusAccepted
	result.ActualOutput = output
	result.ExecutionTime = exec.Time
	result.Memory = exec.Memory
	result.Status = exec.StatusDescription
	return result
}

func expectedSolveMinutes(difficulty models.ProblemDifficulty) float64 {
	switch difficulty {
	case models.ProblemEasy:
		return 15
	case models.ProblemMedium:
		return 25
	default:
		return 40
	}
}
