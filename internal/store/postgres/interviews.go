package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/abdibrokhim/ai-interviewer/internal/models"
)

// ErrNotFound is returned when no record exists for the given interview.
var ErrNotFound = errors.New("record not found")

func (s *Store) SaveContext(ctx context.Context, ic models.InterviewContext) error {
	payload, err := json.Marshal(ic)
	if err != nil {
		return fmt.Errorf("failed to marshal interview context: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
INSERT INTO interview_contexts (interview_id, context)
VALUES ($1, $2)
ON CONFLICT (interview_id) DO UPDATE SET context = EXCLUDED.context
`, ic.InterviewID, payload)
	return err
}

func (s *Store) GetContext(ctx context.Context, interviewID string) (*models.InterviewContext, error) {
	row := s.pool.QueryRow(ctx, `
SELECT context FROM interview_contexts WHERE interview_id = $1
`, interviewID)

	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var ic models.InterviewContext
	if err := json.Unmarshal(payload, &ic); err != nil {
		return nil, fmt.Errorf("failed to unmarshal interview context: %w", err)
	}

	return &ic, nil
}

func (s *Store) SaveSession(ctx context.Context, interviewID string, session models.SessionState) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
INSERT INTO interview_sessions (interview_id, session, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (interview_id) DO UPDATE SET session = EXCLUDED.session, updated_at = now()
`, interviewID, payload)
	return err
}

func (s *Store) SaveResult(ctx context.Context, result models.InterviewResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal interview result: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
INSERT INTO interview_results (interview_id, result, partial, completed_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (interview_id) DO UPDATE SET
	result = EXCLUDED.result,
	partial = EXCLUDED.partial,
	completed_at = EXCLUDED.completed_at
`, result.InterviewID, payload, result.Partial, result.CompletedAt)
	return err
}

func (s *Store) GetResult(ctx context.Context, interviewID string) (*models.InterviewResult, error) {
	row := s.pool.QueryRow(ctx, `
SELECT result FROM interview_results WHERE interview_id = $1
`, interviewID)

	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var result models.InterviewResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal interview result: %w", err)
	}

	return &result, nil
}

func (s *Store) SaveCodeEvaluation(ctx context.Context, interviewID string, problemID string, evaluation models.CodeEvaluationResult) error {
	payload, err := json.Marshal(evaluation)
	if err != nil {
		return fmt.Errorf("failed to marshal code evaluation: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
INSERT INTO code_evaluations (interview_id, problem_id, evaluation)
VALUES ($1, $2, $3)
`, interviewID, problemID, payload)
	return err
}
