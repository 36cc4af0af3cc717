package judge0

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/abdibrokhim/ai-interviewer/internal/sandbox"
)

// Client talks to a Judge0-compatible execution service over its REST API.
type Client struct {
	apiURL     string
	apiKey     string
	apiHost    string
	httpClient *http.Client
}

func NewClient(apiURL, apiKey, apiHost string) (*Client, error) {
	if apiURL == "" {
		return nil, fmt.Errorf("judge0 API URL is required")
	}

	return &Client{
		apiURL:  apiURL,
		apiKey:  apiKey,
		apiHost: apiHost,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type submissionRequest struct {
	SourceCode     string  `json:"source_code"`
	LanguageID     int     `json:"language_id"`
	Stdin          string  `json:"stdin"`
	ExpectedOutput string  `json:"expected_output"`
	CPUTimeLimit   float64 `json:"cpu_time_limit"`
	MemoryLimit    int     `json:"memory_limit"`
}

type submissionResponse struct {
	Status struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	} `json:"status"`
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
	Time   string `json:"time"`
	Memory int    `json:"memory"`
}

// Run submits the code synchronously (wait=true) and returns the backend's
// verdict. A case is never resubmitted here: retry policy is the caller's
// concern because executions are not idempotent billing-wise.
func (c *Client) Run(ctx context.Context, sub sandbox.Submission) (*sandbox.Execution, error) {
	payload := submissionRequest{
		SourceCode:     sub.SourceCode,
		LanguageID:     sub.LanguageID,
		Stdin:          sub.Stdin,
		ExpectedOutput: sub.ExpectedOutput,
		CPUTimeLimit:   sub.CPUTimeLimit,
		MemoryLimit:    sub.MemoryLimit,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("unable to serialize submission: %w", err)
	}

	url := fmt.Sprintf("%s/submissions?base64_encoded=false&wait=true", c.apiURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("unable to build submission request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-RapidAPI-Key", c.apiKey)
		req.Header.Set("X-RapidAPI-Host", c.apiHost)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to reach execution service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("execution service returned status %d", resp.StatusCode)
	}

	var result submissionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode execution response: %w", err)
	}

	var elapsed float64
	if result.Time != "" {
		fmt.Sscanf(result.Time, "%f", &elapsed)
	}

	return &sandbox.Execution{
		StatusID:          result.Status.ID,
		StatusDescription: result.Status.Description,
		Stdout:            result.Stdout,
		Stderr:            result.Stderr,
		Time:              elapsed,
		Memory:            result.Memory,
	}, nil
}
