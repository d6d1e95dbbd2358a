package evaluator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	criteriaPath   = "/api/job-postings/evaluation-criteria"
	submissionPath = "/api/applications/submit"
)

// Client talks to the external evaluator's ingestion endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a Client with a short bounded timeout. Sends are
// best-effort, so the timeout stays in the low seconds.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("EVALUATOR_BASE_URL is required")
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// TeachCriteria pushes a posting's grading configuration to the evaluator.
func (c *Client) TeachCriteria(ctx context.Context, payload CriteriaPayload) error {
	return c.post(ctx, criteriaPath, payload)
}

// SubmitApplication pushes one application's answers for scoring.
func (c *Client) SubmitApplication(ctx context.Context, payload SubmissionPayload) error {
	return c.post(ctx, submissionPath, payload)
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("evaluator returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return nil
}
