// Package scheduler talks to the external at-style job daemon that fires
// station power-on commands at reservation start times. Job state lives
// entirely in the daemon; only the returned job id is kept here.
package scheduler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/wutsk/labreserve/internal/domain"
)

const defaultTimeout = 10 * time.Second

type JobRequest struct {
	StationID string    `json:"station_id"`
	RunAt     time.Time `json:"run_at"`
	Selector  string    `json:"selector"`
}

type jobResponse struct {
	JobID int64 `json:"job_id"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Schedule registers a one-shot power-on job and returns the daemon's job id.
// A single attempt is made; any failure surfaces as a SchedulingError and the
// caller decides whether to retry the whole reservation.
func (c *Client) Schedule(ctx context.Context, req JobRequest) (int64, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return 0, &domain.SchedulingError{Op: "create", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/jobs", bytes.NewReader(body))
	if err != nil {
		return 0, &domain.SchedulingError{Op: "create", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, &domain.SchedulingError{Op: "create", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, &domain.SchedulingError{Op: "create", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var out jobResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, &domain.SchedulingError{Op: "create", Err: err}
	}
	return out.JobID, nil
}

// Cancel removes a previously created job. A missing job is not a failure:
// it may have already fired or been removed externally, so (false, nil) is
// returned and the caller proceeds.
func (c *Client) Cancel(ctx context.Context, jobID int64) (bool, error) {
	url := fmt.Sprintf("%s/jobs/%d", c.baseURL, jobID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return false, &domain.SchedulingError{Op: "cancel", Err: err}
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return false, &domain.SchedulingError{Op: "cancel", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true, nil
	default:
		return false, &domain.SchedulingError{Op: "cancel", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
}
