// Package submit sends a completed response set to the survey server.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/workwithprnv-stack/survey/internal/models"
)

const defaultTimeout = 10 * time.Second

// Outcome reports what happened to a submission. A failed submission is not
// an error for the caller; Err carries the transport or server problem.
type Outcome struct {
	Accepted   bool
	StatusCode int
	SessionID  string
	Message    string
	Err        error
}

type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient returns a client posting to <serverURL>/submit.
func NewClient(serverURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:   strings.TrimRight(serverURL, "/") + "/submit",
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit posts the response set once. Failures are logged and returned in the
// outcome; there is no retry.
func (c *Client) Submit(ctx context.Context, set models.ResponseSet) Outcome {
	outcome := c.submit(ctx, set)
	if outcome.Err != nil {
		c.logger.Warn("Failed to submit to server",
			zap.String("session", set.SessionID),
			zap.Int("status", outcome.StatusCode),
			zap.Error(outcome.Err))
		return outcome
	}
	c.logger.Info("Server response",
		zap.String("session", outcome.SessionID),
		zap.String("message", outcome.Message))
	return outcome
}

func (c *Client) submit(ctx context.Context, set models.ResponseSet) Outcome {
	body, err := json.Marshal(set)
	if err != nil {
		return Outcome{Err: fmt.Errorf("failed to encode response set: %w", err)}
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Outcome{Err: fmt.Errorf("failed to build request: %w", err)}
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return Outcome{Err: fmt.Errorf("failed to reach server: %w", err)}
	}
	defer response.Body.Close()

	outcome := Outcome{StatusCode: response.StatusCode}
	var reply models.SubmitReply
	if err := json.NewDecoder(io.LimitReader(response.Body, 1<<20)).Decode(&reply); err != nil {
		outcome.Err = fmt.Errorf("failed to decode server reply (status %d): %w", response.StatusCode, err)
		return outcome
	}
	outcome.SessionID = reply.SessionID
	outcome.Message = reply.Message
	if response.StatusCode != http.StatusOK || !reply.Accepted {
		outcome.Message = reply.Error
		outcome.Err = fmt.Errorf("server rejected submission (status %d): %s", response.StatusCode, reply.Error)
		return outcome
	}
	outcome.Accepted = true
	return outcome
}
