// Package rebor talks to the Rebor task API.
package rebor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/rebor-cli/internal/domain"
	"github.com/bnema/rebor-cli/internal/ports"
)

const (
	DefaultEndpoint = "https://r8-server-production.up.railway.app/api/task/task"
	DefaultOrigin   = "https://rebor-app.vercel.app"

	maxResponseBytes = 1 << 20
)

type Client struct {
	Endpoint   string
	Origin     string
	HTTPClient *http.Client
	// RequestTimeout bounds one POST. Zero leaves it to HTTPClient.
	RequestTimeout time.Duration
	Reporter       ports.Reporter
}

var _ ports.TaskClient = (*Client)(nil)

type taskPayload struct {
	Action     string `json:"action"`
	TaskID     string `json:"taskId"`
	TelegramID string `json:"telegramId"`
	Type       string `json:"type"`
}

// CompleteTask never returns an error; failures are logged and carried in
// the result.
func (c *Client) CompleteTask(ctx context.Context, taskID domain.TaskID, credential domain.Credential) domain.TaskResult {
	result := c.completeTask(ctx, taskID, credential)

	if result.OK() {
		c.logInfo("Task cleared successfully.", "task_id", string(taskID), "status", result.StatusCode)
		return result
	}

	args := []any{"task_id", string(taskID), "outcome", string(result.Outcome)}
	if result.StatusCode != 0 {
		args = append(args, "status", result.StatusCode)
	}
	c.logError(fmt.Sprintf("Failed to clear task %s: %s", taskID, result.Err.Error()), args...)

	return result
}

func (c *Client) completeTask(ctx context.Context, taskID domain.TaskID, credential domain.Credential) domain.TaskResult {
	if c.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.RequestTimeout)
		defer cancel()
	}

	request, err := c.newRequest(ctx, taskID, credential)
	if err != nil {
		return failed(taskID, domain.TaskTransportError, 0, err)
	}

	response, err := c.httpClient().Do(request)
	if err != nil {
		return failed(taskID, domain.TaskTransportError, 0, fmt.Errorf("perform request: %w", err))
	}
	defer func() { _ = response.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))

	switch {
	case response.StatusCode >= http.StatusOK && response.StatusCode < http.StatusMultipleChoices:
		return domain.TaskResult{TaskID: taskID, Outcome: domain.TaskCompleted, StatusCode: response.StatusCode}
	case response.StatusCode == http.StatusUnauthorized || response.StatusCode == http.StatusForbidden:
		return failed(taskID, domain.TaskUnauthorized, response.StatusCode,
			fmt.Errorf("%w: status %d: %s", domain.ErrUnauthorized, response.StatusCode, strings.TrimSpace(string(body))))
	default:
		return failed(taskID, domain.TaskRejected, response.StatusCode,
			fmt.Errorf("status %d: %s", response.StatusCode, strings.TrimSpace(string(body))))
	}
}

func (c *Client) newRequest(ctx context.Context, taskID domain.TaskID, credential domain.Credential) (*http.Request, error) {
	endpoint, err := url.Parse(c.endpoint())
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if endpoint.Scheme != "http" && endpoint.Scheme != "https" {
		return nil, errors.New("endpoint must use http or https")
	}

	webAppData, err := EncodeWebAppData(credential)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(taskPayload{
		Action:     "complete",
		TaskID:     string(taskID),
		TelegramID: credential.User.ID,
		Type:       "daily",
	})
	if err != nil {
		return nil, fmt.Errorf("encode task payload: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	origin := c.origin()
	request.Header.Set("authority", endpoint.Host)
	request.Header.Set("method", http.MethodPost)
	request.Header.Set("path", "/api/task?taskId="+url.QueryEscape(string(taskID)))
	request.Header.Set("scheme", endpoint.Scheme)
	request.Header.Set("Accept", "application/json, text/plain, */*")
	request.Header.Set("Accept-Encoding", "gzip, deflate, br")
	request.Header.Set("Accept-Language", "en-US,en;q=0.9")
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Origin", origin)
	request.Header.Set("Referer", origin)
	request.Header.Set("Tg-Webapp-Data", webAppData)

	return request, nil
}

func failed(taskID domain.TaskID, outcome domain.TaskOutcome, status int, err error) domain.TaskResult {
	return domain.TaskResult{
		TaskID:     taskID,
		Outcome:    outcome,
		StatusCode: status,
		Err:        fmt.Errorf("%w: %w", domain.ErrRequest, err),
	}
}

func (c *Client) endpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	return DefaultEndpoint
}

func (c *Client) origin() string {
	if c.Origin != "" {
		return c.Origin
	}
	return DefaultOrigin
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) logInfo(msg string, args ...any) {
	if c.Reporter != nil {
		c.Reporter.Info(msg, args...)
	}
}

func (c *Client) logError(msg string, args ...any) {
	if c.Reporter != nil {
		c.Reporter.Error(msg, args...)
	}
}
