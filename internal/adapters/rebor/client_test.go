package rebor

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/bnema/rebor-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCredential(t *testing.T) domain.Credential {
	t.Helper()

	user, err := domain.NewUser([]byte(`{"id":42,"first_name":"Ann Lee"}`))
	require.NoError(t, err)

	return domain.Credential{
		User:         user,
		ChatInstance: "-8123",
		ChatType:     "sender",
		AuthDate:     "1700000000",
		Signature:    "c2ln",
		Hash:         "deadbeef",
	}
}

func newTestClient(serverURL string, httpClient *http.Client) (*Client, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return &Client{
		Endpoint:   serverURL + "/api/task/task",
		Origin:     "https://app.example.test",
		HTTPClient: httpClient,
		Reporter:   slog.New(slog.NewTextHandler(buf, nil)),
	}, buf
}

func TestCompleteTaskSendsHeadersAndPayload(t *testing.T) {
	t.Parallel()

	credential := testCredential(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/task/task", r.URL.Path)
		assert.Equal(t, "application/json, text/plain, */*", r.Header.Get("Accept"))
		assert.Equal(t, "gzip, deflate, br", r.Header.Get("Accept-Encoding"))
		assert.Equal(t, "en-US,en;q=0.9", r.Header.Get("Accept-Language"))
		assert.Equal(t, "https://app.example.test", r.Header.Get("Origin"))
		assert.Equal(t, "https://app.example.test", r.Header.Get("Referer"))
		assert.Equal(t, "/api/task?taskId=2", r.Header.Get("path"))
		assert.Equal(t, "POST", r.Header.Get("method"))
		assert.Equal(t, "http", r.Header.Get("scheme"))
		assert.Equal(t, r.Host, r.Header.Get("authority"))

		webAppData, err := url.PathUnescape(r.Header.Get("Tg-Webapp-Data"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"user":{"id":42,"first_name":"Ann Lee"},"chat_instance":"-8123","chat_type":"sender","auth_date":"1700000000","signature":"c2ln","hash":"deadbeef"}`, webAppData)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, map[string]string{
			"action":     "complete",
			"taskId":     "2",
			"telegramId": "42",
			"type":       "daily",
		}, payload)

		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(server.Close)

	client, logs := newTestClient(server.URL, server.Client())
	result := client.CompleteTask(context.Background(), domain.TaskDailyTwo, credential)

	assert.True(t, result.OK())
	assert.Equal(t, http.StatusCreated, result.StatusCode)
	assert.Equal(t, domain.TaskDailyTwo, result.TaskID)
	require.NoError(t, result.Err)
	assert.Contains(t, logs.String(), "level=INFO")
	assert.Contains(t, logs.String(), "status=201")
}

func TestCompleteTaskClassifiesFailures(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		status      int
		wantOutcome domain.TaskOutcome
		wantErrIs   error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, wantOutcome: domain.TaskUnauthorized, wantErrIs: domain.ErrUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, wantOutcome: domain.TaskUnauthorized, wantErrIs: domain.ErrUnauthorized},
		{name: "server error", status: http.StatusInternalServerError, wantOutcome: domain.TaskRejected, wantErrIs: domain.ErrRequest},
		{name: "bad request", status: http.StatusBadRequest, wantOutcome: domain.TaskRejected, wantErrIs: domain.ErrRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(`{"message":"nope"}`))
			}))
			t.Cleanup(server.Close)

			client, logs := newTestClient(server.URL, server.Client())
			result := client.CompleteTask(context.Background(), domain.TaskDailyOne, testCredential(t))

			assert.False(t, result.OK())
			assert.Equal(t, tc.wantOutcome, result.Outcome)
			assert.Equal(t, tc.status, result.StatusCode)
			assert.ErrorIs(t, result.Err, tc.wantErrIs)
			assert.ErrorIs(t, result.Err, domain.ErrRequest)
			assert.Equal(t, 1, strings.Count(logs.String(), "level=ERROR"))
			assert.Contains(t, logs.String(), "Failed to clear task 1")
		})
	}
}

func TestCompleteTaskTransportErrorReturnsFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	serverURL := server.URL
	server.Close()

	client, logs := newTestClient(serverURL, nil)

	var result domain.TaskResult
	assert.NotPanics(t, func() {
		result = client.CompleteTask(context.Background(), domain.TaskDailyTwo, testCredential(t))
	})

	assert.False(t, result.OK())
	assert.Equal(t, domain.TaskTransportError, result.Outcome)
	assert.Zero(t, result.StatusCode)
	assert.ErrorIs(t, result.Err, domain.ErrRequest)
	assert.Contains(t, logs.String(), "Failed to clear task 2")
}

func TestCompleteTaskHonoursRequestTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	client, _ := newTestClient(server.URL, server.Client())
	client.RequestTimeout = 20 * time.Millisecond

	result := client.CompleteTask(context.Background(), domain.TaskDailyOne, testCredential(t))
	assert.Equal(t, domain.TaskTransportError, result.Outcome)
	assert.ErrorIs(t, result.Err, context.DeadlineExceeded)
}

func TestCompleteTaskRejectsNonHTTPEndpoint(t *testing.T) {
	t.Parallel()

	client, logs := newTestClient("ftp://example.test", nil)
	result := client.CompleteTask(context.Background(), domain.TaskDailyOne, testCredential(t))

	assert.Equal(t, domain.TaskTransportError, result.Outcome)
	assert.ErrorContains(t, result.Err, "http or https")
	assert.Contains(t, logs.String(), "level=ERROR")
}

func TestEncodeWebAppDataMatchesURIComponentEscaping(t *testing.T) {
	t.Parallel()

	user, err := domain.NewUser([]byte(`{"id":1,"first_name":"A (b) c!*'~","last_name":"<&>+"}`))
	require.NoError(t, err)

	encoded, err := EncodeWebAppData(domain.Credential{User: user})
	require.NoError(t, err)

	assert.NotContains(t, encoded, "+")
	assert.Contains(t, encoded, "%20")
	assert.Contains(t, encoded, "(b)")
	assert.Contains(t, encoded, "!*'~")
	assert.Contains(t, encoded, "%3C%26%3E%2B")

	decoded, err := url.PathUnescape(encoded)
	require.NoError(t, err)
	assert.Equal(t, `{"user":{"id":1,"first_name":"A (b) c!*'~","last_name":"<&>+"},"chat_instance":"","chat_type":"","auth_date":"","signature":"","hash":""}`, decoded)
}
