package e2e

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	dir := t.TempDir()
	binaryPath := buildBinary(t)
	require.NoError(t, writeAccountsFixture(dir))

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	stdout, stderr, err := runRebor(t, binaryPath, dir, nil, "accounts")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Account ID: 42")

	cmd := exec.Command(binaryPath)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"REBOR_API_ENDPOINT="+server.URL+"/api/task/task",
		"REBOR_DELAY_SHORT=10ms",
	)
	var loopOut, loopErr bytes.Buffer
	cmd.Stdout = &loopOut
	cmd.Stderr = &loopErr
	require.NoError(t, cmd.Start())

	require.Eventually(t, func() bool { return requests.Load() >= 2 }, 10*time.Second, 10*time.Millisecond)
	require.NoError(t, cmd.Process.Signal(syscall.SIGINT))
	require.NoError(t, cmd.Wait(), "stderr: %s", loopErr.String())

	assert.Contains(t, loopOut.String(), "Rebor Bot - Balance Injector")
	assert.Contains(t, loopErr.String(), "Task cleared successfully.")
	assert.Contains(t, loopErr.String(), "Stopping task loop")
}

func TestSmokeEmptyAccountsFile(t *testing.T) {
	dir := t.TempDir()
	binaryPath := buildBinary(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.txt"), nil, 0o600))

	_, stderr, err := runRebor(t, binaryPath, dir, nil)
	require.NoError(t, err)
	assert.Contains(t, stderr, "No accounts found!")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "rebor-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/rebor")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build rebor binary: %s", string(output))
	return binaryPath
}

func runRebor(t *testing.T, binaryPath, dir string, env []string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writeAccountsFixture(dir string) error {
	line := "info=" + url.QueryEscape(`{"id":42,"first_name":"Ann"}`) +
		"&chat_instance=-8123&chat_type=sender&auth_date=1700000000&hash=deadbeef"

	return os.WriteFile(filepath.Join(dir, "data.txt"), []byte(line+"\n"), 0o644)
}
