package infrastructure

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yourusername/ytdl-go/internal/domain"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecRunner_Run(t *testing.T) {
	requireShell(t)
	runner := NewExecRunner(nil, nil)

	var stdout, stderr bytes.Buffer
	code, err := runner.Run(context.Background(), domain.Command{"sh", "-c", "echo out; echo err >&2; exit 3"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Equal(t, 3, code)
	assert.Equal(t, "out\n", stdout.String())
	assert.Equal(t, "err\n", stderr.String())
}

func TestExecRunner_Capture(t *testing.T) {
	requireShell(t)
	runner := NewExecRunner(nil, nil)

	out, err := runner.Capture(context.Background(), domain.Command{"sh", "-c", `printf '{"id":"abc"}'; echo warn >&2`})

	require.NoError(t, err)
	assert.Equal(t, 0, out.ExitCode)
	assert.Equal(t, `{"id":"abc"}`, string(out.Stdout))
	assert.Equal(t, "warn\n", string(out.Stderr))
}

func TestExecRunner_KilledOnCancel(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	code, err := NewExecRunner(nil, nil).Run(ctx, domain.Command{"sleep", "10"}, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, code)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestExecRunner_MissingExecutable(t *testing.T) {
	runner := NewExecRunner(nil, nil)

	code, err := runner.Run(context.Background(), domain.Command{"definitely-not-a-real-binary-ytdl"}, nil, nil)

	assert.Error(t, err)
	assert.Equal(t, domain.ExitNotFound, code)
}

func TestExecRunner_EmptyCommand(t *testing.T) {
	runner := NewExecRunner(nil, nil)

	_, err := runner.Run(context.Background(), nil, nil, nil)
	assert.Error(t, err)

	_, err = runner.Capture(context.Background(), domain.Command{})
	assert.Error(t, err)
}

func TestExecRunner_WritesCommandLog(t *testing.T) {
	requireShell(t)
	logsDir := t.TempDir()
	commandLog := NewCommandLog(logsDir)
	runner := NewExecRunner(nil, commandLog)

	_, err := runner.Capture(context.Background(), domain.Command{"sh", "-c", "echo boom >&2; exit 1"})
	require.NoError(t, err)

	entries, err := os.ReadDir(logsDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "commands-"))

	data, err := os.ReadFile(commandLog.Path(commandLog.now()))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "$ sh -c 'echo boom >&2; exit 1'")
	assert.Contains(t, content, "boom\n")
	assert.Contains(t, content, "FAILED: exit code 1")
	assert.Contains(t, content, "=== END ===")
}

func TestPathLocator(t *testing.T) {
	requireShell(t)
	path, err := PathLocator{}.LookPath("sh")
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	_, err = PathLocator{}.LookPath("definitely-not-a-real-binary-ytdl")
	assert.Error(t, err)
}
