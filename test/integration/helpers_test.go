//go:build integration

package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourusername/ytdl-go/internal/app"
	"github.com/yourusername/ytdl-go/internal/domain"
	"github.com/yourusername/ytdl-go/internal/infrastructure"
)

// fakeYtDlp answers -J with fixed metadata, writes <id>.mp4 for downloads
// and <id>.en.vtt for caption fetches. FAKE_DL_EXIT makes downloads fail.
const fakeYtDlp = `#!/bin/sh
out=""
prev=""
info=0
skip=0
for a in "$@"; do
  if [ "$prev" = "-o" ]; then out="$a"; fi
  case "$a" in
    -J) info=1 ;;
    --skip-download) skip=1 ;;
  esac
  prev="$a"
done
if [ "$info" = 1 ]; then
  printf '%s\n' '{"id":"abc123","title":"Fake Video","uploader":"Tester","duration":42,"subtitles":{"en":[{"ext":"vtt"}]},"automatic_captions":{"live_chat":[]}}'
  exit 0
fi
if [ "$skip" = 0 ] && [ -n "$FAKE_DL_EXIT" ]; then
  echo "ERROR: fake download failure" >&2
  exit "$FAKE_DL_EXIT"
fi
dir=$(dirname "$out")
if [ "$skip" = 1 ]; then
  : > "$dir/abc123.en.vtt"
else
  : > "$dir/abc123.mp4"
fi
echo "[download] 100%"
`

// fakeFFmpeg expects "-y -i <src> ... <dest>" and fails when src is missing
const fakeFFmpeg = `#!/bin/sh
for a in "$@"; do last="$a"; done
[ -f "$3" ] || exit 1
: > "$last"
`

type harness struct {
	workflows *app.Workflows
	repo      *infrastructure.SQLiteRunRepository
	config    *domain.Config
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	dir       string
}

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0755))
	return path
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stand-ins need a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	dir := t.TempDir()
	bin := filepath.Join(dir, "bin")
	require.NoError(t, os.MkdirAll(bin, 0755))

	config := domain.DefaultConfig()
	config.Download.OutputDir = filepath.Join(dir, "out")
	config.Downloader.Binary = writeScript(t, bin, "yt-dlp", fakeYtDlp)
	config.Transcoder.Binary = writeScript(t, bin, "ffmpeg", fakeFFmpeg)
	config.History.Enabled = true
	config.History.DatabasePath = filepath.Join(dir, "history.db")
	config.Logging.CommandLogDir = filepath.Join(dir, "logs")

	repo, err := infrastructure.NewSQLiteRunRepository(config.History.DatabasePath)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	log := zap.NewNop()
	runner := infrastructure.NewExecRunner(log, infrastructure.NewCommandLog(config.Logging.CommandLogDir))

	var stdout, stderr bytes.Buffer
	w := app.NewWorkflows(config, runner, infrastructure.PathLocator{}, log).
		WithHistory(repo).
		WithOutput(&stdout, &stderr)

	return &harness{
		workflows: w,
		repo:      repo,
		config:    config,
		stdout:    &stdout,
		stderr:    &stderr,
		dir:       dir,
	}
}
