//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/ytdl-go/internal/app"
	"github.com/yourusername/ytdl-go/internal/command"
	"github.com/yourusername/ytdl-go/internal/domain"
	"github.com/yourusername/ytdl-go/internal/infrastructure"
)

func TestPair_EndToEnd(t *testing.T) {
	h := newHarness(t)
	out := h.config.Download.OutputDir

	summary, code, err := h.workflows.Pair(context.Background(), app.PairRequest{
		URL:          "https://www.youtube.com/watch?v=abc123",
		JSON:         true,
		WriteSummary: true,
	})
	require.NoError(t, err)
	require.Equal(t, 0, code, h.stderr.String())

	assert.FileExists(t, filepath.Join(out, "abc123.mp4"))
	assert.FileExists(t, filepath.Join(out, "abc123.opus"))
	assert.Equal(t, []string{filepath.Join(out, "abc123.en.vtt")}, summary.Captions)
	require.NotNil(t, summary.CaptionsLang)
	assert.Equal(t, "en", *summary.CaptionsLang)

	// stdout carries only the summary line; tool output went to stderr
	var emitted domain.PairSummary
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &emitted))
	assert.Equal(t, summary, emitted)
	assert.Contains(t, h.stderr.String(), "[download] 100%")

	data, err := os.ReadFile(app.SummaryFilePath(out, "abc123"))
	require.NoError(t, err)
	var sidecar domain.PairSummary
	require.NoError(t, json.Unmarshal(data, &sidecar))
	assert.Equal(t, summary, sidecar)

	runs, err := h.repo.FindByWorkflow(domain.WorkflowPair, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "abc123", runs[0].VideoID)
	assert.Equal(t, 0, runs[0].ExitCode)
}

func TestPair_DownloadFailureIsFatal(t *testing.T) {
	h := newHarness(t)
	t.Setenv("FAKE_DL_EXIT", "4")

	_, code, err := h.workflows.Pair(context.Background(), app.PairRequest{URL: "https://youtu.be/abc123", JSON: true})
	require.NoError(t, err)

	assert.Equal(t, 4, code)
	assert.Empty(t, h.stdout.String())
	assert.Contains(t, h.stderr.String(), "fake download failure")
	assert.NoFileExists(t, filepath.Join(h.config.Download.OutputDir, "abc123.opus"))

	logData, err := os.ReadFile(infrastructure.NewCommandLog(h.config.Logging.CommandLogDir).Path(time.Now()))
	require.NoError(t, err)
	assert.NotContains(t, string(logData), "libopus")
	assert.Contains(t, string(logData), "exit code 4")
}

func TestDownload_EndToEnd(t *testing.T) {
	h := newHarness(t)

	summary, err := h.workflows.Download(context.Background(), app.DownloadRequest{
		URL:     "https://youtu.be/abc123",
		Verbose: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, summary.ExitCode)
	assert.True(t, strings.HasPrefix(h.stderr.String(), "$ "+command.ShellEscape(h.config.Downloader.Binary)))
	assert.Contains(t, h.stdout.String(), "[download] 100%")

	count, err := h.repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestInfo_HumanSummary(t *testing.T) {
	h := newHarness(t)

	code := h.workflows.Info(context.Background(), app.InfoRequest{URL: "https://youtu.be/abc123"})

	assert.Equal(t, 0, code)
	assert.Equal(t,
		"title: Fake Video\nid: abc123\nuploader: Tester\nduration_s: 42\nurl: https://youtu.be/abc123\n",
		h.stdout.String())
}

func TestDoctor_WithStandIns(t *testing.T) {
	h := newHarness(t)

	report, code := h.workflows.Doctor(app.DoctorRequest{JSON: true})

	assert.Equal(t, 0, code)
	assert.True(t, report.DownloaderPresent)
	assert.True(t, report.TranscoderPresent)
	assert.True(t, report.OutputDirWritable)
}
