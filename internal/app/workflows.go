package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/yourusername/ytdl-go/internal/command"
	"github.com/yourusername/ytdl-go/internal/doctor"
	"github.com/yourusername/ytdl-go/internal/domain"
	"go.uber.org/zap"
)

// Workflows runs the user-facing operations on top of the command
// builders and an external process runner
type Workflows struct {
	config   *domain.Config
	runner   domain.ProcessRunner
	lookup   domain.ExecutableLocator
	launcher command.Launcher
	history  domain.RunRepository
	notifier domain.Notifier
	logger   *zap.Logger
	stdout   io.Writer
	stderr   io.Writer
}

// NewWorkflows creates the workflow layer. The downloader launch vector
// is resolved once, here.
func NewWorkflows(
	config *domain.Config,
	runner domain.ProcessRunner,
	lookup domain.ExecutableLocator,
	logger *zap.Logger,
) *Workflows {
	if logger == nil {
		logger = zap.NewNop()
	}

	launcher, source := command.ResolveLauncher(config.Downloader, lookup)
	logger.Debug("Resolved downloader",
		zap.String("launcher", launcher.String()),
		zap.String("source", string(source)))

	return &Workflows{
		config:   config,
		runner:   runner,
		lookup:   lookup,
		launcher: launcher,
		logger:   logger,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
}

// WithHistory records every run in repo
func (w *Workflows) WithHistory(repo domain.RunRepository) *Workflows {
	w.history = repo
	return w
}

// WithNotifier sends a completion event for every run
func (w *Workflows) WithNotifier(notifier domain.Notifier) *Workflows {
	w.notifier = notifier
	return w
}

// WithOutput replaces the writers used for summaries and forwarded output
func (w *Workflows) WithOutput(stdout, stderr io.Writer) *Workflows {
	w.stdout = stdout
	w.stderr = stderr
	return w
}

// Launcher returns the resolved downloader launch vector
func (w *Workflows) Launcher() command.Launcher {
	return w.launcher
}

// DownloadRequest describes a single download
type DownloadRequest struct {
	URL             string
	OutDir          string // empty uses the configured output directory
	AudioOnly       bool
	IncludePlaylist bool
	ExtraArgs       []string
	Verbose         bool
	JSON            bool // emit a DownloadSummary line on stdout
}

// Download runs one yt-dlp download and reports its exit code
func (w *Workflows) Download(ctx context.Context, req DownloadRequest) (domain.DownloadSummary, error) {
	outDir := w.outDir(req.OutDir)
	summary := domain.DownloadSummary{URL: req.URL, OutDir: outDir, ExitCode: domain.ExitUsage}

	workflow := domain.WorkflowDownload
	if req.AudioOnly {
		workflow = domain.WorkflowAudio
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return summary, fmt.Errorf("failed to create output directory: %w", err)
	}

	cmd := command.BuildDownload(w.launcher, req.URL, command.DownloadOptions{
		OutputTemplate:  w.config.Download.OutputTemplate(outDir),
		AudioOnly:       req.AudioOnly,
		IncludePlaylist: req.IncludePlaylist,
		ExtraArgs:       req.ExtraArgs,
	})

	w.logger.Info("Starting download",
		zap.String("url", req.URL),
		zap.String("workflow", string(workflow)),
		zap.String("outdir", outDir))

	result := w.run(ctx, cmd, req.Verbose, req.JSON)
	summary.ExitCode = result.ExitCode

	if req.JSON {
		if err := w.emitJSON(summary); err != nil {
			return summary, err
		}
	}

	run := domain.NewRunRecord(workflow, req.URL, summary.ExitCode)
	run.OutDir = outDir
	run.Command = formatCommands([]domain.ExecutionResult{result})
	if err := run.SetSummary(summary); err != nil {
		w.logger.Warn("Failed to encode summary", zap.Error(err))
	}
	w.finish(run)

	return summary, nil
}

// Audio is Download with audio extraction enabled
func (w *Workflows) Audio(ctx context.Context, req DownloadRequest) (domain.DownloadSummary, error) {
	req.AudioOnly = true
	return w.Download(ctx, req)
}

// InfoRequest describes a metadata lookup
type InfoRequest struct {
	URL     string
	JSON    bool // print the raw metadata instead of a short summary
	Verbose bool
}

// Info fetches metadata without downloading and returns the exit code
func (w *Workflows) Info(ctx context.Context, req InfoRequest) int {
	cmd := command.BuildInfo(w.launcher, req.URL)
	out, code := w.capture(ctx, cmd, req.Verbose)

	run := domain.NewRunRecord(domain.WorkflowInfo, req.URL, code)
	run.Command = command.FormatCommand(cmd)
	defer w.finish(run)

	if code != domain.ExitOK {
		w.stderr.Write(out.Stderr)
		return code
	}

	if req.JSON {
		w.stdout.Write(out.Stdout)
		return code
	}

	md, err := domain.ParseVideoMetadata(out.Stdout)
	if err != nil {
		w.logger.Debug("Metadata is not a JSON object", zap.Error(err))
		w.stdout.Write(out.Stdout)
		return code
	}
	run.VideoID = md.ID

	pageURL := md.WebpageURL
	if pageURL == "" {
		pageURL = req.URL
	}
	fmt.Fprintf(w.stdout, "title: %s\nid: %s\nuploader: %s\nduration_s: %s\nurl: %s\n",
		md.Title, md.ID, md.Uploader, formatDuration(md.Duration), pageURL)

	return code
}

// DoctorRequest describes an environment check
type DoctorRequest struct {
	OutDir string
	JSON   bool
}

// Doctor checks the environment and prints the report. The exit code is
// ExitOutputNotWritable when the output directory cannot be written,
// otherwise ExitOK even if a tool is missing.
func (w *Workflows) Doctor(req DoctorRequest) (domain.DoctorReport, int) {
	outDir := w.outDir(req.OutDir)
	report := doctor.Check(outDir, w.downloaderName(), w.transcoder(), w.lookup)

	if err := doctor.Print(w.stdout, report, req.JSON); err != nil {
		w.logger.Warn("Failed to print doctor report", zap.Error(err))
	}

	code := domain.ExitOK
	if !report.OutputDirWritable {
		code = domain.ExitOutputNotWritable
	}

	run := domain.NewRunRecord(domain.WorkflowDoctor, "", code)
	run.OutDir = outDir
	if err := run.SetSummary(report); err != nil {
		w.logger.Warn("Failed to encode summary", zap.Error(err))
	}
	w.finish(run)

	return report, code
}

// run executes cmd with output forwarded. When stdout is reserved for a
// JSON summary the tool's stdout goes to stderr instead.
func (w *Workflows) run(ctx context.Context, cmd domain.Command, verbose, quietStdout bool) domain.ExecutionResult {
	w.echo(cmd, verbose)

	stdout := w.stdout
	if quietStdout {
		stdout = w.stderr
	}

	result := domain.ExecutionResult{Command: cmd}
	code, err := w.runner.Run(ctx, cmd, stdout, w.stderr)
	if err != nil {
		w.logger.Error("Command did not start",
			zap.String("command", command.FormatCommand(cmd)),
			zap.Error(err))
		fmt.Fprintf(w.stderr, "%s: %v\n", cmd.Program(), err)
		code = domain.ExitNotFound
	}
	result.ExitCode = code
	return result
}

// capture executes cmd and buffers its output
func (w *Workflows) capture(ctx context.Context, cmd domain.Command, verbose bool) (domain.CapturedOutput, int) {
	w.echo(cmd, verbose)

	out, err := w.runner.Capture(ctx, cmd)
	if err != nil {
		w.logger.Error("Command did not start",
			zap.String("command", command.FormatCommand(cmd)),
			zap.Error(err))
		out.Stderr = append(out.Stderr, []byte(fmt.Sprintf("%s: %v\n", cmd.Program(), err))...)
		out.ExitCode = domain.ExitNotFound
	}
	return out, out.ExitCode
}

func (w *Workflows) echo(cmd domain.Command, verbose bool) {
	if verbose {
		fmt.Fprintln(w.stderr, "$ "+command.FormatCommand(cmd))
	}
}

func (w *Workflows) emitJSON(v interface{}) error {
	if err := json.NewEncoder(w.stdout).Encode(v); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// finish records the run and sends the completion notification.
// Neither can change the exit code.
func (w *Workflows) finish(run *domain.RunRecord) {
	if w.history != nil {
		w.record(run)
	}
	if w.notifier != nil {
		w.notifier.NotifyWorkflowFinished(run.Workflow, run.URL, run.ExitCode)
	}
}

func (w *Workflows) record(run *domain.RunRecord) {
	if err := w.history.Create(run); err != nil {
		w.logger.Warn("Failed to record run",
			zap.String("workflow", string(run.Workflow)),
			zap.Error(err))
	}
}

func (w *Workflows) outDir(override string) string {
	if override != "" {
		return override
	}
	if w.config.Download.OutputDir != "" {
		return w.config.Download.OutputDir
	}
	return domain.DefaultOutputDir
}

func (w *Workflows) bitrate(override string) string {
	if override != "" {
		return override
	}
	return w.config.Download.Bitrate
}

func (w *Workflows) transcoder() string {
	if w.config.Transcoder.Binary != "" {
		return w.config.Transcoder.Binary
	}
	return domain.DefaultTranscoder
}

func (w *Workflows) downloaderName() string {
	if w.config.Downloader.Binary != "" {
		return w.config.Downloader.Binary
	}
	if w.config.Downloader.Name != "" {
		return w.config.Downloader.Name
	}
	return domain.DefaultDownloaderName
}

func formatDuration(d *float64) string {
	if d == nil {
		return ""
	}
	return strconv.FormatFloat(*d, 'f', -1, 64)
}
