package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yourusername/ytdl-go/internal/captions"
	"github.com/yourusername/ytdl-go/internal/command"
	"github.com/yourusername/ytdl-go/internal/domain"
	"go.uber.org/zap"
)

// Pair step names
const (
	StepMetadata       = "metadata"
	StepSelectCaptions = "select-captions"
	StepDownload       = "download"
	StepExtractAudio   = "extract-audio"
	StepCaptions       = "captions"
)

// SummaryFileSuffix is appended to the video id for the summary sidecar
const SummaryFileSuffix = ".pair.json"

// PairRequest describes a video + opus + captions run
type PairRequest struct {
	URL          string
	OutDir       string
	Bitrate      string // empty uses the configured bitrate
	Verbose      bool
	JSON         bool
	WriteSummary bool // write <outdir>/<id>.pair.json
}

// pairState is shared between the steps of one pair run
type pairState struct {
	req      PairRequest
	outDir   string
	metadata *domain.VideoMetadata
	lang     string
	hasLang  bool
	mp4      string
	opus     string
	files    []string
	executed []domain.ExecutionResult
}

// Pair downloads a video by id, extracts an opus track from it and
// fetches captions in the preferred language. A failed metadata lookup
// or download stops the run; extraction and caption failures are
// reported through the aggregate exit code. The summary is only
// assembled when every step ran.
func (w *Workflows) Pair(ctx context.Context, req PairRequest) (domain.PairSummary, int, error) {
	st := &pairState{req: req, outDir: w.outDir(req.OutDir)}

	if err := os.MkdirAll(st.outDir, 0755); err != nil {
		return domain.PairSummary{}, domain.ExitUsage, fmt.Errorf("failed to create output directory: %w", err)
	}

	logger := w.logger.With(zap.String("url", req.URL))
	pipeline := NewPipeline(logger,
		Step{Name: StepMetadata, Run: func(ctx context.Context) StepOutcome { return w.pairMetadata(ctx, st) }},
		Step{Name: StepSelectCaptions, Run: func(ctx context.Context) StepOutcome { return w.pairSelectCaptions(st) }},
		Step{Name: StepDownload, Run: func(ctx context.Context) StepOutcome { return w.pairDownload(ctx, st) }},
		Step{Name: StepExtractAudio, Run: func(ctx context.Context) StepOutcome { return w.pairExtract(ctx, st) }},
		Step{Name: StepCaptions, Run: func(ctx context.Context) StepOutcome { return w.pairCaptions(ctx, st) }},
	)

	result := pipeline.Run(ctx)

	run := domain.NewRunRecord(domain.WorkflowPair, req.URL, result.ExitCode)
	run.OutDir = st.outDir
	run.Command = formatCommands(st.executed)
	if st.metadata != nil {
		run.VideoID = st.metadata.ID
	}

	if result.Aborted() {
		logger.Warn("Pair stopped",
			zap.String("step", result.FatalStep),
			zap.Int("exit_code", result.ExitCode))
		w.finish(run)
		return domain.PairSummary{}, result.ExitCode, nil
	}

	summary := domain.PairSummary{
		URL:      req.URL,
		OutDir:   st.outDir,
		ID:       st.metadata.ID,
		MP4Path:  st.mp4,
		OpusPath: st.opus,
		Captions: st.files,
		ExitCode: result.FirstFailure(StepExtractAudio, StepCaptions),
	}
	if st.hasLang {
		lang := st.lang
		summary.CaptionsLang = &lang
	}
	if summary.Captions == nil {
		summary.Captions = []string{}
	}

	run.ExitCode = summary.ExitCode
	if err := run.SetSummary(summary); err != nil {
		logger.Warn("Failed to encode summary", zap.Error(err))
	}

	var emitErr error
	if req.JSON {
		emitErr = w.emitJSON(summary)
	} else {
		w.printPairSummary(summary)
	}

	if req.WriteSummary {
		if err := writeSummaryFile(st.outDir, summary); err != nil {
			logger.Warn("Failed to write summary file", zap.Error(err))
		}
	}

	logger.Info("Pair finished",
		zap.String("id", summary.ID),
		zap.Int("exit_code", summary.ExitCode))
	w.finish(run)

	return summary, summary.ExitCode, emitErr
}

func (w *Workflows) pairMetadata(ctx context.Context, st *pairState) StepOutcome {
	cmd := command.BuildInfo(w.launcher, st.req.URL)
	out, code := w.capture(ctx, cmd, st.req.Verbose)
	st.executed = append(st.executed, domain.ExecutionResult{Command: cmd, ExitCode: code})
	if code != domain.ExitOK {
		w.stderr.Write(out.Stderr)
		return Abort(code)
	}

	md, err := domain.ParseVideoMetadata(out.Stdout)
	if err != nil || md.ID == "" {
		if err == nil {
			err = fmt.Errorf("metadata has no id")
		}
		w.logger.Error("Could not resolve video id", zap.Error(err))
		w.stderr.Write(out.Stdout)
		w.stderr.Write(out.Stderr)
		fmt.Fprintln(w.stderr, "error: could not parse metadata or resolve a video id")
		return Abort(domain.ExitMetadata)
	}

	st.metadata = md
	st.mp4 = filepath.Join(st.outDir, md.ID+".mp4")
	st.opus = filepath.Join(st.outDir, md.ID+".opus")
	return Continue(domain.ExitOK)
}

func (w *Workflows) pairSelectCaptions(st *pairState) StepOutcome {
	st.lang, st.hasLang = captions.ChooseLanguage(st.metadata)
	if !st.hasLang {
		w.logger.Debug("No caption language available", zap.String("id", st.metadata.ID))
		return Skip()
	}
	w.logger.Debug("Selected caption language",
		zap.String("id", st.metadata.ID),
		zap.String("lang", st.lang))
	return Continue(domain.ExitOK)
}

func (w *Workflows) pairDownload(ctx context.Context, st *pairState) StepOutcome {
	cmd := command.BuildDownload(w.launcher, st.req.URL, command.DownloadOptions{
		OutputTemplate:  filepath.Join(st.outDir, domain.DefaultIDOutputName),
		IncludePlaylist: false,
	})
	result := w.run(ctx, cmd, st.req.Verbose, st.req.JSON)
	st.executed = append(st.executed, result)
	if !result.Succeeded() {
		return Abort(result.ExitCode)
	}
	return Continue(domain.ExitOK)
}

func (w *Workflows) pairExtract(ctx context.Context, st *pairState) StepOutcome {
	cmd := command.BuildAudioExtract(w.transcoder(), st.mp4, st.opus, w.bitrate(st.req.Bitrate))
	result := w.run(ctx, cmd, st.req.Verbose, st.req.JSON)
	st.executed = append(st.executed, result)
	return Continue(result.ExitCode)
}

func (w *Workflows) pairCaptions(ctx context.Context, st *pairState) StepOutcome {
	if !st.hasLang {
		st.files = []string{}
		return Skip()
	}

	cmd := command.BuildCaptions(w.launcher, st.req.URL, filepath.Join(st.outDir, domain.DefaultIDOutputName), st.lang)
	result := w.run(ctx, cmd, st.req.Verbose, st.req.JSON)
	st.executed = append(st.executed, result)

	files, err := captions.DiscoverFiles(st.outDir, st.metadata.ID)
	if err != nil {
		w.logger.Warn("Failed to list caption files", zap.Error(err))
		files = []string{}
	}
	st.files = files

	return Continue(result.ExitCode)
}

func (w *Workflows) printPairSummary(s domain.PairSummary) {
	lang := "none"
	if s.CaptionsLang != nil {
		lang = *s.CaptionsLang
	}
	fmt.Fprintf(w.stdout, "id: %s\nmp4: %s\nopus: %s\ncaptions_lang: %s\n", s.ID, s.MP4Path, s.OpusPath, lang)
	for _, f := range s.Captions {
		fmt.Fprintf(w.stdout, "caption: %s\n", f)
	}
	fmt.Fprintf(w.stdout, "exit_code: %d\n", s.ExitCode)
}

// SummaryFilePath returns where the pair summary sidecar for id is written
func SummaryFilePath(outDir, id string) string {
	return filepath.Join(outDir, id+SummaryFileSuffix)
}

func writeSummaryFile(outDir string, summary domain.PairSummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	data = append(data, '\n')
	return writeFileAtomic(SummaryFilePath(outDir, summary.ID), data, 0644)
}

// formatCommands renders one shell line per executed command. Failed
// commands are suffixed with their exit code.
func formatCommands(executed []domain.ExecutionResult) string {
	lines := make([]string, 0, len(executed))
	for _, r := range executed {
		line := command.FormatCommand(r.Command)
		if !r.Succeeded() {
			line = fmt.Sprintf("%s  # exit %d", line, r.ExitCode)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
