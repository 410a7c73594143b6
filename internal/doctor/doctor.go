// Package doctor reports whether the environment can run the download
// workflows: yt-dlp and ffmpeg resolvable on PATH, and a writable
// output directory.
//
// Checks never fail; every problem is folded into the report.
package doctor

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/yourusername/ytdl-go/internal/domain"
)

// ProbeFileName is created and removed inside the output directory
const ProbeFileName = ".write_test"

// Check builds a fresh report. Executables are looked up, not invoked.
// The output directory is created (with parents) if absent.
func Check(outputDir, downloader, transcoder string, lookup domain.ExecutableLocator) domain.DoctorReport {
	return domain.DoctorReport{
		InterpreterVersion: runtime.Version(),
		DownloaderPresent:  present(lookup, downloader),
		TranscoderPresent:  present(lookup, transcoder),
		OutputDirWritable:  ProbeWritable(outputDir) == nil,
	}
}

func present(lookup domain.ExecutableLocator, name string) bool {
	if lookup == nil || name == "" {
		return false
	}
	_, err := lookup.LookPath(name)
	return err == nil
}

// ProbeWritable creates dir if needed, then writes and removes a probe file
func ProbeWritable(dir string) error {
	if dir == "" {
		return fmt.Errorf("output directory not configured")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	probe := filepath.Join(dir, ProbeFileName)
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return fmt.Errorf("failed to write probe file: %w", err)
	}
	if err := os.Remove(probe); err != nil {
		return fmt.Errorf("failed to remove probe file: %w", err)
	}
	return nil
}

// Print writes the report as one JSON line, or as a bullet list
func Print(w io.Writer, report domain.DoctorReport, asJSON bool) error {
	if asJSON {
		data, err := json.Marshal(report)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	lines := []struct {
		key   string
		value interface{}
	}{
		{"interpreter_version", report.InterpreterVersion},
		{"downloader_present", report.DownloaderPresent},
		{"transcoder_present", report.TranscoderPresent},
		{"output_dir_writable", report.OutputDirWritable},
	}
	if _, err := fmt.Fprintln(w, "doctor:"); err != nil {
		return err
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "- %s: %v\n", l.key, l.value); err != nil {
			return err
		}
	}
	return nil
}
