package command

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/yourusername/ytdl-go/internal/domain"
)

// Launcher is the leading part of every yt-dlp command: either the
// executable itself or an interpreter invoking the yt_dlp module.
type Launcher []string

// Command returns a fresh copy of the launch vector to append to
func (l Launcher) Command() domain.Command {
	cmd := make(domain.Command, len(l), len(l)+24)
	copy(cmd, l)
	return cmd
}

// String returns the launch vector in display form
func (l Launcher) String() string {
	return FormatCommand(domain.Command(l))
}

// LauncherSource records how a launcher was resolved
type LauncherSource string

const (
	SourceConfigured LauncherSource = "configured"
	SourceSibling    LauncherSource = "sibling"
	SourcePath       LauncherSource = "path"
	SourceModule     LauncherSource = "module"
)

// ResolveLauncher picks the yt-dlp launch vector.
//
// Order: the configured binary, an executable next to the running
// program, the name resolved on PATH, and finally `<python> -m yt_dlp`.
func ResolveLauncher(cfg domain.DownloaderConfig, lookup domain.ExecutableLocator) (Launcher, LauncherSource) {
	if bin := strings.TrimSpace(cfg.Binary); bin != "" {
		return Launcher{bin}, SourceConfigured
	}

	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = domain.DefaultDownloaderName
	}

	if sibling := siblingExecutable(name); sibling != "" {
		return Launcher{sibling}, SourceSibling
	}

	if lookup != nil {
		if path, err := lookup.LookPath(name); err == nil && path != "" {
			return Launcher{name}, SourcePath
		}
	}

	python := strings.TrimSpace(cfg.FallbackPython)
	if python == "" {
		python = domain.DefaultFallbackPython
	}
	return Launcher{python, "-m", "yt_dlp"}, SourceModule
}

// siblingExecutable returns name in the running program's directory,
// or "" when no such regular file exists
func siblingExecutable(name string) string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	if runtime.GOOS == "windows" && filepath.Ext(name) == "" {
		name += ".exe"
	}
	candidate := filepath.Join(filepath.Dir(execPath), name)
	info, err := os.Stat(candidate)
	if err != nil || info.IsDir() {
		return ""
	}
	return candidate
}
