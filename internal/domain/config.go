package domain

import "path/filepath"

// Default values shared by the CLI, the builders and the server
const (
	DefaultOutputDir      = "Downloads"
	DefaultOutputName     = "%(title)s [%(id)s].%(ext)s"
	DefaultIDOutputName   = "%(id)s.%(ext)s"
	DefaultBitrate        = "96k"
	DefaultDownloaderName = "yt-dlp"
	DefaultTranscoder     = "ffmpeg"
	DefaultFallbackPython = "python3"
)

// Config represents the application configuration
type Config struct {
	Download     DownloadConfig     `mapstructure:"download" yaml:"download"`
	Downloader   DownloaderConfig   `mapstructure:"downloader" yaml:"downloader"`
	Transcoder   TranscoderConfig   `mapstructure:"transcoder" yaml:"transcoder"`
	History      HistoryConfig      `mapstructure:"history" yaml:"history"`
	Notification NotificationConfig `mapstructure:"notification" yaml:"notification"`
	Server       ServerConfig       `mapstructure:"server" yaml:"server"`
	Logging      LoggingConfig      `mapstructure:"logging" yaml:"logging"`
}

// DownloadConfig contains output-related configuration
type DownloadConfig struct {
	OutputDir  string `mapstructure:"output_dir" yaml:"output_dir"`
	OutputName string `mapstructure:"output_name" yaml:"output_name"` // yt-dlp output template, relative to OutputDir
	Bitrate    string `mapstructure:"bitrate" yaml:"bitrate"`         // opus bitrate for audio extraction
}

// OutputTemplate joins dir and the output name template. An empty dir
// uses OutputDir and an empty OutputName uses DefaultOutputName.
func (c DownloadConfig) OutputTemplate(dir string) string {
	if dir == "" {
		dir = c.OutputDir
	}
	name := c.OutputName
	if name == "" {
		name = DefaultOutputName
	}
	return filepath.Join(dir, name)
}

// DownloaderConfig controls how yt-dlp is launched
type DownloaderConfig struct {
	Binary         string `mapstructure:"binary" yaml:"binary"`                   // explicit path; skips resolution
	Name           string `mapstructure:"name" yaml:"name"`                       // executable name searched for
	FallbackPython string `mapstructure:"fallback_python" yaml:"fallback_python"` // interpreter for `-m yt_dlp`
}

// TranscoderConfig controls how ffmpeg is launched
type TranscoderConfig struct {
	Binary string `mapstructure:"binary" yaml:"binary"`
}

// HistoryConfig controls the run history database
type HistoryConfig struct {
	Enabled      bool   `mapstructure:"enabled" yaml:"enabled"`
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"`
}

// NotificationConfig contains notification-related configuration
type NotificationConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Sound   bool   `mapstructure:"sound" yaml:"sound"`
	Method  string `mapstructure:"method" yaml:"method"` // osascript, notify-send
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level         string `mapstructure:"level" yaml:"level"`                     // debug, info, warn, error
	Format        string `mapstructure:"format" yaml:"format"`                   // json, console
	OutputPath    string `mapstructure:"output_path" yaml:"output_path"`         // stdout, stderr, or file path
	CommandLogDir string `mapstructure:"command_log_dir" yaml:"command_log_dir"` // daily command logs; empty disables
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Download: DownloadConfig{
			OutputDir:  DefaultOutputDir,
			OutputName: DefaultOutputName,
			Bitrate:    DefaultBitrate,
		},
		Downloader: DownloaderConfig{
			Binary:         "",
			Name:           DefaultDownloaderName,
			FallbackPython: DefaultFallbackPython,
		},
		Transcoder: TranscoderConfig{
			Binary: DefaultTranscoder,
		},
		History: HistoryConfig{
			Enabled:      false,
			DatabasePath: "$HOME/.ytdl/history.db",
		},
		Notification: NotificationConfig{
			Enabled: false,
			Sound:   false,
			Method:  "notify-send",
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: 8089,
		},
		Logging: LoggingConfig{
			Level:         "warn",
			Format:        "console",
			OutputPath:    "stderr",
			CommandLogDir: "",
		},
	}
}
