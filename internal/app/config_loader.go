package app

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/yourusername/ytdl-go/internal/domain"
	"github.com/yourusername/ytdl-go/internal/infrastructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment overrides, e.g. YTDL_DOWNLOAD_OUTPUT_DIR
const EnvPrefix = "YTDL"

// DotEnvFile is loaded from the working directory, if present
const DotEnvFile = ".env"

// LoadConfig loads configuration from file and environment
func LoadConfig(configPath string) (*domain.Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	config := domain.DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.ytdl")
		v.AddConfigPath("/etc/ytdl")
	}

	// Every key needs a default so AutomaticEnv can override it without a file
	setDefaults(v, config)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config = expandPaths(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadDotEnv exports the variables in path without overriding ones
// already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func setDefaults(v *viper.Viper, config *domain.Config) {
	v.SetDefault("download.output_dir", config.Download.OutputDir)
	v.SetDefault("download.output_name", config.Download.OutputName)
	v.SetDefault("download.bitrate", config.Download.Bitrate)
	v.SetDefault("downloader.binary", config.Downloader.Binary)
	v.SetDefault("downloader.name", config.Downloader.Name)
	v.SetDefault("downloader.fallback_python", config.Downloader.FallbackPython)
	v.SetDefault("transcoder.binary", config.Transcoder.Binary)
	v.SetDefault("history.enabled", config.History.Enabled)
	v.SetDefault("history.database_path", config.History.DatabasePath)
	v.SetDefault("notification.enabled", config.Notification.Enabled)
	v.SetDefault("notification.sound", config.Notification.Sound)
	v.SetDefault("notification.method", config.Notification.Method)
	v.SetDefault("server.host", config.Server.Host)
	v.SetDefault("server.port", config.Server.Port)
	v.SetDefault("logging.level", config.Logging.Level)
	v.SetDefault("logging.format", config.Logging.Format)
	v.SetDefault("logging.output_path", config.Logging.OutputPath)
	v.SetDefault("logging.command_log_dir", config.Logging.CommandLogDir)
}

// expandPaths expands environment variables in path configurations
func expandPaths(config *domain.Config) *domain.Config {
	config.Download.OutputDir = expandPath(config.Download.OutputDir)
	config.History.DatabasePath = expandPath(config.History.DatabasePath)
	config.Logging.CommandLogDir = expandPath(config.Logging.CommandLogDir)
	if config.Downloader.Binary != "" {
		config.Downloader.Binary = expandPath(config.Downloader.Binary)
	}

	if config.Logging.OutputPath != "stdout" && config.Logging.OutputPath != "stderr" {
		config.Logging.OutputPath = expandPath(config.Logging.OutputPath)
	}

	return config
}

// expandPath expands environment variables and ~ in paths.
// yt-dlp template fields such as %(id)s are left untouched.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	if strings.Contains(path, "$HOME") {
		if home, err := os.UserHomeDir(); err == nil {
			path = strings.ReplaceAll(path, "$HOME", home)
		}
	}

	return os.ExpandEnv(path)
}

// validateConfig validates the configuration
func validateConfig(config *domain.Config) error {
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Download.OutputDir == "" {
		return fmt.Errorf("download output directory not configured")
	}

	if config.Download.OutputName == "" {
		return fmt.Errorf("download output name not configured")
	}

	if config.Download.Bitrate == "" {
		config.Download.Bitrate = domain.DefaultBitrate
	}

	if config.History.Enabled && config.History.DatabasePath == "" {
		return fmt.Errorf("history database path not configured")
	}

	if !infrastructure.ValidNotificationMethod(config.Notification.Method) {
		return fmt.Errorf("unknown notification method: %q", config.Notification.Method)
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "warn"
	}

	return nil
}

// WriteConfig renders config as YAML
func WriteConfig(w io.Writer, config *domain.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}

// SaveConfig saves configuration to file
func SaveConfig(config *domain.Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	defer f.Close()

	return WriteConfig(f, config)
}
