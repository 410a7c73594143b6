package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yourusername/ytdl-go/internal/app"
	"github.com/yourusername/ytdl-go/internal/domain"
	"github.com/yourusername/ytdl-go/internal/infrastructure"
	"github.com/yourusername/ytdl-go/pkg/logger"
)

var (
	configPath string
	logLevel   string
	verbose    bool
	rootCmd    = &cobra.Command{
		Use:   "ytdl",
		Short: "ytdl - yt-dlp and ffmpeg workflows",
		Long: `A command-line front end for yt-dlp and ffmpeg: download videos or audio,
fetch metadata, build a video + opus + captions set, and check the environment.`,
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ./configs, $HOME/.ytdl, /etc/ytdl)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print executed commands to stderr")

	rootCmd.AddCommand(dlCmd)
	rootCmd.AddCommand(audioCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(pairCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serverCmd)
}

// runtimeEnv is everything a workflow command needs
type runtimeEnv struct {
	config    *domain.Config
	log       *zap.Logger
	workflows *app.Workflows
	closers   []func() error
}

func (e *runtimeEnv) Close() {
	for _, closeFn := range e.closers {
		closeFn()
	}
	e.log.Sync()
}

// loadConfig loads the config and applies the global flag overrides
func loadConfig() *domain.Config {
	config, err := app.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(domain.ExitUsage)
	}
	if logLevel != "" {
		config.Logging.Level = logLevel
	}
	return config
}

// setup builds the workflow layer from configuration
func setup() *runtimeEnv {
	config := loadConfig()

	log, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger, logging to stderr: %v\n", err)
		log = logger.NewDefault()
	}

	env := &runtimeEnv{config: config, log: log}

	var commandLog *infrastructure.CommandLog
	if config.Logging.CommandLogDir != "" {
		commandLog = infrastructure.NewCommandLog(config.Logging.CommandLogDir)
	}

	runner := infrastructure.NewExecRunner(log, commandLog)
	env.workflows = app.NewWorkflows(config, runner, infrastructure.PathLocator{}, log)

	if config.History.Enabled {
		repo, err := infrastructure.NewSQLiteRunRepository(config.History.DatabasePath)
		if err != nil {
			log.Warn("Run history unavailable", zap.Error(err))
		} else {
			env.workflows.WithHistory(repo)
			env.closers = append(env.closers, repo.Close)
		}
	}

	if config.Notification.Enabled {
		env.workflows.WithNotifier(infrastructure.NewNotificationService(&config.Notification, log))
	}

	return env
}

// signalContext is cancelled on SIGINT or SIGTERM, which stops the
// running child process
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(domain.ExitUsage)
	}
}
