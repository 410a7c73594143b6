package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/ytdl-go/api"
	"github.com/yourusername/ytdl-go/api/handlers"
	"github.com/yourusername/ytdl-go/internal/app"
	"github.com/yourusername/ytdl-go/internal/command"
	"github.com/yourusername/ytdl-go/internal/domain"
	"github.com/yourusername/ytdl-go/internal/infrastructure"
	"github.com/yourusername/ytdl-go/pkg/logger"
)

var (
	configPath = flag.String("config", "", "Config file (default: ./configs, $HOME/.ytdl, /etc/ytdl)")
	logLevel   = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
)

func main() {
	flag.Parse()

	config, err := app.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:      *logLevel,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting ytdl server",
		zap.String("version", handlers.Version),
		zap.String("host", config.Server.Host),
		zap.Int("port", config.Server.Port),
		zap.Bool("history", config.History.Enabled))

	// The API only reads history; it is opened even when recording is disabled
	var repo domain.RunRepository
	sqliteRepo, err := infrastructure.NewSQLiteRunRepository(config.History.DatabasePath)
	if err != nil {
		log.Warn("Run history unavailable", zap.Error(err))
	} else {
		defer sqliteRepo.Close()
		repo = sqliteRepo
	}

	lookup := infrastructure.PathLocator{}
	launcher, source := command.ResolveLauncher(config.Downloader, lookup)
	log.Info("Resolved downloader",
		zap.String("launcher", launcher.String()),
		zap.String("source", string(source)))

	router := api.SetupRouter(config, repo, lookup, launcher, log)

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
