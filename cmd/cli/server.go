package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/ytdl-go/internal/domain"
)

const (
	serverBinaryName   = "ytdl-server"
	serverStartTimeout = 10 * time.Second
	serverPollInterval = 200 * time.Millisecond
)

var serverURL string

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Manage the ytdl-server HTTP API",
}

var serverStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the API server is running",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		url := resolveServerURL()
		health, err := fetchHealth(url)
		if err != nil {
			fmt.Printf("Server not running at %s\n", url)
			os.Exit(domain.ExitUsage)
		}

		fmt.Printf("Server running at %s\n", url)
		fmt.Printf("  Status:     %s\n", health.Status)
		fmt.Printf("  Version:    %s\n", health.Version)
		fmt.Printf("  yt-dlp:     %v\n", health.Doctor.DownloaderPresent)
		fmt.Printf("  ffmpeg:     %v\n", health.Doctor.TranscoderPresent)
		fmt.Printf("  Output dir: %v\n", health.Doctor.OutputDirWritable)
	},
}

var serverStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the API server in the background if it is not running",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		url := resolveServerURL()
		if err := ensureServerRunning(url); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(domain.ExitUsage)
		}
	},
}

type healthResponse struct {
	Status  string              `json:"status"`
	Version string              `json:"version"`
	Doctor  domain.DoctorReport `json:"doctor"`
}

func resolveServerURL() string {
	if serverURL != "" {
		return serverURL
	}
	config := loadConfig()
	return fmt.Sprintf("http://%s:%d", config.Server.Host, config.Server.Port)
}

// fetchHealth queries the server's health endpoint
func fetchHealth(url string) (*healthResponse, error) {
	client := &http.Client{Timeout: 1 * time.Second}
	resp, err := client.Get(url + "/health")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("health check returned %d", resp.StatusCode)
	}

	var health healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("invalid health response: %w", err)
	}
	return &health, nil
}

// isServerRunning checks if the server is responding to health checks
func isServerRunning(url string) bool {
	_, err := fetchHealth(url)
	return err == nil
}

// findServerBinary locates the ytdl-server binary
func findServerBinary() (string, error) {
	if execPath, err := os.Executable(); err == nil {
		serverPath := filepath.Join(filepath.Dir(execPath), serverBinaryName)
		if _, err := os.Stat(serverPath); err == nil {
			return serverPath, nil
		}
	}

	if serverPath, err := exec.LookPath(serverBinaryName); err == nil {
		return serverPath, nil
	}

	home, _ := os.UserHomeDir()
	for _, p := range []string{
		filepath.Join("/usr/local/bin", serverBinaryName),
		filepath.Join(home, "go", "bin", serverBinaryName),
		filepath.Join(home, ".local", "bin", serverBinaryName),
	} {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%s binary not found", serverBinaryName)
}

// startServerBackground starts the server as a detached background process
func startServerBackground() error {
	serverPath, err := findServerBinary()
	if err != nil {
		return err
	}

	var args []string
	if configPath != "" {
		args = append(args, "-config", configPath)
	}

	cmd := exec.Command(serverPath, args...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	setSysProcAttr(cmd)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	go cmd.Wait()

	return nil
}

// waitForServerReady polls the server until it's ready or timeout
func waitForServerReady(url string) error {
	deadline := time.Now().Add(serverStartTimeout)

	for time.Now().Before(deadline) {
		if isServerRunning(url) {
			return nil
		}
		time.Sleep(serverPollInterval)
	}

	return fmt.Errorf("server did not start within %v", serverStartTimeout)
}

// ensureServerRunning checks if server is running, starts it if not
func ensureServerRunning(url string) error {
	if isServerRunning(url) {
		fmt.Printf("Server already running at %s\n", url)
		return nil
	}

	fmt.Println("Server not running, starting...")

	if err := startServerBackground(); err != nil {
		return err
	}

	if err := waitForServerReady(url); err != nil {
		return err
	}

	fmt.Printf("Server started at %s\n", url)
	return nil
}

func init() {
	serverCmd.PersistentFlags().StringVar(&serverURL, "url", "", "Server URL (default: from server.host and server.port)")

	serverCmd.AddCommand(serverStatusCmd)
	serverCmd.AddCommand(serverStartCmd)
}
