package infrastructure

import (
	"fmt"
	"os/exec"

	"go.uber.org/zap"

	"github.com/yourusername/ytdl-go/internal/domain"
)

// Supported notification methods
const (
	NotifyOSAScript  = "osascript"
	NotifyNotifySend = "notify-send"
)

// ValidNotificationMethod reports whether method is supported
func ValidNotificationMethod(method string) bool {
	return method == NotifyOSAScript || method == NotifyNotifySend
}

// NotificationService sends desktop notifications when workflows finish
type NotificationService struct {
	config *domain.NotificationConfig
	logger *zap.Logger
	run    func(name string, args ...string) error
}

// NewNotificationService creates a new notification service
func NewNotificationService(config *domain.NotificationConfig, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		config: config,
		logger: logger,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// Send sends a notification
func (n *NotificationService) Send(title, message string) error {
	if !n.config.Enabled {
		n.logger.Debug("Notifications disabled, skipping",
			zap.String("title", title),
			zap.String("message", message))
		return nil
	}

	var err error
	switch n.config.Method {
	case NotifyOSAScript:
		script := fmt.Sprintf(`display notification %q with title %q`, message, title)
		if n.config.Sound {
			script += ` sound name "Glass"`
		}
		err = n.run("osascript", "-e", script)
	case NotifyNotifySend:
		err = n.run("notify-send", title, message)
	default:
		n.logger.Warn("Unknown notification method", zap.String("method", n.config.Method))
		return nil
	}

	if err != nil {
		n.logger.Error("Failed to send notification",
			zap.String("method", n.config.Method),
			zap.Error(err))
		return err
	}

	n.logger.Debug("Notification sent",
		zap.String("title", title),
		zap.String("message", message))
	return nil
}

// NotifyWorkflowFinished implements domain.Notifier
func (n *NotificationService) NotifyWorkflowFinished(workflow domain.Workflow, url string, exitCode int) {
	title := "ytdl finished"
	message := fmt.Sprintf("%s: %s", workflow, truncateString(url, 40))
	if exitCode != 0 {
		title = "ytdl failed"
		message = fmt.Sprintf("%s: %s (exit code %d)", workflow, truncateString(url, 40), exitCode)
	}
	n.Send(title, message)
}

// truncateString truncates a string to the specified length
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
