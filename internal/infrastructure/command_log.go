package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// CommandLog appends every executed command and its exit code to a
// per-day file, commands-YYYYMMDD.log, in the logs directory.
type CommandLog struct {
	logsDir string
	now     func() time.Time
	mu      sync.Mutex
}

// NewCommandLog creates a command log writing into logsDir
func NewCommandLog(logsDir string) *CommandLog {
	return &CommandLog{logsDir: logsDir, now: time.Now}
}

// Path returns the log file for the given day
func (l *CommandLog) Path(day time.Time) string {
	return filepath.Join(l.logsDir, "commands-"+day.Format("20060102")+".log")
}

// Record appends one entry. Captured stderr, if any, is written between
// the command header and the status footer.
func (l *CommandLog) Record(cmdLine string, exitCode int, captured []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(l.logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	now := l.now()
	file, err := os.OpenFile(l.Path(now), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open command log: %w", err)
	}
	defer file.Close()

	timestamp := now.Format("2006-01-02 15:04:05")
	status := "SUCCESS"
	if exitCode != 0 {
		status = "FAILED"
	}

	if _, err := fmt.Fprintf(file, "\n=== [%s] ===\n$ %s\n", timestamp, cmdLine); err != nil {
		return err
	}
	if len(captured) > 0 {
		if _, err := file.Write(captured); err != nil {
			return err
		}
		if captured[len(captured)-1] != '\n' {
			file.WriteString("\n")
		}
	}
	_, err = fmt.Fprintf(file, "[%s] %s: exit code %d\n=== END ===\n", timestamp, status, exitCode)
	return err
}
