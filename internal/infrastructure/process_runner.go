package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"go.uber.org/zap"

	"github.com/yourusername/ytdl-go/internal/command"
	"github.com/yourusername/ytdl-go/internal/domain"
)

// ExecRunner implements domain.ProcessRunner with os/exec.
// Each call blocks until the process exits; no timeout is applied.
type ExecRunner struct {
	logger     *zap.Logger
	commandLog *CommandLog
}

// NewExecRunner creates a runner. commandLog may be nil.
func NewExecRunner(logger *zap.Logger, commandLog *CommandLog) *ExecRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecRunner{logger: logger, commandLog: commandLog}
}

// Run executes cmd with stdout and stderr passed straight through
func (r *ExecRunner) Run(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) (int, error) {
	if len(cmd) == 0 {
		return domain.ExitUsage, fmt.Errorf("empty command")
	}

	c := exec.CommandContext(ctx, cmd.Program(), cmd.Args()...)
	c.Stdout = stdout
	c.Stderr = stderr

	return r.finish(cmd, c.Run(), nil)
}

// Capture executes cmd and buffers both output streams
func (r *ExecRunner) Capture(ctx context.Context, cmd domain.Command) (domain.CapturedOutput, error) {
	if len(cmd) == 0 {
		return domain.CapturedOutput{ExitCode: domain.ExitUsage}, fmt.Errorf("empty command")
	}

	var stdout, stderr bytes.Buffer
	c := exec.CommandContext(ctx, cmd.Program(), cmd.Args()...)
	c.Stdout = &stdout
	c.Stderr = &stderr

	code, err := r.finish(cmd, c.Run(), stderr.Bytes())
	return domain.CapturedOutput{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: code,
	}, err
}

// finish maps the exec error to an exit code and records the command
func (r *ExecRunner) finish(cmd domain.Command, runErr error, captured []byte) (int, error) {
	cmdLine := command.FormatCommand(cmd)
	code, err := exitCode(runErr)

	if r.commandLog != nil {
		if logErr := r.commandLog.Record(cmdLine, code, captured); logErr != nil {
			r.logger.Warn("Failed to write command log", zap.Error(logErr))
		}
	}

	if err != nil {
		r.logger.Error("Failed to start process",
			zap.String("command", cmdLine),
			zap.Error(err))
		return code, err
	}

	r.logger.Debug("Process exited",
		zap.String("command", cmdLine),
		zap.Int("exit_code", code))
	return code, nil
}

// exitCode converts the result of exec.Cmd.Run into a process exit code.
// The error is non-nil only when the process never ran.
func exitCode(err error) (int, error) {
	if err == nil {
		return domain.ExitOK, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// terminated by a signal
			return 1, nil
		}
		return code, nil
	}

	return domain.ExitNotFound, fmt.Errorf("failed to start process: %w", err)
}

// PathLocator implements domain.ExecutableLocator with exec.LookPath
type PathLocator struct{}

// LookPath resolves name on the search path
func (PathLocator) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
