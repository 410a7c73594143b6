package domain

import (
	"context"
	"io"
)

// ProcessRunner executes external commands.
// Run and Capture return an error only when the process could not be
// started; a non-zero exit is reported through the exit code.
type ProcessRunner interface {
	// Run executes cmd with its output forwarded to stdout and stderr
	Run(ctx context.Context, cmd Command, stdout, stderr io.Writer) (int, error)

	// Capture executes cmd and returns its stdout and stderr
	Capture(ctx context.Context, cmd Command) (CapturedOutput, error)
}

// CapturedOutput holds the result of a captured process run
type CapturedOutput struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// ExecutableLocator resolves executable names on the search path
type ExecutableLocator interface {
	LookPath(name string) (string, error)
}

// Notifier receives workflow completion events
type Notifier interface {
	NotifyWorkflowFinished(workflow Workflow, url string, exitCode int)
}
