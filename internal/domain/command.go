package domain

// Command is an ordered argument vector for an external process.
// The first token is the program, the rest are its arguments.
type Command []string

// Program returns the executable token, or "" for an empty command
func (c Command) Program() string {
	if len(c) == 0 {
		return ""
	}
	return c[0]
}

// Args returns the tokens after the program
func (c Command) Args() []string {
	if len(c) < 2 {
		return nil
	}
	return c[1:]
}

// Clone returns an independent copy of the command
func (c Command) Clone() Command {
	if c == nil {
		return nil
	}
	out := make(Command, len(c))
	copy(out, c)
	return out
}

// ExecutionResult is the outcome of running a single command
type ExecutionResult struct {
	Command  Command `json:"command"`
	ExitCode int     `json:"exit_code"`
}

// Succeeded reports whether the process exited with code 0
func (r ExecutionResult) Succeeded() bool {
	return r.ExitCode == 0
}

// Exit codes surfaced to the invoking environment
const (
	ExitOK                = 0
	ExitUsage             = 1
	ExitMetadata          = 2   // metadata could not be parsed or had no id
	ExitOutputNotWritable = 3   // doctor only
	ExitNotFound          = 127 // process could not be started
)
