package git

import "strings"

// ErrorKind classifies a git failure
type ErrorKind int

const (
	// CommandFailed means git ran and exited non-zero
	CommandFailed ErrorKind = iota
	// ProcessError means git could not be run or its output could not be read
	ProcessError
)

func (k ErrorKind) String() string {
	switch k {
	case CommandFailed:
		return "CommandFailed"
	case ProcessError:
		return "ProcessError"
	default:
		return "Unknown"
	}
}

// Error provides context for git command failures
type Error struct {
	Kind    ErrorKind
	Command string
	// Output is the captured stdout+stderr for CommandFailed, the reason for ProcessError
	Output string
}

func (e *Error) Error() string {
	detail := strings.TrimSpace(e.Output)
	if detail == "" {
		detail = "exited with non-zero status"
	}
	return "git " + e.Command + ": " + detail
}

func commandFailed(command, output string) *Error {
	return &Error{Kind: CommandFailed, Command: command, Output: output}
}

func processError(command, reason string) *Error {
	return &Error{Kind: ProcessError, Command: command, Output: reason}
}
