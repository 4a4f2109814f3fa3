package pipeline

import (
	"context"
	"fmt"

	"github.com/rahul0x24/ai-gcm/internal/git"
	"github.com/rahul0x24/ai-gcm/internal/models"

	"github.com/cockroachdb/errors"
)

// ErrorKind classifies failures raised by the pipeline itself
type ErrorKind int

const (
	// NothingToCommit means both the staged and the unstaged diff are empty
	NothingToCommit ErrorKind = iota
	// UnvalidatableOutput means every drafted message failed validation
	UnvalidatableOutput
)

func (k ErrorKind) String() string {
	switch k {
	case NothingToCommit:
		return "NothingToCommit"
	case UnvalidatableOutput:
		return "UnvalidatableOutput"
	default:
		return "Unknown"
	}
}

// Error is a terminal failure decided by the pipeline rather than by a collaborator
type Error struct {
	Kind ErrorKind
	// Attempts is the number of drafts that were validated
	Attempts int
	// Last is the validation error of the final draft
	Last error
}

func (e *Error) Error() string {
	switch e.Kind {
	case NothingToCommit:
		return "nothing to commit: no staged or unstaged changes"
	case UnvalidatableOutput:
		return fmt.Sprintf("no valid commit message after %d attempts: %v", e.Attempts, e.Last)
	default:
		return "pipeline failed"
	}
}

func (e *Error) Unwrap() error {
	return e.Last
}

// Exit codes, one per failure category
const (
	ExitOK              = 0
	ExitFailure         = 1
	ExitGit             = 2
	ExitModel           = 3
	ExitValidation      = 4
	ExitNothingToCommit = 5
	ExitInterrupted     = 130
)

// ExitCode maps a pipeline result onto the process exit status
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}

	var perr *Error
	if errors.As(err, &perr) {
		switch perr.Kind {
		case NothingToCommit:
			return ExitNothingToCommit
		case UnvalidatableOutput:
			return ExitValidation
		}
	}

	var aerr *models.AIError
	if errors.As(err, &aerr) {
		return ExitModel
	}

	var gerr *git.Error
	if errors.As(err, &gerr) {
		return ExitGit
	}

	return ExitFailure
}
