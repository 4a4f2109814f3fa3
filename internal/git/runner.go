package git

import (
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/cockroachdb/errors"
)

// Result is the outcome of a finished process
type Result struct {
	ExitCode int
	// Output is stdout and stderr merged in write order
	Output []byte
}

// Runner executes an external command and captures its merged output.
// A non-zero exit is reported through Result.ExitCode; the error return is
// reserved for commands that could not be started or were interrupted.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner is the default Runner backed by os/exec
type ExecRunner struct {
	// Dir is the working directory; empty means the current directory
	Dir string
	// Env is appended to the inherited environment
	Env []string
}

// NewExecRunner creates an ExecRunner rooted at dir
func NewExecRunner(dir string) *ExecRunner {
	return &ExecRunner{Dir: dir}
}

// Run implements Runner. The child is placed in its own process group and the
// whole group is killed when ctx is cancelled.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}
	cmd.WaitDelay = 2 * time.Second
	setProcessGroup(cmd)

	output, err := cmd.CombinedOutput()
	if err == nil {
		return Result{ExitCode: 0, Output: output}, nil
	}

	if ctx.Err() != nil {
		return Result{ExitCode: -1, Output: output}, errors.Wrapf(ctx.Err(), "%s interrupted", name)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{ExitCode: exitErr.ExitCode(), Output: output}, nil
	}

	return Result{ExitCode: -1, Output: output}, errors.Wrapf(err, "failed to run %s", name)
}
