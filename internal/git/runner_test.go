package git

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHelperProcess is not a real test; ExecRunner tests re-execute the
// test binary with GO_WANT_HELPER_PROCESS=1 to get a controllable child.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	fmt.Fprint(os.Stdout, "to stdout;")
	fmt.Fprint(os.Stderr, "to stderr")
	os.Exit(3)
}

func TestExecRunnerCapturesOutputAndExitCode(t *testing.T) {
	runner := &ExecRunner{Env: []string{"GO_WANT_HELPER_PROCESS=1"}}

	res, err := runner.Run(context.Background(), os.Args[0], "-test.run=TestHelperProcess")
	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitCode)
	assert.Contains(t, string(res.Output), "to stdout;")
	assert.Contains(t, string(res.Output), "to stderr")
}

func TestExecRunnerMissingBinary(t *testing.T) {
	runner := NewExecRunner("")

	_, err := runner.Run(context.Background(), "ai-gcm-definitely-not-a-binary")
	assert.Error(t, err)
}

func TestExecRunnerCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runner := &ExecRunner{Env: []string{"GO_WANT_HELPER_PROCESS=1"}}

	_, err := runner.Run(ctx, os.Args[0], "-test.run=TestHelperProcess")
	assert.Error(t, err)
}
