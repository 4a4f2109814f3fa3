package git

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rahul0x24/ai-gcm/internal/models"

	"go.uber.org/zap"
)

// Reader reads and mutates the working tree of one repository through git.
// No call is retried; a failing git command is reported immediately.
type Reader struct {
	runner Runner
	logger *zap.Logger
}

// NewReader creates a Reader that runs git through runner
func NewReader(runner Runner, logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{runner: runner, logger: logger}
}

// Changes returns the unstaged and staged diffs, trimmed
func (r *Reader) Changes(ctx context.Context) (models.ChangeSet, error) {
	unstaged, err := r.git(ctx, "diff", "--no-color")
	if err != nil {
		return models.ChangeSet{}, err
	}

	staged, err := r.git(ctx, "diff", "--cached", "--no-color")
	if err != nil {
		return models.ChangeSet{}, err
	}

	return models.NewChangeSet(staged, unstaged), nil
}

// Status returns `git status --short`, trimmed
func (r *Reader) Status(ctx context.Context) (string, error) {
	out, err := r.git(ctx, "status", "--short")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// StageAll stages every change in the working tree, including deletions and new files
func (r *Reader) StageAll(ctx context.Context) error {
	_, err := r.git(ctx, "add", "-A")
	return err
}

// Commit records the index with message and returns git's trimmed report
func (r *Reader) Commit(ctx context.Context, message string) (string, error) {
	out, err := r.git(ctx, "commit", "-m", message)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// git runs one git command and maps its failure modes onto *Error
func (r *Reader) git(ctx context.Context, args ...string) (string, error) {
	command := strings.Join(args, " ")
	r.logger.Debug("Running git", zap.String("command", command))

	res, err := r.runner.Run(ctx, "git", args...)
	if err != nil {
		r.logger.Debug("git could not run", zap.String("command", command), zap.Error(err))
		return "", processError(command, err.Error())
	}

	if !utf8.Valid(res.Output) {
		return "", processError(command, "could not decode command output")
	}
	output := string(res.Output)

	if res.ExitCode != 0 {
		r.logger.Debug("git failed",
			zap.String("command", command),
			zap.Int("exit_code", res.ExitCode))
		return "", commandFailed(command, output)
	}

	return output, nil
}
