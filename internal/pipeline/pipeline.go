// Package pipeline drives commit message generation from pending changes:
// collect the diff, summarize it, draft a message, validate it, commit.
// The run is strictly sequential and owns all of its intermediate values.
package pipeline

import (
	"context"

	"github.com/rahul0x24/ai-gcm/internal/commitmsg"
	"github.com/rahul0x24/ai-gcm/internal/models"
	"github.com/rahul0x24/ai-gcm/internal/prompt"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// DefaultRetries is the number of additional attempts per stage
const DefaultRetries = 2

// ChangeReader reads and mutates the repository
type ChangeReader interface {
	Changes(ctx context.Context) (models.ChangeSet, error)
	Status(ctx context.Context) (string, error)
	StageAll(ctx context.Context) error
	Commit(ctx context.Context, message string) (string, error)
}

// Generator is the model-inference capability. Failures must be *models.AIError.
type Generator interface {
	Summarize(ctx context.Context, diff, model string) (string, error)
	Draft(ctx context.Context, summary, model, feedback string) (string, error)
}

// Options configures a Pipeline
type Options struct {
	SummaryModel string
	CommitModel  string
	// Retries is the number of additional attempts per stage; negative means none
	Retries int
	// MaxDiffBytes truncates the diff sent to the model; 0 disables truncation
	MaxDiffBytes int
	// Observer is told about every state transition
	Observer func(models.Stage)
	Logger   *zap.Logger
}

// Draft is the result of the generation half of a run
type Draft struct {
	Changes models.ChangeSet
	Summary string
	Message commitmsg.Message
	// Attempts is the number of drafts produced before one validated
	Attempts int
}

// Pipeline generates and commits one message per run
type Pipeline struct {
	reader  ChangeReader
	gen     Generator
	opts    Options
	retries int
	logger  *zap.Logger
}

// New creates a Pipeline
func New(reader ChangeReader, gen Generator, opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	retries := opts.Retries
	if retries < 0 {
		retries = 0
	}
	return &Pipeline{
		reader:  reader,
		gen:     gen,
		opts:    opts,
		retries: retries,
		logger:  logger,
	}
}

// Run executes every stage and returns Success or Failure
func (p *Pipeline) Run(ctx context.Context) models.Outcome {
	draft, err := p.Generate(ctx)
	if err != nil {
		return models.Failure(err)
	}

	result, err := p.Commit(ctx, draft.Message)
	if err != nil {
		return models.Failure(err)
	}
	return models.Success(draft.Message, result)
}

// Generate runs CollectingChanges through Validating and stops short of committing
func (p *Pipeline) Generate(ctx context.Context) (Draft, error) {
	p.enter(models.StageCollectingChanges)
	changes, err := p.reader.Changes(ctx)
	if err != nil {
		return Draft{}, p.fail(ctx, errors.Wrap(err, "collecting changes"))
	}
	if changes.IsEmpty() {
		return Draft{}, p.fail(ctx, &Error{Kind: NothingToCommit})
	}

	diff := prompt.TruncateDiff(changes.Combined(), p.opts.MaxDiffBytes)
	if len(diff) < len(changes.Combined()) {
		p.logger.Info("Diff truncated",
			zap.Int("original_bytes", len(changes.Combined())),
			zap.Int("max_bytes", p.opts.MaxDiffBytes))
	}

	p.enter(models.StageSummarizing)
	summary, err := p.withRetry(ctx, models.StageSummarizing, func() (string, error) {
		return p.gen.Summarize(ctx, diff, p.opts.SummaryModel)
	})
	if err != nil {
		return Draft{}, p.fail(ctx, errors.Wrap(err, "summarizing changes"))
	}

	msg, attempts, err := p.draftValid(ctx, summary)
	if err != nil {
		return Draft{}, p.fail(ctx, err)
	}

	return Draft{
		Changes:  changes,
		Summary:  summary,
		Message:  msg,
		Attempts: attempts,
	}, nil
}

// draftValid loops Drafting -> Validating until a candidate validates,
// feeding each rejection back into the next prompt
func (p *Pipeline) draftValid(ctx context.Context, summary string) (commitmsg.Message, int, error) {
	var (
		feedback string
		lastErr  error
	)

	for attempt := 1; attempt <= p.retries+1; attempt++ {
		p.enter(models.StageDrafting)
		candidate, err := p.withRetry(ctx, models.StageDrafting, func() (string, error) {
			return p.gen.Draft(ctx, summary, p.opts.CommitModel, feedback)
		})
		if err != nil {
			return commitmsg.Message{}, attempt, errors.Wrap(err, "drafting commit message")
		}

		p.enter(models.StageValidating)
		msg, err := commitmsg.Validate(candidate)
		if err == nil {
			return msg, attempt, nil
		}

		p.logger.Warn("Drafted message rejected",
			zap.Int("attempt", attempt),
			zap.String("candidate", candidate),
			zap.Error(err))
		lastErr = err
		feedback = prompt.Feedback(candidate, err)
	}

	return commitmsg.Message{}, p.retries + 1, &Error{
		Kind:     UnvalidatableOutput,
		Attempts: p.retries + 1,
		Last:     lastErr,
	}
}

// Commit stages everything and commits with msg. Git failures are not retried.
func (p *Pipeline) Commit(ctx context.Context, msg commitmsg.Message) (string, error) {
	if msg.IsZero() {
		return "", p.fail(ctx, errors.New("refusing to commit an unvalidated message"))
	}

	p.enter(models.StageCommitting)
	if err := p.reader.StageAll(ctx); err != nil {
		return "", p.fail(ctx, errors.Wrap(err, "staging changes"))
	}

	result, err := p.reader.Commit(ctx, msg.String())
	if err != nil {
		return "", p.fail(ctx, errors.Wrap(err, "committing"))
	}

	p.enter(models.StageDone)
	return result, nil
}

// withRetry calls fn until it succeeds, the retry budget is spent, the error
// is not retryable, or ctx is done
func (p *Pipeline) withRetry(ctx context.Context, stage models.Stage, fn func() (string, error)) (string, error) {
	var err error
	for attempt := 0; attempt <= p.retries; attempt++ {
		var out string
		out, err = fn()
		if err == nil {
			return out, nil
		}

		var aerr *models.AIError
		if !errors.As(err, &aerr) || !aerr.Retryable() || ctx.Err() != nil {
			return "", err
		}

		if attempt < p.retries {
			p.logger.Warn("Model call failed, retrying",
				zap.Stringer("stage", stage),
				zap.Int("attempt", attempt+1),
				zap.Int("retries", p.retries),
				zap.Error(err))
		}
	}
	return "", err
}

func (p *Pipeline) enter(stage models.Stage) {
	p.logger.Debug("Pipeline stage", zap.Stringer("stage", stage))
	if p.opts.Observer != nil {
		p.opts.Observer(stage)
	}
}

// fail moves to Failed. A cancelled run is marked so callers can tell an
// interruption apart from the collaborator's own failure.
func (p *Pipeline) fail(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = errors.Mark(err, ctxErr)
	}
	p.logger.Info("Pipeline failed", zap.Error(err))
	p.enter(models.StageFailed)
	return err
}
