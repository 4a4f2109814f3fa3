package pipeline

import (
	"context"

	"github.com/rahul0x24/ai-gcm/internal/models"
)

// stubReader is an in-memory ChangeReader
type stubReader struct {
	changes    models.ChangeSet
	changesErr error
	stageErr   error
	commitErr  error
	commitOut  string

	stageCalls int
	commits    []string
}

func (r *stubReader) Changes(context.Context) (models.ChangeSet, error) {
	return r.changes, r.changesErr
}

func (r *stubReader) Status(context.Context) (string, error) {
	return "", nil
}

func (r *stubReader) StageAll(context.Context) error {
	r.stageCalls++
	return r.stageErr
}

func (r *stubReader) Commit(_ context.Context, message string) (string, error) {
	r.commits = append(r.commits, message)
	if r.commitErr != nil {
		return "", r.commitErr
	}
	return r.commitOut, nil
}

type reply struct {
	text string
	err  error
}

// stubGenerator replays scripted replies; the last reply of a script repeats
type stubGenerator struct {
	summaries []reply
	drafts    []reply

	summarizeCalls int
	draftCalls     int
	diffs          []string
	models         []string
	feedbacks      []string
}

func next(script []reply, i int) reply {
	if len(script) == 0 {
		return reply{}
	}
	if i >= len(script) {
		return script[len(script)-1]
	}
	return script[i]
}

func (g *stubGenerator) Summarize(_ context.Context, diff, model string) (string, error) {
	r := next(g.summaries, g.summarizeCalls)
	g.summarizeCalls++
	g.diffs = append(g.diffs, diff)
	g.models = append(g.models, model)
	return r.text, r.err
}

func (g *stubGenerator) Draft(_ context.Context, summary, model, feedback string) (string, error) {
	r := next(g.drafts, g.draftCalls)
	g.draftCalls++
	g.models = append(g.models, model)
	g.feedbacks = append(g.feedbacks, feedback)
	return r.text, r.err
}

func (g *stubGenerator) calls() int {
	return g.summarizeCalls + g.draftCalls
}

func aiErr(kind models.AIErrorKind, reason string) error {
	return &models.AIError{Kind: kind, Reason: reason}
}
