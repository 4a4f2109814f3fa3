package app

import (
	"context"
	"testing"

	"github.com/rahul0x24/ai-gcm/internal/git"
	"github.com/rahul0x24/ai-gcm/internal/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func newModel(p *stubPipeline, opts Options) Model {
	opts.Pipeline = p
	return New(context.Background(), opts)
}

// generated drives the model through Init and the generation result
func generated(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	res, ok := findMsg[generatedResult](collect(m.Init()))
	require.True(t, ok, "Init should start generation")
	next, cmd := m.Update(res)
	return next.(Model), cmd
}

func TestReviewThenCommit(t *testing.T) {
	p := &stubPipeline{draft: draftOf("feat: add foo function"), output: "[main abc1234] feat: add foo function"}
	m, cmd := generated(t, newModel(p, Options{Confirm: true}))

	assert.Equal(t, ScreenReview, m.Screen())
	assert.Nil(t, cmd)
	assert.Empty(t, p.committed, "nothing is committed before confirmation")
	view := m.View()
	assert.Contains(t, view, "feat: add foo function")
	assert.Contains(t, view, "Adds a foo helper")
	assert.Contains(t, view, "Use this commit message?")

	next, cmd := m.Update(keyRunes("y"))
	m = next.(Model)
	assert.Equal(t, ScreenCommitting, m.Screen())

	res, ok := findMsg[committedResult](collect(cmd))
	require.True(t, ok)
	assert.Equal(t, []string{"feat: add foo function"}, p.committed)

	next, cmd = m.Update(res)
	m = next.(Model)
	assert.Equal(t, ScreenComplete, m.Screen())
	assert.True(t, isQuit(cmd))

	result := m.Result()
	assert.True(t, result.Committed())
	assert.NoError(t, result.Err)
	assert.Contains(t, m.View(), "Changes committed successfully!")
	assert.Contains(t, m.View(), "abc1234")
}

func TestReviewDecline(t *testing.T) {
	p := &stubPipeline{draft: draftOf("fix: handle nil config")}
	m, _ := generated(t, newModel(p, Options{Confirm: true}))

	next, cmd := m.Update(keyRunes("n"))
	m = next.(Model)

	assert.Equal(t, ScreenCancelled, m.Screen())
	assert.True(t, isQuit(cmd))
	assert.Empty(t, p.committed)
	assert.True(t, m.Result().Declined)
	assert.Nil(t, m.Result().Outcome)
	assert.Contains(t, m.View(), "Commit cancelled")
}

func TestReviewSelectionWithEnter(t *testing.T) {
	p := &stubPipeline{draft: draftOf("docs: update readme")}
	m, _ := generated(t, newModel(p, Options{Confirm: true}))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(Model)
	assert.Equal(t, 1, m.confirmSelection)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.Equal(t, ScreenCancelled, m.Screen())
	assert.Empty(t, p.committed)
}

func TestNoConfirmCommitsImmediately(t *testing.T) {
	p := &stubPipeline{draft: draftOf("chore: bump deps")}
	m, cmd := generated(t, newModel(p, Options{Confirm: false}))

	assert.Equal(t, ScreenCommitting, m.Screen())
	_, ok := findMsg[committedResult](collect(cmd))
	assert.True(t, ok)
	assert.Equal(t, []string{"chore: bump deps"}, p.committed)
}

func TestDryRunNeverCommits(t *testing.T) {
	p := &stubPipeline{draft: draftOf("refactor: split parser")}
	m, cmd := generated(t, newModel(p, Options{DryRun: true, Confirm: true}))

	assert.Equal(t, ScreenComplete, m.Screen())
	assert.True(t, isQuit(cmd))
	assert.Empty(t, p.committed)
	assert.Nil(t, m.Result().Outcome)
	assert.Equal(t, "refactor: split parser", m.Result().Draft.Message.String())
	assert.Contains(t, m.View(), "DRY RUN")
}

func TestGenerationFailureShowsHint(t *testing.T) {
	cause := errors.WithHint(&models.AIError{Kind: models.ModelUnavailable, Reason: "model 'llama3.2' not found"}, "run: ollama pull llama3.2")
	p := &stubPipeline{genErr: cause}
	m, cmd := generated(t, newModel(p, Options{Confirm: true}))

	assert.Equal(t, ScreenError, m.Screen())
	assert.True(t, isQuit(cmd))
	assert.True(t, models.IsFailure(m.Result().Outcome))
	assert.ErrorIs(t, m.Result().Err, cause)

	view := m.View()
	assert.Contains(t, view, "Could not generate a commit message")
	assert.Contains(t, view, "ollama pull llama3.2")
}

func TestCommitFailure(t *testing.T) {
	p := &stubPipeline{
		draft:     draftOf("feat: add foo function"),
		commitErr: &git.Error{Kind: git.CommandFailed, Command: "commit", Output: "nothing added to commit"},
	}
	m, cmd := generated(t, newModel(p, Options{}))

	res, ok := findMsg[committedResult](collect(cmd))
	require.True(t, ok)
	next, _ := m.Update(res)
	m = next.(Model)

	assert.Equal(t, ScreenError, m.Screen())
	assert.False(t, m.Result().Committed())
	assert.Contains(t, m.View(), "Commit failed")
}

func TestCtrlCCancelsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := New(ctx, Options{Pipeline: &stubPipeline{}, Cancel: cancel})
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(Model)

	assert.True(t, isQuit(cmd))
	assert.Error(t, ctx.Err())
	assert.Equal(t, ScreenCancelled, m.Screen())
	assert.ErrorIs(t, m.Result().Err, context.Canceled)
	assert.Contains(t, m.View(), "Interrupted")
}

func TestProgressUpdates(t *testing.T) {
	ch := make(chan models.Stage, 4)
	m := New(context.Background(), Options{Pipeline: &stubPipeline{}, Progress: ch})

	ch <- models.StageSummarizing
	msg := listenForProgress(ch)()
	next, cmd := m.Update(msg)
	m = next.(Model)
	assert.Equal(t, models.StageSummarizing, m.stage)
	assert.NotNil(t, cmd, "keeps listening")

	next, _ = m.Update(stageMsg{stage: models.StageDrafting})
	m = next.(Model)
	next, _ = m.Update(stageMsg{stage: models.StageValidating})
	m = next.(Model)
	next, _ = m.Update(stageMsg{stage: models.StageDrafting})
	m = next.(Model)
	assert.Equal(t, 2, m.attempts)
	assert.Contains(t, m.View(), "attempt 2")

	_, cmd = m.Update(stageMsg{stage: models.StageFailed})
	assert.Nil(t, cmd, "stops listening after a terminal stage")
}

func TestListenForProgressClosed(t *testing.T) {
	ch := make(chan models.Stage)
	close(ch)
	assert.Nil(t, listenForProgress(ch)())
	assert.Nil(t, listenForProgress(nil)())
}

func TestObserverNeverBlocks(t *testing.T) {
	ch := make(chan models.Stage, 1)
	observe := Observer(ch)
	observe(models.StageSummarizing)
	observe(models.StageDrafting)
	assert.Equal(t, models.StageSummarizing, <-ch)
}

func TestScreenString(t *testing.T) {
	assert.Equal(t, "Review", ScreenReview.String())
	assert.Equal(t, "Unknown", Screen(99).String())
	assert.True(t, ScreenError.IsFinal())
	assert.False(t, ScreenCommitting.IsFinal())
}
