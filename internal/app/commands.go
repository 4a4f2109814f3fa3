package app

import (
	"context"

	"github.com/rahul0x24/ai-gcm/internal/commitmsg"
	"github.com/rahul0x24/ai-gcm/internal/models"
	"github.com/rahul0x24/ai-gcm/internal/pipeline"

	tea "github.com/charmbracelet/bubbletea"
)

// Message types for async operations

type generatedResult struct {
	draft pipeline.Draft
	err   error
}

type committedResult struct {
	message commitmsg.Message
	output  string
	err     error
}

// stageMsg carries a pipeline transition from the observer
type stageMsg struct {
	stage models.Stage
}

// listenForProgress creates a subscription that listens to the progress channel
func listenForProgress(ch <-chan models.Stage) tea.Cmd {
	return func() tea.Msg {
		if ch == nil {
			return nil
		}
		stage, ok := <-ch
		if !ok {
			return nil
		}
		return stageMsg{stage: stage}
	}
}

func generateCmd(ctx context.Context, p Pipeline) tea.Cmd {
	return func() tea.Msg {
		draft, err := p.Generate(ctx)
		return generatedResult{draft: draft, err: err}
	}
}

func commitCmd(ctx context.Context, p Pipeline, message commitmsg.Message) tea.Cmd {
	return func() tea.Msg {
		output, err := p.Commit(ctx, message)
		return committedResult{message: message, output: output, err: err}
	}
}
