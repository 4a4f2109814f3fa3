package app

import (
	"context"

	"github.com/rahul0x24/ai-gcm/internal/models"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.screen.IsFinal() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stageMsg:
		if msg.stage.IsTerminal() {
			return m, nil
		}
		m.stage = msg.stage
		if msg.stage == models.StageDrafting {
			m.attempts++
		}
		// Keep listening for more transitions
		return m, listenForProgress(m.progress)

	// Task result messages
	case generatedResult:
		return m.handleGenerated(msg)

	case committedResult:
		return m.handleCommitted(msg)
	}

	return m, nil
}

func (m Model) handleGenerated(msg generatedResult) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.fail(msg.err)
	}

	m.draft = msg.draft
	m.result.Draft = msg.draft

	switch {
	case m.dryRun:
		m.screen = ScreenComplete
		return m, tea.Quit
	case !m.confirm:
		return m.startCommit()
	default:
		m.screen = ScreenReview
		m.confirmSelection = 0
		return m, nil
	}
}

func (m Model) handleCommitted(msg committedResult) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.fail(msg.err)
	}
	m.result.Outcome = models.Success(msg.message, msg.output)
	m.screen = ScreenComplete
	return m, tea.Quit
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.result.Err = err
	m.result.Outcome = models.Failure(err)
	m.screen = ScreenError
	return m, tea.Quit
}

func (m Model) startCommit() (tea.Model, tea.Cmd) {
	m.screen = ScreenCommitting
	m.stage = models.StageCommitting
	return m, tea.Batch(m.spinner.Tick, commitCmd(m.ctx, m.pipeline, m.draft.Message))
}

// handleKey processes keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global interrupt: the terminal is in raw mode so SIGINT never arrives
	if msg.Type == tea.KeyCtrlC {
		if m.cancel != nil {
			m.cancel()
		}
		if !m.screen.IsFinal() {
			m.result.Err = context.Canceled
			m.screen = ScreenCancelled
		}
		return m, tea.Quit
	}

	if m.screen == ScreenReview {
		return m.handleReviewKey(msg)
	}
	return m, nil
}

func (m Model) handleReviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "right", "tab", "h", "l":
		m.confirmSelection = 1 - m.confirmSelection
	case "y", "Y":
		return m.startCommit()
	case "n", "N", "q", "esc":
		return m.decline()
	case "enter":
		if m.confirmSelection == 0 {
			return m.startCommit()
		}
		return m.decline()
	}
	return m, nil
}

func (m Model) decline() (tea.Model, tea.Cmd) {
	m.result.Declined = true
	m.screen = ScreenCancelled
	return m, tea.Quit
}
