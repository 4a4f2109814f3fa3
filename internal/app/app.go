package app

import (
	"context"

	"github.com/rahul0x24/ai-gcm/internal/commitmsg"
	"github.com/rahul0x24/ai-gcm/internal/models"
	"github.com/rahul0x24/ai-gcm/internal/pipeline"
	"github.com/rahul0x24/ai-gcm/internal/ui"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Pipeline is the part of *pipeline.Pipeline the front ends drive
type Pipeline interface {
	Generate(ctx context.Context) (pipeline.Draft, error)
	Commit(ctx context.Context, message commitmsg.Message) (string, error)
}

// Result is what a front end hands back to the command once it is done
type Result struct {
	Draft pipeline.Draft
	// Outcome is nil when no commit was attempted (dry run or declined)
	Outcome  models.Outcome
	Declined bool
	Err      error
}

// Committed reports whether the commit was created
func (r Result) Committed() bool {
	return r.Outcome != nil && models.IsSuccess(r.Outcome)
}

type Options struct {
	Pipeline Pipeline
	Progress <-chan models.Stage
	Cancel   context.CancelFunc
	DryRun   bool
	Confirm  bool
	Models   string
}

// Model is the interactive application state
type Model struct {
	ctx      context.Context
	pipeline Pipeline
	progress <-chan models.Stage
	cancel   context.CancelFunc

	dryRun  bool
	confirm bool
	models  string

	// Navigation
	screen Screen

	// Progress
	stage    models.Stage
	attempts int
	spinner  spinner.Model

	// Review state
	draft            pipeline.Draft
	confirmSelection int // 0=Yes, 1=No

	result Result

	width int
}

// Observer forwards pipeline transitions to ch without ever blocking the pipeline
func Observer(ch chan<- models.Stage) func(models.Stage) {
	return func(stage models.Stage) {
		select {
		case ch <- stage:
		default:
		}
	}
}

// New creates the application model
func New(ctx context.Context, opts Options) Model {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = lipgloss.NewStyle().Foreground(ui.ColorCyan)

	return Model{
		ctx:      ctx,
		pipeline: opts.Pipeline,
		progress: opts.Progress,
		cancel:   opts.Cancel,
		dryRun:   opts.DryRun,
		confirm:  opts.Confirm,
		models:   opts.Models,
		screen:   ScreenGenerating,
		stage:    models.StageCollectingChanges,
		spinner:  s,
		width:    80,
	}
}

// Init starts generation
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		generateCmd(m.ctx, m.pipeline),
		listenForProgress(m.progress),
	)
}

// Result returns the final state once the program has exited
func (m Model) Result() Result {
	return m.result
}

// Screen returns the current screen
func (m Model) Screen() Screen {
	return m.screen
}
