package app

import (
	"fmt"
	"strings"

	"github.com/rahul0x24/ai-gcm/internal/models"
	"github.com/rahul0x24/ai-gcm/internal/ui"

	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
)

// generationStages are the steps shown in the progress checklist
var generationStages = []models.Stage{
	models.StageCollectingChanges,
	models.StageSummarizing,
	models.StageDrafting,
	models.StageValidating,
	models.StageCommitting,
}

func (m Model) contentWidth() int {
	w := m.width - 4
	if w > 90 {
		w = 90
	}
	if w < 40 {
		w = 40
	}
	return w
}

// View renders the application
func (m Model) View() string {
	var sections []string

	sections = append(sections, ui.RenderBanner(m.dryRun))
	sections = append(sections, "")

	outerBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorPurple).
		Width(m.contentWidth()).
		Padding(1, 2)
	sections = append(sections, outerBox.Render(m.renderContent()))

	if bar := m.renderStatusBar(); bar != "" {
		sections = append(sections, bar)
	}

	return strings.Join(sections, "\n") + "\n"
}

func (m Model) renderContent() string {
	switch m.screen {
	case ScreenGenerating, ScreenCommitting:
		return m.renderProgress()
	case ScreenReview:
		return m.renderReview()
	case ScreenComplete:
		return m.renderComplete()
	case ScreenCancelled:
		return m.renderCancelled()
	case ScreenError:
		return m.renderError()
	}
	return ""
}

func (m Model) renderProgress() string {
	var lines []string
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(ui.ColorCyan)
	lines = append(lines, titleStyle.Render(" Generating commit message "))
	if m.models != "" {
		lines = append(lines, ui.Dim("  "+m.models))
	}
	lines = append(lines, "")

	for _, stage := range generationStages {
		if stage == models.StageCommitting && m.screen != ScreenCommitting {
			continue
		}
		lines = append(lines, m.stageLine(stage))
	}

	if m.screen == ScreenCommitting {
		lines = append(lines, "")
		lines = append(lines, "  "+ui.CommitMessage(m.draft.Message.String()))
	}
	return strings.Join(lines, "\n")
}

func (m Model) stageLine(stage models.Stage) string {
	label := strings.TrimSuffix(stage.Display(), "...")
	if stage == models.StageDrafting && m.attempts > 1 {
		label = fmt.Sprintf("%s (attempt %d)", label, m.attempts)
	}

	current := m.stage
	if m.screen == ScreenCommitting {
		current = models.StageCommitting
	}

	switch {
	case stage < current:
		return ui.StatusLine("success", label)
	case stage == current:
		textStyle := lipgloss.NewStyle().Foreground(ui.ColorCyan).Bold(true)
		return fmt.Sprintf("  %s %s", m.spinner.View(), textStyle.Render(label+"..."))
	default:
		return ui.StatusLine("pending", label)
	}
}

func (m Model) renderReview() string {
	var lines []string
	textWidth := m.contentWidth() - 8

	if m.draft.Summary != "" {
		lines = append(lines, ui.SectionHeader("SUMMARY", ui.ColorMagenta))
		lines = append(lines, "")
		summaryStyle := lipgloss.NewStyle().Foreground(ui.ColorWhite).Width(textWidth).PaddingLeft(2)
		lines = append(lines, summaryStyle.Render(m.draft.Summary))
		lines = append(lines, "")
	}

	lines = append(lines, ui.SectionHeader("COMMIT MESSAGE", ui.ColorCyan))
	lines = append(lines, "")
	lines = append(lines, "  "+ui.CommitMessage(m.draft.Message.String()))
	if m.draft.Attempts > 1 {
		lines = append(lines, ui.Dim(fmt.Sprintf("  accepted after %d attempts", m.draft.Attempts)))
	}
	lines = append(lines, "")

	questionStyle := lipgloss.NewStyle().Foreground(ui.ColorWhite).Bold(true)
	lines = append(lines, questionStyle.Render("  Use this commit message?"))
	lines = append(lines, "")
	lines = append(lines, ui.YesNoButtons(m.confirmSelection))

	return strings.Join(lines, "\n")
}

func (m Model) renderComplete() string {
	var lines []string
	successStyle := lipgloss.NewStyle().Foreground(ui.ColorGreen).Bold(true)

	if m.dryRun {
		lines = append(lines, successStyle.Render("  ✓ Suggested commit message"))
		lines = append(lines, "")
		lines = append(lines, "  "+ui.CommitMessage(m.draft.Message.String()))
		lines = append(lines, "")
		lines = append(lines, ui.Dim("  Dry run: nothing was staged or committed"))
		return strings.Join(lines, "\n")
	}

	lines = append(lines, successStyle.Render("  ✓ Changes committed successfully!"))
	lines = append(lines, "")
	if msg, ok := models.OutcomeMessage(m.result.Outcome); ok {
		lines = append(lines, "  "+ui.CommitMessage(msg.String()))
	}
	if out := models.OutcomeResult(m.result.Outcome); out != "" {
		lines = append(lines, "")
		for _, line := range strings.Split(out, "\n") {
			lines = append(lines, ui.Dim("  "+line))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderCancelled() string {
	icon, color := ui.StatusIcon("cancelled")
	style := lipgloss.NewStyle().Foreground(color).Bold(true)
	if m.result.Declined {
		return style.Render(fmt.Sprintf("  %s Commit cancelled", icon))
	}
	return style.Render(fmt.Sprintf("  %s Interrupted", icon))
}

func (m Model) renderError() string {
	var lines []string
	title := "  ✗ Could not generate a commit message"
	if !m.draft.Message.IsZero() && !m.dryRun {
		title = "  ✗ Commit failed"
	}
	lines = append(lines, ui.ErrorText(title))
	lines = append(lines, "")

	errStyle := lipgloss.NewStyle().Foreground(ui.ColorWhite).Width(m.contentWidth() - 8).PaddingLeft(2)
	lines = append(lines, errStyle.Render(m.result.Err.Error()))

	if hint := errors.FlattenHints(m.result.Err); hint != "" {
		lines = append(lines, "")
		hintStyle := lipgloss.NewStyle().Foreground(ui.ColorYellow)
		for _, h := range strings.Split(hint, "\n") {
			lines = append(lines, hintStyle.Render("  hint: "+h))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatusBar() string {
	switch m.screen {
	case ScreenReview:
		return ui.KeyBindings(
			ui.KeyBinding("y/enter", "commit", ui.ColorGreen),
			ui.KeyBinding("n/esc", "cancel", ui.ColorRed),
			ui.KeyBinding("←/→", "select", ui.ColorCyan),
		)
	case ScreenGenerating, ScreenCommitting:
		return ui.KeyBindings(ui.KeyBinding("ctrl+c", "abort", ui.ColorYellow))
	}
	return ""
}
