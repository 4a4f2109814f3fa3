package app

import (
	"context"

	"github.com/rahul0x24/ai-gcm/internal/commitmsg"
	"github.com/rahul0x24/ai-gcm/internal/pipeline"

	tea "github.com/charmbracelet/bubbletea"
)

type stubPipeline struct {
	draft     pipeline.Draft
	genErr    error
	output    string
	commitErr error

	generated int
	committed []string
}

func (s *stubPipeline) Generate(ctx context.Context) (pipeline.Draft, error) {
	s.generated++
	if s.genErr != nil {
		return pipeline.Draft{}, s.genErr
	}
	return s.draft, nil
}

func (s *stubPipeline) Commit(ctx context.Context, message commitmsg.Message) (string, error) {
	s.committed = append(s.committed, message.String())
	if s.commitErr != nil {
		return "", s.commitErr
	}
	return s.output, nil
}

func mustMessage(text string) commitmsg.Message {
	msg, err := commitmsg.Validate(text)
	if err != nil {
		panic(err)
	}
	return msg
}

func draftOf(text string) pipeline.Draft {
	return pipeline.Draft{
		Summary:  "Adds a foo helper to the utils package.",
		Message:  mustMessage(text),
		Attempts: 1,
	}
}

// collect runs cmd and any batched commands, returning every message produced
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func findMsg[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func isQuit(cmd tea.Cmd) bool {
	_, ok := findMsg[tea.QuitMsg](collect(cmd))
	return ok
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
