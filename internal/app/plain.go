package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rahul0x24/ai-gcm/internal/models"
	"github.com/rahul0x24/ai-gcm/internal/ui"

	"github.com/briandowns/spinner"
)

type PlainOptions struct {
	Out io.Writer // message and result
	Err io.Writer // progress, prompts and notices
	In  io.Reader

	DryRun      bool
	Confirm     bool
	ShowSummary bool
	// Spinner animates progress on Err; only set it when Err is a terminal
	Spinner bool
}

// Plain is the line-oriented front end used for pipes, --yes and --verbose runs
type Plain struct {
	opts PlainOptions
	spin *spinner.Spinner
}

func NewPlain(opts PlainOptions) *Plain {
	p := &Plain{opts: opts}
	if opts.Spinner {
		p.spin = spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(opts.Err))
		p.spin.Suffix = " " + models.StageCollectingChanges.Display()
	}
	return p
}

// Observe reports a pipeline transition; pass it as the pipeline observer
func (p *Plain) Observe(stage models.Stage) {
	if stage.IsTerminal() {
		return
	}
	if p.spin != nil {
		p.spin.Lock()
		p.spin.Suffix = " " + stage.Display()
		p.spin.Unlock()
		return
	}
	fmt.Fprintln(p.opts.Err, ui.Dim("→ "+stage.Display()))
}

// Run generates a message, asks for confirmation when enabled and commits
func (p *Plain) Run(ctx context.Context, pl Pipeline) Result {
	p.start()
	draft, err := pl.Generate(ctx)
	p.stop()
	if err != nil {
		return Result{Err: err, Outcome: models.Failure(err)}
	}

	res := Result{Draft: draft}
	if p.opts.ShowSummary && draft.Summary != "" {
		fmt.Fprintln(p.opts.Err, ui.SectionHeader("SUMMARY", ui.ColorMagenta))
		fmt.Fprintln(p.opts.Err, draft.Summary)
		fmt.Fprintln(p.opts.Err)
	}

	if p.opts.DryRun {
		fmt.Fprintln(p.opts.Out, draft.Message.String())
		return res
	}

	fmt.Fprintln(p.opts.Err, "Suggested commit message:")
	fmt.Fprintln(p.opts.Err, "  "+ui.CommitMessage(draft.Message.String()))

	if p.opts.Confirm {
		ok, err := p.ask(ctx, "Use this commit message? (y/N): ")
		if err != nil {
			res.Err = err
			return res
		}
		if !ok {
			fmt.Fprintln(p.opts.Err, "Commit cancelled")
			res.Declined = true
			return res
		}
	}

	p.start()
	output, err := pl.Commit(ctx, draft.Message)
	p.stop()
	if err != nil {
		res.Err = err
		res.Outcome = models.Failure(err)
		return res
	}

	res.Outcome = models.Success(draft.Message, output)
	fmt.Fprintln(p.opts.Out, "Changes committed successfully!")
	if output != "" {
		fmt.Fprintln(p.opts.Out, output)
	}
	return res
}

// ask reads a yes/no answer, giving up when ctx is cancelled
func (p *Plain) ask(ctx context.Context, question string) (bool, error) {
	fmt.Fprint(p.opts.Err, question)

	answer := make(chan string, 1)
	go func() {
		line, _ := bufio.NewReader(p.opts.In).ReadString('\n')
		answer <- line
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.opts.Err)
		return false, ctx.Err()
	case line := <-answer:
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}

func (p *Plain) start() {
	if p.spin != nil {
		p.spin.Start()
	}
}

func (p *Plain) stop() {
	if p.spin != nil {
		p.spin.Stop()
	}
}
