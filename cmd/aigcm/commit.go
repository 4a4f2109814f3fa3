package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rahul0x24/ai-gcm/internal/app"
	"github.com/rahul0x24/ai-gcm/internal/config"
	"github.com/rahul0x24/ai-gcm/internal/git"
	"github.com/rahul0x24/ai-gcm/internal/logger"
	"github.com/rahul0x24/ai-gcm/internal/models"
	"github.com/rahul0x24/ai-gcm/internal/ollama"
	"github.com/rahul0x24/ai-gcm/internal/pipeline"
	"github.com/rahul0x24/ai-gcm/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// terminal describes which standard streams are attached to a terminal
type terminal struct {
	stdin, stdout, stderr bool
}

func detectTerminal() terminal {
	return terminal{
		stdin:  term.IsTerminal(int(os.Stdin.Fd())),
		stdout: term.IsTerminal(int(os.Stdout.Fd())),
		stderr: term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// interactive reports whether the bubbletea front end should run
func (t terminal) interactive(opts *options) bool {
	return t.stdin && t.stdout && !opts.verbose
}

// canConfirm reports whether a confirmation prompt can be answered
func (t terminal) canConfirm(cfg *config.Config) bool {
	return cfg.UI.Confirm && t.stdin && t.stdout
}

func runCommit(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	log := logger.New(opts.verbose, stderr)
	defer func() { _ = log.Sync() }()

	tty := detectTerminal()
	ui.Configure(stdout, !cfg.UI.Color)

	root, err := git.FindCurrentRoot()
	if err != nil {
		return err
	}
	log.Debug("Repository found", zap.String("root", root))

	client := ollama.NewClient(ollama.Options{
		Endpoint:    cfg.Ollama.Endpoint,
		Timeout:     cfg.Ollama.Timeout.Duration,
		Temperature: cfg.Generation.Temperature,
		Logger:      log.Named("ollama"),
	})
	summaryModel := models.ModelName(cfg.Models.Summary)
	commitModel := models.ModelName(cfg.Models.Commit)
	if err := client.Preflight(ctx, summaryModel, commitModel); err != nil {
		return err
	}

	reader := git.NewReader(git.NewExecRunner(root), log.Named("git"))
	if err := previewUnstaged(ctx, reader, stderr); err != nil {
		return err
	}

	pipeOpts := pipeline.Options{
		SummaryModel: summaryModel.String(),
		CommitModel:  commitModel.String(),
		Retries:      cfg.Generation.Retries,
		MaxDiffBytes: cfg.Generation.MaxDiffBytes,
		Logger:       log.Named("pipeline"),
	}

	var res app.Result
	if tty.interactive(opts) {
		res, err = runInteractive(ctx, reader, client, pipeOpts, opts, tty.canConfirm(cfg), stdout)
		if err != nil {
			return err
		}
	} else {
		plain := app.NewPlain(app.PlainOptions{
			Out:         stdout,
			Err:         stderr,
			In:          os.Stdin,
			DryRun:      opts.dryRun,
			Confirm:     tty.canConfirm(cfg),
			ShowSummary: opts.verbose,
			Spinner:     tty.stderr && !opts.verbose,
		})
		pipeOpts.Observer = plain.Observe
		res = plain.Run(ctx, pipeline.New(reader, client, pipeOpts))
		if res.Err != nil {
			return res.Err
		}
	}

	if res.Committed() {
		reportHead(root, stdout, log)
	}
	return nil
}

func runInteractive(
	ctx context.Context,
	reader pipeline.ChangeReader,
	gen pipeline.Generator,
	pipeOpts pipeline.Options,
	opts *options,
	confirm bool,
	stdout io.Writer,
) (app.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	progress := make(chan models.Stage, 16)
	pipeOpts.Observer = app.Observer(progress)

	model := app.New(ctx, app.Options{
		Pipeline: pipeline.New(reader, gen, pipeOpts),
		Progress: progress,
		Cancel:   cancel,
		DryRun:   opts.dryRun,
		Confirm:  confirm,
		Models:   fmt.Sprintf("summary: %s  •  commit: %s", pipeOpts.SummaryModel, pipeOpts.CommitModel),
	})

	final, err := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(stdout)).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
			return app.Result{}, context.Canceled
		}
		return app.Result{}, errors.Wrap(err, "running interface")
	}

	res := final.(app.Model).Result()
	if res.Err != nil {
		return res, shownError{res.Err}
	}
	return res, nil
}

// previewUnstaged shows what `git add -A` will pick up when nothing is staged yet
func previewUnstaged(ctx context.Context, reader *git.Reader, w io.Writer) error {
	changes, err := reader.Changes(ctx)
	if err != nil {
		return err
	}
	if changes.IsEmpty() || changes.HasStaged() {
		return nil
	}

	status, err := reader.Status(ctx)
	if err != nil {
		return err
	}
	if status == "" {
		return nil
	}
	fmt.Fprintln(w, ui.SectionHeader("UNSTAGED CHANGES", ui.ColorYellow))
	fmt.Fprintln(w, status)
	fmt.Fprintln(w, ui.Dim("  all of these will be staged before committing"))
	fmt.Fprintln(w)
	return nil
}

func reportHead(root string, w io.Writer, log *zap.Logger) {
	head, err := git.Head(root)
	if err != nil {
		log.Warn("Could not read the new commit", zap.Error(err))
		return
	}
	fmt.Fprintf(w, "%s %s on %s\n", ui.StatusLine("success", head.Hash), head.Subject, head.Branch)
}
