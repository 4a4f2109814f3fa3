package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rahul0x24/ai-gcm/internal/config"
	"github.com/rahul0x24/ai-gcm/internal/pipeline"
	"github.com/rahul0x24/ai-gcm/internal/ui"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

type options struct {
	model        string
	summaryModel string
	commitModel  string
	endpoint     string
	timeout      time.Duration
	retries      int
	configPath   string

	dryRun  bool
	verbose bool
	yes     bool
	noColor bool
}

// shownError has already been rendered by the front end
type shownError struct {
	error
}

func (e shownError) Unwrap() error { return e.error }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(&options{})
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return pipeline.ExitOK
	}

	var shown shownError
	if !errors.As(err, &shown) {
		printError(stderr, err)
	}
	return pipeline.ExitCode(err)
}

func printError(w io.Writer, err error) {
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(w, ui.ErrorText("Interrupted"))
		return
	}
	fmt.Fprintln(w, ui.ErrorText("Error: "+err.Error()))
	if hint := errors.FlattenHints(err); hint != "" {
		for _, line := range strings.Split(hint, "\n") {
			fmt.Fprintln(w, ui.Dim("  hint: "+line))
		}
	}
}

func newRootCmd(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ai-gcm",
		Short: "Generate a conventional commit message from your changes with a local model",
		Long: `ai-gcm summarizes the working tree diff with one Ollama model, drafts a
conventional commit message with a second one, validates it and commits.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommit(cmd, opts)
		},
	}

	defaults := config.DefaultConfig()
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.model, "model", "m", "", "Model for both stages")
	flags.StringVarP(&opts.summaryModel, "summary-model", "s", "", fmt.Sprintf("Model that summarizes the diff (default %q)", defaults.Models.Summary))
	flags.StringVarP(&opts.commitModel, "commit-model", "c", "", fmt.Sprintf("Model that drafts the message (default %q)", defaults.Models.Commit))
	flags.StringVar(&opts.endpoint, "endpoint", "", "Ollama base URL (default $OLLAMA_HOST or "+defaults.Ollama.Endpoint+")")
	flags.DurationVar(&opts.timeout, "timeout", 0, fmt.Sprintf("Per request model timeout (default %s)", defaults.Ollama.Timeout.Duration))
	flags.IntVar(&opts.retries, "retries", 0, fmt.Sprintf("Additional attempts per stage (default %d)", defaults.Generation.Retries))
	flags.StringVar(&opts.configPath, "config", "", "Config file (default "+config.FileName+" in the user config dir)")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Print the message without staging or committing")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Show the summary and debug logs")
	flags.BoolVarP(&opts.yes, "yes", "y", false, "Commit without asking for confirmation")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	commitCmd := &cobra.Command{
		Use:   "commit",
		Short: "Generate a message and commit (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommit(cmd, opts)
		},
	}

	rootCmd.AddCommand(commitCmd, newModelsCmd(opts), newConfigCmd(opts), newVersionCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ai-gcm %s\n", version)
		},
	}
}

func newConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			path := opts.configPath
			if path == "" {
				if path, err = config.Path(); err != nil {
					path = "(unavailable)"
				}
			}
			out, err := cfg.Encode()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", path, out)
			return nil
		},
	}
}

// loadConfig layers the config file, the environment and any flags that were set
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, errors.Wrap(err, "loading config")
	}

	flags := cmd.Flags()
	if flags.Changed("model") {
		cfg.Models.Summary = opts.model
		cfg.Models.Commit = opts.model
	}
	if flags.Changed("summary-model") {
		cfg.Models.Summary = opts.summaryModel
	}
	if flags.Changed("commit-model") {
		cfg.Models.Commit = opts.commitModel
	}
	if flags.Changed("endpoint") {
		cfg.Ollama.Endpoint = config.NormalizeEndpoint(opts.endpoint)
	}
	if flags.Changed("timeout") {
		cfg.Ollama.Timeout = config.Duration{Duration: opts.timeout}
	}
	if flags.Changed("retries") {
		cfg.Generation.Retries = opts.retries
	}
	if opts.noColor {
		cfg.UI.Color = false
	}
	if opts.yes {
		cfg.UI.Confirm = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
