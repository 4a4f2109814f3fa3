package main

import (
	"fmt"
	"strings"

	"github.com/rahul0x24/ai-gcm/internal/logger"
	"github.com/rahul0x24/ai-gcm/internal/models"
	"github.com/rahul0x24/ai-gcm/internal/ollama"
	"github.com/rahul0x24/ai-gcm/internal/ui"

	"github.com/spf13/cobra"
)

func newModelsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the models installed in Ollama",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			ui.Configure(cmd.OutOrStdout(), !cfg.UI.Color)

			client := ollama.NewClient(ollama.Options{
				Endpoint: cfg.Ollama.Endpoint,
				Timeout:  cfg.Ollama.Timeout.Duration,
				Logger:   logger.New(opts.verbose, cmd.ErrOrStderr()),
			})
			installed, err := client.ListModels(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(installed) == 0 {
				fmt.Fprintln(out, "No models installed. Pull one with: ollama pull "+cfg.Models.Commit)
				return nil
			}

			fmt.Fprintln(out, ui.SectionHeader("MODELS", ui.ColorCyan))
			for i, m := range installed {
				var roles []string
				if models.ModelName(cfg.Models.Summary).MatchesAny([]string{m.Name}) {
					roles = append(roles, "summary")
				}
				if models.ModelName(cfg.Models.Commit).MatchesAny([]string{m.Name}) {
					roles = append(roles, "commit")
				}
				line := fmt.Sprintf("  %d. %-32s %s", i+1, m.Name, formatSize(m.Size))
				if len(roles) > 0 {
					line += ui.Dim(fmt.Sprintf("  (%s)", strings.Join(roles, ", ")))
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
