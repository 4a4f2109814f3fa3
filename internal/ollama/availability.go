package ollama

import (
	"context"
	"fmt"
	"strings"

	"github.com/rahul0x24/ai-gcm/internal/models"

	"github.com/cockroachdb/errors"
)

// IsAvailable applies the availability rule: split model on the first ':' and
// accept an installed entry equal to the full name, equal to the base name, or
// starting with "<base>:".
func IsAvailable(model string, available []string) bool {
	return models.ModelName(model).MatchesAny(available)
}

// Preflight checks that every distinct model is installed before any diff is
// sent. A missing model is ModelUnavailable with hints naming the pull
// command and the installed models.
func (c *Client) Preflight(ctx context.Context, names ...models.ModelName) error {
	installed, err := c.ListModels(ctx)
	if err != nil {
		return err
	}
	available := make([]string, 0, len(installed))
	for _, m := range installed {
		available = append(available, m.Name)
	}

	for _, name := range models.DistinctModels(names...) {
		if name.MatchesAny(available) {
			continue
		}
		err := errors.WithHintf(
			unavailable("model %q is not installed at %s", name.String(), c.endpoint),
			"run: ollama pull %s", name.String())
		return errors.WithHint(err, InstalledList(available))
	}
	return nil
}

// InstalledList renders installed model names as a numbered list
func InstalledList(available []string) string {
	if len(available) == 0 {
		return "no models are installed"
	}
	var b strings.Builder
	b.WriteString("installed models:")
	for i, name := range available {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, name)
	}
	return b.String()
}
