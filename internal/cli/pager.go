package cli

import (
	"fmt"
	"log/slog"

	"github.com/kstenerud/repoview/internal/config"
	"github.com/kstenerud/repoview/internal/pager"
	"github.com/spf13/cobra"
)

// annotationPaged marks a command whose output is paged by default.
const annotationPaged = "paged"

// pagedByDefault returns the annotations for a command that pages unless
// told otherwise.
func pagedByDefault() map[string]string {
	return map[string]string{annotationPaged: "true"}
}

// wantPager decides whether cmd's output should be paged. Flags win over
// config pager.<command>, which wins over the command's own default.
func wantPager(cmd *cobra.Command, cfg *config.Config) (bool, error) {
	paginate, _ := cmd.Flags().GetBool("paginate")
	noPager, _ := cmd.Flags().GetBool("no-pager")

	switch {
	case paginate && noPager:
		return false, NewUsageError("--paginate and --no-pager are mutually exclusive")
	case noPager:
		return false, nil
	case paginate:
		return true, nil
	}

	key := config.PagerKeyPrefix + cmd.Name()
	if v, ok := cfg.GetBool(key); ok {
		return v, nil
	}
	if raw, set := cfg.Lookup(key); set {
		return false, config.NewConfigError("%s: %q is not a boolean", key, raw)
	}

	return cmd.Annotations[annotationPaged] == "true", nil
}

// startPager creates the pager session and starts paging when cmd wants it.
// A re-executed pager worker always runs the session so it knows its output
// is being paged.
func (a *app) startPager(cmd *cobra.Command) error {
	strategy, err := pager.ParseStrategy(a.cfg.GetString(config.KeyPagerStrategy))
	if err != nil {
		return config.NewConfigError("%s: %w", config.KeyPagerStrategy, err)
	}

	opts := a.pagerOpts
	opts.Config = a.cfg
	opts.Strategy = strategy
	a.pager = pager.NewSession(opts)

	if a.pager.Role() != pager.RoleWorker {
		want, err := wantPager(cmd, a.cfg)
		if err != nil {
			return err
		}
		if !want {
			slog.Debug("paging not requested", "command", cmd.Name())
			return nil
		}
	}

	return a.pager.Run()
}

// terminatePager stops a running pager, if any.
func (a *app) terminatePager() {
	if a.pager != nil {
		a.pager.Terminate()
	}
}

// pagerReport is what `repoview pager` prints.
type pagerReport struct {
	Pager    string `json:"pager"`
	Source   string `json:"source"`
	Strategy string `json:"strategy"`
	Disabled bool   `json:"disabled"`
}

func newPagerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pager",
		Short: "Show which pager would be used and why",
		Long: `Show the pager repoview runs for paged commands, where that choice came
from (GIT_PAGER, core.pager, PAGER or the built-in default) and how it is
attached to the output.`,
		GroupID: groupAdmin,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			choice, source := a.pager.Choice()
			report := pagerReport{
				Pager:    choice,
				Source:   string(source),
				Strategy: string(a.pager.Strategy()),
				Disabled: pager.Disabled(choice),
			}

			out := cmd.OutOrStdout()
			if jsonEnabled(cmd) {
				return writeJSON(out, report)
			}

			display := report.Pager
			if report.Disabled {
				display = fmt.Sprintf("%q (paging disabled)", report.Pager)
			}
			fmt.Fprintf(out, "Pager:    %s\n", display)         //nolint:errcheck // best-effort output
			fmt.Fprintf(out, "Source:   %s\n", report.Source)   //nolint:errcheck // best-effort output
			fmt.Fprintf(out, "Strategy: %s\n", report.Strategy) //nolint:errcheck // best-effort output
			return nil
		},
	}
}
