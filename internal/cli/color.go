package cli

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/kstenerud/repoview/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type colorMode int

const (
	colorAuto colorMode = iota
	colorAlways
	colorNever
)

// parseColorMode parses color.ui. git's boolean spellings are accepted.
func parseColorMode(s string) (colorMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return colorAuto, true
	case "always", "true", "yes", "on", "1":
		return colorAlways, true
	case "never", "false", "no", "off", "0":
		return colorNever, true
	default:
		return colorAuto, false
	}
}

// configureColor turns colored output on or off for this run. In auto mode
// output is colored when stdout is a terminal or a pager is displaying it.
func (a *app) configureColor(cmd *cobra.Command) error {
	mode := colorNever
	if noColor, _ := cmd.Flags().GetBool("no-color"); !noColor {
		raw := a.cfg.GetString(config.KeyColorUI)
		m, ok := parseColorMode(raw)
		if !ok {
			return config.NewConfigError("%s: unknown value %q (valid: auto, always, never)", config.KeyColorUI, raw)
		}
		mode = m
	}

	switch mode {
	case colorAlways:
		color.NoColor = false
	case colorNever:
		color.NoColor = true
	default:
		paged := a.pager != nil && a.pager.Active()
		color.NoColor = os.Getenv("NO_COLOR") != "" || !(paged || stdoutIsTerminal())
	}
	return nil
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // fd conversion is safe on all supported platforms
}
