// Package cli defines the Cobra command tree for the repoview CLI.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/kstenerud/repoview/internal/config"
	"github.com/kstenerud/repoview/internal/pager"
	"github.com/spf13/cobra"
)

// app is the state shared by every command of one invocation.
type app struct {
	cfg   *config.Config
	pager *pager.Session

	// pagerOpts seeds the pager session; tests replace the terminal and
	// stream fields.
	pagerOpts pager.Options
}

// Execute runs the root command and returns the exit code.
func Execute(ctx context.Context, version, commit, date string) int {
	a := &app{}
	rootCmd := newRootCmd(a, version, commit, date)

	err := rootCmd.ExecuteContext(ctx)
	if errors.Is(err, context.Canceled) {
		var interrupted *InterruptedError
		if errors.As(context.Cause(ctx), &interrupted) {
			err = interrupted
		}
	}

	// Flush paged output before anything else reaches the terminal.
	a.terminatePager()

	if err == nil {
		return 0
	}

	var launchErr *pager.LaunchError
	if errors.As(err, &launchErr) {
		fmt.Fprintln(os.Stderr, launchErr) //nolint:errcheck // best-effort stderr write
	} else {
		fmt.Fprintf(os.Stderr, "repoview: %s\n", err) //nolint:errcheck // best-effort stderr write
	}
	return exitCode(err)
}

// exitCode maps an error returned by a command to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var launchErr *pager.LaunchError
	if errors.As(err, &launchErr) {
		return launchErr.ExitCode()
	}

	var interrupted *InterruptedError
	if errors.As(err, &interrupted) {
		return interrupted.ExitCode()
	}
	if errors.Is(err, context.Canceled) {
		return 130
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return 2
	}

	var configErr *config.ConfigError
	if errors.As(err, &configErr) {
		return 3
	}

	return 1
}

// newRootCmd creates the root Cobra command with all subcommands registered.
func newRootCmd(a *app, version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "repoview",
		Short: "Inspect git repositories, paged like git does it",
		Long: `Show repository state and history. Long output goes through your
pager (GIT_PAGER, core.pager, PAGER or less) when writing to a terminal,
exactly as git would choose it.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (-v for debug)")
	rootCmd.PersistentFlags().CountP("quiet", "q", "Suppress non-essential output (-q for warn, -qq for error only)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolP("paginate", "p", false, "Page output even if the command doesn't by default")
	rootCmd.PersistentFlags().Bool("no-pager", false, "Do not page output")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupInspect, Title: "Inspect:"},
		&cobra.Group{ID: groupAdmin, Title: "Admin:"},
	)

	registerCommands(rootCmd, a, version, commit, date)

	return rootCmd
}

// setup runs before every command: logging, config, pager, then color,
// which depends on whether the pager started.
func (a *app) setup(cmd *cobra.Command) error {
	setupLogging(cmd)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := a.startPager(cmd); err != nil {
		return err
	}

	return a.configureColor(cmd)
}
