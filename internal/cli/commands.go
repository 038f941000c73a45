package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Command groups shown in help output.
const (
	groupInspect = "inspect"
	groupAdmin   = "admin"
)

// registerCommands adds all subcommands to the root command.
func registerCommands(root *cobra.Command, a *app, version, commit, date string) {
	root.AddCommand(
		newInfoCmd(),
		newLogCmd(),
		newPagerCmd(a),
		newConfigCmd(a),
		newVersionCmd(version, commit, date),
	)

	root.SetHelpCommand(newHelpCmd())
}

func newVersionCmd(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Show version information",
		GroupID: groupAdmin,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "repoview version %s (commit: %s, built: %s)\n", version, commit, date)
			return err
		},
	}
}
