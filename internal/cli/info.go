package cli

// ABOUTME: `repoview info` shows the repository root, HEAD and local branches.

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/kstenerud/repoview/internal/gitinfo"
	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info [path]",
		Short: "Show repository state and branches",
		Long: `Show the repository root, the HEAD commit, the current branch and every
local branch with its tip commit.

The path defaults to $REPOVIEW_REPO, then the current directory.`,
		GroupID:     groupInspect,
		Args:        cobra.MaximumNArgs(1),
		Annotations: pagedByDefault(),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openRepo(cmd, args)
			if err != nil {
				return err
			}

			currentOnly, _ := cmd.Flags().GetBool("current-branch")
			summary, err := repo.Summary(cmd.Context(), currentOnly)
			if err != nil {
				return err
			}

			if jsonEnabled(cmd) {
				return writeJSON(cmd.OutOrStdout(), summary)
			}
			return printSummary(cmd.OutOrStdout(), summary)
		},
	}
	cmd.Flags().BoolP("current-branch", "c", false, "Only list the checked-out branch")
	return cmd
}

// printSummary renders a repository summary for a terminal.
func printSummary(out io.Writer, s *gitinfo.Summary) error {
	bold := color.New(color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	branch := stripANSI(s.CurrentBranch)
	if branch == "" {
		branch = "(detached HEAD)"
	}

	fmt.Fprintf(out, "%s %s\n", bold("Root:  "), s.Root)                                                     //nolint:errcheck // best-effort output
	fmt.Fprintf(out, "%s %s\n", bold("Branch:"), green(branch))                                              //nolint:errcheck // best-effort output
	fmt.Fprintf(out, "%s %s %s\n", bold("HEAD:  "), yellow(s.Head.ShortHash()), stripANSI(s.Head.Subject())) //nolint:errcheck // best-effort output
	fmt.Fprintln(out)                                                                                        //nolint:errcheck // best-effort output

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  BRANCH\tCOMMIT\tDATE\tSUBJECT") //nolint:errcheck // best-effort output
	for _, b := range s.Branches {
		// tabwriter counts escape bytes: only color a column on every row.
		marker := " "
		if b.Current {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s\t%s\t%s\t%s\n", //nolint:errcheck // best-effort output
			marker, stripANSI(b.Name), yellow(b.Tip.ShortHash()), b.Tip.When.Format("2006-01-02"), stripANSI(b.Tip.Subject()))
	}
	return w.Flush()
}
