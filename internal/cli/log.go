package cli

// ABOUTME: `repoview log` prints the commit history reachable from HEAD.

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/kstenerud/repoview/internal/gitinfo"
	"github.com/spf13/cobra"
)

func newLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log [path]",
		Short: "Show commit history",
		Long: `Show commits reachable from HEAD, newest first.

The path defaults to $REPOVIEW_REPO, then the current directory.`,
		GroupID:     groupInspect,
		Args:        cobra.MaximumNArgs(1),
		Annotations: pagedByDefault(),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("max-count")
			if limit < 0 {
				return NewUsageError("--max-count must not be negative")
			}

			repo, err := openRepo(cmd, args)
			if err != nil {
				return err
			}

			if jsonEnabled(cmd) {
				commits, err := repo.Log(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if commits == nil {
					commits = []gitinfo.Commit{}
				}
				return writeJSON(cmd.OutOrStdout(), commits)
			}

			oneline, _ := cmd.Flags().GetBool("oneline")
			p := newLogPrinter(cmd.OutOrStdout(), oneline)
			return repo.Walk(cmd.Context(), limit, p.print)
		},
	}
	cmd.Flags().IntP("max-count", "n", 0, "Limit the number of commits shown (0 for all)")
	cmd.Flags().Bool("oneline", false, "Show each commit on a single line")
	return cmd
}

// logPrinter renders commits one at a time in git's medium or oneline
// format, so output reaches a pager while the history is still being read.
type logPrinter struct {
	out     io.Writer
	oneline bool
	yellow  func(a ...any) string
	printed int
}

func newLogPrinter(out io.Writer, oneline bool) *logPrinter {
	return &logPrinter{
		out:     out,
		oneline: oneline,
		yellow:  color.New(color.FgYellow).SprintFunc(),
	}
}

func (p *logPrinter) print(c gitinfo.Commit) error {
	defer func() { p.printed++ }()

	if p.oneline {
		_, err := fmt.Fprintf(p.out, "%s %s\n", p.yellow(c.ShortHash()), stripANSI(c.Subject()))
		return err
	}

	var b strings.Builder
	if p.printed > 0 {
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%s\n", p.yellow("commit "+c.Hash))
	fmt.Fprintf(&b, "Author: %s <%s>\n", stripANSI(c.Author), stripANSI(c.Email))
	fmt.Fprintf(&b, "Date:   %s\n\n", c.When.Format("Mon Jan 2 15:04:05 2006 -0700"))
	for _, line := range strings.Split(strings.TrimRight(stripANSI(c.Message), "\n"), "\n") {
		fmt.Fprintf(&b, "    %s\n", line)
	}
	_, err := io.WriteString(p.out, b.String())
	return err
}
