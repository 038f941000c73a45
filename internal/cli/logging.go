package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// stderrWriter writes to whatever os.Stderr is at the time of the write, so
// log lines follow stderr into the pager while one is running.
type stderrWriter struct{}

func (stderrWriter) Write(p []byte) (int, error) { return os.Stderr.Write(p) }

// logLevel maps the -v/-q counts to a level: info by default, debug with
// -v, warn with -q and error with -qq.
func logLevel(verbose, quiet int) slog.Level {
	switch {
	case verbose > 0:
		return slog.LevelDebug
	case quiet >= 2:
		return slog.LevelError
	case quiet == 1:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// setupLogging installs the default logger for this run.
func setupLogging(cmd *cobra.Command) {
	verbose, _ := cmd.Flags().GetCount("verbose")
	quiet, _ := cmd.Flags().GetCount("quiet")

	handler := slog.NewTextHandler(stderrWriter{}, &slog.HandlerOptions{Level: logLevel(verbose, quiet)})
	slog.SetDefault(slog.New(handler))
}
