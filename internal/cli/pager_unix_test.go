//go:build unix

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/creack/pty"
	"github.com/fatih/color"
	"github.com/kstenerud/repoview/internal/pager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExecute_PipeStrategyPagesOutput runs a command on a simulated terminal
// with the pipe strategy and a pager that copies its input to a file.
func TestExecute_PipeStrategyPagesOutput(t *testing.T) {
	writeConfig(t, testHome(t), "core:\n  pagerStrategy: pipe\n")
	t.Setenv("NO_COLOR", "")

	ptmx, tty, err := pty.Open()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = tty.Close()
		_ = ptmx.Close()
	})

	captured := filepath.Join(t.TempDir(), "paged.txt")
	origStdout, origStderr := os.Stdout, os.Stderr
	origNoColor := color.NoColor
	t.Cleanup(func() { color.NoColor = origNoColor })

	a := &app{pagerOpts: pager.Options{
		Stdin:  tty,
		Stdout: tty,
		LookupEnv: envLookup(map[string]string{
			"GIT_PAGER": "sh -c 'cat > " + captured + "'",
		}),
	}}
	root := newRootCmd(a, "1.2.3", "abc123", "2026-01-01")
	root.SetArgs([]string{"--paginate", "version"})

	err = root.Execute()
	require.NoError(t, err)
	assert.True(t, a.pager.Active())
	assert.False(t, color.NoColor, "color follows an active pager")

	a.terminatePager()
	assert.False(t, a.pager.Active())
	assert.Same(t, origStdout, os.Stdout)
	assert.Same(t, origStderr, os.Stderr)

	data, err := os.ReadFile(captured) //nolint:gosec // G304: test temp path
	require.NoError(t, err)
	assert.Equal(t, "repoview version 1.2.3 (commit: abc123, built: 2026-01-01)\n", string(data))
}

func TestExecute_PipeStrategyMissingPager(t *testing.T) {
	writeConfig(t, testHome(t), "core:\n  pagerStrategy: pipe\n")

	ptmx, tty, err := pty.Open()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = tty.Close()
		_ = ptmx.Close()
	})

	origStdout := os.Stdout
	a := &app{pagerOpts: pager.Options{
		Stdin:     tty,
		Stdout:    tty,
		LookupEnv: envLookup(map[string]string{"PAGER": "definitely-not-a-pager-xyz"}),
	}}
	root := newRootCmd(a, "1.2.3", "abc123", "2026-01-01")
	root.SetArgs([]string{"log"})

	err = root.Execute()
	a.terminatePager()

	require.Error(t, err)
	assert.Equal(t, 255, exitCode(err))
	assert.Contains(t, err.Error(), `cannot start pager "definitely-not-a-pager-xyz"`)
	assert.Same(t, origStdout, os.Stdout)
}
