package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/kstenerud/repoview/internal/pager"
	"github.com/stretchr/testify/require"
)

// testHome points HOME at a fresh directory with no git config and returns
// the directory config.yaml lives in.
func testHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("GIT_CONFIG_GLOBAL", filepath.Join(home, "no-gitconfig"))
	t.Setenv(EnvRepo, "")
	t.Setenv("NO_COLOR", "1")
	return filepath.Join(home, ".repoview")
}

// writeConfig writes config.yaml under a testHome directory.
func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600))
}

// notTTY returns an open regular file, which is never a terminal.
func notTTY(t *testing.T) *os.File {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "notty")
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

// envLookup serves environment lookups from a map.
func envLookup(env map[string]string) pager.LookupEnvFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

// runCLI executes the command tree with args and returns what it printed.
// The pager sees env instead of the process environment and never finds a
// terminal.
func runCLI(t *testing.T, env map[string]string, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	err := runCLIContext(t, context.Background(), buf, env, args...)
	return buf.String(), err
}

// runCLIContext is runCLI with a caller-supplied context and output writer.
func runCLIContext(t *testing.T, ctx context.Context, out io.Writer, env map[string]string, args ...string) error {
	t.Helper()
	a := &app{pagerOpts: pager.Options{
		Stdin:     notTTY(t),
		Stdout:    notTTY(t),
		LookupEnv: envLookup(env),
	}}
	root := newRootCmd(a, "1.2.3", "abc123", "2026-01-01")

	root.SetOut(out)
	root.SetErr(io.Discard)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	a.terminatePager()
	return err
}
