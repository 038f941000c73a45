package cli

// ABOUTME: Tests for the config get/set CLI commands.

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigGet_WholeFile(t *testing.T) {
	content := "# mine\ncore:\n  pager: less -S\n"
	writeConfig(t, testHome(t), content)

	out, err := runCLI(t, nil, "config", "get")
	require.NoError(t, err)
	assert.Equal(t, content, out)
}

func TestConfigGet_NoFile(t *testing.T) {
	testHome(t)
	out, err := runCLI(t, nil, "config", "get")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestConfigGet_ScalarKey(t *testing.T) {
	writeConfig(t, testHome(t), "core:\n  pager: less -S\ncolor:\n  ui: never\n")

	out, err := runCLI(t, nil, "config", "get", "core.pager")
	require.NoError(t, err)
	assert.Equal(t, "less -S\n", out)
}

func TestConfigGet_FallsBackToGitConfig(t *testing.T) {
	testHome(t)
	gitconfig := filepath.Join(t.TempDir(), "gitconfig")
	require.NoError(t, os.WriteFile(gitconfig, []byte("[core]\n\tpager = most\n"), 0600))
	t.Setenv("GIT_CONFIG_GLOBAL", gitconfig)

	out, err := runCLI(t, nil, "config", "get", "core.pager")
	require.NoError(t, err)
	assert.Equal(t, "most\n", out)
}

func TestConfigGet_MissingKey(t *testing.T) {
	testHome(t)
	_, err := runCLI(t, nil, "config", "get", "core.pager")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errKeyNotFound))
	assert.Equal(t, 1, exitCode(err))
}

func TestConfigSet_ExistingFile(t *testing.T) {
	dir := testHome(t)
	writeConfig(t, dir, "# my config\ncore:\n  pager: less\n")

	_, err := runCLI(t, nil, "config", "set", "core.pager", "more")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml")) //nolint:gosec // G304: test code with temp dir path
	require.NoError(t, err)
	assert.Contains(t, string(data), "pager: more")
	assert.Contains(t, string(data), "my config")
}

func TestConfigSet_NoFile(t *testing.T) {
	dir := testHome(t)

	_, err := runCLI(t, nil, "config", "set", "pager.log", "false")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml")) //nolint:gosec // G304: test code with temp dir path
	require.NoError(t, err)
	assert.Contains(t, string(data), "log: false")

	out, err := runCLI(t, nil, "config", "get", "pager.log")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

func TestConfigSet_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"core.pagerStrategy", "sideways"},
		{"color.ui", "sometimes"},
		{"pager.info", "perhaps"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			dir := testHome(t)
			_, err := runCLI(t, nil, "config", "set", tt.key, tt.value)
			require.Error(t, err)
			assert.Equal(t, 2, exitCode(err))
			_, statErr := os.Stat(filepath.Join(dir, "config.yaml"))
			assert.True(t, os.IsNotExist(statErr), "nothing written")
		})
	}
}

func TestConfigSet_RequiresTwoArgs(t *testing.T) {
	testHome(t)
	_, err := runCLI(t, nil, "config", "set", "core.pager")
	assert.Error(t, err)
}
