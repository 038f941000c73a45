package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/kstenerud/repoview/internal/gitinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeRepo creates a repository with one commit per message, oldest first,
// plus a "topic" branch at the first commit.
func makeRepo(t *testing.T, messages ...string) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	var first plumbing.Hash
	for i, msg := range messages {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte(msg), 0600))
		_, err = wt.Add("README")
		require.NoError(t, err)
		hash, err := wt.Commit(msg, &gogit.CommitOptions{
			Author: &object.Signature{
				Name:  "Ada Lovelace",
				Email: "ada@example.com",
				When:  time.Date(2025, 3, 1+i, 9, 30, 0, 0, time.UTC),
			},
		})
		require.NoError(t, err)
		if i == 0 {
			first = hash
		}
	}
	require.NoError(t, repo.Storer.SetReference(
		plumbing.NewHashReference(plumbing.NewBranchReferenceName("topic"), first)))
	return dir
}

func TestInfoCmd(t *testing.T) {
	testHome(t)
	dir := makeRepo(t, "first commit", "second commit")

	out, err := runCLI(t, nil, "info", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Root:")
	assert.Contains(t, out, "Branch: master")
	assert.Contains(t, out, "second commit")
	assert.Contains(t, out, "* master")
	assert.Contains(t, out, "  topic")
	assert.Contains(t, out, "2025-03-01")
}

func TestInfoCmd_CurrentBranchOnly(t *testing.T) {
	testHome(t)
	dir := makeRepo(t, "first commit", "second commit")

	out, err := runCLI(t, nil, "info", "-c", dir)
	require.NoError(t, err)
	assert.NotContains(t, out, "topic")
}

func TestInfoCmd_JSON(t *testing.T) {
	testHome(t)
	dir := makeRepo(t, "first commit")
	t.Setenv(EnvRepo, dir)

	out, err := runCLI(t, nil, "info", "--json")
	require.NoError(t, err)

	var s gitinfo.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, "master", s.CurrentBranch)
	assert.Equal(t, "first commit", s.Head.Subject())
	require.Len(t, s.Branches, 2)
}

func TestInfoCmd_NotARepository(t *testing.T) {
	testHome(t)
	_, err := runCLI(t, nil, "info", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
}

func TestLogCmd(t *testing.T) {
	testHome(t)
	dir := makeRepo(t, "one", "two\n\nbody of two")

	out, err := runCLI(t, nil, "log", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Author: Ada Lovelace <ada@example.com>")
	assert.Contains(t, out, "    body of two")
	assert.Less(t, strings.Index(out, "    two"), strings.Index(out, "    one"))
}

func TestLogCmd_OnelineWithLimit(t *testing.T) {
	testHome(t)
	dir := makeRepo(t, "one", "two", "three")

	out, err := runCLI(t, nil, "log", "--oneline", "-n", "2", dir)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], " three"))
	assert.True(t, strings.HasSuffix(lines[1], " two"))
}

func TestLogCmd_JSON(t *testing.T) {
	testHome(t)
	dir := makeRepo(t, "one", "two")

	out, err := runCLI(t, nil, "log", "--json", dir)
	require.NoError(t, err)

	var commits []gitinfo.Commit
	require.NoError(t, json.Unmarshal([]byte(out), &commits))
	require.Len(t, commits, 2)
	assert.Equal(t, "Ada Lovelace", commits[0].Author)
}

func TestLogCmd_NegativeLimit(t *testing.T) {
	testHome(t)
	_, err := runCLI(t, nil, "log", "--max-count=-1", makeRepo(t, "one"))
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
}

// cancelOnWrite cancels a context on its first write, as an interrupt
// arriving after the first commit reached the pager would.
type cancelOnWrite struct {
	buf    strings.Builder
	cancel context.CancelFunc
}

func (w *cancelOnWrite) Write(p []byte) (int, error) {
	w.cancel()
	return w.buf.Write(p)
}

func TestLogCmd_CancelledMidWalk(t *testing.T) {
	testHome(t)
	dir := makeRepo(t, "one", "two", "three")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := &cancelOnWrite{cancel: cancel}

	err := runCLIContext(t, ctx, out, nil, "log", "--oneline", dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 130, exitCode(err))

	lines := strings.Split(strings.TrimSpace(out.buf.String()), "\n")
	require.Len(t, lines, 1, "each commit is written as soon as it is read")
	assert.True(t, strings.HasSuffix(lines[0], " three"))
}

func TestInfoCmd_CancelledContext(t *testing.T) {
	testHome(t)
	dir := makeRepo(t, "one")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runCLIContext(t, ctx, io.Discard, nil, "info", dir)
	assert.ErrorIs(t, err, context.Canceled)
}
