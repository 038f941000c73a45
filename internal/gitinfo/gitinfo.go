// Package gitinfo reads repository metadata (HEAD, branches, history) for
// display. It only reads; nothing here modifies a repository.
package gitinfo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-git/go-git/v6/plumbing/storer"
)

var (
	// ErrNotRepository is returned when the path is not inside a git repository.
	ErrNotRepository = errors.New("not a git repository")

	// ErrNoCommits is returned for a repository whose HEAD has no commit yet.
	ErrNoCommits = errors.New("repository has no commits")
)

// Commit is the displayable part of a commit.
type Commit struct {
	Hash    string    `json:"hash"`
	Author  string    `json:"author"`
	Email   string    `json:"email"`
	When    time.Time `json:"when"`
	Message string    `json:"message"`
}

// ShortHash returns the first seven characters of the hash.
func (c Commit) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// Subject returns the first line of the message.
func (c Commit) Subject() string {
	subject, _, _ := strings.Cut(strings.TrimSpace(c.Message), "\n")
	return subject
}

// Branch is a local branch and the commit it points at.
type Branch struct {
	Name    string `json:"name"`
	Current bool   `json:"current"`
	Tip     Commit `json:"tip"`
}

// Summary describes a repository's current state.
type Summary struct {
	Root string `json:"root"`
	// CurrentBranch is empty when HEAD is detached.
	CurrentBranch string   `json:"current_branch"`
	Head          Commit   `json:"head"`
	Branches      []Branch `json:"branches"`
}

// Repo is an opened repository.
type Repo struct {
	repo *gogit.Repository
	root string
}

// Open opens the repository containing path, walking up to find it.
//
// Returns ErrNotRepository (wrapped) if path is not inside a git repository.
func Open(path string) (*Repo, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotRepository, path)
		}
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	root := path
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}
	return &Repo{repo: repo, root: root}, nil
}

// NewWithRepository wraps an already opened repository.
func NewWithRepository(repo *gogit.Repository, root string) *Repo {
	return &Repo{repo: repo, root: root}
}

// Root returns the repository's top-level directory.
func (r *Repo) Root() string { return r.root }

// Summary returns HEAD, the current branch and all local branches sorted by
// name. With currentOnly set, only the checked-out branch is listed.
func (r *Repo) Summary(ctx context.Context, currentOnly bool) (*Summary, error) {
	head, err := r.head()
	if err != nil {
		return nil, err
	}
	headCommit, err := r.commit(head.Hash())
	if err != nil {
		return nil, err
	}

	s := &Summary{Root: r.root, Head: headCommit}
	if head.Name().IsBranch() {
		s.CurrentBranch = head.Name().Short()
	}

	iter, err := r.repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		current := ref.Name() == head.Name()
		if currentOnly && !current {
			return nil
		}
		tip, err := r.commit(ref.Hash())
		if err != nil {
			return err
		}
		s.Branches = append(s.Branches, Branch{Name: ref.Name().Short(), Current: current, Tip: tip})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(s.Branches, func(i, j int) bool { return s.Branches[i].Name < s.Branches[j].Name })
	return s, nil
}

// Walk calls fn for up to limit commits reachable from HEAD, newest first,
// as each is read. A limit of zero or less means no limit. The walk stops
// with ctx's error once ctx is done, or with fn's error.
func (r *Repo) Walk(ctx context.Context, limit int, fn func(Commit) error) error {
	head, err := r.head()
	if err != nil {
		return err
	}

	iter, err := r.repo.Log(&gogit.LogOptions{From: head.Hash()})
	if err != nil {
		return fmt.Errorf("reading log: %w", err)
	}
	defer iter.Close()

	seen := 0
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if limit > 0 && seen >= limit {
			return storer.ErrStop
		}
		seen++
		return fn(toCommit(c))
	})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("reading log: %w", err)
	}
	return nil
}

// Log returns up to limit commits reachable from HEAD, newest first.
func (r *Repo) Log(ctx context.Context, limit int) ([]Commit, error) {
	var commits []Commit
	err := r.Walk(ctx, limit, func(c Commit) error {
		commits = append(commits, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return commits, nil
}

func (r *Repo) head() (*plumbing.Reference, error) {
	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, ErrNoCommits
		}
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}
	return head, nil
}

func (r *Repo) commit(hash plumbing.Hash) (Commit, error) {
	c, err := r.repo.CommitObject(hash)
	if err != nil {
		return Commit{}, fmt.Errorf("reading commit %s: %w", hash, err)
	}
	return toCommit(c), nil
}

func toCommit(c *object.Commit) Commit {
	return Commit{
		Hash:    c.Hash.String(),
		Author:  c.Author.Name,
		Email:   c.Author.Email,
		When:    c.Author.When,
		Message: c.Message,
	}
}
