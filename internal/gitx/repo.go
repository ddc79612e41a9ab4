// Package gitx locates the repository a conversion runs in.
package gitx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotRepository is returned when no enclosing repository is found.
var ErrNotRepository = errors.New("not in a git repository")

// GitRepo provides an abstraction for git repository operations.
type GitRepo interface {
	// Discover finds the git repository root starting from cwd.
	Discover(cwd string) (root string, err error)
}

// RealGitRepo implements GitRepo by inspecting the filesystem.
type RealGitRepo struct{}

// NewRealGitRepo creates a new RealGitRepo.
func NewRealGitRepo() *RealGitRepo {
	return &RealGitRepo{}
}

// Discover finds the git repository root by walking up from cwd looking for .git.
func (g *RealGitRepo) Discover(cwd string) (string, error) {
	absPath, err := filepath.Abs(cwd)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	current := absPath
	for {
		gitDir := filepath.Join(current, ".git")
		if info, err := os.Stat(gitDir); err == nil {
			// .git can be a directory or a file (for worktrees/submodules)
			if info.IsDir() || info.Mode().IsRegular() {
				return current, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrNotRepository
		}
		current = parent
	}
}

// ResolveRoot returns the repository root enclosing cwd, or cwd itself
// (made absolute) when it is not inside a repository.
func ResolveRoot(repo GitRepo, cwd string) (string, error) {
	root, err := repo.Discover(cwd)
	if err == nil {
		return root, nil
	}
	if !errors.Is(err, ErrNotRepository) {
		return "", err
	}
	return filepath.Abs(cwd)
}

// FakeGitRepo implements GitRepo with predetermined values for testing.
type FakeGitRepo struct {
	root string
	err  error
}

// NewFakeGitRepo creates a new FakeGitRepo.
func NewFakeGitRepo(root string) *FakeGitRepo {
	return &FakeGitRepo{root: root}
}

// SetError sets an error to be returned by Discover.
func (g *FakeGitRepo) SetError(err error) {
	g.err = err
}

// Discover returns the predetermined root.
func (g *FakeGitRepo) Discover(cwd string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.root, nil
}
