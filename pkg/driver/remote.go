package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// FetchRemote makes the remote suite repository available under cacheDir and
// returns its checkout path. A repository already present in the cache is
// reused; Rev, when set, is resolved and checked out.
func FetchRemote(remote *Remote, cacheDir string) (string, error) {
	if remote == nil {
		return "", fmt.Errorf("driver: nil remote")
	}
	if remote.Name == "" || remote.Git == "" {
		return "", fmt.Errorf("driver: remote requires name and git url")
	}
	if cacheDir == "" {
		return "", fmt.Errorf("driver: empty cache dir")
	}

	dest := filepath.Join(cacheDir, remote.Name)
	repo, err := git.PlainOpen(dest)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		if err := os.MkdirAll(cacheDir, 0o755); err != nil {
			return "", fmt.Errorf("driver: cache dir: %w", err)
		}
		repo, err = git.PlainClone(dest, false, &git.CloneOptions{URL: remote.Git})
		if err != nil {
			return "", fmt.Errorf("driver: clone %s: %w", remote.Git, err)
		}
	} else if err != nil {
		return "", fmt.Errorf("driver: open %s: %w", dest, err)
	}

	if remote.Rev != "" {
		hash, err := repo.ResolveRevision(plumbing.Revision(remote.Rev))
		if err != nil {
			return "", fmt.Errorf("driver: resolve %s@%s: %w", remote.Name, remote.Rev, err)
		}
		worktree, err := repo.Worktree()
		if err != nil {
			return "", fmt.Errorf("driver: worktree %s: %w", remote.Name, err)
		}
		if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash}); err != nil {
			return "", fmt.Errorf("driver: checkout %s@%s: %w", remote.Name, remote.Rev, err)
		}
	}

	return dest, nil
}

// FetchRemotes fetches every remote of the suite, returning checkout paths
// keyed by remote name.
func (s *Suite) FetchRemotes(cacheDir string) (map[string]string, error) {
	paths := make(map[string]string, len(s.Remotes))
	for _, remote := range s.Remotes {
		path, err := FetchRemote(remote, cacheDir)
		if err != nil {
			return nil, err
		}
		paths[remote.Name] = path
	}
	return paths, nil
}

// LoadRemoteSuites loads suite.yml from each fetched remote checkout, in
// remote-name order.
func LoadRemoteSuites(paths map[string]string) ([]*Suite, error) {
	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	sort.Strings(names)

	suites := make([]*Suite, 0, len(names))
	for _, name := range names {
		manifest := filepath.Join(paths[name], "suite.yml")
		suite, err := LoadSuite(manifest)
		if err != nil {
			return nil, fmt.Errorf("driver: remote %s: %w", name, err)
		}
		suites = append(suites, suite)
	}
	return suites, nil
}
