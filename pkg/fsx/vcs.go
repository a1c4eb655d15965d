package fsx

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// IgnoreMatcher reports paths excluded by the enclosing git repository's
// ignore rules. .git directories are always excluded.
type IgnoreMatcher struct {
	repoRoot string
	matcher  gitignore.Matcher
}

var (
	matcherCache   = make(map[string]*IgnoreMatcher)
	matcherCacheMu sync.Mutex
)

// NewIgnoreMatcher returns the matcher for the repository containing dir.
// It returns (nil, nil) outside a repository; a nil matcher ignores nothing.
func NewIgnoreMatcher(dir string) (*IgnoreMatcher, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		slog.Debug("No git repository found", "directory", dir)
		return nil, nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, err
	}
	root := worktree.Filesystem.Root()

	matcherCacheMu.Lock()
	defer matcherCacheMu.Unlock()

	if cached, ok := matcherCache[root]; ok {
		return cached, nil
	}

	patterns, err := gitignore.ReadPatterns(worktree.Filesystem, nil)
	if err != nil {
		slog.Warn("Failed to read gitignore patterns", "path", root, "error", err)
		return nil, err
	}

	m := &IgnoreMatcher{repoRoot: root, matcher: gitignore.NewMatcher(patterns)}
	matcherCache[root] = m
	slog.Debug("Loaded gitignore patterns", "repository", root, "patterns", len(patterns))
	return m, nil
}

// RepoRoot returns the repository root, empty for a nil matcher.
func (m *IgnoreMatcher) RepoRoot() string {
	if m == nil {
		return ""
	}
	return m.repoRoot
}

// ShouldIgnore reports whether path is ignored.
func (m *IgnoreMatcher) ShouldIgnore(path string) bool {
	if m == nil {
		return false
	}

	slashed := filepath.ToSlash(path)
	if filepath.Base(path) == ".git" || strings.Contains(slashed, "/.git/") {
		return true
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(m.repoRoot, abs)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return false
	}

	info, err := os.Stat(abs)
	isDir := err == nil && info.IsDir()
	return m.matcher.Match(strings.Split(filepath.ToSlash(rel), "/"), isDir)
}
