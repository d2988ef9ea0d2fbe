package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IsRepo checks if a path is a git working tree (has .git dir or file)
func IsRepo(path string) bool {
	info, err := os.Stat(filepath.Join(path, ".git"))
	if err != nil {
		return false
	}
	// .git can be a directory (regular repo) or file (worktree, submodule)
	return info.IsDir() || info.Mode().IsRegular()
}

// IsHidden reports whether a directory entry name is hidden.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// Subdirs returns the non-hidden immediate child directories of root,
// sorted by name.
func Subdirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", root, err)
	}

	var dirs []string
	for _, entry := range entries {
		if IsHidden(entry.Name()) {
			continue
		}
		path := filepath.Join(root, entry.Name())
		// Follow symlinks so linked checkouts are included
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			continue
		}
		dirs = append(dirs, path)
	}
	return dirs, nil
}

// FindRepos returns the non-hidden immediate children of root that are git
// working trees, sorted by name.
func FindRepos(root string) ([]string, error) {
	dirs, err := Subdirs(root)
	if err != nil {
		return nil, err
	}

	var repos []string
	for _, dir := range dirs {
		if IsRepo(dir) {
			repos = append(repos, dir)
		}
	}
	return repos, nil
}
