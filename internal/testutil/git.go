// Package testutil builds throwaway git repositories for tests.
//
// Every helper shells out to the real git binary and fails the test on
// error. Commits use an inline identity so tests never depend on the
// caller's global git config.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TempDir returns t.TempDir() with symlinks resolved.
// This is needed on macOS where /var is a symlink to /private/var.
func TempDir(t testing.TB) string {
	t.Helper()
	dir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatalf("failed to resolve symlinks for %s: %v", dir, err)
	}
	return resolved
}

// Git runs git in dir and returns trimmed stdout.
func Git(t testing.TB, dir string, args ...string) string {
	t.Helper()
	full := append([]string{
		"-c", "user.email=test@test.com",
		"-c", "user.name=Test User",
		"-c", "commit.gpgsign=false",
		"-c", "init.defaultBranch=main",
	}, args...)
	c := exec.Command("git", full...)
	c.Dir = dir
	out, err := c.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s in %s failed: %v\n%s", strings.Join(args, " "), dir, err, out)
	}
	return strings.TrimSpace(string(out))
}

// WriteFile writes content to dir/name, creating parent directories.
func WriteFile(t testing.TB, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// Commit writes a file and commits it.
func Commit(t testing.TB, dir, name, content, msg string) {
	t.Helper()
	WriteFile(t, dir, name, content)
	Git(t, dir, "add", name)
	Git(t, dir, "commit", "-m", msg)
}

// NewOrigin creates a bare repository under parent with one commit on main.
// Returns the origin path, usable as a clone URL.
func NewOrigin(t testing.TB, parent, name string) string {
	t.Helper()
	origin := filepath.Join(parent, name+".git")
	Git(t, parent, "init", "--bare", "-b", "main", origin)

	seed := filepath.Join(parent, name+"-seed")
	Git(t, parent, "init", "-b", "main", seed)
	Commit(t, seed, "README.md", "# "+name+"\n", "Initial commit")
	Git(t, seed, "remote", "add", "origin", origin)
	Git(t, seed, "push", "origin", "main")
	return origin
}

// Clone clones origin into dest. The clone has refs/remotes/origin/HEAD set
// and a local identity, so code under test can stash and commit in it.
func Clone(t testing.TB, origin, dest string) string {
	t.Helper()
	Git(t, filepath.Dir(dest), "clone", origin, dest)
	Configure(t, dest)
	return dest
}

// Configure sets a repository-local identity and disables signing.
func Configure(t testing.TB, repo string) {
	t.Helper()
	Git(t, repo, "config", "user.email", "test@test.com")
	Git(t, repo, "config", "user.name", "Test User")
	Git(t, repo, "config", "commit.gpgsign", "false")
	Git(t, repo, "config", "pull.rebase", "false")
}

// PushCommit clones origin into a scratch directory, commits a file on main
// and pushes it, simulating upstream activity.
func PushCommit(t testing.TB, origin, name, content string) {
	t.Helper()
	work := filepath.Join(TempDir(t), "upstream")
	Clone(t, origin, work)
	Commit(t, work, name, content, "Upstream change to "+name)
	Git(t, work, "push", "origin", "main")
}
