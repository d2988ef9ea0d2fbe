package git

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/raphi011/gittem/internal/testutil"
)

func TestFindRepos(t *testing.T) {
	t.Parallel()

	root := testutil.TempDir(t)
	mkdir := func(parts ...string) {
		if err := os.MkdirAll(filepath.Join(append([]string{root}, parts...)...), 0755); err != nil {
			t.Fatal(err)
		}
	}

	mkdir("zeta", ".git")
	mkdir("alpha", ".git")
	mkdir("plain")
	mkdir(".hidden", ".git")
	testutil.WriteFile(t, root, "file.txt", "not a dir")
	// worktree-style checkout with a .git file
	testutil.WriteFile(t, root, "linked/.git", "gitdir: /elsewhere\n")

	repos, err := FindRepos(root)
	if err != nil {
		t.Fatalf("FindRepos = %v", err)
	}
	want := []string{
		filepath.Join(root, "alpha"),
		filepath.Join(root, "linked"),
		filepath.Join(root, "zeta"),
	}
	if !reflect.DeepEqual(repos, want) {
		t.Errorf("FindRepos = %v, want %v", repos, want)
	}

	dirs, err := Subdirs(root)
	if err != nil {
		t.Fatalf("Subdirs = %v", err)
	}
	wantDirs := []string{
		filepath.Join(root, "alpha"),
		filepath.Join(root, "linked"),
		filepath.Join(root, "plain"),
		filepath.Join(root, "zeta"),
	}
	if !reflect.DeepEqual(dirs, wantDirs) {
		t.Errorf("Subdirs = %v, want %v", dirs, wantDirs)
	}
}

func TestFindRepos_MissingRoot(t *testing.T) {
	t.Parallel()
	if _, err := FindRepos(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("FindRepos(missing) = nil error, want error")
	}
}

func TestIsHidden(t *testing.T) {
	t.Parallel()
	if !IsHidden(".git") || IsHidden("repo") {
		t.Error("IsHidden misclassified names")
	}
}
