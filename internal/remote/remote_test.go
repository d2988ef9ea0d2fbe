package remote

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/raphi011/gittem/internal/cmd"
	"github.com/raphi011/gittem/internal/git"
)

func TestParse(t *testing.T) {
	t.Parallel()

	want := Ref{Host: "github.com", Owner: "acme", Name: "widget"}

	tests := []struct {
		name string
		url  string
		want Ref
	}{
		{"scp-like with .git", "git@github.com:acme/widget.git", want},
		{"scp-like without .git", "git@github.com:acme/widget", want},
		{"https", "https://github.com/acme/widget", want},
		{"https with .git", "https://github.com/acme/widget.git", want},
		{"https trailing slash", "https://github.com/acme/widget/", want},
		{"http", "http://github.com/acme/widget", want},
		{"git protocol", "git://github.com/acme/widget.git", want},
		{"ssh scheme with port", "ssh://git@github.com:2222/acme/widget.git", want},
		{"https with user", "https://user@github.com/acme/widget.git", want},
		{"nested group", "https://gitlab.com/acme/platform/widget.git",
			Ref{Host: "gitlab.com", Owner: "acme/platform", Name: "widget"}},
		{"file url", "file:///srv/git/acme/widget.git",
			Ref{Host: LocalHost, Owner: "srv/git/acme", Name: "widget"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.url)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.url, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.url, got, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	for _, url := range []string{
		"",
		"   ",
		"https://github.com",
		"https://github.com/acme",
		"git@github.com:widget.git",
	} {
		_, err := Parse(url)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Parse(%q) error = %v, want *ParseError", url, err)
		}
	}
}

func TestRef_Path(t *testing.T) {
	t.Parallel()

	ref := Ref{Host: "github.com", Owner: "acme", Name: "widget"}
	if got, want := ref.Path("/src"), filepath.Join("/src", "github.com", "acme", "widget"); got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
	if got, want := ref.Dir("/src"), filepath.Join("/src", "github.com", "acme"); got != want {
		t.Errorf("Dir = %q, want %q", got, want)
	}
	if got := ref.String(); got != "github.com/acme/widget" {
		t.Errorf("String = %q", got)
	}
}

func TestParse_SameDestinationForAllForms(t *testing.T) {
	t.Parallel()

	urls := []string{
		"git@example.org:team/app.git",
		"https://example.org/team/app",
		"ssh://example.org/team/app.git",
		"git://example.org/team/app",
	}
	var first string
	for _, url := range urls {
		ref, err := Parse(url)
		if err != nil {
			t.Fatalf("Parse(%q) = %v", url, err)
		}
		p := ref.Path("/root")
		if first == "" {
			first = p
		}
		if p != first {
			t.Errorf("Parse(%q).Path = %q, want %q", url, p, first)
		}
	}
}

// cloneRunner simulates git clone by creating the target directory.
type cloneRunner struct {
	calls [][]string
	dirs  []string
	fail  bool
}

func (r *cloneRunner) Run(_ context.Context, dir string, argv ...string) (string, error) {
	r.calls = append(r.calls, argv)
	r.dirs = append(r.dirs, dir)
	if r.fail {
		return "", &cmd.Error{Command: "git clone", Dir: dir, Err: errors.New("permission denied")}
	}
	ref, err := Parse(argv[len(argv)-1])
	if err != nil {
		return "", err
	}
	return "", os.MkdirAll(filepath.Join(dir, ref.Name, ".git"), 0755)
}

func TestLocate_ClonesOnce(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	runner := &cloneRunner{}
	l := &Locator{Git: git.New(runner)}
	ctx := context.Background()
	url := "git@github.com:acme/widget.git"

	first, err := l.Locate(ctx, url, root)
	if err != nil {
		t.Fatalf("Locate = %v", err)
	}
	second, err := l.Locate(ctx, url, root)
	if err != nil {
		t.Fatalf("second Locate = %v", err)
	}

	want := filepath.Join(root, "github.com", "acme", "widget")
	if first != want || second != want {
		t.Errorf("Locate paths = %q, %q, want %q", first, second, want)
	}
	if len(runner.calls) != 1 {
		t.Fatalf("clone invoked %d times, want 1", len(runner.calls))
	}
	if got := runner.calls[0]; len(got) != 3 || got[0] != "git" || got[1] != "clone" || got[2] != url {
		t.Errorf("clone argv = %q", got)
	}
	if runner.dirs[0] != filepath.Join(root, "github.com", "acme") {
		t.Errorf("clone ran in %q, want owner directory", runner.dirs[0])
	}
}

func TestLocate_CloneFailureReturnsPath(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	l := &Locator{Git: git.New(&cloneRunner{fail: true})}

	dest, err := l.Locate(context.Background(), "https://github.com/acme/widget", root)
	if err == nil {
		t.Fatal("Locate with failing clone = nil error, want error")
	}
	if want := filepath.Join(root, "github.com", "acme", "widget"); dest != want {
		t.Errorf("Locate path = %q, want %q", dest, want)
	}
	if _, statErr := os.Stat(filepath.Join(root, "github.com", "acme")); statErr != nil {
		t.Errorf("owner directory not created: %v", statErr)
	}
}

func TestLocate_ParseError(t *testing.T) {
	t.Parallel()

	runner := &cloneRunner{}
	l := &Locator{Git: git.New(runner)}

	dest, err := l.Locate(context.Background(), "https://github.com/only-owner", t.TempDir())
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Locate error = %v, want *ParseError", err)
	}
	if dest != "" {
		t.Errorf("Locate path = %q, want empty", dest)
	}
	if len(runner.calls) != 0 {
		t.Errorf("clone invoked %d times for unparsable URL", len(runner.calls))
	}
}
