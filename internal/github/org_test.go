package github

import (
	"bytes"
	"context"
	"errors"
	"path"
	"strings"
	"testing"

	"github.com/google/go-github/v32/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphi011/gittem/internal/log"
	"github.com/raphi011/gittem/internal/output"
)

type fakeRepos struct {
	repos []*github.Repository
	err   error
}

func (f fakeRepos) ListByOrg(context.Context, string, *github.RepositoryListByOrgOptions) ([]*github.Repository, *github.Response, error) {
	return f.repos, &github.Response{}, f.err
}

// fakeLocator records URLs and fails those listed in fail.
type fakeLocator struct {
	urls []string
	fail map[string]bool
}

func (f *fakeLocator) Locate(_ context.Context, url, root string) (string, error) {
	f.urls = append(f.urls, url)
	name := strings.TrimSuffix(path.Base(url), ".git")
	dest := path.Join(root, "github.com", "acme", name)
	if f.fail[name] {
		return dest, errors.New("permission denied")
	}
	return dest, nil
}

func repo(name string, archived bool) *github.Repository {
	return &github.Repository{
		Name:     github.String(name),
		GitURL:   github.String("git://github.com/acme/" + name + ".git"),
		Archived: github.Bool(archived),
	}
}

func orgCtx() (context.Context, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&stderr, false, false))
	return output.WithPrinter(ctx, &stdout), &stdout, &stderr
}

func TestCloneOrg_ContinuesAfterFailure(t *testing.T) {
	ctx, stdout, stderr := orgCtx()
	loc := &fakeLocator{fail: map[string]bool{"api": true}}
	c := &Cloner{
		Client:  &Client{Repositories: fakeRepos{repos: []*github.Repository{repo("api", false), repo("web", false)}}},
		Locator: loc,
	}

	report, err := c.CloneOrg(ctx, "acme", "/src", Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"git@github.com:acme/api.git", "git@github.com:acme/web.git"}, loc.urls)
	assert.Equal(t, []string{"/src/github.com/acme/api", "/src/github.com/acme/web"}, report.Paths)
	assert.Equal(t, []string{"api"}, report.Failed)
	assert.Equal(t, "/src/github.com/acme/api\n/src/github.com/acme/web\n", stdout.String())
	assert.Contains(t, stderr.String(), "api: permission denied")
}

func TestCloneOrg_ListFailure(t *testing.T) {
	ctx, _, _ := orgCtx()
	loc := &fakeLocator{}
	c := &Cloner{
		Client:  &Client{Repositories: fakeRepos{err: errors.New("401 Bad credentials")}},
		Locator: loc,
	}

	_, err := c.CloneOrg(ctx, "acme", "/src", Options{})
	require.Error(t, err)
	assert.Empty(t, loc.urls)
}

func TestCloneOrg_BusyWrapsListing(t *testing.T) {
	ctx, _, _ := orgCtx()
	var events []string
	c := &Cloner{
		Client:  &Client{Repositories: fakeRepos{repos: []*github.Repository{repo("api", false)}}},
		Locator: &fakeLocator{},
		Busy: func(msg string) func() {
			events = append(events, "start: "+msg)
			return func() { events = append(events, "stop") }
		},
	}

	_, err := c.CloneOrg(ctx, "acme", "/src", Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"start: Fetching repositories of acme...", "stop"}, events)
}

func TestSelect(t *testing.T) {
	repos := []*github.Repository{
		repo("billing-api", false),
		repo("web", false),
		repo("billing-legacy", true),
		repo("docs", false),
	}

	names := func(rs []*github.Repository) []string {
		var out []string
		for _, r := range rs {
			out = append(out, r.GetName())
		}
		return out
	}

	assert.Equal(t, []string{"billing-api", "web", "billing-legacy", "docs"}, names(Select(repos, Options{})))
	assert.Equal(t, []string{"billing-api", "web", "docs"}, names(Select(repos, Options{SkipArchived: true})))
	assert.Equal(t, []string{"billing-api", "billing-legacy"}, names(Select(repos, Options{Filter: "bill"})))
	assert.Equal(t, []string{"billing-api"}, names(Select(repos, Options{Filter: "bill", SkipArchived: true})))
}
