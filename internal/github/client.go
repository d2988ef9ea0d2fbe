// Package github enumerates GitHub organization repositories and clones
// them into the local source tree.
//
// API access goes through go-github with an oauth2 token taken from
// GITHUB_TOKEN. Cloning itself is delegated to a [Locator], which runs the
// git CLI.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/google/go-github/v32/github"
	"golang.org/x/oauth2"
)

// TokenEnv names the environment variable holding the API token.
const TokenEnv = "GITHUB_TOKEN"

// ErrMissingToken is returned when no API token is available.
var ErrMissingToken = errors.New(TokenEnv + " is not set: export a personal access token to clone an organization")

// Config configures the API client.
type Config struct {
	Token   string
	BaseURL string // GitHub Enterprise API base URL; empty means github.com
}

// repositoriesService is satisfied by go-github's RepositoriesService and by
// fakes in tests.
type repositoriesService interface {
	ListByOrg(ctx context.Context, org string, opts *github.RepositoryListByOrgOptions) ([]*github.Repository, *github.Response, error)
}

// Client wraps the parts of the GitHub API gittem uses.
type Client struct {
	Repositories repositoriesService
}

// TokenFromEnv returns the API token or ErrMissingToken.
func TokenFromEnv() (string, error) {
	token := strings.TrimSpace(os.Getenv(TokenEnv))
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

func newOauthClient(ctx context.Context, token string) *http.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return oauth2.NewClient(ctx, ts)
}

// NewClient creates an authenticated API client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, ErrMissingToken
	}
	tc := newOauthClient(ctx, cfg.Token)

	if cfg.BaseURL == "" {
		return &Client{Repositories: github.NewClient(tc).Repositories}, nil
	}

	gh, err := github.NewEnterpriseClient(cfg.BaseURL, cfg.BaseURL, tc)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub base URL %q: %w", cfg.BaseURL, err)
	}
	return &Client{Repositories: gh.Repositories}, nil
}

// ListOrgRepos returns every repository of org visible to the token,
// following pagination.
func (c *Client) ListOrgRepos(ctx context.Context, org string) ([]*github.Repository, error) {
	opts := &github.RepositoryListByOrgOptions{
		Type:        "all",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var all []*github.Repository
	for {
		repos, resp, err := c.Repositories.ListByOrg(ctx, org, opts)
		if err != nil {
			return nil, fmt.Errorf("list repositories of %s: %w", org, err)
		}
		all = append(all, repos...)
		if resp == nil || resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}

// SSHURL returns the URL gittem clones repo from. The git:// URL is rewritten
// to the scp-like SSH form (git://github.com/o/r.git -> git@github.com:o/r.git)
// so private repositories clone with the user's SSH key.
func SSHURL(repo *github.Repository) string {
	if u := repo.GetGitURL(); strings.HasPrefix(u, "git://") {
		rest := strings.TrimPrefix(u, "git://")
		if i := strings.Index(rest, "/"); i > 0 {
			return "git@" + rest[:i] + ":" + rest[i+1:]
		}
	}
	if u := repo.GetSSHURL(); u != "" {
		return u
	}
	return repo.GetCloneURL()
}
