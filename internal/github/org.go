package github

import (
	"context"

	"github.com/google/go-github/v32/github"
	"github.com/sahilm/fuzzy"

	"github.com/raphi011/gittem/internal/log"
	"github.com/raphi011/gittem/internal/output"
)

// Locator clones a remote URL under root and returns the local path.
type Locator interface {
	Locate(ctx context.Context, url, root string) (string, error)
}

// Options narrows which organization repositories are cloned.
type Options struct {
	Filter       string // fuzzy match on repository name; empty keeps all
	SkipArchived bool
}

// Report summarizes a CloneOrg run.
type Report struct {
	Paths    []string // destinations printed, including those of failed clones
	Failed   []string // names of repositories whose clone failed
	Filtered int      // repositories left out by Options
}

// Cloner clones all repositories of an organization, one at a time.
type Cloner struct {
	Client  *Client
	Locator Locator

	// Busy, if set, is called while the repository list is fetched.
	// The returned func is called when the listing is done.
	Busy func(msg string) func()
}

// CloneOrg clones every repository of org into root/host/owner/repo.
// A repository that fails to clone is reported and skipped; only a failure
// to list the organization is returned as an error.
func (c *Cloner) CloneOrg(ctx context.Context, org, root string, opts Options) (Report, error) {
	l := log.FromContext(ctx)
	p := output.FromContext(ctx)

	done := func() {}
	if c.Busy != nil {
		done = c.Busy("Fetching repositories of " + org + "...")
	}
	repos, err := c.Client.ListOrgRepos(ctx, org)
	done()
	if err != nil {
		return Report{}, err
	}

	selected := Select(repos, opts)
	report := Report{Filtered: len(repos) - len(selected)}
	l.Debug("cloning organization", "org", org, "repos", len(selected), "filtered", report.Filtered)

	for _, repo := range selected {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		url := SSHURL(repo)
		dest, err := c.Locator.Locate(ctx, url, root)
		if dest != "" {
			p.Println(dest)
			report.Paths = append(report.Paths, dest)
		}
		if err != nil {
			l.Errorf("%s: %v", repo.GetName(), err)
			report.Failed = append(report.Failed, repo.GetName())
		}
	}
	return report, nil
}

// Select applies opts to repos, keeping API order.
func Select(repos []*github.Repository, opts Options) []*github.Repository {
	keep := make([]bool, len(repos))
	for i, r := range repos {
		keep[i] = !(opts.SkipArchived && r.GetArchived())
	}

	if opts.Filter != "" {
		names := make([]string, len(repos))
		for i, r := range repos {
			names[i] = r.GetName()
		}
		matched := make([]bool, len(repos))
		for _, m := range fuzzy.Find(opts.Filter, names) {
			matched[m.Index] = true
		}
		for i := range keep {
			keep[i] = keep[i] && matched[i]
		}
	}

	var selected []*github.Repository
	for i, r := range repos {
		if keep[i] {
			selected = append(selected, r)
		}
	}
	return selected
}
