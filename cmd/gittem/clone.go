package main

import (
	"context"
	"io"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/raphi011/gittem/internal/git"
	"github.com/raphi011/gittem/internal/github"
	"github.com/raphi011/gittem/internal/log"
	"github.com/raphi011/gittem/internal/output"
	"github.com/raphi011/gittem/internal/remote"
	"github.com/raphi011/gittem/internal/ui/progress"
)

// cloneRepo clones --repo and prints the destination, even when the clone
// failed, so the output can be fed to cd.
func cloneRepo(ctx context.Context, o *options, pl plan, g *git.Client) {
	l := log.FromContext(ctx)
	loc := &remote.Locator{Git: g}

	dest, err := loc.Locate(ctx, o.repo, pl.srcRoot)
	notify(ctx, err)
	if dest == "" {
		return
	}
	output.FromContext(ctx).Println(dest)

	if o.copy {
		if err := clipboard.WriteAll(dest); err != nil {
			l.Warnf("failed to copy to clipboard: %v", err)
			return
		}
		l.Println("Copied to clipboard")
	}
}

// cloneOrg clones every selected repository of --org.
func cloneOrg(ctx context.Context, o *options, pl plan, g *git.Client, stderr io.Writer) {
	l := log.FromContext(ctx)

	client, err := github.NewClient(ctx, github.Config{Token: pl.token, BaseURL: pl.cfg.GitHub.BaseURL})
	if err != nil {
		notify(ctx, err)
		return
	}

	cloner := &github.Cloner{
		Client:  client,
		Locator: &remote.Locator{Git: g},
	}
	if !pl.quiet {
		cloner.Busy = progress.Busy(stderr)
	}

	report, err := cloner.CloneOrg(ctx, o.org, pl.srcRoot, github.Options{
		Filter:       o.filter,
		SkipArchived: o.skipArchived || pl.cfg.GitHub.SkipArchived,
	})
	notify(ctx, err)

	l.Debug("organization done", "org", o.org, "paths", len(report.Paths), "failed", len(report.Failed), "filtered", report.Filtered)
	if len(report.Failed) > 0 {
		l.Warnf("%d repositories of %s failed to clone: %s", len(report.Failed), o.org, strings.Join(report.Failed, ", "))
	}
}
