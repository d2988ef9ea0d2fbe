package main

import (
	"context"

	"github.com/raphi011/gittem/internal/git"
	"github.com/raphi011/gittem/internal/log"
	"github.com/raphi011/gittem/internal/output"
	"github.com/raphi011/gittem/internal/update"
)

// runCommand runs --cmd in the working directory or, with --recurse, in
// each of its subdirectories.
func runCommand(ctx context.Context, o *options, pl plan, g *git.Client) {
	wd, err := workDir()
	if err != nil {
		notify(ctx, err)
		return
	}

	log.FromContext(ctx).Debug("running git command", "cmd", o.command, "recurse", o.recurse)
	_, err = update.Exec(ctx, g, wd, update.GitArgs(pl.argv), o.recurse)
	notify(ctx, err)
}

// updateAll runs the branch-preserving update for every repository
// under --update.
func updateAll(ctx context.Context, o *options, g *git.Client) {
	root, err := absPath(o.update)
	if err != nil {
		notify(ctx, err)
		return
	}

	s := &update.Syncer{Git: g}
	results, err := s.All(ctx, root)
	notify(ctx, err)

	if o.summary && len(results) > 0 {
		p := output.FromContext(ctx)
		p.Println()
		update.Summary(p, results)
	}
}
