package update

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/raphi011/gittem/internal/git"
	"github.com/raphi011/gittem/internal/log"
	"github.com/raphi011/gittem/internal/output"
	"github.com/raphi011/gittem/internal/ui/styles"
)

// Step is the outcome of one git invocation.
type Step struct {
	Command string
	Output  string
	Err     error
}

// Result describes one sync. Path is always the repository that was passed in.
type Result struct {
	Path          string
	CurrentBranch string
	DefaultBranch string
	Stashed       bool // stash push created an entry
	Popped        bool // stash pop succeeded
	Steps         []Step
}

// Skipped reports whether the sync stopped before touching the repository
// because a branch could not be determined.
func (r Result) Skipped() bool {
	return r.CurrentBranch == "" || r.DefaultBranch == ""
}

// Failed returns the steps that returned an error.
func (r Result) Failed() []Step {
	var failed []Step
	for _, s := range r.Steps {
		if s.Err != nil {
			failed = append(failed, s)
		}
	}
	return failed
}

// Commands returns the command lines in the order they ran.
func (r Result) Commands() []string {
	cmds := make([]string, len(r.Steps))
	for i, s := range r.Steps {
		cmds[i] = s.Command
	}
	return cmds
}

// Syncer runs the branch-preserving update.
type Syncer struct {
	Git *git.Client
}

// Sync updates the default branch of the repository at path and returns to
// the branch that was checked out, restoring uncommitted work.
func (s *Syncer) Sync(ctx context.Context, path string) (res Result) {
	res.Path = path
	l := log.FromContext(ctx)
	p := output.FromContext(ctx)

	cur := s.query(ctx, &res, git.CurrentBranchArgs...)
	current := strings.TrimSpace(cur.Output)
	if cur.Err != nil || current == "" {
		l.Debug("skipping: no current branch", "path", path)
		return res
	}
	// rev-parse reports a detached HEAD as "HEAD"; there is no branch to return to.
	if current == "HEAD" {
		l.Debug("skipping: detached HEAD", "path", path)
		return res
	}

	ref := s.query(ctx, &res, git.DefaultBranchArgs...)
	def := git.BranchFromRef(ref.Output)
	if ref.Err != nil || def == "" {
		l.Debug("skipping: no default branch", "path", path)
		return res
	}

	res.CurrentBranch = current
	res.DefaultBranch = def
	p.Printf("current_branch = %s\n", current)
	p.Printf("default_ref = %s\n", strings.TrimSpace(ref.Output))
	p.Printf("default_branch = %s\n", def)

	if current == def {
		s.pull(ctx, &res, def)
		return res
	}

	push := s.exec(ctx, &res, "stash", "push")
	res.Stashed = push.Err == nil && git.StashCreated(push.Output)
	if res.Stashed {
		p.Println("--- git stashed, need to pop it later...")
	}

	// Restore runs even if ctx is cancelled mid-way.
	defer func() {
		cleanup := context.WithoutCancel(ctx)
		back := s.exec(cleanup, &res, "checkout", current)
		if !res.Stashed {
			return
		}
		if back.Err != nil {
			l.Warnf("could not return to %s in %s, applying stash to the branch that is checked out", current, path)
		}
		pop := s.exec(cleanup, &res, "stash", "pop")
		res.Popped = pop.Err == nil
		if !res.Popped {
			l.Warnf("stash pop failed in %s, your changes are still in `git stash list`", path)
		}
	}()

	if co := s.exec(ctx, &res, "checkout", def); co.Err != nil {
		l.Warnf("skipping pull in %s: could not check out %s", path, def)
		return res
	}
	if ctx.Err() != nil {
		return res
	}
	s.pull(ctx, &res, def)
	return res
}

// pull runs `git pull origin <branch>` followed by `git pull`.
func (s *Syncer) pull(ctx context.Context, res *Result, branch string) {
	s.exec(ctx, res, "pull", "origin", branch)
	s.exec(ctx, res, "pull")
}

// query runs a read-only git command without printing a step header.
func (s *Syncer) query(ctx context.Context, res *Result, args ...string) Step {
	return s.record(ctx, res, false, args...)
}

// exec runs a git command and prints its header and output.
func (s *Syncer) exec(ctx context.Context, res *Result, args ...string) Step {
	return s.record(ctx, res, true, args...)
}

func (s *Syncer) record(ctx context.Context, res *Result, announce bool, args ...string) Step {
	p := output.FromContext(ctx)
	step := Step{Command: git.Command(args...)}

	if announce {
		p.Step(step.Command)
	}
	step.Output, step.Err = s.Git.Run(ctx, res.Path, args...)
	if step.Err != nil {
		log.FromContext(ctx).Errorf("`%s` command failed on %s: %v", step.Command, res.Path, step.Err)
	} else if announce {
		p.Block(step.Output)
	}

	res.Steps = append(res.Steps, step)
	return step
}

// All syncs every git working tree directly under root, in name order.
// The error only reports an unreadable root; per-repository failures are
// part of each Result.
func (s *Syncer) All(ctx context.Context, root string) ([]Result, error) {
	repos, err := git.FindRepos(root)
	if err != nil {
		return nil, err
	}

	p := output.FromContext(ctx)
	results := make([]Result, 0, len(repos))
	for _, repo := range repos {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		p.Banner(repo)
		results = append(results, s.Sync(ctx, repo))
	}
	return results, nil
}

// Summary prints one line per result.
func Summary(p *output.Printer, results []Result) {
	for _, r := range results {
		name := filepath.Base(r.Path)
		switch {
		case r.Skipped():
			p.Println(styles.MutedStyle.Render(fmt.Sprintf("- %s: skipped, branch unknown", name)))
		case len(r.Failed()) > 0:
			p.Println(styles.ErrorStyle.Render(fmt.Sprintf("✗ %s: %s", name, describe(r))))
		default:
			p.Println(styles.SuccessStyle.Render(fmt.Sprintf("✓ %s: %s", name, describe(r))))
		}
	}
}

func describe(r Result) string {
	var b strings.Builder
	if r.CurrentBranch == r.DefaultBranch {
		fmt.Fprintf(&b, "%s updated", r.DefaultBranch)
	} else {
		fmt.Fprintf(&b, "%s updated, back on %s", r.DefaultBranch, r.CurrentBranch)
	}
	switch {
	case r.Stashed && r.Popped:
		b.WriteString(", stash restored")
	case r.Stashed:
		b.WriteString(", stash NOT restored")
	}
	if n := len(r.Failed()); n > 0 {
		fmt.Fprintf(&b, ", %d failed step(s)", n)
	}
	return b.String()
}
