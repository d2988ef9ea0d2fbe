package update

import (
	"context"

	"github.com/raphi011/gittem/internal/git"
	"github.com/raphi011/gittem/internal/log"
	"github.com/raphi011/gittem/internal/output"
)

// GitArgs returns argv without a leading "git", so both "status" and
// "git status" name the same git invocation.
func GitArgs(argv []string) []string {
	if len(argv) > 0 && argv[0] == "git" {
		return argv[1:]
	}
	return argv
}

// Exec runs git with args in dir. With recurse it runs in every non-hidden
// immediate subdirectory of dir instead, git repository or not; a failure in
// one directory is reported and the rest still run.
//
// Each Result carries the directory in Path and the single step in Steps.
// The error only reports an unreadable dir.
func Exec(ctx context.Context, g *git.Client, dir string, args []string, recurse bool) ([]Result, error) {
	if !recurse {
		return []Result{execIn(ctx, g, dir, args)}, nil
	}

	dirs, err := git.Subdirs(dir)
	if err != nil {
		return nil, err
	}

	p := output.FromContext(ctx)
	results := make([]Result, 0, len(dirs))
	for _, d := range dirs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		p.Printf("chdir %s\n", d)
		results = append(results, execIn(ctx, g, d, args))
	}
	return results, nil
}

func execIn(ctx context.Context, g *git.Client, dir string, args []string) Result {
	res := Result{Path: dir}
	step := Step{Command: git.Command(args...)}

	step.Output, step.Err = g.Run(ctx, dir, args...)
	if step.Err != nil {
		l := log.FromContext(ctx)
		l.Errorf("`%s` command failed.", step.Command)
		l.Errorf("%v", step.Err)
	} else {
		output.FromContext(ctx).Block(step.Output)
	}

	res.Steps = append(res.Steps, step)
	return res
}
