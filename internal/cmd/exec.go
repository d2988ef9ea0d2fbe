package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/google/shlex"

	"github.com/raphi011/gittem/internal/log"
)

// Error describes an external command that failed to start or exited non-zero.
type Error struct {
	Command string
	Dir     string
	Err     error
}

func (e *Error) Error() string {
	if e.Dir == "" {
		return fmt.Sprintf("`%s` failed: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("`%s` failed in %s: %v", e.Command, e.Dir, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Runner executes a command in a working directory and returns its stdout.
type Runner interface {
	Run(ctx context.Context, dir string, argv ...string) (string, error)
}

// Exec is the Runner backed by os/exec.
type Exec struct{}

// Run executes argv in dir. A single trailing newline is stripped from the
// output; anything else is returned as the command printed it.
// Failures are returned as *Error.
func (Exec) Run(ctx context.Context, dir string, argv ...string) (string, error) {
	if len(argv) == 0 {
		return "", &Error{Dir: dir, Err: errors.New("empty command")}
	}
	out, err := OutputContext(ctx, dir, argv[0], argv[1:]...)
	if err != nil {
		return "", &Error{Command: strings.Join(argv, " "), Dir: dir, Err: err}
	}
	return strings.TrimSuffix(string(out), "\n"), nil
}

// Split tokenizes a command line using shell quoting rules, so
// `git commit -m "two words"` yields four arguments.
func Split(command string) ([]string, error) {
	argv, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("parse command %q: %w", command, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("parse command %q: empty command", command)
	}
	return argv, nil
}

// OutputContext runs name in dir and returns its stdout. Verbose loggers
// trace the command line and duration. On failure the error carries git's
// stderr text when there is any; a cancelled context is reported as
// ctx.Err() rather than the kill signal.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()

	var stderr bytes.Buffer
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	c.Stderr = &stderr
	out, err := c.Output()
	done(time.Since(start))

	if err == nil {
		return out, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return nil, errors.New(msg)
	}
	return nil, err
}
