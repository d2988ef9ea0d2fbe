package git

import (
	"context"
	"strings"

	"github.com/raphi011/gittem/internal/cmd"
)

// Client runs git commands through a cmd.Runner.
type Client struct {
	runner cmd.Runner
}

// New returns a Client using r, or the os/exec runner if r is nil.
func New(r cmd.Runner) *Client {
	if r == nil {
		r = cmd.Exec{}
	}
	return &Client{runner: r}
}

// Run executes git with args in dir and returns its output.
func (c *Client) Run(ctx context.Context, dir string, args ...string) (string, error) {
	return c.runner.Run(ctx, dir, append([]string{"git"}, args...)...)
}

// Command renders args as the command line shown in transcripts.
func Command(args ...string) string {
	return strings.TrimSpace("git " + strings.Join(args, " "))
}
