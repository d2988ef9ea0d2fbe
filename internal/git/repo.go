package git

import (
	"context"
	"fmt"
	"strings"
)

// NoLocalChanges is what `git stash push` prints when there is nothing to stash.
const NoLocalChanges = "No local changes to save"

// OriginHEAD is the symbolic ref that names the remote default branch.
const OriginHEAD = "refs/remotes/origin/HEAD"

// Args for the queries the update procedure depends on.
var (
	CurrentBranchArgs = []string{"rev-parse", "--abbrev-ref", "HEAD"}
	DefaultBranchArgs = []string{"symbolic-ref", OriginHEAD}
)

// BranchFromRef returns the text after the last "/" of ref, or ref itself.
// "refs/remotes/origin/main" yields "main".
func BranchFromRef(ref string) string {
	ref = strings.TrimSpace(ref)
	if i := strings.LastIndex(ref, "/"); i != -1 {
		return ref[i+1:]
	}
	return ref
}

// StashCreated reports whether `git stash push` output means a stash entry
// was created.
func StashCreated(output string) bool {
	return strings.TrimSpace(output) != NoLocalChanges
}

// Clone runs `git clone url` with dir as working directory, so the checkout
// lands in dir/<repo>.
func (c *Client) Clone(ctx context.Context, dir, url string) (string, error) {
	out, err := c.Run(ctx, dir, "clone", url)
	if err != nil {
		return "", fmt.Errorf("clone %s: %w", url, err)
	}
	return out, nil
}
