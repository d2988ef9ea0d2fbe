// Package update brings local clones up to date with their remote default
// branch without losing the branch the user is on.
//
// # Sync sequence
//
// For a repository on branch B whose origin/HEAD names default branch D:
//
//	git rev-parse --abbrev-ref HEAD        -> B (stop if this fails)
//	git symbolic-ref refs/remotes/origin/HEAD -> D (stop if this fails)
//	git stash push                         only if B != D
//	git checkout D                         only if B != D
//	git pull origin D
//	git pull
//	git checkout B                         only if B != D
//	git stash pop                          only if the push created a stash
//
// Once a stash exists, checkout B and stash pop run on every exit path,
// including cancellation. If checkout D fails the pulls are skipped so D is
// never merged into B. Every other failure is recorded and the sequence
// continues.
//
// # Directories
//
// [Syncer.All] applies the sequence to each non-hidden child of a root that
// contains a .git entry, one at a time, in name order.
//
// [Exec] runs an arbitrary git command the same way across every non-hidden
// child, repository or not, reporting failures and moving on.
package update
