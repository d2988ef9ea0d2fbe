// Package git provides the git operations gittem needs, via the git CLI.
//
// Commands go through a [cmd.Runner] held by [Client], so tests can script
// git's answers. The production runner shells out to git, which keeps user
// configuration (SSH keys, credential helpers, aliases) in effect.
//
// # Queries
//
//   - [CurrentBranchArgs]: rev-parse --abbrev-ref HEAD
//   - [DefaultBranchArgs]: symbolic-ref refs/remotes/origin/HEAD, reduced
//     to a branch name by [BranchFromRef]
//   - [StashCreated]: whether stash push output means an entry was made
//
// # Discovery
//
//   - [IsRepo]: directory has a .git entry
//   - [Subdirs], [FindRepos]: non-hidden children of a root, sorted by name
package git
