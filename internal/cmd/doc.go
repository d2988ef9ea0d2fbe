// Package cmd runs external commands for gittem.
//
// It wraps [os/exec.Cmd] to capture stderr and include it in error
// messages, and defines [Runner], the seam every git invocation goes through.
//
// # Usage
//
//	out, err := cmd.Exec{}.Run(ctx, repoPath, "git", "status")
//	if err != nil {
//	    // err is a *cmd.Error naming the command and directory
//	}
//
// # Command Strings
//
// Ad-hoc commands given on the command line are tokenized by [Split] with
// shell quoting rules. Quoted arguments may contain spaces; an unbalanced
// quote is an error.
package cmd
