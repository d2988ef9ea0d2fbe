// Package remote maps remote repository URLs onto the local source tree.
//
// A repository cloned from <scheme>://host/owner/repo or git@host:owner/repo
// lives at <root>/host/owner/repo, whatever the scheme or .git suffix.
package remote

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"

	"github.com/raphi011/gittem/internal/git"
	"github.com/raphi011/gittem/internal/log"
)

// LocalHost is the host directory used for file:// and plain path remotes.
const LocalHost = "localhost"

// ParseError reports a remote URL that does not name host, owner and repo.
type ParseError struct {
	URL    string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid repository URL %q: %s", e.URL, e.Reason)
}

// Ref identifies a remote repository.
type Ref struct {
	Host  string
	Owner string // may contain "/" for nested groups
	Name  string
}

// Path returns root/host/owner/name.
func (r Ref) Path(root string) string {
	return filepath.Join(r.Dir(root), r.Name)
}

// Dir returns root/host/owner, the directory git clone runs in.
func (r Ref) Dir(root string) string {
	return filepath.Join(root, r.Host, filepath.FromSlash(r.Owner))
}

func (r Ref) String() string {
	return path.Join(r.Host, r.Owner, r.Name)
}

// Parse splits a remote URL into host, owner and repository name.
// scp-like (git@host:owner/repo.git), ssh://, git://, http(s):// and
// file:// forms are accepted.
func Parse(url string) (Ref, error) {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return Ref{}, &ParseError{URL: url, Reason: "empty URL"}
	}

	ep, err := transport.NewEndpoint(trimmed)
	if err != nil {
		return Ref{}, &ParseError{URL: url, Reason: err.Error()}
	}

	host := ep.Host
	if ep.Protocol == "file" {
		host = LocalHost
	}
	if host == "" {
		return Ref{}, &ParseError{URL: url, Reason: "missing host"}
	}

	p := strings.Trim(filepath.ToSlash(ep.Path), "/")
	p = strings.TrimSuffix(p, ".git")
	p = strings.Trim(p, "/")

	i := strings.LastIndex(p, "/")
	if i <= 0 || i == len(p)-1 {
		return Ref{}, &ParseError{URL: url, Reason: "expected owner/repo path"}
	}

	return Ref{Host: host, Owner: p[:i], Name: p[i+1:]}, nil
}

// Locator clones remote repositories into their canonical local location.
type Locator struct {
	Git *git.Client
}

// Locate returns root/host/owner/repo for url, cloning it first if that
// directory does not exist yet. An existing directory is left untouched.
//
// A *ParseError is returned with an empty path. Any other error (creating
// the owner directory or cloning) is returned together with the destination,
// so callers can report it and carry on; the destination may then not be a
// repository.
func (l *Locator) Locate(ctx context.Context, url, root string) (string, error) {
	logger := log.FromContext(ctx)

	ref, err := Parse(url)
	if err != nil {
		return "", err
	}

	ownerDir := ref.Dir(root)
	dest := ref.Path(root)

	if err := os.MkdirAll(ownerDir, 0755); err != nil {
		return dest, fmt.Errorf("create %s: %w", ownerDir, err)
	}

	if _, err := os.Stat(dest); err == nil {
		logger.Debug("already cloned", "repo", ref, "path", dest)
		return dest, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return dest, fmt.Errorf("stat %s: %w", dest, err)
	}

	logger.Printf("Cloning %s into %s\n", url, ownerDir)
	if _, err := l.Git.Clone(ctx, ownerDir, url); err != nil {
		return dest, err
	}
	return dest, nil
}
