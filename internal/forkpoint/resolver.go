// Package forkpoint resolves the commit a chain member should be rebased
// from, falling back through "git merge-base --fork-point" and finally
// plain "git merge-base" when the recorded base hash can no longer be
// trusted.
package forkpoint

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"go.abhg.dev/gs/internal/git"
)

// ErrResolverFailure indicates that no usable upstream could be found
// for a branch: the recorded base hash is stale, no fork point exists
// between base and branch, and base and branch share no common
// ancestor at all. The engine treats a branch in this state as
// non-rebasable.
var ErrResolverFailure = errors.New("no usable fork point")

// RepoAccess is the subset of Git plumbing the resolver needs. It is
// satisfied by *git.Repository; tests substitute a generated mock.
type RepoAccess interface {
	IsAncestor(ctx context.Context, a, b git.Hash) bool
	ForkPoint(ctx context.Context, a, b string) (git.Hash, error)
	MergeBase(ctx context.Context, a, b string) (git.Hash, error)
}

// Resolver resolves the upstream start point for a rebase.
type Resolver struct {
	repo RepoAccess
	log  *log.Logger
}

// Options configures a Resolver.
type Options struct {
	// Log used for logging messages to the user.
	// If nil, no messages are logged.
	Log *log.Logger
}

// New builds a Resolver backed by repo.
func New(repo RepoAccess, opts Options) *Resolver {
	if opts.Log == nil {
		opts.Log = log.New(io.Discard)
	}
	return &Resolver{repo: repo, log: opts.Log}
}

// Resolve reports the commit that branch should be rebased onto base
// from. recordedUpstream is the last known base hash for branch, as
// tracked by the chain store; head is the branch's current tip.
//
// Resolution proceeds in three steps, each tried only if the previous
// one doesn't apply:
//
//  1. If recordedUpstream is still an ancestor of head, it is returned
//     unchanged: the recorded base hasn't moved relative to the
//     branch, so rebasing from it is safe and minimizes the commits
//     git needs to replay.
//  2. Otherwise the recorded base has gone stale -- base was amended,
//     rebased, or otherwise rewritten externally -- so the fork point
//     between base and branch is tried, mirroring the teacher's
//     restack recovery path.
//  3. If no fork point can be found either, a plain merge-base between
//     base and branch is used instead.
//
// If even that fails, Resolve returns [ErrResolverFailure]: base and
// branch share no common history, and the caller should treat branch
// as non-rebasable rather than guess at an upstream.
func (r *Resolver) Resolve(ctx context.Context, base, branch string, baseHash, head git.Hash) (git.Hash, error) {
	if r.repo.IsAncestor(ctx, baseHash, head) {
		return baseHash, nil
	}

	forkPoint, err := r.repo.ForkPoint(ctx, base, branch)
	if err == nil {
		if forkPoint != baseHash {
			r.log.Debug("recorded base hash is stale, rebasing from fork point",
				"base", base, "branch", branch, "forkPoint", forkPoint)
		}
		return forkPoint, nil
	}
	r.log.Debug("no fork point found, falling back to merge-base",
		"base", base, "branch", branch, "error", err)

	mergeBase, err := r.repo.MergeBase(ctx, base, branch)
	if err != nil {
		return "", fmt.Errorf("%q and %q: %w", base, branch, ErrResolverFailure)
	}
	return mergeBase, nil
}
