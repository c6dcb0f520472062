// Package opsutil provides chain-wide operations that fan out across
// every member: pushing each branch's upstream concurrently, and
// auditing the chain-membership configuration for inconsistencies.
package opsutil

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"go.abhg.dev/gs/internal/git"
)

// Pusher is the subset of Git plumbing used to push chain members.
type Pusher interface {
	Push(ctx context.Context, opts git.PushOptions) error
}

// PushOptions configures Push.
type PushOptions struct {
	// Remote is the remote to push each branch to.
	Remote string

	// ForceWithLease, when set, is passed through to every push.
	ForceWithLease string

	// Concurrency bounds how many pushes run at once. Defaults to 4.
	Concurrency int

	// Log used for logging messages to the user.
	// If nil, no messages are logged.
	Log *log.Logger
}

// Push pushes every branch in branches to opts.Remote concurrently,
// bounded by opts.Concurrency. It returns the first error encountered,
// after all in-flight pushes have finished; other branches' pushes are
// not rolled back.
func Push(ctx context.Context, repo Pusher, branches []string, opts PushOptions) error {
	if opts.Log == nil {
		opts.Log = log.New(io.Discard)
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, branch := range branches {
		g.Go(func() error {
			opts.Log.Debug("pushing branch", "branch", branch, "remote", opts.Remote)
			if err := repo.Push(ctx, git.PushOptions{
				Remote:         opts.Remote,
				ForceWithLease: opts.ForceWithLease,
				Refspec:        branch,
			}); err != nil {
				return fmt.Errorf("push %q: %w", branch, err)
			}
			return nil
		})
	}

	return g.Wait()
}
