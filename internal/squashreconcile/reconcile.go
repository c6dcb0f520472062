// Package squashreconcile reconciles a chain member whose changes
// already landed on its base through a squash merge, where an ordinary
// rebase would either no-op or conflict on content that's already
// upstream.
package squashreconcile

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"go.abhg.dev/gs/internal/git"
	"go.abhg.dev/gs/internal/rebasestate"
)

// RepoAccess is the subset of Git plumbing the reconciler needs. It is
// satisfied by *git.Repository.
type RepoAccess interface {
	PeelToCommit(ctx context.Context, ref string) (git.Hash, error)
	SetRef(ctx context.Context, req git.SetRefRequest) error
	Rebase(ctx context.Context, req git.RebaseRequest) error
	CurrentBranch(ctx context.Context) (string, error)
	Reset(ctx context.Context, commit string, opts git.ResetOptions) error
	CreateBranch(ctx context.Context, req git.CreateBranchRequest) error
}

// Engine reconciles squash-merged chain members, implementing
// internal/rebaseengine's SquashReconciler interface.
type Engine struct {
	repo RepoAccess
	log  *log.Logger
}

// Options configures an Engine.
type Options struct {
	// Log used for logging messages to the user.
	// If nil, no messages are logged.
	Log *log.Logger
}

// New builds an Engine backed by repo.
func New(repo RepoAccess, opts Options) *Engine {
	if opts.Log == nil {
		opts.Log = log.New(io.Discard)
	}
	return &Engine{repo: repo, log: opts.Log}
}

// Reconcile repairs branch, a member of chain, after its changes were
// squash-merged into base, according to mode.
//
//   - [rebasestate.SquashModeReset] first records branch's current tip
//     as "backup-<chain>/<branch>", a throwaway ref the user can
//     recover from if the squash detection was wrong, then points
//     branch directly at base's tip. The branch's own history is
//     discarded in favor of the squashed commit already on base; this
//     is the right choice when the branch has nothing left to
//     contribute once merged.
//   - [rebasestate.SquashModeSkip] leaves branch untouched. The
//     cascade treats it as already up to date and moves on to its
//     children, which will rebase from branch's current tip.
//   - [rebasestate.SquashModeRebase] attempts an ordinary rebase
//     anyway. This is only useful if the branch has commits beyond
//     what was squash-merged; it will typically conflict on the
//     duplicate content, which is surfaced to the caller like any
//     other rebase conflict.
//   - the zero value (unset) is treated as an error: the caller must
//     choose a mode once a squash merge is detected.
func (e *Engine) Reconcile(ctx context.Context, chain, base, branch string, mode rebasestate.SquashMode) error {
	switch mode {
	case rebasestate.SquashModeReset:
		branchHash, err := e.repo.PeelToCommit(ctx, branch)
		if err != nil {
			return fmt.Errorf("resolve %q: %w", branch, err)
		}

		backupRef := "backup-" + chain + "/" + branch
		e.log.Debug("backing up squash-merged branch before reset", "branch", branch, "backup", backupRef)
		if err := e.repo.CreateBranch(ctx, git.CreateBranchRequest{
			Name: backupRef,
			Head: branchHash.String(),
		}); err != nil {
			return fmt.Errorf("back up %q to %q: %w", branch, backupRef, err)
		}

		baseHash, err := e.repo.PeelToCommit(ctx, base)
		if err != nil {
			return fmt.Errorf("resolve %q: %w", base, err)
		}
		e.log.Debug("resetting squash-merged branch to base", "branch", branch, "base", base)
		if err := e.repo.SetRef(ctx, git.SetRefRequest{
			Ref:  "refs/heads/" + branch,
			Hash: baseHash,
		}); err != nil {
			return fmt.Errorf("reset %q to %q: %w", branch, base, err)
		}

		// SetRef alone leaves a checked-out worktree pointed at the
		// old commit; if branch happens to be the current branch,
		// also reset the index and working tree to match.
		current, err := e.repo.CurrentBranch(ctx)
		if err == nil && current == branch {
			if err := e.repo.Reset(ctx, baseHash.String(), git.ResetOptions{Mode: git.ResetHard}); err != nil {
				return fmt.Errorf("sync worktree for %q: %w", branch, err)
			}
		}
		return nil

	case rebasestate.SquashModeSkip:
		e.log.Debug("skipping squash-merged branch", "branch", branch, "base", base)
		return nil

	case rebasestate.SquashModeRebase:
		e.log.Debug("rebasing squash-merged branch anyway", "branch", branch, "base", base)
		return e.repo.Rebase(ctx, git.RebaseRequest{
			Branch:    branch,
			Upstream:  base,
			Autostash: true,
			Quiet:     true,
		})

	default:
		return fmt.Errorf("branch %q was squash-merged into %q: a reconciliation mode must be chosen", branch, base)
	}
}
