// Package squash detects when a chain member's changes were landed on
// its base through a squash merge, leaving the member's own history
// diverged from a base that already contains its content.
package squash

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"go.abhg.dev/gs/internal/git"
)

// RepoAccess is the subset of Git plumbing the detector needs. It is
// satisfied by *git.Repository; tests substitute a generated mock.
type RepoAccess interface {
	PeelToCommit(ctx context.Context, ref string) (git.Hash, error)
	PeelToTree(ctx context.Context, ref string) (git.Hash, error)
	IsAncestor(ctx context.Context, a, b git.Hash) bool
	MergeBase(ctx context.Context, a, b string) (git.Hash, error)
	MergeTree(ctx context.Context, req git.MergeTreeRequest) (git.Hash, error)
}

// Detector reports whether a branch's changes already landed on its
// base through a squash merge.
type Detector struct {
	repo RepoAccess
	log  *log.Logger
}

// Options configures a Detector.
type Options struct {
	// Log used for logging messages to the user.
	// If nil, no messages are logged.
	Log *log.Logger
}

// New builds a Detector backed by repo.
func New(repo RepoAccess, opts Options) *Detector {
	if opts.Log == nil {
		opts.Log = log.New(io.Discard)
	}
	return &Detector{repo: repo, log: opts.Log}
}

// IsSquashMerged reports whether branch's changes already landed on
// base by some means other than an ordinary merge.
//
// branch is never an ancestor of base in this case (a fast-forward or
// three-way merge would have kept it one), so that's checked first as
// a quick negative. Otherwise a virtual commit is built on base's
// current tip by merging in everything branch has added since the
// merge-base -- simulating "what would merging branch into base do
// right now" without touching the index or working tree. If that
// virtual merge is a no-op (its tree matches base's tree exactly),
// branch's content is already fully present on base, even if base has
// gained further commits since the squash landed. A conflict in that
// virtual merge means branch and base have genuinely diverged, not
// that branch was squash-merged.
func (d *Detector) IsSquashMerged(ctx context.Context, base, branch string) (bool, error) {
	branchHash, err := d.repo.PeelToCommit(ctx, branch)
	if err != nil {
		return false, err
	}

	baseHash, err := d.repo.PeelToCommit(ctx, base)
	if err != nil {
		return false, err
	}

	if d.repo.IsAncestor(ctx, branchHash, baseHash) {
		return false, nil
	}

	mergeBase, err := d.repo.MergeBase(ctx, base, branch)
	if err != nil {
		return false, fmt.Errorf("find merge base of %q and %q: %w", base, branch, err)
	}

	virtualTree, err := d.repo.MergeTree(ctx, git.MergeTreeRequest{
		Branch1:   base,
		Branch2:   branch,
		MergeBase: mergeBase,
	})
	if err != nil {
		var conflict *git.MergeTreeConflictError
		if errors.As(err, &conflict) {
			d.log.Debug("branch conflicts with base, not a squash merge",
				"base", base, "branch", branch)
			return false, nil
		}
		return false, fmt.Errorf("simulate merge of %q into %q: %w", branch, base, err)
	}

	baseTree, err := d.repo.PeelToTree(ctx, base)
	if err != nil {
		return false, err
	}

	squashed := virtualTree == baseTree
	if squashed {
		d.log.Debug("branch appears squash-merged into base",
			"base", base, "branch", branch)
	}
	return squashed, nil
}
