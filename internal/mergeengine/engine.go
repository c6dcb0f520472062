// Package mergeengine drives "chain merge": a cascade that folds each
// chain member's parent into it with an ordinary, history-preserving
// Git merge, as an alternative to [rebaseengine]'s history-rewriting
// cascade. Unlike a rebase cascade, a merge cascade has no progress to
// resume: a conflicted merge leaves ordinary conflict markers in the
// working tree, exactly as "git merge" would, and re-running the
// command after the user resolves and commits simply continues
// forward (an already-merged member's next merge attempt fast-forwards
// or no-ops).
package mergeengine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"go.abhg.dev/gs/internal/chainstore"
	"go.abhg.dev/gs/internal/forkpoint"
	"go.abhg.dev/gs/internal/git"
	"go.abhg.dev/gs/internal/squash"
)

// SquashMode selects how a chain member whose changes already landed
// on its parent through a squash merge is reconciled. It mirrors
// [rebasestate.SquashMode], but names its third option "merge" rather
// than "rebase": a merge cascade's fallback for a squash-merged branch
// is to attempt a real merge, not a rebase.
type SquashMode string

// Squash reconciliation modes. See [SquashMode].
const (
	SquashModeUnset SquashMode = ""
	SquashModeReset SquashMode = "reset"
	SquashModeSkip  SquashMode = "skip"
	SquashModeMerge SquashMode = "merge"
)

// RepoAccess is the subset of Git plumbing the engine needs. It is
// satisfied by *git.Repository.
type RepoAccess interface {
	PeelToCommit(ctx context.Context, ref string) (git.Hash, error)
	IsAncestor(ctx context.Context, a, b git.Hash) bool
	CurrentBranch(ctx context.Context) (string, error)
	Checkout(ctx context.Context, branch string) error
	Merge(ctx context.Context, req git.MergeRequest) error
	SetRef(ctx context.Context, req git.SetRefRequest) error
	CreateBranch(ctx context.Context, req git.CreateBranchRequest) error
	Reset(ctx context.Context, commit string, opts git.ResetOptions) error
}

// Engine drives a chain's cascading merge.
type Engine struct {
	repo   RepoAccess
	chains *chainstore.Store
	forks  *forkpoint.Resolver
	squash *squash.Detector
	log    *log.Logger
}

// Options configures an Engine.
type Options struct {
	// Log used for logging messages to the user.
	// If nil, no messages are logged.
	Log *log.Logger
}

// New builds an Engine from its collaborators. forks and detector may
// be nil, in which case fast-forward detection and squash reconciliation
// are skipped: every member is merged unconditionally.
func New(
	repo RepoAccess,
	chains *chainstore.Store,
	forks *forkpoint.Resolver,
	detector *squash.Detector,
	opts Options,
) *Engine {
	if opts.Log == nil {
		opts.Log = log.New(io.Discard)
	}
	return &Engine{repo: repo, chains: chains, forks: forks, squash: detector, log: opts.Log}
}

// RunOptions configures Run.
type RunOptions struct {
	// IgnoreRoot, when true, skips merging the root branch into the
	// chain's first member: only members stacked on top of each other
	// are reconciled.
	IgnoreRoot bool

	// Stay, when true, leaves the working tree on whatever branch the
	// cascade last touched instead of returning to the branch that was
	// checked out when Run was called.
	Stay bool

	// Depth limits the cascade to at most this many members, counted
	// from the first one in the chain. Zero means no limit. This is
	// "--chain=N": merge only the bottom N members of the stack.
	Depth int

	// Simple, when true, skips fork-point resolution and squash
	// detection entirely: every member is merged against its parent's
	// current tip unconditionally, as plain "git merge" would.
	Simple bool

	// NoForkPoint, when true, forces every member through "git merge"
	// unconditionally, even when it already contains its parent's tip.
	// By default (false, "--fork-point"), a member already in a
	// fast-forward relationship with its parent is skipped rather than
	// merged. Ignored if Simple is true or no Resolver was configured.
	NoForkPoint bool

	// SquashMode selects how a squash-merged member is reconciled.
	// Ignored if Simple is true or no squash.Detector was configured.
	SquashMode SquashMode

	// FastForward controls whether git itself prefers, requires, or
	// refuses a fast-forward merge.
	FastForward git.MergeFastForward

	// Squash requests "git merge --squash": stage the parent's changes
	// without creating a merge commit, leaving the commit to the
	// caller.
	Squash bool

	// Strategy and StrategyOptions are passed through to "git merge"
	// as "--strategy" and repeated "--strategy-option" flags.
	Strategy        string
	StrategyOptions []string
}

// Result reports which chain members a merge cascade touched.
type Result struct {
	// Merged lists members a real merge was performed for, in the
	// order they completed.
	Merged []string

	// FastForwarded lists members skipped because they already
	// contained their parent's tip.
	FastForwarded []string

	// Skipped lists members left untouched by squash reconciliation.
	Skipped []string

	// SquashReset lists members reset directly onto their parent after
	// being detected as squash-merged.
	SquashReset []string
}

// Run cascades a merge across every member of the named chain, in
// order. Unlike [rebaseengine.Engine.Run], a conflict leaves the
// working tree mid-merge with no saved state; the caller resolves and
// commits by hand (or runs "git merge --abort") and may simply re-run
// Run, which is safe because an already-merged member's next merge is
// a no-op.
func (e *Engine) Run(ctx context.Context, chainName string, opts RunOptions) (*Result, error) {
	chain, err := e.chains.Load(ctx, chainName)
	if err != nil {
		return nil, fmt.Errorf("load chain %q: %w", chainName, err)
	}

	members := chain.Members
	if opts.IgnoreRoot && len(members) > 0 {
		members = members[1:]
	}
	if opts.Depth > 0 && opts.Depth < len(members) {
		members = members[:opts.Depth]
	}
	if len(members) == 0 {
		return &Result{}, nil
	}

	originalBranch, err := e.repo.CurrentBranch(ctx)
	if err != nil {
		e.log.Debug("could not determine current branch", "error", err)
	}

	result := &Result{}
	lastTouched := ""
	for _, m := range members {
		parent, err := chain.Parent(m.Branch)
		if err != nil {
			return result, fmt.Errorf("resolve parent of %q: %w", m.Branch, err)
		}

		if !opts.Simple && e.squash != nil {
			squashed, err := e.squash.IsSquashMerged(ctx, parent, m.Branch)
			if err != nil {
				e.log.Debug("squash check failed, proceeding with merge",
					"branch", m.Branch, "error", err)
			} else if squashed {
				done, err := e.reconcileSquashed(ctx, chainName, parent, m.Branch, opts.SquashMode, result)
				if err != nil {
					return result, err
				}
				if done {
					lastTouched = m.Branch
					continue
				}
				// SquashModeMerge falls through to an ordinary merge
				// attempt below, which will typically conflict on the
				// duplicate content.
			}
		}

		if !opts.Simple && !opts.NoForkPoint && e.forks != nil {
			parentHash, err := e.repo.PeelToCommit(ctx, parent)
			if err != nil {
				return result, fmt.Errorf("resolve %q: %w", parent, err)
			}
			head, err := e.repo.PeelToCommit(ctx, m.Branch)
			if err != nil {
				return result, fmt.Errorf("resolve %q: %w", m.Branch, err)
			}
			if e.repo.IsAncestor(ctx, parentHash, head) {
				e.log.Debug("branch already contains parent's tip, skipping merge",
					"branch", m.Branch, "parent", parent)
				result.FastForwarded = append(result.FastForwarded, m.Branch)
				lastTouched = m.Branch
				continue
			}
		}

		if err := e.repo.Checkout(ctx, m.Branch); err != nil {
			return result, fmt.Errorf("check out %q: %w", m.Branch, err)
		}

		e.log.Debug("merging parent into branch", "branch", m.Branch, "parent", parent)
		err = e.repo.Merge(ctx, git.MergeRequest{
			Branch:          parent,
			FastForward:     opts.FastForward,
			Squash:          opts.Squash,
			Strategy:        opts.Strategy,
			StrategyOptions: opts.StrategyOptions,
		})
		if err != nil {
			if errors.Is(err, git.ErrMergeConflict) {
				return result, fmt.Errorf("%q: %w", m.Branch, err)
			}
			return result, fmt.Errorf("merge %q into %q: %w", parent, m.Branch, err)
		}

		result.Merged = append(result.Merged, m.Branch)
		lastTouched = m.Branch
	}

	if !opts.Stay {
		target := originalBranch
		if target == "" {
			target = lastTouched
		}
		if target != "" {
			if err := e.repo.Checkout(ctx, target); err != nil {
				e.log.Debug("failed to return to original branch", "branch", target, "error", err)
			}
		}
	}

	return result, nil
}

// reconcileSquashed repairs branch after its changes were squash-merged
// into base. It reports whether the member is fully handled (true) or
// should fall through to an ordinary merge attempt (false, only for
// [SquashModeMerge]).
func (e *Engine) reconcileSquashed(
	ctx context.Context, chain, base, branch string, mode SquashMode, result *Result,
) (bool, error) {
	switch mode {
	case SquashModeReset:
		branchHash, err := e.repo.PeelToCommit(ctx, branch)
		if err != nil {
			return false, fmt.Errorf("resolve %q: %w", branch, err)
		}
		backupRef := "backup-" + chain + "/" + branch
		e.log.Debug("backing up squash-merged branch before reset", "branch", branch, "backup", backupRef)
		if err := e.repo.CreateBranch(ctx, git.CreateBranchRequest{Name: backupRef, Head: branchHash.String()}); err != nil {
			return false, fmt.Errorf("back up %q to %q: %w", branch, backupRef, err)
		}

		baseHash, err := e.repo.PeelToCommit(ctx, base)
		if err != nil {
			return false, fmt.Errorf("resolve %q: %w", base, err)
		}
		if err := e.repo.SetRef(ctx, git.SetRefRequest{Ref: "refs/heads/" + branch, Hash: baseHash}); err != nil {
			return false, fmt.Errorf("reset %q to %q: %w", branch, base, err)
		}

		current, err := e.repo.CurrentBranch(ctx)
		if err == nil && current == branch {
			if err := e.repo.Reset(ctx, baseHash.String(), git.ResetOptions{Mode: git.ResetHard}); err != nil {
				return false, fmt.Errorf("sync worktree for %q: %w", branch, err)
			}
		}
		result.SquashReset = append(result.SquashReset, branch)
		return true, nil

	case SquashModeSkip:
		e.log.Debug("skipping squash-merged branch", "branch", branch, "base", base)
		result.Skipped = append(result.Skipped, branch)
		return true, nil

	case SquashModeMerge:
		e.log.Debug("merging squash-merged branch anyway", "branch", branch, "base", base)
		return false, nil

	default:
		return false, fmt.Errorf("branch %q was squash-merged into %q: a reconciliation mode must be chosen", branch, base)
	}
}
