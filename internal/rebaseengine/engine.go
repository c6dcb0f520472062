// Package rebaseengine drives the cascading rebase of a chain: each
// member is rebased onto its parent in order, persisting progress so
// that a conflict can be resolved and the cascade resumed later.
package rebaseengine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"go.abhg.dev/gs/internal/chainmodel"
	"go.abhg.dev/gs/internal/chainstore"
	"go.abhg.dev/gs/internal/forkpoint"
	"go.abhg.dev/gs/internal/git"
	"go.abhg.dev/gs/internal/rebasestate"
	"go.abhg.dev/gs/internal/squash"
)

// ErrCascadeInterrupted indicates that a cascade stopped partway
// through and its progress was saved for a later --continue or
// --abort.
var ErrCascadeInterrupted = errors.New("rebase cascade interrupted")

// ErrCascadeStepped indicates that a cascade paused after rebasing a
// single member, because [RunOptions.Step] was requested. Its progress
// was saved exactly as for a conflict; --continue resumes it.
var ErrCascadeStepped = errors.New("rebase cascade paused after one step")

// RepoAccess is the subset of Git plumbing the engine needs. It is
// satisfied by *git.Repository.
type RepoAccess interface {
	PeelToCommit(ctx context.Context, ref string) (git.Hash, error)
	CurrentBranch(ctx context.Context) (string, error)
	Checkout(ctx context.Context, branch string) error
	Rebase(ctx context.Context, req git.RebaseRequest) error
	RebaseContinue(ctx context.Context) error
	RebaseAbort(ctx context.Context) error
	RebaseSkip(ctx context.Context) error
	SetRef(ctx context.Context, req git.SetRefRequest) error
	LocalBranches(ctx context.Context) ([]string, error)
	DeleteBranch(ctx context.Context, branch string, opts git.BranchDeleteOptions) error
}

// SquashReconciler resolves a chain member whose changes were already
// squash-merged into its parent. It is implemented by
// internal/squashreconcile.Engine; the rebase engine only detects the
// condition and defers the repair to it.
type SquashReconciler interface {
	Reconcile(ctx context.Context, chain, base, branch string, mode rebasestate.SquashMode) error
}

// Engine drives a chain's cascading rebase.
type Engine struct {
	repo   RepoAccess
	chains *chainstore.Store
	forks  *forkpoint.Resolver
	squash *squash.Detector
	state  *rebasestate.Store
	merge  SquashReconciler
	log    *log.Logger
}

// Options configures an Engine.
type Options struct {
	// Merge resolves squash-merged members. If nil, squash-merged
	// members are treated as an ordinary rebase (which will usually
	// conflict, surfacing the decision to the caller via
	// [ErrCascadeInterrupted]).
	Merge SquashReconciler

	// Log used for logging messages to the user.
	// If nil, no messages are logged.
	Log *log.Logger
}

// New builds an Engine from its collaborators.
func New(
	repo RepoAccess,
	chains *chainstore.Store,
	forks *forkpoint.Resolver,
	detector *squash.Detector,
	state *rebasestate.Store,
	opts Options,
) *Engine {
	if opts.Log == nil {
		opts.Log = log.New(io.Discard)
	}
	return &Engine{
		repo:   repo,
		chains: chains,
		forks:  forks,
		squash: detector,
		state:  state,
		merge:  opts.Merge,
		log:    opts.Log,
	}
}

// RunOptions configures Run.
type RunOptions struct {
	// IgnoreRoot, when true, skips rebasing the chain's first member
	// against the root branch: only members stacked on top of each
	// other are restacked. It is never persisted as a default; a
	// resumed cascade must be given --ignore-root again to keep
	// behaving this way. It is recorded on the snapshot purely for
	// --status reporting.
	IgnoreRoot bool

	// SquashMode selects how a squash-merged member is reconciled, if
	// a SquashReconciler was configured.
	SquashMode rebasestate.SquashMode

	// Step, when true, stops the cascade after successfully rebasing
	// a single member, saving progress exactly as a conflict would,
	// so the caller can inspect the result before continuing.
	Step bool
}

// Result reports which chain members a cascade touched.
type Result struct {
	// Rebased lists members successfully rebased, in the order they
	// completed.
	Rebased []string

	// Skipped lists members left untouched, e.g. because they were
	// squash-merged and reconciled with "skip" mode.
	Skipped []string

	// SquashReset lists members reset directly onto their base after
	// being detected as squash-merged.
	SquashReset []string
}

func (r *Result) recordDone(m rebasestate.BranchState) {
	switch m.Status {
	case rebasestate.BranchDone:
		r.Rebased = append(r.Rebased, m.Name)
	case rebasestate.BranchSkipped:
		r.Skipped = append(r.Skipped, m.Name)
	case rebasestate.BranchSquashReset:
		r.SquashReset = append(r.SquashReset, m.Name)
	}
}

// Run cascades a rebase across every member of the named chain, in
// order. If the cascade is interrupted by a conflict or a deliberate
// stop, it returns ErrCascadeInterrupted after saving progress;
// [Engine.Continue] resumes it and [Engine.Abort] abandons it.
func (e *Engine) Run(ctx context.Context, chainName string, opts RunOptions) (*Result, error) {
	chain, err := e.chains.Load(ctx, chainName)
	if err != nil {
		return nil, fmt.Errorf("load chain %q: %w", chainName, err)
	}

	members := chain.Members
	if opts.IgnoreRoot && len(members) > 0 {
		members = members[1:]
	}
	if len(members) == 0 {
		return &Result{}, nil
	}

	originalBranch, err := e.repo.CurrentBranch(ctx)
	if err != nil {
		e.log.Debug("could not determine current branch", "error", err)
	}

	snap := &rebasestate.Snapshot{
		Chain:          chain.Name,
		OriginalBranch: originalBranch,
		IgnoreRoot:     opts.IgnoreRoot,
		SquashMode:     opts.SquashMode,
		CreatedAt:      time.Now(),
	}
	if err := e.resolveForkPoints(ctx, chain, members, snap); err != nil {
		return nil, err
	}

	return e.run(ctx, snap, opts.Step)
}

// resolveForkPoints computes every member's upstream fork point before
// the cascade begins, so a conflict that interrupts partway through
// doesn't change what a resumed cascade rebases each remaining member
// onto: the fork points are fixed at the start, not recomputed against
// a parent the cascade has since advanced.
func (e *Engine) resolveForkPoints(
	ctx context.Context, chain *chainmodel.Chain, members []chainmodel.Member, snap *rebasestate.Snapshot,
) error {
	snap.Members = make([]rebasestate.BranchState, len(members))
	for i, m := range members {
		parent, err := chain.Parent(m.Branch)
		if err != nil {
			return fmt.Errorf("resolve parent of %q: %w", m.Branch, err)
		}

		parentHash, err := e.repo.PeelToCommit(ctx, parent)
		if err != nil {
			return fmt.Errorf("resolve %q: %w", parent, err)
		}
		head, err := e.repo.PeelToCommit(ctx, m.Branch)
		if err != nil {
			return fmt.Errorf("resolve %q: %w", m.Branch, err)
		}

		upstream, err := e.forks.Resolve(ctx, parent, m.Branch, parentHash, head)
		if err != nil {
			return fmt.Errorf("branch %q has no usable upstream: %w", m.Branch, err)
		}

		snap.Members[i] = rebasestate.BranchState{
			Name:              m.Branch,
			Parent:            parent,
			OriginalOid:       head.String(),
			ParentOriginalOid: parentHash.String(),
			MergeBaseOid:      upstream.String(),
			Status:            rebasestate.BranchPending,
		}
	}
	return nil
}

// Continue resumes a previously interrupted cascade.
func (e *Engine) Continue(ctx context.Context) (*Result, error) {
	snap, err := e.state.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("no cascade to continue: %w", err)
	}

	if conflicted, ok := snap.Conflicted(); ok {
		current, err := e.repo.PeelToCommit(ctx, conflicted.Name)
		if err == nil && current.String() != conflicted.OriginalOid {
			return nil, fmt.Errorf(
				"branch %q changed since the cascade stopped (was %s, now %s): resolve manually or run with --abort",
				conflicted.Name, git.Hash(conflicted.OriginalOid).Short(), current.Short())
		}

		if err := e.repo.RebaseContinue(ctx); err != nil {
			return e.handleInterrupt(ctx, snap, &Result{}, conflicted.Name, err)
		}
		conflicted.Status = rebasestate.BranchDone
	}

	return e.run(ctx, snap, false)
}

// Skip resolves the conflicted member with "git rebase --skip": the
// commit that conflicted is dropped and the rest of that member's
// commits are still rebased. The member is then marked skipped and
// reported in [Result.Skipped], and the cascade resumes with its
// children. The member is not restored to the commit it pointed to
// before the cascade.
func (e *Engine) Skip(ctx context.Context) (*Result, error) {
	snap, err := e.state.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("no cascade to skip: %w", err)
	}

	conflicted, ok := snap.Conflicted()
	if !ok {
		return nil, errors.New("no conflicted branch to skip")
	}

	if err := e.repo.RebaseSkip(ctx); err != nil {
		return e.handleInterrupt(ctx, snap, &Result{}, conflicted.Name, err)
	}
	conflicted.Status = rebasestate.BranchSkipped
	skipped := conflicted.Name

	result, err := e.run(ctx, snap, false)
	result.Skipped = append([]string{skipped}, result.Skipped...)
	return result, err
}

// Abort cancels an in-progress cascade, resets every member touched so
// far back to the commit it pointed to before the cascade began, and
// discards the saved state.
func (e *Engine) Abort(ctx context.Context) error {
	snap, err := e.state.Load(ctx)
	if err != nil {
		return fmt.Errorf("no cascade to abort: %w", err)
	}

	if _, ok := snap.Conflicted(); ok {
		if err := e.repo.RebaseAbort(ctx); err != nil {
			return fmt.Errorf("abort rebase: %w", err)
		}
	}

	for _, m := range snap.Members {
		if m.Status == rebasestate.BranchPending {
			continue
		}
		if err := e.repo.SetRef(ctx, git.SetRefRequest{
			Ref:  "refs/heads/" + m.Name,
			Hash: git.Hash(m.OriginalOid),
		}); err != nil {
			return fmt.Errorf("restore %q to its original commit: %w", m.Name, err)
		}
	}

	if snap.OriginalBranch != "" {
		if err := e.repo.Checkout(ctx, snap.OriginalBranch); err != nil {
			e.log.Debug("failed to check out original branch", "branch", snap.OriginalBranch, "error", err)
		}
	}

	if err := e.state.Clear(ctx); err != nil {
		return fmt.Errorf("clear rebase state: %w", err)
	}
	return nil
}

// CleanupBackups removes every "backup-<chain>/<branch>" ref left
// behind by a squash-merge reconciliation, reporting the branches it
// removed.
func (e *Engine) CleanupBackups(ctx context.Context, chainName string) ([]string, error) {
	branches, err := e.repo.LocalBranches(ctx)
	if err != nil {
		return nil, fmt.Errorf("list local branches: %w", err)
	}

	prefix := "backup-" + chainName + "/"
	var removed []string
	for _, b := range branches {
		if !strings.HasPrefix(b, prefix) {
			continue
		}
		if err := e.repo.DeleteBranch(ctx, b, git.BranchDeleteOptions{Force: true}); err != nil {
			return removed, fmt.Errorf("delete backup %q: %w", b, err)
		}
		removed = append(removed, b)
	}
	return removed, nil
}

// Status reports the current cascade's progress, if one is active.
func (e *Engine) Status(ctx context.Context) (*rebasestate.Snapshot, error) {
	return e.state.Status(ctx)
}

func (e *Engine) run(ctx context.Context, snap *rebasestate.Snapshot, step bool) (*Result, error) {
	result := &Result{}

	for i := range snap.Members {
		m := &snap.Members[i]
		if m.Status != rebasestate.BranchPending {
			continue
		}

		if e.squash != nil {
			squashed, err := e.squash.IsSquashMerged(ctx, m.Parent, m.Name)
			if err != nil {
				e.log.Debug("squash check failed, proceeding with rebase",
					"branch", m.Name, "error", err)
			} else if squashed && e.merge != nil {
				e.log.Debug("branch is squash-merged, reconciling",
					"branch", m.Name, "parent", m.Parent, "mode", snap.SquashMode)
				if err := e.merge.Reconcile(ctx, snap.Chain, m.Parent, m.Name, snap.SquashMode); err != nil {
					if snap.SquashMode == rebasestate.SquashModeRebase {
						return e.handleInterrupt(ctx, snap, result, m.Name, err)
					}
					return result, fmt.Errorf("reconcile squash-merged branch %q: %w", m.Name, err)
				}
				switch snap.SquashMode {
				case rebasestate.SquashModeSkip:
					m.Status = rebasestate.BranchSkipped
				case rebasestate.SquashModeRebase:
					m.Status = rebasestate.BranchDone
				default:
					m.Status = rebasestate.BranchSquashReset
				}
				result.recordDone(*m)
				continue
			}
		}

		ontoHash, err := e.repo.PeelToCommit(ctx, m.Parent)
		if err != nil {
			return result, fmt.Errorf("resolve %q: %w", m.Parent, err)
		}

		err = e.repo.Rebase(ctx, git.RebaseRequest{
			Branch:    m.Name,
			Upstream:  m.MergeBaseOid,
			Onto:      ontoHash.String(),
			Autostash: true,
			Quiet:     true,
		})
		if err != nil {
			return e.handleInterrupt(ctx, snap, result, m.Name, err)
		}

		m.Status = rebasestate.BranchDone
		result.recordDone(*m)

		if step {
			if err := e.state.Save(ctx, *snap); err != nil {
				return result, fmt.Errorf("save cascade state: %w", err)
			}
			return result, fmt.Errorf("%q: %w", m.Name, ErrCascadeStepped)
		}
	}

	if err := e.state.Clear(ctx); err != nil {
		return result, fmt.Errorf("clear rebase state: %w", err)
	}
	return result, nil
}

func (e *Engine) handleInterrupt(
	ctx context.Context,
	snap *rebasestate.Snapshot,
	result *Result,
	branch string,
	rebaseErr error,
) (*Result, error) {
	var interruptErr *git.RebaseInterruptError
	if !errors.As(rebaseErr, &interruptErr) && !errors.Is(rebaseErr, git.ErrRebaseInterrupted) {
		return result, fmt.Errorf("rebase %q: %w", branch, rebaseErr)
	}

	if m, ok := snap.Branch(branch); ok {
		m.Status = rebasestate.BranchConflict
	}
	if err := e.state.Save(ctx, *snap); err != nil {
		return result, fmt.Errorf("save cascade state: %w", err)
	}
	return result, fmt.Errorf("%q: %w", branch, ErrCascadeInterrupted)
}
