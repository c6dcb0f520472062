package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"go.abhg.dev/gs/internal/must"
)

// ErrRebaseInterrupted is returned (wrapped) by [Repository.Rebase] and
// friends when a rebase stops before completing and no InterruptFunc
// was given to handle it.
var ErrRebaseInterrupted = errors.New("rebase interrupted")

// ErrNoRebase indicates that no rebase operation is currently in progress.
var ErrNoRebase = errors.New("no rebase in progress")

// RebaseInterruptKind specifies why a rebase operation was interrupted.
type RebaseInterruptKind int

const (
	// RebaseInterruptConflict indicates that the rebase stopped
	// because of a merge conflict.
	RebaseInterruptConflict RebaseInterruptKind = iota

	// RebaseInterruptDeliberate indicates that the rebase stopped
	// because of a user-requested 'edit' or 'break' instruction.
	RebaseInterruptDeliberate
)

func (k RebaseInterruptKind) String() string {
	switch k {
	case RebaseInterruptConflict:
		return "conflict"
	case RebaseInterruptDeliberate:
		return "deliberate"
	default:
		return "unknown"
	}
}

// RebaseInterruptError indicates that a rebase operation was interrupted
// before it could complete, either by a conflict or by a deliberate
// 'edit'/'break' instruction.
type RebaseInterruptError struct {
	// Kind explains why the rebase was interrupted.
	Kind RebaseInterruptKind

	// State holds information about the paused rebase. Always non-nil.
	State *RebaseState

	// Err is non-nil only if the rebase stopped because of a conflict.
	Err error
}

func (e *RebaseInterruptError) Error() string {
	var msg strings.Builder
	msg.WriteString("rebase")
	if e.State != nil {
		fmt.Fprintf(&msg, " of %s", e.State.Branch)
	}
	msg.WriteString(" interrupted")
	switch e.Kind {
	case RebaseInterruptConflict:
		msg.WriteString(" by a conflict")
	case RebaseInterruptDeliberate:
		msg.WriteString(" deliberately")
	}
	if e.Err != nil {
		fmt.Fprintf(&msg, ": %v", e.Err)
	}
	return msg.String()
}

func (e *RebaseInterruptError) Unwrap() error {
	return e.Err
}

// Is reports whether target is [ErrRebaseInterrupted],
// letting callers use errors.Is for the simple "was it interrupted" check
// without caring about the kind or cause.
func (e *RebaseInterruptError) Is(target error) bool {
	return target == ErrRebaseInterrupted
}

// RebaseRequest is a request to rebase a branch.
type RebaseRequest struct {
	// Branch is the branch to rebase.
	Branch string

	// Upstream is the upstream commitish
	// from which the current branch started.
	//
	// Commits between Upstream and Branch will be rebased.
	Upstream string

	// Onto is the new base commit to rebase onto.
	// If unspecified, defaults to Upstream.
	Onto string

	// Autostash is true if the rebase should automatically stash
	// dirty changes before starting the rebase operation,
	// and re-apply them after the rebase is complete.
	Autostash bool

	// Quiet reduces the output of the rebase operation.
	Quiet bool

	// Interactive is true if the rebase should present the user
	// with a list of rebase instructions to edit
	// before starting the rebase operation.
	Interactive bool

	// InterruptFunc, if set, is called if a rebase operation
	// is interrupted because of a conflict,
	// or because of a deliberate 'edit'/'break' instruction.
	//
	// The Rebase function returns whatever this function returns.
	// If unset, Rebase returns a *[RebaseInterruptError] that also
	// satisfies errors.Is(err, [ErrRebaseInterrupted]).
	InterruptFunc func(context.Context, *RebaseState, RebaseInterruptKind) error
}

// Rebase runs a git rebase operation with the specified parameters.
func (r *Repository) Rebase(ctx context.Context, req RebaseRequest) (err error) {
	args := []string{
		// Never include advice on how to resolve merge conflicts.
		// We report that ourselves.
		"-c", "advice.mergeConflict=false",
		"rebase",
	}
	if req.Interactive {
		args = append(args, "--interactive")
	}
	if req.Onto != "" {
		args = append(args, "--onto", req.Onto)
	}
	if req.Autostash {
		args = append(args, "--autostash")
		// If autostash popped but left conflicts,
		// git still exits with a zero exit code,
		// so check separately for unmerged files.
		defer func() {
			if err != nil {
				return
			}

			var unmergedFiles []string
			for path := range r.ListFilesPaths(ctx, &ListFilesOptions{Unmerged: true}) {
				unmergedFiles = append(unmergedFiles, path)
			}
			if len(unmergedFiles) == 0 {
				return
			}
			sort.Strings(unmergedFiles)

			r.log.Error("Dirty changes in the worktree were stashed, but could not be re-applied.")
			r.log.Error("The following files were left unmerged:", "files", unmergedFiles)
			r.log.Error("Resolve the conflict and run 'git stash drop' to remove the stash entry.")

			err = fmt.Errorf("%v: dirty changes could not be re-applied", req.Branch)
		}()
	}
	if req.Quiet {
		args = append(args, "--quiet")
	}
	if req.Upstream != "" {
		args = append(args, req.Upstream)
	}
	if req.Branch != "" {
		args = append(args, req.Branch)
	}

	r.log.Debug("Rebasing branch",
		"name", req.Branch,
		"onto", req.Onto,
		"upstream", req.Upstream,
	)

	cmd := r.gitCmd(ctx, args...)
	if req.Interactive {
		cmd.cmd.Stdin = os.Stdin
		cmd.cmd.Stdout = os.Stdout
		cmd.Stderr(os.Stderr)
	}

	if runErr := cmd.Run(r.exec); runErr != nil {
		return r.handleRebaseError(ctx, runErr, req.InterruptFunc)
	}
	return r.handleRebaseFinish(ctx, req.InterruptFunc)
}

// RebaseContinue continues an ongoing rebase operation, using the
// repository's configured editor, if any (see [Repository.WithEditor]).
func (r *Repository) RebaseContinue(ctx context.Context) error {
	cmd := r.gitCmd(ctx, "rebase", "--continue")
	cmd.cmd.Stdin = os.Stdin
	cmd.cmd.Stdout = os.Stdout
	if r.editor != "" {
		cmd = cmd.WithConfig(extraConfig{Editor: r.editor})
	}

	if err := cmd.Run(r.exec); err != nil {
		return r.handleRebaseError(ctx, err, nil)
	}
	return r.handleRebaseFinish(ctx, nil)
}

func (r *Repository) handleRebaseError(
	ctx context.Context, err error, interrupt func(context.Context, *RebaseState, RebaseInterruptKind) error,
) error {
	originalErr := err
	if exitErr := new(exec.ExitError); !errors.As(err, &exitErr) {
		return fmt.Errorf("rebase: %w", err)
	}

	// If the rebase operation actually ran, but failed,
	// we might be in the middle of a rebase operation.
	state, stateErr := r.RebaseState(ctx)
	if stateErr != nil {
		// Rebase probably failed for a different reason,
		// so no need to log the state read failure verbosely.
		r.log.Debug("Failed to read rebase state", "error", stateErr)
		return originalErr
	}

	if interrupt != nil {
		return interrupt(ctx, state, RebaseInterruptConflict)
	}

	return &RebaseInterruptError{
		Kind:  RebaseInterruptConflict,
		State: state,
		Err:   originalErr,
	}
}

func (r *Repository) handleRebaseFinish(
	ctx context.Context, interrupt func(context.Context, *RebaseState, RebaseInterruptKind) error,
) error {
	// If we have rebase state after a successful return,
	// this was a deliberate break or edit.
	state, err := r.RebaseState(ctx)
	if err != nil {
		return nil
	}

	if interrupt != nil {
		return interrupt(ctx, state, RebaseInterruptDeliberate)
	}

	return &RebaseInterruptError{
		Kind:  RebaseInterruptDeliberate,
		State: state,
	}
}

// RebaseAbort aborts an ongoing rebase operation.
func (r *Repository) RebaseAbort(ctx context.Context) error {
	if err := r.gitCmd(ctx, "rebase", "--abort").Run(r.exec); err != nil {
		return fmt.Errorf("rebase abort: %w", err)
	}
	return nil
}

// RebaseSkip skips the commit that caused the current rebase to
// conflict and continues with the rest, using the repository's
// configured editor, if any (see [Repository.WithEditor]).
func (r *Repository) RebaseSkip(ctx context.Context) error {
	cmd := r.gitCmd(ctx, "rebase", "--skip")
	cmd.cmd.Stdin = os.Stdin
	cmd.cmd.Stdout = os.Stdout
	if r.editor != "" {
		cmd = cmd.WithConfig(extraConfig{Editor: r.editor})
	}

	if err := cmd.Run(r.exec); err != nil {
		return r.handleRebaseError(ctx, err, nil)
	}
	return r.handleRebaseFinish(ctx, nil)
}

// RebaseEdit starts an interactive rebase that pauses at the given commit
// for editing, equivalent to changing "pick" to "edit" for that commit
// in the rebase todo list.
//
// On success this returns a [RebaseInterruptError] with Kind
// [RebaseInterruptDeliberate].
func (r *Repository) RebaseEdit(ctx context.Context, commit Hash) error {
	shortHash := commit.Short()

	// Git passes the todo file path as an argument to the sequence
	// editor; use $1 to reference it.
	seqEditor := fmt.Sprintf(
		`sh -c 'sed -i.bak "s/^pick %s/edit %s/" "$1"' --`,
		shortHash, shortHash,
	)

	args := []string{
		"-c", "sequence.editor=" + seqEditor,
		"rebase", "--interactive", commit.String() + "^",
	}

	if err := r.gitCmd(ctx, args...).Run(r.exec); err != nil {
		return r.handleRebaseError(ctx, err, nil)
	}
	return r.handleRebaseFinish(ctx, nil)
}

// RebaseBackend specifies the kind of rebase backend in use.
//
// See https://git-scm.com/docs/git-rebase#_behavioral_differences for details.
type RebaseBackend int

const (
	// RebaseBackendMerge refers to the "merge" backend.
	// It is the default backend used by Git,
	// and handles more corner cases better.
	RebaseBackendMerge RebaseBackend = iota

	// RebaseBackendApply refers to the "apply" backend.
	// It is rarely used and may be phased out in the future
	// if the merge backend gains all of its features.
	// It is enabled with the --apply flag.
	RebaseBackendApply
)

func (b RebaseBackend) String() string {
	switch b {
	case RebaseBackendMerge:
		return "merge"
	case RebaseBackendApply:
		return "apply"
	default:
		return "unknown"
	}
}

// RebaseState holds information about the current state of a rebase operation.
type RebaseState struct {
	// Branch is the branch being rebased.
	Branch string

	// Backend specifies which merge backend is being used.
	// Merge is the default.
	// Apply is rarely used and may be phased out in the future.
	Backend RebaseBackend
}

// RebaseState reports the state of an ongoing rebase,
// or [ErrNoRebase] if no rebase is in progress.
//
// Rebase state is stored inside .git/rebase-merge or .git/rebase-apply
// depending on the backend in use.
// See https://github.com/git/git/blob/d8ab1d464d07baa30e5a180eb33b3f9aa5c93adf/wt-status.c#L1711.
// Inside that directory, we care about head-name: the full ref name
// of the branch being rebased (e.g. refs/heads/main). There's no Git
// porcelain command to directly get this information.
func (r *Repository) RebaseState(context.Context) (*RebaseState, error) {
	for _, backend := range []RebaseBackend{RebaseBackendApply, RebaseBackendMerge} {
		stateDir := filepath.Join(r.gitDir, backend.stateDir())
		if _, err := os.Stat(stateDir); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("check %v: %w", backend, err)
		}

		head, err := os.ReadFile(filepath.Join(stateDir, "head-name"))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read %v head: %w", backend, err)
		}

		branchRef := strings.TrimSpace(string(head))
		state := &RebaseState{
			Branch:  strings.TrimPrefix(branchRef, "refs/heads/"),
			Backend: backend,
		}

		return state, nil
	}

	return nil, ErrNoRebase
}

// stateDir reports the directory inside the .git directory
// where rebase state is stored.
//
// See
// https://github.com/git/git/blob/d8ab1d464d07baa30e5a180eb33b3f9aa5c93adf/wt-status.c#L1711.
func (b RebaseBackend) stateDir() string {
	switch b {
	case RebaseBackendMerge:
		return "rebase-merge"
	case RebaseBackendApply:
		return "rebase-apply"
	default:
		must.Failf("unknown rebase backend: %v", b)
		return ""
	}
}
