// Package rebasestate persists the progress of an in-flight cascading
// rebase so that it can be resumed with "chain rebase --continue" or
// abandoned with "chain rebase --abort" after the process exits (for
// example, while the user resolves a conflict).
//
// State lives in a single JSON file alongside the repository's other
// Git-internal bookkeeping, not in the object database: a rebase in
// progress is local, ephemeral process state, not something to share
// or version, so there's no reason to pay for a commit (and the ref
// churn that comes with it) every time a cascade takes a step.
package rebasestate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// _fileName is the name of the state file, stored directly under the
// repository's Git directory.
const _fileName = "chain-rebase-state.json"

// ErrNoState indicates that no cascade is currently in progress.
var ErrNoState = errors.New("no rebase in progress")

// SquashMode controls how a squash-merged chain member is reconciled
// during a cascade.
type SquashMode string

// Supported squash reconciliation modes.
const (
	SquashModeUnset  SquashMode = ""
	SquashModeReset  SquashMode = "reset"
	SquashModeSkip   SquashMode = "skip"
	SquashModeRebase SquashMode = "rebase"
)

// BranchStatus records where a single chain member stands in a cascade.
type BranchStatus string

// Supported branch statuses.
const (
	// BranchPending has not been rebased yet in this cascade.
	BranchPending BranchStatus = "pending"

	// BranchConflict is the member the cascade is currently stopped
	// on, waiting for the conflict to be resolved.
	BranchConflict BranchStatus = "conflict"

	// BranchDone was rebased successfully.
	BranchDone BranchStatus = "done"

	// BranchSkipped was left untouched, e.g. because it was
	// squash-merged and reconciled with "skip" mode.
	BranchSkipped BranchStatus = "skipped"

	// BranchSquashReset was reset directly onto its base after being
	// detected as squash-merged.
	BranchSquashReset BranchStatus = "squash-reset"
)

// BranchState is the durable, per-member record of a cascade: the
// state needed both to resume a conflicted cascade and to restore
// every member to where it started if the cascade is aborted.
type BranchState struct {
	// Name is the branch's name.
	Name string `json:"name"`

	// Parent is the branch this member was being rebased onto.
	Parent string `json:"parent"`

	// OriginalOid is the commit Name pointed to before the cascade
	// touched it. Abort resets the branch back to this commit.
	OriginalOid string `json:"originalOid"`

	// ParentOriginalOid is the commit Parent pointed to when this
	// member's fork point was resolved, before the cascade advanced
	// Parent by rebasing it. Used to detect the parent itself having
	// been force-pushed or otherwise mutated externally between the
	// snapshot being taken and the cascade reaching this member.
	ParentOriginalOid string `json:"parentOriginalOid"`

	// MergeBaseOid is the upstream commit resolved by forkpoint.Resolver
	// for this member, computed up front for the whole chain so a
	// resumed cascade rebases onto the same point it would have had
	// the conflict never happened.
	MergeBaseOid string `json:"mergeBaseOid"`

	// Status is this member's progress in the current cascade.
	Status BranchStatus `json:"status"`
}

// Snapshot is the durable record of a cascade's progress.
type Snapshot struct {
	// Chain is the name of the chain being rebased.
	Chain string `json:"chain"`

	// OriginalBranch is the branch that was checked out when the
	// cascade started. Abort returns the worktree to it.
	OriginalBranch string `json:"originalBranch,omitempty"`

	// Members lists every chain member participating in this
	// cascade, in rebase order, each with the state needed to resume
	// or abort it.
	Members []BranchState `json:"members"`

	// IgnoreRoot records whether --ignore-root was passed for this
	// invocation. It is never read back as a default: per-invocation,
	// the caller must pass --ignore-root again on every call,
	// including --continue. This field exists purely so --status can
	// report it.
	IgnoreRoot bool `json:"ignoreRoot,omitempty"`

	// SquashMode is the reconciliation mode in effect for this
	// cascade, if one was chosen.
	SquashMode SquashMode `json:"squashMode,omitempty"`

	// CreatedAt is when the cascade began.
	CreatedAt time.Time `json:"createdAt"`
}

// Branch reports the member whose Name matches, and whether it was found.
func (s *Snapshot) Branch(name string) (*BranchState, bool) {
	for i := range s.Members {
		if s.Members[i].Name == name {
			return &s.Members[i], true
		}
	}
	return nil, false
}

// Conflicted reports the member currently marked [BranchConflict], if any.
func (s *Snapshot) Conflicted() (*BranchState, bool) {
	for i := range s.Members {
		if s.Members[i].Status == BranchConflict {
			return &s.Members[i], true
		}
	}
	return nil, false
}

// Pending reports every member still marked [BranchPending], in order.
func (s *Snapshot) Pending() []BranchState {
	var pending []BranchState
	for _, m := range s.Members {
		if m.Status == BranchPending {
			pending = append(pending, m)
		}
	}
	return pending
}

// Store persists a single Snapshot to a JSON file under a Git
// directory.
type Store struct {
	path string
	log  *log.Logger
}

// Options configures a Store.
type Options struct {
	// Log used for logging messages to the user.
	// If nil, no messages are logged.
	Log *log.Logger
}

// New builds a Store that keeps its state file under gitDir (typically
// [git.Repository.GitDir]).
func New(gitDir string, opts Options) *Store {
	return &Store{path: filepath.Join(gitDir, _fileName), log: opts.Log}
}

// Save records snap as the current cascade's progress, replacing
// whatever was previously saved. The write is atomic: a concurrent
// reader never observes a partially written file.
func (s *Store) Save(_ context.Context, snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode rebase state: %w", err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("save rebase state: %w", err)
	}
	return nil
}

// Load retrieves the current cascade's progress.
// It returns ErrNoState if no cascade is in progress.
func (s *Store) Load(_ context.Context) (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoState
		}
		return nil, fmt.Errorf("load rebase state: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse rebase state: %w", err)
	}
	return &snap, nil
}

// Clear removes the current cascade's progress, marking it complete or
// abandoned. It is a no-op if no cascade is in progress.
func (s *Store) Clear(context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear rebase state: %w", err)
	}
	return nil
}

// Status is the machine-readable accessor behind "chain rebase
// --status": it separates gathering state from presenting it, so a
// caller can render the snapshot however it likes without re-parsing
// text output.
func (s *Store) Status(ctx context.Context) (*Snapshot, error) {
	return s.Load(ctx)
}

// writeFileAtomic writes data to path by writing to a temporary file
// in the same directory, fsyncing it, and renaming it into place, so a
// crash or a concurrent reader never sees a truncated or half-written
// file.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".chain-rebase-state-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
