package opsutil

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"go.abhg.dev/gs/internal/chainmodel"
	"go.abhg.dev/gs/internal/git"
)

// Backer is the Git plumbing Backup and Prune need.
type Backer interface {
	PeelToCommit(ctx context.Context, ref string) (git.Hash, error)
	CreateBranch(ctx context.Context, req git.CreateBranchRequest) error
	LocalBranches(ctx context.Context) ([]string, error)
	DeleteBranch(ctx context.Context, branch string, opts git.BranchDeleteOptions) error
}

// BackupOptions configures Backup.
type BackupOptions struct {
	// Log used for logging messages to the user.
	// If nil, no messages are logged.
	Log *log.Logger
}

// backupRef names the throwaway ref a chain member's tip is recorded
// under before a potentially destructive operation touches it.
func backupRef(chain, branch string) string {
	return "backup-" + chain + "/" + branch
}

// Backup records every member of chain's current tip under
// "backup-<chain>/<branch>", overwriting any previous backup for that
// branch. Unlike the automatic backup a squash reconciliation takes
// before resetting a single branch, this snapshots the whole chain at
// once, for use before an operation (e.g. a bulk rebase with an
// unfamiliar fork point) that could touch every member.
func Backup(ctx context.Context, repo Backer, chain *chainmodel.Chain, opts BackupOptions) error {
	if opts.Log == nil {
		opts.Log = log.New(io.Discard)
	}

	for _, m := range chain.Members {
		hash, err := repo.PeelToCommit(ctx, m.Branch)
		if err != nil {
			return fmt.Errorf("resolve %q: %w", m.Branch, err)
		}

		ref := backupRef(chain.Name, m.Branch)
		opts.Log.Debug("backing up branch", "branch", m.Branch, "backup", ref)
		// CreateBranch refuses an existing name, so drop any earlier
		// backup first. A missing backup is not an error here.
		_ = repo.DeleteBranch(ctx, ref, git.BranchDeleteOptions{Force: true})
		if err := repo.CreateBranch(ctx, git.CreateBranchRequest{Name: ref, Head: hash.String()}); err != nil {
			return fmt.Errorf("back up %q to %q: %w", m.Branch, ref, err)
		}
	}
	return nil
}

// Prune removes every "backup-<chain>/..." ref for the named chain,
// reporting the branches it removed.
func Prune(ctx context.Context, repo Backer, chainName string) ([]string, error) {
	branches, err := repo.LocalBranches(ctx)
	if err != nil {
		return nil, fmt.Errorf("list local branches: %w", err)
	}

	prefix := "backup-" + chainName + "/"
	var removed []string
	for _, b := range branches {
		if !strings.HasPrefix(b, prefix) {
			continue
		}
		if err := repo.DeleteBranch(ctx, b, git.BranchDeleteOptions{Force: true}); err != nil {
			return removed, fmt.Errorf("delete backup %q: %w", b, err)
		}
		removed = append(removed, b)
	}
	return removed, nil
}
