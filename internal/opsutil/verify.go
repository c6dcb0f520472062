package opsutil

import (
	"context"
	"fmt"

	"go.abhg.dev/gs/internal/chainstore"
	"go.abhg.dev/gs/internal/cmputil"
)

// BranchLister reports the repository's local branches, used to detect
// chain members that no longer exist.
type BranchLister interface {
	LocalBranches(ctx context.Context) ([]string, error)
}

// InvariantViolation describes one way chain-membership configuration
// has drifted from what it should be.
type InvariantViolation struct {
	// Chain is the chain the violation was found in.
	Chain string

	// Branch is the member the violation concerns, if any.
	Branch string

	// Problem describes what's wrong.
	Problem string
}

func (v InvariantViolation) String() string {
	if v.Branch != "" {
		return fmt.Sprintf("chain %q: %s (%s)", v.Chain, v.Problem, v.Branch)
	}
	return fmt.Sprintf("chain %q: %s", v.Chain, v.Problem)
}

// Verify scans every chain recorded in store for consistency problems:
// members that reference branches which no longer exist, chains with
// no recorded root, and a root branch recorded for more than one chain.
// It never repairs anything; it only surfaces what it finds, mirroring
// the teacher's VerifyRestacked check for a single branch generalized
// to the whole chain set.
func Verify(ctx context.Context, store *chainstore.Store, repo BranchLister) ([]InvariantViolation, error) {
	names, err := store.Chains(ctx)
	if err != nil {
		return nil, fmt.Errorf("list chains: %w", err)
	}

	existing, err := repo.LocalBranches(ctx)
	if err != nil {
		return nil, fmt.Errorf("list local branches: %w", err)
	}
	exists := make(map[string]struct{}, len(existing))
	for _, b := range existing {
		exists[b] = struct{}{}
	}

	rootOwner := make(map[string]string) // branch -> chain that claims it as root

	var violations []InvariantViolation
	for _, name := range names {
		chain, err := store.Load(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("load chain %q: %w", name, err)
		}

		if cmputil.Zero(chain.Root) {
			violations = append(violations, InvariantViolation{
				Chain:   name,
				Problem: "chain has no recorded root",
			})
		}

		for _, m := range chain.Members {
			if _, ok := exists[m.Branch]; !ok {
				violations = append(violations, InvariantViolation{
					Chain:   name,
					Branch:  m.Branch,
					Problem: "branch no longer exists",
				})
			}
		}

		if root := chain.Root; root != "" {
			if other, ok := rootOwner[root]; ok && other != name {
				violations = append(violations, InvariantViolation{
					Chain:   name,
					Branch:  root,
					Problem: fmt.Sprintf("root also claimed by chain %q", other),
				})
			} else {
				rootOwner[root] = name
			}
		}

		if err := chain.Validate(); err != nil {
			violations = append(violations, InvariantViolation{
				Chain:   name,
				Problem: err.Error(),
			})
		}
	}

	return violations, nil
}
