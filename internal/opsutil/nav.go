package opsutil

import (
	"errors"
	"fmt"

	"go.abhg.dev/gs/internal/chainmodel"
)

// ErrNoNext indicates that branch is already the topmost member of its
// chain: there is nothing further to move up to.
var ErrNoNext = errors.New("already at the top of the chain")

// First returns the chain's bottommost member: the branch stacked
// directly on the root.
func First(chain *chainmodel.Chain) (string, error) {
	if len(chain.Members) == 0 {
		return "", fmt.Errorf("chain %q has no members", chain.Name)
	}
	return chain.Members[0].Branch, nil
}

// Last returns the chain's topmost member.
func Last(chain *chainmodel.Chain) (string, error) {
	if len(chain.Members) == 0 {
		return "", fmt.Errorf("chain %q has no members", chain.Name)
	}
	return chain.Members[len(chain.Members)-1].Branch, nil
}

// Next returns the branch stacked directly on top of branch, or
// [ErrNoNext] if branch is already the chain's topmost member.
func Next(chain *chainmodel.Chain, branch string) (string, error) {
	child, ok := chain.Child(branch)
	if !ok {
		return "", fmt.Errorf("%q: %w", branch, ErrNoNext)
	}
	return child, nil
}

// Prev returns the branch directly beneath branch in its chain: the
// previous member, or the chain's root if branch is already the
// bottommost member.
func Prev(chain *chainmodel.Chain, branch string) (string, error) {
	return chain.Parent(branch)
}
