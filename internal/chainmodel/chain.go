// Package chainmodel defines the in-memory representation of a stacked
// branch chain and the operations used to inspect and reorder it.
package chainmodel

import (
	"errors"
	"fmt"
)

// ErrBranchNotInChain indicates that a branch was looked up
// in a chain that does not contain it.
var ErrBranchNotInChain = errors.New("branch is not part of the chain")

// Member is a single branch tracked in a chain, along with its position.
type Member struct {
	// Branch is the branch name.
	Branch string

	// Order is the branch's position in the chain, starting at 0 for
	// the member stacked directly on the root (the root itself is not a
	// member). Members are always kept sorted by Order.
	Order int
}

// Chain is an ordered sequence of branches stacked on top of one another,
// starting from a root branch that is not itself part of the chain.
type Chain struct {
	// Name identifies the chain. Chains are looked up by name in the
	// backing store. The name is independent of the root branch:
	// changing the root does not rename the chain.
	Name string

	// Root is the chain's root branch: the branch every member is
	// ultimately stacked on, but which is not itself a member of the
	// chain. It is recorded once per chain rather than once per member,
	// and can be recorded before the chain has any members (see
	// "chain setup"). It is empty until set with SetRoot or loaded
	// from the store.
	Root string

	// Members holds the chain's branches, sorted by Order.
	// Members[0] is the branch stacked directly on the root.
	Members []Member
}

// New creates an empty, named chain with no root. Call SetRoot to
// establish its root and Append, Prepend, InsertBefore, or InsertAfter
// to add members.
func New(name string) *Chain {
	return &Chain{Name: name}
}

// IndexOf returns the index of branch within the chain's members.
func (c *Chain) IndexOf(branch string) (int, bool) {
	for i, m := range c.Members {
		if m.Branch == branch {
			return i, true
		}
	}
	return 0, false
}

// Parent returns the branch that branch is stacked on: the previous
// member's branch, or the chain's root if branch is the first member.
func (c *Chain) Parent(branch string) (string, error) {
	idx, ok := c.IndexOf(branch)
	if !ok {
		return "", fmt.Errorf("%q: %w", branch, ErrBranchNotInChain)
	}
	if idx == 0 {
		return c.Root, nil
	}
	return c.Members[idx-1].Branch, nil
}

// Child returns the branch stacked directly on top of branch, if any.
func (c *Chain) Child(branch string) (string, bool) {
	idx, ok := c.IndexOf(branch)
	if !ok || idx+1 >= len(c.Members) {
		return "", false
	}
	return c.Members[idx+1].Branch, true
}

// Append adds branch to the end of the chain.
func (c *Chain) Append(branch string) error {
	return c.insertAt(branch, len(c.Members))
}

// Prepend adds branch to the beginning of the chain, directly on top
// of the root.
func (c *Chain) Prepend(branch string) error {
	return c.insertAt(branch, 0)
}

// InsertBefore adds branch to the chain directly before anchor.
func (c *Chain) InsertBefore(branch, anchor string) error {
	idx, ok := c.IndexOf(anchor)
	if !ok {
		return fmt.Errorf("%q: %w", anchor, ErrBranchNotInChain)
	}
	return c.insertAt(branch, idx)
}

// InsertAfter adds branch to the chain directly after anchor.
func (c *Chain) InsertAfter(branch, anchor string) error {
	idx, ok := c.IndexOf(anchor)
	if !ok {
		return fmt.Errorf("%q: %w", anchor, ErrBranchNotInChain)
	}
	return c.insertAt(branch, idx+1)
}

func (c *Chain) insertAt(branch string, idx int) error {
	if _, ok := c.IndexOf(branch); ok {
		return fmt.Errorf("branch %q is already in chain %q", branch, c.Name)
	}

	c.Members = append(c.Members, Member{})
	copy(c.Members[idx+1:], c.Members[idx:])
	c.Members[idx] = Member{Branch: branch}
	c.Renumber()
	return nil
}

// Remove removes branch from the chain, preserving the relative order of
// the remaining members. It does not renumber Order values: callers that
// need a dense 0..n-1 sequence should call Renumber afterwards.
func (c *Chain) Remove(branch string) error {
	idx, ok := c.IndexOf(branch)
	if !ok {
		return fmt.Errorf("%q: %w", branch, ErrBranchNotInChain)
	}
	c.Members = append(c.Members[:idx], c.Members[idx+1:]...)
	return nil
}

// Renumber reassigns Order values to a dense 0..n-1 sequence, preserving
// the existing relative ordering of members.
func (c *Chain) Renumber() {
	for i := range c.Members {
		c.Members[i].Order = i
	}
}

// SetRoot updates the chain's root branch. This mirrors "chain move
// --root=<r>": changing which branch the chain is stacked on does not
// reshuffle the chain's internal ordering.
func (c *Chain) SetRoot(root string) {
	c.Root = root
}

// Validate reports whether the chain is internally consistent: no
// duplicate branches and members sorted by Order.
func (c *Chain) Validate() error {
	seen := make(map[string]struct{}, len(c.Members))
	for i, m := range c.Members {
		if _, ok := seen[m.Branch]; ok {
			return fmt.Errorf("branch %q appears more than once in chain %q", m.Branch, c.Name)
		}
		seen[m.Branch] = struct{}{}

		if i > 0 && m.Order <= c.Members[i-1].Order {
			return fmt.Errorf("chain %q: members are not sorted by order (%q at %d follows %q at %d)",
				c.Name, m.Branch, m.Order, c.Members[i-1].Branch, c.Members[i-1].Order)
		}
	}
	return nil
}
