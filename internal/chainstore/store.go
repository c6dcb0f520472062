// Package chainstore persists chain membership in Git configuration, so
// that plain `git config` continues to work against the same data.
//
// A chain's root is recorded once per chain, not once per member:
//
//	chain.<name>.root         - the chain's root branch
//	branch.<name>.chain-name  - the chain a member branch belongs to
//	branch.<name>.chain-order - the member's position within that chain
package chainstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/charmbracelet/log"
	"go.abhg.dev/gs/internal/chainmodel"
	"go.abhg.dev/gs/internal/git"
	"go.abhg.dev/gs/internal/maputil"
)

const (
	_keyRoot       = "root"
	_keyChainName  = "chain-name"
	_keyChainOrder = "chain-order"
)

// ErrChainNotExist indicates that a chain with the requested name
// has no root or members recorded in configuration.
var ErrChainNotExist = errors.New("chain does not exist")

// Store reads and writes chain membership through a Git configuration
// backend.
type Store struct {
	cfg *git.Config
	log *log.Logger
}

// Options configures a Store.
type Options struct {
	// Log used for logging messages to the user.
	// If nil, no messages are logged.
	Log *log.Logger
}

// New builds a Store backed by cfg.
func New(cfg *git.Config, opts Options) *Store {
	if opts.Log == nil {
		opts.Log = log.New(io.Discard)
	}
	return &Store{cfg: cfg, log: opts.Log}
}

func branchKey(branch, name string) git.ConfigKey {
	return git.ConfigKey(fmt.Sprintf("branch.%s.%s", branch, name))
}

func chainKey(name, key string) git.ConfigKey {
	return git.ConfigKey(fmt.Sprintf("chain.%s.%s", name, key))
}

// CurrentBrancher reports the branch currently checked out, used by
// GetActive to resolve the chain HEAD belongs to.
type CurrentBrancher interface {
	CurrentBranch(ctx context.Context) (string, error)
}

// Load reconstructs the named chain from configuration.
// It returns ErrChainNotExist if the chain has no recorded root and no
// branch records membership in it.
func (s *Store) Load(ctx context.Context, name string) (*chainmodel.Chain, error) {
	type rec struct {
		branch string
		order  int
	}

	root, err := s.cfg.Get(ctx, chainKey(name, _keyRoot))
	hasRoot := true
	if err != nil {
		if !errors.Is(err, git.ErrConfigNotExist) {
			return nil, fmt.Errorf("read root for %q: %w", name, err)
		}
		hasRoot = false
	}

	entries, err := s.cfg.ListRegexp(ctx, `^branch\..*\.chain-name$`)
	if err != nil {
		return nil, fmt.Errorf("list chain-name entries: %w", err)
	}

	var recs []rec
	var listErr error
	entries(func(e git.ConfigEntry, err error) bool {
		if err != nil {
			listErr = err
			return false
		}
		if e.Value != name {
			return true
		}

		branch := e.Key.Subsection()
		order, orderErr := s.getInt(ctx, branchKey(branch, _keyChainOrder))
		if orderErr != nil {
			listErr = fmt.Errorf("read order for %q: %w", branch, orderErr)
			return false
		}

		recs = append(recs, rec{branch: branch, order: order})
		return true
	})
	if listErr != nil {
		return nil, listErr
	}
	if !hasRoot && len(recs) == 0 {
		return nil, fmt.Errorf("%q: %w", name, ErrChainNotExist)
	}

	sort.Slice(recs, func(i, j int) bool { return recs[i].order < recs[j].order })

	c := chainmodel.New(name)
	c.Root = root
	for _, r := range recs {
		c.Members = append(c.Members, chainmodel.Member{
			Branch: r.branch,
			Order:  r.order,
		})
	}

	if err := c.Validate(); err != nil {
		s.log.Warn("chain failed validation on load", "chain", name, "error", err)
	}

	return c, nil
}

// Save writes c's root and every member to configuration, overwriting
// any previous record for those keys. It does not remove keys for
// branches that used to be members of c but no longer are; callers that
// remove a member should call DeleteBranch for it first.
func (s *Store) Save(ctx context.Context, c *chainmodel.Chain) error {
	if err := s.cfg.SetString(ctx, chainKey(c.Name, _keyRoot), c.Root); err != nil {
		return fmt.Errorf("set root for %q: %w", c.Name, err)
	}
	for _, m := range c.Members {
		if err := s.cfg.SetString(ctx, branchKey(m.Branch, _keyChainName), c.Name); err != nil {
			return fmt.Errorf("set chain-name for %q: %w", m.Branch, err)
		}
		if err := s.cfg.SetString(ctx, branchKey(m.Branch, _keyChainOrder), strconv.Itoa(m.Order)); err != nil {
			return fmt.Errorf("set chain-order for %q: %w", m.Branch, err)
		}
	}
	s.log.Debug("saved chain", "chain", c.Name, "root", c.Root, "members", len(c.Members))
	return nil
}

// Setup creates a new chain record with the given root and no members.
// Use Init to add branches to it afterwards.
func (s *Store) Setup(ctx context.Context, name, root string) error {
	if err := s.cfg.SetString(ctx, chainKey(name, _keyRoot), root); err != nil {
		return fmt.Errorf("set root for %q: %w", name, err)
	}
	s.log.Debug("set up chain", "chain", name, "root", root)
	return nil
}

// InitPosition selects where Init inserts a branch into a chain.
// Exactly one field should be set; the zero value behaves like Last.
type InitPosition struct {
	// Before inserts the branch immediately before this existing member.
	Before string

	// After inserts the branch immediately after this existing member.
	After string

	// First inserts the branch directly on top of the chain's root.
	First bool

	// Last inserts the branch at the end of the chain. This is the
	// default if no other field is set.
	Last bool
}

// Init inserts an existing branch into the named chain at the position
// described by pos.
func (s *Store) Init(ctx context.Context, chainName, branch string, pos InitPosition) error {
	c, err := s.Load(ctx, chainName)
	if err != nil {
		return err
	}

	switch {
	case pos.Before != "":
		err = c.InsertBefore(branch, pos.Before)
	case pos.After != "":
		err = c.InsertAfter(branch, pos.After)
	case pos.First:
		err = c.Prepend(branch)
	default:
		err = c.Append(branch)
	}
	if err != nil {
		return err
	}

	c.Renumber()
	return s.Save(ctx, c)
}

// GetActive resolves the chain that the repository's current branch
// belongs to, using repo to determine the current branch.
func (s *Store) GetActive(ctx context.Context, repo CurrentBrancher) (*chainmodel.Chain, error) {
	branch, err := repo.CurrentBranch(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve current branch: %w", err)
	}

	name, err := s.cfg.Get(ctx, branchKey(branch, _keyChainName))
	if err != nil {
		if errors.Is(err, git.ErrConfigNotExist) {
			return nil, fmt.Errorf("%q is not part of a chain: %w", branch, ErrChainNotExist)
		}
		return nil, fmt.Errorf("read chain for %q: %w", branch, err)
	}

	return s.Load(ctx, name)
}

// Rename changes the name a chain is recorded under, updating its root
// key and every member's chain-name to match. The chain's members and
// root are otherwise unchanged.
func (s *Store) Rename(ctx context.Context, oldName, newName string) error {
	c, err := s.Load(ctx, oldName)
	if err != nil {
		return err
	}

	if err := s.cfg.Unset(ctx, chainKey(oldName, _keyRoot)); err != nil {
		return fmt.Errorf("unset root for %q: %w", oldName, err)
	}

	c.Name = newName
	return s.Save(ctx, c)
}

// MoveOptions selects what Move changes about a branch's place in its
// chain. If Root is set, the other fields are ignored. Chain may be
// combined with Before or After; otherwise at most one of Before or
// After should be set.
type MoveOptions struct {
	// Before repositions the branch immediately before this existing
	// member of the same chain.
	Before string

	// After repositions the branch immediately after this existing
	// member of the same chain.
	After string

	// Chain moves the branch to a different, already-existing chain.
	// It is appended to the end unless Before or After is also set.
	Chain string

	// Root changes the root recorded for the branch's whole chain.
	Root string
}

// Move repositions branch within its chain, moves it to a different
// chain, or changes its chain's root, according to opts.
func (s *Store) Move(ctx context.Context, branch string, opts MoveOptions) error {
	name, err := s.cfg.Get(ctx, branchKey(branch, _keyChainName))
	if err != nil {
		if errors.Is(err, git.ErrConfigNotExist) {
			return fmt.Errorf("%q is not part of a chain: %w", branch, ErrChainNotExist)
		}
		return fmt.Errorf("read chain for %q: %w", branch, err)
	}

	c, err := s.Load(ctx, name)
	if err != nil {
		return err
	}

	if opts.Root != "" {
		c.SetRoot(opts.Root)
		return s.Save(ctx, c)
	}

	if opts.Chain != "" && opts.Chain != name {
		dest, err := s.Load(ctx, opts.Chain)
		if err != nil {
			return err
		}

		if err := c.Remove(branch); err != nil {
			return err
		}
		c.Renumber()
		if err := s.Save(ctx, c); err != nil {
			return err
		}
		if err := s.DeleteBranch(ctx, branch); err != nil {
			return err
		}

		switch {
		case opts.Before != "":
			err = dest.InsertBefore(branch, opts.Before)
		case opts.After != "":
			err = dest.InsertAfter(branch, opts.After)
		default:
			err = dest.Append(branch)
		}
		if err != nil {
			return err
		}
		dest.Renumber()
		return s.Save(ctx, dest)
	}

	if err := c.Remove(branch); err != nil {
		return err
	}
	switch {
	case opts.Before != "":
		err = c.InsertBefore(branch, opts.Before)
	case opts.After != "":
		err = c.InsertAfter(branch, opts.After)
	default:
		err = c.Append(branch)
	}
	if err != nil {
		return err
	}
	c.Renumber()
	return s.Save(ctx, c)
}

// DeleteBranch removes all chain membership keys for a single branch,
// regardless of which chain it belongs to.
func (s *Store) DeleteBranch(ctx context.Context, branch string) error {
	for _, key := range []string{_keyChainName, _keyChainOrder} {
		if err := s.cfg.Unset(ctx, branchKey(branch, key)); err != nil {
			return fmt.Errorf("unset %s for %q: %w", key, branch, err)
		}
	}
	return nil
}

// Delete removes the named chain entirely: its root key and every
// member's chain membership keys.
func (s *Store) Delete(ctx context.Context, name string) error {
	c, err := s.Load(ctx, name)
	if err != nil {
		return err
	}
	for _, m := range c.Members {
		if err := s.DeleteBranch(ctx, m.Branch); err != nil {
			return err
		}
	}
	if err := s.cfg.Unset(ctx, chainKey(name, _keyRoot)); err != nil {
		return fmt.Errorf("unset root for %q: %w", name, err)
	}
	return nil
}

// Chains returns the distinct chain names recorded in configuration,
// including chains set up with Setup that have no members yet.
func (s *Store) Chains(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})

	nameEntries, err := s.cfg.ListRegexp(ctx, `^branch\..*\.chain-name$`)
	if err != nil {
		return nil, fmt.Errorf("list chain-name entries: %w", err)
	}
	var listErr error
	nameEntries(func(e git.ConfigEntry, err error) bool {
		if err != nil {
			listErr = err
			return false
		}
		seen[e.Value] = struct{}{}
		return true
	})
	if listErr != nil {
		return nil, listErr
	}

	rootEntries, err := s.cfg.ListRegexp(ctx, `^chain\..*\.root$`)
	if err != nil {
		return nil, fmt.Errorf("list chain-root entries: %w", err)
	}
	rootEntries(func(e git.ConfigEntry, err error) bool {
		if err != nil {
			listErr = err
			return false
		}
		seen[e.Key.Subsection()] = struct{}{}
		return true
	})
	if listErr != nil {
		return nil, listErr
	}

	names := maputil.Keys(seen)
	sort.Strings(names)
	return names, nil
}

func (s *Store) getInt(ctx context.Context, key git.ConfigKey) (int, error) {
	raw, err := s.cfg.Get(ctx, key)
	if err != nil {
		if errors.Is(err, git.ErrConfigNotExist) {
			return 0, nil
		}
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %v=%q: %w", key, raw, err)
	}
	return n, nil
}
