// Command chain maintains a stacked branch chain: rebasing or merging
// every member onto its parent in order, resuming after conflicts,
// pushing the whole stack, navigating it, and auditing chain-membership
// configuration for drift.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"go.abhg.dev/gs/internal/chainmodel"
	"go.abhg.dev/gs/internal/chainstore"
	"go.abhg.dev/gs/internal/forkpoint"
	"go.abhg.dev/gs/internal/git"
	"go.abhg.dev/gs/internal/mergeengine"
	"go.abhg.dev/gs/internal/opsutil"
	"go.abhg.dev/gs/internal/rebaseengine"
	"go.abhg.dev/gs/internal/rebasestate"
	"go.abhg.dev/gs/internal/reporter"
	"go.abhg.dev/gs/internal/squash"
	"go.abhg.dev/gs/internal/squashreconcile"
)

func main() {
	logger := log.New(os.Stderr)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var cmd rootCmd
	kctx := kong.Parse(&cmd,
		kong.Name("chain"),
		kong.Description("Maintain a stacked chain of Git branches."),
		kong.Bind(logger, &cmd.globalOptions),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.UsageOnError(),
	)

	kctx.FatalIfErrorf(kctx.Run())
}

type globalOptions struct {
	C string `name:"C" type:"existingdir" default:"." help:"Run as if chain was started in this directory"`
}

type rootCmd struct {
	globalOptions

	Verbose bool `short:"v" help:"Enable verbose logging"`

	Chain  chainCmd  `cmd:"" help:"Print the chain the current branch belongs to"`
	List   listCmd   `cmd:"" help:"List chains, or a chain's members"`
	Setup  setupCmd  `cmd:"" help:"Create a new chain"`
	Init   initCmd   `cmd:"" help:"Add a branch to a chain"`
	Rename renameCmd `cmd:"" help:"Rename a chain"`
	Remove removeCmd `cmd:"" help:"Remove a branch from its chain"`
	Move   moveCmd   `cmd:"" help:"Reposition a branch within or across chains"`

	Rebase rebaseCmd `cmd:"" help:"Cascade a rebase across a chain"`
	Merge  mergeCmd  `cmd:"" help:"Cascade a merge across a chain"`
	Push   pushCmd   `cmd:"" help:"Push every branch in a chain"`
	Doctor doctorCmd `cmd:"" help:"Check chain configuration for inconsistencies"`

	Backup backupCmd `cmd:"" help:"Snapshot every branch in a chain under backup refs"`
	Prune  pruneCmd  `cmd:"" help:"Remove a chain's backup refs"`

	First firstCmd `cmd:"" help:"Print the chain's bottommost member"`
	Last  lastCmd  `cmd:"" help:"Print the chain's topmost member"`
	Next  nextCmd  `cmd:"" help:"Print the branch stacked above the current one"`
	Prev  prevCmd  `cmd:"" help:"Print the branch stacked below the current one"`
}

func (cmd *rootCmd) AfterApply(logger *log.Logger) error {
	if cmd.Verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return nil
}

// components bundles the objects every subcommand needs, built fresh
// from the repository at the requested directory.
type components struct {
	repo     *git.Repository
	chains   *chainstore.Store
	rebase   *rebaseengine.Engine
	rebaseSt *rebasestate.Store
	merge    *mergeengine.Engine
}

func newComponents(ctx context.Context, dir string, logger *log.Logger) (*components, error) {
	repo, err := git.Open(ctx, dir, git.OpenOptions{Log: logger})
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	cfg := git.NewConfig(git.ConfigOptions{Dir: dir, Log: logger})
	chains := chainstore.New(cfg, chainstore.Options{Log: logger})

	rebaseSt := rebasestate.New(repo.GitDir(), rebasestate.Options{Log: logger})

	forks := forkpoint.New(repo, forkpoint.Options{Log: logger})
	detector := squash.New(repo, squash.Options{Log: logger})
	reconciler := squashreconcile.New(repo, squashreconcile.Options{Log: logger})
	merge := mergeengine.New(repo, chains, forks, detector, mergeengine.Options{Log: logger})

	rebase := rebaseengine.New(repo, chains, forks, detector, rebaseSt, rebaseengine.Options{
		Merge: reconciler,
		Log:   logger,
	})

	return &components{
		repo:     repo,
		chains:   chains,
		rebase:   rebase,
		rebaseSt: rebaseSt,
		merge:    merge,
	}, nil
}

// activeChainName resolves the chain name to operate on: the explicit
// argument if given, otherwise the chain the current branch belongs to.
func activeChainName(ctx context.Context, c *components, name string) (string, error) {
	if name != "" {
		return name, nil
	}
	chain, err := c.chains.GetActive(ctx, c.repo)
	if err != nil {
		return "", err
	}
	return chain.Name, nil
}

type chainCmd struct{}

func (cmd *chainCmd) Run(ctx context.Context, logger *log.Logger, g *globalOptions) error {
	c, err := newComponents(ctx, g.C, logger)
	if err != nil {
		return err
	}

	chain, err := c.chains.GetActive(ctx, c.repo)
	if err != nil {
		return err
	}
	fmt.Println(chain.Name)
	return nil
}

type listCmd struct {
	Chain string `arg:"" optional:"" help:"Chain to list members of; all chains if omitted"`
}

func (cmd *listCmd) Run(ctx context.Context, logger *log.Logger, g *globalOptions) error {
	c, err := newComponents(ctx, g.C, logger)
	if err != nil {
		return err
	}

	if cmd.Chain == "" {
		names, err := c.chains.Chains(ctx)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	}

	chain, err := c.chains.Load(ctx, cmd.Chain)
	if err != nil {
		return err
	}
	fmt.Printf("%s (root)\n", chain.Root)
	for _, m := range chain.Members {
		fmt.Printf("%s\n", m.Branch)
	}
	return nil
}

type setupCmd struct {
	Chain string `arg:"" help:"Name for the new chain"`
	Root  string `required:"" help:"Branch the chain is stacked on"`
}

func (cmd *setupCmd) Run(ctx context.Context, logger *log.Logger, g *globalOptions) error {
	c, err := newComponents(ctx, g.C, logger)
	if err != nil {
		return err
	}
	return c.chains.Setup(ctx, cmd.Chain, cmd.Root)
}

type initCmd struct {
	Chain  string `arg:"" help:"Chain to add the branch to"`
	Branch string `arg:"" help:"Branch to add"`
	Before string `help:"Insert immediately before this existing member"`
	After  string `help:"Insert immediately after this existing member"`
	First  bool   `help:"Insert directly on top of the chain's root"`
}

func (cmd *initCmd) Run(ctx context.Context, logger *log.Logger, g *globalOptions) error {
	c, err := newComponents(ctx, g.C, logger)
	if err != nil {
		return err
	}
	return c.chains.Init(ctx, cmd.Chain, cmd.Branch, chainstore.InitPosition{
		Before: cmd.Before,
		After:  cmd.After,
		First:  cmd.First,
	})
}

type renameCmd struct {
	Old string `arg:""`
	New string `arg:""`
}

func (cmd *renameCmd) Run(ctx context.Context, logger *log.Logger, g *globalOptions) error {
	c, err := newComponents(ctx, g.C, logger)
	if err != nil {
		return err
	}
	return c.chains.Rename(ctx, cmd.Old, cmd.New)
}

type removeCmd struct {
	Chain  string `required:"" help:"Chain the branch belongs to"`
	Branch string `arg:"" help:"Branch to remove from the chain"`
}

func (cmd *removeCmd) Run(ctx context.Context, logger *log.Logger, g *globalOptions) error {
	c, err := newComponents(ctx, g.C, logger)
	if err != nil {
		return err
	}

	chain, err := c.chains.Load(ctx, cmd.Chain)
	if err != nil {
		return err
	}
	if err := chain.Remove(cmd.Branch); err != nil {
		return err
	}
	chain.Renumber()
	if err := c.chains.Save(ctx, chain); err != nil {
		return err
	}
	return c.chains.DeleteBranch(ctx, cmd.Branch)
}

type moveCmd struct {
	Branch string `arg:"" help:"Branch to reposition"`
	Before string `help:"Reposition immediately before this existing member"`
	After  string `help:"Reposition immediately after this existing member"`
	Chain  string `help:"Move the branch to a different, already-existing chain"`
	Root   string `help:"Change the root recorded for the branch's whole chain"`
}

func (cmd *moveCmd) Run(ctx context.Context, logger *log.Logger, g *globalOptions) error {
	c, err := newComponents(ctx, g.C, logger)
	if err != nil {
		return err
	}
	return c.chains.Move(ctx, cmd.Branch, chainstore.MoveOptions{
		Before: cmd.Before,
		After:  cmd.After,
		Chain:  cmd.Chain,
		Root:   cmd.Root,
	})
}

type rebaseCmd struct {
	Chain          string `arg:"" optional:"" help:"Chain to rebase"`
	Continue       bool   `help:"Resume an interrupted cascade"`
	Abort          bool   `help:"Abandon an interrupted cascade"`
	Skip           bool   `help:"Abandon the conflicted branch and resume with its children"`
	Status         bool   `help:"Print the current cascade's progress and exit"`
	Step           bool   `help:"Stop after rebasing a single member"`
	CleanupBackups bool   `name:"cleanup-backups" help:"Remove backup refs left by squash reconciliation and exit"`
	IgnoreRoot     bool   `name:"ignore-root" help:"Don't rebase the chain's first member against its root"`
	SquashMerge    string `name:"squashed-merge" enum:",reset,skip,rebase" help:"How to reconcile a squash-merged member"`
}

func (cmd *rebaseCmd) Run(ctx context.Context, logger *log.Logger, g *globalOptions) error {
	c, err := newComponents(ctx, g.C, logger)
	if err != nil {
		return err
	}

	switch {
	case cmd.Status:
		snap, err := c.rebase.Status(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%+v\n", snap)
		return nil
	case cmd.CleanupBackups:
		chainName, err := activeChainName(ctx, c, cmd.Chain)
		if err != nil {
			return err
		}
		removed, err := c.rebase.CleanupBackups(ctx, chainName)
		if err != nil {
			return err
		}
		for _, b := range removed {
			fmt.Println(b)
		}
		return nil
	case cmd.Abort:
		return c.rebase.Abort(ctx)
	case cmd.Skip:
		result, err := c.rebase.Skip(ctx)
		return reportRebase(cmd.Chain, result, err)
	case cmd.Continue:
		result, err := c.rebase.Continue(ctx)
		return reportRebase(cmd.Chain, result, err)
	default:
		result, err := c.rebase.Run(ctx, cmd.Chain, rebaseengine.RunOptions{
			IgnoreRoot: cmd.IgnoreRoot,
			SquashMode: rebasestate.SquashMode(cmd.SquashMerge),
			Step:       cmd.Step,
		})
		return reportRebase(cmd.Chain, result, err)
	}
}

// reportRebase prints a one-line summary of a rebase cascade. An
// interrupted or deliberately-stepped cascade is reported, not treated
// as a command failure; the caller reruns with --continue, --skip, or
// --abort once it's resolved.
func reportRebase(chain string, result *rebaseengine.Result, err error) error {
	summary := reporter.Summary{Chain: chain}
	if result != nil {
		summary.Rebased = result.Rebased
		summary.Skipped = result.Skipped
		summary.SquashReset = result.SquashReset
	}

	if err == nil {
		fmt.Println(summary.String())
		return nil
	}
	if errors.Is(err, rebaseengine.ErrCascadeInterrupted) || errors.Is(err, rebaseengine.ErrCascadeStepped) {
		summary.Interrupted = err.Error()
		fmt.Println(summary.String())
		return nil
	}
	return err
}

type mergeCmd struct {
	Chain       string   `arg:"" optional:"" help:"Chain to merge"`
	Verbose     bool     `help:"Log every decision the cascade makes"`
	IgnoreRoot  bool     `name:"ignore-root" help:"Don't merge the chain's first member with its root"`
	Stay        bool     `help:"Don't return to the original branch when done"`
	Depth       int      `name:"chain" help:"Merge only this many members, starting from the bottom"`
	Simple      bool     `help:"Skip fork-point and squash detection; merge every member unconditionally"`
	NoForkPoint bool     `name:"no-fork-point" help:"Merge every member even if already a fast-forward"`
	SquashMerge string   `name:"squashed-merge" enum:",reset,skip,merge" help:"How to reconcile a squash-merged member"`
	FastForward string   `name:"ff" enum:"auto,only,never" default:"auto" help:"Fast-forward preference"`
	Squash      bool     `help:"Merge with --squash, leaving the result uncommitted"`
	Strategy    string   `help:"Merge strategy to pass to git merge"`
	StrategyOpt []string `name:"strategy-option" help:"Merge strategy option to pass to git merge"`
}

func (cmd *mergeCmd) Run(ctx context.Context, logger *log.Logger, g *globalOptions) error {
	if cmd.Verbose {
		logger.SetLevel(log.DebugLevel)
	}
	c, err := newComponents(ctx, g.C, logger)
	if err != nil {
		return err
	}

	var ff git.MergeFastForward
	switch cmd.FastForward {
	case "only":
		ff = git.MergeFastForwardOnly
	case "never":
		ff = git.MergeFastForwardNever
	default:
		ff = git.MergeFastForwardAuto
	}

	result, err := c.merge.Run(ctx, cmd.Chain, mergeengine.RunOptions{
		IgnoreRoot:      cmd.IgnoreRoot,
		Stay:            cmd.Stay,
		Depth:           cmd.Depth,
		Simple:          cmd.Simple,
		NoForkPoint:     cmd.NoForkPoint,
		SquashMode:      mergeengine.SquashMode(cmd.SquashMerge),
		FastForward:     ff,
		Squash:          cmd.Squash,
		Strategy:        cmd.Strategy,
		StrategyOptions: cmd.StrategyOpt,
	})
	if err != nil {
		return err
	}

	summary := reporter.Summary{
		Chain:       cmd.Chain,
		Rebased:     result.Merged,
		Skipped:     append(append([]string{}, result.Skipped...), result.FastForwarded...),
		SquashReset: result.SquashReset,
	}
	fmt.Println(summary.String())
	return nil
}

type pushCmd struct {
	Chain  string `arg:"" help:"Chain to push"`
	Remote string `help:"Remote to push to" default:"origin"`
}

func (cmd *pushCmd) Run(ctx context.Context, logger *log.Logger, g *globalOptions) error {
	c, err := newComponents(ctx, g.C, logger)
	if err != nil {
		return err
	}

	chain, err := c.chains.Load(ctx, cmd.Chain)
	if err != nil {
		return err
	}

	branches := make([]string, len(chain.Members))
	for i, m := range chain.Members {
		branches[i] = m.Branch
	}

	return opsutil.Push(ctx, c.repo, branches, opsutil.PushOptions{
		Remote: cmd.Remote,
		Log:    logger,
	})
}

type doctorCmd struct{}

func (cmd *doctorCmd) Run(ctx context.Context, logger *log.Logger, g *globalOptions) error {
	c, err := newComponents(ctx, g.C, logger)
	if err != nil {
		return err
	}

	violations, err := opsutil.Verify(ctx, c.chains, c.repo)
	if err != nil {
		return err
	}

	for _, v := range violations {
		fmt.Println(v.String())
	}
	if len(violations) > 0 {
		return fmt.Errorf("found %d problem(s)", len(violations))
	}
	fmt.Println("no problems found")
	return nil
}

type backupCmd struct {
	Chain string `arg:"" help:"Chain to back up"`
}

func (cmd *backupCmd) Run(ctx context.Context, logger *log.Logger, g *globalOptions) error {
	c, err := newComponents(ctx, g.C, logger)
	if err != nil {
		return err
	}

	chain, err := c.chains.Load(ctx, cmd.Chain)
	if err != nil {
		return err
	}
	return opsutil.Backup(ctx, c.repo, chain, opsutil.BackupOptions{Log: logger})
}

type pruneCmd struct {
	Chain string `arg:"" help:"Chain whose backup refs should be removed"`
}

func (cmd *pruneCmd) Run(ctx context.Context, logger *log.Logger, g *globalOptions) error {
	c, err := newComponents(ctx, g.C, logger)
	if err != nil {
		return err
	}

	removed, err := opsutil.Prune(ctx, c.repo, cmd.Chain)
	if err != nil {
		return err
	}
	for _, b := range removed {
		fmt.Println(b)
	}
	return nil
}

// loadActiveOrNamed loads the named chain, or the chain the current
// branch belongs to if name is empty, and reports the current branch
// alongside it for navigation commands.
func loadActiveOrNamed(ctx context.Context, c *components, name string) (*chainmodel.Chain, string, error) {
	if name != "" {
		chain, err := c.chains.Load(ctx, name)
		if err != nil {
			return nil, "", err
		}
		branch, err := c.repo.CurrentBranch(ctx)
		if err != nil {
			return nil, "", err
		}
		return chain, branch, nil
	}

	branch, err := c.repo.CurrentBranch(ctx)
	if err != nil {
		return nil, "", err
	}
	chain, err := c.chains.GetActive(ctx, c.repo)
	if err != nil {
		return nil, "", err
	}
	return chain, branch, nil
}

type firstCmd struct {
	Chain  string `arg:"" optional:"" help:"Chain to navigate"`
	Switch bool   `help:"Check out the resulting branch"`
}

func (cmd *firstCmd) Run(ctx context.Context, logger *log.Logger, g *globalOptions) error {
	c, err := newComponents(ctx, g.C, logger)
	if err != nil {
		return err
	}
	chain, _, err := loadActiveOrNamed(ctx, c, cmd.Chain)
	if err != nil {
		return err
	}
	branch, err := opsutil.First(chain)
	if err != nil {
		return err
	}
	return printOrCheckout(ctx, c, branch, cmd.Switch)
}

type lastCmd struct {
	Chain  string `arg:"" optional:"" help:"Chain to navigate"`
	Switch bool   `help:"Check out the resulting branch"`
}

func (cmd *lastCmd) Run(ctx context.Context, logger *log.Logger, g *globalOptions) error {
	c, err := newComponents(ctx, g.C, logger)
	if err != nil {
		return err
	}
	chain, _, err := loadActiveOrNamed(ctx, c, cmd.Chain)
	if err != nil {
		return err
	}
	branch, err := opsutil.Last(chain)
	if err != nil {
		return err
	}
	return printOrCheckout(ctx, c, branch, cmd.Switch)
}

type nextCmd struct {
	Chain  string `arg:"" optional:"" help:"Chain to navigate"`
	Switch bool   `help:"Check out the resulting branch"`
}

func (cmd *nextCmd) Run(ctx context.Context, logger *log.Logger, g *globalOptions) error {
	c, err := newComponents(ctx, g.C, logger)
	if err != nil {
		return err
	}
	chain, branch, err := loadActiveOrNamed(ctx, c, cmd.Chain)
	if err != nil {
		return err
	}
	next, err := opsutil.Next(chain, branch)
	if err != nil {
		return err
	}
	return printOrCheckout(ctx, c, next, cmd.Switch)
}

type prevCmd struct {
	Chain  string `arg:"" optional:"" help:"Chain to navigate"`
	Switch bool   `help:"Check out the resulting branch"`
}

func (cmd *prevCmd) Run(ctx context.Context, logger *log.Logger, g *globalOptions) error {
	c, err := newComponents(ctx, g.C, logger)
	if err != nil {
		return err
	}
	chain, branch, err := loadActiveOrNamed(ctx, c, cmd.Chain)
	if err != nil {
		return err
	}
	prev, err := opsutil.Prev(chain, branch)
	if err != nil {
		return err
	}
	return printOrCheckout(ctx, c, prev, cmd.Switch)
}

func printOrCheckout(ctx context.Context, c *components, branch string, doSwitch bool) error {
	if !doSwitch {
		fmt.Println(branch)
		return nil
	}
	return c.repo.Checkout(ctx, branch)
}
