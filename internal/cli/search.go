package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treesearch/pkg/cache"
	"github.com/matzehuels/treesearch/pkg/errors"
	tsio "github.com/matzehuels/treesearch/pkg/io"
	"github.com/matzehuels/treesearch/pkg/tree"
)

// searchFlags holds the flags shared by search and demo.
type searchFlags struct {
	params      searchParams
	goal        goalSpec
	graph       bool
	format      string
	interactive bool
	noCache     bool
}

// bind registers the search flags on cmd, with defaults from the config.
func (f *searchFlags) bind(cmd *cobra.Command, c *CLI) {
	f.params = c.defaultParams()
	fl := cmd.Flags()
	fl.StringVarP(&f.params.Algorithm, "algorithm", "a", f.params.Algorithm, "search algorithm: ids, dls or bfs")
	fl.StringVar(&f.params.Order, "order", "", "frontier order for dls: depth-first, breadth-first or lowest-cost")
	fl.IntVarP(&f.params.Limit, "limit", "l", f.params.Limit, "depth limit for dls and bfs")
	fl.IntVar(&f.params.MaxLimit, "max-limit", f.params.MaxLimit, "deepest limit ids may try (0 = unbounded)")
	fl.BoolVar(&f.params.All, "all", false, "collect every goal path instead of stopping at the first")
	fl.BoolVar(&f.params.StopOnMatch, "stop-on-match", false, "with --all and ids, stop at the first depth that finds a goal")
	fl.DurationVar(&f.params.Timeout, "timeout", f.params.Timeout, "abort the search after this duration (0 = none)")
	fl.StringVarP(&f.format, "format", "f", c.Config.Format, "output format: text or json")
	fl.BoolVarP(&f.interactive, "interactive", "i", false, "browse collected paths interactively")
	fl.BoolVar(&f.noCache, "no-cache", false, "ignore and do not update the result cache")
}

// resolve replaces defaults of flags the user did not set with values from
// the loaded config. Flags are bound before the config file is read.
func (f *searchFlags) resolve(cmd *cobra.Command, cfg Config) {
	fl := cmd.Flags()
	if !fl.Changed("algorithm") {
		f.params.Algorithm = cfg.Algorithm
	}
	if !fl.Changed("max-limit") {
		f.params.MaxLimit = cfg.MaxLimit
	}
	if !fl.Changed("timeout") {
		f.params.Timeout = cfg.Timeout
	}
	if !fl.Changed("format") {
		f.format = cfg.Format
	}
}

// searchCommand creates the search command for searching files.
func (c *CLI) searchCommand() *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "search <file>",
		Short: "Search a tree or state graph file for a goal",
		Long: `Search a tree or state graph loaded from a JSON, TOML or YAML file.

Trees are searched from the root for a node with the given name (--goal) or a
name ending with a suffix (--suffix). Graphs (--graph) are searched from the
--start state for a state ID.

Iterative deepening (ids, the default) finds a shallowest goal. Depth-limited
search (dls) explores one bound only and may find a deeper goal first; --order
swaps its stack for a queue or a lowest-cost frontier. With --all every goal
path is collected.`,
		Example: `  # Find a file by name
  treesearch search dir.json --goal file7

  # Every .log file, even below other goals
  treesearch search dir.yaml --suffix .log --all

  # A state graph, bounded to depth 5
  treesearch search maze.toml --graph --start entry --goal exit -a dls -l 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.resolve(cmd, c.Config)
			return c.runSearchFile(cmd.Context(), args[0], flags)
		},
	}

	flags.bind(cmd, c)
	cmd.Flags().BoolVarP(&flags.graph, "graph", "g", false, "treat the file as a state graph")
	cmd.Flags().StringVarP(&flags.goal.Goal, "goal", "G", "", "goal node name or state ID")
	cmd.Flags().StringVar(&flags.goal.Suffix, "suffix", "", "match any node whose name ends with this suffix")
	cmd.Flags().StringVar(&flags.goal.Start, "start", "", "start state ID (graphs only)")

	return cmd
}

// runSearchFile loads path and searches it.
func (c *CLI) runSearchFile(ctx context.Context, path string, flags searchFlags) error {
	if err := validateFormat(flags.format); err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(ctx))
	var (
		res tsio.Result
		err error
	)
	if flags.graph {
		res, err = c.searchGraphFile(ctx, path, flags)
	} else {
		res, err = c.searchTreeFile(ctx, path, flags)
	}
	if err != nil {
		return err
	}
	prog.done("Searched "+filepath.Base(path), "run_id", res.RunID, "outcome", res.Kind)

	return c.report(res, flags)
}

func (c *CLI) searchTreeFile(ctx context.Context, path string, flags searchFlags) (tsio.Result, error) {
	root, err := tsio.ImportTree(path)
	if err != nil {
		return tsio.Result{}, err
	}
	loggerFromContext(ctx).Debug("tree loaded", "nodes", root.Len(), "height", root.Height())

	p, err := treeProblem(root, flags.goal)
	if err != nil {
		return tsio.Result{}, err
	}
	hash, err := canonicalHash(func(w io.Writer) error { return tsio.WriteTree(root, w, tsio.FormatJSON) })
	if err != nil {
		return tsio.Result{}, err
	}

	ch := c.resultCache(ctx, flags.noCache)
	defer ch.Close()
	key := cache.NewDefaultKeyer().SearchKey(hash, keyOpts("tree", flags.goal, flags.params))
	return cached(ctx, ch, key, c.Config.Cache, func() (tsio.Result, error) {
		var run searchRun[*tree.Node]
		err := c.withProgress(ctx, flags, func() (err error) {
			run, err = runSearch(ctx, p, flags.params, nodeName)
			return err
		})
		return run.Result, err
	})
}

func (c *CLI) searchGraphFile(ctx context.Context, path string, flags searchFlags) (tsio.Result, error) {
	g, err := tsio.ImportGraph(path)
	if err != nil {
		return tsio.Result{}, err
	}
	loggerFromContext(ctx).Debug("graph loaded", "states", g.StateCount(), "edges", g.EdgeCount(), "cyclic", g.HasCycle())

	p, err := graphProblem(g, flags.goal)
	if err != nil {
		return tsio.Result{}, err
	}
	hash, err := canonicalHash(func(w io.Writer) error { return tsio.WriteGraph(g, w, tsio.FormatJSON) })
	if err != nil {
		return tsio.Result{}, err
	}

	ch := c.resultCache(ctx, flags.noCache)
	defer ch.Close()
	key := cache.NewDefaultKeyer().SearchKey(hash, keyOpts("graph", flags.goal, flags.params))
	return cached(ctx, ch, key, c.Config.Cache, func() (tsio.Result, error) {
		var run searchRun[string]
		err := c.withProgress(ctx, flags, func() (err error) {
			run, err = runSearch(ctx, p, flags.params, stateID)
			return err
		})
		return run.Result, err
	})
}

// withProgress runs fn behind a spinner when results go to a terminal.
func (c *CLI) withProgress(ctx context.Context, flags searchFlags, fn func() error) error {
	if flags.format != formatText || !isTerminal(c.stderr) {
		return fn()
	}
	return withSpinner(ctx, c.stderr, fn)
}

// report writes res in the requested format.
func (c *CLI) report(res tsio.Result, flags searchFlags) error {
	if flags.format == formatJSON {
		return tsio.WriteResult(res, c.stdout)
	}
	if flags.interactive {
		if len(res.Paths) == 0 {
			printResult(c.stdout, res)
			return nil
		}
		if !isTerminal(c.stdout) {
			return errors.New(errors.ErrCodeUnsupported, "--interactive needs a terminal")
		}
		return runPathPicker(c.stdout, res.Paths)
	}
	printResult(c.stdout, res)
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}
