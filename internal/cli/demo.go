package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treesearch/pkg/errors"
	tsio "github.com/matzehuels/treesearch/pkg/io"
	"github.com/matzehuels/treesearch/pkg/tree"
)

// Built-in scenarios.
const (
	demoUsers = "users"
	demoFiles = "files"
	demoLogs  = "logs"
)

// demoCommand creates the demo command, which runs the built-in scenarios.
func (c *CLI) demoCommand() *cobra.Command {
	var (
		flags searchFlags
		goal  string
	)

	cmd := &cobra.Command{
		Use:   "demo <users|files|logs>",
		Short: "Run a built-in search scenario",
		Long: `Run one of the built-in scenarios:

  users  find a user id in a seven-node binary tree (default goal 7)
  files  find a file by name in a small directory tree (default goal file7)
  logs   collect every .log file in a ten-level directory chain`,
		Example: `  treesearch demo users --goal 3
  treesearch demo files -a dls -l 2
  treesearch demo logs --stop-on-match`,
		ValidArgs: []string{demoUsers, demoFiles, demoLogs},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.resolve(cmd, c.Config)
			if args[0] == demoLogs && !cmd.Flags().Changed("all") {
				flags.params.All = true
			}
			res, err := c.runDemo(cmd.Context(), args[0], goal, flags)
			if err != nil {
				return err
			}
			return c.report(res, flags)
		},
	}

	flags.bind(cmd, c)
	cmd.Flags().StringVarP(&goal, "goal", "G", "", "override the users id or files name to look for")

	return cmd
}

// runDemo builds the scenario's tree and problem and searches it.
func (c *CLI) runDemo(ctx context.Context, name, goal string, flags searchFlags) (tsio.Result, error) {
	if err := validateFormat(flags.format); err != nil {
		return tsio.Result{}, err
	}
	prog := newProgress(loggerFromContext(ctx))
	defer prog.done("Demo "+name, "algorithm", flags.params.Algorithm)

	switch name {
	case demoUsers:
		id := 7
		if goal != "" {
			n, err := strconv.Atoi(goal)
			if err != nil {
				return tsio.Result{}, errors.Wrap(errors.ErrCodeInvalidGoal, err, "users goal must be an integer id")
			}
			id = n
		}
		run, err := runSearch(ctx, tree.NewUsersProblem(tree.UsersTree(), id), flags.params, binaryID)
		return run.Result, err
	case demoFiles:
		if goal == "" {
			goal = "file7"
		}
		run, err := runSearch(ctx, tree.NewFilesProblem(tree.FilesTree(), goal), flags.params, nodeName)
		return run.Result, err
	case demoLogs:
		if goal != "" {
			return tsio.Result{}, errors.New(errors.ErrCodeInvalidInput, "the logs scenario always looks for .log files")
		}
		run, err := runSearch(ctx, tree.NewSuffixProblem(tree.LogsTree(), ".log"), flags.params, nodeName)
		return run.Result, err
	}
	return tsio.Result{}, errors.New(errors.ErrCodeInvalidInput, "unknown scenario %q", name)
}
