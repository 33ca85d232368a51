package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treesearch/pkg/errors"
	tsio "github.com/matzehuels/treesearch/pkg/io"
	"github.com/matzehuels/treesearch/pkg/render"
)

// Diagram formats accepted by render --format.
const (
	diagramDOT = "dot"
	diagramSVG = "svg"
	diagramPNG = "png"
)

// validDiagramFormats is the set of supported diagram formats.
var validDiagramFormats = map[string]bool{diagramDOT: true, diagramSVG: true, diagramPNG: true}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file path; "-" writes to stdout
	format   string   // diagram format: "dot", "svg" or "png"
	detailed bool     // add depths to tree node labels
	graph    bool     // input is a state graph
	goal     goalSpec // optional search whose goal paths are highlighted
	all      bool     // highlight every goal path instead of the first
}

// renderCommand creates the render command for drawing trees and graphs.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: diagramSVG}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Draw a tree or state graph, highlighting goal paths",
		Long: `Draw a tree or state graph as Graphviz DOT, SVG or PNG.

With --goal or --suffix the space is searched first (iterative deepening)
and the path to the goal is highlighted; --all highlights every goal path.`,
		Example: `  treesearch render dir.json --goal file7
  treesearch render dir.yaml --suffix .log --all -f png -o logs.png
  treesearch render maze.toml --graph --start entry --goal exit -f dot -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateDiagramFormat(opts.format); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with the format's extension, - for stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), png, dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node depths (trees)")
	cmd.Flags().BoolVarP(&opts.graph, "graph", "g", false, "treat the file as a state graph")
	cmd.Flags().StringVarP(&opts.goal.Goal, "goal", "G", "", "highlight the path to this node name or state ID")
	cmd.Flags().StringVar(&opts.goal.Suffix, "suffix", "", "highlight the path to a node whose name ends with this suffix")
	cmd.Flags().StringVar(&opts.goal.Start, "start", "", "start state ID (graphs only)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "highlight every goal path")

	return cmd
}

// validateDiagramFormat checks that the format is dot, svg or png.
func validateDiagramFormat(f string) error {
	if !validDiagramFormats[f] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'svg', 'png', or 'dot')", f)
	}
	return nil
}

// outputPath derives the output file from the input file when output is
// empty.
func outputPath(output, input, format string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
}

// runRender loads input, searches it when a goal is given, and writes the
// diagram.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	var (
		dot string
		err error
	)
	if opts.graph {
		dot, err = c.graphDOT(ctx, input, opts)
	} else {
		dot, err = c.treeDOT(ctx, input, opts)
	}
	if err != nil {
		return err
	}

	data, err := renderDiagram(ctx, dot, opts.format)
	if err != nil {
		return err
	}
	logger.Debugf("Generated %s: %d bytes", opts.format, len(data))

	path := outputPath(opts.output, input, opts.format)
	out, err := c.openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return err
	}
	if path != "-" {
		printSuccess(c.stdout, "Rendered %s", filepath.Base(input))
		printFile(c.stdout, path)
	}
	return nil
}

// highlightParams returns the search used to find paths to highlight.
func (c *CLI) highlightParams(all bool) searchParams {
	p := c.defaultParams()
	p.Algorithm = algoIDS
	p.All = all
	return p
}

func (c *CLI) treeDOT(ctx context.Context, input string, opts renderOpts) (string, error) {
	root, err := tsio.ImportTree(input)
	if err != nil {
		return "", err
	}
	ro := render.Options{Detailed: opts.detailed}
	if opts.goal.Goal != "" || opts.goal.Suffix != "" {
		p, err := treeProblem(root, opts.goal)
		if err != nil {
			return "", err
		}
		run, err := runSearch(ctx, p, c.highlightParams(opts.all), nodeName)
		if err != nil {
			return "", err
		}
		loggerFromContext(ctx).Infof("Highlighting %d path(s) (%s)", len(run.Paths), run.Result.Kind)
		ro.Paths = run.Paths
	}
	return render.ToDOT(root, ro), nil
}

func (c *CLI) graphDOT(ctx context.Context, input string, opts renderOpts) (string, error) {
	g, err := tsio.ImportGraph(input)
	if err != nil {
		return "", err
	}
	var paths [][]string
	if opts.goal.Goal != "" || opts.goal.Suffix != "" {
		p, err := graphProblem(g, opts.goal)
		if err != nil {
			return "", err
		}
		run, err := runSearch(ctx, p, c.highlightParams(opts.all), stateID)
		if err != nil {
			return "", err
		}
		loggerFromContext(ctx).Infof("Highlighting %d path(s) (%s)", len(run.Paths), run.Result.Kind)
		paths = run.Paths
	}
	return render.GraphToDOT(g, paths...), nil
}

// renderDiagram converts DOT source to the requested format.
func renderDiagram(ctx context.Context, dot, format string) ([]byte, error) {
	switch format {
	case diagramDOT:
		return []byte(dot), nil
	case diagramSVG:
		return render.RenderSVG(ctx, dot)
	case diagramPNG:
		return render.RenderPNG(ctx, dot)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is "-", it returns the CLI's stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func (c *CLI) openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{c.stdout}, nil
	}
	return os.Create(path)
}
