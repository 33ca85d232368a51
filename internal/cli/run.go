package cli

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/treesearch/pkg/errors"
	tsio "github.com/matzehuels/treesearch/pkg/io"
	"github.com/matzehuels/treesearch/pkg/search"
	"github.com/matzehuels/treesearch/pkg/statespace"
	"github.com/matzehuels/treesearch/pkg/tree"
)

// searchParams selects and bounds a search. It is shared by the search and
// demo commands and by the HTTP handler.
type searchParams struct {
	Algorithm   string        `json:"algorithm"`
	Order       string        `json:"order,omitempty"`
	Limit       int           `json:"limit"`
	MaxLimit    int           `json:"max_limit"`
	All         bool          `json:"all"`
	StopOnMatch bool          `json:"stop_on_match"`
	Timeout     time.Duration `json:"-"`
}

// defaultLimit bounds dls and bfs when no limit is given.
const defaultLimit = 10

func (c *CLI) defaultParams() searchParams {
	return searchParams{
		Algorithm: c.Config.Algorithm,
		Limit:     defaultLimit,
		MaxLimit:  c.Config.MaxLimit,
		Timeout:   c.Config.Timeout,
	}
}

func (p searchParams) validate() error {
	if err := validateAlgorithm(p.Algorithm); err != nil {
		return err
	}
	if err := errors.ValidateLimit(p.Limit); err != nil {
		return err
	}
	if err := errors.ValidateLimit(p.MaxLimit); err != nil {
		return err
	}
	if p.Order != "" {
		if p.Algorithm != algoDLS || p.All {
			return errors.New(errors.ErrCodeInvalidInput, "--order applies to single-goal dls only")
		}
		if _, err := search.ParseOrder(p.Order); err != nil {
			return err
		}
	}
	if p.All && p.Algorithm == algoBFS {
		return errors.New(errors.ErrCodeUnsupported, "bfs does not collect all goals; use ids or dls")
	}
	if p.StopOnMatch && !(p.All && p.Algorithm == algoIDS) {
		return errors.New(errors.ErrCodeInvalidInput, "--stop-on-match requires --all with ids")
	}
	if p.Timeout < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "timeout must not be negative, got %s", p.Timeout)
	}
	return nil
}

// searchRun is a finished search: the serializable result plus the state
// paths that reached goals, for highlighting.
type searchRun[S comparable] struct {
	Result tsio.Result
	Paths  [][]S
}

// runSearch dispatches p to the driver named by params. label turns states
// into the names shown in results.
func runSearch[S comparable, A any](ctx context.Context, p search.Problem[S, A], params searchParams, label func(S) string) (searchRun[S], error) {
	if err := params.validate(); err != nil {
		return searchRun[S]{}, err
	}
	if params.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, params.Timeout)
		defer cancel()
	}

	opts := search.Options{MaxLimit: params.MaxLimit, StopOnMatch: params.StopOnMatch}
	switch {
	case params.Algorithm == algoIDS && params.All:
		c, err := search.IterativeDeepeningAll(ctx, p, opts)
		return collectionRun(search.AlgoIterativeDeepeningAll, c, label), err
	case params.Algorithm == algoIDS:
		out, err := search.IterativeDeepening(ctx, p, opts)
		return outcomeRun(search.AlgoIterativeDeepening, out, label), err
	case params.Algorithm == algoDLS && params.All:
		c, err := search.DepthLimitedAll(ctx, p, params.Limit)
		return collectionRun(search.AlgoDepthLimitedAll, c, label), err
	case params.Algorithm == algoDLS && params.Order != "":
		order, _ := search.ParseOrder(params.Order)
		out, err := search.Bounded(ctx, p, search.NewFrontier[S, A](order), params.Limit)
		return outcomeRun(search.AlgoBounded+":"+order.String(), out, label), err
	case params.Algorithm == algoDLS:
		out, err := search.DepthLimited(ctx, p, params.Limit)
		return outcomeRun(search.AlgoDepthLimited, out, label), err
	default:
		out, err := search.BreadthFirst(ctx, p, params.Limit)
		return outcomeRun(search.AlgoBreadthFirst, out, label), err
	}
}

func outcomeRun[S comparable, A any](algorithm string, out search.Outcome[S, A], label func(S) string) searchRun[S] {
	r := searchRun[S]{Result: tsio.OutcomeResult(algorithm, out, label)}
	if out.Found() {
		r.Paths = [][]S{out.States()}
	}
	return r
}

func collectionRun[S comparable](algorithm string, c search.Collection[S], label func(S) string) searchRun[S] {
	return searchRun[S]{Result: tsio.CollectionResult(algorithm, c, label), Paths: c.Paths}
}

// =============================================================================
// Problems
// =============================================================================

// goalSpec names what a search looks for: an exact name or ID, or a suffix.
type goalSpec struct {
	Start  string `json:"start,omitempty"`
	Goal   string `json:"goal,omitempty"`
	Suffix string `json:"suffix,omitempty"`
}

func (g goalSpec) validate() error {
	switch {
	case g.Goal == "" && g.Suffix == "":
		return errors.New(errors.ErrCodeInvalidGoal, "a goal is required: set goal or suffix")
	case g.Goal != "" && g.Suffix != "":
		return errors.New(errors.ErrCodeInvalidGoal, "goal and suffix are mutually exclusive")
	}
	return nil
}

// treeProblem builds the problem for an N-ary tree.
func treeProblem(root *tree.Node, g goalSpec) (*tree.FilesProblem, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	if g.Start != "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "start applies to graphs only; tree searches begin at the root")
	}
	if g.Suffix != "" {
		return tree.NewSuffixProblem(root, g.Suffix), nil
	}
	return tree.NewFilesProblem(root, g.Goal), nil
}

// graphProblem builds the problem for a state graph.
func graphProblem(gr *statespace.Graph, g goalSpec) (*statespace.Problem, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	if g.Start == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "graph searches need a start state")
	}
	var (
		p   *statespace.Problem
		err error
	)
	if g.Suffix != "" {
		suffix := g.Suffix
		p, err = statespace.NewPredicateProblem(gr, g.Start, func(id string) bool { return strings.HasSuffix(id, suffix) })
	} else {
		p, err = statespace.NewProblem(gr, g.Start, g.Goal)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "start state %q", g.Start)
	}
	return p, nil
}

func nodeName(n *tree.Node) string       { return n.Name }
func stateID(id string) string           { return id }
func binaryID(n *tree.BinaryNode) string { return strconv.Itoa(n.ID) }
