package statespace

import (
	"fmt"

	"github.com/matzehuels/treesearch/pkg/search"
)

// Problem searches a [Graph] from a start state. States are IDs and actions
// are edge labels.
type Problem struct {
	search.Goal[string]
	g *Graph
}

// NewProblem returns a problem on g from start to the state goal. Returns
// ErrUnknownSourceState when start is not in g. goal need not exist; such a
// problem simply has no solution.
func NewProblem(g *Graph, start, goal string) (*Problem, error) {
	if _, ok := g.State(start); !ok {
		return nil, fmt.Errorf("start %q: %w", start, ErrUnknownSourceState)
	}
	return &Problem{Goal: search.Goal[string]{Start: start, Target: goal}, g: g}, nil
}

// NewPredicateProblem is like [NewProblem] with an arbitrary goal test.
func NewPredicateProblem(g *Graph, start string, match func(id string) bool) (*Problem, error) {
	if _, ok := g.State(start); !ok {
		return nil, fmt.Errorf("start %q: %w", start, ErrUnknownSourceState)
	}
	return &Problem{Goal: search.Goal[string]{Start: start, Match: match}, g: g}, nil
}

// Actions returns the labels of s's outgoing edges.
func (p *Problem) Actions(s string) []string {
	edges := p.g.Successors(s)
	labels := make([]string, len(edges))
	for i, e := range edges {
		labels[i] = e.Label
	}
	return labels
}

// Result follows the edge labelled a out of s. An unknown label leaves the
// state unchanged.
func (p *Problem) Result(s, a string) string {
	if e, ok := p.g.edge(s, a); ok {
		return e.To
	}
	return s
}

// ActionCost returns the cost of the edge labelled a out of s.
func (p *Problem) ActionCost(s, a, _ string) float64 {
	if e, ok := p.g.edge(s, a); ok {
		return e.Cost
	}
	return 1
}
