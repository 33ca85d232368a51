package search

import (
	"fmt"

	"github.com/matzehuels/treesearch/pkg/errors"
	"github.com/matzehuels/treesearch/pkg/frontier"
)

// Options configures the iterative drivers. The zero value is valid:
// unbounded deepening that runs until a non-cutoff outcome.
type Options struct {
	// MaxLimit stops deepening after this depth limit. Zero means no bound.
	// When the bound is hit, IterativeDeepening reports [Cutoff] and
	// IterativeDeepeningAll returns its last collection with regions
	// remaining.
	MaxLimit int

	// StopOnMatch makes IterativeDeepeningAll return at the first depth
	// that finds any goal, instead of deepening until nothing is truncated.
	StopOnMatch bool
}

// Validate checks the options.
func (o Options) Validate() error {
	if o.MaxLimit < 0 {
		return errors.New(errors.ErrCodeInvalidLimit, "max limit must be >= 0, got %d", o.MaxLimit)
	}
	return nil
}

func (o Options) exceeded(limit int) bool {
	return o.MaxLimit > 0 && limit > o.MaxLimit
}

// Order selects a frontier discipline by name.
type Order int

const (
	// OrderDepthFirst uses a LIFO stack.
	OrderDepthFirst Order = iota
	// OrderBreadthFirst uses a FIFO queue.
	OrderBreadthFirst
	// OrderLowestCost uses a priority frontier keyed by path cost.
	OrderLowestCost
)

var orderNames = map[Order]string{
	OrderDepthFirst:   "depth-first",
	OrderBreadthFirst: "breadth-first",
	OrderLowestCost:   "lowest-cost",
}

// String returns the order's canonical name.
func (o Order) String() string {
	if s, ok := orderNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// ParseOrder accepts the canonical names plus the short forms lifo, dfs,
// fifo, bfs and cost.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "depth-first", "dfs", "lifo":
		return OrderDepthFirst, nil
	case "breadth-first", "bfs", "fifo":
		return OrderBreadthFirst, nil
	case "lowest-cost", "cost":
		return OrderLowestCost, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown frontier order %q", s)
}

// NewFrontier returns an empty frontier implementing o.
func NewFrontier[S comparable, A any](o Order) frontier.Frontier[Node[S, A]] {
	switch o {
	case OrderBreadthFirst:
		return frontier.NewQueue[Node[S, A]]()
	case OrderLowestCost:
		return frontier.NewPriority(func(n Node[S, A]) float64 { return n.PathCost() })
	default:
		return frontier.NewStack[Node[S, A]]()
	}
}
