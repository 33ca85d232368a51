package search

import (
	"context"
	"time"

	"github.com/matzehuels/treesearch/pkg/errors"
	"github.com/matzehuels/treesearch/pkg/frontier"
	"github.com/matzehuels/treesearch/pkg/observability"
)

// Algorithm names reported to observability hooks.
const (
	AlgoDepthLimited          = "dls"
	AlgoDepthLimitedAll       = "dls-all"
	AlgoIterativeDeepening    = "ids"
	AlgoIterativeDeepeningAll = "ids-all"
	AlgoBreadthFirst          = "bfs"
	AlgoBounded               = "bounded"
)

// pass is the raw result of one bounded traversal.
type pass[S comparable, A any] struct {
	goal   Node[S, A] // set when onGoal asked to stop
	cutoff bool
	stats  Stats
}

// traverse pops nodes from f until it is empty or onGoal returns true.
//
// Per popped node, in order: a goal is handed to onGoal and never expanded;
// a node at depth >= limit records a cutoff; a node whose state repeats on
// its own path is dropped; anything else is expanded and its children added
// to f in enumeration order.
func traverse[S comparable, A any](ctx context.Context, p Problem[S, A], f frontier.Frontier[Node[S, A]], limit int, onGoal func(Node[S, A]) bool) (pass[S, A], error) {
	arena := NewArena[S, A]()
	f.Add(arena.Root(p.Initial()))

	res := pass[S, A]{stats: Stats{Limit: limit, Iterations: 1, Generated: 1, MaxFrontier: 1}}
	for f.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return res, errors.FromContext(err, "search interrupted at depth limit %d", limit)
		}

		n := f.Pop()
		switch {
		case p.IsGoal(n.State()):
			if onGoal(n) {
				res.goal = n
				return res, nil
			}
			n.a.release(n)
		case n.Depth() >= limit:
			res.cutoff = true
			res.stats.Cutoffs++
			n.a.release(n)
		case IsCycle(n):
			res.stats.Pruned++
			n.a.release(n)
		default:
			res.stats.Expanded++
			for child := range Expand(p, n) {
				f.Add(child)
				res.stats.Generated++
			}
			n.a.release(n)
			res.stats.MaxFrontier = max(res.stats.MaxFrontier, f.Len())
		}
	}
	return res, nil
}

func checkProblem[S comparable, A any](p Problem[S, A], limit int) error {
	if p == nil {
		return errors.New(errors.ErrCodeInvalidProblem, "problem must not be nil")
	}
	return errors.ValidateLimit(limit)
}

// firstGoal runs one pass that stops at the first goal.
func firstGoal[S comparable, A any](ctx context.Context, algo string, p Problem[S, A], f frontier.Frontier[Node[S, A]], limit int) (Outcome[S, A], error) {
	start := time.Now()
	res, err := traverse(ctx, p, f, limit, func(Node[S, A]) bool { return true })
	out := Outcome[S, A]{Kind: Failure, Node: res.goal, Stats: res.stats}
	switch {
	case !res.goal.IsZero():
		out.Kind = Success
	case res.cutoff:
		out.Kind = Cutoff
	}
	observability.Search().OnIteration(ctx, algo, limit, out.Kind.String(), res.stats.Expanded, time.Since(start))
	return out, err
}

// allGoals runs one pass that records every goal path.
func allGoals[S comparable, A any](ctx context.Context, algo string, p Problem[S, A], limit int) (Collection[S], error) {
	start := time.Now()
	var paths [][]S
	res, err := traverse(ctx, p, NewFrontier[S, A](OrderDepthFirst), limit, func(n Node[S, A]) bool {
		paths = append(paths, PathStates(n))
		return false
	})
	c := Collection[S]{Paths: paths, BoundedRegionsRemain: res.cutoff, Stats: res.stats}
	observability.Search().OnIteration(ctx, algo, limit, c.Kind().String(), res.stats.Expanded, time.Since(start))
	return c, err
}

// Bounded searches p with the caller's frontier, which decides visit order,
// and stops at the first goal. Nodes deeper than limit are not expanded.
// f must be empty, otherwise Bounded fails with INVALID_INPUT; the search
// owns it until Bounded returns and may leave nodes in it after a success.
//
// The outcome is [Success] with the goal node, [Cutoff] if any branch was
// truncated at the limit, or [Failure] if the bounded space was exhausted.
func Bounded[S comparable, A any](ctx context.Context, p Problem[S, A], f frontier.Frontier[Node[S, A]], limit int) (Outcome[S, A], error) {
	return bounded(ctx, AlgoBounded, p, f, limit)
}

func bounded[S comparable, A any](ctx context.Context, algo string, p Problem[S, A], f frontier.Frontier[Node[S, A]], limit int) (Outcome[S, A], error) {
	if err := checkProblem(p, limit); err != nil {
		return Outcome[S, A]{}, err
	}
	if f == nil {
		return Outcome[S, A]{}, errors.New(errors.ErrCodeInvalidInput, "frontier must not be nil")
	}
	if f.Len() != 0 {
		return Outcome[S, A]{}, errors.New(errors.ErrCodeInvalidInput, "frontier must be empty, holds %d items", f.Len())
	}

	start := time.Now()
	observability.Search().OnSearchStart(ctx, algo, limit)
	out, err := firstGoal(ctx, algo, p, f, limit)
	observability.Search().OnSearchComplete(ctx, algo, out.Kind.String(), out.Depth(), time.Since(start), err)
	return out, err
}

// DepthLimited runs depth-first search from p's initial state, expanding no
// node at depth limit or deeper and pruning states that repeat on their own
// path. Children are pushed in enumeration order, so siblings are visited in
// reverse enumeration order.
//
// It returns the first goal found, which is not necessarily the shallowest.
func DepthLimited[S comparable, A any](ctx context.Context, p Problem[S, A], limit int) (Outcome[S, A], error) {
	return bounded(ctx, AlgoDepthLimited, p, NewFrontier[S, A](OrderDepthFirst), limit)
}

// BreadthFirst runs the bounded traversal with a FIFO queue, so the first
// goal found is a shallowest one.
func BreadthFirst[S comparable, A any](ctx context.Context, p Problem[S, A], limit int) (Outcome[S, A], error) {
	return bounded(ctx, AlgoBreadthFirst, p, NewFrontier[S, A](OrderBreadthFirst), limit)
}

// DepthLimitedAll runs the [DepthLimited] traversal without stopping at
// goals and returns the state path of every goal visited. Goal nodes are
// not expanded, so a goal below another goal is not reported.
//
// BoundedRegionsRemain tells whether the limit truncated any branch, even
// when paths were found.
func DepthLimitedAll[S comparable, A any](ctx context.Context, p Problem[S, A], limit int) (Collection[S], error) {
	if err := checkProblem(p, limit); err != nil {
		return Collection[S]{}, err
	}

	start := time.Now()
	observability.Search().OnSearchStart(ctx, AlgoDepthLimitedAll, limit)
	c, err := allGoals(ctx, AlgoDepthLimitedAll, p, limit)
	observability.Search().OnSearchComplete(ctx, AlgoDepthLimitedAll, c.Kind().String(), -1, time.Since(start), err)
	return c, err
}
