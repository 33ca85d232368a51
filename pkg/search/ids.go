package search

import (
	"context"
	"time"

	"github.com/matzehuels/treesearch/pkg/observability"
)

// IterativeDeepening runs [DepthLimited] with limits 1, 2, 3, ... and returns
// the first outcome that is not [Cutoff]: a goal at the smallest depth that
// has one, or [Failure] once a pass explores the whole space without
// truncation.
//
// Every pass starts again from the root with a fresh frontier. Revisiting
// shallow nodes costs time but keeps memory at O(branching × depth).
//
// Without opts.MaxLimit the loop does not end on an infinite state space
// that contains no goal. With it, the outcome after the last allowed limit
// is [Cutoff]. Stats are summed over all passes.
func IterativeDeepening[S comparable, A any](ctx context.Context, p Problem[S, A], opts Options) (Outcome[S, A], error) {
	if err := checkProblem(p, 0); err != nil {
		return Outcome[S, A]{}, err
	}
	if err := opts.Validate(); err != nil {
		return Outcome[S, A]{}, err
	}

	start := time.Now()
	hooks := observability.Search()
	hooks.OnSearchStart(ctx, AlgoIterativeDeepening, opts.MaxLimit)

	var (
		out   Outcome[S, A]
		stats Stats
		err   error
	)
	for limit := 1; ; limit++ {
		if opts.exceeded(limit) {
			out = Outcome[S, A]{Kind: Cutoff}
			break
		}
		out, err = firstGoal(ctx, AlgoIterativeDeepening, p, NewFrontier[S, A](OrderDepthFirst), limit)
		stats.add(out.Stats)
		if err != nil || out.Kind != Cutoff {
			break
		}
	}
	out.Stats = stats

	hooks.OnSearchComplete(ctx, AlgoIterativeDeepening, out.Kind.String(), out.Depth(), time.Since(start), err)
	return out, err
}

// IterativeDeepeningAll runs [DepthLimitedAll] with limits 1, 2, 3, ...
//
// By default it deepens until a pass truncates nothing, so the returned
// paths cover every goal in the (finite) space that is not hidden below
// another goal. With opts.StopOnMatch it returns at the first limit that
// finds any goal. With opts.MaxLimit it returns the last pass once the bound
// is reached, with BoundedRegionsRemain still set.
func IterativeDeepeningAll[S comparable, A any](ctx context.Context, p Problem[S, A], opts Options) (Collection[S], error) {
	if err := checkProblem(p, 0); err != nil {
		return Collection[S]{}, err
	}
	if err := opts.Validate(); err != nil {
		return Collection[S]{}, err
	}

	start := time.Now()
	hooks := observability.Search()
	hooks.OnSearchStart(ctx, AlgoIterativeDeepeningAll, opts.MaxLimit)

	var (
		c     Collection[S]
		stats Stats
		err   error
	)
	for limit := 1; !opts.exceeded(limit); limit++ {
		c, err = allGoals(ctx, AlgoIterativeDeepeningAll, p, limit)
		stats.add(c.Stats)
		if err != nil || c.Complete() || (opts.StopOnMatch && len(c.Paths) > 0) {
			break
		}
	}
	c.Stats = stats

	hooks.OnSearchComplete(ctx, AlgoIterativeDeepeningAll, c.Kind().String(), -1, time.Since(start), err)
	return c, err
}
