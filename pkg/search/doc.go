// Package search implements uninformed state-space search over an abstract
// problem formulation.
//
// # Overview
//
// A caller describes a search domain by implementing [Problem]: an initial
// state, the actions available in a state, the state an action leads to and
// a goal test. The engine explores the implicit tree of reachable states and
// reports either a path to a goal or why it could not produce one.
//
// Two optional capabilities refine a problem:
//
//   - [ActionCoster]: per-step cost. Defaults to 1, so path cost equals depth.
//   - [Heuristic]: estimated remaining cost. Defaults to 0. No algorithm in
//     this package consumes it yet; the hook exists so domains can be reused
//     by informed strategies later.
//
// Domains that only need a fixed start and a goal value or predicate can
// embed [Goal]; one-off problems can be assembled from closures with [Funcs].
//
// # Algorithms
//
//   - [DepthLimited]: depth-first search bounded at a depth limit, with
//     same-path cycle pruning. Returns the first goal found.
//   - [DepthLimitedAll]: the same traversal, collecting every goal path.
//   - [IterativeDeepening]: [DepthLimited] at limits 1, 2, 3, ... until an
//     outcome other than [Cutoff].
//   - [IterativeDeepeningAll]: [DepthLimitedAll] at increasing limits until
//     no branch is truncated any more.
//   - [Bounded]: the traversal loop with a caller-chosen frontier;
//     [BreadthFirst] runs it with a FIFO queue.
//
// # Outcomes
//
// Searches return tagged values rather than sentinel nodes:
//
//   - [Success]: a goal was reached; [Outcome.Node] carries the path.
//   - [Cutoff]: the depth limit truncated at least one branch. Inconclusive.
//   - [Failure]: everything reachable within the limit was explored and no
//     goal was found.
//
// Errors are reserved for misuse (negative limit, nil problem) and for
// context cancellation, which is checked once per frontier pop.
//
// # Nodes and Memory
//
// Search nodes live in an [Arena]: children refer to their parent by index
// and parents never refer to children. Slots are reference counted; when a
// popped node produces no children its slot is recycled, cascading up to
// ancestors whose last child is gone. Live nodes therefore stay proportional
// to branching factor times depth, the same bound as the depth-first
// frontier. A node returned in an [Outcome] keeps its ancestor chain alive.
//
// # Termination
//
// Bounded searches always terminate on finitely branching problems.
// [IterativeDeepening] without [Options.MaxLimit] does not terminate on an
// infinite, goal-free state space: every depth reports [Cutoff]. Bounding
// such domains is the caller's job.
//
// # Concurrency
//
// A search is single-threaded and owns its frontier and arena. Different
// searches may run in parallel as long as the problem is pure: Actions,
// Result and IsGoal must not mutate caller-visible state.
package search
