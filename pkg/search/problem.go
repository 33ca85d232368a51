package search

// Problem is the capability contract a domain implements to be searched.
//
// S is the state type and must support equality: cycle detection compares
// states along a path. A is the action type.
//
// Implementations must be pure. The engine expands the same state many
// times, both within one search and across the depth bounds of an iterative
// driver, and relies on Actions and Result returning the same answers.
type Problem[S comparable, A any] interface {
	// Initial returns the state the search starts from.
	Initial() S

	// Actions lists the actions applicable in s, in enumeration order.
	Actions(s S) []A

	// Result returns the state reached by applying a in s.
	Result(s S, a A) S

	// IsGoal reports whether s satisfies the goal.
	IsGoal(s S) bool
}

// ActionCoster is implemented by problems whose steps do not all cost 1.
type ActionCoster[S comparable, A any] interface {
	ActionCost(s S, a A, next S) float64
}

// Heuristic is implemented by problems that can estimate the remaining cost
// from a node to the nearest goal.
type Heuristic[S comparable, A any] interface {
	Heuristic(n Node[S, A]) float64
}

// ActionCost returns the cost of applying a in s to reach next, or 1 when p
// does not implement [ActionCoster].
func ActionCost[S comparable, A any](p Problem[S, A], s S, a A, next S) float64 {
	if c, ok := p.(ActionCoster[S, A]); ok {
		return c.ActionCost(s, a, next)
	}
	return 1
}

// HeuristicCost returns p's estimate for n, or 0 when p does not implement
// [Heuristic].
func HeuristicCost[S comparable, A any](p Problem[S, A], n Node[S, A]) float64 {
	if h, ok := p.(Heuristic[S, A]); ok {
		return h.Heuristic(n)
	}
	return 0
}

// Goal holds the start state and goal descriptor shared by most domains.
// Embed it and implement Actions and Result to get a complete [Problem]:
//
//	type Maze struct {
//	    search.Goal[Cell]
//	    grid [][]bool
//	}
//
// IsGoal compares against Target unless Match is set, in which case Match
// decides.
type Goal[S comparable] struct {
	Start  S
	Target S
	Match  func(S) bool
}

// Initial returns Start.
func (g Goal[S]) Initial() S { return g.Start }

// IsGoal reports whether s satisfies Match, or equals Target when Match is nil.
func (g Goal[S]) IsGoal(s S) bool {
	if g.Match != nil {
		return g.Match(s)
	}
	return s == g.Target
}

// Funcs adapts plain functions to [Problem] and [ActionCoster].
// ActionsFunc, ResultFunc and GoalFunc are required; CostFunc defaults to 1.
type Funcs[S comparable, A any] struct {
	Start       S
	ActionsFunc func(S) []A
	ResultFunc  func(S, A) S
	GoalFunc    func(S) bool
	CostFunc    func(S, A, S) float64
}

func (f Funcs[S, A]) Initial() S        { return f.Start }
func (f Funcs[S, A]) Actions(s S) []A   { return f.ActionsFunc(s) }
func (f Funcs[S, A]) Result(s S, a A) S { return f.ResultFunc(s, a) }
func (f Funcs[S, A]) IsGoal(s S) bool   { return f.GoalFunc(s) }

func (f Funcs[S, A]) ActionCost(s S, a A, next S) float64 {
	if f.CostFunc == nil {
		return 1
	}
	return f.CostFunc(s, a, next)
}
