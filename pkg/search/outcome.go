package search

// Kind tags the result of a search.
type Kind int

const (
	// Failure means every node reachable within the bound was explored and
	// none satisfied the goal.
	Failure Kind = iota
	// Cutoff means the depth limit truncated at least one branch, so the
	// search was not exhaustive. A deeper bound may still find a goal.
	Cutoff
	// Success means a goal was reached.
	Success
)

// String returns "failure", "cutoff" or "success".
func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Cutoff:
		return "cutoff"
	default:
		return "failure"
	}
}

// Stats counts the work done by a search. Iterative drivers sum the
// counters of every pass; Limit is the bound of the last pass.
type Stats struct {
	Limit       int `json:"limit"`
	Iterations  int `json:"iterations"`
	Generated   int `json:"generated"`    // nodes created, root included
	Expanded    int `json:"expanded"`     // nodes whose children were generated
	Pruned      int `json:"pruned"`       // nodes dropped as cycles
	Cutoffs     int `json:"cutoffs"`      // nodes not expanded because of the limit
	MaxFrontier int `json:"max_frontier"` // peak frontier size within a pass
}

func (s *Stats) add(pass Stats) {
	s.Limit = pass.Limit
	s.Iterations += pass.Iterations
	s.Generated += pass.Generated
	s.Expanded += pass.Expanded
	s.Pruned += pass.Pruned
	s.Cutoffs += pass.Cutoffs
	s.MaxFrontier = max(s.MaxFrontier, pass.MaxFrontier)
}

// Outcome is the result of a single-goal search. Node is set only when Kind
// is [Success].
type Outcome[S comparable, A any] struct {
	Kind  Kind
	Node  Node[S, A]
	Stats Stats
}

// Found reports whether the search reached a goal.
func (o Outcome[S, A]) Found() bool { return o.Kind == Success }

// Actions returns the action path to the goal, empty unless Found.
func (o Outcome[S, A]) Actions() []A { return PathActions(o.Node) }

// States returns the state path to the goal, empty unless Found.
func (o Outcome[S, A]) States() []S { return PathStates(o.Node) }

// Depth returns the goal depth, or -1 unless Found.
func (o Outcome[S, A]) Depth() int {
	if o.Node.IsZero() {
		return -1
	}
	return o.Node.Depth()
}

// Collection is the result of a collect-all search.
//
// Paths and BoundedRegionsRemain are independent: a pass can find goals and
// still truncate other branches at the limit. Callers decide whether a
// partial set is good enough; [Collection.Kind] offers one collapsed view.
type Collection[S comparable] struct {
	// Paths holds one state path per goal, root first, in visit order.
	Paths [][]S

	// BoundedRegionsRemain is true when some branch was cut by the limit.
	BoundedRegionsRemain bool

	Stats Stats
}

// Kind collapses the collection to a single tag: [Success] when any path
// was found, otherwise [Cutoff] if regions remain unexplored, otherwise
// [Failure].
func (c Collection[S]) Kind() Kind {
	switch {
	case len(c.Paths) > 0:
		return Success
	case c.BoundedRegionsRemain:
		return Cutoff
	default:
		return Failure
	}
}

// Complete reports whether the collection covers the whole reachable space.
func (c Collection[S]) Complete() bool { return !c.BoundedRegionsRemain }
