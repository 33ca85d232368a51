package statespace

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidStateID is returned by [Graph.AddState] when the ID is empty.
	ErrInvalidStateID = errors.New("state ID must not be empty")

	// ErrDuplicateStateID is returned by [Graph.AddState] when a state with
	// the same ID already exists.
	ErrDuplicateStateID = errors.New("duplicate state ID")

	// ErrUnknownSourceState is returned by [Graph.AddEdge] when the From
	// state does not exist.
	ErrUnknownSourceState = errors.New("unknown source state")

	// ErrUnknownTargetState is returned by [Graph.AddEdge] when the To state
	// does not exist.
	ErrUnknownTargetState = errors.New("unknown target state")

	// ErrDuplicateLabel is returned by [Graph.AddEdge] when the From state
	// already has an outgoing edge with the same label. Labels are the
	// actions of a state and must be unambiguous.
	ErrDuplicateLabel = errors.New("duplicate edge label")

	// ErrNegativeCost is returned by [Graph.AddEdge] for a negative cost.
	ErrNegativeCost = errors.New("edge cost must not be negative")
)

// Metadata stores arbitrary key-value pairs attached to a state.
type Metadata map[string]any

// State is a vertex of the graph.
type State struct {
	ID   string
	Meta Metadata // never nil after AddState
}

// Edge is a directed, labelled transition. An empty Label defaults to the
// target ID and a zero Cost to 1 when the edge is added.
type Edge struct {
	From  string
	To    string
	Label string
	Cost  float64
}

// Graph is a directed graph of states. The zero value is not usable; call
// [New].
type Graph struct {
	states   map[string]*State
	order    []string          // insertion order of state IDs
	outgoing map[string][]Edge // state ID -> edges in insertion order
	edges    int
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		states:   make(map[string]*State),
		outgoing: make(map[string][]Edge),
	}
}

// AddState adds s. Returns ErrInvalidStateID for an empty ID and
// ErrDuplicateStateID if the ID is taken.
func (g *Graph) AddState(s State) error {
	if s.ID == "" {
		return ErrInvalidStateID
	}
	if _, exists := g.states[s.ID]; exists {
		return ErrDuplicateStateID
	}
	if s.Meta == nil {
		s.Meta = Metadata{}
	}
	g.states[s.ID] = &s
	g.order = append(g.order, s.ID)
	return nil
}

// AddEdge adds e after filling in its defaults. Both endpoints must exist,
// and the label must be unused among From's outgoing edges. From == To is
// allowed.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.states[e.From]; !ok {
		return ErrUnknownSourceState
	}
	if _, ok := g.states[e.To]; !ok {
		return ErrUnknownTargetState
	}
	if e.Cost < 0 {
		return ErrNegativeCost
	}
	if e.Label == "" {
		e.Label = e.To
	}
	if e.Cost == 0 {
		e.Cost = 1
	}
	if _, dup := g.edge(e.From, e.Label); dup {
		return ErrDuplicateLabel
	}
	g.outgoing[e.From] = append(g.outgoing[e.From], e)
	g.edges++
	return nil
}

// RemoveEdge removes the edge leaving from with the given label, if any.
func (g *Graph) RemoveEdge(from, label string) {
	before := len(g.outgoing[from])
	g.outgoing[from] = slices.DeleteFunc(g.outgoing[from], func(e Edge) bool { return e.Label == label })
	g.edges -= before - len(g.outgoing[from])
}

func (g *Graph) edge(from, label string) (Edge, bool) {
	for _, e := range g.outgoing[from] {
		if e.Label == label {
			return e, true
		}
	}
	return Edge{}, false
}

// State returns the state with the given ID.
func (g *Graph) State(id string) (*State, bool) {
	s, ok := g.states[id]
	return s, ok
}

// States returns all states in insertion order.
func (g *Graph) States() []*State {
	out := make([]*State, len(g.order))
	for i, id := range g.order {
		out[i] = g.states[id]
	}
	return out
}

// Edges returns a copy of all edges, grouped by source in state insertion
// order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edges)
	for _, id := range g.order {
		out = append(out, g.outgoing[id]...)
	}
	return out
}

// Successors returns the outgoing edges of id in insertion order. The slice
// is a read-only view.
func (g *Graph) Successors(id string) []Edge { return g.outgoing[id] }

// StateCount returns the number of states.
func (g *Graph) StateCount() int { return len(g.states) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return g.edges }

// Sinks returns the states with no outgoing edges, in insertion order.
func (g *Graph) Sinks() []*State {
	var sinks []*State
	for _, id := range g.order {
		if len(g.outgoing[id]) == 0 {
			sinks = append(sinks, g.states[id])
		}
	}
	return sinks
}

// HasCycle reports whether any directed cycle, self-loops included, exists.
// It runs an iterative white/gray/black depth-first search in O(N+E).
func (g *Graph) HasCycle() bool {
	const (
		white = iota
		gray
		black
	)

	type frame struct {
		id   string
		next int // index of the next outgoing edge to follow
	}

	color := make(map[string]int, len(g.states))
	for _, root := range g.order {
		if color[root] != white {
			continue
		}
		color[root] = gray
		stack := []frame{{id: root}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			edges := g.outgoing[top.id]
			if top.next == len(edges) {
				color[top.id] = black
				stack = stack[:len(stack)-1]
				continue
			}
			to := edges[top.next].To
			top.next++
			switch color[to] {
			case white:
				color[to] = gray
				stack = append(stack, frame{id: to})
			case gray:
				return true
			}
		}
	}
	return false
}
