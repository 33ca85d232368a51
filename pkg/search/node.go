package search

import "fmt"

// noParent marks the root record.
const noParent = -1

// record is one arena slot.
type record[S comparable, A any] struct {
	state  S
	action A
	cost   float64
	parent int
	depth  int
	refs   int // live children plus the holder (frontier or caller)
}

// Arena is an index-addressed pool of search nodes. Children reference their
// parent by index; parents never reference their children, so the ownership
// graph is a forest even when the state space has cycles.
//
// Each search owns one arena. The zero value is not usable; call [NewArena].
// Arena is not safe for concurrent use.
type Arena[S comparable, A any] struct {
	records []record[S, A]
	free    []int
	live    int
}

// NewArena returns an empty arena.
func NewArena[S comparable, A any]() *Arena[S, A] {
	return &Arena[S, A]{}
}

// Root allocates a parentless node holding s with zero path cost.
func (a *Arena[S, A]) Root(s S) Node[S, A] {
	return Node[S, A]{a: a, i: a.alloc(record[S, A]{state: s, parent: noParent, refs: 1})}
}

// Len returns the number of live nodes.
func (a *Arena[S, A]) Len() int { return a.live }

// Cap returns the number of slots ever allocated, live or recycled.
func (a *Arena[S, A]) Cap() int { return len(a.records) }

func (a *Arena[S, A]) alloc(r record[S, A]) int {
	a.live++
	if n := len(a.free); n > 0 {
		i := a.free[n-1]
		a.free = a.free[:n-1]
		a.records[i] = r
		return i
	}
	a.records = append(a.records, r)
	return len(a.records) - 1
}

// release drops one reference to n. A slot whose count reaches zero is
// recycled and the reference it held on its parent is dropped in turn.
func (a *Arena[S, A]) release(n Node[S, A]) {
	for i := n.i; i != noParent; {
		r := &a.records[i]
		r.refs--
		if r.refs > 0 {
			return
		}
		parent := r.parent
		*r = record[S, A]{}
		a.free = append(a.free, i)
		a.live--
		i = parent
	}
}

// Node is a handle to one path record: a state, the action that produced it,
// the accumulated path cost and a reference to the parent path.
//
// Nodes are immutable. The zero Node is the null node: it has no state and
// reconstructs to empty paths.
type Node[S comparable, A any] struct {
	a *Arena[S, A]
	i int
}

// NewRoot allocates a root node for s in a fresh arena.
func NewRoot[S comparable, A any](s S) Node[S, A] {
	return NewArena[S, A]().Root(s)
}

// IsZero reports whether n is the null node.
func (n Node[S, A]) IsZero() bool { return n.a == nil }

func (n Node[S, A]) rec() *record[S, A] { return &n.a.records[n.i] }

// State returns the state this path ends in.
func (n Node[S, A]) State() S { return n.rec().state }

// Action returns the action that produced n from its parent, or the zero
// action for a root.
func (n Node[S, A]) Action() A { return n.rec().action }

// PathCost returns the total cost from the root to n.
func (n Node[S, A]) PathCost() float64 { return n.rec().cost }

// Depth returns the number of ancestors of n.
func (n Node[S, A]) Depth() int { return n.rec().depth }

// Parent returns the node n was expanded from. ok is false for a root.
func (n Node[S, A]) Parent() (parent Node[S, A], ok bool) {
	p := n.rec().parent
	if p == noParent {
		return Node[S, A]{}, false
	}
	return Node[S, A]{a: n.a, i: p}, true
}

// Child allocates a node reached from n by action, ending in s. step is the
// cost of the action; negative steps count as zero so path cost never
// decreases along a chain.
func (n Node[S, A]) Child(action A, s S, step float64) Node[S, A] {
	parent := n.rec()
	parent.refs++
	r := record[S, A]{
		state:  s,
		action: action,
		cost:   parent.cost + max(step, 0),
		parent: n.i,
		depth:  parent.depth + 1,
		refs:   1,
	}
	return Node[S, A]{a: n.a, i: n.a.alloc(r)}
}

// String formats the node as <state>.
func (n Node[S, A]) String() string {
	if n.IsZero() {
		return "<nil>"
	}
	return fmt.Sprintf("<%v>", n.State())
}
