package search

import "iter"

// Expand yields the children of n, one per action of p in enumeration order.
// Each child's path cost adds [ActionCost] to n's.
//
// The sequence is lazy: children are allocated as they are yielded, in n's
// arena. Ranging over it again produces equivalent children for a pure
// problem. Neither n nor p is modified.
func Expand[S comparable, A any](p Problem[S, A], n Node[S, A]) iter.Seq[Node[S, A]] {
	return func(yield func(Node[S, A]) bool) {
		s := n.State()
		for _, a := range p.Actions(s) {
			next := p.Result(s, a)
			if !yield(n.Child(a, next, ActionCost(p, s, a, next))) {
				return
			}
		}
	}
}
