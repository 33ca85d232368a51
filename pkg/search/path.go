package search

import "slices"

// PathActions returns the actions leading from the root to n. It is empty
// for a root and for the null node.
func PathActions[S comparable, A any](n Node[S, A]) []A {
	if n.IsZero() {
		return []A{}
	}
	actions := make([]A, 0, n.Depth())
	for cur := n; cur.Depth() > 0; cur, _ = cur.Parent() {
		actions = append(actions, cur.Action())
	}
	slices.Reverse(actions)
	return actions
}

// PathStates returns the states from the root to n, both included, so its
// length is n.Depth()+1. It is empty for the null node.
func PathStates[S comparable, A any](n Node[S, A]) []S {
	if n.IsZero() {
		return []S{}
	}
	states := make([]S, 0, n.Depth()+1)
	for cur, ok := n, true; ok; cur, ok = cur.Parent() {
		states = append(states, cur.State())
	}
	slices.Reverse(states)
	return states
}
