package search

// IsCycle reports whether n's state already occurs among its ancestors.
//
// Only the current path is checked. Two branches reaching the same state are
// not a cycle; pruning those would need memory for every state reached
// rather than O(depth) per path. Cost is O(depth).
func IsCycle[S comparable, A any](n Node[S, A]) bool {
	if n.IsZero() {
		return false
	}
	s := n.State()
	for p, ok := n.Parent(); ok; p, ok = p.Parent() {
		if p.State() == s {
			return true
		}
	}
	return false
}
