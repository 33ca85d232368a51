// Package frontier provides the pending-node containers that decide the
// order in which a search visits its tree.
//
// # Disciplines
//
// Three interchangeable containers implement [Frontier]:
//
//   - [Stack]: last-in-first-out. Depth-first visitation. Children pushed in
//     enumeration order come back out in reverse enumeration order.
//   - [Queue]: first-in-first-out. Breadth-first visitation.
//   - [Priority]: minimum-key-first, keyed by a caller-supplied scoring
//     function. Add and Pop are O(log n); [Priority.Top] peeks.
//
// Ties between equal keys in a [Priority] come out in heap order, which is
// not insertion order. Callers that need deterministic tie-breaks must fold
// a secondary key into the score.
//
// # Ownership
//
// A frontier owns the items it has not yet yielded. Once popped, an item is
// the caller's; the frontier keeps no reference to it.
//
// # Concurrency
//
// Containers are not safe for concurrent use. Each search owns its own
// frontier.
package frontier
