// Package statespace provides an explicit directed graph of states and the
// search problem defined over it.
//
// # Overview
//
// Tree-shaped domains live in package tree. Many state spaces are not trees:
// several paths reach the same state, and some actions lead back to a state
// already on the path. [Graph] stores such a space explicitly: named states
// joined by labelled, weighted edges. Self-loops and cycles are allowed.
//
//	g := statespace.New()
//	_ = g.AddState(statespace.State{ID: "a"})
//	_ = g.AddState(statespace.State{ID: "b"})
//	_ = g.AddEdge(statespace.Edge{From: "a", To: "b", Label: "step"})
//	_ = g.AddEdge(statespace.Edge{From: "b", To: "a", Label: "back"})
//
// [Problem] exposes a graph to the search engine. Actions are the outgoing
// edge labels of a state in insertion order, results follow the edge and
// action costs are edge costs. Same-path cycle pruning in the engine keeps
// depth-bounded searches finite on cyclic graphs.
//
// # Concurrency
//
// Graph instances are not safe for concurrent modification. A graph that is
// no longer modified can back any number of concurrent searches.
package statespace
