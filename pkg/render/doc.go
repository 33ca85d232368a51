// Package render draws trees and state graphs as node-link diagrams, with
// search paths highlighted.
//
// # Overview
//
// [ToDOT] and [GraphToDOT] produce Graphviz DOT source. The DOT can be saved
// and processed with external Graphviz tools, or rendered in-process with
// [RenderSVG] and [RenderPNG].
//
//	dot := render.ToDOT(root, render.Options{Paths: [][]*tree.Node{path}})
//	svg, err := render.RenderSVG(ctx, dot)
//
// # Highlighting
//
// Every node on a highlighted path is filled, and the edges between
// consecutive path nodes are drawn bold. The last node of each path, the
// goal, gets a double outline. Several paths can be highlighted at once,
// which is how collect-all results are drawn.
//
// # Node Identity
//
// Tree nodes are identified by pointer, not by name: two files named
// "README" in different directories are different nodes in the diagram.
// Graph states are identified by their ID.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
// No Graphviz installation is needed.
package render
