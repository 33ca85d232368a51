package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/treesearch/pkg/statespace"
	"github.com/matzehuels/treesearch/pkg/tree"
)

// Options configures diagram generation.
type Options struct {
	// Paths are root-to-node state paths to highlight.
	Paths [][]*tree.Node

	// Detailed adds the depth to tree node labels.
	Detailed bool
}

const header = `digraph G {
  rankdir=TB;
  bgcolor="transparent";
  node [shape=box, style="rounded,filled", fillcolor=white, fontsize=14, margin="0.2,0.1"];
  ranksep=0.5;
  nodesep=0.3;

`

var (
	pathNodeAttrs = []string{`fillcolor="#cde7ff"`, `color="#1f6feb"`}
	goalNodeAttrs = []string{`peripheries=2`}
	pathEdgeAttrs = []string{`color="#1f6feb"`, `penwidth=2.5`}
)

// highlight records which nodes and edges lie on highlighted paths.
type highlight[K comparable] struct {
	nodes map[K]bool
	goals map[K]bool
	edges map[[2]K]bool
}

func newHighlight[K comparable](paths [][]K) highlight[K] {
	h := highlight[K]{nodes: map[K]bool{}, goals: map[K]bool{}, edges: map[[2]K]bool{}}
	for _, p := range paths {
		for i, n := range p {
			h.nodes[n] = true
			if i > 0 {
				h.edges[[2]K{p[i-1], n}] = true
			}
		}
		if len(p) > 0 {
			h.goals[p[len(p)-1]] = true
		}
	}
	return h
}

func (h highlight[K]) nodeAttrs(k K, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if h.nodes[k] {
		attrs = append(attrs, pathNodeAttrs...)
	}
	if h.goals[k] {
		attrs = append(attrs, goalNodeAttrs...)
	}
	return attrs
}

func (h highlight[K]) edgeAttrs(from, to K, label string) []string {
	var attrs []string
	if label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", label))
	}
	if h.edges[[2]K{from, to}] {
		attrs = append(attrs, pathEdgeAttrs...)
	}
	return attrs
}

func writeEdge(buf *bytes.Buffer, from, to string, attrs []string) {
	if len(attrs) == 0 {
		fmt.Fprintf(buf, "  %q -> %q;\n", from, to)
		return
	}
	fmt.Fprintf(buf, "  %q -> %q [%s];\n", from, to, strings.Join(attrs, ", "))
}

// ToDOT converts the tree rooted at root to Graphviz DOT. Nodes are emitted
// in preorder with IDs n0, n1, ... so that equal names stay distinct.
func ToDOT(root *tree.Node, opts Options) string {
	h := newHighlight(opts.Paths)
	ids := make(map[*tree.Node]string)

	var nodes, edges bytes.Buffer
	root.Walk(func(n *tree.Node, depth int) bool {
		id := "n" + strconv.Itoa(len(ids))
		ids[n] = id

		label := n.Name
		if opts.Detailed {
			label = fmt.Sprintf("%s\ndepth: %d", n.Name, depth)
		}
		fmt.Fprintf(&nodes, "  %q [%s];\n", id, strings.Join(h.nodeAttrs(n, label), ", "))
		return true
	})
	root.Walk(func(n *tree.Node, _ int) bool {
		for _, c := range n.Children {
			writeEdge(&edges, ids[n], ids[c], h.edgeAttrs(n, c, ""))
		}
		return true
	})

	var buf bytes.Buffer
	buf.WriteString(header)
	buf.Write(nodes.Bytes())
	buf.WriteString("\n")
	buf.Write(edges.Bytes())
	buf.WriteString("}\n")
	return buf.String()
}

// GraphToDOT converts a state graph to Graphviz DOT, highlighting the given
// state-ID paths. Edges are labelled with their action label, plus the cost
// when it is not 1.
func GraphToDOT(g *statespace.Graph, paths ...[]string) string {
	h := newHighlight(paths)

	var buf bytes.Buffer
	buf.WriteString(header)
	for _, s := range g.States() {
		fmt.Fprintf(&buf, "  %q [%s];\n", s.ID, strings.Join(h.nodeAttrs(s.ID, s.ID), ", "))
	}
	buf.WriteString("\n")
	for _, e := range g.Edges() {
		label := e.Label
		if e.Cost != 1 {
			label = fmt.Sprintf("%s (%g)", e.Label, e.Cost)
		}
		writeEdge(&buf, e.From, e.To, h.edgeAttrs(e.From, e.To, label))
	}
	buf.WriteString("}\n")
	return buf.String()
}
