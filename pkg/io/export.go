package io

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/matzehuels/treesearch/pkg/search"
	"github.com/matzehuels/treesearch/pkg/statespace"
	"github.com/matzehuels/treesearch/pkg/tree"
)

// WriteTree encodes root as a tree document in format f. The output can be
// read back with [ReadTree].
func WriteTree(root *tree.Node, w io.Writer, f Format) error {
	return encode(w, f, toTreeDoc(root))
}

func toTreeDoc(n *tree.Node) treeNode {
	doc := treeNode{Name: n.Name}
	for _, c := range n.Children {
		doc.Children = append(doc.Children, toTreeDoc(c))
	}
	return doc
}

// ExportTree writes root to the file at path, choosing the format from its
// extension.
func ExportTree(root *tree.Node, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteTree(root, f, format)
}

// WriteGraph encodes g as a graph document in format f. States keep their
// insertion order and edges are grouped by source. The output can be read
// back with [ReadGraph].
func WriteGraph(g *statespace.Graph, w io.Writer, f Format) error {
	doc := graphDoc{States: []stateDoc{}, Edges: []edgeDoc{}}
	for _, s := range g.States() {
		sd := stateDoc{ID: s.ID}
		if len(s.Meta) > 0 {
			sd.Meta = s.Meta
		}
		doc.States = append(doc.States, sd)
	}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, edgeDoc{From: e.From, To: e.To, Label: e.Label, Cost: e.Cost})
	}
	return encode(w, f, doc)
}

// Result is the serialized form of a finished search.
//
// Single-goal searches fill Actions, States and Depth. Collect-all searches
// fill Paths and BoundedRegionsRemain and leave Depth at -1.
type Result struct {
	RunID                string       `json:"run_id"`
	Algorithm            string       `json:"algorithm"`
	Kind                 string       `json:"kind"`
	Depth                int          `json:"depth"`
	Cost                 float64      `json:"cost,omitempty"`
	Actions              []string     `json:"actions,omitempty"`
	States               []string     `json:"states,omitempty"`
	Paths                [][]string   `json:"paths,omitempty"`
	BoundedRegionsRemain bool         `json:"bounded_regions_remain,omitempty"`
	Stats                search.Stats `json:"stats"`

	// Cached marks a result served from a result cache instead of a fresh
	// search. Stats then describe the original run.
	Cached bool `json:"cached,omitempty"`
}

// OutcomeResult converts a single-goal outcome. label names states; actions
// are formatted with fmt.Sprint.
func OutcomeResult[S comparable, A any](algorithm string, out search.Outcome[S, A], label func(S) string) Result {
	r := Result{
		RunID:     uuid.NewString(),
		Algorithm: algorithm,
		Kind:      out.Kind.String(),
		Depth:     out.Depth(),
		Stats:     out.Stats,
	}
	if out.Found() {
		r.Cost = out.Node.PathCost()
		for _, a := range out.Actions() {
			r.Actions = append(r.Actions, fmt.Sprint(a))
		}
		r.States = labels(out.States(), label)
	}
	return r
}

// CollectionResult converts a collect-all result.
func CollectionResult[S comparable](algorithm string, c search.Collection[S], label func(S) string) Result {
	r := Result{
		RunID:                uuid.NewString(),
		Algorithm:            algorithm,
		Kind:                 c.Kind().String(),
		Depth:                -1,
		BoundedRegionsRemain: c.BoundedRegionsRemain,
		Stats:                c.Stats,
	}
	for _, p := range c.Paths {
		r.Paths = append(r.Paths, labels(p, label))
	}
	return r
}

func labels[S any](states []S, label func(S) string) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = label(s)
	}
	return out
}

// WriteResult encodes r as indented JSON.
func WriteResult(r Result, w io.Writer) error {
	return encode(w, FormatJSON, r)
}
