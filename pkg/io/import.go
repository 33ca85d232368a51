package io

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/matzehuels/treesearch/pkg/errors"
	"github.com/matzehuels/treesearch/pkg/statespace"
	"github.com/matzehuels/treesearch/pkg/tree"
)

var (
	// ErrEmptyName is returned for a tree node without a name.
	ErrEmptyName = stderrors.New("node name must not be empty")

	// ErrDuplicateName is returned when two siblings share a name. Only the
	// first would be reachable, as children are selected by name.
	ErrDuplicateName = stderrors.New("duplicate sibling name")
)

type treeNode struct {
	Name     string     `json:"name" toml:"name" yaml:"name"`
	Children []treeNode `json:"children,omitempty" toml:"children,omitempty" yaml:"children,omitempty"`
}

type graphDoc struct {
	States []stateDoc `json:"states" toml:"states" yaml:"states"`
	Edges  []edgeDoc  `json:"edges" toml:"edges" yaml:"edges"`
}

type stateDoc struct {
	ID   string              `json:"id" toml:"id" yaml:"id"`
	Meta statespace.Metadata `json:"meta,omitempty" toml:"meta,omitempty" yaml:"meta,omitempty"`
}

type edgeDoc struct {
	From  string  `json:"from" toml:"from" yaml:"from"`
	To    string  `json:"to" toml:"to" yaml:"to"`
	Label string  `json:"label,omitempty" toml:"label,omitempty" yaml:"label,omitempty"`
	Cost  float64 `json:"cost,omitempty" toml:"cost,omitempty" yaml:"cost,omitempty"`
}

// ReadTree decodes a tree document in format f from r.
//
// ReadTree returns an INVALID_FORMAT error for malformed input or unknown
// keys, and an INVALID_TREE error wrapping [ErrEmptyName] or
// [ErrDuplicateName] for structural problems. The error names the path to
// the offending node. ReadTree does not close r.
func ReadTree(r io.Reader, f Format) (*tree.Node, error) {
	var doc treeNode
	if err := decode(r, f, &doc); err != nil {
		return nil, err
	}
	return buildTree(doc, "")
}

func buildTree(doc treeNode, parent string) (*tree.Node, error) {
	path := parent + "/" + doc.Name
	if doc.Name == "" {
		return nil, errors.Wrap(errors.ErrCodeInvalidTree, ErrEmptyName, "node under %q", parent+"/")
	}

	n := tree.New(doc.Name)
	seen := make(map[string]bool, len(doc.Children))
	for _, c := range doc.Children {
		if seen[c.Name] {
			return nil, errors.Wrap(errors.ErrCodeInvalidTree, ErrDuplicateName, "%s/%s", path, c.Name)
		}
		seen[c.Name] = true
		child, err := buildTree(c, path)
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}
	return n, nil
}

// ImportTree reads the tree file at path, choosing the format from its
// extension. A missing file is reported as FILE_NOT_FOUND.
func ImportTree(path string) (*tree.Node, error) {
	f, format, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTree(f, format)
}

// ReadGraph decodes a state graph document in format f from r. Structural
// errors are INVALID_GRAPH errors wrapping the [statespace] sentinels
// (unknown endpoint, duplicate ID or label, negative cost) and name the
// offending state or edge.
func ReadGraph(r io.Reader, f Format) (*statespace.Graph, error) {
	var doc graphDoc
	if err := decode(r, f, &doc); err != nil {
		return nil, err
	}

	g := statespace.New()
	for _, s := range doc.States {
		if err := g.AddState(statespace.State{ID: s.ID, Meta: s.Meta}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "state %q: %v", s.ID, err)
		}
	}
	for _, e := range doc.Edges {
		edge := statespace.Edge{From: e.From, To: e.To, Label: e.Label, Cost: e.Cost}
		if err := g.AddEdge(edge); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "edge %s->%s: %v", e.From, e.To, err)
		}
	}
	return g, nil
}

// ImportGraph reads the graph file at path, choosing the format from its
// extension.
func ImportGraph(path string) (*statespace.Graph, error) {
	f, format, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadGraph(f, format)
}

func open(path string) (*os.File, Format, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, "", err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}
	return f, format, nil
}
