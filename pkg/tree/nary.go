package tree

import (
	"fmt"
	"strings"

	"github.com/matzehuels/treesearch/pkg/search"
)

// Node is an N-ary tree node with a name, such as a directory or a file.
type Node struct {
	Name     string
	Children []*Node
}

// New returns a node with the given name and children.
func New(name string, children ...*Node) *Node {
	return &Node{Name: name, Children: children}
}

// Add appends children and returns n.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Child returns the first child named name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Walk visits n and its descendants in preorder, children in order. fn
// receives each node with its depth below n; returning false skips that
// node's subtree. Walk uses an explicit stack, so deep trees do not grow the
// call stack.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	type item struct {
		node  *Node
		depth int
	}
	stack := []item{{n, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(it.node, it.depth) {
			continue
		}
		for i := len(it.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{it.node.Children[i], it.depth + 1})
		}
	}
}

// Len returns the number of nodes in the tree rooted at n.
func (n *Node) Len() int {
	count := 0
	n.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Height returns the depth of the deepest node below n (0 for a leaf).
func (n *Node) Height() int {
	height := 0
	n.Walk(func(_ *Node, depth int) bool {
		height = max(height, depth)
		return true
	})
	return height
}

// String formats the node as <name>.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return "<" + n.Name + ">"
}

// Names maps a state path to the node names along it.
func Names(path []*Node) []string {
	names := make([]string, len(path))
	for i, n := range path {
		names[i] = n.Name
	}
	return names
}

// FilesProblem searches an N-ary tree for a node by name. Actions are child
// names; when siblings share a name only the first is reachable.
type FilesProblem struct {
	search.Goal[*Node]
	// Pattern is the goal name, or the suffix for suffix problems.
	Pattern string
	// Suffix marks a suffix-match problem.
	Suffix bool
}

// NewFilesProblem returns a problem starting at root looking for a node
// named name.
func NewFilesProblem(root *Node, name string) *FilesProblem {
	p := &FilesProblem{Pattern: name}
	p.Goal = search.Goal[*Node]{
		Start: root,
		Match: func(n *Node) bool { return n != nil && n.Name == name },
	}
	return p
}

// NewSuffixProblem returns a problem starting at root whose goals are the
// nodes whose name ends with suffix, such as ".log".
func NewSuffixProblem(root *Node, suffix string) *FilesProblem {
	p := &FilesProblem{Pattern: suffix, Suffix: true}
	p.Goal = search.Goal[*Node]{
		Start: root,
		Match: func(n *Node) bool { return n != nil && strings.HasSuffix(n.Name, suffix) },
	}
	return p
}

// Actions returns the names of s's children in order.
func (p *FilesProblem) Actions(s *Node) []string {
	if s == nil {
		return nil
	}
	actions := make([]string, len(s.Children))
	for i, c := range s.Children {
		actions[i] = c.Name
	}
	return actions
}

// Result returns the child of s named a, or nil.
func (p *FilesProblem) Result(s *Node, a string) *Node { return s.Child(a) }

// String formats the problem as Problem(<root>, pattern).
func (p *FilesProblem) String() string {
	return fmt.Sprintf("Problem(%v, %s)", p.Start, p.Pattern)
}
