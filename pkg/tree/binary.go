package tree

import (
	"fmt"

	"github.com/matzehuels/treesearch/pkg/search"
)

// Actions available in a [UsersProblem].
const (
	GoLeft  = "go_left"
	GoRight = "go_right"
)

// BinaryNode is a node of a binary tree identified by ID.
type BinaryNode struct {
	ID    int
	Left  *BinaryNode
	Right *BinaryNode
}

// NewBinary returns a leaf with the given id.
func NewBinary(id int) *BinaryNode { return &BinaryNode{ID: id} }

// SetChildren replaces both children and returns n.
func (n *BinaryNode) SetChildren(left, right *BinaryNode) *BinaryNode {
	n.Left, n.Right = left, right
	return n
}

// String formats the node as <id>.
func (n *BinaryNode) String() string {
	if n == nil {
		return "<nil>"
	}
	return fmt.Sprintf("<%d>", n.ID)
}

// UsersProblem searches a binary tree for a node with a given id.
type UsersProblem struct {
	search.Goal[*BinaryNode]
	// TargetID is the id being looked for.
	TargetID int
}

// NewUsersProblem returns a problem starting at root and looking for id.
func NewUsersProblem(root *BinaryNode, id int) *UsersProblem {
	p := &UsersProblem{TargetID: id}
	p.Goal = search.Goal[*BinaryNode]{
		Start: root,
		Match: func(n *BinaryNode) bool { return n != nil && n.ID == id },
	}
	return p
}

// Actions returns GoLeft and/or GoRight for the children s has, in that order.
func (p *UsersProblem) Actions(s *BinaryNode) []string {
	if s == nil {
		return nil
	}
	var actions []string
	if s.Left != nil {
		actions = append(actions, GoLeft)
	}
	if s.Right != nil {
		actions = append(actions, GoRight)
	}
	return actions
}

// Result returns the child selected by a, or nil for an unknown action.
func (p *UsersProblem) Result(s *BinaryNode, a string) *BinaryNode {
	switch a {
	case GoLeft:
		return s.Left
	case GoRight:
		return s.Right
	}
	return nil
}

// String formats the problem as Problem(<root>, id).
func (p *UsersProblem) String() string {
	return fmt.Sprintf("Problem(%v, %d)", p.Start, p.TargetID)
}
