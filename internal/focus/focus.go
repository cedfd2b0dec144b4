// Package focus decides which on-screen element receives input.
//
// Components describe their focusable parts as a tree of Nodes. The Router
// flattens the tree into tab order (in-order traversal), delivers input to the
// focused leaf only, and is the only code that flips focus flags across
// component boundaries. After every Router operation exactly one leaf in the
// current snapshot is focused, or none when the snapshot has no leaves.
package focus

import tea "github.com/charmbracelet/bubbletea"

// Leaf is a focusable element.
type Leaf interface {
	FocusName() string
	Focused() bool
	SetFocused(bool)
	// HandleInput consumes an input event while the leaf is focused and
	// reports whether it was handled.
	HandleInput(msg tea.Msg) bool
}

// Node is either a leaf or a group of child nodes.
type Node struct {
	Leaf     Leaf
	Children []*Node
}

// LeafNode wraps a single leaf.
func LeafNode(l Leaf) *Node {
	if l == nil {
		return nil
	}
	return &Node{Leaf: l}
}

// Group builds an interior node, skipping nil children.
func Group(children ...*Node) *Node {
	n := &Node{}
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// Leaves returns the leaves under n in tab order.
func (n *Node) Leaves() []Leaf {
	var out []Leaf
	n.walk(func(l Leaf) { out = append(out, l) })
	return out
}

func (n *Node) walk(fn func(Leaf)) {
	if n == nil {
		return
	}
	if n.Leaf != nil {
		fn(n.Leaf)
	}
	for _, c := range n.Children {
		c.walk(fn)
	}
}

// Flag is an embeddable focus flag for leaf implementations.
type Flag struct {
	name    string
	focused bool
}

// NewFlag returns an unfocused flag with the given name.
func NewFlag(name string) Flag {
	return Flag{name: name}
}

// FocusName implements Leaf.
func (f *Flag) FocusName() string { return f.name }

// Focused implements Leaf.
func (f *Flag) Focused() bool { return f.focused }

// SetFocused implements Leaf.
func (f *Flag) SetFocused(v bool) { f.focused = v }
