package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"tissue/internal/focus"
)

// ComponentID identifies a registered component.
type ComponentID int

const (
	IDSearchBar ComponentID = iota + 1
	IDIssueList
	IDLabelEditor
	IDConversation
	IDStatusBar
	IDHelp
	IDColorPicker
)

// Rect is a screen area in cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Dispatcher is how components report back to the loop. Send enqueues an
// Action for a later iteration; Spawn runs task in the background and enqueues
// the Action it returns.
type Dispatcher interface {
	Send(Action) error
	Spawn(task func(ctx context.Context) Action)
}

// Component is one interactive panel.
type Component interface {
	ID() ComponentID
	Register(Dispatcher)
	// HandleAction applies a and reports whether a repaint is needed.
	HandleAction(a Action) bool
	View(area Rect) string
	// Cursor returns the cursor position relative to the component's area.
	Cursor() (x, y int, ok bool)
	Visible() bool
	// FocusNode returns the component's focusable leaves, or nil.
	FocusNode() *focus.Node
}

// FocusCapturer is implemented by components that keep certain keys away from
// global handling (focus traversal and quit) while they hold focus.
type FocusCapturer interface {
	CapturesFocusKey(msg tea.KeyMsg) bool
}

// InputBlocker is implemented by modal components. While any visible
// component blocks input, raw input is not routed to the focused leaf.
type InputBlocker interface {
	BlocksInput() bool
}

// Registry is the ordered set of components plus an id lookup.
type Registry struct {
	Components []Component
	index      map[ComponentID]int
}

// BuildRegistry registers components in dispatch order. Duplicate ids are an
// error.
func BuildRegistry(components ...Component) (*Registry, error) {
	r := &Registry{index: make(map[ComponentID]int, len(components))}
	for _, c := range components {
		if c == nil {
			continue
		}
		if _, dup := r.index[c.ID()]; dup {
			return nil, fmt.Errorf("component %d registered twice", c.ID())
		}
		r.index[c.ID()] = len(r.Components)
		r.Components = append(r.Components, c)
	}
	return r, nil
}

// Lookup returns the component registered under id.
func (r *Registry) Lookup(id ComponentID) (Component, bool) {
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return r.Components[i], true
}

// Index returns the dispatch position of id.
func (r *Registry) Index(id ComponentID) (int, bool) {
	i, ok := r.index[id]
	return i, ok
}

// FocusTree builds the focus tree from visible components in registry order.
func (r *Registry) FocusTree() *focus.Node {
	var nodes []*focus.Node
	for _, c := range r.Components {
		if !c.Visible() {
			continue
		}
		nodes = append(nodes, c.FocusNode())
	}
	return focus.Group(nodes...)
}

// leaf adapts a handler function to focus.Leaf.
type leaf struct {
	focus.Flag
	handle func(tea.Msg) bool
}

func newLeaf(name string, handle func(tea.Msg) bool) *leaf {
	return &leaf{Flag: focus.NewFlag(name), handle: handle}
}

func (l *leaf) HandleInput(msg tea.Msg) bool {
	if l.handle == nil {
		return false
	}
	return l.handle(msg)
}
