package focus

import tea "github.com/charmbracelet/bubbletea"

// Direction selects the neighbour used by Advance.
type Direction int

const (
	Next Direction = iota
	Prev
)

// Router owns the current tree snapshot and the focus transitions on it.
type Router struct {
	leaves  []Leaf
	focused Leaf
}

// NewRouter returns a router with an empty snapshot.
func NewRouter() *Router {
	return &Router{}
}

// Rebuild replaces the snapshot with the leaves of root.
//
// A previously focused leaf that is no longer part of the snapshot has its
// flag cleared. When several leaves claim focus only the router's current
// holder (or else the first claimant) keeps it; when none does, the first
// leaf receives focus.
func (r *Router) Rebuild(root *Node) {
	leaves := root.Leaves()

	if r.focused != nil && indexOf(leaves, r.focused) < 0 {
		r.focused.SetFocused(false)
		r.focused = nil
	}

	var keep Leaf
	if r.focused != nil && r.focused.Focused() {
		keep = r.focused
	}
	for _, l := range leaves {
		if !l.Focused() {
			continue
		}
		if keep == nil {
			keep = l
			continue
		}
		if l != keep {
			l.SetFocused(false)
		}
	}
	if keep == nil && len(leaves) > 0 {
		keep = leaves[0]
		keep.SetFocused(true)
	}

	r.leaves = leaves
	r.focused = keep
}

// Leaves returns the snapshot in tab order.
func (r *Router) Leaves() []Leaf {
	return r.leaves
}

// Focused returns the focused leaf or nil.
func (r *Router) Focused() Leaf {
	return r.focused
}

// FocusedName returns the focused leaf's name, or "" when nothing is focused.
func (r *Router) FocusedName() string {
	if r.focused == nil {
		return ""
	}
	return r.focused.FocusName()
}

// Route delivers msg to the focused leaf only. A declined event is not offered
// to any other leaf.
func (r *Router) Route(msg tea.Msg) bool {
	if r.focused == nil {
		return false
	}
	return r.focused.HandleInput(msg)
}

// Advance moves focus to the neighbouring leaf in tab order, wrapping around.
func (r *Router) Advance(dir Direction) {
	n := len(r.leaves)
	if n < 1 {
		return
	}
	idx := indexOf(r.leaves, r.focused)
	var target int
	switch {
	case idx < 0 && dir == Prev:
		target = n - 1
	case idx < 0:
		target = 0
	case dir == Prev:
		target = (idx - 1 + n) % n
	default:
		target = (idx + 1) % n
	}
	r.set(r.leaves[target])
}

// Transfer forces focus onto the leaf with the given name. It returns false
// and changes nothing when no such leaf is in the snapshot.
func (r *Router) Transfer(name string) bool {
	for _, l := range r.leaves {
		if l.FocusName() == name {
			r.set(l)
			return true
		}
	}
	return false
}

// ForceTransfer forces focus onto target regardless of which leaf currently
// holds it. Targets outside the snapshot are ignored.
func (r *Router) ForceTransfer(target Leaf) bool {
	if target == nil || indexOf(r.leaves, target) < 0 {
		return false
	}
	r.set(target)
	return true
}

func (r *Router) set(target Leaf) {
	if r.focused != nil && r.focused != target {
		r.focused.SetFocused(false)
	}
	for _, l := range r.leaves {
		if l != target && l.Focused() {
			l.SetFocused(false)
		}
	}
	target.SetFocused(true)
	r.focused = target
}

func indexOf(leaves []Leaf, target Leaf) int {
	if target == nil {
		return -1
	}
	for i, l := range leaves {
		if l == target {
			return i
		}
	}
	return -1
}
