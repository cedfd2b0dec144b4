package focus

import (
	"math/rand/v2"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLeaf struct {
	Flag
	accept bool
	got    []tea.Msg
}

func newLeaf(name string) *testLeaf {
	return &testLeaf{Flag: NewFlag(name)}
}

func (l *testLeaf) HandleInput(msg tea.Msg) bool {
	l.got = append(l.got, msg)
	return l.accept
}

func focusedCount(leaves ...*testLeaf) int {
	n := 0
	for _, l := range leaves {
		if l.Focused() {
			n++
		}
	}
	return n
}

func TestRebuildFocusesFirstLeaf(t *testing.T) {
	a, b, c := newLeaf("a"), newLeaf("b"), newLeaf("c")
	r := NewRouter()
	r.Rebuild(Group(Group(LeafNode(a), LeafNode(b)), LeafNode(c)))

	require.Len(t, r.Leaves(), 3)
	assert.Equal(t, "a", r.FocusedName())
	assert.Equal(t, 1, focusedCount(a, b, c))
}

func TestRebuildOrderIsInOrderTraversal(t *testing.T) {
	a, b, c, d := newLeaf("a"), newLeaf("b"), newLeaf("c"), newLeaf("d")
	root := Group(
		Group(LeafNode(a), Group(LeafNode(b), LeafNode(c))),
		nil,
		LeafNode(d),
	)
	var names []string
	for _, l := range root.Leaves() {
		names = append(names, l.FocusName())
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, names)
}

func TestRebuildKeepsSingleClaimant(t *testing.T) {
	a, b, c := newLeaf("a"), newLeaf("b"), newLeaf("c")
	b.SetFocused(true)
	c.SetFocused(true)

	r := NewRouter()
	r.Rebuild(Group(LeafNode(a), LeafNode(b), LeafNode(c)))

	assert.Equal(t, "b", r.FocusedName())
	assert.False(t, c.Focused())
	assert.Equal(t, 1, focusedCount(a, b, c))
}

func TestRebuildClearsLeafThatDisappeared(t *testing.T) {
	a, b := newLeaf("a"), newLeaf("b")
	r := NewRouter()
	r.Rebuild(Group(LeafNode(a), LeafNode(b)))
	require.True(t, r.Transfer("b"))

	// b becomes invisible.
	r.Rebuild(Group(LeafNode(a)))
	assert.False(t, b.Focused(), "hidden leaf must not keep its flag")
	assert.True(t, a.Focused())
	assert.Equal(t, "a", r.FocusedName())
}

func TestRebuildEmptyTree(t *testing.T) {
	a := newLeaf("a")
	r := NewRouter()
	r.Rebuild(Group(LeafNode(a)))
	r.Rebuild(Group())

	assert.Nil(t, r.Focused())
	assert.False(t, a.Focused())
	assert.False(t, r.Route(tea.KeyMsg{Type: tea.KeyEnter}))

	r.Advance(Next)
	assert.Nil(t, r.Focused())
}

func TestRouteDeliversToFocusedLeafOnly(t *testing.T) {
	a, b := newLeaf("a"), newLeaf("b")
	a.accept = false
	b.accept = true
	r := NewRouter()
	r.Rebuild(Group(LeafNode(a), LeafNode(b)))

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}
	handled := r.Route(msg)

	assert.False(t, handled, "focused leaf declined")
	assert.Len(t, a.got, 1)
	assert.Empty(t, b.got, "declined input must not fall through to another leaf")
}

func TestAdvanceWraps(t *testing.T) {
	a, b, c := newLeaf("a"), newLeaf("b"), newLeaf("c")
	r := NewRouter()
	r.Rebuild(Group(LeafNode(a), LeafNode(b), LeafNode(c)))

	r.Advance(Next)
	assert.Equal(t, "b", r.FocusedName())
	r.Advance(Next)
	r.Advance(Next)
	assert.Equal(t, "a", r.FocusedName())

	r.Advance(Prev)
	assert.Equal(t, "c", r.FocusedName())
	assert.Equal(t, 1, focusedCount(a, b, c))
}

func TestAdvanceSingleLeaf(t *testing.T) {
	a := newLeaf("a")
	r := NewRouter()
	r.Rebuild(Group(LeafNode(a)))
	r.Advance(Next)
	r.Advance(Prev)
	assert.True(t, a.Focused())
}

func TestTransfer(t *testing.T) {
	a, b := newLeaf("list"), newLeaf("input")
	r := NewRouter()
	r.Rebuild(Group(LeafNode(a), LeafNode(b)))

	assert.True(t, r.Transfer("input"))
	assert.False(t, a.Focused())
	assert.True(t, b.Focused())

	assert.False(t, r.Transfer("missing"))
	assert.Equal(t, "input", r.FocusedName())
}

func TestForceTransferOutsideSnapshotIsIgnored(t *testing.T) {
	a, stray := newLeaf("a"), newLeaf("stray")
	r := NewRouter()
	r.Rebuild(Group(LeafNode(a)))

	assert.False(t, r.ForceTransfer(stray))
	assert.False(t, stray.Focused())
	assert.True(t, a.Focused())
	assert.False(t, r.ForceTransfer(nil))
}

func TestFocusExclusivityUnderRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	leaves := []*testLeaf{newLeaf("a"), newLeaf("b"), newLeaf("c"), newLeaf("d"), newLeaf("e")}

	snapshot := func() *Node {
		var nodes []*Node
		for _, l := range leaves {
			// Each leaf is visible with probability 3/4.
			if rng.IntN(4) != 0 {
				nodes = append(nodes, LeafNode(l))
			}
		}
		return Group(Group(nodes...))
	}

	r := NewRouter()
	r.Rebuild(snapshot())
	for step := 0; step < 2000; step++ {
		switch rng.IntN(5) {
		case 0:
			r.Advance(Next)
		case 1:
			r.Advance(Prev)
		case 2:
			r.Transfer(leaves[rng.IntN(len(leaves))].FocusName())
		case 3:
			r.ForceTransfer(leaves[rng.IntN(len(leaves))])
		case 4:
			r.Rebuild(snapshot())
		}

		inTree := r.Leaves()
		want := 1
		if len(inTree) == 0 {
			want = 0
		}
		assert.Equal(t, want, focusedCount(leaves...), "step %d", step)
		if r.Focused() != nil {
			assert.Contains(t, inTree, r.Focused())
		}
	}
}
