package refgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/arbor/refgraph"
)

// fakeNode is a minimal refgraph.Node for testing the graph layer in
// isolation from the Lifecycle Engine and storage.
type fakeNode struct {
	id       string
	parents  refgraph.Head
	children refgraph.Head
}

func (n *fakeNode) ParentHead() *refgraph.Head { return &n.parents }
func (n *fakeNode) ChildHead() *refgraph.Head  { return &n.children }

func node(id string) *fakeNode { return &fakeNode{id: id} }

func TestAttach_LinksBothLists(t *testing.T) {
	p, c := node("p"), node("c")
	e := refgraph.Attach(p, c)

	require.NotNil(t, e)
	assert.True(t, refgraph.AnyParent(c))
	assert.Same(t, p, e.Parent)
	assert.Same(t, c, e.Child)

	var childSeen, parentSeen []*fakeNode
	refgraph.Walk(p, refgraph.ChildEdges, func(e *refgraph.Edge) {
		childSeen = append(childSeen, e.Child.(*fakeNode))
	})
	refgraph.Walk(c, refgraph.ParentEdges, func(e *refgraph.Edge) {
		parentSeen = append(parentSeen, e.Parent.(*fakeNode))
	})
	assert.Equal(t, []*fakeNode{c}, childSeen)
	assert.Equal(t, []*fakeNode{p}, parentSeen)
}

func TestAttach_DuplicateEdgesAreDistinct(t *testing.T) {
	p, c := node("p"), node("c")
	e1 := refgraph.Attach(p, c)
	e2 := refgraph.Attach(p, c)

	assert.NotSame(t, e1, e2)

	var count int
	refgraph.Walk(c, refgraph.ParentEdges, func(*refgraph.Edge) { count++ })
	assert.Equal(t, 2, count)
}

func TestDetach_RemovesFromBothLists(t *testing.T) {
	p, c := node("p"), node("c")
	e := refgraph.Attach(p, c)

	refgraph.Detach(e, false, nil)

	assert.False(t, refgraph.AnyParent(c))
	var count int
	refgraph.Walk(p, refgraph.ChildEdges, func(*refgraph.Edge) { count++ })
	assert.Zero(t, count)
}

func TestDetach_CascadeInvokesOnOrphanOnlyWhenLastParentGone(t *testing.T) {
	p1, p2, c := node("p1"), node("p2"), node("c")
	e1 := refgraph.Attach(p1, c)
	e2 := refgraph.Attach(p2, c)

	var orphaned []refgraph.Node
	onOrphan := func(child refgraph.Node) { orphaned = append(orphaned, child) }

	refgraph.Detach(e1, true, onOrphan)
	assert.Empty(t, orphaned, "c still has p2 as a parent")

	refgraph.Detach(e2, true, onOrphan)
	require.Len(t, orphaned, 1)
	assert.Same(t, c, orphaned[0])
}

func TestFind_ReturnsFirstMatchingEdge(t *testing.T) {
	p, c := node("p"), node("other")
	e := refgraph.Attach(p, c)

	assert.Same(t, e, refgraph.Find(p, c))
	assert.Nil(t, refgraph.Find(node("stranger"), c))
}

func TestWalk_SafeDuringMutation(t *testing.T) {
	// Build a star: parent p with three children, then detach all of
	// them while visiting p's child list — the exact pattern the
	// Lifecycle Engine's destroy() step 3 relies on.
	p := node("p")
	children := []*fakeNode{node("a"), node("b"), node("c")}
	var edges []*refgraph.Edge
	for _, ch := range children {
		edges = append(edges, refgraph.Attach(p, ch))
	}

	var visited []refgraph.Node
	refgraph.Walk(p, refgraph.ChildEdges, func(e *refgraph.Edge) {
		visited = append(visited, e.Child)
		refgraph.Detach(e, false, nil)
	})

	assert.Len(t, visited, 3)
	var remaining int
	refgraph.Walk(p, refgraph.ChildEdges, func(*refgraph.Edge) { remaining++ })
	assert.Zero(t, remaining)
	for _, e := range edges {
		assert.False(t, refgraph.AnyParent(e.Child))
	}
}

func TestAttach_NilEndpointPanics(t *testing.T) {
	assert.Panics(t, func() { refgraph.Attach(nil, node("c")) })
	assert.Panics(t, func() { refgraph.Attach(node("p"), nil) })
}
