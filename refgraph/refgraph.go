// Package refgraph implements the allocator's Reference Graph: the
// bidirectional parent↔child edge lists that let the Lifecycle Engine
// decide when an object's last owner has let go of it.
//
// Edges are first-class heap objects (ordinary *Edge values), each linked
// simultaneously into its parent's child list and its child's parent list
// via intrusive doubly-linked list pointers, giving O(1) Attach and O(1)
// Detach given an edge handle — something a map-of-maps adjacency
// representation (as used by this lineage's labeled-graph core.Graph)
// cannot provide without an extra index.
package refgraph

// Node is the minimal seam refgraph needs from an object: two list heads.
// arbor.Object implements it; refgraph never imports arbor; this keeps the
// dependency order Storage → Reference Graph → Lifecycle Engine. The
// methods are exported because Go requires an interface's unexported
// methods to be implemented by types declared in the same package — and
// Object necessarily lives in the arbor package, one layer up.
type Node interface {
	// ParentHead roots the list of edges for which this Node is the Child.
	ParentHead() *Head
	// ChildHead roots the list of edges for which this Node is the Parent.
	ChildHead() *Head
}

// Head is the sentinel-free head of one of a Node's two edge lists. A nil
// first means "empty list"; non-nil points at the first Edge.
type Head struct {
	first *Edge
}

// Edge records a single directed ownership reference: Parent keeps Child
// alive. It is linked into Parent's child list and Child's parent list at
// the same time. Each Edge is a member of two independent doubly-linked
// lists, so it carries two independent prev/next pairs: parentPrev/
// parentNext thread it through Parent.ChildHead()'s list, childPrev/
// childNext thread it through Child.ParentHead()'s list.
type Edge struct {
	Parent, Child Node

	parentPrev, parentNext *Edge
	childPrev, childNext   *Edge
}

// Attach creates a new Edge from parent to child and links it into both
// lists. It never returns an error: a nil endpoint makes it panic, and
// the only other way it can fail is the Go runtime itself running out of
// memory for the *Edge, which aborts the process — matching libnih's
// NIH_MUST(ref = malloc(...)) abort-on-OOM policy for edges.
func Attach(parent, child Node) *Edge {
	if parent == nil || child == nil {
		panic("refgraph: Attach called with a nil endpoint")
	}

	e := &Edge{Parent: parent, Child: child}

	// Link into parent's child list.
	h := parent.ChildHead()
	e.parentNext = h.first
	if h.first != nil {
		h.first.parentPrev = e
	}
	h.first = e

	// Link into child's parent list.
	h = child.ParentHead()
	e.childNext = h.first
	if h.first != nil {
		h.first.childPrev = e
	}
	h.first = e

	return e
}

// Detach unlinks e from both the parent's child list and the child's
// parent list. If cascade is true and the child's parent list is now
// empty, onOrphan is invoked with the child — this is how the Lifecycle
// Engine learns that a child just lost its last owner. cascade=false lets
// a destroying object strip its own incoming edges without re-entering
// destruction of itself.
func Detach(e *Edge, cascade bool, onOrphan func(child Node)) {
	if e == nil {
		panic("refgraph: Detach called with a nil edge")
	}

	// Unlink from parent's child list.
	h := e.Parent.ChildHead()
	if e.parentPrev != nil {
		e.parentPrev.parentNext = e.parentNext
	} else {
		h.first = e.parentNext
	}
	if e.parentNext != nil {
		e.parentNext.parentPrev = e.parentPrev
	}
	e.parentPrev, e.parentNext = nil, nil

	// Unlink from child's parent list.
	h = e.Child.ParentHead()
	if e.childPrev != nil {
		e.childPrev.childNext = e.childNext
	} else {
		h.first = e.childNext
	}
	if e.childNext != nil {
		e.childNext.childPrev = e.childPrev
	}
	e.childPrev, e.childNext = nil, nil

	if cascade && !AnyParent(e.Child) && onOrphan != nil {
		onOrphan(e.Child)
	}
}

// Find performs a linear scan of child's parent list for an edge whose
// Parent is parent, returning the first match or nil. When multiple edges
// exist between the same ordered pair, any of them is a valid match —
// callers needing to remove exactly one (Unref) rely on that.
func Find(parent, child Node) *Edge {
	for e := child.ParentHead().first; e != nil; e = e.childNext {
		if e.Parent == parent {
			return e
		}
	}

	return nil
}

// AnyParent reports whether child's parent list is non-empty.
func AnyParent(child Node) bool {
	return child.ParentHead().first != nil
}

// ListKind selects which of a Node's two edge lists an iteration walks.
type ListKind int

const (
	// ParentEdges walks the edges for which the Node is the Child.
	ParentEdges ListKind = iota
	// ChildEdges walks the edges for which the Node is the Parent.
	ChildEdges
)

// Walk calls visit once per edge in the selected list, in list order.
// Walk is safe against visit detaching the very edge it was just handed:
// the next pointer is cached before visit runs, making it safe to use for
// destruction cascades that mutate the list as they go.
func Walk(node Node, which ListKind, visit func(e *Edge)) {
	var cur *Edge
	if which == ParentEdges {
		cur = node.ParentHead().first
	} else {
		cur = node.ChildHead().first
	}

	for cur != nil {
		var next *Edge
		if which == ParentEdges {
			next = cur.childNext
		} else {
			next = cur.parentNext
		}
		visit(cur)
		cur = next
	}
}
