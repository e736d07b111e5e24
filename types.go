// Package arbor implements a multi-reference hierarchical object
// allocator: a heap facade in which every allocated Object participates in
// a directed, possibly cyclic, graph of references from zero or more
// parent Objects. An Object lives as long as at least one parent
// references it; when its last parent reference is dropped, it is
// reclaimed, and reclamation cascades transitively to its children.
//
// The design is distilled from libnih's nih_alloc family (see
// DESIGN.md): allocate/ref/unref/set_destructor/free become Allocate/
// Ref/Unref/SetDestructor/Free, and the three-layer split (storage →
// reference graph → lifecycle) is carried through as three Go packages:
// storage, refgraph, and this one.
//
// Not a garbage collector: there is no tracing and no background work.
// Not safe for concurrent mutation of one object graph: neither this
// package nor refgraph synchronizes access to Object or Edge state.
package arbor

import (
	"github.com/katalvlaran/arbor/refgraph"
)

// Destructor is invoked exactly once during an Object's destruction, with
// the Object's payload, after its parent edges are removed and before its
// children are released and its storage freed. Its return value is surfaced by
// Free/Discard when the destructor runs directly on the call; objects
// reclaimed via cascade discard the return value.
type Destructor func(payload []byte) int

// state is the per-object lifecycle state machine: Live → Destroying →
// Released, with no transitions out of Destroying except to Released.
type state int

const (
	stateLive state = iota
	stateDestroying
	stateReleased
)

func (s state) String() string {
	switch s {
	case stateLive:
		return "live"
	case stateDestroying:
		return "destroying"
	case stateReleased:
		return "released"
	default:
		return "unknown"
	}
}

// Object is a single allocation: a payload plus the bookkeeping needed to
// know when it may be reclaimed. Its address is its identity — Resize
// replaces the payload slice in place but never the Object itself, so
// every Edge's Parent/Child pointer stays valid across a resize without
// the list-head repair libnih's realloc needs (see DESIGN.md's Open
// Question entry).
type Object struct {
	payload    []byte
	destructor Destructor
	state      state

	parents  refgraph.Head
	children refgraph.Head
}

// ParentHead and ChildHead satisfy refgraph.Node.
func (o *Object) ParentHead() *refgraph.Head { return &o.parents }
func (o *Object) ChildHead() *refgraph.Head  { return &o.children }

// Payload returns the Object's caller-addressable bytes. Reading or
// writing a payload after the Object has been released is a programmer
// error the allocator does not guard against.
func (o *Object) Payload() []byte { return o.payload }
