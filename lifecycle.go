package arbor

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/katalvlaran/arbor/refgraph"
	"github.com/katalvlaran/arbor/storage"
)

// Allocate creates a new Object of size bytes. If parent is non-nil, the
// new Object is born with exactly one parent edge from it; otherwise it is
// born rootless. Allocate returns (nil, error) if the storage layer cannot
// satisfy the request, with no graph side effects.
func Allocate(parent *Object, size int) (*Object, error) {
	buf, err := storage.Alloc(size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageExhausted, err)
	}

	obj := &Object{payload: buf}
	if parent != nil {
		refgraph.Attach(parent, obj)
	}

	return obj, nil
}

// Resize grows or shrinks obj's payload to size bytes in place, preserving
// every edge to and from obj. If obj is nil, Resize is equivalent to
// Allocate(parent, size) and parent is honored; otherwise parent is
// ignored (it exists only so call sites can keep writing
// "x = arbor.Resize(x, parent, n)" uniformly). On storage failure, Resize
// returns (nil, error) and leaves obj and its edges completely unchanged.
func Resize(obj *Object, parent *Object, size int) (*Object, error) {
	if obj == nil {
		return Allocate(parent, size)
	}

	grown, err := storage.Realloc(obj.payload, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageExhausted, err)
	}

	// obj's address never changes, so every Edge's Parent/Child pointer
	// into it is already correct; only the payload slice is replaced.
	obj.payload = grown

	return obj, nil
}

// Free unconditionally destroys obj, regardless of incoming references,
// and returns its destructor's return value or 0.
func Free(obj *Object) int {
	if obj == nil {
		fatalf("Free", "called with a nil object")
	}

	return destroy(obj)
}

// Discard destroys obj only if it is currently rootless; otherwise it is a
// no-op returning 0. Used for objects that were allocated rootless and may
// since have been adopted by a callee.
func Discard(obj *Object) int {
	if obj == nil {
		fatalf("Discard", "called with a nil object")
	}
	if refgraph.AnyParent(obj) {
		return 0
	}

	return destroy(obj)
}

// DiscardLocal is the scoped-release helper: given the address of a
// variable holding an *Object (or nil), it discards whatever the variable
// currently holds. Idiomatic Go call sites prefer
// "defer arbor.DiscardLocal(&slot)" over the C original's take-the-
// address-of-a-local pattern.
func DiscardLocal(slot **Object) {
	if slot == nil {
		fatalf("DiscardLocal", "called with a nil slot address")
	}
	if *slot != nil {
		Discard(*slot)
	}
}

// Ref attaches one additional parent edge from parent to obj. Both
// arguments must be non-nil.
func Ref(obj, parent *Object) {
	if obj == nil || parent == nil {
		fatalf("Ref", "obj and parent must both be non-nil")
	}

	refgraph.Attach(parent, obj)
}

// Unref removes exactly one edge from parent to obj, destroying obj if
// that was its last parent. Absence of any such edge is a programmer
// error and is fatal.
func Unref(obj, parent *Object) {
	if obj == nil || parent == nil {
		fatalf("Unref", "obj and parent must both be non-nil")
	}

	e := refgraph.Find(parent, obj)
	if e == nil {
		fatalf("Unref", "no edge from the given parent to obj")
	}

	refgraph.Detach(e, true, func(child refgraph.Node) {
		destroy(child.(*Object))
	})
}

// HasParent reports whether obj has a parent edge from parent. If parent
// is nil, it reports whether obj has any parent at all.
func HasParent(obj *Object, parent *Object) bool {
	if obj == nil {
		fatalf("HasParent", "called with a nil object")
	}
	if parent == nil {
		return refgraph.AnyParent(obj)
	}

	return refgraph.Find(parent, obj) != nil
}

// SetDestructor replaces obj's destructor slot. Idempotent; passing nil
// clears any existing destructor.
func SetDestructor(obj *Object, d Destructor) {
	if obj == nil {
		fatalf("SetDestructor", "called with a nil object")
	}

	obj.destructor = d
}

// SizeOf returns obj's usable payload length, which may exceed the size
// originally requested at Allocate/Resize time.
func SizeOf(obj *Object) int {
	if obj == nil {
		fatalf("SizeOf", "called with a nil object")
	}

	return storage.SizeOf(obj.payload)
}

// destroy implements the destruction protocol:
//  1. detach all incoming parent edges without cascading — this both
//     presents the destructor with a parentless object and severs any
//     reference cycle passing through obj before any cascade can revive it;
//  2. invoke the destructor, if any, recording its return value;
//  3. detach all outgoing child edges with cascade=true, recursively
//     destroying every child whose last parent was obj;
//  4. release the underlying storage.
//
// Destruction is non-reentrant on a single Object by construction: step 1
// already cleared obj's parents before any user code (the destructor) runs,
// so nothing downstream can cause obj to be destroyed a second time through
// the normal call paths. A destructor that manually calls Free(obj) on its
// own payload is misuse not guarded against here — that discipline is the
// caller's responsibility, not the allocator's.
func destroy(obj *Object) int {
	obj.state = stateDestroying

	refgraph.Walk(obj, refgraph.ParentEdges, func(e *refgraph.Edge) {
		refgraph.Detach(e, false, nil)
	})

	var ret int
	if obj.destructor != nil {
		ret = obj.destructor(obj.payload)
	}

	var childCount int
	refgraph.Walk(obj, refgraph.ChildEdges, func(e *refgraph.Edge) {
		childCount++
		refgraph.Detach(e, true, func(child refgraph.Node) {
			destroy(child.(*Object))
		})
	})

	storage.Free(obj.payload)
	obj.payload = nil
	obj.state = stateReleased

	log.WithFields(log.Fields{
		"component":    "arbor",
		"had_children": childCount,
	}).Debug("object destroyed")

	return ret
}
