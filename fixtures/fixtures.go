// Package fixtures builds ready-made arbor.Object graphs for tests,
// benchmarks, and the arborbench command, the way this lineage's builder
// package assembles ready-made core.Graph topologies. Every constructor
// here is deterministic given its integer parameters: no randomness, no
// hidden state, same input always produces a structurally identical graph.
package fixtures

import (
	"fmt"

	"github.com/katalvlaran/arbor"
	"github.com/katalvlaran/arbor/refgraph"
)

// File-local tags identify which constructor produced an error, mirroring
// this lineage's per-method error-context convention.
const (
	methodChain     = "Chain"
	methodCycle     = "Cycle"
	methodStar      = "Star"
	methodComplete  = "Complete"
	methodBipartite = "Bipartite"
)

// Chain builds n objects linked root -> obj1 -> obj2 -> ... -> objN-1, each
// object the sole parent of the next, and returns the root. n must be >= 1.
func Chain(n int) (*arbor.Object, error) {
	if n < 1 {
		return nil, fmt.Errorf("%s: n=%d < 1: %w", methodChain, n, ErrTooFewObjects)
	}

	root, err := arbor.Allocate(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodChain, err)
	}

	prev := root
	for i := 1; i < n; i++ {
		next, err := arbor.Allocate(prev, 0)
		if err != nil {
			return nil, fmt.Errorf("%s: object %d: %w", methodChain, i, err)
		}
		prev = next
	}

	return root, nil
}

// Cycle builds n objects in a ring, root -> obj1 -> ... -> objN-1 -> root,
// each holding exactly one parent edge. n must be >= 2, since a 1-object
// ring would just be self-referential via a second edge rather than a
// cycle of distinct objects.
func Cycle(n int) (*arbor.Object, error) {
	if n < 2 {
		return nil, fmt.Errorf("%s: n=%d < 2: %w", methodCycle, n, ErrTooFewObjects)
	}

	root, err := Chain(n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodCycle, err)
	}

	// Chain guarantees exactly one child per non-terminal object, so
	// following the single child edge n-1 times reaches the tail.
	tail := root
	for i := 1; i < n; i++ {
		children := directChildren(tail)
		if len(children) == 0 {
			break
		}
		tail = children[0]
	}
	arbor.Ref(root, tail)

	return root, nil
}

// Star builds a hub object and n-1 leaves, each leaf a direct child of the
// hub, and returns the hub. n must be >= 2.
func Star(n int) (*arbor.Object, error) {
	if n < 2 {
		return nil, fmt.Errorf("%s: n=%d < 2: %w", methodStar, n, ErrTooFewObjects)
	}

	hub, err := arbor.Allocate(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodStar, err)
	}

	for i := 1; i < n; i++ {
		if _, err := arbor.Allocate(hub, 0); err != nil {
			return nil, fmt.Errorf("%s: leaf %d: %w", methodStar, i, err)
		}
	}

	return hub, nil
}

// Complete builds n objects where every object is a parent of every other
// object, returning the first. n must be >= 2. EdgeCount for the resulting
// graph, as seen by diagnostics.Analyze, is n*(n-1).
func Complete(n int) (*arbor.Object, error) {
	if n < 2 {
		return nil, fmt.Errorf("%s: n=%d < 2: %w", methodComplete, n, ErrTooFewObjects)
	}

	objs := make([]*arbor.Object, n)
	for i := range objs {
		obj, err := arbor.Allocate(nil, 0)
		if err != nil {
			return nil, fmt.Errorf("%s: object %d: %w", methodComplete, i, err)
		}
		objs[i] = obj
	}

	for i := range objs {
		for j := range objs {
			if i == j {
				continue
			}
			arbor.Ref(objs[j], objs[i])
		}
	}

	return objs[0], nil
}

// Bipartite builds a rootless left set of size a and a right set of size
// b, with every left object a parent of every right object, and returns
// the first left object. a and b must each be >= 1.
func Bipartite(a, b int) (*arbor.Object, error) {
	if a < 1 || b < 1 {
		return nil, fmt.Errorf("%s: a=%d b=%d, both must be >= 1: %w", methodBipartite, a, b, ErrTooFewObjects)
	}

	left := make([]*arbor.Object, a)
	for i := range left {
		obj, err := arbor.Allocate(nil, 0)
		if err != nil {
			return nil, fmt.Errorf("%s: left %d: %w", methodBipartite, i, err)
		}
		left[i] = obj
	}

	right := make([]*arbor.Object, b)
	for i := range right {
		obj, err := arbor.Allocate(nil, 0)
		if err != nil {
			return nil, fmt.Errorf("%s: right %d: %w", methodBipartite, i, err)
		}
		right[i] = obj
	}

	for _, l := range left {
		for _, r := range right {
			arbor.Ref(r, l)
		}
	}

	return left[0], nil
}

// directChildren returns obj's immediate children via a one-hop refgraph
// walk, used internally by Cycle to locate the chain's tail without
// pulling in the diagnostics package's BFS machinery for a single hop.
func directChildren(obj *arbor.Object) []*arbor.Object {
	var out []*arbor.Object
	refgraph.Walk(obj, refgraph.ChildEdges, func(e *refgraph.Edge) {
		out = append(out, e.Child.(*arbor.Object))
	})

	return out
}
