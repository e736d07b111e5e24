// Package diagnostics provides read-only introspection over an
// arbor.Object's reference graph: reachability, orphan detection, and
// object/edge-count and depth statistics. Nothing here mutates the graph or influences
// reclamation — it exists purely to make an allocator graph observable in
// tests, benchmarks, and the cmd/arborbench report, the way this
// lineage's bfs/dfs packages make a labeled core.Graph observable.
package diagnostics

import (
	log "github.com/sirupsen/logrus"

	"github.com/katalvlaran/arbor"
	"github.com/katalvlaran/arbor/refgraph"
)

// Stats summarizes a reachability walk rooted at one object.
type Stats struct {
	// ObjectCount is the number of distinct objects reached, including
	// the root.
	ObjectCount int
	// EdgeCount is the number of child edges traversed (duplicates
	// between the same pair counted separately, matching refgraph's
	// multi-edge model).
	EdgeCount int
	// MaxDepth is the longest root-to-object distance observed.
	MaxDepth int
	// Orphans lists objects reachable from root whose own parent list is
	// empty — i.e., objects the walk found but which have no recorded
	// incoming edge at all. In a well-formed graph built entirely through
	// Allocate/Ref this holds at most the root (and is empty when root
	// itself has a parent, as in a cycle); an orphan other than the root
	// would indicate the graph was
	// assembled by means diagnostics cannot see into (never possible
	// through arbor's own public surface, but useful as an assertion in
	// fixtures-driven tests).
	Orphans []*arbor.Object
}

// Reachable returns every object reachable from root by following child
// edges, in breadth-first order, each object appearing once regardless of
// how many parallel or repeated paths reach it.
func Reachable(root *arbor.Object) []*arbor.Object {
	if root == nil {
		return nil
	}

	visited := map[*arbor.Object]bool{root: true}
	order := []*arbor.Object{root}
	queue := []*arbor.Object{root}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		refgraph.Walk(cur, refgraph.ChildEdges, func(e *refgraph.Edge) {
			child := e.Child.(*arbor.Object)
			if visited[child] {
				return
			}
			visited[child] = true
			order = append(order, child)
			queue = append(queue, child)
		})
	}

	return order
}

// Analyze performs a single breadth-first pass over root's reference
// graph and returns aggregate Stats. Complexity is O(V+E) in the size of
// the reachable subgraph.
func Analyze(root *arbor.Object) Stats {
	var st Stats
	if root == nil {
		return st
	}

	type frame struct {
		obj   *arbor.Object
		depth int
	}

	visited := map[*arbor.Object]bool{root: true}
	queue := []frame{{root, 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		st.ObjectCount++
		if cur.depth > st.MaxDepth {
			st.MaxDepth = cur.depth
		}
		if !refgraph.AnyParent(cur.obj) {
			st.Orphans = append(st.Orphans, cur.obj)
		}

		refgraph.Walk(cur.obj, refgraph.ChildEdges, func(e *refgraph.Edge) {
			st.EdgeCount++
			child := e.Child.(*arbor.Object)
			if visited[child] {
				return
			}
			visited[child] = true
			queue = append(queue, frame{child, cur.depth + 1})
		})
	}

	log.WithFields(log.Fields{
		"component": "diagnostics",
		"objects":   st.ObjectCount,
		"edges":     st.EdgeCount,
		"max_depth": st.MaxDepth,
	}).Debug("reference graph analyzed")

	return st
}
