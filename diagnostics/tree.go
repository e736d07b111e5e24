package diagnostics

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/arbor"
	"github.com/katalvlaran/arbor/refgraph"
)

// Dump renders root's child-edge tree as indented text, one line per
// object, using the object's pointer identity as a label since arbor
// objects carry no user-visible name. Cycles are broken by printing
// "(seen)" the second time an object is visited rather than recursing
// forever — the allocator itself never needs this (destroy() terminates
// via parent-edge severing, see DESIGN.md), but a debugging dump walks a
// live, not-yet-destroyed graph where cycles are still intact.
func Dump(root *arbor.Object) string {
	var b strings.Builder
	dump(&b, root, "", map[*arbor.Object]bool{})

	return b.String()
}

func dump(b *strings.Builder, obj *arbor.Object, prefix string, seen map[*arbor.Object]bool) {
	fmt.Fprintf(b, "%s%p (size=%d)", prefix, obj, arbor.SizeOf(obj))
	if seen[obj] {
		b.WriteString(" (seen)\n")
		return
	}
	b.WriteString("\n")
	seen[obj] = true

	refgraph.Walk(obj, refgraph.ChildEdges, func(e *refgraph.Edge) {
		dump(b, e.Child.(*arbor.Object), prefix+"  ", seen)
	})
}
