package diagnostics_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/arbor"
	"github.com/katalvlaran/arbor/diagnostics"
)

func TestAnalyze_Chain(t *testing.T) {
	root, err := arbor.Allocate(nil, 1)
	require.NoError(t, err)
	prev := root
	for i := 0; i < 4; i++ {
		child, err := arbor.Allocate(prev, 1)
		require.NoError(t, err)
		prev = child
	}

	st := diagnostics.Analyze(root)
	assert.Equal(t, 5, st.ObjectCount)
	assert.Equal(t, 4, st.EdgeCount)
	assert.Equal(t, 4, st.MaxDepth)
	assert.Len(t, st.Orphans, 1, "only the root has no incoming edge")
}

func TestAnalyze_DiamondCountsObjectOnceEdgesTwice(t *testing.T) {
	root, err := arbor.Allocate(nil, 1)
	require.NoError(t, err)
	left, err := arbor.Allocate(root, 1)
	require.NoError(t, err)
	right, err := arbor.Allocate(root, 1)
	require.NoError(t, err)
	bottom, err := arbor.Allocate(left, 1)
	require.NoError(t, err)
	arbor.Ref(bottom, right)

	st := diagnostics.Analyze(root)
	assert.Equal(t, 4, st.ObjectCount)
	assert.Equal(t, 4, st.EdgeCount)
}

// ptrLabel gives each object a deterministic, comparable label so go-cmp
// can diff sets of *arbor.Object without relying on pointer-value ordering.
func ptrLabel(o *arbor.Object) string {
	return fmt.Sprintf("%p", o)
}

func TestReachable_VisitsEachObjectOnce(t *testing.T) {
	root, err := arbor.Allocate(nil, 1)
	require.NoError(t, err)
	a, err := arbor.Allocate(root, 1)
	require.NoError(t, err)
	b, err := arbor.Allocate(root, 1)
	require.NoError(t, err)

	// cmp.Diff must never descend into *arbor.Object itself — it carries
	// only unexported fields and no Equal method, so comparing the labels
	// derived from each pointer keeps go-cmp off the struct entirely.
	want := []string{ptrLabel(root), ptrLabel(a), ptrLabel(b)}
	var got []string
	for _, obj := range diagnostics.Reachable(root) {
		got = append(got, ptrLabel(obj))
	}

	if diff := cmp.Diff(want, got, cmpopts.SortSlices(func(x, y string) bool { return x < y })); diff != "" {
		t.Fatalf("reachable set mismatch (-want +got):\n%s", diff)
	}
}

func TestReachable_NilRoot(t *testing.T) {
	assert.Nil(t, diagnostics.Reachable(nil))
}

func TestDump_IncludesEveryObjectAndMarksCycles(t *testing.T) {
	a, err := arbor.Allocate(nil, 1)
	require.NoError(t, err)
	b, err := arbor.Allocate(a, 1)
	require.NoError(t, err)
	arbor.Ref(a, b) // a -> b -> a cycle

	out := diagnostics.Dump(a)
	assert.Contains(t, out, "(seen)")
}
