package heap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/bootmem/internal/layout"
)

// newTestHeap creates a heap over a fresh address space with no regions.
func newTestHeap(t testing.TB, size uint64) *Heap {
	t.Helper()
	return New(make([]byte, size), nil)
}

// singleRegion creates a heap whose whole address space is one region with
// the default policy table.
func singleRegion(t testing.TB, size uint64) *Heap {
	t.Helper()
	h := newTestHeap(t, size)
	h.AddRegion(0, size, DefaultPolicies())
	require.Len(t, h.regions, 1, "region should have been registered")
	return h
}

// blockMap walks region index and returns every block in address order.
func blockMap(t testing.TB, h *Heap, index int) []BlockInfo {
	t.Helper()
	var out []BlockInfo
	h.WalkRegion(index, func(b BlockInfo) bool {
		out = append(out, b)
		return true
	})
	return out
}

// requireFullyFree asserts region index holds exactly one free block covering
// its whole capacity.
func requireFullyFree(t testing.TB, h *Heap, index int) {
	t.Helper()
	r := h.regions[index]
	bm := blockMap(t, h, index)
	require.Len(t, bm, 1, "region should be a single block")
	require.True(t, bm[0].Free, "block should be free")
	require.Equal(t, r.capacityCells(), bm[0].Cells, "block should span the region")
	require.Equal(t, r.base, r.first, "ring head should be the region base")
}

// header returns the header offset for a payload address.
func header(p Ptr) uint64 {
	return p - layout.CellSize
}
