package heap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/bootmem/internal/layout"
)

func Test_Alloc_Basic(t *testing.T) {
	h := singleRegion(t, 4096)

	p := h.Alloc(16)
	require.NotZero(t, p)
	require.Zero(t, p%layout.CellSize, "payload must be cell-aligned")
	require.Equal(t, uint64(2), h.sizeOf(header(p)), "16 bytes need one payload cell plus header")
	require.Equal(t, layout.AllocMagic, h.magicOf(header(p)))

	// The payload is usable without touching neighboring metadata.
	copy(h.Bytes()[p:p+16], []byte("0123456789abcdef"))
	require.Equal(t, layout.AllocMagic, h.magicOf(header(p)))
}

// Test_Alloc_SecondFitBias verifies the default strategy: with two free
// blocks on the ring, an allocation is served from the second one, never
// biasing toward the lowest address.
func Test_Alloc_SecondFitBias(t *testing.T) {
	h := singleRegion(t, 4096)

	p1 := h.Alloc(16)
	p2 := h.Alloc(16)
	p3 := h.Alloc(16)
	p4 := h.Alloc(16)
	require.NotZero(t, p1)
	require.NotZero(t, p3)

	h.Free(p2)
	h.Free(p4)
	require.Len(t, h.FreeRing(0), 2)

	// The scan starts past the ring head, so the hole left by p4 wins.
	p := h.Alloc(16)
	require.Equal(t, p4, p)

	// The hole left by p2 is still intact.
	require.Equal(t, layout.FreeMagic, h.magicOf(header(p2)))
}

func Test_Alloc_FirstFit(t *testing.T) {
	h := newTestHeap(t, 4096)
	h.AddRegion(0, 4096, PolicyTable{PolicyDefault: StrategyFirst, PolicyLowMem: StrategySkip})

	p1 := h.Alloc(16)
	p2 := h.Alloc(16)
	h.Alloc(16)
	p4 := h.Alloc(16)
	_ = p1

	h.Free(p2)
	h.Free(p4)

	// First-fit serves from the ring head: the hole left by p2.
	require.Equal(t, p2, h.Alloc(16))
}

func Test_Alloc_LastFit(t *testing.T) {
	h := newTestHeap(t, 4096)
	h.AddRegion(0, 4096, PolicyTable{PolicyDefault: StrategyLast, PolicyLowMem: StrategySkip})
	r := h.regions[0]

	// Last-fit pushes the payload to the top of the region: the block's
	// single payload cell ends flush with the region end.
	p := h.Alloc(16)
	require.Equal(t, r.end()-layout.CellSize, p)
}

// Test_AllocAlign_FrontSliver registers a region whose free block starts on
// an odd cell, so a 64-byte-aligned allocation must leave a one-cell free
// sliver in front of the allocated block.
func Test_AllocAlign_FrontSliver(t *testing.T) {
	h := newTestHeap(t, 4096)
	h.AddRegion(layout.CellSize, 1024, DefaultPolicies())

	p := h.AllocAlign(64, 16)
	require.NotZero(t, p)
	require.Zero(t, p%64)

	bm := blockMap(t, h, 0)
	require.Len(t, bm, 3)
	require.True(t, bm[0].Free, "front sliver must be a valid free block")
	require.Equal(t, uint64(1), bm[0].Cells)
	require.False(t, bm[1].Free)
	require.Equal(t, header(p), bm[1].Addr)
	require.True(t, bm[2].Free)

	// The sliver is on the ring and adjacent to the allocation.
	ring := h.FreeRing(0)
	require.Equal(t, bm[0].Addr, ring[0])
	require.Equal(t, bm[1].Addr, bm[0].Addr+layout.Bytes(bm[0].Cells))
}

func Test_AllocAlign_CellAlignmentNeverSplitsFront(t *testing.T) {
	h := singleRegion(t, 4096)

	p := h.AllocAlign(layout.CellSize, 16)
	require.NotZero(t, p)

	bm := blockMap(t, h, 0)
	require.False(t, bm[0].Free, "no front sliver for cell-sized alignment")
	require.Equal(t, header(p), bm[0].Addr)
}

func Test_AllocAlign_NonPowerOfTwo(t *testing.T) {
	h := singleRegion(t, 4096)
	require.Panics(t, func() {
		h.AllocAlign(48, 16)
	})
}

func Test_Alloc_ZeroSize(t *testing.T) {
	h := singleRegion(t, 4096)

	p := h.Alloc(0)
	require.NotZero(t, p, "zero-size requests still return a distinct block")
	require.Equal(t, uint64(1), h.sizeOf(header(p)), "header-only block")

	q := h.Alloc(0)
	require.NotZero(t, q)
	require.NotEqual(t, p, q)

	h.Free(p)
	h.Free(q)
	requireFullyFree(t, h, 0)
}

func Test_AllocZeroed(t *testing.T) {
	h := singleRegion(t, 4096)

	p := h.Alloc(64)
	for i := range h.Bytes()[p : p+64] {
		h.Bytes()[p+uint64(i)] = 0xff
	}
	h.Free(p)

	q := h.AllocZeroed(64)
	require.Equal(t, p, q, "the dirtied block is reused")
	for _, b := range h.Bytes()[q : q+64] {
		require.Zero(t, b)
	}
}

func Test_Alloc_TooLargeReportsOOM(t *testing.T) {
	var kinds []ErrorKind
	mem := make([]byte, 4096)
	h := New(mem, &Hooks{
		ReportError: func(kind ErrorKind, msg string) {
			kinds = append(kinds, kind)
			require.Equal(t, "out of memory", msg)
		},
	})
	h.AddRegion(0, 4096, DefaultPolicies())

	p := h.Alloc(1 << 20)
	require.Zero(t, p)
	require.Equal(t, []ErrorKind{KindOutOfMemory}, kinds)
	require.Equal(t, 2, h.Stats().ReliefRounds, "both relief stages ran before giving up")

	// The heap is still consistent and serviceable.
	q := h.Alloc(64)
	require.NotZero(t, q)
}

func Test_Alloc_MultiRegionFallback(t *testing.T) {
	h := newTestHeap(t, 1<<14)
	h.AddRegion(0, 512, DefaultPolicies())
	h.AddRegion(512, 8192, DefaultPolicies())

	// Larger than the small region's capacity: must come from the big one.
	p := h.Alloc(2048)
	require.NotZero(t, p)
	require.Greater(t, p, uint64(512))
}
