package heap_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/bootmem/heap"
	"github.com/joshuapare/bootmem/heap/verify"
)

// Test_Invariants_RandomWorkload drives a deterministic pseudo-random mix of
// allocate/release/resize against a multi-region heap, re-checking every
// structural invariant along the way, and finally releases everything and
// expects each region to collapse to a single full-capacity free block.
func Test_Invariants_RandomWorkload(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	mem := make([]byte, 1<<16)
	h := heap.New(mem, &heap.Hooks{
		ReportError: func(heap.ErrorKind, string) {}, // OOM under churn is fine
	})
	h.AddRegion(0, 1<<14, heap.DefaultPolicies())
	h.AddRegion(1<<14, 1<<15, heap.DefaultPolicies())
	h.AddRegion(3<<14, 1<<13, heap.DefaultPolicies())
	require.NoError(t, verify.AllInvariants(h))

	aligns := []uint64{0, 32, 64, 128, 256}
	var live []heap.Ptr
	for i := 0; i < 2000; i++ {
		switch op := rng.Intn(10); {
		case op < 5: // allocate
			size := uint64(rng.Intn(600))
			p := h.AllocAlign(aligns[rng.Intn(len(aligns))], size)
			if p != 0 {
				live = append(live, p)
			}
		case op < 8: // release
			if len(live) > 0 {
				i := rng.Intn(len(live))
				h.Free(live[i])
				live = append(live[:i], live[i+1:]...)
			}
		default: // resize
			if len(live) > 0 {
				i := rng.Intn(len(live))
				p := h.Realloc(live[i], uint64(1+rng.Intn(800)))
				if p != 0 {
					live[i] = p
				}
			}
		}
		if i%16 == 0 {
			require.NoError(t, verify.AllInvariants(h), "after op %d", i)
		}
	}
	require.NoError(t, verify.AllInvariants(h))

	// Stats conservation: live bytes per the counters must equal the live
	// bytes found by walking every block.
	s := h.Stats()
	var walked int64
	for i := range h.Regions() {
		h.WalkRegion(i, func(b heap.BlockInfo) bool {
			if !b.Free {
				walked += int64(b.Cells) * 32
			}
			return true
		})
	}
	require.Equal(t, s.BytesAllocated-s.BytesFreed, walked)

	for _, p := range live {
		h.Free(p)
	}
	require.NoError(t, verify.AllInvariants(h))

	for i, r := range h.Regions() {
		var blocks []heap.BlockInfo
		h.WalkRegion(i, func(b heap.BlockInfo) bool {
			blocks = append(blocks, b)
			return true
		})
		require.Len(t, blocks, 1, "region %d must collapse to one block", i)
		require.True(t, blocks[0].Free)
		require.Equal(t, r.Length, blocks[0].Cells*32)
	}
}

// Test_Invariants_AlignmentContract checks every pointer handed out honors
// the requested alignment.
func Test_Invariants_AlignmentContract(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	mem := make([]byte, 1<<15)
	h := heap.New(mem, nil)
	h.AddRegion(96, 1<<14, heap.DefaultPolicies())

	for i := 0; i < 200; i++ {
		align := uint64(1) << (5 + rng.Intn(5))
		p := h.AllocAlign(align, uint64(rng.Intn(256)))
		if p == 0 {
			break
		}
		require.Zerof(t, p%align, "pointer %#x not aligned to %d", p, align)
	}
	require.NoError(t, verify.AllInvariants(h))
}
