package main

import (
	"fmt"

	"github.com/joshuapare/bootmem/heap"
	"github.com/joshuapare/bootmem/internal/sysmem"
)

// buildHeap hosts an arena, registers the configured number of regions of
// varying sizes inside it, and returns the heap with the arena's release
// function.
func buildHeap() (*heap.Heap, func() error, error) {
	if regions < 1 {
		return nil, nil, fmt.Errorf("need at least one region, got %d", regions)
	}
	arena, err := sysmem.Alloc(int(arenaSize))
	if err != nil {
		return nil, nil, err
	}
	h := heap.New(arena.Bytes(), nil)

	// Carve the arena into regions of growing size so the sorted region
	// list has something to sort: region i+1 is twice region i, the last
	// one takes whatever is left.
	slice := arenaSize / uint64(1<<regions)
	addr := uint64(0)
	for i := 0; i < regions; i++ {
		size := slice << uint(i)
		if i == regions-1 {
			size = arenaSize - addr
		}
		h.AddRegion(addr, size, heap.DefaultPolicies())
		addr += size
	}
	return h, arena.Release, nil
}

// runWorkload performs a deterministic allocate/resize/release mix so dumps
// and stats have something to show: a pattern of mixed sizes, every third
// block released, one in four survivors grown in place or relocated.
func runWorkload(h *heap.Heap, ops int) (live []heap.Ptr) {
	sizes := []uint64{16, 48, 96, 200, 512, 40, 24, 1024}
	for i := 0; i < ops; i++ {
		p := h.Alloc(sizes[i%len(sizes)])
		if p == 0 {
			break
		}
		live = append(live, p)
		if i%3 == 2 {
			h.Free(live[len(live)/2])
			live = append(live[:len(live)/2], live[len(live)/2+1:]...)
		}
		if i%4 == 3 && len(live) > 0 {
			grown := h.Realloc(live[len(live)-1], sizes[i%len(sizes)]*2)
			if grown != 0 {
				live[len(live)-1] = grown
			}
		}
	}
	return live
}
