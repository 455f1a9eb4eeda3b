package heap

import "github.com/joshuapare/bootmem/internal/layout"

// Diagnostic views over the heap. The walkers perform the same corruption
// checks as the allocation paths, so dumping a damaged heap faults the same
// way using it would.

// RegionInfo describes one registered region.
type RegionInfo struct {
	Record   uint64 // offset of the region record slab
	Base     uint64 // start of the usable area
	Length   uint64 // usable bytes
	First    Ptr    // ring head; zero when the region is exhausted
	Policies PolicyTable
}

// BlockInfo describes one block encountered during a region walk.
type BlockInfo struct {
	Addr  uint64 // header offset
	Cells uint64 // size including the header cell
	Free  bool
}

// Regions returns the registered regions in list (ascending length) order.
func (h *Heap) Regions() []RegionInfo {
	out := make([]RegionInfo, len(h.regions))
	for i, r := range h.regions {
		out[i] = RegionInfo{
			Record:   r.record,
			Base:     r.base,
			Length:   r.length,
			First:    r.first,
			Policies: r.policies,
		}
	}
	return out
}

// WalkRegion visits every block of region index in address order, validating
// each header's magic. The walk is fatal on corruption, including a walk
// that does not land exactly on the region's end. fn returning false stops
// early.
func (h *Heap) WalkRegion(index int, fn func(BlockInfo) bool) {
	r := h.regions[index]
	for b := r.base; b != r.end(); {
		if b > r.end() {
			h.fatal("block walk overran region %#x at %#x", r.base, b)
		}
		var free bool
		switch m := h.magicOf(b); m {
		case layout.FreeMagic:
			free = true
		case layout.AllocMagic:
			free = false
		default:
			h.fatal("magic broken at %#x: %#x", b, m)
		}
		size := h.sizeOf(b)
		if size == 0 {
			h.fatal("zero-size block at %#x", b)
		}
		if !fn(BlockInfo{Addr: b, Cells: size, Free: free}) {
			return
		}
		b += layout.Bytes(size)
	}
}

// FreeRing returns the free-ring addresses of region index starting at the
// ring head, or nil when the region is exhausted. Each visited header is
// validated; a ring longer than the region's capacity is fatal.
func (h *Heap) FreeRing(index int) []Ptr {
	r := h.regions[index]
	if r.first == nullPtr {
		return nil
	}
	var out []Ptr
	limit := r.capacityCells()
	for b := r.first; ; {
		h.mustFree(b)
		out = append(out, b)
		if uint64(len(out)) > limit {
			h.fatal("free ring in region %#x does not close", r.base)
		}
		b = h.nextOf(b)
		if b == r.first {
			return out
		}
	}
}

// FreeBytes returns the total free payload-capable bytes and the largest
// free block, in bytes, across all regions.
func (h *Heap) FreeBytes() (total, largest uint64) {
	for i := range h.regions {
		h.WalkRegion(i, func(b BlockInfo) bool {
			if b.Free {
				sz := layout.Bytes(b.Cells)
				total += sz
				if sz > largest {
					largest = sz
				}
			}
			return true
		})
	}
	return total, largest
}
