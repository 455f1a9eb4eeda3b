package heap

import "github.com/joshuapare/bootmem/internal/layout"

// Realloc resizes the block at p to size bytes. A null p is Alloc(size); a
// zero size is Free(p) returning null. Shrinking is bookkeeping-only: the
// block keeps its cells until released. Growing extends in place when the
// immediately following cells are a large-enough free block, and otherwise
// relocates under the default policy, copying the payload and releasing the
// original. A failed relocation returns null and leaves the original intact.
func (h *Heap) Realloc(p Ptr, size uint64) Ptr {
	if p == nullPtr {
		return h.Alloc(size)
	}
	if size == 0 {
		h.Free(p)
		return nullPtr
	}

	r, b := h.lookup(p)
	h.stats.ResizeCalls++
	n := layout.Cells(size) + 1
	have := h.sizeOf(b)

	if have >= n {
		// Shrink or same size: the trailing cells stay wasted until release.
		return p
	}

	// In-place grow: split the free successor at the needed boundary and
	// absorb the lower part.
	succ := b + layout.Bytes(have)
	if succ < r.end() {
		switch m := h.magicOf(succ); m {
		case layout.FreeMagic:
			succSize := h.sizeOf(succ)
			if have+succSize >= n {
				needed := n - have
				if succSize == needed {
					h.unlink(r, succ)
				} else {
					nb := succ + layout.Bytes(needed)
					h.setSize(nb, succSize-needed)
					h.setMagic(nb, layout.FreeMagic)
					h.replaceNode(r, succ, nb)
				}
				h.setMagic(succ, 0)
				h.setSize(b, n)
				h.stats.BytesAllocated += int64(layout.Bytes(needed))
				return p
			}
		case layout.AllocMagic:
			// Successor is live; fall through to relocation.
		default:
			h.fatal("magic broken at %#x: %#x", succ, m)
		}
	}

	// Relocate: the new block is taken before the old one is released, so a
	// failure leaves the original untouched.
	np := h.Alloc(size)
	if np == nullPtr {
		return nullPtr
	}
	old := layout.Bytes(have - 1)
	if old > size {
		old = size
	}
	copy(h.mem[np:np+old], h.mem[p:p+old])
	h.Free(p)
	return np
}
