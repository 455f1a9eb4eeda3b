package heap

import "github.com/joshuapare/bootmem/internal/layout"

// Free returns the block at p to its region's ring, coalescing with adjacent
// free blocks. A null pointer is a no-op. An unaligned, out-of-range, or
// already-free pointer is fatal.
func (h *Heap) Free(p Ptr) {
	if p == nullPtr {
		return
	}
	r, b := h.lookup(p)
	h.stats.FreeCalls++
	h.stats.BytesFreed += int64(layout.Bytes(h.sizeOf(b)))

	h.setMagic(b, layout.FreeMagic)

	if r.first == nullPtr {
		// The region was exhausted; b re-founds the ring.
		h.setPrev(b, b)
		h.setNext(b, b)
		r.first = b
		if logAlloc {
			allocLogf("free %#x re-founds ring in region %#x", p, r.base)
		}
		return
	}

	// Splice b in at its address position. q ends up as the free block with
	// the greatest address below b, or as the highest block overall when b
	// becomes the new ring head.
	var q uint64
	if b < r.first {
		q = h.prevOf(r.first)
		h.insertAfter(q, b)
		r.first = b
	} else {
		q = r.first
		for next := h.nextOf(q); next != r.first && next < b; next = h.nextOf(q) {
			h.mustFree(next)
			q = next
		}
		h.insertAfter(q, b)
	}

	// Forward merge: absorb the successor when it starts exactly at b's end.
	next := h.nextOf(b)
	if next != b && b+layout.Bytes(h.sizeOf(b)) == next {
		h.setMagic(next, 0)
		h.setSize(b, h.sizeOf(b)+h.sizeOf(next))
		nn := h.nextOf(next)
		h.setNext(b, nn)
		h.setPrev(nn, b)
		h.stats.CoalesceForward++
	}

	// Backward merge: fold b into q when q ends exactly at b.
	if q != b && q < b && q+layout.Bytes(h.sizeOf(q)) == b {
		h.setMagic(b, 0)
		h.setSize(q, h.sizeOf(q)+h.sizeOf(b))
		nb := h.nextOf(b)
		h.setNext(q, nb)
		h.setPrev(nb, q)
		h.stats.CoalesceBackward++
	}
}
