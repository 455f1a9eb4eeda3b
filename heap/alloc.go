package heap

import "github.com/joshuapare/bootmem/internal/layout"

// Alloc returns size bytes of storage aligned to the natural cell boundary,
// or the null address after out-of-memory has been reported. Equivalent to
// AllocAlign(0, size).
func (h *Heap) Alloc(size uint64) Ptr {
	return h.AllocPolicy(0, size, PolicyDefault)
}

// AllocAlign returns size bytes aligned to align, a power of two in bytes;
// zero means cell alignment. Uses the default policy.
func (h *Heap) AllocAlign(align, size uint64) Ptr {
	return h.AllocPolicy(align, size, PolicyDefault)
}

// AllocZeroed is Alloc with the payload cleared to zero.
func (h *Heap) AllocZeroed(size uint64) Ptr {
	p := h.Alloc(size)
	if p != nullPtr {
		clear(h.mem[p : p+size])
	}
	return p
}

// AllocPolicy is AllocAlign with a caller-selected policy index. Regions are
// tried in ascending length order, each with its own strategy for the
// policy; when every region declines, the pressure-relief hooks run in their
// fixed sequence with a full rescan after each.
func (h *Heap) AllocPolicy(align, size uint64, pol Policy) Ptr {
	if pol >= NumPolicies {
		h.fatal("policy %d out of range", pol)
	}
	if align != 0 && !layout.IsPowerOfTwo(align) {
		h.fatal("alignment %#x is not a power of two", align)
	}
	h.stats.AllocCalls++

	// Alignments at or below the cell size are satisfied by any header
	// position; larger ones are expressed in cells.
	alignCells := align >> layout.CellShift
	if alignCells == 0 {
		alignCells = 1
	}
	n := layout.Cells(size) + 1

	for attempt := 0; ; attempt++ {
		for _, r := range h.regions {
			strat := r.policies[pol]
			if strat == StrategySkip {
				continue
			}
			if p := h.allocateIn(r, alignCells, n, strat); p != nullPtr {
				if logAlloc {
					allocLogf("alloc n=%d align=%d policy=%s -> %#x", n, alignCells, pol, p)
				}
				return p
			}
		}
		switch attempt {
		case 0:
			h.relief(h.hooks.DropDiskCaches)
		case 1:
			h.relief(h.hooks.UnloadModules)
		default:
			h.reportError(KindOutOfMemory, "out of memory")
			return nullPtr
		}
	}
}

// relief runs one pressure-relief stage. The hook may re-enter the allocator
// through Free; that is safe because no allocation is in flight here.
func (h *Heap) relief(hook func()) {
	h.stats.ReliefRounds++
	if hook != nil {
		hook()
	}
}

// allocateIn scans one region's ring for a block that can hold n cells with
// the payload aligned to alignCells, using the given strategy. Returns the
// payload address or null when the region declines.
func (h *Heap) allocateIn(r *region, alignCells, n uint64, strat Strategy) Ptr {
	if r.first == nullPtr {
		return nullPtr
	}

	var b, last uint64
	backward := false
	switch strat {
	case StrategyFirst:
		b, last = r.first, h.prevOf(r.first)
	case StrategySecond:
		b, last = h.nextOf(r.first), r.first
	case StrategyLast:
		b, last = h.prevOf(r.first), r.first
		backward = true
	default:
		return nullPtr
	}

	for {
		h.mustFree(b)
		size := h.sizeOf(b)

		// Cells wasted in front of the header to bring the payload (one
		// cell past the header) onto an alignCells boundary.
		wasted := uint64(0)
		if rem := ((b >> layout.CellShift) + 1) % alignCells; rem != 0 {
			wasted = alignCells - rem
		}

		if size >= n+wasted {
			want := n + wasted
			if strat == StrategyLast {
				// Push the payload to the highest aligned position that
				// still fits.
				want += (size - want) / alignCells * alignCells
			}
			return h.carve(r, b, want, n)
		}

		if b == last {
			return nullPtr
		}
		if backward {
			b = h.prevOf(b)
		} else {
			b = h.nextOf(b)
		}
	}
}

// carve takes n cells out of the free block at b such that the allocated
// header lands want-n cells into the block. The cells below the allocation
// stay with b (keeping its ring links); cells above it become a new free
// block spliced in after b. Returns the payload address.
func (h *Heap) carve(r *region, b, want, n uint64) Ptr {
	size := h.sizeOf(b)
	head := want - n
	tail := size - want

	var a uint64
	switch {
	case head == 0 && tail == 0:
		// Exact fit: the whole block leaves the ring.
		h.unlink(r, b)
		a = b
	case head == 0:
		// Allocation at the bottom; the remainder above takes b's slot.
		nb := b + layout.Bytes(n)
		h.setSize(nb, tail)
		h.setMagic(nb, layout.FreeMagic)
		h.replaceNode(r, b, nb)
		a = b
	case tail == 0:
		// Allocation at the top; b shrinks in place, links untouched.
		h.setSize(b, head)
		a = b + layout.Bytes(head)
	default:
		// Allocation in the middle; b shrinks and the tail is re-inserted
		// right after it, preserving address order.
		h.setSize(b, head)
		a = b + layout.Bytes(head)
		nb := a + layout.Bytes(n)
		h.setSize(nb, tail)
		h.setMagic(nb, layout.FreeMagic)
		h.insertAfter(b, nb)
	}
	if head != 0 || tail != 0 {
		h.stats.SplitCount++
	}

	h.setSize(a, n)
	h.setMagic(a, layout.AllocMagic)
	h.stats.BytesAllocated += int64(layout.Bytes(n))
	return a + layout.CellSize
}
