package heap

import "github.com/joshuapare/bootmem/internal/layout"

// region is the live bookkeeping for one registered memory range. The ring
// head is held here explicitly rather than in-band; the record slab stamped
// at the region's start only mirrors the registered geometry for the
// verifier.
type region struct {
	first    uint64 // lowest-addressed free header; nullPtr when exhausted
	record   uint64 // cell-aligned offset of the region record slab
	base     uint64 // start of the usable area, one record slab past record
	length   uint64 // usable bytes, a whole number of cells
	policies PolicyTable
}

func (r *region) end() uint64 {
	return r.base + r.length
}

func (r *region) capacityCells() uint64 {
	return r.length >> layout.CellShift
}

// AddRegion registers the byte range [addr, addr+size) with the heap.
// Regions too small to host the record slab, a header, and a payload cell
// are silently ignored. The start is rounded up to a cell boundary, the
// record slab is reserved and stamped, and the remainder becomes a single
// free block forming the region's ring. Regions are kept sorted ascending by
// usable length so small regions are exhausted before large ones; ties keep
// insertion order.
func (h *Heap) AddRegion(addr, size uint64, policies PolicyTable) {
	if size < layout.MinRegionSize {
		return
	}
	if addr+size > uint64(len(h.mem)) || addr+size < addr {
		h.fatal("region %#x+%#x outside address space", addr, size)
	}

	rec := layout.AlignUpCell(addr)
	pad := rec - addr
	if pad+layout.RegionRecordSize >= size {
		return
	}
	base := rec + layout.RegionRecordSize
	cells := (size - pad - layout.RegionRecordSize) >> layout.CellShift
	if cells < 2 {
		return
	}

	r := &region{
		first:    base,
		record:   rec,
		base:     base,
		length:   layout.Bytes(cells),
		policies: policies,
	}
	h.stampRecord(r)

	// Singleton ring covering the whole usable area.
	h.setPrev(base, base)
	h.setNext(base, base)
	h.setSize(base, cells)
	h.setMagic(base, layout.FreeMagic)

	// Sorted insert: before the first region with a strictly larger usable
	// length.
	at := len(h.regions)
	for i, other := range h.regions {
		if other.length > r.length {
			at = i
			break
		}
	}
	h.regions = append(h.regions, nil)
	copy(h.regions[at+1:], h.regions[at:])
	h.regions[at] = r
}

// stampRecord writes the region record slab: signature, geometry, and the
// policy table.
func (h *Heap) stampRecord(r *region) {
	rec := h.mem[r.record : r.record+layout.RegionRecordSize]
	clear(rec)
	copy(rec[layout.RecSignature:], layout.RegionSignature)
	layout.PutU64(rec, layout.RecBase, r.base)
	layout.PutU64(rec, layout.RecLength, r.length)
	for i, s := range r.policies {
		rec[layout.RecPolicies+i] = byte(s)
	}
}
