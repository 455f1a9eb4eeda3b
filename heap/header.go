package heap

import "github.com/joshuapare/bootmem/internal/layout"

// Block header field access. Headers live in-band: the cell at offset b holds
// the prev/next ring links, the size in cells, and the magic word for the
// block spanning [b, b+size*CellSize). All reads and writes go through these
// accessors so the little-endian layout stays in one place.

func (h *Heap) prevOf(b uint64) uint64 {
	return layout.ReadU64(h.mem, b+layout.HdrPrev)
}

func (h *Heap) nextOf(b uint64) uint64 {
	return layout.ReadU64(h.mem, b+layout.HdrNext)
}

func (h *Heap) sizeOf(b uint64) uint64 {
	return layout.ReadU64(h.mem, b+layout.HdrSize)
}

func (h *Heap) magicOf(b uint64) uint64 {
	return layout.ReadU64(h.mem, b+layout.HdrMagic)
}

func (h *Heap) setPrev(b, v uint64) {
	layout.PutU64(h.mem, b+layout.HdrPrev, v)
}

func (h *Heap) setNext(b, v uint64) {
	layout.PutU64(h.mem, b+layout.HdrNext, v)
}

func (h *Heap) setSize(b, cells uint64) {
	layout.PutU64(h.mem, b+layout.HdrSize, cells)
}

func (h *Heap) setMagic(b, v uint64) {
	layout.PutU64(h.mem, b+layout.HdrMagic, v)
}

// mustFree validates a header reached through the free ring. A null link or
// a non-free magic word means the ring is corrupt.
func (h *Heap) mustFree(b uint64) {
	if b == nullPtr {
		h.fatal("null in free ring")
	}
	if m := h.magicOf(b); m != layout.FreeMagic {
		h.fatal("free magic broken at %#x: %#x", b, m)
	}
}
