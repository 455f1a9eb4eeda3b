package heap

import (
	"fmt"

	"github.com/joshuapare/bootmem/internal/layout"
)

// Ptr is an address within a heap's address space: a byte offset into the
// slice handed to New. The zero value is the null result; no allocation is
// ever placed at offset zero because a region's record slab and the block
// header always precede the first payload.
type Ptr = uint64

const nullPtr Ptr = 0

// Heap is a multi-region boot-time allocator over a flat address space.
// All state hangs off the handle; there is no package-level mutable state.
type Heap struct {
	mem     []byte
	regions []*region // sorted ascending by usable length
	hooks   Hooks
	stats   Stats
}

// Stats holds allocator counters. Byte totals include the header cell of
// every block, so BytesAllocated-BytesFreed equals the exact footprint of the
// live blocks.
type Stats struct {
	AllocCalls       int   // Public allocation entry points taken
	FreeCalls        int   // Free() calls on non-null pointers
	ResizeCalls      int   // Realloc() calls that reached the allocator
	SplitCount       int   // Free blocks split during allocation
	CoalesceForward  int   // Forward merges on release
	CoalesceBackward int   // Backward merges on release
	ReliefRounds     int   // Pressure-relief callbacks invoked
	OOMReports       int   // Out-of-memory reports issued
	BytesAllocated   int64 // Total bytes handed out, headers included
	BytesFreed       int64 // Total bytes returned, headers included
}

// New creates a heap over the given address space. The heap starts with no
// regions; nothing can be allocated until AddRegion is called. hooks may be
// nil, leaving every hook at its default (see Hooks).
func New(mem []byte, hooks *Hooks) *Heap {
	h := &Heap{mem: mem}
	if hooks != nil {
		h.hooks = *hooks
	}
	return h
}

// Bytes returns the heap's backing address space. Callers index it directly
// with the addresses returned by the allocation routines.
func (h *Heap) Bytes() []byte {
	return h.mem
}

// Stats returns a copy of the allocator counters.
func (h *Heap) Stats() Stats {
	return h.stats
}

// fatal reports an unrecoverable invariant violation. It never returns: the
// fatal hook is required not to return, and if a misbehaving hook does, the
// panic below still ends the world.
func (h *Heap) fatal(format string, args ...any) {
	if h.hooks.Fatal != nil {
		h.hooks.Fatal(format, args...)
	}
	panic(fmt.Sprintf("heap: "+format, args...))
}

// reportError reports a recoverable condition through the error hook.
func (h *Heap) reportError(kind ErrorKind, msg string) {
	h.stats.OOMReports++
	if h.hooks.ReportError != nil {
		h.hooks.ReportError(kind, msg)
		return
	}
	defaultReportError(kind, msg)
}

// lookup maps a user pointer to its region and block header, applying the
// corruption checks: the pointer must be cell-aligned, must fall inside a
// registered region, and the preceding cell must carry the allocated magic.
func (h *Heap) lookup(p Ptr) (*region, uint64) {
	if !layout.IsCellAligned(p) {
		h.fatal("unaligned pointer %#x", p)
	}
	for _, r := range h.regions {
		if r.base < p && p <= r.end() {
			b := p - layout.CellSize
			if m := h.magicOf(b); m != layout.AllocMagic {
				h.fatal("alloc magic broken at %#x: %#x", b, m)
			}
			return r, b
		}
	}
	h.fatal("out of range pointer %#x", p)
	return nil, 0 // unreachable
}
