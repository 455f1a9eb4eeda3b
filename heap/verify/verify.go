package verify

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/bootmem/heap"
	"github.com/joshuapare/bootmem/internal/layout"
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Check   string // invariant category, e.g. "RingOrder"
	Offset  uint64 // address-space offset of the violation
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("verify: %s at %#x: %s", e.Check, e.Offset, e.Message)
}

func fail(check string, off uint64, format string, args ...any) error {
	return &ValidationError{Check: check, Offset: off, Message: fmt.Sprintf(format, args...)}
}

// AllInvariants checks every registered region of h and returns the first
// violation found, or nil.
func AllInvariants(h *heap.Heap) error {
	mem := h.Bytes()
	for _, r := range h.Regions() {
		if err := regionRecord(mem, r); err != nil {
			return err
		}
		free, err := blocks(mem, r)
		if err != nil {
			return err
		}
		if err := ring(mem, r, free); err != nil {
			return err
		}
	}
	return nil
}

// regionRecord cross-checks the stamped record slab against the registered
// geometry.
func regionRecord(mem []byte, r heap.RegionInfo) error {
	rec := mem[r.Record : r.Record+layout.RegionRecordSize]
	if !bytes.Equal(rec[layout.RecSignature:layout.RecSignature+4], layout.RegionSignature) {
		return fail("RegionRecord", r.Record, "bad signature %q", rec[:4])
	}
	if got := layout.ReadU64(rec, layout.RecBase); got != r.Base {
		return fail("RegionRecord", r.Record, "base %#x, registered %#x", got, r.Base)
	}
	if got := layout.ReadU64(rec, layout.RecLength); got != r.Length {
		return fail("RegionRecord", r.Record, "length %d, registered %d", got, r.Length)
	}
	return nil
}

// blocks walks the region's blocks in address order, checking magic words,
// capacity conservation, and the coalescing invariant. It returns the set of
// free-block offsets for the ring check.
func blocks(mem []byte, r heap.RegionInfo) (map[uint64]bool, error) {
	free := make(map[uint64]bool)
	end := r.Base + r.Length
	prevFree := false
	for b := r.Base; b != end; {
		if b > end {
			return nil, fail("Blocks", b, "walk overran region end %#x", end)
		}
		var isFree bool
		switch m := layout.ReadU64(mem, b+layout.HdrMagic); m {
		case layout.FreeMagic:
			isFree = true
		case layout.AllocMagic:
			isFree = false
		default:
			return nil, fail("Blocks", b, "magic %#x is neither free nor allocated", m)
		}
		size := layout.ReadU64(mem, b+layout.HdrSize)
		if size == 0 {
			return nil, fail("Blocks", b, "zero-size block")
		}
		if isFree && prevFree {
			return nil, fail("Blocks", b, "adjacent free blocks (coalescing missed)")
		}
		if isFree {
			free[b] = true
		}
		prevFree = isFree
		b += layout.Bytes(size)
	}
	return free, nil
}

// ring traverses the free ring from its head, checking link consistency,
// strict address order until wrap-around, and that the ring covers exactly
// the free blocks found by the block walk.
func ring(mem []byte, r heap.RegionInfo, free map[uint64]bool) error {
	if r.First == 0 {
		if len(free) != 0 {
			return fail("Ring", r.Base, "region marked exhausted but %d free blocks exist", len(free))
		}
		return nil
	}
	if !free[r.First] {
		return fail("Ring", r.First, "ring head is not a free block")
	}

	seen := 0
	b := r.First
	for {
		if layout.ReadU64(mem, b+layout.HdrMagic) != layout.FreeMagic {
			return fail("Ring", b, "ring entry is not free")
		}
		if !free[b] {
			return fail("Ring", b, "ring entry not found by block walk")
		}
		next := layout.ReadU64(mem, b+layout.HdrNext)
		if next == 0 {
			return fail("Ring", b, "null next link")
		}
		if layout.ReadU64(mem, next+layout.HdrPrev) != b {
			return fail("Ring", next, "prev link does not return to %#x", b)
		}
		seen++
		if seen > len(free) {
			return fail("Ring", b, "ring does not close over the free set")
		}
		if next == r.First {
			break
		}
		if next <= b {
			return fail("RingOrder", next, "addresses not strictly increasing after %#x", b)
		}
		b = next
	}
	if seen != len(free) {
		return fail("Ring", r.First, "ring has %d entries, block walk found %d free", seen, len(free))
	}
	return nil
}
