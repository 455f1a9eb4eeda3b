// Package printer renders human-readable views of a boot heap: per-region
// block maps, free rings, and allocator statistics. It exists for debug
// output and the memctl tool; the walks underneath perform the same
// corruption checks as the allocation paths.
package printer

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/bootmem/heap"
	"github.com/joshuapare/bootmem/internal/layout"
)

// Options controls printing behavior.
type Options struct {
	// Blocks includes the per-block map of every region.
	// Default: true.
	Blocks bool

	// Rings includes each region's free-ring traversal.
	// Default: false.
	Rings bool
}

// DefaultOptions returns the options used when nil is passed to Fprint.
func DefaultOptions() Options {
	return Options{Blocks: true}
}

// Fprint writes a dump of h to w. opts may be nil for defaults.
func Fprint(w io.Writer, h *heap.Heap, opts *Options) error {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	p := message.NewPrinter(language.English)

	for i, r := range h.Regions() {
		_, err := p.Fprintf(w, "region %d: base=%#x length=%d bytes (%d cells) policies=%v\n",
			i, r.Base, r.Length, r.Length>>layout.CellShift, r.Policies)
		if err != nil {
			return err
		}
		if o.Blocks {
			var werr error
			h.WalkRegion(i, func(b heap.BlockInfo) bool {
				state := "alloc"
				if b.Free {
					state = "free "
				}
				_, werr = p.Fprintf(w, "  %#08x  %s  %d cells (%d bytes)\n",
					b.Addr, state, b.Cells, layout.Bytes(b.Cells))
				return werr == nil
			})
			if werr != nil {
				return werr
			}
		}
		if o.Rings {
			ringAddrs := h.FreeRing(i)
			if ringAddrs == nil {
				if _, err := p.Fprintf(w, "  ring: exhausted\n"); err != nil {
					return err
				}
			} else if _, err := p.Fprintf(w, "  ring: %#x\n", ringAddrs); err != nil {
				return err
			}
		}
	}

	total, largest := h.FreeBytes()
	_, err := p.Fprintf(w, "free: %d bytes total, largest block %d bytes\n", total, largest)
	return err
}

// FprintStats writes the allocator counters to w.
func FprintStats(w io.Writer, s heap.Stats) error {
	p := message.NewPrinter(language.English)
	rows := []struct {
		label string
		value int64
	}{
		{"alloc calls", int64(s.AllocCalls)},
		{"free calls", int64(s.FreeCalls)},
		{"resize calls", int64(s.ResizeCalls)},
		{"splits", int64(s.SplitCount)},
		{"coalesce fwd", int64(s.CoalesceForward)},
		{"coalesce back", int64(s.CoalesceBackward)},
		{"relief rounds", int64(s.ReliefRounds)},
		{"oom reports", int64(s.OOMReports)},
		{"bytes allocated", s.BytesAllocated},
		{"bytes freed", s.BytesFreed},
		{"bytes live", s.BytesAllocated - s.BytesFreed},
	}
	for _, row := range rows {
		if _, err := p.Fprintf(w, "%-16s %d\n", row.label, row.value); err != nil {
			return err
		}
	}
	return nil
}
