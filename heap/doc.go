// Package heap implements the multi-region free-store allocator used by the
// bootloader.
//
// # Overview
//
// The allocator owns a flat address space (a caller-supplied byte slice) and
// manages a set of disjoint regions registered inside it. Each region keeps a
// circular doubly-linked ring of free blocks, sorted by address, with all
// block metadata held in-band: every block is preceded by a one-cell header
// carrying its size, its free-ring links, and a magic word identifying it as
// free or allocated. Reading a header with any other magic value is treated
// as heap corruption and aborts through the fatal hook.
//
// # Quick Start
//
//	mem := make([]byte, 1<<20)
//	h := heap.New(mem, nil)
//	h.AddRegion(0, 1<<20, heap.DefaultPolicies())
//
//	p := h.Alloc(256)
//	if p == 0 {
//	    // out of memory; already reported through the error hook
//	}
//	copy(mem[p:p+256], payload)
//	h.Free(p)
//
// Addresses returned by the allocator are byte offsets into the address
// space; zero is the null result. The payload begins immediately after the
// block header, so a returned address is always one cell past a header.
//
// # Regions and Policies
//
// Regions arrive as (addr, size, policies) triples via AddRegion and are kept
// sorted ascending by usable length, so small regions are exhausted before
// large ones. Each region maps every policy index to a scan strategy:
//
//	StrategyFirst   scan the ring from the lowest-addressed free block
//	StrategySecond  scan from the second ring entry (the default; avoids
//	                biasing allocation toward the lowest address)
//	StrategyLast    scan backward, placing payloads as high as possible
//	StrategySkip    this region declines to serve the policy
//
// PolicyDefault is used by Alloc and AllocAlign; PolicyLowMem is for
// allocations that must land in a low-address region, such as
// firmware-visible buffers.
//
// # Exhaustion and Pressure Relief
//
// When every region declines a request, the allocator invokes the
// pressure-relief hooks in a fixed sequence (drop disk caches, then unload
// unneeded modules), retrying the full region scan after each. If the request
// still cannot be satisfied it is reported through the error hook as
// out-of-memory and the null address is returned; the allocator's state stays
// consistent.
//
// # Error Model
//
// Two strictly separated channels: invariant violations (bad magic, unaligned
// or out-of-range pointers) abort through Hooks.Fatal and are unrecoverable;
// out-of-memory is recoverable and surfaces as a null result plus a
// Hooks.ReportError call. This is a boot-time allocator with no debugger
// behind it; faulting early beats limping on with a damaged heap.
//
// # Thread Safety
//
// The bootloader is single-threaded; Heap is not safe for concurrent use.
//
// # Related Packages
//
//   - github.com/joshuapare/bootmem/heap/verify: structural invariant checks
//   - github.com/joshuapare/bootmem/heap/printer: human-readable dumps
//   - github.com/joshuapare/bootmem/internal/layout: binary layout constants
package heap
