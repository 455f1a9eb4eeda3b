// Package layout houses the binary layout of the boot heap: cell geometry,
// block header fields, magic words, and the region record slab. The goal is to
// keep every byte-level constant in one place so the allocator, the verifier,
// and the printer agree on the exact on-memory format.
package layout

const (
	// CellShift is log2 of the cell size.
	CellShift = 5

	// CellSize is the atomic allocation granularity in bytes. It equals the
	// block header width (four 8-byte words) and the natural alignment of
	// every header and payload.
	CellSize = 1 << CellShift

	// CellMask is the bitmask used for cell-boundary alignment checks.
	CellMask = CellSize - 1
)

// Block header layout (little-endian). Every block, free or allocated, is
// preceded by one header cell:
//
//	Offset  Size  Field
//	0x00    8     prev   Byte offset of the previous free header. Meaningful
//	              only while the block is free; stale otherwise.
//	0x08    8     next   Byte offset of the next free header. Same caveat.
//	0x10    8     size   Block size in cells, including the header cell.
//	0x18    8     magic  FreeMagic or AllocMagic. Anything else is corruption.
const (
	HdrPrev  = 0x00
	HdrNext  = 0x08
	HdrSize  = 0x10
	HdrMagic = 0x18
)

const (
	// FreeMagic marks a header whose block is on its region's free ring.
	FreeMagic uint64 = 0xf7eeb10cf7eeb10c

	// AllocMagic marks a header whose block is currently allocated.
	AllocMagic uint64 = 0xa110cceda110cced
)

// Region record slab layout. Registration reserves one cell-aligned slab at
// the start of each region and stamps it so the verifier can cross-check the
// registered geometry:
//
//	Offset  Size  Field
//	0x00    4     signature  "brgn"
//	0x08    8     base       Byte offset of the usable area.
//	0x10    8     length     Usable area size in bytes (whole cells).
//	0x18    ...   policies   One strategy byte per policy slot.
const (
	RecSignature = 0x00
	RecBase      = 0x08
	RecLength    = 0x10
	RecPolicies  = 0x18

	// RegionRecordSize is the reserved slab size. One cell is enough for the
	// signature, the geometry words, and the policy bytes.
	RegionRecordSize = CellSize

	// MinRegionSize is the smallest registrable region. Anything below this
	// cannot host the record slab, a header, and a payload cell, and is
	// silently ignored.
	MinRegionSize = 4 * CellSize
)

// RegionSignature is the four-byte signature stamped into every region record.
var RegionSignature = []byte{'b', 'r', 'g', 'n'}
