package layout

import "encoding/binary"

// Binary encoding utilities for little-endian header fields.
//
// The standard library implementation is already highly optimized; the
// compiler inlines binary.LittleEndian calls, so there is no reason to reach
// for unsafe here.

// PutU64 writes a uint64 to the buffer at the specified offset in
// little-endian format.
func PutU64(b []byte, off uint64, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadU64 reads a uint64 from the buffer at the specified offset in
// little-endian format.
func ReadU64(b []byte, off uint64) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}
