// Package verify provides structural validation for boot-heap address spaces.
//
// It re-walks every region's blocks and free ring directly over the raw
// bytes, independently of the allocator's own accessors, and checks the
// allocator's quantified invariants:
//
//   - every block header carries a valid magic word
//   - block sizes sum exactly to the region's cell capacity
//   - the free ring is closed, consistently linked, and strictly
//     address-ordered from its head until wrap-around
//   - no two adjacent free blocks exist
//   - the region record slab matches the registered geometry
//
// Unlike the allocator, which treats corruption as fatal, verification
// returns a *ValidationError describing the first violation found, so tests
// and tooling can inspect damaged heaps without aborting.
//
// Validate everything in one call:
//
//	if err := verify.AllInvariants(h); err != nil {
//	    fmt.Printf("heap invalid: %v\n", err)
//	}
package verify
