package heap

import "fmt"

// Policy is a caller-selected index naming a memory class. Each region maps
// every policy to a scan strategy, so the same policy can be served eagerly
// by one region and declined by another.
type Policy uint8

const (
	// PolicyDefault is the general-purpose policy used by Alloc, AllocAlign,
	// and AllocZeroed.
	PolicyDefault Policy = iota

	// PolicyLowMem is for allocations that must land in a low-address
	// region, e.g. firmware-visible buffers. Regions decline it unless
	// registered with an explicit strategy for it.
	PolicyLowMem

	// NumPolicies is the number of policy slots per region.
	NumPolicies = 2
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case PolicyDefault:
		return "default"
	case PolicyLowMem:
		return "lowmem"
	default:
		return fmt.Sprintf("policy(%d)", uint8(p))
	}
}

// Strategy selects where an intra-region scan starts and which direction it
// walks the free ring.
type Strategy uint8

const (
	// StrategyFirst begins at the ring head and walks forward.
	StrategyFirst Strategy = iota

	// StrategySecond begins at the ring head's successor and walks forward.
	// This is the default: it never biases allocation toward the lowest
	// address, which reduces worst-case fragmentation.
	StrategySecond

	// StrategyLast begins at the ring head's predecessor and walks backward,
	// placing payloads at the highest aligned position that fits.
	StrategyLast

	// StrategySkip declines the policy for this region.
	StrategySkip
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyFirst:
		return "first"
	case StrategySecond:
		return "second"
	case StrategyLast:
		return "last"
	case StrategySkip:
		return "skip"
	default:
		return fmt.Sprintf("strategy(%d)", uint8(s))
	}
}

// PolicyTable maps each policy slot to the strategy a region serves it with.
type PolicyTable [NumPolicies]Strategy

// DefaultPolicies returns the table for an ordinary region: the default
// policy is served second-fit, and low-memory requests are declined. Regions
// that should satisfy PolicyLowMem must say so explicitly.
func DefaultPolicies() PolicyTable {
	return PolicyTable{
		PolicyDefault: StrategySecond,
		PolicyLowMem:  StrategySkip,
	}
}
