//go:build unix

package sysmem

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Arena is a block of memory suitable for hosting a heap address space.
type Arena struct {
	data []byte
}

// Alloc maps size bytes of zeroed, page-aligned anonymous memory.
func Alloc(size int) (*Arena, error) {
	if size <= 0 {
		return nil, fmt.Errorf("sysmem: invalid arena size %d", size)
	}
	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("sysmem: mmap %d bytes: %w", size, err)
	}
	return &Arena{data: data}, nil
}

// Bytes returns the arena's memory.
func (a *Arena) Bytes() []byte {
	return a.data
}

// Release unmaps the arena. Releasing twice is a no-op.
func (a *Arena) Release() error {
	if a.data == nil {
		return nil
	}
	data := a.data
	a.data = nil
	return unix.Munmap(data)
}
