//go:build !unix

package sysmem

import "fmt"

// Arena is a block of memory suitable for hosting a heap address space.
// Without mmap the backing is an ordinary slice; page alignment is not
// guaranteed.
type Arena struct {
	data []byte
}

// Alloc allocates size bytes of zeroed memory.
func Alloc(size int) (*Arena, error) {
	if size <= 0 {
		return nil, fmt.Errorf("sysmem: invalid arena size %d", size)
	}
	return &Arena{data: make([]byte, size)}, nil
}

// Bytes returns the arena's memory.
func (a *Arena) Bytes() []byte {
	return a.data
}

// Release drops the arena's memory. Releasing twice is a no-op.
func (a *Arena) Release() error {
	a.data = nil
	return nil
}
