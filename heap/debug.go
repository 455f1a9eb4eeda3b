package heap

import (
	"fmt"
	"os"
)

// Runtime debug flag for allocation logging - controlled by the
// BOOTMEM_LOG_ALLOC env var.
var logAlloc = os.Getenv("BOOTMEM_LOG_ALLOC") != ""

// allocLogf prints allocation trace messages to stderr.
func allocLogf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "[heap] "+format+"\n", args...)
}
