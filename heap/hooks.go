package heap

import (
	"fmt"
	"os"
)

// Hooks are the allocator's external collaborators. Every field may be nil;
// the defaults are noted per field. The pressure-relief hooks must be
// idempotent and safe to call when there is nothing to release; when they do
// release memory they re-enter the allocator through the normal Free path,
// which is safe because every allocator state transition completes before
// control leaves the heap.
type Hooks struct {
	// Fatal aborts on an unrecoverable invariant violation. It must not
	// return. Default: panic with a "heap:"-prefixed message.
	Fatal func(format string, args ...any)

	// ReportError reports a recoverable condition, currently only
	// out-of-memory. Default: a line on stderr.
	ReportError func(kind ErrorKind, msg string)

	// DropDiskCaches is the first pressure-relief stage: invalidate disk
	// caches so their buffers return to the heap. Default: no-op.
	DropDiskCaches func()

	// UnloadModules is the second pressure-relief stage: unload modules that
	// are no longer needed. Default: no-op.
	UnloadModules func()
}

func defaultReportError(kind ErrorKind, msg string) {
	fmt.Fprintf(os.Stderr, "heap: %s: %s\n", kind, msg)
}
