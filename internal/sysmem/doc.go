// Package sysmem provides platform-specific helpers for acquiring the
// page-aligned memory that hosts heap address spaces. On Unix systems the
// backing is an anonymous private mapping, keeping multi-megabyte arenas off
// the Go heap; elsewhere a plain slice is used.
package sysmem
