//go:build linux

package borders

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// usedRAMBytes returns the process's current resident set size, read
// from /proc/self/statm. If that file is unreadable it falls back to the
// peak resident set size from getrusage, and then to staticRSSEstimate.
// This measurement is platform-specific and observational, not a
// correctness input (spec.md §9): it only feeds the concurrency-sizing
// heuristic, never a result.
func usedRAMBytes() int64 {
	// statm's first two fields are total and resident size, in pages.
	var size, resident int64
	if b, err := os.ReadFile("/proc/self/statm"); err == nil {
		if _, err := fmt.Sscan(string(b), &size, &resident); err == nil {
			return resident * int64(os.Getpagesize())
		}
	}
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return staticRSSEstimate
	}
	// Maxrss is in KiB on Linux.
	return ru.Maxrss * 1024
}
