package abyss

import "runtime"

// Worker count bounds.
const (
	// MinWorkers renders one document at a time.
	MinWorkers = 1

	// MaxWorkers caps the automatic worker count.
	MaxWorkers = 16
)

// ResolveWorkers determines how many documents render concurrently.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by CLIs.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is container-aware when the binary uses automaxprocs
	return min(max(runtime.GOMAXPROCS(0), MinWorkers), MaxWorkers)
}
