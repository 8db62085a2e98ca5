// Package diag provides the lightweight diagnostic logging, built on the
// standard log package, used on non-hot paths (setup, errors,
// block-lifecycle tracing) throughout this module.
package diag

import "log"

// Warn is a lightweight diagnostic logger.
//
// It skips format-string handling when err is nil by branching on nil;
// both branches still go through the standard log package.
//
// Behavior:
//   - If `err != nil`, prints:   "<prefix>: <error>"
//   - If `err == nil`, prints:   "<prefix>" (used as a cheap trace tag)
//
// It is intentionally unformatted and minimal — avoid extending.
//
//go:nosplit
//go:inline
func Warn(prefix string, err error) {
	if err != nil {
		log.Printf("%s: %v", prefix, err)
	} else {
		log.Print(prefix)
	}
}

// Trace logs a block-lifecycle or bulk-operation event (cache release,
// reshape consolidation, bulk-insert rollback) when verbose diagnostics
// are enabled. Gated behind a caller-supplied bool rather than an
// internal flag so the check costs nothing when diagnostics are off and
// so cmd/hivebench can drive the same call with its own verbosity flag.
func Trace(enabled bool, event string, groupNumber uint64, size int) {
	if !enabled {
		return
	}
	log.Printf("hive: %s group=%d size=%d", event, groupNumber, size)
}
