package hive

import "hive/internal/diag"

// trace.go — the opt-in switch for internal/diag's cold-path logging.
// Off by default; flip Trace on to see block-lifecycle and bulk-rollback
// events. Never checked from a path this package considers hot (element
// insert/erase/traversal) — only from block release, Reshape
// consolidation, and bulk-insert rollback.

// Trace enables diagnostic logging of block-lifecycle and bulk-rollback
// events via internal/diag.
var Trace = false

func traceBlock(event string, groupNumber uint64, size int) {
	diag.Trace(Trace, event, groupNumber, size)
}

func traceWarn(prefix string, err error) {
	if Trace {
		diag.Warn(prefix, err)
	}
}
