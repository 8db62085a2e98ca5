// ════════════════════════════════════════════════════════════════════════════════════════════════
// Stable-Reference Bucket Container
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Hive — skipfield-based bucket container
// Component: Package overview
//
// Description:
//   Hive is an unordered, block-allocated collection that guarantees pointers, references and
//   iterators to surviving elements remain valid across insertion or erasure of other elements.
//   It trades the pointer-chasing of a node-per-element linked list for cache-friendly, block
//   (group) storage, while keeping the same stability guarantee, via a jump-counting skipfield
//   that marks runs of erased slots and an intrusive per-block free list threaded through them.
//
// Use it in place of a linked list when you need stable references plus better cache locality and
// amortised O(1) insertion without pointer invalidation: entity systems, simulations, intrusive
// graphs.
//
// Non-goals: ordered iteration reflecting insertion order (iteration order is unspecified and may
// change across erase+insert), random-access indexing as a first-class operation, and concurrent
// access — Hive is single-threaded.
// ════════════════════════════════════════════════════════════════════════════════════════════════

package hive
