package hive

// block.go — the block (group) type: one heap-allocated slice of elements
// paired with a parallel skipfield and an intrusive per-block free list.
//
// Grounded on the arena/handle/intrusive-free-list style of this codebase's
// pooled priority queues (PooledQuantumQueue, bucketqueue): a fixed-capacity
// backing array addressed by small integer indices, with erased slots
// threaded into a free list through side metadata rather than through
// separate heap nodes.

// skipWord is the skipfield word type, the Go generic stand-in for the
// reference implementation's compile-time skipfield_type template
// parameter. Its maximum value doubles as the "absent" index sentinel
// (SKIP_MAX), exactly as in the original.
type skipWord interface {
	~uint8 | ~uint16
}

// noIndex returns the sentinel skipfield-word value meaning "no such
// index" — used as free_list_head when a block has no erasures, and as
// the prev/next terminator within a block's free list.
func noIndex[S skipWord]() S {
	return ^S(0)
}

// freeLink is one node of a block's intrusive free list. It lives in the
// freeLinks side array at the index of a skipblock's start slot; indices
// that aren't currently a skipblock start carry a meaningless freeLink.
//
// The reference implementation threads this through the erased element
// storage itself (reinterpreting two slots' worth of the overaligned
// element buffer). Go has no portable, strict-aliasing-safe way to
// reinterpret an arbitrary T's storage as two skipfield words, so this
// port keeps the free-list payload in its own parallel array instead —
// two extra skipWord-sized words per element, traded for not needing
// unsafe pointer bitcasts. See DESIGN.md.
type freeLink[S skipWord] struct {
	prev, next S
}

// block is one group: a fixed-capacity element array, its parallel
// skipfield, the free-list side array, and the block metadata described
// in spec.md §3.
type block[T any, S skipWord] struct {
	elements  []T
	skipfield []S // len == capacity+1; skipfield[capacity] is the always-zero sentinel
	freeLinks []freeLink[S]

	lastEndpoint int // one-past the highest slot ever used in this block
	size         int // live element count
	capacity     S   // immutable after construction

	freeListHead S // most recently created skipblock's start index, or noIndex

	next, prev   *block[T, S] // live-blocks doubly-linked list
	erasuresNext *block[T, S] // groups-with-erasures singly-linked list
	cacheNext    *block[T, S] // unused-blocks cache singly-linked list

	groupNumber uint64 // monotone ordinal for iterator ordering
}

// newBlock allocates a fresh block of the given capacity. initialSize is 1
// for a block allocated in direct response to an insertion (the common
// case — the first slot is claimed immediately, saving a later claim
// call), or 0 for a block pre-allocated into the unused-blocks cache by
// Reserve, which must start out holding nothing.
func newBlock[T any, S skipWord](capacity S, initialSize int, groupNumber uint64) *block[T, S] {
	b := &block[T, S]{
		elements:     make([]T, capacity),
		skipfield:    make([]S, int(capacity)+1),
		freeLinks:    make([]freeLink[S], capacity),
		lastEndpoint: initialSize,
		size:         initialSize,
		capacity:     capacity,
		freeListHead: noIndex[S](),
		groupNumber:  groupNumber,
	}
	return b
}

// reset revives a cached unused block for reuse as a new tail block,
// matching group::reset in the reference implementation.
func (b *block[T, S]) reset(initialSize int, next, prev *block[T, S], groupNumber uint64) {
	for i := range b.skipfield {
		b.skipfield[i] = 0
	}
	var zero T
	for i := 0; i < b.lastEndpoint; i++ {
		b.elements[i] = zero
	}
	b.lastEndpoint = initialSize
	b.size = initialSize
	b.freeListHead = noIndex[S]()
	b.next = next
	b.prev = prev
	b.erasuresNext = nil
	b.cacheNext = nil
	b.groupNumber = groupNumber
}

// firstLiveIndex returns the index of this block's first live element,
// valid only while the block holds at least one live element (size > 0).
func (b *block[T, S]) firstLiveIndex() int {
	return int(b.skipfield[0])
}

// lastLiveIndex returns the index of this block's last live element,
// mirroring the reference implementation's backward group-crossing
// calculation (plf_hive.h operator--): read the skipfield entry at the
// last claimed slot, skip back over any trailing erased run. A single
// jump suffices, since adjacent erased runs are always merged into one
// and nothing past lastEndpoint has ever been claimed.
func (b *block[T, S]) lastLiveIndex() int {
	last := b.lastEndpoint - 1
	skip := int(b.skipfield[last])
	return last - skip
}

// isFull reports whether every slot up to capacity has been claimed at
// least once (lastEndpoint has reached capacity) — not the same as "no
// free slots available", since a full block may still have reclaimable
// skipblocks.
func (b *block[T, S]) isFull() bool {
	return b.lastEndpoint == int(b.capacity)
}

// hasFreeList reports whether this block currently has any reclaimable
// skipblocks.
func (b *block[T, S]) hasFreeList() bool {
	return b.freeListHead != noIndex[S]()
}
