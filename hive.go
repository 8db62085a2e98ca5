package hive

// hive.go — the Hive container type: construction, observers and the
// four traversal entry points (Begin/End/RBegin/REnd).
//
// Grounded on plf_hive.h's hive<T,...> member layout (chained groups plus
// the groups-with-erasures list and the unused-block cache) and on this
// codebase's habit of keeping a container's mutating operations split
// across sibling files by concern (queue.go vs. queue_stress_test.go
// style separation, applied here as hive.go / state.go / insert.go /
// erase.go / bulk.go).

// Hive is an unordered, block-allocated collection offering stable
// references: pointers and iterators to elements that have not
// themselves been erased survive insertion and erasure of any other
// element. S selects the skipfield word width, trading maximum
// addressable block capacity for per-slot metadata overhead; use New for
// the uint16 profile or New8 for the uint8 profile.
type Hive[T any, S skipWord] struct {
	headBlock *block[T, S]
	tailBlock *block[T, S]

	erasuresHead *block[T, S]
	cacheHead    *block[T, S]

	size            int
	limits          Limits
	nextGroupNumber uint64
}

// New constructs an empty Hive using the uint16 skipfield profile
// (spec.md's "performance profile": larger blocks, more metadata).
func New[T any]() *Hive[T, uint16] {
	h, _ := NewWithLimits[T, uint16](defaultLimits[uint16]())
	return h
}

// New8 constructs an empty Hive using the uint8 skipfield profile
// (spec.md's "memory profile": smaller blocks, less metadata).
func New8[T any]() *Hive[T, uint8] {
	h, _ := NewWithLimits[T, uint8](defaultLimits[uint8]())
	return h
}

func defaultLimits[S skipWord]() Limits {
	hard := HardLimits[S]()
	upperBound := DefaultMax
	if upperBound > hard.Max {
		upperBound = hard.Max
	}
	return Limits{Min: DefaultMin, Max: upperBound}
}

// NewWithLimits constructs an empty Hive with an explicit block-capacity
// policy, returning ErrDomain if the limits fall outside what S can
// address or are inverted.
func NewWithLimits[T any, S skipWord](limits Limits) (*Hive[T, S], error) {
	hard := HardLimits[S]()
	if limits.Max > hard.Max {
		return nil, domainErrorf("max capacity %d exceeds skipfield word range %d", limits.Max, hard.Max)
	}
	if err := limits.validate(); err != nil {
		return nil, err
	}
	return &Hive[T, S]{limits: limits}, nil
}

// FromCount constructs a Hive holding n copies of value.
func FromCount[T any, S skipWord](n int, value T) (*Hive[T, S], error) {
	h, err := NewWithLimits[T, S](defaultLimits[S]())
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		h.Insert(value)
	}
	return h, nil
}

// FromSlice constructs a Hive holding a copy of every element of src, in
// the order src provides them (initial iteration order only — Hive does
// not preserve insertion order across erasure).
func FromSlice[T any, S skipWord](src []T) (*Hive[T, S], error) {
	h, err := NewWithLimits[T, S](defaultLimits[S]())
	if err != nil {
		return nil, err
	}
	for _, v := range src {
		h.Insert(v)
	}
	return h, nil
}

// Size returns the number of live elements.
func (h *Hive[T, S]) Size() int {
	return h.size
}

// Empty reports whether the Hive holds no live elements.
func (h *Hive[T, S]) Empty() bool {
	return h.size == 0
}

// MaxSize returns the theoretical maximum number of elements this Hive's
// skipfield word width can address.
func (h *Hive[T, S]) MaxSize() int {
	hard := HardLimits[S]()
	return hard.Max
}

// Capacity returns the total number of slots currently backing the
// container, live or erased-but-reclaimable.
func (h *Hive[T, S]) Capacity() int {
	total := 0
	for b := h.headBlock; b != nil; b = b.next {
		total += int(b.capacity)
	}
	for b := h.cacheHead; b != nil; b = b.cacheNext {
		total += int(b.capacity)
	}
	return total
}

// BlockCount returns the number of currently allocated live blocks
// (blocks holding at least one element). Blocks sitting in the unused
// cache are not counted.
func (h *Hive[T, S]) BlockCount() int {
	n := 0
	for b := h.headBlock; b != nil; b = b.next {
		n++
	}
	return n
}

// BlockCapacityLimits returns the current (min,max) block-capacity
// policy.
func (h *Hive[T, S]) BlockCapacityLimits() Limits {
	return h.limits
}

// BlockCapacityHardLimits returns the absolute limits S can address,
// independent of the current policy.
func (h *Hive[T, S]) BlockCapacityHardLimits() Limits {
	return HardLimits[S]()
}

// Begin returns a cursor to the first live element, or the end sentinel
// if the Hive is empty.
func (h *Hive[T, S]) Begin() Iterator[T, S] {
	if h.headBlock == nil {
		return Iterator[T, S]{}
	}
	return Iterator[T, S]{blk: h.headBlock, idx: h.headBlock.firstLiveIndex()}
}

// End returns the past-the-end sentinel cursor.
func (h *Hive[T, S]) End() Iterator[T, S] {
	return Iterator[T, S]{}
}

// RBegin returns a reverse cursor to the last live element, or the
// reverse-end sentinel if the Hive is empty.
func (h *Hive[T, S]) RBegin() ReverseIterator[T, S] {
	blk := h.tailBlock
	if blk == nil {
		return ReverseIterator[T, S]{}
	}
	return ReverseIterator[T, S]{it: Iterator[T, S]{blk: blk, idx: blk.lastLiveIndex()}}
}

// REnd returns the reverse-past-the-end sentinel cursor.
func (h *Hive[T, S]) REnd() ReverseIterator[T, S] {
	return ReverseIterator[T, S]{}
}

// Last returns a forward cursor to the last live element, or the end
// sentinel if the Hive is empty. Unlike decrementing End() (unsupported
// on a bare sentinel in this port), Last walks from the tail block.
func (h *Hive[T, S]) Last() Iterator[T, S] {
	return h.RBegin().it
}

// GetIterator recovers a stable Iterator from a pointer previously
// obtained via Iterator.Get, provided the element has not since been
// erased. Its second return is false if ptr does not belong to this
// Hive (or no longer does, having been erased and its block released).
func (h *Hive[T, S]) GetIterator(ptr *T) (Iterator[T, S], bool) {
	for b := h.headBlock; b != nil; b = b.next {
		for i := range b.elements {
			if &b.elements[i] == ptr {
				return Iterator[T, S]{blk: b, idx: i}, true
			}
		}
	}
	return Iterator[T, S]{}, false
}

// Swap exchanges the entire contents of h and other in O(1).
func (h *Hive[T, S]) Swap(other *Hive[T, S]) {
	*h, *other = *other, *h
}
