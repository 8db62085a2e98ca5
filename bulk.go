package hive

import (
	"cmp"
	"sort"
)

// bulk.go — capacity management (Reserve/Trim/ShrinkToFit/Reshape),
// container merging (Splice), and the generic algorithms spec.md §4.6
// describes as free functions rather than methods, since Go methods
// can't carry extra type constraints beyond the receiver's own (Sort's
// comparator is caller-supplied so it stays a method; the convenience
// wrappers that require T to be Ordered/comparable are free functions).
//
// Grounded on plf_hive.h's reserve()/trim()/shrink_to_fit()/splice(), and
// on this codebase's queue.go rebuild-in-place idiom for ShrinkToFit's
// "drain and reinsert" consolidation strategy.

// Reserve ensures the Hive can hold at least n elements without further
// block allocation, pre-allocating blocks into the unused cache. Returns
// ErrCapacity if n exceeds MaxSize.
func (h *Hive[T, S]) Reserve(n int) error {
	hard := HardLimits[S]()
	if n > hard.Max {
		return capacityErrorf("reserve target %d exceeds max size %d", n, hard.Max)
	}
	for h.Capacity() < n {
		need := n - h.Capacity()
		c := need
		if c < h.limits.Min {
			c = h.limits.Min
		}
		if c > h.limits.Max {
			c = h.limits.Max
		}
		b := newBlock[T, S](S(c), 0, h.nextGroupNumber)
		h.nextGroupNumber++
		h.pushCachedBlock(b)
	}
	return nil
}

// Trim releases every block in the unused-block cache, returning that
// memory without disturbing any live element or iterator.
func (h *Hive[T, S]) Trim() {
	h.cacheHead = nil
}

// ShrinkToFit consolidates every live element into freshly-sized blocks
// with no reclaimable skipblocks, releasing all erased-slot overhead.
// It invalidates every outstanding Iterator and pointer into this Hive.
func (h *Hive[T, S]) ShrinkToFit() {
	vals := make([]T, 0, h.size)
	for it := h.Begin(); !it.IsEnd(); it = it.Next() {
		vals = append(vals, *it.Get())
	}
	limits := h.limits
	h.Reset()
	h.limits = limits
	for _, v := range vals {
		h.Insert(v)
	}
}

// Reshape changes the block-capacity policy. If any currently allocated
// block falls outside the new [min,max] range, every live element is
// consolidated into freshly-sized blocks (as ShrinkToFit), invalidating
// outstanding iterators and pointers; otherwise existing live blocks are
// left untouched and only future growth honours the new policy. In both
// cases every block in the unused-block cache is released.
func (h *Hive[T, S]) Reshape(limits Limits) error {
	hard := HardLimits[S]()
	if limits.Max > hard.Max {
		return domainErrorf("max capacity %d exceeds skipfield word range %d", limits.Max, hard.Max)
	}
	if err := limits.validate(); err != nil {
		return err
	}

	needsConsolidate := false
	for b := h.headBlock; b != nil; b = b.next {
		if int(b.capacity) > limits.Max || int(b.capacity) < limits.Min {
			needsConsolidate = true
			break
		}
	}

	h.limits = limits
	h.cacheHead = nil
	if needsConsolidate {
		traceWarn("hive: reshape triggering consolidation", nil)
		h.ShrinkToFit()
	}
	return nil
}

// Splice moves every element of other into h in O(blocks) time by
// relinking block chains rather than copying elements, leaving other
// empty. Iterators obtained from other remain valid, now referencing
// elements of h.
//
// Every block other contributes — live and cached — must already fall
// within h's current (min,max) block-capacity policy; Splice validates
// this and returns a DomainError without modifying either container if
// it doesn't, matching the reference implementation's
// incompatible-capacity check. Before linking other's blocks on, any
// trailing unclaimed capacity in h's own tail block is sealed into a
// reclaimable skipblock (skipfield.go's sealTrailingHole) — that capacity
// would otherwise become permanently unreachable the moment the block
// stops being the tail, since only the tail block is allowed unclaimed
// capacity.
func (h *Hive[T, S]) Splice(other *Hive[T, S]) error {
	if other == h || other.size == 0 {
		return nil
	}

	for b := other.headBlock; b != nil; b = b.next {
		if int(b.capacity) < h.limits.Min || int(b.capacity) > h.limits.Max {
			return domainErrorf("splice: other's block capacity %d outside [%d,%d]", b.capacity, h.limits.Min, h.limits.Max)
		}
	}
	for b := other.cacheHead; b != nil; b = b.cacheNext {
		if int(b.capacity) < h.limits.Min || int(b.capacity) > h.limits.Max {
			return domainErrorf("splice: other's cached block capacity %d outside [%d,%d]", b.capacity, h.limits.Min, h.limits.Max)
		}
	}

	if h.size == 0 {
		*h = *other
		*other = Hive[T, S]{}
		return nil
	}

	if !h.tailBlock.isFull() {
		hadFreeList := h.tailBlock.sealTrailingHole()
		if !hadFreeList {
			h.pushErasuresBlock(h.tailBlock)
		}
	}

	h.tailBlock.next = other.headBlock
	other.headBlock.prev = h.tailBlock
	h.tailBlock = other.tailBlock

	if other.erasuresHead != nil {
		tail := other.erasuresHead
		for tail.erasuresNext != nil {
			tail = tail.erasuresNext
		}
		tail.erasuresNext = h.erasuresHead
		h.erasuresHead = other.erasuresHead
	}
	if other.cacheHead != nil {
		tail := other.cacheHead
		for tail.cacheNext != nil {
			tail = tail.cacheNext
		}
		tail.cacheNext = h.cacheHead
		h.cacheHead = other.cacheHead
	}

	h.size += other.size
	h.renumberFrom(h.headBlock)
	*other = Hive[T, S]{}
	return nil
}

// Sort physically reorders live elements in ascending order per less,
// in place within their current slots: every Iterator obtained before
// the call still names a live slot afterward, but the value it
// dereferences to has moved.
func (h *Hive[T, S]) Sort(less func(a, b T) bool) {
	n := h.size
	if n < 2 {
		return
	}
	ptrs := make([]*T, 0, n)
	for it := h.Begin(); !it.IsEnd(); it = it.Next() {
		ptrs = append(ptrs, it.Get())
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return less(*ptrs[order[i]], *ptrs[order[j]])
	})

	// Apply the permutation in place via cycle decomposition, so each
	// element is copied directly to its final slot with one O(1) temp
	// per cycle rather than allocating a whole second element array.
	visited := make([]bool, n)
	for i := 0; i < n; i++ {
		if visited[i] || order[i] == i {
			visited[i] = true
			continue
		}
		j := i
		tmp := *ptrs[i]
		for {
			visited[j] = true
			k := order[j]
			if k == i {
				*ptrs[j] = tmp
				break
			}
			*ptrs[j] = *ptrs[k]
			j = k
		}
	}
}

// SortOrdered sorts h ascending using T's natural order, for types that
// support it directly rather than needing a custom comparator.
func SortOrdered[T cmp.Ordered, S skipWord](h *Hive[T, S]) {
	h.Sort(func(a, b T) bool { return a < b })
}

// Unique collapses every run of consecutive equal elements (per the
// Hive's current iteration order, and equal as judged by eq) down to
// their first member, erasing the rest.
func (h *Hive[T, S]) Unique(eq func(a, b T) bool) {
	it := h.Begin()
	for !it.IsEnd() {
		nxt := it.Next()
		if nxt.IsEnd() {
			return
		}
		if !eq(*it.Get(), *nxt.Get()) {
			it = nxt
			continue
		}
		runEnd := nxt.Next()
		for !runEnd.IsEnd() && eq(*it.Get(), *runEnd.Get()) {
			runEnd = runEnd.Next()
		}
		h.EraseRange(nxt, runEnd)
	}
}

// UniqueComparable collapses runs of consecutive == elements, for types
// that support direct comparison.
func UniqueComparable[T comparable, S skipWord](h *Hive[T, S]) {
	h.Unique(func(a, b T) bool { return a == b })
}

// EraseIf removes every element for which pred returns true, and returns
// the number of elements removed.
func EraseIf[T any, S skipWord](h *Hive[T, S], pred func(T) bool) int {
	removed := 0
	for it := h.Begin(); !it.IsEnd(); {
		if pred(*it.Get()) {
			it = h.Erase(it)
			removed++
		} else {
			it = it.Next()
		}
	}
	return removed
}

// Erase removes every element equal to value, and returns the number of
// elements removed.
func Erase[T comparable, S skipWord](h *Hive[T, S], value T) int {
	return EraseIf(h, func(v T) bool { return v == value })
}
