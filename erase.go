package hive

// erase.go — single and ranged erasure, Clear and Reset.
//
// Grounded on plf_hive.h's erase() (the skipfield-update dispatch lives
// in skipfield.go). EraseRange is a loop over the single-element path;
// Clear and Reset work on whole blocks directly instead.

// Erase removes the element at it and returns a cursor to the next live
// element (the end sentinel if it was the last). it is invalidated by
// this call; using it afterward is a bug, same as in the reference
// implementation.
func (h *Hive[T, S]) Erase(it Iterator[T, S]) Iterator[T, S] {
	b := it.blk
	idx := it.idx
	next := it.Next()

	var zero T
	b.elements[idx] = zero

	hadFreeList := b.hasFreeList()
	b.eraseUpdateSkipfield(idx)
	h.size--

	if b.size == 0 {
		nb, gn := b.next, b.groupNumber
		h.unlinkLiveBlock(b)
		if nb != nil {
			nb.groupNumber = gn
			h.renumberFrom(nb)
		}
		if hadFreeList {
			h.unlinkErasuresBlock(b)
		}
		h.pushCachedBlock(b)
		traceBlock("block-released-to-cache", b.groupNumber, b.size)
	} else if !hadFreeList {
		h.pushErasuresBlock(b)
	}

	return next
}

// EraseRange removes every element in [first,last) and returns a cursor
// equivalent to last (the element last named before any were erased, or
// the end sentinel).
//
// The reference implementation's erase(first,last) is a dedicated
// single-pass algorithm over whole skipblocks. This port instead loops
// single-element Erase calls: behaviourally identical, and far simpler
// to get right, at the cost of repeating work (skipfield rewrites,
// free-list churn) the batched version would amortise. See DESIGN.md.
func (h *Hive[T, S]) EraseRange(first, last Iterator[T, S]) Iterator[T, S] {
	cur := first
	for !cur.Equal(last) {
		cur = h.Erase(cur)
	}
	return cur
}

// Clear erases every element but keeps the currently allocated blocks,
// so subsequent insertions don't need to reallocate.
func (h *Hive[T, S]) Clear() {
	for b := h.headBlock; b != nil; {
		nextB := b.next
		var zero T
		for i := 0; i < b.lastEndpoint; i++ {
			b.elements[i] = zero
		}
		b.reset(0, nil, nil, b.groupNumber)
		h.pushCachedBlock(b)
		b = nextB
	}
	h.headBlock = nil
	h.tailBlock = nil
	h.erasuresHead = nil
	h.size = 0
}

// Reset erases every element and releases all backing storage, including
// the unused-block cache. Every outstanding Iterator and pointer into
// this Hive is invalidated.
func (h *Hive[T, S]) Reset() {
	h.headBlock = nil
	h.tailBlock = nil
	h.erasuresHead = nil
	h.cacheHead = nil
	h.size = 0
	h.nextGroupNumber = 0
}
