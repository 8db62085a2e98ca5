package hive

// state.go — internal block-lifecycle bookkeeping shared by insert.go
// and erase.go: growing the live-blocks list, the unused-block cache,
// and the groups-with-erasures list.
//
// Grounded on the arena-growth and free-arena-reuse bookkeeping in
// PooledQuantumQueue (queue.go's arena growth when the handle pool is
// exhausted), adapted from a single flat arena to the hive's chained
// per-block arenas.

// popCachedBlock removes and returns the most recently cached unused
// block, or nil if the cache is empty.
func (h *Hive[T, S]) popCachedBlock() *block[T, S] {
	b := h.cacheHead
	if b == nil {
		return nil
	}
	h.cacheHead = b.cacheNext
	return b
}

// pushCachedBlock returns b to the unused-block cache for later reuse,
// used when erasing b's last live element empties it (even if it was the
// only live block), by Clear, and by Reserve.
func (h *Hive[T, S]) pushCachedBlock(b *block[T, S]) {
	b.cacheNext = h.cacheHead
	h.cacheHead = b
}

// pushErasuresBlock adds b to the groups-with-erasures list, used the
// first time one of b's elements is erased.
func (h *Hive[T, S]) pushErasuresBlock(b *block[T, S]) {
	b.erasuresNext = h.erasuresHead
	h.erasuresHead = b
}

// popErasuresBlockWithRoom returns, without removing it, the block at the
// head of the groups-with-erasures list, or nil if none have reclaimable
// skipblocks. Any head entries whose free list is empty are dropped from
// the list first; claimSlot already unlinks a block once its free list is
// drained, so this only guards against such stale entries.
func (h *Hive[T, S]) popErasuresBlockWithRoom() *block[T, S] {
	for h.erasuresHead != nil && !h.erasuresHead.hasFreeList() {
		h.erasuresHead = h.erasuresHead.erasuresNext
	}
	return h.erasuresHead
}

// unlinkErasuresBlock removes b from the groups-with-erasures list once
// its free list has been fully reclaimed.
func (h *Hive[T, S]) unlinkErasuresBlock(b *block[T, S]) {
	if h.erasuresHead == b {
		h.erasuresHead = b.erasuresNext
		b.erasuresNext = nil
		return
	}
	for cur := h.erasuresHead; cur != nil; cur = cur.erasuresNext {
		if cur.erasuresNext == b {
			cur.erasuresNext = b.erasuresNext
			b.erasuresNext = nil
			return
		}
	}
}

// unlinkLiveBlock detaches b from the live doubly-linked list, used when
// erasing b's last element empties it.
func (h *Hive[T, S]) unlinkLiveBlock(b *block[T, S]) {
	if b.prev != nil {
		b.prev.next = b.next
	} else {
		h.headBlock = b.next
	}
	if b.next != nil {
		b.next.prev = b.prev
	} else {
		h.tailBlock = b.prev
	}
	b.next, b.prev = nil, nil
}

// appendNewBlock grows the container by one block, reusing a cached
// unused block if one is available, or allocating a fresh one sized by
// the growth policy. initialSize is 1 when the new block is created to
// immediately host an insertion.
func (h *Hive[T, S]) appendNewBlock(initialSize int) *block[T, S] {
	capacity := nextBlockCapacity(h.size, h.limits.Min, h.limits.Max)

	var b *block[T, S]
	if cached := h.popCachedBlock(); cached != nil {
		cached.reset(initialSize, nil, h.tailBlock, h.nextGroupNumber)
		b = cached
	} else {
		b = newBlock[T, S](S(capacity), initialSize, h.nextGroupNumber)
		b.prev = h.tailBlock
	}
	h.nextGroupNumber++

	if h.tailBlock != nil {
		h.tailBlock.next = b
	} else {
		h.headBlock = b
	}
	h.tailBlock = b
	return b
}

// renumberFrom reassigns sequential group numbers starting from b through
// the end of the live list, keeping group numbers contiguous after Erase
// removes an emptied block from the chain and after Splice links another
// Hive's blocks on. The reference implementation instead decrements
// every later group's number by exactly one on removal; renumbering from
// the removal point is simpler to get right in this port and costs the
// same asymptotically (one pass over the later blocks). See DESIGN.md.
func (h *Hive[T, S]) renumberFrom(start *block[T, S]) {
	n := uint64(0)
	if start != nil {
		n = start.groupNumber
	}
	for b := start; b != nil; b = b.next {
		b.groupNumber = n
		n++
	}
	h.nextGroupNumber = n
}
