package hive

// skipfield.go — jump-counting skipfield maintenance and the intrusive
// per-block free list: the four erase cases, free-list push/unlink/move,
// and skipblock claiming on insert.
//
// Grounded on plf_hive.h's skipfield update logic (the erase() branches
// on left/right-neighbour-erased state) and on this codebase's
// PooledQuantumQueue free-list push/pop idiom (queue.go's freeHead-chain
// handling), adapted from a single global free list to one free list per
// block.

// pushFreeNode inserts idx as the new head of b's free list. The previous
// head (if any) gets its prev pointer set to idx; idx's next is wired to
// the previous head so the list stays LIFO: freeListHead always names the
// most recently created skipblock (extending or merging an existing
// skipblock does not move it to the head).
func (b *block[T, S]) pushFreeNode(idx S) {
	oldHead := b.freeListHead
	b.freeLinks[idx] = freeLink[S]{prev: noIndex[S](), next: oldHead}
	if oldHead != noIndex[S]() {
		b.freeLinks[oldHead].prev = idx
	}
	b.freeListHead = idx
}

// unlinkFreeNode removes idx from b's free list entirely (used when a
// skipblock is claimed whole by an insertion, or when two skipblocks
// merge and the absorbed one's node must disappear).
func (b *block[T, S]) unlinkFreeNode(idx S) {
	node := b.freeLinks[idx]
	if node.prev != noIndex[S]() {
		b.freeLinks[node.prev].next = node.next
	} else {
		b.freeListHead = node.next
	}
	if node.next != noIndex[S]() {
		b.freeLinks[node.next].prev = node.prev
	}
}

// moveFreeNode relocates a free-list node from oldIdx to newIdx without
// changing its position in the list — used when a skipblock shrinks from
// the front (its start slot moves forward but it stays linked in the
// same place in the LIFO order).
func (b *block[T, S]) moveFreeNode(oldIdx, newIdx S) {
	node := b.freeLinks[oldIdx]
	b.freeLinks[newIdx] = node
	if node.prev != noIndex[S]() {
		b.freeLinks[node.prev].next = newIdx
	} else {
		b.freeListHead = newIdx
	}
	if node.next != noIndex[S]() {
		b.freeLinks[node.next].prev = newIdx
	}
}

// eraseUpdateSkipfield updates the skipfield and free list after slot idx
// in block b becomes erased, dispatching on whether idx's immediate left
// and right neighbours are themselves already erased (skip != 0). This
// mirrors the four cases enumerated in plf_hive.h's erase().
func (b *block[T, S]) eraseUpdateSkipfield(idx int) {
	capacity := int(b.capacity)
	leftErased := idx > 0 && b.skipfield[idx-1] != 0
	rightErased := idx+1 < capacity && b.skipfield[idx+1] != 0

	switch {
	case !leftErased && !rightErased:
		// Case 1: isolated erasure. New skipblock of length 1.
		b.skipfield[idx] = 1
		b.pushFreeNode(S(idx))

	case !leftErased && rightErased:
		// Case 2: right neighbour starts a skipblock. idx becomes the new
		// start; the old start's free-list node moves to idx.
		rightRunLen := int(b.skipfield[idx+1])
		newLen := rightRunLen + 1
		oldStart := idx + 1
		writeSkipRun(b.skipfield, idx, newLen)
		b.moveFreeNode(S(oldStart), S(idx))

	case leftErased && !rightErased:
		// Case 3: left neighbour ends a skipblock. idx extends it; the
		// skipblock's start index (and thus its free-list node) is unchanged.
		leftRunLen := int(b.skipfield[idx-1])
		start := idx - leftRunLen
		newLen := leftRunLen + 1
		writeSkipRun(b.skipfield, start, newLen)

	default:
		// Case 4: both neighbours erased — merge two skipblocks across idx.
		// The right skipblock's node is dropped; the left's is kept in place.
		leftRunLen := int(b.skipfield[idx-1])
		rightRunLen := int(b.skipfield[idx+1])
		start := idx - leftRunLen
		rightStart := idx + 1
		newLen := leftRunLen + 1 + rightRunLen
		b.unlinkFreeNode(S(rightStart))
		writeSkipRun(b.skipfield, start, newLen)
	}

	b.size--
}

// writeSkipRun stamps a skipblock of the given length starting at start,
// writing the run length at both endpoints and zero everywhere between.
// Only the endpoints are ever read, so an interior erased slot reads as 0
// just like a live slot: skipfield[i] == 0 alone does not mean slot i is
// live.
func writeSkipRun[S skipWord](skipfield []S, start, length int) {
	end := start + length - 1
	skipfield[start] = S(length)
	skipfield[end] = S(length)
	for i := start + 1; i < end; i++ {
		skipfield[i] = 0
	}
}

// claimFreeSlot claims one slot from b's most recently created skipblock
// (the free-list head) for a new element, shrinking the skipblock from
// its front if more than one slot remains, or popping it entirely if it
// was exactly one slot. Returns the claimed index. Must only be called
// when b.hasFreeList() is true.
func (b *block[T, S]) claimFreeSlot() int {
	start := int(b.freeListHead)
	runLen := int(b.skipfield[start])

	if runLen == 1 {
		b.unlinkFreeNode(S(start))
		b.skipfield[start] = 0
		b.size++
		return start
	}

	newStart := start + 1
	newLen := runLen - 1
	writeSkipRun(b.skipfield, newStart, newLen)
	b.moveFreeNode(S(start), S(newStart))
	b.skipfield[start] = 0
	b.size++
	return start
}

// firstUnclaimedSlot returns the next never-yet-used slot in b, valid
// only when !b.isFull().
func (b *block[T, S]) firstUnclaimedSlot() int {
	return b.lastEndpoint
}

// sealTrailingHole converts b's unclaimed capacity (the [lastEndpoint,
// capacity) range no insertion has ever touched) into one ordinary
// reclaimable skipblock and advances lastEndpoint to capacity. Used
// before a block stops being the tail — e.g. Splice linking another
// Hive's blocks on after it — since only the tail block is allowed
// unclaimed capacity; every other live block must be fully claimed,
// with holes tracked purely through the free list. A no-op if b is
// already full. Reports whether b already had a free list before the
// call, so the caller knows whether b still needs linking into the
// groups-with-erasures list.
func (b *block[T, S]) sealTrailingHole() (alreadyHadFreeList bool) {
	alreadyHadFreeList = b.hasFreeList()
	if b.isFull() {
		return alreadyHadFreeList
	}
	start := b.lastEndpoint
	length := int(b.capacity) - start
	writeSkipRun(b.skipfield, start, length)
	b.pushFreeNode(S(start))
	b.lastEndpoint = int(b.capacity)
	return alreadyHadFreeList
}
