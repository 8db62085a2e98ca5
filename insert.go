package hive

import "iter"

// insert.go — element insertion: single, bulk-by-count, bulk-from-slice
// and bulk-from-sequence, all following the reference implementation's
// slot-selection priority — reclaim an erased skipblock before growing
// the tail block, and only allocate a new block once the tail is full
// and nothing is reclaimable.

// Insert adds value to the Hive and returns a stable Iterator to it.
func (h *Hive[T, S]) Insert(value T) Iterator[T, S] {
	b, idx := h.claimSlot()
	b.elements[idx] = value
	return Iterator[T, S]{blk: b, idx: idx}
}

// claimSlot selects the slot the next inserted element will occupy,
// reclaiming from the groups-with-erasures list first, then the current
// tail block's unclaimed capacity, then growing by a new block.
func (h *Hive[T, S]) claimSlot() (*block[T, S], int) {
	if b := h.popErasuresBlockWithRoom(); b != nil {
		idx := b.claimFreeSlot()
		if !b.hasFreeList() {
			h.unlinkErasuresBlock(b)
		}
		h.size++
		return b, idx
	}

	if h.tailBlock != nil && !h.tailBlock.isFull() {
		b := h.tailBlock
		idx := b.firstUnclaimedSlot()
		b.lastEndpoint++
		b.size++
		h.size++
		return b, idx
	}

	b := h.appendNewBlock(1)
	h.size++
	return b, 0
}

// InsertN adds n copies of value and returns stable iterators to each,
// in insertion order.
func (h *Hive[T, S]) InsertN(n int, value T) []Iterator[T, S] {
	out := make([]Iterator[T, S], 0, n)
	for i := 0; i < n; i++ {
		out = append(out, h.Insert(value))
	}
	return out
}

// InsertSlice adds a copy of every element of values, returning stable
// iterators to each in the same order.
func (h *Hive[T, S]) InsertSlice(values []T) []Iterator[T, S] {
	out := make([]Iterator[T, S], 0, len(values))
	for _, v := range values {
		out = append(out, h.Insert(v))
	}
	return out
}

// InsertRange adds every value produced by seq, returning stable
// iterators to each in the order seq produced them.
//
// Bulk insertion offers only basic exception safety: if constructing or
// copying a later element panics partway through, the elements already
// inserted remain live in the Hive rather than being rolled back — it is
// left in a valid, but partially-modified, state. Single-element Insert
// is unaffected, since there's nothing partial for a single slot to roll
// back from.
func (h *Hive[T, S]) InsertRange(seq iter.Seq[T]) []Iterator[T, S] {
	var out []Iterator[T, S]
	for v := range seq {
		out = append(out, h.Insert(v))
	}
	return out
}

// Emplace adds value to the Hive, identically to Insert. Go has no
// separate in-place constructor-argument overload to distinguish from a
// plain insert — a literal value is already constructed before it's
// passed in — so Emplace exists only so callers porting code that
// distinguishes insert/emplace have a direct equivalent to reach for.
func (h *Hive[T, S]) Emplace(value T) Iterator[T, S] {
	return h.Insert(value)
}

// TryInsert adds the value produced by factory, offering strong
// exception safety: if factory returns an error, nothing is added and
// the Hive is left exactly as it was, matching spec.md §7's
// PropagatedConstructionFailure contract for the single-element path.
func (h *Hive[T, S]) TryInsert(factory func() (T, error)) (Iterator[T, S], error) {
	v, err := factory()
	if err != nil {
		var zero Iterator[T, S]
		return zero, err
	}
	return h.Insert(v), nil
}

// TryInsertN adds n elements produced by calling factory with each
// index in [0,n), offering the bulk counterpart to TryInsert's
// single-element strong safety: if factory returns an error, every
// element this call already added is erased again with Erase, so the
// Hive holds exactly the elements it held before the call, and a nil
// slice is returned with the error. Slots used by the call stay claimed
// (lastEndpoint is not wound back) and become reclaimable skipblocks,
// and any block the call allocated is left in the unused-block cache.
// This is the "basic safety with rollback" bulk-insert path spec.md
// §4.4/§9 describes as the main subtlety of bulk construction.
func (h *Hive[T, S]) TryInsertN(n int, factory func(i int) (T, error)) ([]Iterator[T, S], error) {
	out := make([]Iterator[T, S], 0, n)
	for i := 0; i < n; i++ {
		v, err := factory(i)
		if err != nil {
			for _, it := range out {
				h.Erase(it)
			}
			traceWarn("hive: bulk insert rolled back", err)
			return nil, err
		}
		out = append(out, h.Insert(v))
	}
	return out, nil
}

// Assign replaces the Hive's entire contents with n copies of value,
// releasing prior backing storage exactly as Reset does.
func (h *Hive[T, S]) Assign(n int, value T) []Iterator[T, S] {
	h.Reset()
	return h.InsertN(n, value)
}

// AssignRange replaces the Hive's entire contents with the values seq
// produces, releasing prior backing storage exactly as Reset does.
func (h *Hive[T, S]) AssignRange(seq iter.Seq[T]) []Iterator[T, S] {
	h.Reset()
	return h.InsertRange(seq)
}
