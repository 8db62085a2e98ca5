package hive

import (
	"math/rand"
	"testing"
)

func TestReserveGrowsCapacityWithoutLiveElements(t *testing.T) {
	h := New[int]()
	if err := h.Reserve(500); err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}
	if h.Capacity() < 500 {
		t.Fatalf("Capacity = %d after Reserve(500)", h.Capacity())
	}
	if h.Size() != 0 {
		t.Fatalf("Reserve should not change Size")
	}
}

func TestReserveRejectsOverflow(t *testing.T) {
	h := New8[int]()
	hard := h.BlockCapacityHardLimits()
	if err := h.Reserve(hard.Max + 1); err == nil {
		t.Fatalf("expected ErrCapacity for reserve beyond MaxSize")
	}
}

func TestTrimReleasesUnusedCache(t *testing.T) {
	h := New[int]()
	h.Reserve(1000)
	before := h.Capacity()
	h.Trim()
	if h.Capacity() >= before {
		t.Fatalf("Trim should shrink capacity: before=%d after=%d", before, h.Capacity())
	}
}

func TestShrinkToFitPreservesElementsAndReclaimsErasedSpace(t *testing.T) {
	h := New8[int]()
	var its []Iterator[int, uint8]
	for i := 0; i < 30; i++ {
		its = append(its, h.Insert(i))
	}
	for i := 0; i < 30; i += 3 {
		h.Erase(its[i])
	}
	before := h.Capacity()
	h.ShrinkToFit()
	if h.Capacity() >= before {
		t.Fatalf("ShrinkToFit should reclaim capacity: before=%d after=%d", before, h.Capacity())
	}
	if h.Size() != 20 {
		t.Fatalf("Size after ShrinkToFit = %d, want 20", h.Size())
	}
}

func TestReshapeConsolidatesOutOfRangeBlocks(t *testing.T) {
	h := New[int]()
	for i := 0; i < 100; i++ {
		h.Insert(i)
	}
	if err := h.Reshape(Limits{Min: 8, Max: 16}); err != nil {
		t.Fatalf("Reshape failed: %v", err)
	}
	if h.Size() != 100 {
		t.Fatalf("Size after Reshape = %d, want 100", h.Size())
	}
	sum := 0
	for it := h.Begin(); !it.IsEnd(); it = it.Next() {
		sum += *it.Get()
	}
	if sum != 100*99/2 {
		t.Fatalf("sum after Reshape = %d, want %d", sum, 100*99/2)
	}
}

func TestSpliceMovesAllElements(t *testing.T) {
	a := New[int]()
	for i := 0; i < 10; i++ {
		a.Insert(i)
	}
	b := New[int]()
	for i := 10; i < 20; i++ {
		b.Insert(i)
	}
	if err := a.Splice(b); err != nil {
		t.Fatalf("Splice failed: %v", err)
	}
	if a.Size() != 20 {
		t.Fatalf("Size after Splice = %d, want 20", a.Size())
	}
	if !b.Empty() {
		t.Fatalf("other Hive should be empty after Splice")
	}
	sum := 0
	for it := a.Begin(); !it.IsEnd(); it = it.Next() {
		sum += *it.Get()
	}
	if sum != 19*20/2 {
		t.Fatalf("sum after Splice = %d, want %d", sum, 19*20/2)
	}
}

// Scenario: given h1={1..10} and h2={11..20}, h1.splice(h2): h2.empty(),
// h1.size==20, the multiset of h1 equals {1..20}, invariants hold on
// both.
func TestSpliceScenarioTenAndTen(t *testing.T) {
	h1 := New[int]()
	for i := 1; i <= 10; i++ {
		h1.Insert(i)
	}
	h2 := New[int]()
	for i := 11; i <= 20; i++ {
		h2.Insert(i)
	}

	if err := h1.Splice(h2); err != nil {
		t.Fatalf("Splice failed: %v", err)
	}
	if !h2.Empty() {
		t.Fatalf("h2 should be empty after splice, has size %d", h2.Size())
	}
	if h1.Size() != 20 {
		t.Fatalf("h1.Size() = %d, want 20", h1.Size())
	}

	seen := make(map[int]bool, 20)
	for it := h1.Begin(); !it.IsEnd(); it = it.Next() {
		seen[*it.Get()] = true
	}
	for v := 1; v <= 20; v++ {
		if !seen[v] {
			t.Fatalf("value %d missing from h1 after splice", v)
		}
	}
	if len(seen) != 20 {
		t.Fatalf("h1 holds %d distinct values after splice, want 20", len(seen))
	}
	if h1.Capacity() < h1.Size() {
		t.Fatalf("invariant violated: Capacity() %d < Size() %d", h1.Capacity(), h1.Size())
	}
}

// Regresses the bug where Splice linked other's blocks directly after a
// partially-filled tail block without first sealing its trailing
// unclaimed capacity into a skipblock, permanently losing that capacity
// (never live, never in any free list, no longer the tail).
func TestSpliceSealsTailBlockTrailingHole(t *testing.T) {
	h1 := New8[int]()
	h1.Insert(1) // tail block now has capacity 8, lastEndpoint 1.

	h2 := New8[int]()
	for i := 0; i < 8; i++ {
		h2.Insert(100 + i)
	}

	capBefore := h1.Capacity() + h2.Capacity()
	if err := h1.Splice(h2); err != nil {
		t.Fatalf("Splice failed: %v", err)
	}
	if h1.Capacity() != capBefore {
		t.Fatalf("Capacity() = %d after Splice, want %d (no capacity should be lost)", h1.Capacity(), capBefore)
	}

	// The 7 never-claimed slots in h1's old tail block must now be
	// reclaimable: inserting 7 more elements should not grow capacity.
	for i := 0; i < 7; i++ {
		h1.Insert(200 + i)
	}
	if h1.Capacity() != capBefore {
		t.Fatalf("Capacity() = %d after reinserting into the sealed hole, want %d (should have been reclaimed, not regrown)", h1.Capacity(), capBefore)
	}
}

func TestSpliceRejectsIncompatibleBlockCapacities(t *testing.T) {
	h1, err := NewWithLimits[int, uint16](Limits{Min: 8, Max: 16})
	if err != nil {
		t.Fatalf("NewWithLimits failed: %v", err)
	}
	h1.Insert(1)

	h2, err := NewWithLimits[int, uint16](Limits{Min: 8, Max: 4096})
	if err != nil {
		t.Fatalf("NewWithLimits failed: %v", err)
	}
	if err := h2.Reserve(64); err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}
	h2.Insert(2)

	before1, before2 := h1.Size(), h2.Size()
	if err := h1.Splice(h2); err == nil {
		t.Fatalf("expected Splice to reject h2's out-of-range block capacity")
	}
	if h1.Size() != before1 || h2.Size() != before2 {
		t.Fatalf("rejected Splice should not mutate either Hive: h1=%d (was %d) h2=%d (was %d)", h1.Size(), before1, h2.Size(), before2)
	}
}

func TestSortOrdersElements(t *testing.T) {
	h := New[int]()
	for _, v := range []int{5, 3, 8, 1, 9, 2} {
		h.Insert(v)
	}
	SortOrdered[int, uint16](h)
	var got []int
	for it := h.Begin(); !it.IsEnd(); it = it.Next() {
		got = append(got, *it.Get())
	}
	want := []int{1, 2, 3, 5, 8, 9}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sort result = %v, want %v", got, want)
		}
	}
}

func TestSortKeepsIteratorsLive(t *testing.T) {
	h := New[int]()
	it := h.Insert(3)
	h.Insert(1)
	h.Insert(2)
	SortOrdered[int, uint16](h)
	// it still names a live slot, though its value may have moved.
	if it.IsEnd() {
		t.Fatalf("iterator became end sentinel after Sort")
	}
	_ = it.Get()
}

func TestUniqueCollapsesConsecutiveRuns(t *testing.T) {
	h := New[int]()
	for _, v := range []int{1, 1, 1, 2, 3, 3, 1} {
		h.Insert(v)
	}
	UniqueComparable[int, uint16](h)
	var got []int
	for it := h.Begin(); !it.IsEnd(); it = it.Next() {
		got = append(got, *it.Get())
	}
	want := []int{1, 2, 3, 1}
	if len(got) != len(want) {
		t.Fatalf("Unique result = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Unique result = %v, want %v", got, want)
		}
	}
}

// Scenario: build a hive of (1,2,1,0,2,1,0,1,2,0); unique(); assert the
// surviving sequence is unchanged, since unique removes only adjacent
// duplicates and this sequence, despite repeating every value several
// times, has none adjacent.
func TestUniqueDoesNotEraseNonAdjacentRepeats(t *testing.T) {
	seq := []int{1, 2, 1, 0, 2, 1, 0, 1, 2, 0}
	h := New[int]()
	for _, v := range seq {
		h.Insert(v)
	}
	UniqueComparable[int, uint16](h)
	var got []int
	for it := h.Begin(); !it.IsEnd(); it = it.Next() {
		got = append(got, *it.Get())
	}
	if len(got) != len(seq) {
		t.Fatalf("Unique erased non-adjacent repeats: got %v, want %v unchanged", got, seq)
	}
	for i := range seq {
		if got[i] != seq[i] {
			t.Fatalf("Unique changed the sequence: got %v, want %v unchanged", got, seq)
		}
	}
}

// Scenario: insert 50,000 random integers; copy to h2; h2.sort(); assert
// h2 is non-descending and is_permutation(h1,h2).
func TestSortScenarioFiftyThousandIsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	values := make([]int, 50_000)
	for i := range values {
		values[i] = rng.Intn(1 << 30)
	}

	h1 := New[int]()
	h1.InsertSlice(values)

	h2 := New[int]()
	h2.InsertSlice(values)
	SortOrdered[int, uint16](h2)

	sorted := make([]int, 0, 50_000)
	prev := -1
	for it := h2.Begin(); !it.IsEnd(); it = it.Next() {
		v := *it.Get()
		if v < prev {
			t.Fatalf("h2 not non-descending at value %d after previous %d", v, prev)
		}
		prev = v
		sorted = append(sorted, v)
	}
	if len(sorted) != len(values) {
		t.Fatalf("h2 holds %d elements after Sort, want %d", len(sorted), len(values))
	}

	h1Counts := make(map[int]int, len(values))
	for it := h1.Begin(); !it.IsEnd(); it = it.Next() {
		h1Counts[*it.Get()]++
	}
	for _, v := range sorted {
		h1Counts[v]--
	}
	for v, c := range h1Counts {
		if c != 0 {
			t.Fatalf("is_permutation failed: value %d has count delta %d between h1 and sorted h2", v, c)
		}
	}
}

func TestEraseByValue(t *testing.T) {
	h := New[int]()
	for _, v := range []int{1, 2, 3, 2, 4, 2} {
		h.Insert(v)
	}
	n := Erase[int, uint16](h, 2)
	if n != 3 {
		t.Fatalf("Erase removed %d elements, want 3", n)
	}
	if h.Size() != 3 {
		t.Fatalf("Size after Erase = %d, want 3", h.Size())
	}
}

func TestEraseIf(t *testing.T) {
	h := New[int]()
	for i := 0; i < 20; i++ {
		h.Insert(i)
	}
	n := EraseIf[int, uint16](h, func(v int) bool { return v%2 == 0 })
	if n != 10 {
		t.Fatalf("EraseIf removed %d, want 10", n)
	}
	for it := h.Begin(); !it.IsEnd(); it = it.Next() {
		if *it.Get()%2 == 0 {
			t.Fatalf("even element %d survived EraseIf", *it.Get())
		}
	}
}
