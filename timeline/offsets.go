package timeline

import "sort"

// OffsetIndex is a prefix-sum table over item heights plus the fixed
// inter-item gap: offsets[0] = 0 and offsets[i+1] = offsets[i] + height(i) +
// gap. It is a pure function of (sequence, height store, gap); the engine
// memoizes it by sequence version and measurement epoch.
type OffsetIndex struct {
	offsets []int
	gap     int
}

// BuildOffsets computes the index for the current sequence and heights.
func BuildOffsets(seq *Sequence, hs *HeightStore, gap int) *OffsetIndex {
	n := seq.Len()
	offsets := make([]int, n+1)
	for i := 0; i < n; i++ {
		offsets[i+1] = offsets[i] + hs.Get(seq.At(i).Key()) + gap
	}
	return &OffsetIndex{offsets: offsets, gap: gap}
}

// Count returns the number of items covered.
func (ix *OffsetIndex) Count() int { return len(ix.offsets) - 1 }

// Total returns the total content extent in lines.
func (ix *OffsetIndex) Total() int { return ix.offsets[len(ix.offsets)-1] }

// OffsetOf returns the top offset of item i. i may be Count() (the end of
// the content).
func (ix *OffsetIndex) OffsetOf(i int) int { return ix.offsets[i] }

// HeightOf returns item i's height without the trailing gap.
func (ix *OffsetIndex) HeightOf(i int) int {
	return ix.offsets[i+1] - ix.offsets[i] - ix.gap
}

// IndexForOffset returns the greatest i with offsets[i] <= x, clamped to
// [0, Count()-1]. An empty index returns 0.
func (ix *OffsetIndex) IndexForOffset(x int) int {
	count := ix.Count()
	if count == 0 || x <= 0 {
		return 0
	}
	// First index whose offset exceeds x, minus one.
	i := sort.Search(len(ix.offsets), func(i int) bool {
		return ix.offsets[i] > x
	}) - 1
	if i > count-1 {
		i = count - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
