package timeline

import (
	"fmt"
	"testing"
)

func buildIndex(t *testing.T, heights []int, gap int) (*OffsetIndex, *Sequence) {
	t.Helper()
	s := NewSequence()
	hs := NewHeightStore(3)
	items := make([]Item, len(heights))
	for i, h := range heights {
		key := fmt.Sprintf("2025-01-%02d", i+1)
		items[i] = stubItem(key)
		hs.Record(key, h)
	}
	hs.Commit()
	s.Merge(items)
	return BuildOffsets(s, hs, gap), s
}

func TestOffsets_MonotonicAndSized(t *testing.T) {
	ix, s := buildIndex(t, []int{1, 4, 2, 7, 3}, 1)
	if got := len(ix.offsets); got != s.Len()+1 {
		t.Fatalf("want count+1 offsets (%d), got %d", s.Len()+1, got)
	}
	for i := 1; i < len(ix.offsets); i++ {
		if ix.offsets[i] < ix.offsets[i-1] {
			t.Fatalf("offsets must be non-decreasing, broke at %d: %v", i, ix.offsets)
		}
	}
	// heights 1+4+2+7+3 = 17, plus 5 gaps of 1.
	if got := ix.Total(); got != 22 {
		t.Errorf("want total 22, got %d", got)
	}
}

func TestOffsets_IndexForOffsetBounds(t *testing.T) {
	ix, s := buildIndex(t, []int{2, 5, 3, 4}, 1)
	if got := ix.IndexForOffset(0); got != 0 {
		t.Errorf("IndexForOffset(0): want 0, got %d", got)
	}
	if got := ix.IndexForOffset(ix.Total()); got != s.Len()-1 {
		t.Errorf("IndexForOffset(total): want %d, got %d", s.Len()-1, got)
	}
	if got := ix.IndexForOffset(-10); got != 0 {
		t.Errorf("negative offset clamps to 0, got %d", got)
	}
	if got := ix.IndexForOffset(ix.Total() + 100); got != s.Len()-1 {
		t.Errorf("past-end offset clamps to last, got %d", got)
	}
}

func TestOffsets_IndexForOffsetPicksGreatestAtOrBelow(t *testing.T) {
	// heights 2,5,3 with gap 1 → offsets 0,3,9,13.
	ix, _ := buildIndex(t, []int{2, 5, 3}, 1)
	cases := []struct{ x, want int }{
		{0, 0}, {2, 0}, {3, 1}, {8, 1}, {9, 2}, {12, 2},
	}
	for _, c := range cases {
		if got := ix.IndexForOffset(c.x); got != c.want {
			t.Errorf("IndexForOffset(%d): want %d, got %d", c.x, c.want, got)
		}
	}
}

func TestOffsets_HeightOf(t *testing.T) {
	ix, _ := buildIndex(t, []int{2, 5, 3}, 1)
	for i, want := range []int{2, 5, 3} {
		if got := ix.HeightOf(i); got != want {
			t.Errorf("HeightOf(%d): want %d, got %d", i, want, got)
		}
	}
}

func TestOffsets_EmptySequence(t *testing.T) {
	s := NewSequence()
	ix := BuildOffsets(s, NewHeightStore(3), 1)
	if ix.Count() != 0 || ix.Total() != 0 {
		t.Errorf("empty index: want count 0 total 0, got %d/%d", ix.Count(), ix.Total())
	}
	if got := ix.IndexForOffset(5); got != 0 {
		t.Errorf("empty index lookup: want 0, got %d", got)
	}
}
