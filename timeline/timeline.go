// Package timeline implements the windowed-rendering and scroll-anchoring
// engine behind the gamecal feed: a chronologically ordered list that grows
// in both directions (older and newer year pages load on demand) and whose
// item heights are unknown until first layout.
//
// Key properties:
//   - Heights are cached per item key with an estimate fallback, so only the
//     items a host has actually rendered carry real measurements.
//   - A prefix-sum offset index maps scroll offsets to item indices by
//     binary search; the window selector derives the materialized slice plus
//     spacer extents from it.
//   - Prepending older pages keeps the viewport visually stable: a
//     best-effort shift happens immediately and a bounded convergence loop
//     snaps the anchor item back into place as real heights arrive.
//   - "Jump to item" requests go through the same convergence loop, with a
//     coarse-then-fine protocol for targets far outside the rendered region.
//
// All units are terminal lines. The engine is single-threaded: every method
// must be called from the host's update loop, and asynchronous page fetches
// re-enter through ApplyPage/FailPage.
package timeline

import "sort"

// Item is one dated entry in the feed. The engine only needs the
// chronological key; content stays opaque to it.
type Item interface {
	// Key returns the item's chronological key as an ISO date
	// ("2006-01-02"). Keys are unique within a sequence and their
	// lexicographic order is date order.
	Key() string
}

// Sequence is the full, currently loaded ordered list of items. It grows by
// prepending older pages or appending newer ones and only shrinks on a full
// reset.
type Sequence struct {
	items   []Item
	pos     map[string]int
	version uint64
}

// NewSequence returns an empty sequence.
func NewSequence() *Sequence {
	return &Sequence{pos: make(map[string]int)}
}

// Len returns the number of loaded items.
func (s *Sequence) Len() int { return len(s.items) }

// At returns the item at position i.
func (s *Sequence) At(i int) Item { return s.items[i] }

// Items returns the backing slice. Callers must not mutate it.
func (s *Sequence) Items() []Item { return s.items }

// PositionOf resolves an item key to its current position.
func (s *Sequence) PositionOf(key string) (int, bool) {
	i, ok := s.pos[key]
	return i, ok
}

// Version increases on every structural change. The offset index uses it as
// part of its memoization key.
func (s *Sequence) Version() uint64 { return s.version }

// FirstKeyOfPage returns the position of the first item whose key belongs to
// the given page (year prefix). The second return is false when no loaded
// item is on that page.
func (s *Sequence) FirstKeyOfPage(page string) (int, bool) {
	i := sort.Search(len(s.items), func(i int) bool {
		return s.items[i].Key() >= page
	})
	if i < len(s.items) && PageOf(s.items[i].Key()) == page {
		return i, true
	}
	return 0, false
}

// Merge folds a fetched page into the sequence. Incoming items must be
// sorted by key ascending. Duplicate keys are dropped, not merged. Because
// pages cover disjoint date ranges, the surviving items land either entirely
// before the current first key (prepend) or after the current last key
// (append). Returns how many items were prepended and appended.
func (s *Sequence) Merge(items []Item) (prepended, appended int) {
	fresh := items[:0:0]
	for _, it := range items {
		if _, dup := s.pos[it.Key()]; dup {
			continue
		}
		fresh = append(fresh, it)
	}
	if len(fresh) == 0 {
		return 0, 0
	}
	if len(s.items) == 0 {
		s.items = append(s.items, fresh...)
		appended = len(fresh)
	} else {
		firstKey := s.items[0].Key()
		var head, tail []Item
		for _, it := range fresh {
			if it.Key() < firstKey {
				head = append(head, it)
			} else {
				tail = append(tail, it)
			}
		}
		if len(head) > 0 {
			s.items = append(head, s.items...)
			prepended = len(head)
		}
		if len(tail) > 0 {
			s.items = append(s.items, tail...)
			appended = len(tail)
		}
	}
	s.reindex()
	return prepended, appended
}

// Reset replaces the sequence wholesale (filter change, teardown).
func (s *Sequence) Reset(items []Item) {
	s.items = append(s.items[:0:0], items...)
	s.reindex()
}

func (s *Sequence) reindex() {
	s.pos = make(map[string]int, len(s.items))
	for i, it := range s.items {
		s.pos[it.Key()] = i
	}
	s.version++
}

// PageOf maps an item key to its page key (the calendar year prefix).
func PageOf(key string) string {
	if len(key) < 4 {
		return key
	}
	return key[:4]
}
