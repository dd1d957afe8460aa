package timeline

// HeightStore caches measured item heights (in terminal lines) with an
// estimate fallback for items that have never been laid out.
//
// Entries are keyed by the item's stable date key rather than by position,
// so measurements stay attached to the right item across prepends without
// any index remapping; positional offsets are derived through the
// sequence's key→position lookup instead.
//
// The epoch counter correlates "new layout information is available" with
// pending scroll corrections: Record marks the store dirty, and Commit bumps
// the epoch once per committed batch of measurements.
type HeightStore struct {
	estimate int
	heights  map[string]int
	epoch    uint64
	dirty    bool
}

// NewHeightStore returns a store that falls back to estimate lines for
// unmeasured items.
func NewHeightStore(estimate int) *HeightStore {
	if estimate < 1 {
		estimate = 1
	}
	return &HeightStore{
		estimate: estimate,
		heights:  make(map[string]int),
	}
}

// Estimate returns the fallback height.
func (hs *HeightStore) Estimate() int { return hs.estimate }

// Record stores a measured height. Non-positive measurements are anomalies
// and are ignored, keeping any prior value. Recording the same height again
// is a no-op. Returns whether the store changed.
func (hs *HeightStore) Record(key string, lines int) bool {
	if lines <= 0 {
		return false
	}
	if prev, ok := hs.heights[key]; ok && prev == lines {
		return false
	}
	hs.heights[key] = lines
	hs.dirty = true
	return true
}

// Get returns the measured height for key, or the estimate.
func (hs *HeightStore) Get(key string) int {
	if h, ok := hs.heights[key]; ok {
		return h
	}
	return hs.estimate
}

// Measured reports whether key has a real measurement.
func (hs *HeightStore) Measured(key string) bool {
	_, ok := hs.heights[key]
	return ok
}

// Len returns the number of measured entries.
func (hs *HeightStore) Len() int { return len(hs.heights) }

// Epoch returns the current measurement epoch. It only ever increases.
func (hs *HeightStore) Epoch() uint64 { return hs.epoch }

// Commit seals the current batch of recorded measurements. The epoch is
// bumped only when at least one Record changed the store since the last
// Commit. Returns whether a new epoch began.
func (hs *HeightStore) Commit() bool {
	if !hs.dirty {
		return false
	}
	hs.dirty = false
	hs.epoch++
	return true
}

// InvalidateAll drops every measurement and bumps the epoch. Used when
// content reshapes in a way that voids prior layout (locale or filter
// change).
func (hs *HeightStore) InvalidateAll() {
	hs.heights = make(map[string]int)
	hs.dirty = false
	hs.epoch++
}
