package timeline

import "testing"

func TestHeightStore_EstimateFallback(t *testing.T) {
	hs := NewHeightStore(3)
	if got := hs.Get("2025-01-01"); got != 3 {
		t.Errorf("unmeasured item: want estimate 3, got %d", got)
	}
	hs.Record("2025-01-01", 6)
	if got := hs.Get("2025-01-01"); got != 6 {
		t.Errorf("want recorded 6, got %d", got)
	}
}

func TestHeightStore_CommitBumpsEpochOncePerBatch(t *testing.T) {
	hs := NewHeightStore(3)
	start := hs.Epoch()

	hs.Record("2025-01-01", 4)
	hs.Record("2025-01-02", 5)
	hs.Record("2025-01-03", 2)
	if hs.Epoch() != start {
		t.Error("Record must not bump the epoch before Commit")
	}
	if !hs.Commit() {
		t.Fatal("Commit after changes should report a new epoch")
	}
	if hs.Epoch() != start+1 {
		t.Errorf("one batch, one bump: want %d, got %d", start+1, hs.Epoch())
	}
	if hs.Commit() {
		t.Error("Commit without new measurements must be a no-op")
	}
}

func TestHeightStore_UnchangedRecordIsNoop(t *testing.T) {
	hs := NewHeightStore(3)
	hs.Record("2025-01-01", 4)
	hs.Commit()
	if hs.Record("2025-01-01", 4) {
		t.Error("re-recording the same height should not dirty the store")
	}
	if hs.Commit() {
		t.Error("no-op record must not produce a new epoch")
	}
}

func TestHeightStore_IgnoresNonPositiveHeights(t *testing.T) {
	hs := NewHeightStore(3)
	hs.Record("2025-01-01", 5)
	hs.Commit()

	if hs.Record("2025-01-01", 0) || hs.Record("2025-01-01", -2) {
		t.Error("anomalous measurements must be ignored")
	}
	if got := hs.Get("2025-01-01"); got != 5 {
		t.Errorf("prior value must be retained: want 5, got %d", got)
	}
}

func TestHeightStore_InvalidateAll(t *testing.T) {
	hs := NewHeightStore(3)
	hs.Record("2025-01-01", 8)
	hs.Commit()
	epoch := hs.Epoch()

	hs.InvalidateAll()
	if hs.Epoch() != epoch+1 {
		t.Error("InvalidateAll must bump the epoch")
	}
	if hs.Measured("2025-01-01") {
		t.Error("InvalidateAll must drop every measurement")
	}
	if got := hs.Get("2025-01-01"); got != 3 {
		t.Errorf("want estimate 3 after invalidation, got %d", got)
	}
}
