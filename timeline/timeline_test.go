package timeline

import (
	"fmt"
	"testing"
)

// ---------------------------------------------------------------------------
// Shared test fixtures
// ---------------------------------------------------------------------------

// stubItem is a bare dated item.
type stubItem string

func (s stubItem) Key() string { return string(s) }

func keys(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Key()
	}
	return out
}

func dayItems(year string, n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = stubItem(fmt.Sprintf("%s-01-%02d", year, i+1))
	}
	return items
}

// fakePort is an in-memory scroll surface.
type fakePort struct {
	top    int
	height int
	sets   int
}

func (p *fakePort) ScrollTop() int      { return p.top }
func (p *fakePort) ViewportHeight() int { return p.height }
func (p *fakePort) SetScrollTop(top int, smooth bool) {
	p.top = top
	p.sets++
}

// settle plays render frames until layout stabilizes: every windowed item is
// measured with its true height, then the deferred flush runs.
func settle(t *testing.T, e *Engine, truth func(key string) int) {
	t.Helper()
	for pass := 0; pass < 20; pass++ {
		win := e.Window()
		for i := win.Start; i <= win.End; i++ {
			key := e.Sequence().At(i).Key()
			e.ReportHeight(key, truth(key))
		}
		changed := e.Flush()
		if !changed && !e.FrameScheduled() {
			return
		}
	}
	t.Fatal("layout did not settle within 20 frames")
}

// ---------------------------------------------------------------------------
// Sequence
// ---------------------------------------------------------------------------

func TestSequence_MergeAppendsNewerPage(t *testing.T) {
	s := NewSequence()
	s.Merge([]Item{stubItem("2024-12-30"), stubItem("2025-01-02"), stubItem("2025-06-10")})

	pre, app := s.Merge([]Item{stubItem("2026-03-01"), stubItem("2026-08-15")})
	if pre != 0 || app != 2 {
		t.Fatalf("want 0 prepended / 2 appended, got %d / %d", pre, app)
	}
	got := keys(s.Items())
	want := []string{"2024-12-30", "2025-01-02", "2025-06-10", "2026-03-01", "2026-08-15"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order broken at %d: want %s, got %s", i, want[i], got[i])
		}
	}
}

func TestSequence_MergePrependsOlderPage(t *testing.T) {
	s := NewSequence()
	s.Merge([]Item{stubItem("2024-12-30"), stubItem("2025-01-02"), stubItem("2025-06-10")})

	pre, app := s.Merge([]Item{stubItem("2023-02-11"), stubItem("2023-09-01")})
	if pre != 2 || app != 0 {
		t.Fatalf("want 2 prepended / 0 appended, got %d / %d", pre, app)
	}
	if s.Items()[0].Key() != "2023-02-11" {
		t.Errorf("want 2023-02-11 first, got %s", s.Items()[0].Key())
	}
	if pos, _ := s.PositionOf("2024-12-30"); pos != 2 {
		t.Errorf("want 2024-12-30 shifted to position 2, got %d", pos)
	}
}

func TestSequence_MergeDropsDuplicateKeys(t *testing.T) {
	s := NewSequence()
	s.Merge([]Item{stubItem("2025-01-02"), stubItem("2025-06-10")})

	pre, app := s.Merge([]Item{stubItem("2025-06-10"), stubItem("2025-12-24")})
	if pre != 0 || app != 1 {
		t.Fatalf("duplicate should be dropped: want 0/1, got %d/%d", pre, app)
	}
	count := 0
	for _, it := range s.Items() {
		if it.Key() == "2025-06-10" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("want exactly one 2025-06-10, got %d", count)
	}
}

func TestSequence_HeightStaysAttachedAcrossPrepend(t *testing.T) {
	// spec scenario: the height recorded for 2024-12-30 must remain attached
	// to that key after an older page is merged in front of it.
	s := NewSequence()
	s.Merge([]Item{stubItem("2024-12-30"), stubItem("2025-01-02"), stubItem("2025-06-10")})

	hs := NewHeightStore(3)
	hs.Record("2024-12-30", 7)
	hs.Commit()

	s.Merge([]Item{stubItem("2023-02-11"), stubItem("2023-09-01")})

	if got := hs.Get("2024-12-30"); got != 7 {
		t.Errorf("height detached by prepend: want 7, got %d", got)
	}
	pos, ok := s.PositionOf("2024-12-30")
	if !ok || pos != 2 {
		t.Fatalf("want 2024-12-30 at position 2, got %d (ok=%v)", pos, ok)
	}
	ix := BuildOffsets(s, hs, 1)
	if h := ix.HeightOf(pos); h != 7 {
		t.Errorf("offset index should see the recorded height: want 7, got %d", h)
	}
}

func TestSequence_FirstKeyOfPage(t *testing.T) {
	s := NewSequence()
	s.Merge([]Item{stubItem("2024-12-30"), stubItem("2025-01-02"), stubItem("2025-06-10")})

	if i, ok := s.FirstKeyOfPage("2025"); !ok || i != 1 {
		t.Errorf("want first 2025 item at 1, got %d (ok=%v)", i, ok)
	}
	if _, ok := s.FirstKeyOfPage("2027"); ok {
		t.Error("unloaded page should not resolve")
	}
}

func TestPageOf(t *testing.T) {
	if got := PageOf("2025-06-10"); got != "2025" {
		t.Errorf("want 2025, got %s", got)
	}
}
