package timeline

import (
	"fmt"
	"testing"
)

// trueHeight is a deterministic stand-in for real layout: height depends on
// the item's day so every item differs from the estimate.
func trueHeight(key string) int {
	day := int(key[len(key)-2]-'0')*10 + int(key[len(key)-1]-'0')
	return 2 + day%4
}

func TestAnchor_PrependKeepsViewportStable(t *testing.T) {
	e, port := newTestEngine(t, 10)
	loadPage(t, e, "2025", dayItems("2025", 14))
	settle(t, e, trueHeight)

	// Scroll into the middle and let the window there get measured.
	port.top = 20
	e.ObserveScroll(20)
	settle(t, e, trueHeight)

	win := e.Window()
	anchorKey := e.Sequence().At(win.Start).Key()
	before := e.Offsets().OffsetOf(win.Start) - port.top

	loadPage(t, e, "2024", dayItems("2024", 9))
	settle(t, e, trueHeight)

	pos, ok := e.Sequence().PositionOf(anchorKey)
	if !ok {
		t.Fatalf("anchor %s vanished", anchorKey)
	}
	after := e.Offsets().OffsetOf(pos) - port.top
	if abs(after-before) > 2 {
		t.Errorf("anchor %s moved %d→%d on screen (want within 2 lines)",
			anchorKey, before, after)
	}
}

func TestAnchor_PrependShiftsImmediatelyByEstimate(t *testing.T) {
	e, port := newTestEngine(t, 10)
	loadPage(t, e, "2025", dayItems("2025", 14))

	port.top = 20
	e.ObserveScroll(20)

	n := 9
	loadPage(t, e, "2024", dayItems("2024", n))

	// Before any measurement of the new items, the best-effort shift is
	// exactly n × (estimate + gap).
	cfg := e.Config()
	want := 20 + n*(cfg.EstimateHeight+cfg.Gap)
	if port.top != want {
		t.Errorf("immediate shift: want scrollTop %d, got %d", want, port.top)
	}
}

func TestAnchor_CenteredJumpFormula(t *testing.T) {
	e, port := newTestEngine(t, 10)
	loadPage(t, e, "2025", dayItems("2025", 14))
	settle(t, e, trueHeight)

	port.top = 0
	e.ObserveScroll(0)
	settle(t, e, trueHeight)

	win := e.Window()
	pos := win.Start + 1
	key := e.Sequence().At(pos).Key()
	e.JumpTo(key, AlignCenter, false)

	ix := e.Offsets()
	want := clampTop(ix.OffsetOf(pos)-10/2+ix.HeightOf(pos)/2, ix.Total(), 10)
	if port.top != want {
		t.Errorf("centered jump: want scrollTop %d, got %d", want, port.top)
	}
}

func TestAnchor_CenteredJumpClampsToContent(t *testing.T) {
	e, port := newTestEngine(t, 10)
	loadPage(t, e, "2025", dayItems("2025", 6))
	settle(t, e, trueHeight)

	// First item centered would need a negative scroll top.
	e.JumpTo(e.Sequence().At(0).Key(), AlignCenter, false)
	if port.top != 0 {
		t.Errorf("jump target must clamp at 0, got %d", port.top)
	}
}

func TestAnchor_CorrectionBudgetExhaustion(t *testing.T) {
	e, port := newTestEngine(t, 10)
	loadPage(t, e, "2025", dayItems("2025", 28))
	settle(t, e, trueHeight)

	// Jump far down, then keep flapping the height of an item above the
	// target so the wanted offset never stabilizes.
	target := e.Sequence().At(25).Key()
	e.JumpTo(target, AlignTop, false)
	for e.FrameScheduled() {
		e.Flush()
	}
	if len(e.pending) == 0 {
		t.Fatal("expected a pending jump correction")
	}

	flapper := e.Sequence().At(20).Key()
	for i := 0; i < 4*e.Config().MaxCorrections; i++ {
		h := 3
		if i%2 == 0 {
			h = 9
		}
		e.ReportHeight(flapper, h)
		e.Flush()
		if len(e.pending) == 0 {
			break
		}
	}
	if len(e.pending) != 0 {
		t.Errorf("unstable correction must be discarded after %d attempts, still pending: %d",
			e.Config().MaxCorrections, len(e.pending))
	}
	_ = port
}

func TestAnchor_ReflowPreservesCenterItem(t *testing.T) {
	e, port := newTestEngine(t, 10)
	loadPage(t, e, "2025", dayItems("2025", 14))
	settle(t, e, trueHeight)

	port.top = 18
	e.ObserveScroll(18)
	settle(t, e, trueHeight)

	ix := e.Offsets()
	center := port.top + 10/2
	pos := ix.IndexForOffset(center)
	key := e.Sequence().At(pos).Key()
	before := ix.OffsetOf(pos) - center

	// Locale switch: every height changes, all measurements void.
	taller := func(k string) int { return trueHeight(k) + 2 }
	e.Reflow(nil)
	if e.Heights().Len() != 0 {
		t.Fatal("reflow must invalidate every measurement")
	}
	settle(t, e, taller)

	ix = e.Offsets()
	pos, ok := e.Sequence().PositionOf(key)
	if !ok {
		t.Fatalf("center anchor %s vanished", key)
	}
	after := ix.OffsetOf(pos) - (port.top + 10/2)
	if abs(after-before) > 2 {
		t.Errorf("center anchor drifted %d→%d relative to center (want within 2)",
			before, after)
	}
}

func TestAnchor_PendingDiscardedWhenSequenceEmpties(t *testing.T) {
	e, port := newTestEngine(t, 10)
	loadPage(t, e, "2025", dayItems("2025", 14))
	settle(t, e, trueHeight)

	e.JumpTo(e.Sequence().At(10).Key(), AlignTop, false)
	e.Reflow([]Item{}) // filter matched nothing
	if len(e.pending) != 0 {
		t.Errorf("empty sequence must discard pending corrections, got %d", len(e.pending))
	}
	_ = port
}

func TestAnchor_ConvergedJumpLandsOnTarget(t *testing.T) {
	e, port := newTestEngine(t, 12)
	loadPage(t, e, "2025", func() []Item {
		items := make([]Item, 40)
		for i := range items {
			items[i] = stubItem(fmt.Sprintf("2025-02-%02d", i+1))
		}
		return items
	}())
	settle(t, e, trueHeight)

	target := e.Sequence().At(33).Key()
	e.JumpTo(target, AlignTop, false)
	settle(t, e, trueHeight)

	pos, _ := e.Sequence().PositionOf(target)
	if got := abs(e.Offsets().OffsetOf(pos) - port.top); got > e.Config().Tolerance {
		t.Errorf("converged jump should put target at top (±%d), off by %d",
			e.Config().Tolerance, got)
	}
}
