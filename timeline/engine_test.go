package timeline

import (
	"errors"
	"testing"
)

func TestEngine_OffsetsMemoized(t *testing.T) {
	e, _ := newTestEngine(t, 10)
	loadPage(t, e, "2025", dayItems("2025", 5))

	a := e.Offsets()
	if b := e.Offsets(); a != b {
		t.Error("unchanged sequence and epoch must reuse the offset index")
	}

	e.ReportHeight("2025-01-03", 8)
	e.Flush()
	if b := e.Offsets(); a == b {
		t.Error("a new epoch must rebuild the offset index")
	}
}

func TestEngine_TwoPhaseJumpWaitsTwoFrames(t *testing.T) {
	e, port := newTestEngine(t, 10)
	loadPage(t, e, "2024", dayItems("2024", 12))
	loadPage(t, e, "2025", dayItems("2025", 12))
	settle(t, e, trueHeight)

	port.top = 0
	e.ObserveScroll(0)

	target := "2025-01-08"
	if !e.JumpTo(target, AlignTop, false) {
		t.Fatal("JumpTo refused a loaded key")
	}

	// Coarse phase: snapped to the first item of the 2025 page.
	coarsePos, _ := e.Sequence().FirstKeyOfPage("2025")
	if want := e.Offsets().OffsetOf(coarsePos); port.top != want {
		t.Errorf("coarse phase: want scrollTop %d, got %d", want, port.top)
	}
	if !e.FrameScheduled() {
		t.Fatal("a staged jump must keep frames coming")
	}

	// Layout settles for two frames before the precise phase starts.
	e.Flush()
	coarseTop := port.top
	if pos, _ := e.Sequence().PositionOf(target); e.Offsets().OffsetOf(pos) == coarseTop {
		t.Skip("degenerate geometry: coarse and precise targets coincide")
	}
	e.Flush()
	pos, _ := e.Sequence().PositionOf(target)
	if want := e.Offsets().OffsetOf(pos); port.top != want {
		t.Errorf("precise phase: want scrollTop %d, got %d", want, port.top)
	}

	settle(t, e, trueHeight)
	pos, _ = e.Sequence().PositionOf(target)
	if got := abs(e.Offsets().OffsetOf(pos) - port.top); got > e.Config().Tolerance {
		t.Errorf("two-phase jump should converge on target (±%d), off by %d",
			e.Config().Tolerance, got)
	}
}

func TestEngine_InWindowJumpSkipsCoarsePhase(t *testing.T) {
	e, port := newTestEngine(t, 10)
	loadPage(t, e, "2025", dayItems("2025", 12))
	settle(t, e, trueHeight)

	win := e.Window()
	key := e.Sequence().At(win.Start + 1).Key()
	e.JumpTo(key, AlignTop, false)
	if e.staged != nil {
		t.Error("an in-window target must not stage a coarse jump")
	}
	pos, _ := e.Sequence().PositionOf(key)
	if want := e.Offsets().OffsetOf(pos); port.top != want {
		t.Errorf("direct jump: want scrollTop %d, got %d", want, port.top)
	}
}

func TestEngine_JumpToUnloadedKeyRefused(t *testing.T) {
	e, _ := newTestEngine(t, 10)
	loadPage(t, e, "2025", dayItems("2025", 5))
	if e.JumpTo("2026-05-01", AlignTop, false) {
		t.Error("JumpTo must refuse keys that are not in the sequence")
	}
}

func TestEngine_ClosedEngineDropsResults(t *testing.T) {
	e, port := newTestEngine(t, 10)
	req, ok := e.RequestPage("2025")
	if !ok {
		t.Fatal("RequestPage refused")
	}
	e.Close()

	// The fetch completes after teardown: its result must not apply.
	e.ApplyPage(req, dayItems("2025", 5))
	if e.Sequence().Len() != 0 {
		t.Error("a closed engine must drop fetch results")
	}
	if e.ReportHeight("2025-01-01", 4) {
		t.Error("a closed engine must ignore measurements")
	}
	if e.JumpTo("2025-01-01", AlignTop, false) {
		t.Error("a closed engine must refuse jumps")
	}
	if e.Flush() {
		t.Error("a closed engine must not move the viewport")
	}
	_ = port
}

func TestEngine_FailPageAfterCloseIsIgnored(t *testing.T) {
	e, _ := newTestEngine(t, 10)
	req, _ := e.RequestPage("2025")
	e.Close()
	e.FailPage(req, errors.New("late failure"))
	if e.Pages().Err(Newer) != nil {
		t.Error("errors arriving after Close must not surface")
	}
}

func TestEngine_WindowTracksScrollPort(t *testing.T) {
	e, port := newTestEngine(t, 8)
	loadPage(t, e, "2025", dayItems("2025", 20))

	top := e.Window()
	port.top = 40
	mid := e.Window()
	if top == mid {
		t.Error("window must follow the scroll position")
	}
	if mid.Start <= top.Start {
		t.Errorf("scrolling down must advance the window start: %d → %d", top.Start, mid.Start)
	}
}
