package timeline

// Window is the slice of the sequence a host should materialize, plus the
// spacer extents that stand in for everything outside it. An empty sequence
// yields {Start: 0, End: -1}.
type Window struct {
	Start int
	End   int

	// TopSpacer and BottomSpacer are the line extents of the unmaterialized
	// content above Start and below End. A host reserves this space instead
	// of rendering or measuring the items it covers.
	TopSpacer    int
	BottomSpacer int
}

// Empty reports whether the window contains no items.
func (w Window) Empty() bool { return w.End < w.Start }

// SelectWindow computes the visible item range for a scroll position. The
// overscan margin widens the range on both sides so small scrolls do not
// immediately force new layout. The result is deterministic for identical
// inputs.
func SelectWindow(ix *OffsetIndex, scrollTop, viewportHeight, overscan int) Window {
	if ix.Count() == 0 {
		return Window{Start: 0, End: -1}
	}
	top := scrollTop - overscan
	if top < 0 {
		top = 0
	}
	start := ix.IndexForOffset(top)
	end := ix.IndexForOffset(scrollTop + viewportHeight + overscan)
	if end > ix.Count()-1 {
		end = ix.Count() - 1
	}
	return Window{
		Start:        start,
		End:          end,
		TopSpacer:    ix.OffsetOf(start),
		BottomSpacer: ix.Total() - ix.OffsetOf(end+1),
	}
}
