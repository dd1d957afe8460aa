package timeline

// ScrollPort adapts the physical scrollable surface. The host's feed
// component implements it over its own scroll state; units are terminal
// lines.
type ScrollPort interface {
	// ScrollTop returns the current content offset at the top of the
	// viewport.
	ScrollTop() int

	// ViewportHeight returns the number of visible content lines.
	ViewportHeight() int

	// SetScrollTop moves the viewport. When smooth is true the host may
	// animate the move over a few frames; corrections always pass false.
	SetScrollTop(top int, smooth bool)
}

// frameDebouncer coalesces layout work into a single next-frame callback:
// many Record calls within one frame schedule one flush. It is independent
// of any toolkit frame API — the host decides how "next frame" is
// delivered and calls fire when it arrives.
type frameDebouncer struct {
	pending bool
}

// request marks a flush as needed. Returns true only when this call armed
// the debouncer, i.e. the host should schedule exactly one frame callback.
func (d *frameDebouncer) request() bool {
	if d.pending {
		return false
	}
	d.pending = true
	return true
}

// fire consumes the pending flag. Returns false for spurious frames.
func (d *frameDebouncer) fire() bool {
	if !d.pending {
		return false
	}
	d.pending = false
	return true
}

func clampTop(top, total, viewport int) int {
	max := total - viewport
	if max < 0 {
		max = 0
	}
	if top > max {
		top = max
	}
	if top < 0 {
		top = 0
	}
	return top
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
