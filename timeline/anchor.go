package timeline

// Align says where a jump should place its target in the viewport.
type Align int

const (
	AlignTop Align = iota
	AlignCenter
)

// The three ways the engine can owe the viewport a correction. They share
// one pending queue and one convergence loop instead of three parallel
// mechanisms.
type correctionKind int

const (
	// correctPrepend restores the pre-prepend viewport position: keep the
	// item that was at the top of the viewport at its old on-screen line.
	correctPrepend correctionKind = iota
	// correctJump places a target item at the requested alignment.
	correctJump
	// correctReflow restores an item's offset relative to the viewport
	// center after a locale or filter reflow voided all measurements.
	correctReflow
)

// correction is an ephemeral request processed on each new measurement
// epoch until it converges, its budget runs out, or its anchor item
// disappears from the sequence.
type correction struct {
	kind  correctionKind
	key   string
	align Align // jump only

	// delta is the anchor's recorded screen-relative offset:
	// prepend — item top minus scroll top; reflow — item top minus the
	// viewport's vertical center.
	delta int

	remaining int
	lastEpoch uint64
	smooth    bool
}

// target computes the scroll top this correction wants under the current
// offset index. ok is false when the anchor item is gone.
func (c *correction) target(e *Engine, ix *OffsetIndex) (int, bool) {
	pos, ok := e.seq.PositionOf(c.key)
	if !ok {
		return 0, false
	}
	itemTop := ix.OffsetOf(pos)
	vh := e.port.ViewportHeight()
	var want int
	switch c.kind {
	case correctPrepend:
		want = itemTop - c.delta
	case correctJump:
		if c.align == AlignCenter {
			want = itemTop - vh/2 + ix.HeightOf(pos)/2
		} else {
			want = itemTop
		}
	case correctReflow:
		want = itemTop - vh/2 - c.delta
	}
	return clampTop(want, ix.Total(), vh), true
}

// runCorrections advances every pending correction against a newly
// committed epoch. A correction never acts on an epoch it has already
// consumed; once within tolerance it is discarded as converged, and once
// its budget is spent it is discarded without further forcing.
func (e *Engine) runCorrections(epoch uint64) {
	if len(e.pending) == 0 {
		return
	}
	if e.seq.Len() == 0 {
		e.pending = e.pending[:0]
		return
	}
	ix := e.Offsets()
	kept := e.pending[:0]
	for i := range e.pending {
		c := e.pending[i]
		if epoch <= c.lastEpoch {
			kept = append(kept, c)
			continue
		}
		want, ok := c.target(e, ix)
		if !ok {
			continue
		}
		if abs(want-e.port.ScrollTop()) <= e.cfg.Tolerance {
			continue
		}
		if c.remaining <= 0 {
			continue
		}
		c.remaining--
		c.lastEpoch = epoch
		e.port.SetScrollTop(want, false)
		kept = append(kept, c)
	}
	e.pending = kept
}

// push applies a correction's current target immediately and queues it for
// per-epoch refinement. A correction whose anchor item is already gone is
// dropped outright.
func (e *Engine) push(c correction) {
	c.remaining = e.cfg.MaxCorrections
	c.lastEpoch = e.heights.Epoch()
	want, ok := c.target(e, e.Offsets())
	if !ok {
		return
	}
	e.port.SetScrollTop(want, c.smooth)
	e.pending = append(e.pending, c)
}
