package timeline

// Config collects the engine's tunable constants. None of them are derived;
// hosts adjust them to taste.
type Config struct {
	// EstimateHeight is the assumed line height for unmeasured items.
	EstimateHeight int
	// Gap is the fixed number of blank lines between consecutive items.
	Gap int
	// Overscan widens the materialized window beyond the viewport on both
	// sides, in lines.
	Overscan int
	// EdgeThreshold is how close (in lines) the viewport must get to an
	// edge of the loaded content before the adjacent page loads.
	EdgeThreshold int
	// Tolerance is the maximum scroll discrepancy (in lines) a correction
	// accepts as converged.
	Tolerance int
	// MaxCorrections bounds how many epochs a single pending correction may
	// act on before it is discarded.
	MaxCorrections int
}

// DefaultConfig returns the tunables used by the gamecal feed.
func DefaultConfig() Config {
	return Config{
		EstimateHeight: 3,
		Gap:            1,
		Overscan:       10,
		EdgeThreshold:  8,
		Tolerance:      1,
		MaxCorrections: 5,
	}
}

// FetchRequest tells the host to fetch one page. The corresponding
// in-flight flag is already set when the request is handed out; the host
// must answer with ApplyPage or FailPage.
type FetchRequest struct {
	Dir  Direction
	Page string
}

// stagedJump is the coarse phase of a two-phase jump: the viewport has been
// snapped to the first item of the target page and the precise jump starts
// after the remaining render frames settle.
type stagedJump struct {
	key    string
	align  Align
	frames int
	smooth bool
}

// Engine owns the sequence, the height cache, pagination, and the pending
// correction queue, and coordinates them against a host-provided
// ScrollPort. It is not safe for concurrent use; everything runs on the
// host's update loop.
type Engine struct {
	cfg  Config
	port ScrollPort

	seq     *Sequence
	heights *HeightStore
	pages   *Pagination

	// Offset index memo, valid for (ixVersion, ixEpoch).
	ix        *OffsetIndex
	ixVersion uint64
	ixEpoch   uint64

	pending []correction
	staged  *stagedJump
	flush   frameDebouncer

	lastTop int
	lastDir int // -1 moving toward older content, +1 toward newer, 0 none

	closed bool
}

// New constructs an engine over the given scroll port.
func New(cfg Config, port ScrollPort) *Engine {
	return &Engine{
		cfg:     cfg,
		port:    port,
		seq:     NewSequence(),
		heights: NewHeightStore(cfg.EstimateHeight),
		pages:   NewPagination(),
	}
}

// Close tears the engine down: results and measurements arriving afterwards
// are dropped.
func (e *Engine) Close() {
	e.closed = true
	e.pending = e.pending[:0]
	e.staged = nil
}

// Sequence exposes the loaded item sequence.
func (e *Engine) Sequence() *Sequence { return e.seq }

// Heights exposes the height store.
func (e *Engine) Heights() *HeightStore { return e.heights }

// Pages exposes the pagination controller.
func (e *Engine) Pages() *Pagination { return e.pages }

// Config returns the engine's tunables.
func (e *Engine) Config() Config { return e.cfg }

// SetPageIndex installs the available page keys. An empty index is fatal
// (DataShapeError).
func (e *Engine) SetPageIndex(keys []string) error {
	return e.pages.SetIndex(keys)
}

// Offsets returns the offset index for the current sequence and epoch,
// rebuilding it only when either changed.
func (e *Engine) Offsets() *OffsetIndex {
	if e.ix == nil || e.ixVersion != e.seq.Version() || e.ixEpoch != e.heights.Epoch() {
		e.ix = BuildOffsets(e.seq, e.heights, e.cfg.Gap)
		e.ixVersion = e.seq.Version()
		e.ixEpoch = e.heights.Epoch()
	}
	return e.ix
}

// Window returns the item range the host should materialize right now.
func (e *Engine) Window() Window {
	return SelectWindow(e.Offsets(), e.port.ScrollTop(), e.port.ViewportHeight(), e.cfg.Overscan)
}

// NoteInteraction records the session's first user interaction, arming
// automatic pagination.
func (e *Engine) NoteInteraction() { e.pages.EnableAutoload() }

// ObserveScroll ingests a scroll position change, derives the scroll
// direction, and returns a fetch request when the move qualifies as an
// edge-cross. At most one request per direction can be outstanding.
func (e *Engine) ObserveScroll(top int) *FetchRequest {
	if top > e.lastTop {
		e.lastDir = 1
	} else if top < e.lastTop {
		e.lastDir = -1
	}
	e.lastTop = top
	return e.maybeFetch()
}

// maybeFetch checks both edges against the trigger conditions: proximity,
// direction of travel, autoload armed, an adjacent unloaded page, and no
// load already in flight. The in-flight flag is set before returning.
func (e *Engine) maybeFetch() *FetchRequest {
	if e.closed || !e.pages.AutoloadEnabled() || e.seq.Len() == 0 {
		return nil
	}
	ix := e.Offsets()
	top := e.port.ScrollTop()
	if e.lastDir < 0 && top <= e.cfg.EdgeThreshold {
		if req := e.beginAdjacent(Older); req != nil {
			return req
		}
	}
	if e.lastDir > 0 {
		bottomGap := ix.Total() - (top + e.port.ViewportHeight())
		if bottomGap <= e.cfg.EdgeThreshold {
			if req := e.beginAdjacent(Newer); req != nil {
				return req
			}
		}
	}
	return nil
}

func (e *Engine) beginAdjacent(dir Direction) *FetchRequest {
	page, ok := e.pages.Adjacent(dir)
	if !ok || e.pages.Loaded(page) {
		return nil
	}
	if !e.pages.Begin(dir) {
		return nil
	}
	return &FetchRequest{Dir: dir, Page: page}
}

// RequestPage begins an explicit load of one page (initial load, or a jump
// across unloaded years). Returns false when the page is unknown, already
// loaded, or its direction is busy.
func (e *Engine) RequestPage(page string) (FetchRequest, bool) {
	if e.closed || !e.pages.Has(page) || e.pages.Loaded(page) {
		return FetchRequest{}, false
	}
	dir := Newer
	if e.seq.Len() > 0 && page < PageOf(e.seq.At(0).Key()) {
		dir = Older
	}
	if !e.pages.Begin(dir) {
		return FetchRequest{}, false
	}
	return FetchRequest{Dir: dir, Page: page}, true
}

// ApplyPage merges a fetched page into the sequence. Older-page merges
// register a prepend anchor so the content the user was viewing does not
// visibly shift; an immediate best-effort shift happens here and the
// convergence loop refines it as real heights arrive. Results for a closed
// engine are dropped.
func (e *Engine) ApplyPage(req FetchRequest, items []Item) {
	if e.closed {
		return
	}
	e.pages.Finish(req.Dir, nil)
	e.pages.MarkLoaded(req.Page)

	var anchor string
	var delta int
	if e.seq.Len() > 0 {
		win := e.Window()
		if !win.Empty() {
			anchor = e.seq.At(win.Start).Key()
			delta = e.Offsets().OffsetOf(win.Start) - e.port.ScrollTop()
		}
	}

	prepended, _ := e.seq.Merge(items)
	if prepended > 0 && anchor != "" {
		// With estimate heights for the new items, the correction's first
		// application equals the n × (estimate + gap) shift.
		e.push(correction{kind: correctPrepend, key: anchor, delta: delta})
	}
	e.lastTop = e.port.ScrollTop()
}

// FailPage records a fetch failure as the direction's sticky error. No
// automatic retry happens; the next qualifying edge-cross tries again.
func (e *Engine) FailPage(req FetchRequest, err error) {
	if e.closed {
		return
	}
	e.pages.Finish(req.Dir, &NetworkError{Page: req.Page, Err: err})
}

// ReportHeight records one measured item height. Returns true when the host
// should schedule the (single) next-frame flush.
func (e *Engine) ReportHeight(key string, lines int) bool {
	if e.closed {
		return false
	}
	if !e.heights.Record(key, lines) {
		return false
	}
	return e.flush.request()
}

// Flush runs the deferred per-frame work: commit the measurement batch,
// advance a staged two-phase jump, and run the convergence loop against the
// new epoch. Returns true when the scroll position or layout may have
// changed and the host should re-lay out.
func (e *Engine) Flush() bool {
	if e.closed {
		return false
	}
	fired := e.flush.fire()
	changed := false
	if e.staged != nil {
		e.staged.frames--
		if e.staged.frames <= 0 {
			s := e.staged
			e.staged = nil
			e.push(correction{kind: correctJump, key: s.key, align: s.align, smooth: s.smooth})
			changed = true
		}
	}
	if fired && e.heights.Commit() {
		e.runCorrections(e.heights.Epoch())
		changed = true
	}
	return changed
}

// FrameScheduled reports whether a flush is pending. A host can use it to
// keep ticking while a staged jump waits for layout to settle.
func (e *Engine) FrameScheduled() bool { return e.flush.pending || e.staged != nil }

// JumpTo moves the viewport so the item with the given key lands at the
// requested alignment. Targets inside the materialized window converge
// directly; far targets go through the coarse-then-fine protocol — snap to
// the first item of the target's page, let two frames of layout settle,
// then converge on the precise target.
func (e *Engine) JumpTo(key string, align Align, smooth bool) bool {
	if e.closed {
		return false
	}
	pos, ok := e.seq.PositionOf(key)
	if !ok {
		return false
	}
	win := e.Window()
	if pos >= win.Start && pos <= win.End {
		e.push(correction{kind: correctJump, key: key, align: align, smooth: smooth})
		e.lastTop = e.port.ScrollTop()
		return true
	}
	coarse, ok := e.seq.FirstKeyOfPage(PageOf(key))
	if !ok {
		coarse = pos
	}
	e.port.SetScrollTop(clampTop(e.Offsets().OffsetOf(coarse), e.Offsets().Total(), e.port.ViewportHeight()), false)
	e.staged = &stagedJump{key: key, align: align, frames: 2, smooth: smooth}
	e.flush.request()
	e.lastTop = e.port.ScrollTop()
	return true
}

// Reflow handles a content reshape that voids every stored measurement
// (locale switch, filter change). The item under the viewport's vertical
// center and its offset relative to the center are recorded first; after
// the invalidation the convergence loop restores that relative position.
// A non-nil items slice also replaces the sequence (filter change).
func (e *Engine) Reflow(items []Item) {
	if e.closed {
		return
	}
	var anchor string
	var delta int
	if e.seq.Len() > 0 {
		ix := e.Offsets()
		center := e.port.ScrollTop() + e.port.ViewportHeight()/2
		pos := ix.IndexForOffset(center)
		anchor = e.seq.At(pos).Key()
		delta = ix.OffsetOf(pos) - center
	}
	if items != nil {
		e.seq.Reset(items)
	}
	e.heights.InvalidateAll()
	if e.seq.Len() == 0 {
		e.pending = e.pending[:0]
		e.staged = nil
		return
	}
	if anchor != "" {
		e.push(correction{kind: correctReflow, key: anchor, delta: delta})
	}
	e.lastTop = e.port.ScrollTop()
}
