package timeline

// Direction identifies which edge of the sequence a load extends.
type Direction int

const (
	// Older extends the sequence upward (prepend).
	Older Direction = iota
	// Newer extends the sequence downward (append).
	Newer
)

func (d Direction) String() string {
	if d == Older {
		return "older"
	}
	return "newer"
}

// Pagination tracks which pages are loaded and runs the per-direction
// Idle → Loading → Idle state machine. The in-flight flag is checked and
// set in one synchronous step (Begin) before any asynchronous fetch starts,
// so rapid repeated edge-crossings cannot start duplicate loads.
type Pagination struct {
	index    []string
	pos      map[string]int
	loaded   map[string]bool
	inflight [2]bool
	errs     [2]error
	autoload bool
}

// NewPagination returns an empty controller. SetIndex must succeed before
// any load can begin.
func NewPagination() *Pagination {
	return &Pagination{
		pos:    make(map[string]int),
		loaded: make(map[string]bool),
	}
}

// SetIndex installs the full ordered list of available page keys. An empty
// index is a DataShapeError.
func (p *Pagination) SetIndex(keys []string) error {
	if len(keys) == 0 {
		return &DataShapeError{Reason: "empty"}
	}
	p.index = append(p.index[:0:0], keys...)
	p.pos = make(map[string]int, len(keys))
	for i, k := range keys {
		p.pos[k] = i
	}
	return nil
}

// Index returns the known page keys in order.
func (p *Pagination) Index() []string { return p.index }

// Has reports whether key is a known page.
func (p *Pagination) Has(key string) bool {
	_, ok := p.pos[key]
	return ok
}

// EnableAutoload arms automatic edge-triggered loading. Called on the first
// user interaction so nothing loads behind the user's back on first paint.
func (p *Pagination) EnableAutoload() { p.autoload = true }

// AutoloadEnabled reports whether edge-triggered loading is armed.
func (p *Pagination) AutoloadEnabled() bool { return p.autoload }

// MarkLoaded records a page as merged into the sequence.
func (p *Pagination) MarkLoaded(key string) { p.loaded[key] = true }

// Loaded reports whether a page has been merged.
func (p *Pagination) Loaded(key string) bool { return p.loaded[key] }

// Adjacent returns the next unloaded page key beyond the loaded range in
// the given direction, or false when the range already touches that end of
// the index (or nothing is loaded yet).
func (p *Pagination) Adjacent(dir Direction) (string, bool) {
	lo, hi := -1, -1
	for key := range p.loaded {
		i, ok := p.pos[key]
		if !ok {
			continue
		}
		if lo == -1 || i < lo {
			lo = i
		}
		if i > hi {
			hi = i
		}
	}
	if lo == -1 {
		return "", false
	}
	if dir == Older {
		if lo == 0 {
			return "", false
		}
		return p.index[lo-1], true
	}
	if hi == len(p.index)-1 {
		return "", false
	}
	return p.index[hi+1], true
}

// InFlight reports whether a load is running for dir.
func (p *Pagination) InFlight(dir Direction) bool { return p.inflight[dir] }

// Begin transitions dir from Idle to Loading. Returns false when a load is
// already in flight for that direction.
func (p *Pagination) Begin(dir Direction) bool {
	if p.inflight[dir] {
		return false
	}
	p.inflight[dir] = true
	return true
}

// Finish transitions dir back to Idle. A non-nil err is recorded as the
// sticky per-direction error; success clears it.
func (p *Pagination) Finish(dir Direction, err error) {
	p.inflight[dir] = false
	p.errs[dir] = err
}

// Err returns the sticky error for dir, if any.
func (p *Pagination) Err(dir Direction) error { return p.errs[dir] }
