// Package feed renders the windowed release timeline. It is the scroll port
// the timeline engine drives: the engine decides which items materialize and
// where the viewport sits; the feed renders exactly that window, measures the
// rendered heights, and reports them back.
//
// Key properties:
//   - Per-item render cache keyed by release key, invalidated wholesale on
//     width or locale changes.
//   - Items are laid out at their indexed heights (estimates until a
//     measurement batch commits), so spacer arithmetic and screen lines never
//     drift apart within a frame.
//   - Only the engine's window is rendered; everything outside it is spacer.
package feed

import (
	"sort"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/gamecal/gamecal/client"
	"github.com/gamecal/gamecal/style"
	"github.com/gamecal/gamecal/timeline"
)

type cachedRender struct {
	content string
	height  int
	width   int
}

// Model is the feed render host. It must be a pointer: the engine keeps a
// reference to it as its scroll port.
type Model struct {
	engine *timeline.Engine

	width  int
	height int
	top    int

	locale   Locale
	platform string // empty = all platforms

	// selected is the key of the cursor row; it survives prepends because
	// keys are stable.
	selected string

	// all retains every fetched release regardless of the active filter so
	// filter changes can rebuild the sequence without refetching.
	all map[string]client.Release

	cache map[string]cachedRender
}

// New constructs an empty feed.
func New(locale Locale) *Model {
	return &Model{
		locale: locale,
		all:    make(map[string]client.Release),
		cache:  make(map[string]cachedRender),
	}
}

// SetEngine attaches the engine after construction; the engine's scroll port
// is this model, so the two reference each other.
func (m *Model) SetEngine(e *timeline.Engine) { m.engine = e }

// -- timeline.ScrollPort ------------------------------------------------------

func (m *Model) ScrollTop() int      { return m.top }
func (m *Model) ViewportHeight() int { return m.height }

// SetScrollTop moves the viewport. Terminal cells have no sub-line motion,
// so the smooth hint is accepted but the move lands immediately.
func (m *Model) SetScrollTop(top int, smooth bool) {
	m.top = m.clamp(top)
}

func (m *Model) clamp(top int) int {
	if m.engine != nil {
		max := m.engine.Offsets().Total() - m.height
		if top > max {
			top = max
		}
	}
	if top < 0 {
		top = 0
	}
	return top
}

// -- Mutations ----------------------------------------------------------------

// SetSize updates the viewport dimensions. A width change re-wraps every
// item, so the render cache is dropped and all measurements are voided.
func (m *Model) SetSize(w, h int) {
	widthChanged := w != m.width
	m.width = w
	m.height = h
	if widthChanged {
		m.cache = make(map[string]cachedRender)
		if m.engine != nil {
			m.engine.Reflow(nil)
		}
	}
	m.top = m.clamp(m.top)
}

// Locale returns the active title locale.
func (m *Model) Locale() Locale { return m.locale }

// SetLocale switches the primary title language. Rendered heights change, so
// the cache is dropped and the engine re-anchors around the viewport center.
func (m *Model) SetLocale(l Locale) {
	if l == m.locale {
		return
	}
	m.locale = l
	m.cache = make(map[string]cachedRender)
	if m.engine != nil {
		m.engine.Reflow(nil)
	}
}

// Platform returns the active platform filter ("" = all).
func (m *Model) Platform() string { return m.platform }

// SetPlatform applies a platform filter. The sequence is rebuilt from every
// retained release and the engine re-anchors around the viewport center.
func (m *Model) SetPlatform(p string) {
	if p == m.platform {
		return
	}
	m.platform = p
	if m.engine == nil {
		return
	}
	m.engine.Reflow(m.filtered())
	if m.selected != "" {
		if _, ok := m.engine.Sequence().PositionOf(m.selected); !ok {
			m.selected = ""
		}
	}
}

// Platforms lists every platform seen so far, sorted, for filter cycling.
func (m *Model) Platforms() []string {
	seen := make(map[string]bool)
	for _, rel := range m.all {
		for _, p := range rel.Platforms {
			seen[p] = true
		}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// AddPage retains a fetched page and returns the items that pass the active
// filter, ready for the engine merge.
func (m *Model) AddPage(items []client.Release) []timeline.Item {
	out := make([]timeline.Item, 0, len(items))
	for _, rel := range items {
		m.all[EntryKey(rel)] = rel
		if m.matches(rel) {
			out = append(out, entry{rel: rel})
		}
	}
	return out
}

func (m *Model) matches(rel client.Release) bool {
	if m.platform == "" {
		return true
	}
	for _, p := range rel.Platforms {
		if p == m.platform {
			return true
		}
	}
	return false
}

// filtered rebuilds the full filtered item slice in key order.
func (m *Model) filtered() []timeline.Item {
	keys := make([]string, 0, len(m.all))
	for k, rel := range m.all {
		if m.matches(rel) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := make([]timeline.Item, 0, len(keys))
	for _, k := range keys {
		out = append(out, entry{rel: m.all[k]})
	}
	return out
}

// -- Selection ----------------------------------------------------------------

// MoveSelection moves the cursor by delta rows, scrolling just enough to keep
// it visible. With no current selection the topmost visible row is taken as
// the starting point.
func (m *Model) MoveSelection(delta int) {
	if m.engine == nil {
		return
	}
	seq := m.engine.Sequence()
	if seq.Len() == 0 {
		return
	}
	pos, ok := seq.PositionOf(m.selected)
	if !ok {
		pos = m.engine.Offsets().IndexForOffset(m.top)
	} else {
		pos += delta
	}
	if pos < 0 {
		pos = 0
	}
	if pos > seq.Len()-1 {
		pos = seq.Len() - 1
	}
	m.selected = seq.At(pos).Key()
	m.ensureVisible(pos)
}

// Select places the cursor on a specific key if it is in the sequence.
func (m *Model) Select(key string) {
	if m.engine == nil {
		return
	}
	if _, ok := m.engine.Sequence().PositionOf(key); ok {
		m.selected = key
	}
}

// SelectedKey returns the cursor's key, or "".
func (m *Model) SelectedKey() string { return m.selected }

// SelectedRelease returns the release under the cursor.
func (m *Model) SelectedRelease() (client.Release, bool) {
	rel, ok := m.all[m.selected]
	return rel, ok
}

// KeyAtOrAfter returns the first sequence key at or after the given date
// prefix ("2006-01-02"), for date-targeted jumps.
func (m *Model) KeyAtOrAfter(date string) (string, bool) {
	if m.engine == nil {
		return "", false
	}
	seq := m.engine.Sequence()
	n := seq.Len()
	i := sort.Search(n, func(i int) bool { return seq.At(i).Key() >= date })
	if i >= n {
		return "", false
	}
	return seq.At(i).Key(), true
}

func (m *Model) ensureVisible(pos int) {
	ix := m.engine.Offsets()
	itemTop := ix.OffsetOf(pos)
	itemBottom := itemTop + ix.HeightOf(pos)
	if itemTop < m.top {
		m.top = m.clamp(itemTop)
	} else if itemBottom > m.top+m.height {
		m.top = m.clamp(itemBottom - m.height)
	}
}

// ScrollBy moves the viewport by a line delta (wheel, paging keys).
func (m *Model) ScrollBy(lines int) {
	m.top = m.clamp(m.top + lines)
}

// -- Measurement --------------------------------------------------------------

// Layout renders the engine's current window and reports each item's actual
// height. Returns true when the host should schedule a frame flush.
func (m *Model) Layout() bool {
	if m.engine == nil || m.width <= 0 || m.height <= 0 {
		return false
	}
	win := m.engine.Window()
	if win.Empty() {
		return m.engine.FrameScheduled()
	}
	seq := m.engine.Sequence()
	frame := false
	for i := win.Start; i <= win.End; i++ {
		it := seq.At(i)
		_, h := m.render(it)
		if m.engine.ReportHeight(it.Key(), h) {
			frame = true
		}
	}
	return frame || m.engine.FrameScheduled()
}

func (m *Model) render(it timeline.Item) (string, int) {
	key := it.Key()
	if cr, ok := m.cache[key]; ok && cr.width == m.width {
		return cr.content, cr.height
	}
	en, ok := it.(entry)
	if !ok {
		return "", 1
	}
	content := en.render(m.contentWidth(), m.locale)
	cr := cachedRender{
		content: content,
		height:  countLines(content),
		width:   m.width,
	}
	m.cache[key] = cr
	return cr.content, cr.height
}

// contentWidth leaves room for the two-column cursor gutter and the
// scrollbar column.
func (m *Model) contentWidth() int { return m.width - 3 }

// -- View ---------------------------------------------------------------------

// View renders the visible slice of the materialized window plus the
// scrollbar. Items are clipped or padded to their indexed heights so the
// on-screen layout matches the engine's offset arithmetic exactly.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	blank := strings.TrimSuffix(strings.Repeat("\n", m.height), "\n")
	if m.engine == nil {
		return blank
	}
	win := m.engine.Window()
	if win.Empty() {
		return blank
	}
	seq := m.engine.Sequence()
	ix := m.engine.Offsets()
	gap := m.engine.Config().Gap

	var lines []string
	for i := win.Start; i <= win.End; i++ {
		it := seq.At(i)
		sel := it.Key() == m.selected
		content, _ := m.render(it)
		itemLines := strings.Split(content, "\n")
		h := ix.HeightOf(i)
		if len(itemLines) > h {
			itemLines = itemLines[:h]
		}
		for len(itemLines) < h {
			itemLines = append(itemLines, "")
		}
		for _, ln := range itemLines {
			lines = append(lines, m.gutter(sel)+ln)
		}
		if i < win.End {
			for g := 0; g < gap; g++ {
				lines = append(lines, "")
			}
		}
	}

	// Slice out the viewport-relative region. The window always starts at or
	// above the scroll top, so start is non-negative; guard anyway.
	start := m.top - ix.OffsetOf(win.Start)
	if start < 0 {
		pad := make([]string, -start)
		lines = append(pad, lines...)
		start = 0
	}
	for len(lines) < start+m.height {
		lines = append(lines, "")
	}
	content := strings.Join(lines[start:start+m.height], "\n")

	sb := scrollbar(m.height, ix.Total(), m.top)
	if sb == "" {
		return content
	}
	content = lipgloss.NewStyle().Width(m.width - 1).Render(content)
	return lipgloss.JoinHorizontal(lipgloss.Top, content, sb)
}

func (m *Model) gutter(selected bool) string {
	if selected {
		return style.CursorBar.Render("▌") + " "
	}
	return "  "
}

// countLines counts the number of rendered lines in a string.
func countLines(s string) int {
	if s == "" {
		return 1
	}
	return strings.Count(s, "\n") + 1
}
