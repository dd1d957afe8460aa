// Package app owns the root Bubble Tea model: it wires the HTTP client, the
// timeline engine, and the UI sub-models together, and drives the engine's
// measure/commit/correct frame loop from the update loop.
package app

import (
	"errors"
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/gamecal/gamecal/client"
	"github.com/gamecal/gamecal/config"
	"github.com/gamecal/gamecal/msg"
	"github.com/gamecal/gamecal/style"
	"github.com/gamecal/gamecal/timeline"
	"github.com/gamecal/gamecal/ui/anim"
	"github.com/gamecal/gamecal/ui/detail"
	"github.com/gamecal/gamecal/ui/feed"
	"github.com/gamecal/gamecal/ui/header"
	"github.com/gamecal/gamecal/ui/status"
)

// ConfigDir is set by main to the directory holding gamecal.json.
var ConfigDir string

// frameInterval paces deferred layout flushes, one frame at ~60Hz.
const frameInterval = 16 * time.Millisecond

// Model is the root application model.
type Model struct {
	header  header.Model
	feed    *feed.Model
	engine  *timeline.Engine
	detail  detail.Model
	status  status.Model
	spinner anim.Model

	state  State
	layout Layout

	client *client.Client
	config config.Config
	keys   KeyMap

	width  int
	height int

	// pending maps page → its fetch request so results arriving from the
	// client commands can be handed back to ApplyPage/FailPage.
	pending map[string]timeline.FetchRequest

	// pendingJump is a year being fetched for a [/]/t jump; the jump fires
	// once the page lands.
	pendingJump string

	framePending bool
	initialLoad  bool
	interacted   bool
	failErr      error
}

// New constructs the root model, applying the persisted theme, locale, and
// platform filter.
func New(c *client.Client, cfg config.Config) Model {
	if cfg.Theme != "" {
		style.SetTheme(cfg.Theme)
	}
	locale := feed.LocaleEN
	if cfg.Locale == "zh" {
		locale = feed.LocaleZH
	}

	f := feed.New(locale)
	engine := timeline.New(timeline.DefaultConfig(), f)
	f.SetEngine(engine)
	if cfg.Platform != "" {
		f.SetPlatform(cfg.Platform)
	}

	spinner := anim.New("loading")
	spinner.Start()

	m := Model{
		header:      header.New(),
		feed:        f,
		engine:      engine,
		detail:      detail.New(),
		status:      status.New(),
		spinner:     spinner,
		state:       StateConnecting,
		client:      c,
		config:      cfg,
		keys:        DefaultKeyMap(),
		width:       80,
		height:      24,
		pending:     make(map[string]timeline.FetchRequest),
		initialLoad: true,
	}
	m.status.SetLocale(string(locale))
	m.status.SetPlatform(cfg.Platform)
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchIndex(),
		m.spinner.Tick(),
		func() tea.Msg { return tea.RequestWindowSize() },
	)
}

func (m Model) Update(rawMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := rawMsg.(type) {

	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.layout = ComputeLayout(v.Width, v.Height)
		m.feed.SetSize(m.layout.FeedWidth, m.layout.FeedHeight)
		m.header.SetWidth(v.Width)
		m.detail.SetSize(v.Width, v.Height)
		m.syncChrome()
		return m, m.scheduleLayout()

	case tea.KeyPressMsg:
		return m.handleKey(v)

	case tea.MouseWheelMsg:
		if m.state != StateReady {
			return m, nil
		}
		m.interact()
		switch v.Button {
		case tea.MouseWheelUp:
			m.feed.ScrollBy(-3)
		case tea.MouseWheelDown:
			m.feed.ScrollBy(3)
		}
		return m, m.observe()

	case msg.IndexResult:
		return m.handleIndex(v)

	case msg.PageResult:
		return m.handlePage(v)

	case msg.FrameMsg:
		m.framePending = false
		m.engine.Flush()
		m.syncChrome()
		return m, m.scheduleLayout()

	case anim.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(v)
		m.status.SetSpinnerView(m.spinner.View())
		return m, cmd

	case msg.CloseDetail:
		m.state = StateReady
		return m, nil
	}

	if m.state == StateDetail {
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(rawMsg)
		return m, cmd
	}
	return m, nil
}

// -- Key handling -------------------------------------------------------------

func (m Model) handleKey(k tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	// The modal swallows q/esc/enter for itself.
	if m.state != StateDetail && key.Matches[tea.KeyPressMsg](k, m.keys.Quit) {
		m.engine.Close()
		return m, tea.Quit
	}

	switch m.state {
	case StateReady:
		return m.handleReadyKey(k)
	case StateDetail:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(k)
		return m, cmd
	case StateFailed:
		if key.Matches[tea.KeyPressMsg](k, m.keys.Retry) {
			m.state = StateConnecting
			m.failErr = nil
			m.spinner.Start()
			return m, tea.Batch(m.fetchIndex(), m.spinner.Tick())
		}
	}
	return m, nil
}

func (m Model) handleReadyKey(k tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches[tea.KeyPressMsg](k, m.keys.Down):
		m.interact()
		m.feed.MoveSelection(1)
		return m, m.observe()

	case key.Matches[tea.KeyPressMsg](k, m.keys.Up):
		m.interact()
		m.feed.MoveSelection(-1)
		return m, m.observe()

	case key.Matches[tea.KeyPressMsg](k, m.keys.PageDown):
		m.interact()
		m.feed.ScrollBy(m.layout.FeedHeight)
		return m, m.observe()

	case key.Matches[tea.KeyPressMsg](k, m.keys.PageUp):
		m.interact()
		m.feed.ScrollBy(-m.layout.FeedHeight)
		return m, m.observe()

	case key.Matches[tea.KeyPressMsg](k, m.keys.HalfPageDown):
		m.interact()
		m.feed.ScrollBy(m.layout.FeedHeight / 2)
		return m, m.observe()

	case key.Matches[tea.KeyPressMsg](k, m.keys.HalfPageUp):
		m.interact()
		m.feed.ScrollBy(-m.layout.FeedHeight / 2)
		return m, m.observe()

	case key.Matches[tea.KeyPressMsg](k, m.keys.Top):
		m.interact()
		m.feed.SetScrollTop(0, false)
		return m, m.observe()

	case key.Matches[tea.KeyPressMsg](k, m.keys.Bottom):
		m.interact()
		m.feed.SetScrollTop(m.engine.Offsets().Total(), false)
		return m, m.observe()

	case key.Matches[tea.KeyPressMsg](k, m.keys.PrevYear):
		return m.jumpYear(-1)

	case key.Matches[tea.KeyPressMsg](k, m.keys.NextYear):
		return m.jumpYear(1)

	case key.Matches[tea.KeyPressMsg](k, m.keys.Today):
		m.interact()
		if k, ok := m.feed.KeyAtOrAfter(today()); ok {
			m.engine.JumpTo(k, timeline.AlignCenter, true)
			m.feed.Select(k)
		}
		return m, m.observe()

	case key.Matches[tea.KeyPressMsg](k, m.keys.Locale):
		loc := feed.LocaleEN
		if m.feed.Locale() == feed.LocaleEN {
			loc = feed.LocaleZH
		}
		m.feed.SetLocale(loc)
		m.config.Locale = string(loc)
		_ = config.Save(ConfigDir, m.config)
		m.syncChrome()
		return m, m.scheduleLayout()

	case key.Matches[tea.KeyPressMsg](k, m.keys.Filter):
		m.cyclePlatform()
		return m, m.scheduleLayout()

	case key.Matches[tea.KeyPressMsg](k, m.keys.Open):
		if rel, ok := m.feed.SelectedRelease(); ok {
			m.detail.Open(rel)
			m.state = StateDetail
		}
		return m, nil
	}
	return m, nil
}

// cyclePlatform steps the filter through all → each known platform → all.
func (m *Model) cyclePlatform() {
	cycle := append([]string{""}, m.feed.Platforms()...)
	next := cycle[0]
	for i, p := range cycle {
		if p == m.feed.Platform() {
			next = cycle[(i+1)%len(cycle)]
			break
		}
	}
	m.feed.SetPlatform(next)
	m.config.Platform = next
	_ = config.Save(ConfigDir, m.config)
	m.syncChrome()
}

// -- Year jumps ---------------------------------------------------------------

// jumpYear moves one year backward or forward from the year under the
// viewport top. Loaded years jump immediately; unloaded years fetch first and
// jump when the page lands.
func (m Model) jumpYear(delta int) (tea.Model, tea.Cmd) {
	index := m.engine.Pages().Index()
	if len(index) == 0 {
		return m, nil
	}
	cur := m.viewportYear()
	pos := 0
	for i, y := range index {
		if y == cur {
			pos = i
			break
		}
	}
	pos += delta
	if pos < 0 || pos >= len(index) {
		return m, nil
	}
	year := index[pos]

	m.interact()
	if m.engine.Pages().Loaded(year) {
		if p, ok := m.engine.Sequence().FirstKeyOfPage(year); ok {
			k := m.engine.Sequence().At(p).Key()
			m.engine.JumpTo(k, timeline.AlignTop, false)
			m.feed.Select(k)
			m.syncChrome()
			return m, m.scheduleLayout()
		}
	}
	req, ok := m.engine.RequestPage(year)
	if !ok {
		return m, nil
	}
	m.pendingJump = year
	return m, m.beginFetch(req)
}

// viewportYear returns the year of the item under the viewport top.
func (m Model) viewportYear() string {
	seq := m.engine.Sequence()
	if seq.Len() == 0 {
		return ""
	}
	pos := m.engine.Offsets().IndexForOffset(m.feed.ScrollTop())
	return timeline.PageOf(seq.At(pos).Key())
}

// -- Fetch plumbing -----------------------------------------------------------

func (m Model) fetchIndex() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		years, err := c.FetchIndex()
		return msg.IndexResult{Years: years, Err: err}
	}
}

func (m *Model) beginFetch(req timeline.FetchRequest) tea.Cmd {
	m.pending[req.Page] = req
	m.status.SetLoading(req.Dir == timeline.Older, req.Page)
	m.spinner.Start()
	return tea.Batch(m.fetchPage(req), m.spinner.Tick())
}

func (m Model) fetchPage(req timeline.FetchRequest) tea.Cmd {
	c := m.client
	page := req.Page
	return func() tea.Msg {
		items, err := c.FetchPage(page)
		return msg.PageResult{Page: page, Items: toMsgReleases(items), Err: err}
	}
}

func (m Model) handleIndex(v msg.IndexResult) (tea.Model, tea.Cmd) {
	if v.Err != nil {
		m.state = StateFailed
		m.failErr = v.Err
		m.spinner.Stop()
		return m, nil
	}
	if err := m.engine.SetPageIndex(v.Years); err != nil {
		m.state = StateFailed
		m.failErr = err
		m.spinner.Stop()
		return m, nil
	}
	m.state = StateReady

	// Start on the current year when the index has it, newest otherwise.
	year := v.Years[len(v.Years)-1]
	if m.engine.Pages().Has(today()[:4]) {
		year = today()[:4]
	}
	req, ok := m.engine.RequestPage(year)
	if !ok {
		return m, nil
	}
	return m, m.beginFetch(req)
}

func (m Model) handlePage(v msg.PageResult) (tea.Model, tea.Cmd) {
	req, ok := m.pending[v.Page]
	if !ok {
		// A result the engine no longer expects (superseded request).
		return m, nil
	}
	delete(m.pending, v.Page)

	if v.Err != nil {
		m.engine.FailPage(req, v.Err)
		if m.pendingJump == v.Page {
			m.pendingJump = ""
		}
	} else {
		m.engine.ApplyPage(req, m.feed.AddPage(toClientReleases(v.Items)))
		switch {
		case m.initialLoad:
			m.initialLoad = false
			if k, ok := m.feed.KeyAtOrAfter(today()); ok {
				m.engine.JumpTo(k, timeline.AlignCenter, false)
				m.feed.Select(k)
			}
		case m.pendingJump == v.Page:
			m.pendingJump = ""
			if p, ok := m.engine.Sequence().FirstKeyOfPage(v.Page); ok {
				k := m.engine.Sequence().At(p).Key()
				m.engine.JumpTo(k, timeline.AlignTop, false)
				m.feed.Select(k)
			}
		}
	}

	m.status.SetLoading(req.Dir == timeline.Older, "")
	pages := m.engine.Pages()
	if !pages.InFlight(timeline.Older) && !pages.InFlight(timeline.Newer) {
		m.spinner.Stop()
	}
	m.syncChrome()
	return m, m.scheduleLayout()
}

// -- Frame loop ---------------------------------------------------------------

// scheduleLayout measures the current window and schedules at most one
// deferred flush frame.
func (m *Model) scheduleLayout() tea.Cmd {
	needFrame := m.feed.Layout()
	if !needFrame || m.framePending {
		return nil
	}
	m.framePending = true
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return msg.FrameMsg{} })
}

// observe feeds the new scroll position to the engine and starts any fetch it
// asks for.
func (m *Model) observe() tea.Cmd {
	var cmds []tea.Cmd
	if req := m.engine.ObserveScroll(m.feed.ScrollTop()); req != nil {
		cmds = append(cmds, m.beginFetch(*req))
	}
	if cmd := m.scheduleLayout(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	m.syncChrome()
	return tea.Batch(cmds...)
}

func (m *Model) interact() {
	if !m.interacted {
		m.interacted = true
		m.engine.NoteInteraction()
	}
}

// syncChrome pushes engine state into the header and status bar.
func (m *Model) syncChrome() {
	seq := m.engine.Sequence()
	m.header.SetEntries(seq.Len())
	m.header.SetYear(m.viewportYear())

	pos := 0
	if p, ok := seq.PositionOf(m.feed.SelectedKey()); ok {
		pos = p + 1
	}
	m.status.SetPosition(pos, seq.Len())
	index := m.engine.Pages().Index()
	loaded := 0
	for _, y := range index {
		if m.engine.Pages().Loaded(y) {
			loaded++
		}
	}
	m.status.SetYears(loaded, len(index))
	m.status.SetLocale(string(m.feed.Locale()))
	m.status.SetPlatform(m.feed.Platform())
	m.status.SetError(fetchErrText(m.engine.Pages()))
}

// fetchErrText formats the sticky per-direction fetch errors for the status
// bar, "" when both directions are healthy.
func fetchErrText(p *timeline.Pagination) string {
	for _, dir := range []timeline.Direction{timeline.Older, timeline.Newer} {
		if err := p.Err(dir); err != nil {
			var ne *timeline.NetworkError
			if errors.As(err, &ne) {
				return fmt.Sprintf("%s unavailable", ne.Page)
			}
			return err.Error()
		}
	}
	return ""
}

// -- View ---------------------------------------------------------------------

// View renders the current frame. AltScreen and MouseMode are set every frame.
func (m Model) View() tea.View {
	v := tea.NewView(m.renderView())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

func (m Model) renderView() string {
	switch m.state {
	case StateConnecting:
		content := style.ApplyBoldForegroundGrad("gamecal") + "\n\n" + m.spinner.View()
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)

	case StateFailed:
		content := style.ErrorText.Render("could not load the release calendar") +
			"\n" + style.Faint.Render(fmt.Sprintf("%v", m.failErr)) +
			"\n\n" + style.Hint.Render("r retry · q quit")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}

	main := m.feed.View()
	if m.state == StateDetail {
		main = lipgloss.Place(m.layout.FeedWidth, m.layout.FeedHeight,
			lipgloss.Center, lipgloss.Center, m.detail.View())
	}

	return m.header.HeaderView() + "\n" + main + "\n" + m.status.View()
}

// -- Conversions --------------------------------------------------------------

func toMsgReleases(in []client.Release) []msg.Release {
	out := make([]msg.Release, len(in))
	for i, r := range in {
		out[i] = msg.Release{
			Date: r.Date, Title: r.Title, TitleZH: r.TitleZH,
			Platforms: r.Platforms, Notes: r.Notes, TBD: r.TBD,
		}
	}
	return out
}

func toClientReleases(in []msg.Release) []client.Release {
	out := make([]client.Release, len(in))
	for i, r := range in {
		out[i] = client.Release{
			Date: r.Date, Title: r.Title, TitleZH: r.TitleZH,
			Platforms: r.Platforms, Notes: r.Notes, TBD: r.TBD,
		}
	}
	return out
}

func today() string {
	return time.Now().Format("2006-01-02")
}
