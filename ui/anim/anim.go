// Package anim provides the gradient-animated loading spinner shown while a
// year page is in flight.
//
//   - Braille-dot glyphs with per-frame gradient color interpolation
//   - Pre-rendered frame cache, rebuilt only when the theme gradient changes
//   - Ellipsis animation cycling through "", ".", "..", "..."
//   - 20 FPS tick rate (50ms per frame)
package anim

import (
	"math"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/gamecal/gamecal/style"
)

const (
	fps           = 20
	frameDuration = time.Second / fps
	// ellipsisFrames is how many animation frames elapse per ellipsis state.
	ellipsisFrames = 8
)

// frames is the Braille-dot spinner sequence.
var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

var ellipsisStates = []string{"", ".", "..", "..."}

// idCounter gives each Model a unique ID so TickMsg events don't cross-talk
// between spinners.
var idCounter atomic.Int64

// TickMsg is sent every animation frame. The ID field ensures that only the
// intended spinner model responds.
type TickMsg struct {
	ID int64
}

// Model is a gradient-animated Braille spinner (value receiver Update/View,
// pointer receiver mutators).
type Model struct {
	id          int64
	label       string
	spinning    bool
	frame       int
	ellipsisIdx int
	cache       []string // one pre-rendered string per glyph
}

// New creates a spinner with a label rendered to the right of the glyph.
func New(label string) Model {
	m := Model{
		id:    idCounter.Add(1),
		label: label,
	}
	m.cache = buildCache()
	return m
}

// Update advances the animation state on each TickMsg addressed to this model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok || tick.ID != m.id || !m.spinning {
		return m, nil
	}
	m.frame = (m.frame + 1) % len(frames)
	if m.frame%ellipsisFrames == 0 {
		m.ellipsisIdx = (m.ellipsisIdx + 1) % len(ellipsisStates)
	}
	return m, m.tick()
}

// View renders the current frame, or "" when stopped.
func (m Model) View() string {
	if !m.spinning {
		return ""
	}
	glyph := m.cache[m.frame%len(m.cache)]
	if m.label == "" {
		return glyph + ellipsisStates[m.ellipsisIdx]
	}
	return glyph + " " + style.Faint.Render(m.label+ellipsisStates[m.ellipsisIdx])
}

// Tick schedules the next animation frame; subsequent frames are
// self-scheduled via Update.
func (m Model) Tick() tea.Cmd {
	return m.tick()
}

// SetLabel changes the displayed label text.
func (m *Model) SetLabel(s string) { m.label = s }

// IsSpinning reports whether the animation is running.
func (m Model) IsSpinning() bool { return m.spinning }

// Start begins the animation. Use Tick() to schedule the first frame command.
func (m *Model) Start() { m.spinning = true }

// Stop halts the animation; View() returns "" until Start() is called again.
func (m *Model) Stop() { m.spinning = false }

func (m Model) tick() tea.Cmd {
	id := m.id
	return tea.Tick(frameDuration, func(time.Time) tea.Msg {
		return TickMsg{ID: id}
	})
}

// buildCache pre-renders one colored string per braille frame using the
// active theme gradient.
func buildCache() []string {
	n := len(frames)
	rendered := make([]string, n)
	for i, glyph := range frames {
		t := 0.0
		if n > 1 {
			// Sine oscillation so the gradient bounces between the endpoints
			// rather than wrapping abruptly.
			t = (math.Sin(math.Pi*float64(i)/float64(n-1)) + 1) / 2
		}
		c := style.LerpColor(style.GradColorA, style.GradColorB, t)
		rendered[i] = lipgloss.NewStyle().Foreground(c).Render(glyph)
	}
	return rendered
}
