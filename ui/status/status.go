// Package status provides the bottom status bar for the gamecal TUI.
// It renders the cursor position, locale, platform filter, in-flight page
// loads, and the last fetch error.
package status

import (
	"fmt"
	"strings"

	"github.com/gamecal/gamecal/style"
)

// Model is the status bar state. Drive it via setter methods; it has no
// Update loop.
type Model struct {
	locale   string
	platform string
	total    int
	position int // 1-based cursor position, 0 = none

	loadedYears int
	totalYears  int

	loadingOlder string // year in flight toward older content, "" = idle
	loadingNewer string
	spinnerView  string

	lastError string // sticky until the next successful load
}

// New returns a zero-value Model.
func New() Model {
	return Model{}
}

// SetLocale stores the active title locale for display.
func (m *Model) SetLocale(locale string) { m.locale = locale }

// SetPlatform stores the active platform filter ("" = all).
func (m *Model) SetPlatform(p string) { m.platform = p }

// SetPosition updates the cursor position and total entry count.
func (m *Model) SetPosition(pos, total int) {
	m.position = pos
	m.total = total
}

// SetYears updates the loaded-pages indicator counts.
func (m *Model) SetYears(loaded, total int) {
	m.loadedYears = loaded
	m.totalYears = total
}

// SetLoading marks a page load in flight for one direction; year "" clears it.
func (m *Model) SetLoading(older bool, year string) {
	if older {
		m.loadingOlder = year
	} else {
		m.loadingNewer = year
	}
}

// SetSpinnerView stores the current spinner frame rendered by the host.
func (m *Model) SetSpinnerView(v string) { m.spinnerView = v }

// SetError stores a fetch error message; "" clears it.
func (m *Model) SetError(err string) { m.lastError = err }

// Loading reports whether any page load is in flight.
func (m Model) Loading() bool {
	return m.loadingOlder != "" || m.loadingNewer != ""
}

// View renders the single status line.
func (m Model) View() string {
	var parts []string

	if m.total > 0 {
		pos := "—"
		if m.position > 0 {
			pos = fmt.Sprintf("%d", m.position)
		}
		parts = append(parts, style.StatusBar.Render(fmt.Sprintf("%s/%d", pos, m.total)))
	}

	parts = append(parts, style.StatusKey.Render(m.locale))
	if m.platform != "" {
		parts = append(parts, style.StatusFilter.Render(m.platform))
	}

	if pill := YearsPill(m.loadedYears, m.totalYears); pill != "" {
		parts = append(parts, pill)
	}

	if m.Loading() && m.spinnerView != "" {
		label := m.loadingOlder
		if label == "" {
			label = m.loadingNewer
		}
		parts = append(parts, m.spinnerView+" "+style.Faint.Render(label))
	}

	if m.lastError != "" {
		parts = append(parts, style.StatusError.Render("⚠ "+m.lastError))
	}

	parts = append(parts, style.Hint.Render("?[]t f l enter q"))

	return strings.Join(parts, style.HelpSeparator.Render(" · "))
}
