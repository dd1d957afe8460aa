// Package detail renders the release notes modal: a centered dialog with the
// release's titles, date, platforms, and its markdown notes rendered through
// glamour inside a scrollable viewport.
//
// Emits msg.CloseDetail when dismissed.
package detail

import (
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/glamour"

	"github.com/gamecal/gamecal/client"
	"github.com/gamecal/gamecal/msg"
	"github.com/gamecal/gamecal/style"
)

// Model is the notes modal. Zero value is closed; construct with New.
type Model struct {
	open     bool
	rel      client.Release
	viewport viewport.Model

	width, height int
}

// New returns a closed modal.
func New() Model {
	vp := viewport.New(viewport.WithWidth(60), viewport.WithHeight(12))
	vp.SoftWrap = true
	return Model{viewport: vp}
}

// IsOpen reports whether the modal is showing.
func (m Model) IsOpen() bool { return m.open }

// Open shows the modal for one release.
func (m *Model) Open(rel client.Release) {
	m.open = true
	m.rel = rel
	m.viewport.SetContent(m.renderNotes())
	m.viewport.SetYOffset(0)
}

// Close dismisses the modal.
func (m *Model) Close() { m.open = false }

// SetSize updates terminal dimensions and resizes the viewport.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	vpW := m.dialogWidth() - 6
	if vpW < 20 {
		vpW = 20
	}
	vpH := h - 10
	if vpH < 4 {
		vpH = 4
	}
	m.viewport.SetWidth(vpW)
	m.viewport.SetHeight(vpH)
	if m.open {
		m.viewport.SetContent(m.renderNotes())
	}
}

func (m Model) dialogWidth() int {
	dw := m.width - 8
	if dw > 76 {
		dw = 76
	}
	if dw < 40 {
		dw = 40
	}
	return dw
}

// Update handles modal key events while open.
func (m Model) Update(message tea.Msg) (Model, tea.Cmd) {
	if !m.open {
		return m, nil
	}
	switch message := message.(type) {
	case tea.KeyPressMsg:
		switch message.Code {
		case tea.KeyEscape, 'q', tea.KeyEnter:
			m.open = false
			return m, func() tea.Msg { return msg.CloseDetail{} }

		case 'j', tea.KeyDown:
			m.viewport.SetYOffset(m.viewport.YOffset() + 1)
			return m, nil

		case 'k', tea.KeyUp:
			m.viewport.SetYOffset(m.viewport.YOffset() - 1)
			return m, nil

		case tea.KeyPgDown:
			m.viewport.SetYOffset(m.viewport.YOffset() + m.viewport.Height())
			return m, nil

		case tea.KeyPgUp:
			m.viewport.SetYOffset(m.viewport.YOffset() - m.viewport.Height())
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(message)
	return m, cmd
}

// View renders the centered modal, or "" when closed.
func (m Model) View() string {
	if !m.open {
		return ""
	}

	var b strings.Builder
	b.WriteString(style.ModalTitle.Render(m.rel.Title))
	if m.rel.TitleZH != "" {
		b.WriteString("\n" + style.ReleaseAlt.Render(m.rel.TitleZH))
	}
	date := m.rel.Date
	if m.rel.TBD {
		date += " (day unconfirmed)"
	}
	meta := date
	if len(m.rel.Platforms) > 0 {
		meta += " · " + strings.Join(m.rel.Platforms, ", ")
	}
	b.WriteString("\n" + style.ModalMeta.Render(meta))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n" + style.Hint.Render("esc close · j/k scroll"))

	box := style.ModalBorder.Padding(1, 2).Width(m.dialogWidth())
	return box.Render(b.String())
}

// renderNotes renders the markdown notes via glamour, falling back to plain
// text on error.
func (m Model) renderNotes() string {
	notes := m.rel.Notes
	if notes == "" {
		return style.Faint.Render("no notes")
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(m.viewport.Width()),
	)
	if err != nil {
		return notes
	}
	out, err := r.Render(notes)
	if err != nil {
		return notes
	}
	return strings.TrimRight(out, "\n")
}
