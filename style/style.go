package style

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Colors — initialized to dark theme defaults. Updated via SetTheme().
var (
	Primary   color.Color = lipgloss.Color("#7C3AED")
	Secondary color.Color = lipgloss.Color("#06B6D4")
	Success   color.Color = lipgloss.Color("#22C55E")
	Warning   color.Color = lipgloss.Color("#F59E0B")
	Error     color.Color = lipgloss.Color("#EF4444")
	Muted     color.Color = lipgloss.Color("#6B7280")
	Dim       color.Color = lipgloss.Color("#374151")
	Border    color.Color = lipgloss.Color("#4B5563")

	SelectionBgColor color.Color = lipgloss.Color("#312E81")
	ModalBgColor     color.Color = lipgloss.Color("#111827")

	// Gradient endpoints — default to dark theme violet→cyan
	GradColorA color.Color = lipgloss.Color("#7C3AED")
	GradColorB color.Color = lipgloss.Color("#06B6D4")
)

// Base styles — rebuilt when the theme changes via rebuildStyles().
var (
	Bold      lipgloss.Style
	Faint     lipgloss.Style
	ErrorText lipgloss.Style
	Hint      lipgloss.Style

	// Feed rows
	ReleaseDate  lipgloss.Style
	ReleaseTBD   lipgloss.Style // "TBD" day marker on unconfirmed dates
	ReleaseTitle lipgloss.Style
	ReleaseAlt   lipgloss.Style // secondary-locale title under the primary one
	PlatformChip lipgloss.Style
	MonthRule    lipgloss.Style // month separator line
	SelectedRow  lipgloss.Style
	CursorBar    lipgloss.Style // selection gutter marker

	// Activity
	SpinnerStyle lipgloss.Style

	// Status bar
	StatusBar    lipgloss.Style
	StatusKey    lipgloss.Style
	StatusFilter lipgloss.Style
	StatusError  lipgloss.Style

	// Header
	HeaderSeparator lipgloss.Style
	HeaderVersion   lipgloss.Style
	HeaderYear      lipgloss.Style

	// Detail modal
	ModalBorder lipgloss.Style
	ModalTitle  lipgloss.Style
	ModalMeta   lipgloss.Style

	// Scrollbar
	ScrollbarThumb lipgloss.Style
	ScrollbarTrack lipgloss.Style

	// Help
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style
)

func init() {
	rebuildStyles()
}

// SetTheme applies a named theme, updating all color vars and rebuilding styles.
func SetTheme(name string) bool {
	t, ok := Themes[name]
	if !ok {
		return false
	}
	CurrentThemeName = name
	Primary = t.Primary
	Secondary = t.Secondary
	Success = t.Success
	Warning = t.Warning
	Error = t.Error
	Muted = t.Muted
	Dim = t.Dim
	Border = t.Border
	SelectionBgColor = t.SelectionBg
	ModalBgColor = t.ModalBg
	GradColorA = t.GradA
	GradColorB = t.GradB
	rebuildStyles()
	return true
}

// IsDark returns whether the current theme is dark.
func IsDark() bool {
	return CurrentThemeName != "light"
}

func rebuildStyles() {
	Bold = lipgloss.NewStyle().Bold(true)
	Faint = lipgloss.NewStyle().Foreground(Muted)
	ErrorText = lipgloss.NewStyle().Foreground(Error).Bold(true)
	Hint = lipgloss.NewStyle().Foreground(Dim)

	ReleaseDate = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	ReleaseTBD = lipgloss.NewStyle().Foreground(Warning)
	ReleaseTitle = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	ReleaseAlt = lipgloss.NewStyle().Foreground(Muted)
	PlatformChip = lipgloss.NewStyle().Foreground(Secondary).Background(Dim).Padding(0, 1)
	MonthRule = lipgloss.NewStyle().Foreground(Dim)
	SelectedRow = lipgloss.NewStyle().Background(SelectionBgColor)
	CursorBar = lipgloss.NewStyle().Foreground(Primary).Bold(true)

	SpinnerStyle = lipgloss.NewStyle().Foreground(Primary)

	StatusBar = lipgloss.NewStyle().Foreground(Muted).PaddingLeft(1)
	StatusKey = lipgloss.NewStyle().Foreground(Secondary)
	StatusFilter = lipgloss.NewStyle().Foreground(Warning).Bold(true)
	StatusError = lipgloss.NewStyle().Foreground(Error)

	HeaderSeparator = lipgloss.NewStyle().Foreground(Dim)
	HeaderVersion = lipgloss.NewStyle().Foreground(Muted)
	HeaderYear = lipgloss.NewStyle().Foreground(Primary).Bold(true)

	ModalBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Background(ModalBgColor)
	ModalTitle = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	ModalMeta = lipgloss.NewStyle().Foreground(Muted).Italic(true)

	ScrollbarThumb = lipgloss.NewStyle().Foreground(Primary)
	ScrollbarTrack = lipgloss.NewStyle().Foreground(Dim)

	HelpKey = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	HelpDesc = lipgloss.NewStyle().Foreground(Muted)
	HelpSeparator = lipgloss.NewStyle().Foreground(Dim)
}
