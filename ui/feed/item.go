package feed

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/gamecal/gamecal/client"
	"github.com/gamecal/gamecal/style"
)

// Locale selects which title renders as the primary line.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleZH Locale = "zh"
)

// entry adapts one release to the timeline sequence. The key is the date
// plus the English title, so same-day releases stay distinct while key
// order remains chronological.
type entry struct {
	rel client.Release
}

func (e entry) Key() string { return EntryKey(e.rel) }

// EntryKey derives the sequence key for a release.
func EntryKey(rel client.Release) string {
	return rel.Date + "/" + rel.Title
}

// render produces the entry's feed lines at the given content width.
// Line count varies with the release: a date+title line always, an
// alternate-locale title line when a translation exists, a platform line
// when platforms are known.
func (e entry) render(width int, locale Locale) string {
	if width < 8 {
		width = 8
	}
	rel := e.rel

	day := rel.Date
	if len(day) >= len("2006-01-02") {
		day = day[5:] // "01-02"
	}
	if rel.TBD {
		day = style.ReleaseTBD.Render(day + "?")
	} else {
		day = style.ReleaseDate.Render(day)
	}

	primary, secondary := rel.Title, rel.TitleZH
	if locale == LocaleZH && rel.TitleZH != "" {
		primary, secondary = rel.TitleZH, rel.Title
	}

	var b strings.Builder
	b.WriteString(day)
	b.WriteString(" ")
	b.WriteString(style.ReleaseTitle.Render(runewidth.Truncate(primary, width-7, "…")))

	if secondary != "" && secondary != primary {
		b.WriteString("\n      ")
		b.WriteString(style.ReleaseAlt.Render(runewidth.Truncate(secondary, width-7, "…")))
	}

	if len(rel.Platforms) > 0 {
		b.WriteString("\n      ")
		chips := make([]string, 0, len(rel.Platforms))
		for _, p := range rel.Platforms {
			chips = append(chips, style.PlatformChip.Render(p))
		}
		line := strings.Join(chips, " ")
		if rel.Notes != "" {
			line += " " + style.Hint.Render("▸")
		}
		b.WriteString(line)
	} else if rel.Notes != "" {
		b.WriteString(" " + style.Hint.Render("▸"))
	}

	return b.String()
}
