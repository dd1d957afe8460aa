package feed

import (
	"strings"

	"github.com/gamecal/gamecal/style"
)

const (
	scrollTrackChar = "│"
	scrollThumbChar = "█"
)

// scrollbar renders a vertical scrollbar as a single column of characters.
//
// The track occupies viewportHeight rows. The thumb is positioned and sized
// proportionally to the visible region within the total content. When the
// content fits within the viewport the returned string is empty.
func scrollbar(viewportHeight, contentHeight, offset int) string {
	vh := viewportHeight
	ch := contentHeight

	if vh <= 0 || ch <= vh {
		return ""
	}

	// Thumb height — at least 1 row.
	thumbH := vh * vh / ch
	if thumbH < 1 {
		thumbH = 1
	}
	if thumbH > vh {
		thumbH = vh
	}

	// Thumb top position within the track.
	scrollable := ch - vh
	thumbTop := 0
	if scrollable > 0 {
		thumbTop = (offset * (vh - thumbH)) / scrollable
	}
	if thumbTop+thumbH > vh {
		thumbTop = vh - thumbH
	}
	if thumbTop < 0 {
		thumbTop = 0
	}

	rows := make([]string, vh)
	for i := range rows {
		if i >= thumbTop && i < thumbTop+thumbH {
			rows[i] = style.ScrollbarThumb.Render(scrollThumbChar)
		} else {
			rows[i] = style.ScrollbarTrack.Render(scrollTrackChar)
		}
	}
	return strings.Join(rows, "\n")
}
