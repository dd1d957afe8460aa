package status

import (
	"fmt"

	"github.com/gamecal/gamecal/style"
)

// YearsPill renders a loaded-pages indicator, e.g. "Years 2/5".
// The loaded count is colored with style.StatusKey; the total stays faint.
// Returns an empty string when the index is empty or everything is loaded.
func YearsPill(loaded, total int) string {
	if total <= 0 || loaded >= total {
		return ""
	}
	loadedStr := style.StatusKey.Render(fmt.Sprintf("%d", loaded))
	totalStr := style.Faint.Render(fmt.Sprintf("%d", total))
	return style.Faint.Render("Years ") + loadedStr + style.Faint.Render("/") + totalStr
}
