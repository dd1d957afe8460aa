package style

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// LerpColor linearly interpolates between two colors at position t ∈ [0,1].
func LerpColor(a, b color.Color, t float64) color.Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()

	// RGBA() returns values in [0, 65535]. Convert to [0, 255].
	lerp := func(x, y uint32) uint8 {
		v := float64(x>>8)*(1-t) + float64(y>>8)*t
		if v > 255 {
			v = 255
		}
		return uint8(v)
	}

	return color.NRGBA{
		R: lerp(ar, br),
		G: lerp(ag, bg),
		B: lerp(ab, bb),
		A: lerp(aa, ba),
	}
}

// nrgbaToHex converts a color.Color to a CSS hex string "#RRGGBB".
// Alpha is ignored for terminal compatibility.
func nrgbaToHex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02X%02X%02X", r>>8, g>>8, b>>8)
}

// GradientText renders text with a left-to-right color gradient from `from`
// to `to`, coloring each rune individually.
func GradientText(text string, from, to color.Color, bold bool) string {
	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return ""
	}
	if n == 1 {
		hex := nrgbaToHex(from)
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Bold(bold).Render(string(runes))
	}

	var sb strings.Builder
	for i, r := range runes {
		t := float64(i) / float64(n-1)
		hex := nrgbaToHex(LerpColor(from, to, t))
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Bold(bold).Render(string(r)))
	}
	return sb.String()
}

// ApplyBoldForegroundGrad applies the theme gradient (GradColorA → GradColorB)
// in bold.
func ApplyBoldForegroundGrad(s string) string {
	return GradientText(s, GradColorA, GradColorB, true)
}
