package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// RuneWidth returns the display width of a single rune in terminal cells,
// via go-runewidth's East-Asian-width and zero-width tables.
func RuneWidth(r rune) int {
	if r < 0x20 || r == 0x7f {
		return 0
	}
	return runewidth.RuneWidth(r)
}

// StringWidth returns the display width of s in terminal cells, expanding
// tabs to the next multiple of tabwidth as it goes.
func StringWidth(s string, tabwidth int) int {
	width := 0
	for _, r := range s {
		if r == '\t' && tabwidth > 0 {
			width += tabwidth - width%tabwidth
			continue
		}
		width += RuneWidth(r)
	}
	return width
}

// TruncateToWidth truncates s to fit within maxWidth display cells,
// returning the byte prefix that fits.
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	width := 0
	for i, r := range s {
		w := RuneWidth(r)
		if width+w > maxWidth {
			return s[:i]
		}
		width += w
	}
	return s
}

// Truncate truncates s to width cells, appending an ellipsis if it had to
// cut anything.
func Truncate(s string, width int) string {
	if StringWidth(s, 0) <= width {
		return s
	}
	if width <= 3 {
		return TruncateToWidth(s, width)
	}
	return TruncateToWidth(s, width-3) + "..."
}

func padRight(s string, width int) string {
	w := StringWidth(s, 0)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
