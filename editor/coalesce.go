package editor

import (
	"time"

	"lineedit/render"
)

// tryCoalesce is the auto-refresh coalescing fast path: during a burst of
// plain self-insertions closer together than AutoRefreshTimeDelay, it
// avoids a full relayout, either by echoing the inserted rune directly at
// the cursor (when the cursor sits at the end of a line with room left
// before the terminal's edge) or, when that isn't safe, by advancing a
// spinner glyph in its place. It reports whether it handled the repaint
// itself; false means the caller must still run a full Repaint.
func (m *Modal) tryCoalesce(actionName string, matched []rune) bool {
	if actionName != "self-insert" || m.current != ModePrompt || len(matched) == 0 {
		return false
	}
	delay := m.Options.AutoRefreshTimeDelay
	if delay <= 0 || m.Term == nil {
		return false
	}

	now := time.Now()
	burst := !m.lastRefresh.IsZero() && now.Sub(m.lastRefresh) < delay
	m.lastRefresh = now
	if !burst {
		if m.spinner != nil {
			m.spinner.Reset()
		}
		return false
	}

	p := m.prompt
	if p.Buf.Position() != p.Buf.Len() || p.Hint.Text != "" {
		return m.paintSpinnerFrame(now)
	}

	r := matched[len(matched)-1]
	w := render.RuneWidth(r)
	width := m.Term.Width()
	col := p.Area.CursCol
	if p.Area.NumRows != 1 || col+w >= width-1 {
		return m.paintSpinnerFrame(now)
	}

	m.Term.WriteString(string(r))
	m.Term.Flush()
	p.Area.CursCol = col + w
	return true
}

// paintSpinnerFrame writes the spinner glyph over the cursor's current
// column and immediately backs the cursor up over it, leaving the actual
// buffer content untouched on screen until the burst ends and a full
// Repaint (which always starts by erasing the row) overwrites it.
func (m *Modal) paintSpinnerFrame(now time.Time) bool {
	if m.current != ModePrompt {
		return false
	}
	if m.spinner == nil {
		m.spinner = render.NewSpinner(80 * time.Millisecond)
	}
	m.spinner.Tick(now)
	m.Term.WriteString(m.spinner.Frame())
	m.Term.MoveLeft(1)
	m.Term.Flush()
	return true
}
