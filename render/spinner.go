package render

import "time"

// Spinner is a small frame-cycling glyph shown at the cursor's column
// while the auto-refresh coalescing timer withholds a repaint during a
// burst of plain insertions; nothing shows it while the hint worker
// runs. Only the braille cycle is offered here since it is the one
// that reads as a single terminal cell, the only budget an inline
// spinner has.
type Spinner struct {
	frame    int
	lastTick time.Time
	interval time.Duration
}

var brailleFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewSpinner returns a spinner ticking at the given interval.
func NewSpinner(interval time.Duration) *Spinner {
	return &Spinner{interval: interval, lastTick: time.Now()}
}

// Tick advances the animation if the interval has elapsed, returning
// whether the frame changed.
func (s *Spinner) Tick(now time.Time) bool {
	if now.Sub(s.lastTick) >= s.interval {
		s.frame++
		s.lastTick = now
		return true
	}
	return false
}

// Reset restarts the animation, used when the coalescing window closes.
func (s *Spinner) Reset() {
	s.frame = 0
	s.lastTick = time.Now()
}

// Frame returns the current glyph.
func (s *Spinner) Frame() string {
	return brailleFrames[s.frame%len(brailleFrames)]
}
