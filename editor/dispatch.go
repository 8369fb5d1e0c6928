package editor

import (
	"strings"

	"lineedit/buffer"
	"lineedit/render"
)

// Dispatch is the per-keystroke context handed to an Action.
type Dispatch struct {
	Modal      *Modal
	Matched    []rune
	KeyRepeats int
}

// plainMotions preserve a mark-activated region across the motion;
// everything else not in this list, and not shift_-prefixed, deactivates
// the region.
var plainMotions = map[string]bool{
	"char-left": true, "char-right": true,
	"word-left": true, "word-right": true,
	"begin-of-line": true, "end-of-line": true,
	"line-content-start": true,
}

// preservingActions keep whatever region state was already active,
// regardless of kind.
var preservingActions = map[string]bool{
	"indent-region": true, "outdent-region": true,
	"transpose-lines-up": true, "transpose-lines-down": true,
	"copy-region": true,
}

// regionHost is satisfied by any mode state that owns a buffer and region
// flag; only Prompt mode provides one (Search and Prefix Search have no
// region).
type regionHost interface {
	regionBuf() *buffer.Buffer
	regionState() buffer.RegionState
	setRegionState(buffer.RegionState)
}

func (p *PromptState) regionBuf() *buffer.Buffer            { return p.Buf }
func (p *PromptState) regionState() buffer.RegionState      { return p.Region }
func (p *PromptState) setRegionState(r buffer.RegionState)  { p.Region = r }

func (m *Modal) currentRegionHost() regionHost {
	switch m.current {
	case ModePrompt:
		return m.prompt
	default:
		return nil
	}
}

// Dispatch tracks repeat count from consecutive identical matched
// sequences, applies the region-activation rule, runs the action, and
// updates last_action unless the outcome is Ignore.
func (m *Modal) Dispatch(action Action, matched []rune) Outcome {
	key := string(matched)
	if key == m.prevKey {
		m.repeatCount++
	} else {
		m.repeatCount = 0
	}
	m.prevKey = key

	name := action.Name()
	m.currentAction = name

	if m.current == ModePrompt && name != "tab-complete" {
		clearHint(m.prompt)
		m.prompt.Candidates = nil
	}

	if host := m.currentRegionHost(); host != nil {
		switch {
		case IsShiftMotion(name):
			if host.regionState() == buffer.RegionOff {
				host.regionBuf().SetMark(host.regionBuf().Position())
			}
			host.setRegionState(buffer.RegionShift)
		case plainMotions[name]:
			if host.regionState() != buffer.RegionMark {
				host.setRegionState(buffer.RegionOff)
			}
		case preservingActions[name]:
			// leave region state untouched
		default:
			host.setRegionState(buffer.RegionOff)
		}
	}

	d := &Dispatch{Modal: m, Matched: matched, KeyRepeats: m.repeatCount}
	outcome := action.Run(d)

	if outcome != Ignore {
		m.lastAction = name
		m.resetBeepLevel()
	}
	return outcome
}

// LastAction reports the name of the most recently committed action,
// consulted by commands that change behavior on repeat.
func (m *Modal) LastAction() string { return m.lastAction }

// Repaint redraws whichever mode is currently active and stores its new
// InputAreaState.
func Repaint(m *Modal) {
	switch m.current {
	case ModePrompt:
		repaintPrompt(m)
	case ModeSearch:
		repaintSearch(m)
	case ModePrefixSearch:
		repaintPrefixSearch(m)
	}
}

func repaintPrompt(m *Modal) {
	p := m.prompt
	lo, hi, active := p.Buf.Region()
	region := render.Region{Active: active && p.Region != buffer.RegionOff, Lo: lo, Hi: hi}

	hintText := p.Hint.Text
	clearHint := p.Hint.Pending
	p.Hint.Pending = false

	flashing := m.pendingBeep && m.Options.BeepBlink && !m.Options.BeepUseCurrent
	if flashing {
		m.Term.WriteString(render.Style{Reverse: true, FgColor: beepColor(m.Options, p.BeepLevel)}.SGR())
	}

	p.Area = render.Paint(m.Term, p.Area, p.Prompt, p.Buf.Bytes(), p.Buf.Position(), region, hintText, clearHint, m.Options.TabWidth)

	if flashing {
		m.Term.WriteString(render.Reset)
	}

	if len(p.Candidates) > 0 {
		p.Area = paintCandidateList(m.Term, p.Area, p.Candidates)
	}

	m.Term.Flush()
}

// beepColor picks the escalation color for the given beep level, clamped
// to the configured list.
func beepColor(opts *Options, level int) int {
	if len(opts.BeepColors) == 0 {
		return 0
	}
	if level >= len(opts.BeepColors) {
		level = len(opts.BeepColors) - 1
	}
	return opts.BeepColors[level]
}

// paintCandidateList prints a laid-out candidate list on the rows
// immediately below the just-painted input line and folds their count
// into the returned state so the next erase clears them too; the cursor
// is left exactly where Paint put it.
func paintCandidateList(t render.Terminal, area render.InputAreaState, items []string) render.InputAreaState {
	lines := render.LayoutCandidates(items, t.Width())
	for _, line := range lines {
		t.WriteString("\r\n")
		t.ClearLine()
		t.WriteString(line)
	}
	if len(lines) > 0 {
		t.MoveUp(len(lines))
		t.MoveCol(area.CursCol)
	}
	area.NumRows += len(lines)
	return area
}

func repaintSearch(m *Modal) {
	s := m.search
	if s == nil {
		return
	}
	prompt := "(reverse-i-search)`" + s.Query.Text() + "': "
	if !s.Backward {
		prompt = "(i-search)`" + s.Query.Text() + "': "
	}
	if s.Failed {
		prompt = "(failed " + strings.TrimPrefix(prompt, "(")
	}
	text := []byte(s.Response)
	s.Area = render.Paint(m.Term, s.Area, prompt, text, len(text), render.Region{}, "", false, m.Options.TabWidth)
	m.Term.Flush()
}

func repaintPrefixSearch(m *Modal) {
	s := m.prefixSearch
	if s == nil {
		return
	}
	prompt := s.Prefix
	text := []byte(s.Response)
	s.Area = render.Paint(m.Term, s.Area, prompt, text, len(text), render.Region{}, "", false, m.Options.TabWidth)
	m.Term.Flush()
}
