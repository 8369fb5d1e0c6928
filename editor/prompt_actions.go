package editor

import (
	"time"

	"lineedit/buffer"
)

// pushUndo records the pre-image before a mutating action.
func pushUndo(p *PromptState) {
	p.Undo.Push(p.Buf.Snapshot())
}

func selfInsert(d *Dispatch) Outcome {
	p := d.Modal.Prompt()
	if len(d.Matched) == 0 {
		return Ignore
	}
	r := d.Matched[len(d.Matched)-1]
	pushUndo(p)
	now := time.Now()
	if r != ' ' {
		if !p.LastInsert.IsZero() && now.Sub(p.LastInsert) < d.Modal.Options.AutoIndentTimeThreshold {
			p.NonSpaceRun++
			if p.NonSpaceRun >= 2 {
				p.IndentTmpOff = true
			}
		} else {
			p.NonSpaceRun = 1
		}
		p.LastInsert = now
	} else {
		p.NonSpaceRun = 0
	}
	p.Buf.Insert(string(r))
	scheduleHint(d.Modal)
	return Ok
}

func charLeft(d *Dispatch) Outcome {
	p := d.Modal.Prompt()
	p.Buf.MoveLeft()
	return Ok
}

func charRight(d *Dispatch) Outcome {
	p := d.Modal.Prompt()
	p.Buf.MoveRight()
	scheduleHint(d.Modal)
	return Ok
}

func wordLeft(d *Dispatch) Outcome {
	p := d.Modal.Prompt()
	p.Buf.SetPosition(p.Buf.WordLeft(p.Buf.Position(), buffer.IsWordDelimiter))
	return Ok
}

func wordRight(d *Dispatch) Outcome {
	p := d.Modal.Prompt()
	p.Buf.SetPosition(p.Buf.WordRight(p.Buf.Position(), buffer.IsWordDelimiter))
	return Ok
}

func beginOfLine(d *Dispatch) Outcome {
	p := d.Modal.Prompt()
	p.Buf.SetPosition(p.Buf.LineContentStart(p.Buf.Position()))
	return Ok
}

func endOfLine(d *Dispatch) Outcome {
	p := d.Modal.Prompt()
	p.Buf.SetPosition(p.Buf.EndOfLine(p.Buf.Position()))
	scheduleHint(d.Modal)
	return Ok
}

func lineContentStart(d *Dispatch) Outcome {
	p := d.Modal.Prompt()
	p.Buf.SetPosition(p.Buf.LineContentStart(p.Buf.Position()))
	return Ok
}

func deleteBackward(d *Dispatch) Outcome {
	p := d.Modal.Prompt()
	if p.Buf.Position() == 0 {
		d.Modal.Beep()
		return Ignore
	}
	pushUndo(p)
	width := 0
	if d.Modal.Options.BackspaceAlign {
		width = d.Modal.Options.TabWidth
	}
	removed, ok := p.Buf.BackspaceAlign(width, d.Modal.Options.BackspaceAdjust)
	if !ok || len(removed) == 0 {
		d.Modal.Beep()
		return Ignore
	}
	return Ok
}

func deleteForward(d *Dispatch) Outcome {
	p := d.Modal.Prompt()
	if p.Buf.Position() == p.Buf.Len() {
		d.Modal.Beep()
		return Ignore
	}
	pushUndo(p)
	p.Buf.DeleteForward()
	scheduleHint(d.Modal)
	return Ok
}

func deleteWordBackward(d *Dispatch) Outcome {
	p := d.Modal.Prompt()
	pushUndo(p)
	killed := p.Buf.DeleteWordBackward(buffer.IsWordDelimiter)
	if len(killed) == 0 {
		d.Modal.Beep()
		return Ignore
	}
	d.Modal.Kill.SetConcat(d.Modal.LastAction() == "delete-word-backward")
	d.Modal.Kill.Kill(string(killed), true)
	return Ok
}

func deleteWordForward(d *Dispatch) Outcome {
	p := d.Modal.Prompt()
	pushUndo(p)
	killed := p.Buf.DeleteWordForward(buffer.IsWordDelimiter)
	if len(killed) == 0 {
		d.Modal.Beep()
		return Ignore
	}
	d.Modal.Kill.SetConcat(d.Modal.LastAction() == "delete-word-forward")
	d.Modal.Kill.Kill(string(killed), false)
	return Ok
}

func killLineForward(d *Dispatch) Outcome {
	p := d.Modal.Prompt()
	pushUndo(p)
	killed := p.Buf.KillLineForward()
	if len(killed) == 0 {
		d.Modal.Beep()
		return Ignore
	}
	d.Modal.Kill.SetConcat(d.Modal.LastAction() == "kill-line-forward")
	d.Modal.Kill.Kill(string(killed), false)
	return Ok
}

func killLineBackward(d *Dispatch) Outcome {
	p := d.Modal.Prompt()
	pushUndo(p)
	killed := p.Buf.KillLineBackward()
	if len(killed) == 0 {
		d.Modal.Beep()
		return Ignore
	}
	d.Modal.Kill.SetConcat(d.Modal.LastAction() == "kill-line-backward")
	d.Modal.Kill.Kill(string(killed), true)
	return Ok
}

func yank(d *Dispatch) Outcome {
	p := d.Modal.Prompt()
	text, ok := d.Modal.Kill.Current()
	if !ok {
		d.Modal.Beep()
		return Ignore
	}
	pushUndo(p)
	p.Buf.Insert(text)
	return Ok
}

func yankPop(d *Dispatch) Outcome {
	if d.Modal.LastAction() != "yank" && d.Modal.LastAction() != "yank-pop" {
		d.Modal.Beep()
		return Ignore
	}
	p := d.Modal.Prompt()
	prev, ok := d.Modal.Kill.Current()
	if !ok {
		return Ignore
	}
	pushUndo(p)
	pos := p.Buf.Position()
	p.Buf.EditSplice(pos-len(prev), pos, nil, true)
	text, _ := d.Modal.Kill.Rotate()
	p.Buf.Insert(text)
	return Ok
}

func copyRegion(d *Dispatch) Outcome {
	p := d.Modal.Prompt()
	lo, hi, ok := p.Buf.Region()
	if !ok || p.Region == buffer.RegionOff {
		d.Modal.Beep()
		return Ignore
	}
	d.Modal.Kill.Copy(string(p.Buf.Bytes()[lo:hi]))
	return Ignore
}

func setMark(d *Dispatch) Outcome {
	p := d.Modal.Prompt()
	if d.KeyRepeats > 0 && p.Region == buffer.RegionMark {
		return Ignore // repeated set-mark extends rather than resets
	}
	p.Buf.SetMark(p.Buf.Position())
	p.Region = buffer.RegionMark
	return Ignore
}

func transposeChars(d *Dispatch) Outcome {
	p := d.Modal.Prompt()
	pushUndo(p)
	if !p.Buf.TransposeChars() {
		d.Modal.Beep()
		return Ignore
	}
	return Ok
}

func transposeWords(d *Dispatch) Outcome {
	p := d.Modal.Prompt()
	pushUndo(p)
	if !p.Buf.TransposeWords(buffer.IsWordDelimiter) {
		d.Modal.Beep()
		return Ignore
	}
	return Ok
}

func transposeLinesUp(d *Dispatch) Outcome   { return transposeLines(d, false) }
func transposeLinesDown(d *Dispatch) Outcome { return transposeLines(d, true) }

func transposeLines(d *Dispatch, down bool) Outcome {
	p := d.Modal.Prompt()
	pushUndo(p)
	pos, ok := p.Buf.TransposeLines(p.Buf.Position(), down)
	if !ok {
		d.Modal.Beep()
		return Ignore
	}
	p.Buf.SetPosition(pos)
	return Ok
}

func undo(d *Dispatch) Outcome {
	p := d.Modal.Prompt()
	pre, ok := p.Undo.Undo(p.Buf.Snapshot())
	if !ok {
		d.Modal.Beep()
		return Ignore
	}
	p.Buf.Restore(pre)
	return Ok
}

func redo(d *Dispatch) Outcome {
	p := d.Modal.Prompt()
	post, ok := p.Undo.Redo(p.Buf.Snapshot())
	if !ok {
		d.Modal.Beep()
		return Ignore
	}
	p.Buf.Restore(post)
	return Ok
}

func caseWordUpper(d *Dispatch) Outcome { return caseWord(d, buffer.CaseUpper) }
func caseWordLower(d *Dispatch) Outcome { return caseWord(d, buffer.CaseLower) }
func caseWordTitle(d *Dispatch) Outcome { return caseWord(d, buffer.CaseTitle) }

func caseWord(d *Dispatch, op buffer.CaseOp) Outcome {
	p := d.Modal.Prompt()
	pushUndo(p)
	pos, ok := p.Buf.CaseWord(p.Buf.Position(), op, buffer.IsWordDelimiter)
	if !ok {
		d.Modal.Beep()
		return Ignore
	}
	p.Buf.SetPosition(pos)
	return Ok
}

func indentRegion(d *Dispatch) Outcome {
	p := d.Modal.Prompt()
	lo, hi, ok := p.Buf.Region()
	if !ok {
		d.Modal.Beep()
		return Ignore
	}
	pushUndo(p)
	p.Buf.IndentRegion(lo, hi, d.Modal.Options.TabWidth)
	return Ok
}

func outdentRegion(d *Dispatch) Outcome {
	p := d.Modal.Prompt()
	lo, hi, ok := p.Buf.Region()
	if !ok {
		d.Modal.Beep()
		return Ignore
	}
	pushUndo(p)
	if !p.Buf.OutdentRegion(lo, hi, d.Modal.Options.TabWidth) {
		d.Modal.Beep()
		return Ignore
	}
	return Ok
}

func newline(d *Dispatch) Outcome {
	p := d.Modal.Prompt()
	line := p.Buf.Text()
	if p.OnEnter == nil || p.OnEnter(line) {
		return Done
	}
	pushUndo(p)
	autoIndent := d.Modal.Options.AutoIndent >= 0 && !p.IndentTmpOff
	p.Buf.NewlineWithAutoIndent(autoIndent)
	p.IndentTmpOff = false
	p.NonSpaceRun = 0
	p.LastNewline = time.Now()
	return Ok
}

func abort(d *Dispatch) Outcome   { return Abort }
func suspend(d *Dispatch) Outcome { return Suspend }

func enterSearchBackward(d *Dispatch) Outcome {
	enterSearch(d.Modal, true)
	return Ok
}

func enterSearchForward(d *Dispatch) Outcome {
	enterSearch(d.Modal, false)
	return Ok
}

func enterSearch(m *Modal, backward bool) {
	parent := m.current
	m.Transition(ModeSearch, func() {
		p := m.Prompt()
		s := NewSearchState(backward, parent)
		s.Response = p.Buf.Text()
		m.search = s
	})
}

func historyPrefixBackward(d *Dispatch) Outcome {
	enterPrefixSearch(d.Modal, true)
	return Ok
}

func historyPrefixForward(d *Dispatch) Outcome {
	if d.Modal.current != ModePrefixSearch {
		return Ignore
	}
	stepPrefixSearch(d.Modal, false)
	return Ok
}

func enterPrefixSearch(m *Modal, backward bool) {
	if m.current == ModePrefixSearch {
		stepPrefixSearch(m, backward)
		return
	}
	p := m.Prompt()
	prefix := p.Buf.Text()[:p.Buf.Position()]
	parent := m.current
	m.Transition(ModePrefixSearch, func() {
		m.prefixSearch = NewPrefixSearchState(prefix, parent)
	})
	stepPrefixSearch(m, backward)
}
