package editor

import (
	"context"

	"lineedit/hint"
)

// tabComplete implements the four ways Tab can behave: accept a pending
// hint verbatim, splice in the sole completion candidate, splice in
// candidates' common prefix when that makes progress, or — with no
// progress left and more than one candidate — beep once and print the
// candidate list on a repeated press.
func tabComplete(d *Dispatch) Outcome {
	m := d.Modal
	p := m.Prompt()

	hintText := p.Hint.Text
	clearHint(p)
	if hintText != "" && m.Options.HintTabCompletes {
		pushUndo(p)
		p.Buf.Insert(hintText)
		return Ok
	}

	if p.Complete == nil {
		m.Beep()
		return Ignore
	}

	candidates, region, should := p.Complete.CompleteLine(context.Background(), p.Buf.Bytes(), p.Buf.Position(), p.Scope, false)
	if !should || len(candidates) == 0 {
		m.Beep()
		return Ignore
	}

	if len(candidates) == 1 {
		pushUndo(p)
		p.Buf.EditSplice(region[0], region[1], []byte(candidates[0].Completion), true)
		return Ok
	}

	prefix := commonCompletionPrefix(candidates)
	typed := string(p.Buf.Bytes()[region[0]:region[1]])
	if len(prefix) > len(typed) {
		pushUndo(p)
		p.Buf.EditSplice(region[0], region[1], []byte(prefix), true)
		return Ok
	}

	// No further progress possible: the first Tab just beeps, a repeated
	// Tab prints the candidate list instead.
	if d.KeyRepeats == 0 {
		m.Beep()
		return Ignore
	}
	p.Candidates = make([]string, len(candidates))
	for i, c := range candidates {
		if c.Display != "" {
			p.Candidates[i] = c.Display
		} else {
			p.Candidates[i] = c.Completion
		}
	}
	return Ok
}

func commonCompletionPrefix(candidates []hint.NamedCompletion) string {
	if len(candidates) == 0 {
		return ""
	}
	prefix := candidates[0].Completion
	for _, c := range candidates[1:] {
		n := len(prefix)
		if len(c.Completion) < n {
			n = len(c.Completion)
		}
		i := 0
		for i < n && prefix[i] == c.Completion[i] {
			i++
		}
		prefix = prefix[:i]
		if prefix == "" {
			return ""
		}
	}
	return prefix
}
