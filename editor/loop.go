package editor

import (
	"os"
	"syscall"

	"lineedit/keymap"
	"lineedit/term"
)

// RunInterface drives the read-decode-dispatch-repaint loop until the
// active mode's action chain reports Done or Abort. It owns raw mode and
// bracketed paste for its duration.
func RunInterface(t *term.Terminal, m *Modal) (line string, accepted bool, err error) {
	if err := t.SetRawMode(true); err != nil {
		return "", false, err
	}
	defer t.SetRawMode(false)

	t.EnableBracketedPaste()
	defer t.DisableBracketedPaste()

	reader := newTermReader(t)

	Repaint(m)
	t.Flush()

	for {
		result := m.Trie().Decode(reader)
		if !result.Matched {
			if t.EOF() {
				return finish(m, false), false, nil
			}
			continue
		}
		if result.Kind != keymap.LeafAction {
			continue
		}

		m.Keys.Bump()
		m.LineMu.Lock()
		outcome := m.Dispatch(result.Action, result.Runes)
		if outcome != Ignore {
			if !m.tryCoalesce(result.Action.Name(), result.Runes) {
				Repaint(m)
				t.Flush()
			}
		}
		m.LineMu.Unlock()

		switch outcome {
		case Done:
			return finish(m, true), true, nil
		case Abort:
			return finish(m, false), false, nil
		case Suspend:
			suspendSelf(t, m)
		}
	}
}

// finish tears down the hint worker, marks the session as winding down so
// a stray hint result never installs after the fact, and invokes OnDone.
func finish(m *Modal, accepted bool) string {
	m.aborted = true
	if m.hintWorker != nil {
		m.hintWorker.Wait()
	}
	p := m.Prompt()
	line := p.Text()
	if p.OnDone != nil {
		p.OnDone(line, accepted)
	}
	return line
}

// Text returns the Prompt buffer's contents.
func (p *PromptState) Text() string { return p.Buf.Text() }

// suspendSelf leaves raw mode, raises SIGTSTP against this process (the
// conventional way a foreground job asks the shell to stop it), and
// restores raw mode plus a full repaint once it resumes.
func suspendSelf(t *term.Terminal, m *Modal) {
	t.SetRawMode(false)
	syscall.Kill(os.Getpid(), syscall.SIGTSTP)
	t.SetRawMode(true)
	Repaint(m)
	t.Flush()
}
