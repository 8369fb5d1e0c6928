package editor

import (
	"context"

	"lineedit/buffer"
)

// clearHint drops any current hint text, marking Pending so the next paint
// issues a clear-to-end-of-line pass first.
func clearHint(p *PromptState) {
	if p.Hint.Text != "" {
		p.Hint.Pending = true
	}
	p.Hint.Text = ""
}

// scheduleHint kicks off background completion in hint mode when the
// cursor sits at end-of-buffer and a completion provider is configured.
// It is a no-op otherwise.
func scheduleHint(m *Modal) {
	if m.hintWorker == nil {
		return
	}
	p := m.Prompt()
	if p.Buf.Position() != p.Buf.Len() {
		return
	}
	m.Keys.Bump()
	text := append([]byte(nil), p.Buf.Bytes()...)
	partial := currentToken(text)
	m.hintWorker.Spawn(context.Background(), text, p.Buf.Position(), p.Scope, partial, &m.LineMu, m.Aborted, func(suffix string) {
		p.Hint = HintState{Text: suffix}
		Repaint(m)
	})
}

// currentToken returns the run of non-delimiter bytes at the end of text,
// the token a completion result is measured against.
func currentToken(text []byte) string {
	i := len(text)
	for i > 0 && !buffer.IsWordDelimiter(text[i-1]) {
		i--
	}
	return string(text[i:])
}
