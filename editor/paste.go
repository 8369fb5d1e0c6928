package editor

import (
	"strings"

	"lineedit/term"
)

var pasteTerminator = []byte("\x1b[201~")

// pasteBegin runs when the bracketed-paste introducer is decoded: it reads
// raw bytes directly off the terminal (bypassing the keymap trie) up to
// the matching terminator, normalizes the payload, and splices it in as
// one edit.
func pasteBegin(d *Dispatch) Outcome {
	m := d.Modal
	p := m.Prompt()
	raw := readPasteBody(m.Term)
	text := normalizePasteText(raw, m.Options.TabWidth)
	if text == "" {
		return Ignore
	}
	pushUndo(p)
	p.Buf.Insert(text)
	if m.Options.AutoIndentBracketedPaste {
		p.IndentTmpOff = true
	}
	scheduleHint(m)
	return Ok
}

// readPasteBody reads bytes until it sees the bracketed-paste terminator,
// which it consumes without including in the result.
func readPasteBody(t *term.Terminal) string {
	var buf []byte
	matched := 0
	for {
		b, ok := t.ReadByte()
		if !ok {
			break
		}
		if b == pasteTerminator[matched] {
			matched++
			if matched == len(pasteTerminator) {
				break
			}
			continue
		}
		if matched > 0 {
			buf = append(buf, pasteTerminator[:matched]...)
			matched = 0
		}
		if b == pasteTerminator[0] {
			matched = 1
			continue
		}
		buf = append(buf, b)
	}
	return string(buf)
}

// normalizePasteText folds CRLF/CR line endings to LF, expands tabs, and
// strips whatever leading indentation every non-blank line shares, so a
// paste from an indented source doesn't compound with the editor's own
// auto-indent.
func normalizePasteText(s string, tabwidth int) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if tabwidth <= 0 {
		tabwidth = 8
	}
	s = strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabwidth))

	lines := strings.Split(s, "\n")
	minIndent := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := 0
		for n < len(l) && l[n] == ' ' {
			n++
		}
		if minIndent == -1 || n < minIndent {
			minIndent = n
		}
	}
	if minIndent > 0 {
		for i, l := range lines {
			if len(l) >= minIndent {
				lines[i] = l[minIndent:]
			}
		}
	}
	return strings.Join(lines, "\n")
}
