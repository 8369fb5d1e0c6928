package editor

import "lineedit/keymap"

func act(name string, fn func(*Dispatch) Outcome) Action {
	return NewAction(name, fn)
}

// EmacsPromptMap is the default Prompt mode keymap: emacs mnemonics
// throughout (Ctrl-A/E/F/B/D/K/U/W/Y/T, Alt-B/F/D/U/L/C), the arrow keys as
// their obvious motions, and shift-arrow variants that extend the region.
func EmacsPromptMap(m *Modal) keymap.Map[Action] {
	return keymap.Map[Action]{
		"*":     keymap.Bind(act("self-insert", selfInsert)),
		"\r":    keymap.Bind(act("newline", newline)),
		"\t":    keymap.Bind(act("tab-complete", tabComplete)),
		"\x03":  keymap.Bind(act("abort", abort)),
		"\\C-g": keymap.Bind(act("abort", abort)),
		"\\C-z": keymap.Bind(act("suspend", suspend)),

		"\\C-f":  keymap.Bind(act("char-right", charRight)),
		"\\C-b":  keymap.Bind(act("char-left", charLeft)),
		"\x1b[C": keymap.Bind(act("char-right", charRight)),
		"\x1b[D": keymap.Bind(act("char-left", charLeft)),
		"\\M-f":  keymap.Bind(act("word-right", wordRight)),
		"\\M-b":  keymap.Bind(act("word-left", wordLeft)),
		"\\C-a":  keymap.Bind(act("begin-of-line", beginOfLine)),
		"\\C-e":  keymap.Bind(act("end-of-line", endOfLine)),
		"\x1b[H": keymap.Bind(act("begin-of-line", beginOfLine)),
		"\x1b[F": keymap.Bind(act("end-of-line", endOfLine)),
		"\\M-m":  keymap.Bind(act("line-content-start", lineContentStart)),

		"\x1b[1;2D": keymap.Bind(act("shift_char-left", charLeft)),
		"\x1b[1;2C": keymap.Bind(act("shift_char-right", charRight)),
		"\x1b[1;2H": keymap.Bind(act("shift_begin-of-line", beginOfLine)),
		"\x1b[1;2F": keymap.Bind(act("shift_end-of-line", endOfLine)),

		"\\C-d":    keymap.Bind(act("delete-forward", deleteForward)),
		"\\C-h":    keymap.Bind(act("delete-backward", deleteBackward)),
		"\\C-?":    keymap.Bind(act("delete-backward", deleteBackward)),
		"\\C-w":    keymap.Bind(act("delete-word-backward", deleteWordBackward)),
		"\\M-d":    keymap.Bind(act("delete-word-forward", deleteWordForward)),
		"\x1b\x7f": keymap.Bind(act("delete-word-backward", deleteWordBackward)),

		"\\C-k": keymap.Bind(act("kill-line-forward", killLineForward)),
		"\\C-u": keymap.Bind(act("kill-line-backward", killLineBackward)),
		"\\C-y": keymap.Bind(act("yank", yank)),
		"\\M-y": keymap.Bind(act("yank-pop", yankPop)),
		"\\M-w": keymap.Bind(act("copy-region", copyRegion)),

		"\\C-@": keymap.Bind(act("set-mark", setMark)),

		"\\C-t":      keymap.Bind(act("transpose-chars", transposeChars)),
		"\\M-t":      keymap.Bind(act("transpose-words", transposeWords)),
		"\\C-xp":     keymap.Bind(act("transpose-lines-up", transposeLinesUp)),
		"\\C-xn":     keymap.Bind(act("transpose-lines-down", transposeLinesDown)),
		"\\C-c\\C-i": keymap.Bind(act("indent-region", indentRegion)),
		"\\C-c\\C-o": keymap.Bind(act("outdent-region", outdentRegion)),

		"\\M-u": keymap.Bind(act("case-word-upper", caseWordUpper)),
		"\\M-l": keymap.Bind(act("case-word-lower", caseWordLower)),
		"\\M-c": keymap.Bind(act("case-word-title", caseWordTitle)),

		"\x1f": keymap.Bind(act("undo", undo)),
		"\x1e": keymap.Bind(act("redo", redo)),

		"\\C-r":     keymap.Bind(act("enter-search-backward", enterSearchBackward)),
		"\\C-s":     keymap.Bind(act("enter-search-forward", enterSearchForward)),
		"\x1b[A":    keymap.Bind(act("history-prefix-backward", historyPrefixBackward)),
		"\x1b[B":    keymap.Bind(act("history-prefix-forward", historyPrefixForward)),
		"\x1b[200~": keymap.Bind(act("begin-paste", pasteBegin)),
	}
}

// EmacsSearchMap is History Search mode's keymap: typing extends the
// query, C-r/C-s repeat in either direction, Enter accepts the current
// match, C-g/Esc-Esc/C-c cancel back to the original buffer, and a motion
// key accepts the match and then performs that same motion in the parent
// mode instead of being swallowed as a literal query character.
func EmacsSearchMap(m *Modal) keymap.Map[Action] {
	return keymap.Map[Action]{
		"*":         keymap.Bind(act("search-self-insert", searchSelfInsert)),
		"\\C-r":     keymap.Bind(act("search-again-backward", searchAgainBackward)),
		"\\C-s":     keymap.Bind(act("search-again-forward", searchAgainForward)),
		"\r":        keymap.Bind(act("search-accept", searchAccept)),
		"\\C-g":     keymap.Bind(act("search-abort", searchAbort)),
		"\x1b\x1b":  keymap.Bind(act("search-abort", searchAbort)),
		"\x03":      keymap.Bind(act("search-abort", searchAbort)),
		"\\C-h":     keymap.Bind(act("search-delete-backward", searchDeleteBackward)),
		"\\C-?":     keymap.Bind(act("search-delete-backward", searchDeleteBackward)),

		"\\C-f":  keymap.Bind(act("search-accept-then-char-right", searchAcceptThenMotion(charRight))),
		"\\C-b":  keymap.Bind(act("search-accept-then-char-left", searchAcceptThenMotion(charLeft))),
		"\\C-a":  keymap.Bind(act("search-accept-then-begin-of-line", searchAcceptThenMotion(beginOfLine))),
		"\\C-e":  keymap.Bind(act("search-accept-then-end-of-line", searchAcceptThenMotion(endOfLine))),
		"\x1b[C": keymap.Bind(act("search-accept-then-char-right", searchAcceptThenMotion(charRight))),
		"\x1b[D": keymap.Bind(act("search-accept-then-char-left", searchAcceptThenMotion(charLeft))),
		"\x1b[A": keymap.Bind(act("search-accept-then-history-backward", searchAcceptThenMotion(historyPrefixBackward))),
		"\x1b[B": keymap.Bind(act("search-accept-then-history-forward", searchAcceptThenMotion(historyPrefixForward))),
		"\x1b[H": keymap.Bind(act("search-accept-then-begin-of-line", searchAcceptThenMotion(beginOfLine))),
		"\x1b[F": keymap.Bind(act("search-accept-then-end-of-line", searchAcceptThenMotion(endOfLine))),
	}
}

// EmacsPrefixSearchMap is Prefix History Search mode's keymap: up/down
// continue walking matching history entries, Enter accepts, Ctrl-G
// cancels, and any other key commits the current match and falls back to
// Prompt mode.
func EmacsPrefixSearchMap(m *Modal) keymap.Map[Action] {
	return keymap.Map[Action]{
		"\x1b[A": keymap.Bind(act("prefix-search-backward", func(d *Dispatch) Outcome {
			stepPrefixSearch(d.Modal, true)
			return Ok
		})),
		"\x1b[B": keymap.Bind(act("prefix-search-forward", func(d *Dispatch) Outcome {
			stepPrefixSearch(d.Modal, false)
			return Ok
		})),
		"\r":    keymap.Bind(act("prefix-search-accept", prefixSearchAccept)),
		"\\C-g": keymap.Bind(act("prefix-search-abort", prefixSearchAbort)),
		"*":     keymap.Bind(act("prefix-search-other", prefixSearchOther)),
	}
}
