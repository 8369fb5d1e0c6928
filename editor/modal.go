package editor

import (
	"sync"
	"time"

	"lineedit/buffer"
	"lineedit/hint"
	"lineedit/history"
	"lineedit/keymap"
	"lineedit/render"
	"lineedit/term"
)

// Modal is the modal interface state: it owns every mode's state, routes
// keystrokes to the current mode's trie, and coordinates transitions. The
// two mutexes and the atomic keystroke counter are the primitives that
// keep background hint generation from racing the foreground edit loop.
type Modal struct {
	Term    *term.Terminal
	Options *Options
	Hist    history.Provider

	prompt       *PromptState
	search       *SearchState
	prefixSearch *PrefixSearchState

	current ModeID

	prevKey      string
	repeatCount  int
	lastAction   string
	currentAction string

	Kill *buffer.KillRing
	Keys hint.Counter

	LineMu sync.Mutex // guards any mutation of the rendered line
	HintMu sync.Mutex // guards concurrent hint generation

	tries map[ModeID]*keymap.Trie[Action]

	aborted   bool
	suspended bool
	pendingBeep bool

	lastRefresh time.Time
	spinner     *render.Spinner

	hintWorker *hint.Worker
}

// NewModal builds a Modal ready to run the Prompt mode, wiring the default
// emacs keymap for every mode.
func NewModal(t *term.Terminal, opts *Options, hist history.Provider, prompt *PromptState) (*Modal, error) {
	m := &Modal{
		Term:    t,
		Options: opts,
		Hist:    hist,
		prompt:  prompt,
		current: ModePrompt,
		Kill:    buffer.NewKillRing(opts.KillRingMax),
		tries:   make(map[ModeID]*keymap.Trie[Action]),
	}
	if prompt.Complete != nil {
		m.hintWorker = hint.New(prompt.Complete, &m.Keys)
	}

	promptTrie, err := keymap.Build(EmacsPromptMap(m))
	if err != nil {
		return nil, err
	}
	searchTrie, err := keymap.Build(EmacsSearchMap(m))
	if err != nil {
		return nil, err
	}
	prefixTrie, err := keymap.Build(EmacsPrefixSearchMap(m))
	if err != nil {
		return nil, err
	}
	m.tries[ModePrompt] = promptTrie
	m.tries[ModeSearch] = searchTrie
	m.tries[ModePrefixSearch] = prefixTrie

	return m, nil
}

// CurrentMode returns the mode currently receiving keystrokes.
func (m *Modal) CurrentMode() ModeID { return m.current }

// Trie returns the current mode's decoding trie.
func (m *Modal) Trie() *keymap.Trie[Action] { return m.tries[m.current] }

// Prompt, Search, PrefixSearch expose the concrete per-mode state; callers
// (actions) know which one is live via CurrentMode.
func (m *Modal) Prompt() *PromptState             { return m.prompt }
func (m *Modal) Search() *SearchState             { return m.search }
func (m *Modal) PrefixSearch() *PrefixSearchState { return m.prefixSearch }

// Aborted reports whether the session is winding down, checked by the hint
// worker before installing a result.
func (m *Modal) Aborted() bool { return m.aborted }

// CancelBeep clears any pending beep animation flag; step (a) of the
// transition protocol.
func (m *Modal) CancelBeep() { m.pendingBeep = false }

// Beep signals an action failure: rings the terminal bell immediately and,
// if blink is enabled, schedules a bounded flash of the current line on
// its own task so the main loop never blocks on it (the beep animation is
// the one thing besides terminal reads and hint generation allowed to run
// off the main loop). The prompt's beep level escalates through
// Options.BeepColors on repeated failures and resets once the flash
// completes or a later action succeeds.
func (m *Modal) Beep() {
	m.pendingBeep = true

	if m.current == ModePrompt && m.prompt != nil && len(m.Options.BeepColors) > 0 {
		if m.prompt.BeepLevel < len(m.Options.BeepColors)-1 {
			m.prompt.BeepLevel++
		}
	}

	if m.Term == nil {
		return
	}
	m.Term.WriteString("\a")
	m.Term.Flush()

	if !m.Options.BeepBlink {
		return
	}
	dur := m.Options.BeepDuration
	if max := m.Options.BeepMaxDuration; max > 0 && dur > max {
		dur = max
	}
	if dur <= 0 {
		return
	}
	time.AfterFunc(dur, func() {
		m.LineMu.Lock()
		defer m.LineMu.Unlock()
		if m.aborted {
			return
		}
		m.pendingBeep = false
		if m.current == ModePrompt && m.prompt != nil {
			m.prompt.BeepLevel = 0
		}
		Repaint(m)
	})
}

// resetBeepLevel clears the escalating beep level, called after any
// action that isn't itself reporting a failure.
func (m *Modal) resetBeepLevel() {
	if m.current == ModePrompt && m.prompt != nil {
		m.prompt.BeepLevel = 0
	}
}

// Transition cancels any pending beep, ensures the target has
// initialized state, deactivates the old mode, switches, runs cb,
// activates the new mode, and flushes. With no terminal attached, only the
// state switch and cb run.
func (m *Modal) Transition(to ModeID, cb func()) {
	m.CancelBeep()

	switch to {
	case ModeSearch:
		if m.search == nil {
			m.search = NewSearchState(true, m.current)
		}
	case ModePrefixSearch:
		if m.prefixSearch == nil {
			m.prefixSearch = NewPrefixSearchState("", m.current)
		}
	}

	if m.Term != nil {
		m.deactivate(m.current)
	}
	m.current = to
	if cb != nil {
		cb()
	}
	if m.Term != nil {
		m.activate(to)
		m.Term.Flush()
	}
}

func (m *Modal) deactivate(mode ModeID) {
	switch mode {
	case ModePrompt:
		m.prompt.Area = render.Erase(m.Term, m.prompt.Area)
	case ModeSearch:
		if m.search != nil {
			m.search.Area = render.Erase(m.Term, m.search.Area)
		}
	case ModePrefixSearch:
		if m.prefixSearch != nil {
			m.prefixSearch.Area = render.Erase(m.Term, m.prefixSearch.Area)
		}
	}
}

func (m *Modal) activate(mode ModeID) {
	Repaint(m)
}
