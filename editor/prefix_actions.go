package editor

// prefixMatcher is implemented by history providers that can enumerate
// entries sharing a prefix (history.MemoryHistory does); Prefix History
// Search degrades to a beep against a provider that can't.
type prefixMatcher interface {
	PrefixMatch(prefix string) []string
}

// stepPrefixSearch walks one step further into (backward) or back out of
// (forward) the list of history entries sharing the captured prefix.
func stepPrefixSearch(m *Modal, backward bool) {
	s := m.prefixSearch
	if s == nil {
		return
	}
	pm, ok := m.Hist.(prefixMatcher)
	if !ok {
		m.Beep()
		return
	}
	matches := pm.PrefixMatch(s.Prefix)
	if len(matches) == 0 {
		m.Beep()
		return
	}
	if backward {
		if s.Idx+1 >= len(matches) {
			m.Beep()
			return
		}
		s.Idx++
	} else {
		if s.Idx <= 0 {
			s.Idx = -1
			s.Response = s.Prefix
			Repaint(m)
			return
		}
		s.Idx--
	}
	s.Response = matches[s.Idx]
	Repaint(m)
}

func prefixSearchAccept(d *Dispatch) Outcome {
	m := d.Modal
	s := m.prefixSearch
	result, parent := s.Response, s.Parent
	m.Transition(parent, func() {
		m.Prompt().Buf.Set(result)
	})
	return Ok
}

func prefixSearchAbort(d *Dispatch) Outcome {
	m := d.Modal
	parent := m.prefixSearch.Parent
	m.Transition(parent, func() {})
	return Ok
}

// prefixSearchOther commits whatever entry is currently shown and returns
// to the parent mode without consuming the triggering key otherwise; a
// simplification of full pass-through re-dispatch, since replaying an
// arbitrary key through another mode's trie needs the raw byte stream,
// which is already gone by the time an action runs.
func prefixSearchOther(d *Dispatch) Outcome {
	m := d.Modal
	s := m.prefixSearch
	result, parent := s.Response, s.Parent
	m.Transition(parent, func() {
		m.Prompt().Buf.Set(result)
	})
	return Ignore
}
