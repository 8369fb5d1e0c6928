package editor

// runSearchStep re-runs the current query against history in the given
// direction and installs the result.
func runSearchStep(m *Modal, backward bool) {
	s := m.search
	query := s.Query.Text()
	if query == "" {
		s.Response = ""
		s.Failed = false
		return
	}
	match, ok := m.Hist.Search(query, backward)
	if !ok {
		s.Failed = true
		return
	}
	s.Failed = false
	s.Response = match
}

func searchSelfInsert(d *Dispatch) Outcome {
	m := d.Modal
	if len(d.Matched) == 0 {
		return Ignore
	}
	s := m.search
	s.Query.Insert(string(d.Matched[len(d.Matched)-1]))
	runSearchStep(m, s.Backward)
	return Ok
}

func searchDeleteBackward(d *Dispatch) Outcome {
	m := d.Modal
	s := m.search
	if s.Query.DeleteBackward() == nil {
		m.Beep()
		return Ignore
	}
	m.Hist.Reset()
	runSearchStep(m, s.Backward)
	return Ok
}

func searchAgainBackward(d *Dispatch) Outcome {
	m := d.Modal
	m.search.Backward = true
	runSearchStep(m, true)
	return Ok
}

func searchAgainForward(d *Dispatch) Outcome {
	m := d.Modal
	m.search.Backward = false
	runSearchStep(m, false)
	return Ok
}

func searchAccept(d *Dispatch) Outcome {
	acceptSearch(d.Modal)
	return Ok
}

func searchAbort(d *Dispatch) Outcome {
	m := d.Modal
	parent := m.search.Parent
	m.Transition(parent, func() {})
	return Ok
}

// acceptSearch installs the current match into the parent buffer and
// switches back to it, exactly like Enter, but without producing an
// Outcome of its own so callers can chain a follow-up action afterward.
func acceptSearch(m *Modal) {
	s := m.search
	result, parent := s.Response, s.Parent
	m.Transition(parent, func() {
		if result != "" {
			m.Prompt().Buf.Set(result)
		}
	})
}

// searchAcceptThenMotion wraps a parent-mode motion so that, bound in
// Search mode, the key first accepts the current match (same as Enter)
// and then replays the motion in the now-active parent mode — an arrow
// key during an incremental search both ends the search and moves the
// cursor, rather than being swallowed as a literal query character or
// left to desync the decoder.
func searchAcceptThenMotion(motion func(*Dispatch) Outcome) func(*Dispatch) Outcome {
	return func(d *Dispatch) Outcome {
		acceptSearch(d.Modal)
		return motion(d)
	}
}
