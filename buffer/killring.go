package buffer

// KillRing is a bounded, ordered sequence of killed text snippets with a
// rotating read index, shared across all modes of a session.
type KillRing struct {
	entries []string
	max     int
	idx     int  // index of the most recently yanked entry
	concat  bool // whether the next kill should merge with the tail entry
}

// NewKillRing returns a KillRing bounded to max entries (max <= 0 means
// unbounded).
func NewKillRing(max int) *KillRing {
	return &KillRing{max: max}
}

// Len returns the number of entries currently held.
func (k *KillRing) Len() int { return len(k.entries) }

// SetConcat marks whether the next Kill call should merge with the tail
// entry instead of pushing a new one (set when the same kill command
// repeats within one action chain).
func (k *KillRing) SetConcat(v bool) { k.concat = v }

// Kill records deleted text. backward selects prepend-to-tail direction
// (matches deletion direction); when the ring is not in concat mode, a
// fresh entry is appended instead.
func (k *KillRing) Kill(text string, backward bool) {
	if text == "" {
		return
	}
	if k.concat && len(k.entries) > 0 {
		tail := len(k.entries) - 1
		if backward {
			k.entries[tail] = text + k.entries[tail]
		} else {
			k.entries[tail] = k.entries[tail] + text
		}
		k.idx = tail
		return
	}
	k.entries = append(k.entries, text)
	if k.max > 0 && len(k.entries) > k.max {
		k.entries = k.entries[len(k.entries)-k.max:]
	}
	k.idx = len(k.entries) - 1
	k.concat = true
}

// Copy writes text to the ring without deleting anything (copy-region).
// It always starts a fresh entry.
func (k *KillRing) Copy(text string) {
	if text == "" {
		return
	}
	k.entries = append(k.entries, text)
	if k.max > 0 && len(k.entries) > k.max {
		k.entries = k.entries[len(k.entries)-k.max:]
	}
	k.idx = len(k.entries) - 1
	k.concat = false
}

// Current returns the entry at the current read index, or "" if the ring
// is empty.
func (k *KillRing) Current() (string, bool) {
	if len(k.entries) == 0 {
		return "", false
	}
	return k.entries[k.idx], true
}

// Rotate moves the read index to the preceding entry (mod ring size) and
// returns it, for yank-pop.
func (k *KillRing) Rotate() (string, bool) {
	if len(k.entries) == 0 {
		return "", false
	}
	k.idx = (k.idx - 1 + len(k.entries)) % len(k.entries)
	return k.entries[k.idx], true
}
