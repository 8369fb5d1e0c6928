package keymap

// Reader is the input source Decode walks against. NextTimeout is used
// only to disambiguate a node that is both a resolvable leaf and the
// prefix of a longer sequence (bare Escape vs. "\M-b"); its bound should
// match the terminal's own read timeout, which exists for exactly the
// same ESC-vs-Meta question at the byte-stream level. PushBack returns a
// rune that was read but turned out not to continue the current
// sequence, so it can be re-read as the start of the next one.
type Reader interface {
	Next() (rune, bool)
	NextTimeout() (rune, bool)
	PushBack(r rune)
}

// Result is what a single Decode call resolves to.
type Result[T Named] struct {
	Kind   LeafKind
	Action T
	// Runes is the literal sequence of runes read off the wire that
	// produced this result (never an alias's target sequence), so a
	// self-insert-style action can recover the actual character typed.
	Runes []rune
	// Matched is false when decoding hit a dead end (no bound child and
	// no wildcard for the rune read), the Reader ran dry before a leaf
	// was reached, or an alias led nowhere; RunInterface drops such input
	// and reads on.
	Matched bool
}

// Decode walks r against t one rune at a time until it reaches a
// resolvable leaf, an alias (which it chases through the same trie), or a
// dead end.
func (t *Trie[T]) Decode(r Reader) Result[T] {
	n := t.root
	var matched []rune
	for {
		if n.kind != LeafNone && len(n.children) == 0 {
			return t.resolve(n, matched)
		}

		var next rune
		var ok bool
		if n.kind != LeafNone {
			next, ok = r.NextTimeout()
			if !ok {
				return t.resolve(n, matched)
			}
		} else {
			next, ok = r.Next()
			if !ok {
				return Result[T]{}
			}
		}

		child, found := n.children[next]
		if !found {
			child = n.wildcard
			found = child != nil
		}
		if !found {
			if n.kind != LeafNone {
				r.PushBack(next)
				return t.resolve(n, matched)
			}
			if n == t.root {
				return Result[T]{}
			}
			r.PushBack(next)
			return Result[T]{}
		}
		matched = append(matched, next)
		n = child
	}
}

// resolve turns a node that has stopped descending into a Result,
// chasing an alias through the trie (by rune sequence, not the live
// Reader) until it lands on a concrete action or ignore leaf. matched is
// always the originally typed sequence, never rewritten to an alias's
// target.
func (t *Trie[T]) resolve(n *node[T], matched []rune) Result[T] {
	for n.kind == LeafAlias {
		n = t.lookup(n.alias)
		if n == nil {
			return Result[T]{}
		}
	}
	switch n.kind {
	case LeafAction:
		return Result[T]{Kind: LeafAction, Action: n.action, Runes: matched, Matched: true}
	case LeafIgnore:
		return Result[T]{Kind: LeafIgnore, Runes: matched, Matched: true}
	default:
		return Result[T]{}
	}
}

// lookup walks runes from the root purely by map lookup, used to chase a
// resolved alias target without consuming any Reader input.
func (t *Trie[T]) lookup(runes []rune) *node[T] {
	n := t.root
	for _, r := range runes {
		child, ok := n.children[r]
		if !ok {
			return nil
		}
		n = child
	}
	return n
}
