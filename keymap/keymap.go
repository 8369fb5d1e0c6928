// Package keymap implements a trie-based keymap: a tree keyed by
// characters whose leaves are actions, aliases, or "ignore", built by
// deep-merging a stack of layered maps and finished off with a wildcard
// fixup pass.
//
// It generalizes a two-character prefix matcher into an arbitrary-depth
// trie, since key sequences ("\M-b", bracketed-paste's five-byte
// introducer, ...) are not bounded to one or two bytes.
package keymap

import (
	"errors"
	"fmt"
)

// LeafKind identifies what a trie node resolves to once fully matched.
type LeafKind int

const (
	// LeafNone marks an internal node: no binding, only children.
	LeafNone LeafKind = iota
	// LeafAction is a resolved, invocable binding.
	LeafAction
	// LeafAlias redirects to another key sequence, resolved lazily at
	// decode time against the final, fully-merged trie.
	LeafAlias
	// LeafIgnore silently swallows the input.
	LeafIgnore
)

// Wildcard is the private-use codepoint used as the catch-all trie
// child. It can never appear in a literal key.
const Wildcard rune = 0xE000

// Named is the constraint every action type must satisfy: keymap needs a
// stable identity to detect conflicting definitions without requiring
// actions to be comparable with ==.
type Named interface {
	Name() string
}

// Construction-time error taxonomy. All are fatal; callers building a
// keymap at startup should treat any of them as unrecoverable.
var (
	ErrWildcardInLiteral = errors.New("keymap: wildcard rune used in a literal key")
	ErrBadControlForm    = errors.New("keymap: unrecognized \\C- or \\M- escape form")
	ErrConflict          = errors.New("keymap: conflicting definitions without override")
	ErrAliasCycle        = errors.New("keymap: redirection cycle")
	ErrDanglingAlias     = errors.New("keymap: alias target is not bound")
)

// Binding is one entry of a user-facing layered map: an action, a
// redirection naming another key in user-facing form, or an explicit
// ignore.
type Binding[T Named] struct {
	Kind   LeafKind
	Action T
	Alias  string // user-facing key string, e.g. "\C-x" -- only for LeafAlias
}

// Bind wraps an action as a direct binding.
func Bind[T Named](a T) Binding[T] { return Binding[T]{Kind: LeafAction, Action: a} }

// Redirect creates an alias binding pointing at another key, given in the
// same user-facing form accepted by Normalize (e.g. "\r").
func Redirect[T Named](key string) Binding[T] { return Binding[T]{Kind: LeafAlias, Alias: key} }

// IgnoreBinding creates an explicit ignore binding.
func IgnoreBinding[T Named]() Binding[T] { return Binding[T]{Kind: LeafIgnore} }

// Map is one layer of a keymap: user-facing key strings to bindings. A
// keymap is built from a stack of these, lowest precedence first.
type Map[T Named] map[string]Binding[T]

// node is one trie vertex. A node may hold both a leaf resolution and
// children simultaneously (e.g. bare Escape vs. an Escape-prefixed
// sequence) -- disambiguated at decode time via a short read timeout,
// matching the terminal's own short read timeout, which exists for
// exactly this reason.
type node[T Named] struct {
	children map[rune]*node[T]
	wildcard *node[T] // cached children[Wildcard], filled in by fixupWildcards
	kind     LeafKind
	action   T
	alias    []rune // normalized alias target, resolved lazily at decode
}

func newNode[T Named]() *node[T] {
	return &node[T]{children: make(map[rune]*node[T])}
}

// Trie is a built, read-only keymap ready for decoding.
type Trie[T Named] struct {
	root *node[T]
}

// Build merges layers from lowest to highest precedence (the last
// argument wins conflicts), then applies the wildcard fixup pass, and
// validates that every alias resolves to a bound leaf without cycles.
func Build[T Named](layers ...Map[T]) (*Trie[T], error) {
	if len(layers) == 0 {
		return &Trie[T]{root: newNode[T]()}, nil
	}
	canon := make([]Map[T], len(layers))
	for i, l := range layers {
		c, err := canonicalize(l)
		if err != nil {
			return nil, err
		}
		canon[i] = c
	}

	merged := canon[0]
	var err error
	for _, layer := range canon[1:] {
		merged, err = Merge(layer, merged, true)
		if err != nil {
			return nil, err
		}
	}

	if err := validateAliases(merged); err != nil {
		return nil, err
	}

	root := buildTrie(merged)
	fixupWildcards(root)
	return &Trie[T]{root: root}, nil
}

// canonicalize rewrites a user-facing layer so every key, and every
// alias target, is the Go string form of its normalized rune sequence.
// Doing this once up front lets every later stage (Merge, validateAliases,
// buildTrie) compare and look up keys as plain strings instead of
// re-normalizing and risking two different spellings of the same key
// (e.g. "\C-x" vs. an equivalent literal control byte) missing each other.
func canonicalize[T Named](m Map[T]) (Map[T], error) {
	out := make(Map[T], len(m))
	for k, v := range m {
		runes, err := Normalize(k)
		if err != nil {
			return nil, err
		}
		if v.Kind == LeafAlias {
			target, err := Normalize(v.Alias)
			if err != nil {
				return nil, err
			}
			v.Alias = string(target)
		}
		out[string(runes)] = v
	}
	return out, nil
}

// Merge deep-merges source into target, target taking precedence on
// conflicting keys. Without override, two DIFFERENT direct bindings
// (actions with different names, or aliases with different targets) at
// the same key is a fatal ErrConflict; identical bindings, or one side
// being unset, are not conflicts. With override, target always wins
// silently.
func Merge[T Named](target, source Map[T], override bool) (Map[T], error) {
	result := make(Map[T], len(target)+len(source))
	for k, v := range source {
		result[k] = v
	}
	for k, tv := range target {
		if sv, exists := result[k]; exists && !override && conflicts(tv, sv) {
			return nil, fmt.Errorf("%w: key %q", ErrConflict, k)
		}
		result[k] = tv
	}
	return result, nil
}

func conflicts[T Named](a, b Binding[T]) bool {
	if a.Kind != b.Kind {
		return true
	}
	switch a.Kind {
	case LeafAlias:
		return a.Alias != b.Alias
	case LeafAction:
		return a.Action.Name() != b.Action.Name()
	default:
		return false
	}
}

// validateAliases walks each alias chain in a canonicalized map (keys and
// alias targets are already normalized-rune strings) to reject cycles and
// targets that resolve to nothing.
func validateAliases[T Named](m Map[T]) error {
	for k, v := range m {
		if v.Kind != LeafAlias {
			continue
		}
		visited := map[string]bool{k: true}
		cur := v
		for cur.Kind == LeafAlias {
			targetKey := cur.Alias
			if visited[targetKey] {
				return fmt.Errorf("%w: starting at %q", ErrAliasCycle, k)
			}
			visited[targetKey] = true
			next, ok := m[targetKey]
			if !ok {
				return fmt.Errorf("%w: %q -> %q", ErrDanglingAlias, k, cur.Alias)
			}
			cur = next
		}
	}
	return nil
}

// buildTrie builds the trie from an already-canonicalized map: every key
// is the exact rune-string a decode walk will retrace, so no further
// normalization happens here.
func buildTrie[T Named](m Map[T]) *node[T] {
	root := newNode[T]()
	for k, v := range m {
		n := root
		for _, r := range k {
			child, ok := n.children[r]
			if !ok {
				child = newNode[T]()
				n.children[r] = child
			}
			n = child
		}
		n.kind = v.Kind
		n.action = v.Action
		if v.Kind == LeafAlias {
			n.alias = []rune(v.Alias)
		}
	}
	return root
}
