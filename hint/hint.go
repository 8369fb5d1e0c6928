// Package hint implements the background completion-hint task: after any
// keystroke that leaves the cursor at end-of-buffer, it asks the
// completion provider for a fast, possibly partial, answer without
// blocking the main loop, and discards the result if a newer keystroke
// has arrived by the time it would be shown. The concurrency shape --
// context+cancel, a WaitGroup to join in-flight work, and a mutex
// serializing the expensive call -- mirrors a background refresh loop
// that must never let a slow fetch stall the foreground.
package hint

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
)

// NamedCompletion is a candidate's insertable text paired with the text
// shown in the candidate list; they're equal unless the provider wants to
// show something more descriptive than what actually gets spliced in.
type NamedCompletion struct {
	Completion string
	Display    string
}

// Provider is the completion backend the editor consumes. Region is the
// byte range in the buffer the completion, if applied, replaces.
type Provider interface {
	CompleteLine(ctx context.Context, text []byte, position int, scope string, hint bool) (candidates []NamedCompletion, region [2]int, shouldComplete bool)
}

// Counter is the shared keystroke count: the main loop bumps it on every
// keystroke; the hint worker snapshots it before and after the provider
// call to detect staleness.
type Counter struct{ v atomic.Int64 }

// Bump records a new keystroke, invalidating any hint work already in
// flight.
func (c *Counter) Bump() { c.v.Add(1) }

// Snapshot returns the current value.
func (c *Counter) Snapshot() int64 { return c.v.Load() }

// Worker runs completion in hint mode on a background goroutine, one at a
// time (hint-generation mutex), and installs the result under the caller's
// line-modify mutex only if it's still fresh.
type Worker struct {
	provider Provider
	keys     *Counter

	hintMu sync.Mutex // serializes completion calls
	wg     sync.WaitGroup

	cancel context.CancelFunc
	mu     sync.Mutex // guards cancel; no method of Worker sets cancel or takes mu
}

// New returns a hint worker backed by provider, sharing keys with the
// editor's keystroke counter.
func New(provider Provider, keys *Counter) *Worker {
	return &Worker{provider: provider, keys: keys}
}

// LineLocker is the line-modify mutex the caller already holds for any
// paint/edit; the hint worker acquires it only to install a fresh hint.
type LineLocker interface {
	Lock()
	Unlock()
}

// Spawn launches the background hint task. onHint is invoked with the
// computed display suffix under lineMu, only if no newer keystroke arrived
// and aborted() is still false; it never fires for a stale result.
func (w *Worker) Spawn(ctx context.Context, text []byte, position int, scope, partial string, lineMu LineLocker, aborted func() bool, onHint func(suffix string)) {
	seen := w.keys.Snapshot()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		w.hintMu.Lock()
		defer w.hintMu.Unlock()

		if w.keys.Snapshot() != seen {
			return
		}

		candidates, _, _ := w.provider.CompleteLine(ctx, text, position, scope, true)
		if ctx.Err() != nil {
			return
		}

		suffix, ok := hintSuffix(candidates, partial)
		if !ok {
			return
		}

		lineMu.Lock()
		defer lineMu.Unlock()

		if w.keys.Snapshot() != seen || aborted() {
			return
		}
		onHint(suffix)
	}()
}

// Wait blocks until every spawned hint task has returned, used by the
// outer loop's teardown.
func (w *Worker) Wait() { w.wg.Wait() }

// hintSuffix computes the display suffix relative to partial: if exactly
// one candidate, or the common prefix of all candidates matches one of
// them.
func hintSuffix(candidates []NamedCompletion, partial string) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	if len(candidates) == 1 {
		return suffixAfter(candidates[0].Completion, partial)
	}
	prefix := commonPrefix(candidates)
	if prefix == "" {
		return "", false
	}
	for _, c := range candidates {
		if c.Completion == prefix {
			return suffixAfter(prefix, partial)
		}
	}
	return "", false
}

func suffixAfter(full, partial string) (string, bool) {
	if !strings.HasPrefix(full, partial) {
		return "", false
	}
	suf := full[len(partial):]
	if suf == "" {
		return "", false
	}
	return suf, true
}

func commonPrefix(candidates []NamedCompletion) string {
	if len(candidates) == 0 {
		return ""
	}
	prefix := candidates[0].Completion
	for _, c := range candidates[1:] {
		prefix = commonOf(prefix, c.Completion)
		if prefix == "" {
			return ""
		}
	}
	return prefix
}

func commonOf(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}
