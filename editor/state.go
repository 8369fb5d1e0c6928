package editor

import (
	"time"

	"lineedit/buffer"
	"lineedit/hint"
	"lineedit/render"
)

// ModeID names one of the three cooperating modes.
type ModeID int

const (
	ModePrompt ModeID = iota
	ModeSearch
	ModePrefixSearch
)

// HintState distinguishes "no hint", "clear the old hint on next paint"
// (the empty-string sentinel), and an actual suggestion.
type HintState struct {
	Text    string
	Pending bool // set means: emit a clear-to-end-of-line pass before painting
}

// PromptState is the Prompt mode's mutable record.
type PromptState struct {
	Buf          *buffer.Buffer
	Region       buffer.RegionState
	Hint         HintState
	Undo         *buffer.UndoStack
	Area         render.InputAreaState
	IndentTmpOff bool // auto_indent_tmp_off: paste heuristic suppressing one newline's indent
	BeepLevel    int
	LastNewline  time.Time
	LastInsert   time.Time
	NonSpaceRun  int // consecutive non-space insertions, for paste detection

	// Candidates holds the last laid-out completion list, printed below
	// the input line by a repeated Tab when no further prefix progress is
	// possible. Any other action clears it.
	Candidates []string

	Prompt string
	Scope  string // ambient module/scope token handed to the completion provider

	// OnEnter decides whether Enter commits or inserts a literal newline.
	OnEnter func(line string) bool
	// OnDone is invoked once, after the loop exits, with the final line
	// and whether it was accepted.
	OnDone func(line string, accepted bool)

	Complete hint.Provider
	Sticky   bool
}

// NewPromptState returns a fresh Prompt mode state seeded with initial.
func NewPromptState(prompt, initial string) *PromptState {
	return &PromptState{
		Buf:    buffer.NewFromString(initial),
		Undo:   buffer.NewUndoStack(),
		Prompt: prompt,
	}
}

// SearchState is History Search mode's record.
type SearchState struct {
	Query    *buffer.Buffer
	Response string // current matched history line
	Backward bool
	Failed   bool
	Parent   ModeID
	Area     render.InputAreaState
}

// NewSearchState returns a fresh search state, direction backward or
// forward, returning to parent on accept/cancel.
func NewSearchState(backward bool, parent ModeID) *SearchState {
	return &SearchState{Query: buffer.New(), Backward: backward, Parent: parent}
}

// PrefixSearchState is Prefix History Search mode's record.
type PrefixSearchState struct {
	Prefix   string
	Response string
	Idx      int // -1 means "not yet walked into history"
	Parent   ModeID
	Area     render.InputAreaState
}

// NewPrefixSearchState captures prefix (buffer content up to cursor at
// entry) and the mode to return to.
func NewPrefixSearchState(prefix string, parent ModeID) *PrefixSearchState {
	return &PrefixSearchState{Prefix: prefix, Parent: parent, Idx: -1, Response: prefix}
}
