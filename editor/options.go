package editor

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Options holds every runtime tunable, decoded from a `[editor]` TOML
// table and layered over library defaults.
type Options struct {
	Scheme string `toml:"scheme"` // "emacs" (only scheme this module ships)

	BeepDuration    time.Duration `toml:"-"`
	BeepDurationMs  int           `toml:"beepDurationMs"`
	BeepBlink       bool          `toml:"beepBlink"`
	BeepMaxDuration time.Duration `toml:"-"`
	BeepMaxDurMs    int           `toml:"beepMaxDurationMs"`
	BeepColors      []int         `toml:"beepColors"` // ANSI foreground codes, escalating with PromptState.BeepLevel
	BeepUseCurrent  bool          `toml:"beepUseCurrent"`

	BackspaceAlign  bool `toml:"backspaceAlign"`
	BackspaceAdjust bool `toml:"backspaceAdjust"`

	AutoIndent               int           `toml:"autoIndent"`
	AutoIndentBracketedPaste bool          `toml:"autoIndentBracketedPaste"`
	AutoIndentTimeThreshold  time.Duration `toml:"-"`
	AutoIndentThresholdMs    int           `toml:"autoIndentThresholdMs"`

	AutoRefreshTimeDelay time.Duration `toml:"-"`
	AutoRefreshDelayMs   int           `toml:"autoRefreshDelayMs"`

	HintTabCompletes         bool          `toml:"hintTabCompletes"`
	RegionAnimationDuration  time.Duration `toml:"-"`
	RegionAnimationDurMs     int           `toml:"regionAnimationDurationMs"`
	KillRingMax              int           `toml:"killRingMax"`
	ConfirmExit              bool          `toml:"confirmExit"`
	TabWidth                 int           `toml:"tabWidth"`
}

// DefaultOptions returns the library defaults.
func DefaultOptions() *Options {
	o := &Options{
		Scheme:                   "emacs",
		BeepDurationMs:           60,
		BeepBlink:                true,
		BeepMaxDurMs:             500,
		BeepColors:               []int{33, 31},
		BeepUseCurrent:           false,
		BackspaceAlign:           true,
		BackspaceAdjust:          true,
		AutoIndent:               0,
		AutoIndentBracketedPaste: true,
		AutoIndentThresholdMs:    30,
		AutoRefreshDelayMs:       20,
		HintTabCompletes:         true,
		RegionAnimationDurMs:     150,
		KillRingMax:              32,
		ConfirmExit:              false,
		TabWidth:                 8,
	}
	o.resolveDurations()
	return o
}

func (o *Options) resolveDurations() {
	o.BeepDuration = time.Duration(o.BeepDurationMs) * time.Millisecond
	o.BeepMaxDuration = time.Duration(o.BeepMaxDurMs) * time.Millisecond
	o.AutoIndentTimeThreshold = time.Duration(o.AutoIndentThresholdMs) * time.Millisecond
	o.AutoRefreshTimeDelay = time.Duration(o.AutoRefreshDelayMs) * time.Millisecond
	o.RegionAnimationDuration = time.Duration(o.RegionAnimationDurMs) * time.Millisecond
}

// ConfigPath returns ~/.config/lineedit/config.toml.
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "lineedit", "config.toml"), nil
}

// LoadOptions loads options, layering a user TOML file (if any) over
// DefaultOptions. A missing config file is not an error; it just means
// defaults.
func LoadOptions() (*Options, error) {
	opts := DefaultOptions()

	path, err := ConfigPath()
	if err != nil {
		return opts, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return opts, nil
	}

	var wrapper struct {
		Editor Options `toml:"editor"`
	}
	wrapper.Editor = *opts
	if _, err := toml.DecodeFile(path, &wrapper); err != nil {
		return nil, fmt.Errorf("loading options from %s: %w", path, err)
	}
	wrapper.Editor.resolveDurations()
	return &wrapper.Editor, nil
}
