// Demo runs the line editor standalone against the real terminal, so its
// behavior can be exercised interactively outside a host application.
package main

import (
	"fmt"
	"os"

	"lineedit/editor"
	"lineedit/history"
	"lineedit/term"
)

func main() {
	t, err := term.New(os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, "lineedit: opening terminal:", err)
		os.Exit(1)
	}

	opts, err := editor.LoadOptions()
	if err != nil {
		fmt.Fprintln(os.Stderr, "lineedit: loading options:", err)
		os.Exit(1)
	}

	hist := history.NewMemoryHistory()

	for {
		prompt := editor.NewPromptState("lineedit> ", "")
		prompt.OnEnter = func(line string) bool { return true }

		m, err := editor.NewModal(t, opts, hist, prompt)
		if err != nil {
			fmt.Fprintln(os.Stderr, "lineedit: building modal:", err)
			os.Exit(1)
		}

		line, accepted, err := editor.RunInterface(t, m)
		if err != nil {
			fmt.Fprintln(os.Stderr, "lineedit:", err)
			os.Exit(1)
		}
		fmt.Println()
		if !accepted {
			if line == "" {
				break
			}
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		hist.Add(line)
		fmt.Printf("you typed: %q\n", line)
	}
}
