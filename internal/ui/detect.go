// Package ui renders run results for people and for scripts.
package ui

import (
	"os"

	"golang.org/x/term"
)

type Mode int

const (
	// ModePlain is for CI logs, pipes and redirected output.
	ModePlain Mode = iota
	// ModeStyled is used when stdout is a terminal.
	ModeStyled
)

// DetectMode returns ModePlain when FOODETL_NON_INTERACTIVE=1, CI or
// NO_COLOR is set, or stdout is not a terminal.
func DetectMode() Mode {
	if os.Getenv("FOODETL_NON_INTERACTIVE") == "1" {
		return ModePlain
	}
	if os.Getenv("CI") != "" || os.Getenv("NO_COLOR") != "" {
		return ModePlain
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModePlain
	}
	return ModeStyled
}
