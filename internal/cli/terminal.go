// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - What pdfchat may assume about the terminal it runs in.
//
// tui and chat need stdin and stdout to be terminals. ask, config and logs
// run anywhere and colour their output only when stdout is a terminal,
// unless NO_COLOR or FORCE_COLOR says otherwise.

package cli

import (
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// REPL banner rule bounds.
const (
	fallbackWidth = 80
	narrowWidth   = 40
)

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// GetTerminalWidth returns the stdout width, or 80 when it is not a terminal.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	switch {
	case err != nil || width <= 0:
		return fallbackWidth
	case width < narrowWidth:
		return narrowWidth
	}
	return width
}

// =============================================================================
// COLOUR
// =============================================================================

var (
	useColor     bool
	useColorOnce sync.Once
)

// colorChoice decides whether to colour output. NO_COLOR (https://no-color.org)
// beats FORCE_COLOR, which beats the terminal check.
func colorChoice(getenv func(string) string, tty bool) bool {
	switch {
	case getenv("NO_COLOR") != "":
		return false
	case getenv("FORCE_COLOR") != "":
		return true
	}
	return tty
}

// ColorsEnabled reports the colour decision for this process.
func ColorsEnabled() bool {
	useColorOnce.Do(func() {
		useColor = colorChoice(os.Getenv, stdoutIsTerminal())
	})
	return useColor
}

// ForceColorsEnabled pins the colour decision and the fatih/color switch.
func ForceColorsEnabled(enabled bool) {
	useColorOnce = sync.Once{}
	useColorOnce.Do(func() { useColor = enabled })
	color.NoColor = !enabled
}

// GetColorProfile returns the lipgloss profile for the interface: plain
// ASCII when colour is off, otherwise whatever termenv detects.
func GetColorProfile() termenv.Profile {
	if !ColorsEnabled() {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

// =============================================================================
// TTY REQUIREMENT
// =============================================================================

// RequiresTTY fails with *TTYRequiredError unless stdin and stdout are both
// terminals. operation completes "cannot ..." in the message.
func RequiresTTY(operation string) error {
	if stdinIsTerminal() && stdoutIsTerminal() {
		return nil
	}
	return &TTYRequiredError{Operation: operation}
}

// TTYRequiredError means tui or chat was started from a pipe or script.
type TTYRequiredError struct {
	Operation string
}

func (e *TTYRequiredError) Error() string {
	if e.Operation == "" {
		return "not a terminal (use 'pdfchat ask' from scripts)"
	}
	return "not a terminal; cannot " + e.Operation + " (use 'pdfchat ask' from scripts)"
}
