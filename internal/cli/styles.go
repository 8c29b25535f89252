// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared colors for line-mode output.
//
// Colors are disabled for non-TTY output and when NO_COLOR is set.
package cli

import (
	"github.com/fatih/color"

	"github.com/jeranaias/pdfchat-tui/internal/markup"
)

func init() {
	color.NoColor = !ColorsEnabled()
}

var (
	titleColor   = color.New(color.FgMagenta, color.Bold)
	userColor    = color.New(color.FgCyan, color.Bold)
	botColor     = color.New(color.FgMagenta, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow)
	dimColor     = color.New(color.Faint)
	emphColor    = color.New(color.Bold)
)

// renderEmphasis renders inline markup for the terminal: emphasized runs
// in bold, delimiters removed.
func renderEmphasis(text string) string {
	return markup.Render(text, func(s string) string { return emphColor.Sprint(s) })
}
