// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/pdfchat-tui/internal/ui/styles"
)

// WelcomeTitle heads the placeholder shown before the first entry.
const WelcomeTitle = "Chat with your PDF"

// Welcome is the transcript placeholder. It disappears with the first entry.
type Welcome struct {
	dropDir string

	width  int
	height int

	theme *styles.Theme
}

// NewWelcome creates a welcome placeholder.
func NewWelcome(theme *styles.Theme) Welcome {
	return Welcome{theme: theme}
}

// SetDropDir sets the drop directory mentioned in the instructions.
func (w *Welcome) SetDropDir(dir string) {
	w.dropDir = dir
}

// SetSize updates the dimensions. A zero height disables vertical centering.
func (w *Welcome) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// Steps returns the getting-started instructions.
func (w Welcome) Steps() []string {
	steps := []string{
		"1. Enter your API key and press Enter",
		"2. Type or paste the path of a PDF",
		"3. Ask questions about the document",
	}
	if w.dropDir != "" {
		steps[1] += ", or drop it into " + w.dropDir
	}
	return steps
}

// View renders the placeholder.
func (w Welcome) View() string {
	width := w.width
	if width == 0 {
		width = 80
	}

	boxWidth := 60
	if boxWidth > width-4 {
		boxWidth = width - 4
	}
	if boxWidth < 30 {
		boxWidth = 30
	}

	var sb strings.Builder
	sb.WriteString(w.theme.WelcomeLogo.Render(WelcomeTitle))
	sb.WriteString("\n\n")
	for i, step := range w.Steps() {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(w.theme.WelcomeInfo.Render(step))
	}
	sb.WriteString("\n\n")
	sb.WriteString(w.theme.WelcomeKey.Render("tab") + w.theme.WelcomeInfo.Render(" moves between fields"))

	box := w.theme.WelcomeBox.
		Width(boxWidth).
		Align(lipgloss.Left).
		Render(sb.String())

	if w.height > 0 {
		return lipgloss.Place(width, w.height, lipgloss.Center, lipgloss.Center, box)
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}
