// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/pdfchat-tui/internal/ui/styles"
	"github.com/jeranaias/pdfchat-tui/internal/util"
)

// Header is the single title line at the top of the screen.
type Header struct {
	Title  string
	Server string
	Width  int

	theme *styles.Theme
}

// NewHeader creates a header.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "pdfchat",
		Width: 80,
		theme: theme,
	}
}

// SetWidth sets the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetServer sets the backend address shown on the right.
func (h *Header) SetServer(server string) {
	h.Server = server
}

// View renders the header.
func (h *Header) View() string {
	title := h.theme.HeaderTitle.Render("< " + h.Title + " >")
	if h.Server == "" {
		return h.theme.Header.Width(h.Width).Render(title)
	}

	room := h.Width - lipgloss.Width(title) - 4
	server := h.theme.HeaderSubtitle.Render(util.TruncateWidth(h.Server, room))
	gap := h.Width - 2 - lipgloss.Width(title) - lipgloss.Width(server)
	if gap < 1 {
		return h.theme.Header.Width(h.Width).Render(title)
	}
	return h.theme.Header.Width(h.Width).Render(title + strings.Repeat(" ", gap) + server)
}
