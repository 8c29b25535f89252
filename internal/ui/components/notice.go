// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/pdfchat-tui/internal/ui/styles"
)

// NoticeHint tells the user how to acknowledge a notice.
const NoticeHint = "Press Enter to continue"

// NoticeModal is a blocking message box. While visible the chat model
// routes every key to it.
type NoticeModal struct {
	text    string
	isError bool
	visible bool

	width  int
	height int

	theme *styles.Theme
}

// NewNoticeModal creates a hidden modal.
func NewNoticeModal(theme *styles.Theme) NoticeModal {
	return NoticeModal{theme: theme}
}

// Show displays text. isError selects the error styling.
func (n *NoticeModal) Show(text string, isError bool) {
	n.text = text
	n.isError = isError
	n.visible = true
}

// Hide removes the modal.
func (n *NoticeModal) Hide() {
	n.visible = false
	n.text = ""
}

// IsVisible reports whether the modal is showing.
func (n *NoticeModal) IsVisible() bool {
	return n.visible
}

// Text returns the displayed message.
func (n *NoticeModal) Text() string {
	return n.text
}

// SetSize updates the area the modal is centered in.
func (n *NoticeModal) SetSize(width, height int) {
	n.width = width
	n.height = height
}

// View renders the modal centered in its area.
func (n NoticeModal) View() string {
	if !n.visible {
		return ""
	}

	width := n.width
	if width == 0 {
		width = 80
	}
	maxWidth := width - 8
	if maxWidth > 70 {
		maxWidth = 70
	}
	if maxWidth < 30 {
		maxWidth = 30
	}

	box := n.theme.NoticeBox
	title := styles.RenderInfo("Notice")
	if n.isError {
		box = n.theme.NoticeErrorBox
		title = styles.RenderError("Error")
	}

	body := lipgloss.NewStyle().Width(maxWidth - 6).Render(n.text)
	content := lipgloss.JoinVertical(lipgloss.Left,
		n.theme.NoticeTitle.Render(title),
		"",
		body,
		"",
		n.theme.NoticeHint.Render(NoticeHint),
	)
	rendered := box.Render(content)

	if n.height > 0 {
		return lipgloss.Place(width, n.height, lipgloss.Center, lipgloss.Center, rendered)
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, rendered)
}
