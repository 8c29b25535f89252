// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/pdfchat-tui/internal/ui/styles"
)

const (
	labelWidth   = 10
	minViewport  = 3
	questionRows = 3
)

// View renders the screen. A visible notice replaces everything else.
func (m Model) View() string {
	if m.notice.IsVisible() {
		return m.notice.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		m.viewport.View(),
		m.renderControls(),
		m.renderQuestion(),
		m.statusBar.View(),
	)
}

// layout sizes every component for the current window. The viewport gets
// whatever height the fixed chrome leaves.
func (m *Model) layout() {
	width := m.width
	if width < 20 {
		width = 20
	}

	m.header.SetWidth(width)
	m.statusBar.SetWidth(width)
	m.dropZone.Width = width
	m.messages.SetWidth(width)
	m.notice.SetSize(width, m.height)

	buttonWidth := lipgloss.Width(m.renderButton()) + 12
	m.keyInput.Width = maxInt(10, width-labelWidth-buttonWidth-2)
	m.pathInput.Width = maxInt(10, width-labelWidth-2)
	m.question.SetWidth(maxInt(10, width-4))
	m.question.SetHeight(questionRows)

	chrome := lipgloss.Height(m.header.View()) +
		lipgloss.Height(m.renderControls()) +
		lipgloss.Height(m.renderQuestion()) +
		lipgloss.Height(m.statusBar.View())

	m.viewport.Width = width
	m.viewport.Height = maxInt(minViewport, m.height-chrome)
}

// =============================================================================
// CONTROLS
// =============================================================================

func (m Model) renderLabel(text string, f field) string {
	style := m.theme.FieldLabel
	if m.focus == f {
		style = style.Foreground(styles.Purple).Bold(true)
	}
	return style.Render(text)
}

func (m Model) renderButton() string {
	c := m.sess.Controls()
	style := m.theme.Button
	if c.Saving {
		style = m.theme.ButtonActive
	}
	return style.Render(c.SaveLabel)
}

func (m Model) renderControls() string {
	c := m.sess.Controls()

	keyStatus := m.theme.StatusIdle.Render(c.KeyStatus)
	if c.KeyAccepted {
		keyStatus = m.theme.StatusReady.Render(c.KeyStatus)
	}
	keyLine := m.renderLabel("API key", fieldKey) +
		m.keyInput.View() + " " + m.renderButton() + " " + keyStatus

	pathLine := m.renderLabel("Document", fieldDocument) + m.pathInput.View()

	return lipgloss.JoinVertical(lipgloss.Left, keyLine, pathLine, m.dropZone.View())
}

func (m Model) renderQuestion() string {
	style := m.theme.InputDisabled
	if m.sess.Controls().QuestionEnabled {
		style = m.theme.InputContainer
		if m.focus == fieldQuestion {
			style = m.theme.InputFocused
		}
	}

	title := m.renderLabel("Question", fieldQuestion)
	if m.sess.InFlight() {
		title += " " + m.spinner.View()
	}

	width := maxInt(20, m.width) - 2
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		style.Width(width).Render(strings.TrimRight(m.question.View(), "\n")),
	)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
