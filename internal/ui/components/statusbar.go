// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/pdfchat-tui/internal/ui/styles"
	"github.com/jeranaias/pdfchat-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// StatusBar is the bottom line: key state, document, chat status, models
// and shortcuts.
type StatusBar struct {
	KeyStatus   string
	KeyAccepted bool
	Document    string
	ChatStatus  string
	Status      styles.Status
	Models      []string
	Width       int

	ShowShortcuts bool

	// Flash replaces the right-hand segments with a transient message.
	Flash string

	theme *styles.Theme
}

// Shortcut is a key hint shown in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// DefaultShortcuts are the hints shown on wide terminals.
var DefaultShortcuts = []Shortcut{
	{"tab", "focus"},
	{"ctrl+y", "copy"},
	{"ctrl+e", "export"},
	{"ctrl+c", "quit"},
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth sets the available width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// Icon returns the shape shown next to the chat status.
func (s *StatusBar) Icon() string {
	switch s.Status {
	case styles.StatusReady:
		return styles.StatusIndicators.Success
	case styles.StatusBusy:
		return styles.StatusIndicators.Active
	case styles.StatusError:
		return styles.StatusIndicators.Error
	default:
		return styles.StatusIndicators.Pending
	}
}

// View renders the bar, dropping segments that do not fit.
func (s *StatusBar) View() string {
	sep := s.theme.ShortcutDesc.Render(" | ")

	keyStyle := s.theme.StatusIdle
	if s.KeyAccepted {
		keyStyle = s.theme.StatusReady
	}

	left := []string{
		s.theme.StatusStyle(s.Status).Render(s.Icon() + " " + s.ChatStatus),
		"key: " + keyStyle.Render(s.KeyStatus),
	}
	if s.Document != "" {
		left = append(left, "doc: "+s.theme.FieldValue.Render(util.TruncateWidth(s.Document, 32)))
	}

	leftView := strings.Join(left, sep)

	var right []string
	if s.Flash != "" {
		right = append(right, s.theme.ShortcutKey.Render(s.Flash))
	}
	if s.Flash == "" && len(s.Models) > 0 && s.Width >= 60 {
		right = append(right, s.renderModels())
	}
	if s.Flash == "" && s.ShowShortcuts && s.Width >= 100 {
		right = append(right, s.renderShortcuts())
	}

	inner := s.Width - 2
	for len(right) > 0 {
		rightView := strings.Join(right, sep)
		gap := inner - lipgloss.Width(leftView) - lipgloss.Width(rightView)
		if gap >= 1 {
			return s.theme.StatusBar.Width(s.Width).Render(leftView + strings.Repeat(" ", gap) + rightView)
		}
		right = right[:len(right)-1]
	}
	return s.theme.StatusBar.Width(s.Width).Render(leftView)
}

func (s *StatusBar) renderModels() string {
	label := s.Models[0]
	if len(s.Models) > 1 {
		label += " +" + strconv.Itoa(len(s.Models)-1)
	}
	return s.theme.ShortcutDesc.Render("models: ") + s.theme.FieldValue.Render(util.TruncateWidth(label, 28))
}

func (s *StatusBar) renderShortcuts() string {
	parts := make([]string, 0, len(DefaultShortcuts))
	for _, sc := range DefaultShortcuts {
		parts = append(parts, s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.ShortcutDesc.Render(sc.Desc))
	}
	return strings.Join(parts, "  ")
}
