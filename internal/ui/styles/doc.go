// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the pdfchat TUI.

All colors use Lip Gloss AdaptiveColor so a single palette serves both light
and dark terminals.

# Color System (colors.go)

  - Purple - assistant bubbles, focus, emphasis
  - Cyan - brand color, user highlights, key hints
  - Emerald - ready / success states
  - Amber - busy states and warnings
  - Rose - errors

# Theme System (theme.go)

The Theme struct holds every lipgloss.Style the chat view renders with:

	theme := styles.ThemeFor(cfg.UI.Theme)
	header := theme.Header.Render("pdfchat")
	status := theme.StatusStyle(styles.StatusReady).Render("Ready to chat")

ThemeFor honors the "dark", "light" and "auto" settings; auto asks termenv
for the terminal background.

# Status Indicators

Every status carries an ASCII shape next to its color:

	StatusIndicators.Success   - [OK]
	StatusIndicators.Error     - [X]
	StatusIndicators.Warning   - [!]
	StatusIndicators.Info      - [i]
*/
package styles
