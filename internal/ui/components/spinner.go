// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/pdfchat-tui/internal/ui/styles"
)

// =============================================================================
// SPINNER MODEL
// =============================================================================

// asciiLine is the default frame set; it renders on any terminal.
var asciiLine = spinner.Spinner{
	Frames: []string{"|", "/", "-", "\\"},
	FPS:    time.Second / 10,
}

// Spinner is a loading spinner with an optional message and elapsed timer.
type Spinner struct {
	spinner spinner.Model
	theme   *styles.Theme

	message   string
	startTime time.Time

	isActive  bool
	showTimer bool
}

// NewSpinner creates an inactive spinner.
func NewSpinner(theme *styles.Theme) Spinner {
	s := spinner.New()
	s.Spinner = asciiLine

	return Spinner{
		spinner: s,
		theme:   theme,
		message: "Loading",
	}
}

// NewThinkingSpinner creates the spinner shown in the pending placeholder.
func NewThinkingSpinner(theme *styles.Theme) Spinner {
	s := NewSpinner(theme)
	s.message = "Thinking"
	s.showTimer = true
	return s
}

// =============================================================================
// STATE MANAGEMENT
// =============================================================================

// Start activates the spinner and returns its first tick.
func (s *Spinner) Start() tea.Cmd {
	if s.isActive {
		return nil
	}
	s.isActive = true
	s.startTime = time.Now()
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *Spinner) Stop() {
	s.isActive = false
}

// IsActive returns whether the spinner is currently running.
func (s *Spinner) IsActive() bool {
	return s.isActive
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Update advances the animation. Ticks arriving after Stop are dropped so
// the tick loop ends.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.isActive {
		return s, nil
	}

	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// Frame returns the current animation frame, styled.
func (s Spinner) Frame() string {
	return s.theme.Spinner.Render(s.spinner.View())
}

// View renders the frame, message and timer.
func (s Spinner) View() string {
	if !s.isActive {
		return ""
	}

	result := s.Frame() + " " + s.theme.ThinkingText.Render(s.message+"...")

	if s.showTimer && !s.startTime.IsZero() {
		result += s.theme.Timestamp.Render(" (" + formatElapsed(time.Since(s.startTime)) + ")")
	}
	return result
}

// formatElapsed formats a duration as "5s" or "2m 3s".
func formatElapsed(d time.Duration) string {
	seconds := int(d.Seconds())
	if seconds < 60 {
		return strconv.Itoa(seconds) + "s"
	}
	return strconv.Itoa(seconds/60) + "m " + strconv.Itoa(seconds%60) + "s"
}
