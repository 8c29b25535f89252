// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme names accepted by ThemeFor.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
	ThemeAuto  = "auto"
)

// Status selects the style of a status label.
type Status int

const (
	StatusIdle Status = iota
	StatusBusy
	StatusReady
	StatusError
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// HEADER
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// TRANSCRIPT
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	PendingBubble   lipgloss.Style
	UserBadge       lipgloss.Style
	AssistantBadge  lipgloss.Style
	Emphasis        lipgloss.Style
	Timestamp       lipgloss.Style

	// ==========================================================================
	// CONTROLS
	// ==========================================================================

	FieldLabel     lipgloss.Style
	FieldValue     lipgloss.Style
	Button         lipgloss.Style
	ButtonActive   lipgloss.Style
	InputContainer lipgloss.Style
	InputFocused   lipgloss.Style
	InputDisabled  lipgloss.Style

	// ==========================================================================
	// STATUS BAR
	// ==========================================================================

	StatusBar    lipgloss.Style
	StatusIdle   lipgloss.Style
	StatusBusy   lipgloss.Style
	StatusReady  lipgloss.Style
	StatusError  lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// DROP ZONE
	// ==========================================================================

	DropZone      lipgloss.Style
	DropZoneHover lipgloss.Style

	// ==========================================================================
	// NOTICES
	// ==========================================================================

	NoticeBox      lipgloss.Style
	NoticeErrorBox lipgloss.Style
	NoticeTitle    lipgloss.Style
	NoticeHint     lipgloss.Style

	// ==========================================================================
	// WELCOME / LOADING
	// ==========================================================================

	Spinner      lipgloss.Style
	ThinkingText lipgloss.Style
	WelcomeBox   lipgloss.Style
	WelcomeLogo  lipgloss.Style
	WelcomeInfo  lipgloss.Style
	WelcomeKey   lipgloss.Style
}

// NewTheme creates a theme for the terminal's detected background.
func NewTheme() *Theme {
	return newTheme(termenv.HasDarkBackground())
}

// ThemeFor creates a theme for a configured theme name. Unknown names and
// "auto" fall back to terminal detection.
func ThemeFor(name string) *Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ThemeDark:
		lipgloss.SetHasDarkBackground(true)
		return newTheme(true)
	case ThemeLight:
		lipgloss.SetHasDarkBackground(false)
		return newTheme(false)
	default:
		return NewTheme()
	}
}

func newTheme(isDark bool) *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Transcript
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 2).
		MarginLeft(4)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(AssistantBubbleFg).
		Background(AssistantBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(AssistantBubbleBorder).
		Padding(0, 2).
		MarginRight(4)

	t.PendingBubble = lipgloss.NewStyle().
		Foreground(TextSecondary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 2).
		MarginRight(4)

	t.UserBadge = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.AssistantBadge = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.Emphasis = lipgloss.NewStyle().
		Bold(true)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Controls
	t.FieldLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Width(10)

	t.FieldValue = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.Button = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Overlay).
		Padding(0, 1)

	t.ButtonActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Bold(true).
		Padding(0, 1)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputFocused = t.InputContainer.
		BorderForeground(Purple)

	t.InputDisabled = t.InputContainer.
		Foreground(TextMuted)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusIdle = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.StatusBusy = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.StatusReady = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.StatusError = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Drop zone
	t.DropZone = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Overlay).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.DropZoneHover = t.DropZone.
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(Cyan).
		Foreground(Cyan)

	// Notices
	t.NoticeBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Cyan).
		Background(Surface).
		Padding(1, 2)

	t.NoticeErrorBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Rose).
		Background(RoseDeep).
		Padding(1, 2)

	t.NoticeTitle = lipgloss.NewStyle().
		Bold(true)

	t.NoticeHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Welcome and loading
	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.WelcomeBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 3).
		Align(lipgloss.Center)

	t.WelcomeLogo = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.WelcomeInfo = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.WelcomeKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
}

// StatusStyle returns the style for a status label.
func (t *Theme) StatusStyle(s Status) lipgloss.Style {
	switch s {
	case StatusBusy:
		return t.StatusBusy
	case StatusReady:
		return t.StatusReady
	case StatusError:
		return t.StatusError
	default:
		return t.StatusIdle
	}
}
