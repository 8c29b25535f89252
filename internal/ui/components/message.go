// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/pdfchat-tui/internal/markup"
	"github.com/jeranaias/pdfchat-tui/internal/model"
	"github.com/jeranaias/pdfchat-tui/internal/ui/styles"
	"github.com/jeranaias/pdfchat-tui/internal/util"
)

// Role badges.
const (
	UserBadge      = "[you]"
	AssistantBadge = "[bot]"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one transcript entry.
type MessageBubble struct {
	Entry         *model.Entry
	Width         int
	ShowTimestamp bool

	// SpinnerFrame is drawn in front of the pending placeholder text.
	SpinnerFrame string

	theme *styles.Theme
}

// NewMessageBubble creates a bubble for e.
func NewMessageBubble(e *model.Entry, theme *styles.Theme) *MessageBubble {
	return &MessageBubble{
		Entry:         e,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
	}
}

// View renders the bubble.
func (b *MessageBubble) View() string {
	if b.Entry == nil {
		return ""
	}
	switch {
	case b.Entry.Pending:
		return b.renderPending()
	case b.Entry.Role == model.RoleUser:
		return b.renderUser()
	default:
		return b.renderAssistant()
	}
}

func (b *MessageBubble) contentWidth() int {
	w := b.Width - 12
	if w < 20 {
		w = 20
	}
	return w
}

// ==========================================================================
// USER BUBBLE - right-aligned
// ==========================================================================

func (b *MessageBubble) renderUser() string {
	lines, textWidth := wrapMarkup(b.Entry.Text, b.contentWidth(), b.theme.Emphasis)
	bubbleWidth := minInt(textWidth+4, b.Width-8)

	bubble := b.theme.UserBubble.
		UnsetMarginLeft().
		Width(bubbleWidth).
		Render(strings.Join(lines, "\n"))

	header := b.theme.UserBadge.Render(UserBadge)
	if ts := b.renderTimestamp(); ts != "" {
		header = ts + " " + header
	}

	leftMargin := b.Width - lipgloss.Width(bubble)
	if leftMargin < 0 {
		leftMargin = 0
	}
	block := lipgloss.JoinVertical(lipgloss.Right, header, bubble)
	return lipgloss.NewStyle().MarginLeft(leftMargin).Render(block)
}

// ==========================================================================
// ASSISTANT BUBBLE - left-aligned
// ==========================================================================

func (b *MessageBubble) renderAssistant() string {
	lines, textWidth := wrapMarkup(b.Entry.Text, b.contentWidth(), b.theme.Emphasis)
	bubbleWidth := minInt(textWidth+4, b.Width-8)

	bubble := b.theme.AssistantBubble.
		Width(bubbleWidth).
		Render(strings.Join(lines, "\n"))

	header := b.theme.AssistantBadge.Render(AssistantBadge)
	if ts := b.renderTimestamp(); ts != "" {
		header += " " + ts
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, bubble)
}

func (b *MessageBubble) renderPending() string {
	text := model.PendingText
	if b.SpinnerFrame != "" {
		text = b.SpinnerFrame + " " + text
	}
	header := b.theme.AssistantBadge.Render(AssistantBadge)
	return lipgloss.JoinVertical(lipgloss.Left, header, b.theme.PendingBubble.Render(text))
}

// renderTimestamp renders "15:04", or "Jan 2, 15:04" for older entries.
func (b *MessageBubble) renderTimestamp() string {
	if !b.ShowTimestamp || b.Entry.CreatedAt.IsZero() {
		return ""
	}
	ts := b.Entry.CreatedAt
	now := time.Now()
	layout := "15:04"
	if ts.Year() != now.Year() || ts.YearDay() != now.YearDay() {
		layout = "Jan 2, 15:04"
	}
	return b.theme.Timestamp.Render(ts.Format(layout))
}

// =============================================================================
// MESSAGE LIST COMPONENT
// =============================================================================

// MessageList renders the transcript, or the welcome placeholder while it is
// empty.
type MessageList struct {
	Entries        []*model.Entry
	Width          int
	ShowTimestamps bool
	SpinnerFrame   string

	welcome Welcome
	theme   *styles.Theme
}

// NewMessageList creates an empty list.
func NewMessageList(theme *styles.Theme) *MessageList {
	return &MessageList{
		Width:          80,
		ShowTimestamps: true,
		welcome:        NewWelcome(theme),
		theme:          theme,
	}
}

// SetEntries sets the entries to display.
func (ml *MessageList) SetEntries(entries []*model.Entry) {
	ml.Entries = entries
}

// SetWidth sets the list width.
func (ml *MessageList) SetWidth(width int) {
	ml.Width = width
	ml.welcome.SetSize(width, 0)
}

// SetDropDir tells the welcome placeholder where documents can be dropped.
func (ml *MessageList) SetDropDir(dir string) {
	ml.welcome.SetDropDir(dir)
}

// View renders all entries in order.
func (ml *MessageList) View() string {
	if len(ml.Entries) == 0 {
		return ml.welcome.View()
	}

	bubbles := make([]string, 0, len(ml.Entries))
	for _, e := range ml.Entries {
		bubble := NewMessageBubble(e, ml.theme)
		bubble.Width = ml.Width
		bubble.ShowTimestamp = ml.ShowTimestamps
		bubble.SpinnerFrame = ml.SpinnerFrame
		bubbles = append(bubbles, bubble.View())
	}
	return strings.Join(bubbles, "\n")
}

// ==========================================================================
// UTILITY FUNCTIONS
// ==========================================================================

// fragment is part of a word with a single presentation.
type fragment struct {
	text     string
	emphasis bool
}

type word []fragment

func (w word) width() int {
	n := 0
	for _, f := range w {
		n += util.StringWidth(f.text)
	}
	return n
}

func (w word) render(emphasis lipgloss.Style) string {
	var sb strings.Builder
	for _, f := range w {
		if f.emphasis {
			sb.WriteString(emphasis.Render(f.text))
		} else {
			sb.WriteString(f.text)
		}
	}
	return sb.String()
}

// splitWords breaks a markup line on whitespace. A word may mix emphasized
// and plain fragments, as in "**bold**ly".
func splitWords(line markup.Line) []word {
	var (
		words []word
		cur   word
		buf   strings.Builder
		emph  bool
	)
	flushFragment := func() {
		if buf.Len() > 0 {
			cur = append(cur, fragment{text: buf.String(), emphasis: emph})
			buf.Reset()
		}
	}
	flushWord := func() {
		flushFragment()
		if len(cur) > 0 {
			words = append(words, cur)
			cur = nil
		}
	}

	for _, span := range line {
		if span.Emphasis != emph {
			flushFragment()
			emph = span.Emphasis
		}
		for _, r := range span.Text {
			if unicode.IsSpace(r) {
				flushWord()
				continue
			}
			buf.WriteRune(r)
		}
	}
	flushWord()
	return words
}

// wrapMarkup parses text, wraps it to width columns and styles emphasized
// fragments. It returns the rendered lines and the widest line's width.
func wrapMarkup(text string, width int, emphasis lipgloss.Style) ([]string, int) {
	var (
		out      []string
		maxWidth int
	)
	emit := func(s string, w int) {
		out = append(out, s)
		if w > maxWidth {
			maxWidth = w
		}
	}

	for _, line := range markup.Parse(text) {
		words := splitWords(line)
		if len(words) == 0 {
			emit("", 0)
			continue
		}

		cur := words[0].render(emphasis)
		curWidth := words[0].width()
		for _, w := range words[1:] {
			ww := w.width()
			if curWidth+1+ww <= width {
				cur += " " + w.render(emphasis)
				curWidth += 1 + ww
				continue
			}
			emit(cur, curWidth)
			cur = w.render(emphasis)
			curWidth = ww
		}
		emit(cur, curWidth)
	}

	if maxWidth > width {
		maxWidth = width
	}
	return out, maxWidth
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
