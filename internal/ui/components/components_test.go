// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/pdfchat-tui/internal/model"
	"github.com/jeranaias/pdfchat-tui/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.ThemeFor("dark")
}

// =============================================================================
// MESSAGE LIST TESTS
// =============================================================================

func TestMessageList_EmptyShowsWelcome(t *testing.T) {
	ml := NewMessageList(testTheme())
	ml.SetWidth(80)
	ml.SetDropDir("/tmp/drop")

	view := ml.View()
	assert.Contains(t, view, WelcomeTitle)
	assert.Contains(t, view, "/tmp/drop")
}

func TestMessageList_WelcomeGoneAfterFirstEntry(t *testing.T) {
	tr := model.NewTranscript()
	tr.Append(model.RoleAssistant, "Document 'a.pdf' uploaded.")

	ml := NewMessageList(testTheme())
	ml.SetEntries(tr.Entries())

	view := ml.View()
	assert.NotContains(t, view, WelcomeTitle)
	assert.Contains(t, view, "a.pdf")
}

func TestMessageList_OrderAndBadges(t *testing.T) {
	tr := model.NewTranscript()
	tr.Append(model.RoleUser, "first question")
	tr.Append(model.RoleAssistant, "first answer")

	ml := NewMessageList(testTheme())
	ml.SetWidth(100)
	ml.SetEntries(tr.Entries())
	view := ml.View()

	you := strings.Index(view, UserBadge)
	bot := strings.Index(view, AssistantBadge)
	require.NotEqual(t, -1, you)
	require.NotEqual(t, -1, bot)
	assert.Less(t, you, bot)
	assert.Less(t, strings.Index(view, "first question"), strings.Index(view, "first answer"))
}

func TestMessageList_EmphasisDelimitersHidden(t *testing.T) {
	tr := model.NewTranscript()
	tr.Append(model.RoleAssistant, "The **answer** is here.\nSecond line.")

	ml := NewMessageList(testTheme())
	ml.SetEntries(tr.Entries())
	view := ml.View()

	assert.NotContains(t, view, "**")
	assert.Contains(t, view, "answer")
	assert.Contains(t, view, "Second line.")
}

func TestMessageBubble_Pending(t *testing.T) {
	tr := model.NewTranscript()
	tr.AppendPending()

	b := NewMessageBubble(tr.Last(), testTheme())
	b.SpinnerFrame = "|"
	view := b.View()

	assert.Contains(t, view, "| "+model.PendingText)
	assert.Contains(t, view, AssistantBadge)
}

func TestMessageBubble_NilEntry(t *testing.T) {
	assert.Empty(t, NewMessageBubble(nil, testTheme()).View())
}

func TestMessageBubble_Timestamp(t *testing.T) {
	e := model.NewEntry(model.RoleAssistant, "hi")
	e.CreatedAt = time.Date(2020, 3, 4, 9, 5, 0, 0, time.Local)

	b := NewMessageBubble(e, testTheme())
	assert.Contains(t, b.View(), "Mar 4, 09:05")

	b.ShowTimestamp = false
	assert.NotContains(t, b.View(), "09:05")
}

// =============================================================================
// WRAPPING TESTS
// =============================================================================

func TestWrapMarkup(t *testing.T) {
	plain := lipgloss.NewStyle()

	tests := []struct {
		name      string
		text      string
		width     int
		wantLines []string
		wantWidth int
	}{
		{"emphasis", "a **b** c", 80, []string{"a b c"}, 5},
		{"newline", "one\ntwo", 80, []string{"one", "two"}, 3},
		{"blank line kept", "a\n\nb", 80, []string{"a", "", "b"}, 1},
		{"joined fragments", "**bold**ly done", 80, []string{"boldly done"}, 11},
		{"wraps", "aaa bbb ccc", 5, []string{"aaa", "bbb", "ccc"}, 3},
		{"emphasis across wrap", "**aaa bbb**", 3, []string{"aaa", "bbb"}, 3},
		{"unmatched kept", "2 ** 3", 80, []string{"2 ** 3"}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, width := wrapMarkup(tt.text, tt.width, plain)
			assert.Equal(t, tt.wantLines, lines)
			assert.Equal(t, tt.wantWidth, width)
		})
	}
}

// =============================================================================
// SPINNER TESTS
// =============================================================================

func TestSpinnerLifecycle(t *testing.T) {
	s := NewThinkingSpinner(testTheme())
	assert.False(t, s.IsActive())
	assert.Empty(t, s.View())

	require.NotNil(t, s.Start())
	assert.True(t, s.IsActive())
	assert.Nil(t, s.Start(), "starting twice must not spawn a second tick loop")
	assert.Contains(t, s.View(), "Thinking...")

	s.Stop()
	_, cmd := s.Update(nil)
	assert.Nil(t, cmd)
	assert.Empty(t, s.View())
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "0s", formatElapsed(0))
	assert.Equal(t, "59s", formatElapsed(59*time.Second))
	assert.Equal(t, "2m 3s", formatElapsed(123*time.Second))
}

// =============================================================================
// NOTICE TESTS
// =============================================================================

func TestNoticeModal(t *testing.T) {
	n := NewNoticeModal(testTheme())
	assert.False(t, n.IsVisible())
	assert.Empty(t, n.View())

	n.SetSize(80, 24)
	n.Show("Please upload a PDF file.", true)
	assert.True(t, n.IsVisible())
	assert.Equal(t, "Please upload a PDF file.", n.Text())

	view := n.View()
	assert.Contains(t, view, "Please upload a PDF file.")
	assert.Contains(t, view, NoticeHint)
	assert.Contains(t, view, styles.StatusIndicators.Error)

	n.Hide()
	assert.False(t, n.IsVisible())
	assert.Empty(t, n.View())
}

// =============================================================================
// STATUS BAR / HEADER / DROP ZONE TESTS
// =============================================================================

func TestStatusBar(t *testing.T) {
	sb := NewStatusBar(testTheme())
	sb.SetWidth(140)
	sb.ChatStatus = "Ready to chat"
	sb.Status = styles.StatusReady
	sb.KeyStatus = "✓ Saved"
	sb.KeyAccepted = true
	sb.Document = "report.pdf"
	sb.Models = []string{"gemini-pro", "gemini-flash"}

	view := sb.View()
	assert.Contains(t, view, styles.StatusIndicators.Success+" Ready to chat")
	assert.Contains(t, view, "report.pdf")
	assert.Contains(t, view, "gemini-pro +1")
	assert.Contains(t, view, "ctrl+y")

	sb.SetWidth(90)
	medium := sb.View()
	assert.Contains(t, medium, "gemini-pro +1")
	assert.NotContains(t, medium, "ctrl+y")

	sb.Flash = "Copied answer"
	flashed := sb.View()
	assert.Contains(t, flashed, "Copied answer")
	assert.NotContains(t, flashed, "gemini-pro")
	sb.Flash = ""

	sb.SetWidth(50)
	narrow := sb.View()
	assert.NotContains(t, narrow, "gemini-pro")
	assert.NotContains(t, narrow, "ctrl+y")
}

func TestStatusBarIcon(t *testing.T) {
	sb := NewStatusBar(testTheme())
	for status, icon := range map[styles.Status]string{
		styles.StatusIdle:  styles.StatusIndicators.Pending,
		styles.StatusBusy:  styles.StatusIndicators.Active,
		styles.StatusReady: styles.StatusIndicators.Success,
		styles.StatusError: styles.StatusIndicators.Error,
	} {
		sb.Status = status
		assert.Equal(t, icon, sb.Icon())
	}
}

func TestHeader(t *testing.T) {
	h := NewHeader(testTheme())
	h.SetWidth(80)
	assert.Contains(t, h.View(), "pdfchat")

	h.SetServer("http://127.0.0.1:5000")
	assert.Contains(t, h.View(), "http://127.0.0.1:5000")
}

func TestDropZoneHint(t *testing.T) {
	d := NewDropZone(testTheme())
	d.Label = "No document"
	assert.Equal(t, "Paste a path to a PDF", d.Hint())

	d.Dir = "/tmp/drop"
	assert.Contains(t, d.Hint(), "/tmp/drop")

	d.Uploading = true
	assert.Equal(t, "Uploading...", d.Hint())

	d.Hover = true
	assert.Equal(t, "Release to upload", d.Hint())
	assert.Contains(t, d.View(), "No document")
}
