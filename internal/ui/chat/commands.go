// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/pdfchat-tui/internal/document"
	"github.com/jeranaias/pdfchat-tui/internal/dropzone"
	"github.com/jeranaias/pdfchat-tui/internal/export"
	"github.com/jeranaias/pdfchat-tui/internal/session"
)

// flashDuration is how long a transient status message stays up.
const flashDuration = 3 * time.Second

// =============================================================================
// FLOW COMMANDS
// =============================================================================

func registerKeyCmd(ctx context.Context, b session.Backend, key string) tea.Cmd {
	return func() tea.Msg {
		resp, err := b.SetAPIKey(ctx, key)
		return credentialResultMsg{resp: resp, err: err}
	}
}

func inspectCmd(path string) tea.Cmd {
	return func() tea.Msg {
		doc, err := document.Inspect(path)
		return inspectResultMsg{path: path, doc: doc, err: err}
	}
}

func uploadCmd(ctx context.Context, b session.Backend, doc *document.Document) tea.Cmd {
	return func() tea.Msg {
		resp, err := session.Upload(ctx, b, doc)
		return uploadResultMsg{doc: doc, resp: resp, err: err}
	}
}

func askCmd(ctx context.Context, b session.Backend, question string) tea.Cmd {
	return func() tea.Msg {
		resp, err := b.Ask(ctx, question)
		return askResultMsg{resp: resp, err: err}
	}
}

func labelResetCmd(delay time.Duration) tea.Cmd {
	if delay <= 0 {
		return func() tea.Msg { return labelResetMsg{} }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return labelResetMsg{}
	})
}

// =============================================================================
// DROP ZONE
// =============================================================================

// waitForDrop blocks until the next drop zone event. The model re-issues it
// after every event.
func waitForDrop(events <-chan dropzone.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return dropClosedMsg{}
		}
		return DropEventMsg{Event: ev}
	}
}

// =============================================================================
// CLIPBOARD / EXPORT
// =============================================================================

// copyToClipboard copies the given text to the system clipboard.
var copyToClipboard = clipboard.WriteAll

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		err := copyToClipboard(text)
		return copyResultMsg{chars: len([]rune(text)), err: err}
	}
}

func exportCmd(rec *export.Record, format string, opts *export.Options) tea.Cmd {
	return func() tea.Msg {
		path, err := export.Export(rec, format, opts)
		return exportResultMsg{path: path, err: err}
	}
}

func flashClearCmd(seq int) tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashClearMsg{seq: seq}
	})
}
