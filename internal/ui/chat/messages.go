// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/pdfchat-tui/internal/backend"
	"github.com/jeranaias/pdfchat-tui/internal/document"
	"github.com/jeranaias/pdfchat-tui/internal/dropzone"
)

// =============================================================================
// FLOW RESULTS
// =============================================================================

// credentialResultMsg carries the response of POST /set_api_key.
type credentialResultMsg struct {
	resp *backend.SetKeyResponse
	err  error
}

// inspectResultMsg carries a document picked by path, paste or drop.
type inspectResultMsg struct {
	path string
	doc  *document.Document
	err  error
}

// uploadResultMsg carries the response of POST /upload.
type uploadResultMsg struct {
	doc  *document.Document
	resp *backend.UploadResponse
	err  error
}

// askResultMsg carries the response of POST /ask.
type askResultMsg struct {
	resp *backend.AskResponse
	err  error
}

// labelResetMsg restores the save control label after a successful save.
type labelResetMsg struct{}

// =============================================================================
// DROP ZONE
// =============================================================================

// DropEventMsg forwards a drop zone event to the model.
type DropEventMsg struct {
	Event dropzone.Event
}

// dropClosedMsg reports that the watcher's channel closed.
type dropClosedMsg struct{}

// =============================================================================
// CLIPBOARD / EXPORT
// =============================================================================

type copyResultMsg struct {
	chars int
	err   error
}

type exportResultMsg struct {
	path string
	err  error
}

// flashClearMsg clears a transient status message if it is still current.
type flashClearMsg struct {
	seq int
}
