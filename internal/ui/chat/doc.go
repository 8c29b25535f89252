// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea model of the pdfchat TUI.
//
// The model owns one session.Session and is the only code that touches it.
// Every network call runs in a tea.Cmd built from the session's Begin/Complete
// pairs:
//
//	key field   Enter   -> BeginCredential -> SetAPIKey -> credentialResultMsg
//	path field  Enter   -> document.Inspect -> BeginIngest -> Upload -> uploadResultMsg
//	question    Enter   -> BeginQuestion -> Ask -> askResultMsg
//
// Drop zone events arrive through a command that waits on the watcher's
// channel, and pasted file paths are routed to the ingestion flow.
package chat
