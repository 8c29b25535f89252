// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the styled building blocks of the pdfchat TUI.

Each component is a plain struct with setters and a View method; the chat
model owns them and feeds them session state on every render.

# Display Components

Header (header.go) - Title line with the server address.
StatusBar (statusbar.go) - Key status, document, chat status and models.
DropZone (dropzone.go) - Document picker box with hover feedback.
MessageList (message.go) - Transcript bubbles with inline emphasis.
Welcome (welcome.go) - Placeholder shown before the first transcript entry.

# Feedback

Spinner (spinner.go) - ASCII spinner used by the pending placeholder.
NoticeModal (notice.go) - Blocking notice acknowledged with Enter or Esc.
*/
package components
