// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes a conversation transcript to Markdown or JSON.
//
//	rec := export.FromTranscript(sess.Transcript(), "report.pdf", models)
//	path, err := export.Export(rec, "markdown", export.DefaultOptions())
//
// The pending placeholder is never exported.
package export
