// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the UI, export and config
// packages.
//
// # Key Functions
//
//   - AtomicWriteFile: crash-safe file writing with fsync and rename
//   - TruncateRunes: UTF-8 safe truncation with ellipsis
//   - TruncateWidth, StringWidth, PadRight: terminal column arithmetic
//
// # Usage
//
//	label := util.TruncateWidth(doc.Name, 24)
//	err := util.AtomicWriteFile(path, data, 0600)
package util
