// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dropzone turns file-manager drag and drop into events a terminal
// program can consume.
//
// Two sources are supported:
//
//   - A watched drop directory. A file appearing in it produces Hover while
//     it is still being written, then Drop once it has been quiet for the
//     debounce interval. A file that disappears before settling produces
//     Leave.
//   - Pasted text. Most terminals paste the file path when a file is dragged
//     onto the window; PathFromPaste recognizes that.
//
// The watcher runs its own goroutines and only publishes events on a
// channel. It never touches application state.
package dropzone
