// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dropzone

import (
	"os"
	"path/filepath"

	"github.com/jeranaias/pdfchat-tui/internal/document"
)

// PathFromPaste returns the file path contained in pasted text, if the text
// names exactly one existing regular file by absolute (or ~) path.
// Relative names never match.
func PathFromPaste(text string) (string, bool) {
	p := document.CleanPath(text)
	if p == "" || !filepath.IsAbs(p) {
		return "", false
	}
	info, err := os.Stat(p)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return p, true
}
