// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/pdfchat-tui/internal/ui/styles"
	"github.com/jeranaias/pdfchat-tui/internal/util"
)

// DropZone shows the current document and where new ones can be dropped.
// Hover switches to the highlighted border while a file is arriving.
type DropZone struct {
	Dir       string
	Label     string
	Detail    string
	Hover     bool
	Uploading bool
	Width     int

	theme *styles.Theme
}

// NewDropZone creates a drop zone box.
func NewDropZone(theme *styles.Theme) *DropZone {
	return &DropZone{Width: 80, theme: theme}
}

// Hint returns the instruction line for the current state.
func (d *DropZone) Hint() string {
	switch {
	case d.Hover:
		return "Release to upload"
	case d.Uploading:
		return "Uploading..."
	case d.Dir != "":
		return "Paste a path or drop a PDF into " + d.Dir
	default:
		return "Paste a path to a PDF"
	}
}

// View renders the box.
func (d *DropZone) View() string {
	style := d.theme.DropZone
	if d.Hover {
		style = d.theme.DropZoneHover
	}

	inner := d.Width - 4
	if inner < 20 {
		inner = 20
	}

	lines := []string{d.theme.FieldValue.Render(util.TruncateWidth(d.Label, inner))}
	if d.Detail != "" && d.Detail != d.Label {
		lines = append(lines, d.theme.Timestamp.Render(util.TruncateWidth(d.Detail, inner)))
	}
	lines = append(lines, d.theme.NoticeHint.Render(util.TruncateWidth(d.Hint(), inner)))

	return style.Width(d.Width - 2).Render(strings.Join(lines, "\n"))
}
