// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/pdfchat-tui/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports records to Markdown. Entry text already uses
// Markdown emphasis, so it is written as-is with hard line breaks.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts a record to Markdown.
func (e *MarkdownExporter) Export(rec *Record) ([]byte, error) {
	if rec == nil {
		return nil, fmt.Errorf("record is nil")
	}
	if len(rec.Entries) == 0 {
		return nil, ErrEmpty
	}

	var sb strings.Builder

	// YAML frontmatter
	if e.options.IncludeMetadata {
		sb.WriteString("---\n")
		if rec.Document != "" {
			sb.WriteString(fmt.Sprintf("document: %s\n", escapeYAML(rec.Document)))
		}
		sb.WriteString(fmt.Sprintf("date: %s\n", rec.Created().Format(time.RFC3339)))
		sb.WriteString(fmt.Sprintf("entries: %d\n", len(rec.Entries)))
		sb.WriteString(fmt.Sprintf("exported: %s\n", rec.ExportedAt.Format(time.RFC3339)))
		sb.WriteString("generator: pdfchat\n")
		sb.WriteString("---\n\n")
	}

	title := "Conversation"
	if rec.Document != "" {
		title = escapeMarkdown(rec.Document)
	}
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))

	if e.options.IncludeMetadata {
		sb.WriteString("## Session Information\n\n")
		if rec.Document != "" {
			sb.WriteString(fmt.Sprintf("- **Document**: %s\n", escapeMarkdown(rec.Document)))
		}
		sb.WriteString(fmt.Sprintf("- **Started**: %s\n", formatTimestamp(rec.Created())))
		sb.WriteString(fmt.Sprintf("- **Entries**: %d\n", len(rec.Entries)))
		if len(rec.Models) > 0 {
			sb.WriteString(fmt.Sprintf("- **Models**: %s\n", strings.Join(rec.Models, ", ")))
		}
		sb.WriteString("\n---\n\n")
	}

	sb.WriteString("## Conversation\n\n")

	for i, entry := range rec.Entries {
		label := formatRoleLabel(entry.Role)
		if e.options.IncludeTimestamps && !entry.CreatedAt.IsZero() {
			sb.WriteString(fmt.Sprintf("### %s <sub>%s</sub>\n\n", label, formatShortTimestamp(entry.CreatedAt)))
		} else {
			sb.WriteString(fmt.Sprintf("### %s\n\n", label))
		}

		sb.WriteString(formatEntryText(entry.Text))
		sb.WriteString("\n\n")

		if i < len(rec.Entries)-1 {
			sb.WriteString("---\n\n")
		}
	}

	sb.WriteString("\n---\n\n")
	sb.WriteString(fmt.Sprintf("*Exported from pdfchat on %s*\n",
		rec.ExportedAt.Format("January 2, 2006 at 3:04 PM")))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

func formatRoleLabel(role model.Role) string {
	switch role {
	case model.RoleUser:
		return "[User]"
	case model.RoleAssistant:
		return "[Assistant]"
	case "":
		return "Unknown"
	default:
		return string(role)
	}
}

// formatEntryText turns single newlines into Markdown hard breaks.
func formatEntryText(text string) string {
	text = strings.TrimSpace(text)
	return strings.ReplaceAll(text, "\n", "  \n")
}

// escapeMarkdown escapes characters that would break formatting in headings.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return s
}

// escapeYAML quotes values containing YAML special characters.
func escapeYAML(s string) string {
	if strings.ContainsAny(s, ":#|>@`\"'[]{}!%&*\n\r\\") || strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		s = strings.ReplaceAll(s, "\\", "\\\\")
		s = strings.ReplaceAll(s, "\"", "\\\"")
		s = strings.ReplaceAll(s, "\n", "\\n")
		s = strings.ReplaceAll(s, "\r", "\\r")
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}
