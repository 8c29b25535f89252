// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"
)

// JSONExporter exports records as indented JSON. Entry text is kept verbatim,
// emphasis delimiters included.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// Export converts a record to JSON.
func (e *JSONExporter) Export(rec *Record) ([]byte, error) {
	if rec == nil {
		return nil, fmt.Errorf("record is nil")
	}
	if len(rec.Entries) == 0 {
		return nil, ErrEmpty
	}
	return json.MarshalIndent(rec, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
