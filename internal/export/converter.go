// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"time"

	"github.com/jeranaias/pdfchat-tui/internal/model"
)

// Record is the exportable snapshot of a conversation.
type Record struct {
	Document   string         `json:"document,omitempty"`
	Models     []string       `json:"models,omitempty"`
	ExportedAt time.Time      `json:"exported_at"`
	Entries    []*model.Entry `json:"entries"`
}

// FromTranscript snapshots the committed entries of t.
func FromTranscript(t *model.Transcript, document string, models []string) *Record {
	rec := &Record{
		Document:   document,
		Models:     append([]string(nil), models...),
		ExportedAt: time.Now(),
	}
	if t != nil {
		rec.Entries = t.Committed()
	}
	return rec
}

// Created returns the time of the first entry, or ExportedAt.
func (r *Record) Created() time.Time {
	if len(r.Entries) > 0 && !r.Entries[0].CreatedAt.IsZero() {
		return r.Entries[0].CreatedAt
	}
	return r.ExportedAt
}
