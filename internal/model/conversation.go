// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the document conversation.
package model

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript is the append-only, ordered log of conversation entries.
// Insertion order is display order. The only entry that can ever be removed
// is the pending placeholder, and only by its ID.
//
// Transcript is not safe for concurrent use; it belongs to the UI goroutine.
type Transcript struct {
	entries   []*Entry
	pendingID string
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{entries: make([]*Entry, 0)}
}

// Append adds a permanent entry and returns it.
func (t *Transcript) Append(role Role, text string) *Entry {
	e := NewEntry(role, text)
	t.entries = append(t.entries, e)
	return e
}

// AppendPending adds the pending placeholder at the tail and returns its ID.
// If a placeholder already exists its ID is returned and nothing is added.
func (t *Transcript) AppendPending() string {
	if t.pendingID != "" {
		return t.pendingID
	}
	e := newPendingEntry()
	t.entries = append(t.entries, e)
	t.pendingID = e.ID
	return e.ID
}

// RemovePending removes the placeholder identified by id.
// Returns false when id does not name the current placeholder.
func (t *Transcript) RemovePending(id string) bool {
	if id == "" || id != t.pendingID {
		return false
	}
	for i, e := range t.entries {
		if e.ID == id && e.Pending {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			t.pendingID = ""
			return true
		}
	}
	t.pendingID = ""
	return false
}

// PendingID returns the ID of the current placeholder, or "" if none.
func (t *Transcript) PendingID() string {
	return t.pendingID
}

// HasPending reports whether a placeholder is present.
func (t *Transcript) HasPending() bool {
	return t.pendingID != ""
}

// Entries returns a copy of the entry slice in display order.
func (t *Transcript) Entries() []*Entry {
	out := make([]*Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Committed returns the entries excluding the pending placeholder.
func (t *Transcript) Committed() []*Entry {
	out := make([]*Entry, 0, len(t.entries))
	for _, e := range t.entries {
		if !e.Pending {
			out = append(out, e)
		}
	}
	return out
}

// Last returns the most recent entry, or nil if empty.
func (t *Transcript) Last() *Entry {
	if len(t.entries) == 0 {
		return nil
	}
	return t.entries[len(t.entries)-1]
}

// LastOf returns the most recent committed entry with the given role.
func (t *Transcript) LastOf(role Role) *Entry {
	for i := len(t.entries) - 1; i >= 0; i-- {
		if e := t.entries[i]; e.Role == role && !e.Pending {
			return e
		}
	}
	return nil
}

// Len returns the number of entries, including a pending placeholder.
func (t *Transcript) Len() int {
	return len(t.entries)
}

// IsEmpty returns true if nothing has ever been appended.
func (t *Transcript) IsEmpty() bool {
	return len(t.entries) == 0
}
