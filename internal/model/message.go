// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the document conversation.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a transcript entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// ENTRY TYPE
// =============================================================================

// PendingText is the text carried by the pending placeholder.
const PendingText = "Thinking..."

// Entry represents a single turn in the transcript.
// Entries are immutable once appended.
type Entry struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`

	// Pending marks the transient placeholder shown while a question is
	// outstanding. It is never exported.
	Pending bool `json:"-"`
}

// NewEntry creates a new entry with a generated ID.
func NewEntry(role Role, text string) *Entry {
	return &Entry{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// newPendingEntry creates the assistant placeholder.
func newPendingEntry() *Entry {
	e := NewEntry(RoleAssistant, PendingText)
	e.Pending = true
	return e
}
