// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// READINESS TESTS
// =============================================================================

func TestReadiness_AllOrders(t *testing.T) {
	type op int
	const (
		cred op = iota
		doc
	)

	tests := []struct {
		name string
		ops  []op
		want bool
	}{
		{"none", nil, false},
		{"credential only", []op{cred}, false},
		{"document only", []op{doc}, false},
		{"credential then document", []op{cred, doc}, true},
		{"document then credential", []op{doc, cred}, true},
		{"repeated credential", []op{cred, cred, cred}, false},
		{"repeated both", []op{doc, cred, doc, cred}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var r Readiness
			for _, o := range tc.ops {
				switch o {
				case cred:
					r.MarkCredentialAccepted()
				case doc:
					r.MarkDocumentIngested()
				}
			}
			assert.Equal(t, tc.want, r.IsReady())
		})
	}
}

func TestReadiness_FlagsAreIndependent(t *testing.T) {
	var r Readiness
	r.MarkDocumentIngested()
	assert.True(t, r.DocumentIngested())
	assert.False(t, r.CredentialAccepted())
}

func TestReadiness_CopiesReportFlags(t *testing.T) {
	var r Readiness
	r.MarkCredentialAccepted()
	r.MarkDocumentIngested()
	snapshot := func() Readiness { return r }

	assert.True(t, snapshot().CredentialAccepted())
	assert.True(t, snapshot().DocumentIngested())
	assert.True(t, snapshot().IsReady())
}

// =============================================================================
// TRANSCRIPT TESTS
// =============================================================================

func TestTranscript_AppendKeepsOrder(t *testing.T) {
	tr := NewTranscript()
	require.True(t, tr.IsEmpty())

	tr.Append(RoleUser, "one")
	tr.Append(RoleAssistant, "two")
	tr.Append(RoleUser, "three")

	entries := tr.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "one", entries[0].Text)
	assert.Equal(t, "two", entries[1].Text)
	assert.Equal(t, "three", entries[2].Text)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
}

func TestTranscript_PendingLifecycle(t *testing.T) {
	tr := NewTranscript()
	tr.Append(RoleUser, "What is X?")

	id := tr.AppendPending()
	require.NotEmpty(t, id)
	assert.True(t, tr.HasPending())
	assert.Equal(t, 2, tr.Len())
	assert.True(t, tr.Last().Pending)
	assert.Equal(t, PendingText, tr.Last().Text)

	// A second placeholder is never stacked.
	assert.Equal(t, id, tr.AppendPending())
	assert.Equal(t, 2, tr.Len())

	require.True(t, tr.RemovePending(id))
	assert.False(t, tr.HasPending())
	assert.Equal(t, 1, tr.Len())

	tr.Append(RoleAssistant, "X is Y.")
	assert.Equal(t, "X is Y.", tr.Last().Text)
}

func TestTranscript_RemovePendingTargetsOnlyPlaceholder(t *testing.T) {
	tr := NewTranscript()
	user := tr.Append(RoleUser, "q")
	id := tr.AppendPending()

	assert.False(t, tr.RemovePending(user.ID), "must not remove a committed entry")
	assert.False(t, tr.RemovePending(""))
	assert.False(t, tr.RemovePending("unknown"))
	assert.Equal(t, 2, tr.Len())

	assert.True(t, tr.RemovePending(id))
	assert.False(t, tr.RemovePending(id), "second removal is a no-op")
	assert.Equal(t, 1, tr.Len())
}

func TestTranscript_CommittedAndLastOf(t *testing.T) {
	tr := NewTranscript()
	tr.Append(RoleAssistant, "ready")
	tr.Append(RoleUser, "q")
	tr.AppendPending()

	committed := tr.Committed()
	require.Len(t, committed, 2)
	assert.Equal(t, "ready", tr.LastOf(RoleAssistant).Text)
	assert.Equal(t, "q", tr.LastOf(RoleUser).Text)
}

func TestRole_DisplayName(t *testing.T) {
	assert.Equal(t, "You", RoleUser.DisplayName())
	assert.Equal(t, "Assistant", RoleAssistant.DisplayName())
}
