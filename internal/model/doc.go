// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the document conversation.
//
// This package defines the pure state of the client with no rendering or
// network concerns, so it can be constructed and tested in isolation.
//
// # Key Types
//
//   - Entry: Single transcript turn with role, text and a stable ID
//   - Transcript: Append-only ordered log of entries with one pending slot
//   - Readiness: Conjunction of the credential and document preconditions
//   - Role: Entry role enumeration (user, assistant)
//
// # Usage
//
// Record a question and its pending answer:
//
//	t := model.NewTranscript()
//	t.Append(model.RoleUser, "What is X?")
//	id := t.AppendPending()
//	// ... request resolves ...
//	t.RemovePending(id)
//	t.Append(model.RoleAssistant, answer)
//
// Gate the conversation input:
//
//	var r model.Readiness
//	r.MarkCredentialAccepted()
//	r.MarkDocumentIngested()
//	r.IsReady() // true
package model
