// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the client state of one document conversation and
// the three flows that change it.
//
// # Key Types
//
//   - Session: readiness gate, transcript, control labels and notice queue
//   - Backend: the service calls the flows depend on
//   - Controls: the label and enablement state a view renders
//   - Notice: a blocking message the user must acknowledge
//
// # Flows
//
// Each flow has a Begin step that validates input and applies the optimistic
// view changes, a network call, and a Complete step that applies the result:
//
//	key, ok := s.BeginCredential(raw)
//	resp, err := client.SetAPIKey(ctx, key)
//	s.CompleteCredential(resp, err)
//
// The TUI runs the network call in a tea.Cmd and calls Complete from Update.
// Line mode and tests use the synchronous wrappers RegisterCredential,
// IngestDocument and SubmitQuestion.
//
// # Concurrency
//
// A Session is not safe for concurrent use. All methods must be called from
// one goroutine; only the network calls may run elsewhere.
package session
