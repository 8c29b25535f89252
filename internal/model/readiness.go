// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// Readiness tracks the two independent preconditions for conversation.
// Flags only ever move from false to true.
type Readiness struct {
	credentialAccepted bool
	documentIngested   bool
}

// MarkCredentialAccepted records that the backend accepted a credential.
func (r *Readiness) MarkCredentialAccepted() {
	r.credentialAccepted = true
}

// MarkDocumentIngested records that the backend ingested a document.
func (r *Readiness) MarkDocumentIngested() {
	r.documentIngested = true
}

// CredentialAccepted reports the credential flag.
func (r Readiness) CredentialAccepted() bool {
	return r.credentialAccepted
}

// DocumentIngested reports the document flag.
func (r Readiness) DocumentIngested() bool {
	return r.documentIngested
}

// IsReady returns true iff both preconditions hold.
func (r Readiness) IsReady() bool {
	return r.credentialAccepted && r.documentIngested
}
