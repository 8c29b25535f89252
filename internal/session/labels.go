// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "errors"

// Credential control labels.
const (
	LabelSetKey  = "Set Key"
	LabelSaving  = "Saving..."
	LabelUpdated = "Updated"
	KeySaved     = "✓ Saved"
	KeyNotSet    = "Not set"
)

// Document and chat status labels.
const (
	DocumentNone      = "No document"
	UploadingPrefix   = "Uploading: "
	DocumentFailed    = "Upload failed"
	StatusWaiting     = "Waiting for document"
	StatusProcessing  = "Processing PDF..."
	StatusReady       = "Ready to chat"
	StatusError       = "Error"
	announceDocFormat = "I've analyzed **%s**. You can now ask questions about it!"
)

// Notice and transcript texts.
const (
	ModelsNoticePrefix   = "Key Accepted! Available Models: "
	NoticeKeyFailed      = "Failed to save key"
	NoticeKeyConnect     = "Error connecting to server"
	NoticeNotPDF         = "Please upload a PDF file."
	NoticeKeyRequired    = "Please set your API Key first."
	NoticeUploadFailed   = "Upload failed"
	NoticeUploadConnect  = "Error uploading file"
	NoticeUploadInFlight = "An upload is already in progress."
	ErrorPrefix          = "**Error:** "
	AskUnreachable       = ErrorPrefix + "Could not reach server."
)

// Validation errors. None of them reach the network.
var (
	// ErrNotPDF rejects a document whose declared type is not PDF.
	ErrNotPDF = errors.New("document is not a PDF")

	// ErrCredentialRequired rejects an upload before a key is accepted.
	ErrCredentialRequired = errors.New("credential not accepted yet")

	// ErrUploadInProgress rejects a second upload while one is running.
	ErrUploadInProgress = errors.New("upload already in progress")
)
