// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

// Endpoint paths.
const (
	PathSetAPIKey = "/set_api_key"
	PathUpload    = "/upload"
	PathAsk       = "/ask"
)

// UploadField is the multipart field carrying the document.
const UploadField = "file"

// SetKeyRequest is the body of POST /set_api_key.
type SetKeyRequest struct {
	APIKey string `json:"api_key"`
}

// SetKeyResponse is the success body of POST /set_api_key.
type SetKeyResponse struct {
	Message string   `json:"message,omitempty"`
	Models  []string `json:"models,omitempty"`

	// Warning is set when the server accepted the key but could not list
	// models. The service reports this in an "error" field on a 200.
	Warning string `json:"error,omitempty"`
}

// UploadResponse is the success body of POST /upload.
type UploadResponse struct {
	Message string `json:"message,omitempty"`
}

// AskRequest is the body of POST /ask.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse is the success body of POST /ask.
type AskResponse struct {
	Answer string `json:"answer"`
}

// errorResponse is the failure body shared by all endpoints.
type errorResponse struct {
	Error string `json:"error"`
}
