// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend is the HTTP client for the document Q&A service.
//
// The service exposes three endpoints:
//
//	POST /set_api_key  {"api_key": "..."}         -> {"models": [...]}
//	POST /upload       multipart form, field file -> {"message": "..."}
//	POST /ask          {"question": "..."}        -> {"answer": "..."}
//
// Every call returns either a decoded response or one of two error types:
//
//   - *APIError when the server answered with a non-success status. Message
//     carries the server's "error" field, which may be empty.
//   - *TransportError when no usable response was obtained: dial failures,
//     cancelled contexts, or bodies that are not JSON.
//
// Requests are never retried and carry no client-side timeout; the caller's
// context is the only cancellation. Request logging records method, path,
// status and duration. Bodies, headers and the credential are never logged.
package backend
