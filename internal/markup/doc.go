// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markup implements the minimal inline formatting used by the
// transcript: double-asterisk pairs become emphasis and newlines become
// line breaks. Nothing else is recognized.
//
// Parse is pure and has no knowledge of the terminal; callers style the
// returned spans themselves.
//
//	lines := markup.Parse("I've analyzed **report.pdf**.")
//	for _, line := range lines {
//	    for _, span := range line {
//	        if span.Emphasis { ... }
//	    }
//	}
package markup
