// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package document

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// CleanPath normalizes a path the way terminals deliver it when a file is
// dragged onto them: surrounding quotes, file:// URLs and backslash-escaped
// spaces are removed. Returns "" for input that cannot be a single path.
func CleanPath(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || strings.ContainsAny(s, "\n\r") {
		return ""
	}

	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			s = s[1 : len(s)-1]
		}
	}

	if strings.HasPrefix(s, "file://") {
		u, err := url.Parse(s)
		if err != nil {
			return ""
		}
		s = u.Path
	} else if filepath.Separator == '/' {
		s = unescapeShell(s)
	}
	return ExpandHome(s)
}

// unescapeShell drops the backslashes macOS and Linux terminals add before
// spaces and other shell metacharacters.
func unescapeShell(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	escaped := false
	for _, r := range s {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		sb.WriteRune(r)
	}
	return sb.String()
}
