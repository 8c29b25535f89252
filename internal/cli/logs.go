// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// logs.go - Print recent entries from the pdfchat log file.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jeranaias/pdfchat-tui/internal/logging"
)

// RunLogs prints the newest log entries, newest first.
func RunLogs(w io.Writer, args *Args) error {
	cfg, err := LoadConfig(args.Options)
	if err != nil {
		return NewCommandError("logs", "load config", err)
	}
	if cfg.Log.File == "" {
		return NewCommandError("logs", "read", fmt.Errorf("file logging is disabled"))
	}

	entries, err := logging.Recent(cfg.Log.File, args.Level, args.Limit)
	if err != nil {
		return NewCommandError("logs", "read", err)
	}
	return printLogEntries(w, entries, args.JSON)
}

func printLogEntries(w io.Writer, entries []logging.Entry, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, dimColor.Sprint("No log entries."))
		return nil
	}
	for _, e := range entries {
		level := fmt.Sprintf("%-5s", e.Level)
		switch e.Level {
		case "ERROR", "FATAL", "PANIC", "DPANIC":
			level = errorColor.Sprint(level)
		case "WARN":
			level = warnColor.Sprint(level)
		default:
			level = dimColor.Sprint(level)
		}
		name := ""
		if e.Logger != "" {
			name = dimColor.Sprint(e.Logger + " ")
		}
		fmt.Fprintf(w, "%s %s %s%s\n", dimColor.Sprint(e.Timestamp), level, name, e.Message)
	}
	return nil
}
