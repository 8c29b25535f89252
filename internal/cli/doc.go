// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-TUI front ends for
// pdfchat.
//
// # Commands
//
//   - tui: full-screen interface (default)
//   - chat: line-mode REPL with history, for terminals without alt-screen
//   - ask: one-shot question against a document, for scripts
//   - config: print the effective configuration
//   - logs: print recent log entries
//   - version: print build information
//
// # Usage
//
//	cmd, args, err := cli.Parse(os.Args[1:])
//	if err != nil {
//	    cli.Exit(err)
//	}
//	switch cmd {
//	case cli.CmdAsk:
//	    err = cli.RunAsk(ctx, args)
//	}
//
// Every front end drives the same session.Session, so the readiness gate,
// notices and transcript behave identically in the TUI and in line mode.
package cli
