// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// commands.go - Slash commands and tab completion for the chat REPL.
package cli

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jeranaias/pdfchat-tui/internal/export"
)

// ArgType determines how a command argument is completed.
type ArgType int

const (
	ArgNone ArgType = iota
	ArgString
	ArgFile
	ArgEnum
)

// replCommand is a slash command of the line-mode REPL.
type replCommand struct {
	Name        string
	Aliases     []string
	Usage       string
	Description string
	Arg         ArgType
	Values      []string // for ArgEnum

	// Run executes the command and reports whether the REPL should exit.
	Run func(r *REPL, ctx context.Context, arg string) bool
}

// defaultCommands returns the built-in commands in help order.
func defaultCommands() []*replCommand {
	return []*replCommand{
		{
			Name:        "/key",
			Usage:       "/key KEY",
			Description: "Register an API key",
			Arg:         ArgString,
			Run: func(r *REPL, ctx context.Context, arg string) bool {
				r.registerKey(ctx, arg)
				return false
			},
		},
		{
			Name:        "/upload",
			Aliases:     []string{"/file"},
			Usage:       "/upload PATH",
			Description: "Upload a PDF (a bare path works too)",
			Arg:         ArgFile,
			Run: func(r *REPL, ctx context.Context, arg string) bool {
				r.upload(ctx, arg)
				return false
			},
		},
		{
			Name:        "/status",
			Aliases:     []string{"/s"},
			Usage:       "/status",
			Description: "Show key, document and model state",
			Run: func(r *REPL, _ context.Context, _ string) bool {
				r.printStatus()
				return false
			},
		},
		{
			Name:        "/export",
			Usage:       "/export [markdown|json]",
			Description: "Write the transcript to a file",
			Arg:         ArgEnum,
			Values:      []string{export.FormatMarkdown, export.FormatJSON},
			Run: func(r *REPL, _ context.Context, arg string) bool {
				r.exportTranscript(arg)
				return false
			},
		},
		{
			Name:        "/help",
			Aliases:     []string{"/h", "/?"},
			Usage:       "/help",
			Description: "Show available commands",
			Run: func(r *REPL, _ context.Context, _ string) bool {
				r.printHelp()
				return false
			},
		},
		{
			Name:        "/quit",
			Aliases:     []string{"/q", "/exit"},
			Usage:       "/quit",
			Description: "Exit",
			Run: func(*REPL, context.Context, string) bool {
				return true
			},
		},
	}
}

// commandSet looks commands up by name or alias.
type commandSet struct {
	list   []*replCommand
	byName map[string]*replCommand
}

func newCommandSet(cmds []*replCommand) *commandSet {
	s := &commandSet{list: cmds, byName: make(map[string]*replCommand)}
	for _, c := range cmds {
		s.byName[c.Name] = c
		for _, a := range c.Aliases {
			s.byName[a] = c
		}
	}
	return s
}

// Get returns the command for name (case-insensitive), or nil.
func (s *commandSet) Get(name string) *replCommand {
	return s.byName[strings.ToLower(name)]
}

// Complete returns full-line completions for liner.
func (s *commandSet) Complete(line string) []string {
	if !strings.HasPrefix(line, "/") {
		return nil
	}

	name, arg, hasArg := strings.Cut(line, " ")
	if !hasArg {
		var out []string
		for _, c := range s.list {
			if strings.HasPrefix(c.Name, strings.ToLower(name)) {
				out = append(out, c.Name+" ")
			}
		}
		return out
	}

	cmd := s.Get(name)
	if cmd == nil {
		return nil
	}
	prefix := name + " "
	var values []string
	switch cmd.Arg {
	case ArgEnum:
		for _, v := range cmd.Values {
			if strings.HasPrefix(v, arg) {
				values = append(values, v)
			}
		}
	case ArgFile:
		values = completePDFPath(arg)
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = prefix + v
	}
	return out
}

// completePDFPath lists directories and PDF files starting with partial.
// Hidden entries are skipped unless partial names them.
func completePDFPath(partial string) []string {
	dir := filepath.Dir(partial)
	base := filepath.Base(partial)
	if partial == "" || strings.HasSuffix(partial, string(os.PathSeparator)) {
		dir = partial
		base = ""
	}
	readDir := dir
	if readDir == "" {
		readDir = "."
	}

	entries, err := os.ReadDir(readDir)
	if err != nil {
		return nil
	}

	lower := strings.ToLower(base)
	var out []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(strings.ToLower(name), lower) {
			continue
		}
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(base, ".") {
			continue
		}
		if !e.IsDir() && !strings.EqualFold(filepath.Ext(name), ".pdf") {
			continue
		}
		p := name
		if dir != "" {
			p = filepath.Join(dir, name)
		}
		if e.IsDir() {
			p += string(os.PathSeparator)
		}
		out = append(out, p)
	}
	sort.Strings(out)
	if len(out) > 20 {
		out = out[:20]
	}
	return out
}
