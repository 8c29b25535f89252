// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing for pdfchat.
package cli

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/jessevdk/go-flags"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdChat
	CmdAsk
	CmdConfig
	CmdLogs
	CmdVersion
	CmdHelp
)

// String returns the command name as typed on the command line.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdChat:
		return "chat"
	case CmdAsk:
		return "ask"
	case CmdConfig:
		return "config"
	case CmdLogs:
		return "logs"
	case CmdVersion:
		return "version"
	default:
		return "help"
	}
}

// Options are the global flags shared by every command.
type Options struct {
	Config  string `short:"c" long:"config" description:"Config file (TOML or JSON)" value-name:"PATH"`
	Server  string `short:"s" long:"server" description:"Server base URL" value-name:"URL"`
	Key     string `short:"k" long:"key" description:"API key to register on start" value-name:"KEY"`
	File    string `short:"f" long:"file" description:"PDF to upload once the key is accepted" value-name:"PATH"`
	DropDir string `long:"drop-dir" description:"Directory watched for dropped PDFs" value-name:"DIR"`
	LogFile string `long:"log-file" description:"Log file path" value-name:"PATH"`
	Theme   string `long:"theme" description:"Color theme" choice:"dark" choice:"light" choice:"auto"`
	Debug   bool   `long:"debug" description:"Log at debug level"`
}

// Args holds parsed CLI arguments.
type Args struct {
	Options

	// Raw holds the positional arguments after the command.
	Raw []string

	// JSON selects machine-readable output for ask and logs.
	JSON bool

	// Level and Limit filter the logs command.
	Level string
	Limit int

	// Usage is the rendered help text for CmdHelp.
	Usage string
}

// Query joins the positional arguments into a question.
func (a *Args) Query() string {
	return strings.TrimSpace(strings.Join(a.Raw, " "))
}

type tuiCommand struct{}

type chatCommand struct{}

type askCommand struct {
	JSON bool `long:"json" description:"Print the answer as JSON"`
}

type configCommand struct{}

type logsCommand struct {
	Level string `short:"l" long:"level" description:"Only show this level" choice:"debug" choice:"info" choice:"warn" choice:"error"`
	Limit int    `short:"n" long:"limit" description:"Number of entries" default:"20"`
	JSON  bool   `long:"json" description:"Print entries as JSON"`
}

type versionCommand struct{}

type rootCommand struct {
	Global Options `group:"Global Options"`

	TUI     tuiCommand     `command:"tui" description:"Start the full-screen interface (default)"`
	Chat    chatCommand    `command:"chat" description:"Line-mode chat with history"`
	Ask     askCommand     `command:"ask" description:"Ask one question about --file and print the answer"`
	Config  configCommand  `command:"config" description:"Print the effective configuration"`
	Logs    logsCommand    `command:"logs" description:"Print recent log entries"`
	Version versionCommand `command:"version" description:"Print version information"`
}

func newParser(root *rootCommand) *flags.Parser {
	p := flags.NewParser(root, flags.HelpFlag|flags.PassDoubleDash)
	p.Name = "pdfchat"
	p.Usage = "[OPTIONS] [tui | chat | ask QUESTION... | config | logs | version]"
	p.SubcommandsOptional = true
	return p
}

// Parse parses argv (without the program name). A help request yields
// CmdHelp with the rendered usage and no error.
func Parse(argv []string) (Command, *Args, error) {
	var root rootCommand
	p := newParser(&root)

	rest, err := p.ParseArgs(argv)
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return CmdHelp, &Args{Usage: ferr.Message}, nil
		}
		return CmdHelp, nil, &UsageError{Err: err}
	}

	args := &Args{Options: root.Global, Raw: rest}
	cmd := CmdTUI
	if p.Active != nil {
		switch p.Active.Name {
		case "chat":
			cmd = CmdChat
		case "ask":
			cmd = CmdAsk
			args.JSON = root.Ask.JSON
		case "config":
			cmd = CmdConfig
		case "logs":
			cmd = CmdLogs
			args.Level = root.Logs.Level
			args.Limit = root.Logs.Limit
			args.JSON = root.Logs.JSON
		case "version":
			cmd = CmdVersion
		}
	}

	if cmd != CmdAsk && len(rest) > 0 {
		return cmd, nil, &UsageError{Err: fmt.Errorf("unexpected argument %q", rest[0])}
	}
	return cmd, args, nil
}

// VersionString returns the version line printed by the version command.
func VersionString() string {
	return fmt.Sprintf("pdfchat %s (commit %s, built %s, %s/%s)",
		Version, GitCommit, BuildDate, runtime.GOOS, runtime.GOARCH)
}
