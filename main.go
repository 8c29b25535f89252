// pdfchat - Chat with a PDF from the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jeranaias/pdfchat-tui/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args, err := cli.Parse(os.Args[1:])
	if err != nil {
		cli.Exit(err)
	}

	ctx := context.Background()

	switch cmd {
	case cli.CmdHelp:
		fmt.Println(args.Usage)
	case cli.CmdVersion:
		fmt.Println(cli.VersionString())
	case cli.CmdConfig:
		err = cli.RunConfig(os.Stdout, args)
	case cli.CmdLogs:
		err = cli.RunLogs(os.Stdout, args)
	case cli.CmdAsk:
		err = cli.RunAsk(ctx, os.Stdout, args)
	case cli.CmdChat:
		err = cli.RunChat(ctx, args)
	default:
		err = cli.RunTUI(ctx, args)
	}

	if err != nil {
		cli.Exit(err)
	}
}
