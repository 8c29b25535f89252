// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question command for pdfchat.
//
// Command: ask
// Short:   Register a key, upload a PDF and ask one question
//
// Examples:
//   pdfchat -k $KEY -f report.pdf ask "What is the total?"
//   pdfchat -f report.pdf ask --json "Summarize section 2"   Key from config
//
// The three flows run in order; the first failure stops the command with
// a non-zero exit code.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jeranaias/pdfchat-tui/internal/document"
	"github.com/jeranaias/pdfchat-tui/internal/model"
	"github.com/jeranaias/pdfchat-tui/internal/session"
)

// AskResult is the --json output of the ask command.
type AskResult struct {
	Document string   `json:"document"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Models   []string `json:"models,omitempty"`
}

// RunAsk runs the ask command against a freshly built runtime.
func RunAsk(ctx context.Context, w io.Writer, args *Args) error {
	if args.Query() == "" {
		return &UsageError{Err: errors.New("ask requires a question")}
	}

	rt, err := NewRuntime(args.Options, true)
	if err != nil {
		return NewCommandError("ask", "startup", err)
	}
	defer rt.Close()

	return Ask(ctx, w, rt.Session, rt.Config.Server.APIKey, args)
}

// Ask runs the credential, ingestion and question flows on sess and prints
// the answer.
func Ask(ctx context.Context, w io.Writer, sess *session.Session, key string, args *Args) error {
	if key == "" {
		return &UsageError{Err: errors.New("ask requires --key (or server.api_key / PDFCHAT_API_KEY)")}
	}
	if args.File == "" {
		return &UsageError{Err: errors.New("ask requires --file")}
	}

	if err := sess.RegisterCredential(ctx, key); err != nil {
		return NewCommandError("ask", "set key", err)
	}

	doc, err := document.Inspect(document.CleanPath(args.File))
	if err != nil {
		return NewCommandError("ask", "open document", err)
	}
	if err := sess.IngestDocument(ctx, doc); err != nil {
		return NewCommandError("ask", "upload", err)
	}

	if err := sess.SubmitQuestion(ctx, args.Query()); err != nil {
		return NewCommandError("ask", "question", err)
	}

	answer := ""
	if last := sess.Transcript().LastOf(model.RoleAssistant); last != nil {
		answer = last.Text
	}

	if args.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(AskResult{
			Document: doc.Name,
			Question: args.Query(),
			Answer:   answer,
			Models:   sess.Controls().Models,
		})
	}

	_, err = fmt.Fprintln(w, renderEmphasis(answer))
	return err
}
