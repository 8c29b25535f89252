// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Line-mode chat for pdfchat.
//
// Command: chat
// Short:   Chat about a PDF without the full-screen interface
//
// Examples:
//   pdfchat chat                          Start with nothing configured
//   pdfchat -k $KEY -f report.pdf chat    Register and upload, then chat
//
// Interactive Commands:
//   /key KEY            Register an API key
//   /upload PATH        Upload a PDF (a bare existing path works too)
//   /status             Show key, document and model state
//   /export [FORMAT]    Write the transcript (markdown or json)
//   /help, /h           Show available commands
//   /quit, /q           Exit
//   Ctrl+D              Exit
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/jeranaias/pdfchat-tui/internal/config"
	"github.com/jeranaias/pdfchat-tui/internal/document"
	"github.com/jeranaias/pdfchat-tui/internal/dropzone"
	"github.com/jeranaias/pdfchat-tui/internal/export"
	"github.com/jeranaias/pdfchat-tui/internal/model"
	"github.com/jeranaias/pdfchat-tui/internal/session"
	"github.com/jeranaias/pdfchat-tui/internal/util"
)

// hintNotReady is printed when a question is typed before the gate opens.
const hintNotReady = "Set a key with /key and upload a PDF with /upload first."

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a new ChatCLI with input history and tab completion.
func NewChatCLI(complete func(line string) []string) *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	if complete != nil {
		line.SetCompleter(complete)
	}

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	c := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	c.LoadHistory()
	return c
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		_, _ = c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	// Keys never enter the history file.
	if s := strings.TrimSpace(input); s != "" && !strings.HasPrefix(s, "/key") {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists command history to file (0600).
func (c *ChatCLI) SaveHistory() {
	if err := os.MkdirAll(filepath.Dir(c.historyFile), 0o700); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// REPL
// =============================================================================

// REPL drives a session from text commands. After every line it prints the
// transcript entries added since the previous line and any queued notices.
type REPL struct {
	sess   *session.Session
	out    io.Writer
	logger *zap.Logger

	exportDir    string
	exportFormat string

	commands *commandSet
	printed  int
}

// NewREPL creates a REPL writing to out.
func NewREPL(sess *session.Session, out io.Writer, cfg *config.Config, logger *zap.Logger) *REPL {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &REPL{
		sess:         sess,
		out:          out,
		logger:       logger.Named("repl"),
		exportFormat: export.FormatMarkdown,
		commands:     newCommandSet(defaultCommands()),
	}
	if cfg != nil {
		r.exportDir = cfg.UI.ExportDir
		r.exportFormat = cfg.UI.ExportFormat
	}
	return r
}

// Handle runs one input line. It returns true when the user asked to quit.
func (r *REPL) Handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if strings.HasPrefix(line, "/") {
		name, arg, _ := strings.Cut(line, " ")
		cmd := r.commands.Get(name)
		if cmd == nil {
			fmt.Fprintf(r.out, "%s %s\n", warnColor.Sprint("Unknown command:"), name)
			fmt.Fprintln(r.out, dimColor.Sprint("Type /help for available commands."))
			return false
		}
		if cmd.Run(r, ctx, strings.TrimSpace(arg)) {
			return true
		}
		r.flush()
		return false
	}

	// A bare path to an existing file uploads it, like a drop.
	if p, ok := dropzone.PathFromPaste(line); ok {
		r.upload(ctx, p)
		r.flush()
		return false
	}

	r.ask(ctx, line)
	r.flush()
	return false
}

func (r *REPL) registerKey(ctx context.Context, key string) {
	if key == "" {
		fmt.Fprintln(r.out, dimColor.Sprint("Usage: /key KEY"))
		return
	}
	if err := r.sess.RegisterCredential(ctx, key); err != nil {
		r.logger.Debug("credential failed", zap.Error(err))
		return
	}
	fmt.Fprintf(r.out, "%s %s\n", successColor.Sprint("Key:"), r.sess.Controls().KeyStatus)
}

func (r *REPL) upload(ctx context.Context, path string) {
	path = document.CleanPath(path)
	if path == "" {
		fmt.Fprintln(r.out, dimColor.Sprint("Usage: /upload PATH"))
		return
	}
	doc, err := document.Inspect(path)
	if err != nil {
		r.sess.Notify(session.NoticeError, inspectErrorText(path, err))
		return
	}
	if err := r.sess.BeginIngest(doc); err != nil {
		return
	}
	fmt.Fprintln(r.out, dimColor.Sprint(r.sess.Controls().DocumentLabel+"..."))
	resp, err := session.Upload(ctx, r.sess.Backend(), doc)
	r.sess.CompleteIngest(doc, resp, err)
}

func (r *REPL) ask(ctx context.Context, question string) {
	if !r.sess.CanSubmit() {
		fmt.Fprintln(r.out, warnColor.Sprint(hintNotReady))
		return
	}
	q, ok := r.sess.BeginQuestion(question)
	if !ok {
		return
	}
	// The question itself is already on screen; skip its echo.
	r.flushEntries(true)
	fmt.Fprintln(r.out, dimColor.Sprint(model.PendingText))

	resp, err := r.sess.Backend().Ask(ctx, q)
	r.sess.CompleteQuestion(resp, err)
}

func (r *REPL) exportTranscript(format string) {
	if format == "" {
		format = r.exportFormat
	}
	tr := r.sess.Transcript()
	if tr.IsEmpty() {
		fmt.Fprintln(r.out, dimColor.Sprint("Nothing to export"))
		return
	}

	docName := ""
	if doc := r.sess.Document(); doc != nil {
		docName = doc.Name
	}
	opts := export.DefaultOptions()
	if r.exportDir != "" {
		opts.OutputDir = r.exportDir
	}
	path, err := export.Export(export.FromTranscript(tr, docName, r.sess.Controls().Models), format, opts)
	if err != nil {
		fmt.Fprintf(r.out, "%s %v\n", errorColor.Sprint("Export failed:"), err)
		return
	}
	fmt.Fprintf(r.out, "%s %s\n", successColor.Sprint("Exported to"), path)
}

// =============================================================================
// OUTPUT
// =============================================================================

// flush prints new transcript entries, then notices.
func (r *REPL) flush() {
	r.flushEntries(false)
	for _, n := range r.sess.DrainNotices() {
		if n.Kind == session.NoticeError {
			fmt.Fprintf(r.out, "%s %s\n", errorColor.Sprint("!"), n.Text)
		} else {
			fmt.Fprintf(r.out, "%s %s\n", successColor.Sprint("i"), n.Text)
		}
	}
}

func (r *REPL) flushEntries(skipUser bool) {
	entries := r.sess.Transcript().Entries()
	for ; r.printed < len(entries); r.printed++ {
		e := entries[r.printed]
		if e.Pending {
			break
		}
		if skipUser && e.Role == model.RoleUser {
			continue
		}
		r.printEntry(e)
	}
}

func (r *REPL) printEntry(e *model.Entry) {
	label := botColor.Sprint(e.Role.DisplayName() + ":")
	if e.Role == model.RoleUser {
		label = userColor.Sprint(e.Role.DisplayName() + ":")
	}
	fmt.Fprintf(r.out, "%s %s\n\n", label, renderEmphasis(e.Text))
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.out, titleColor.Sprint("Commands"))
	for _, c := range r.commands.list {
		fmt.Fprintf(r.out, "  %s %s\n", util.PadRight(c.Usage, 26), dimColor.Sprint(c.Description))
	}
	fmt.Fprintln(r.out, dimColor.Sprint("Anything else is asked as a question once a key and a document are set."))
}

func (r *REPL) printStatus() {
	c := r.sess.Controls()
	fmt.Fprintf(r.out, "%-10s %s\n", "Key", c.KeyStatus)
	fmt.Fprintf(r.out, "%-10s %s\n", "Document", c.DocumentLabel)
	fmt.Fprintf(r.out, "%-10s %s\n", "Chat", c.ChatStatus)
	if len(c.Models) > 0 {
		fmt.Fprintf(r.out, "%-10s %s\n", "Models", strings.Join(c.Models, ", "))
	}
}

func (r *REPL) printBanner(server string) {
	fmt.Fprintln(r.out, titleColor.Sprint("pdfchat")+dimColor.Sprint(" - "+server))
	fmt.Fprintln(r.out, strings.Repeat("─", minInt(GetTerminalWidth(), 60)))
	fmt.Fprintln(r.out, dimColor.Sprint("Type /help for commands, /quit to exit."))
}

// inspectErrorText describes why a path could not be used.
func inspectErrorText(path string, err error) string {
	switch {
	case errors.Is(err, document.ErrNotFound):
		return "File not found: " + path
	case errors.Is(err, document.ErrNotRegular):
		return "Not a file: " + path
	default:
		return "Could not read " + path
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// =============================================================================
// COMMAND
// =============================================================================

// RunChat starts the line-mode REPL.
func RunChat(ctx context.Context, args *Args) error {
	if err := RequiresTTY("start chat"); err != nil {
		return err
	}

	rt, err := NewRuntime(args.Options, true)
	if err != nil {
		return NewCommandError("chat", "startup", err)
	}
	defer rt.Close()

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	repl := NewREPL(rt.Session, os.Stdout, rt.Config, rt.Logger)
	repl.printBanner(rt.Client.BaseURL())

	if rt.Config.Server.APIKey != "" {
		repl.registerKey(ctx, rt.Config.Server.APIKey)
		if args.File != "" && rt.Session.Readiness().CredentialAccepted() {
			repl.upload(ctx, args.File)
		}
		repl.flush()
	}

	cli := NewChatCLI(repl.commands.Complete)
	defer cli.Close()

	for {
		line, err := cli.ReadInput("> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(os.Stdout)
				return nil
			}
			return NewCommandError("chat", "read input", err)
		}
		if repl.Handle(ctx, line) {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}
