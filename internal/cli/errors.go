// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error types and exit codes for pdfchat commands.
//
// Commands always return errors; Exit decides how to display them.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jeranaias/pdfchat-tui/internal/backend"
	"github.com/jeranaias/pdfchat-tui/internal/config"
	"github.com/jeranaias/pdfchat-tui/internal/document"
	"github.com/jeranaias/pdfchat-tui/internal/session"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitRejected indicates the server refused the request
	ExitRejected = 4
	// ExitNetworkError indicates the server could not be reached
	ExitNetworkError = 5
	// ExitNotFoundError indicates a missing document
	ExitNotFoundError = 7
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// UsageError reports bad flags or arguments.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string // e.g. "ask"
	Action  string // e.g. "upload"
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Command, e.Action, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError wraps err with the failing command and action.
func NewCommandError(command, action string, err error) error {
	if err == nil {
		return nil
	}
	return &CommandError{Command: command, Action: action, Err: err}
}

// =============================================================================
// EXIT HANDLING
// =============================================================================

// ExitCode maps err to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usageErr *UsageError
	var ttyErr *TTYRequiredError
	var cfgErrs config.ValidateErrors
	var apiErr *backend.APIError
	var transportErr *backend.TransportError

	switch {
	case errors.As(err, &usageErr), errors.As(err, &ttyErr):
		return ExitUsageError
	case errors.Is(err, session.ErrNotPDF), errors.Is(err, session.ErrCredentialRequired):
		return ExitUsageError
	case errors.As(err, &cfgErrs):
		return ExitConfigError
	case errors.Is(err, document.ErrNotFound), errors.Is(err, document.ErrNotRegular):
		return ExitNotFoundError
	case errors.As(err, &apiErr):
		return ExitRejected
	case errors.As(err, &transportErr):
		return ExitNetworkError
	default:
		return ExitGeneralError
	}
}

// PrintError writes err to w in the CLI's error format.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorColor.Sprint("Error:"), err)

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		fmt.Fprintln(w, dimColor.Sprint("Run 'pdfchat --help' for usage."))
	}
	var transportErr *backend.TransportError
	if errors.As(err, &transportErr) {
		fmt.Fprintln(w, dimColor.Sprint("Is the server running? Set it with --server or PDFCHAT_SERVER_URL."))
	}
}

// Exit prints err to stderr and exits with its code. A nil error exits 0.
func Exit(err error) {
	if err != nil {
		PrintError(os.Stderr, err)
	}
	os.Exit(ExitCode(err))
}
