// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/jeranaias/pdfchat-tui/internal/backend"
	"github.com/jeranaias/pdfchat-tui/internal/document"
	"github.com/jeranaias/pdfchat-tui/internal/model"
)

// Backend is the part of the service client the flows call.
type Backend interface {
	SetAPIKey(ctx context.Context, key string) (*backend.SetKeyResponse, error)
	Upload(ctx context.Context, name string, r io.Reader) (*backend.UploadResponse, error)
	Ask(ctx context.Context, question string) (*backend.AskResponse, error)
}

// StatusKind classifies the chat status label for styling.
type StatusKind int

const (
	StatusKindIdle StatusKind = iota
	StatusKindBusy
	StatusKindReady
	StatusKindError
)

// Controls is the view state of every control the flows touch.
type Controls struct {
	// Credential
	SaveLabel   string
	KeyStatus   string
	KeyAccepted bool
	Saving      bool
	Models      []string

	// Document
	DocumentLabel  string
	DocumentDetail string
	Uploading      bool
	DropHover      bool

	// Chat
	ChatStatus      string
	ChatStatusKind  StatusKind
	ChatActive      bool
	QuestionEnabled bool

	// FocusQuestion asks the view to move focus to the question input.
	// The view clears it with FocusHandled.
	FocusQuestion bool
}

// Session is the client state for one conversation about one document.
type Session struct {
	backend Backend
	logger  *zap.Logger

	readiness  model.Readiness
	transcript *model.Transcript
	controls   Controls
	notices    []Notice

	// inFlight is set while a question request is outstanding.
	inFlight  bool
	pendingID string

	document *document.Document
}

// New creates a session with both readiness flags unset.
func New(b Backend, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		backend:    b,
		logger:     logger.Named("session"),
		transcript: model.NewTranscript(),
		controls: Controls{
			SaveLabel:     LabelSetKey,
			KeyStatus:     KeyNotSet,
			DocumentLabel: DocumentNone,
			ChatStatus:    StatusWaiting,
		},
	}
}

// Backend returns the client the flows use.
func (s *Session) Backend() Backend {
	return s.backend
}

// Readiness returns a copy of the gate.
func (s *Session) Readiness() model.Readiness {
	return s.readiness
}

// IsReady reports whether both preconditions hold.
func (s *Session) IsReady() bool {
	return s.readiness.IsReady()
}

// Transcript returns the conversation log. Callers must not mutate it.
func (s *Session) Transcript() *model.Transcript {
	return s.transcript
}

// Controls returns a copy of the view state.
func (s *Session) Controls() Controls {
	c := s.controls
	c.Models = append([]string(nil), s.controls.Models...)
	return c
}

// Document returns the ingested document, or nil.
func (s *Session) Document() *document.Document {
	return s.document
}

// InFlight reports whether a question is outstanding.
func (s *Session) InFlight() bool {
	return s.inFlight
}

// FocusHandled acknowledges a focus request.
func (s *Session) FocusHandled() {
	s.controls.FocusQuestion = false
}

// SetDropHover previews acceptance while a file is arriving.
func (s *Session) SetDropHover(on bool) {
	s.controls.DropHover = on
}

// evaluateGate enables the question input once both flags are set.
func (s *Session) evaluateGate() {
	if !s.readiness.IsReady() {
		return
	}
	if !s.inFlight {
		s.controls.QuestionEnabled = true
	}
	s.controls.FocusQuestion = true
}
