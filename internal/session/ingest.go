// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jeranaias/pdfchat-tui/internal/backend"
	"github.com/jeranaias/pdfchat-tui/internal/document"
	"github.com/jeranaias/pdfchat-tui/internal/model"
)

// BeginIngest validates doc and shows the uploading state.
// A non-nil error means the upload must not be sent; a notice is queued.
func (s *Session) BeginIngest(doc *document.Document) error {
	s.controls.DropHover = false

	if s.controls.Uploading {
		s.notify(NoticeError, NoticeUploadInFlight)
		return ErrUploadInProgress
	}
	if doc == nil || !doc.IsPDF() {
		s.notify(NoticeError, NoticeNotPDF)
		return ErrNotPDF
	}
	if !s.readiness.CredentialAccepted() {
		s.notify(NoticeError, NoticeKeyRequired)
		return ErrCredentialRequired
	}

	s.controls.Uploading = true
	s.controls.DocumentLabel = UploadingPrefix + doc.Name
	s.controls.DocumentDetail = doc.Summary()
	s.controls.ChatStatus = StatusProcessing
	s.controls.ChatStatusKind = StatusKindBusy
	s.logger.Info("uploading document",
		zap.String("file", doc.Name),
		zap.Int64("size", doc.Size),
		zap.Int("pages", doc.Pages))
	return nil
}

// CompleteIngest applies the outcome of POST /upload for doc.
func (s *Session) CompleteIngest(doc *document.Document, resp *backend.UploadResponse, err error) {
	s.controls.Uploading = false

	if err != nil {
		s.controls.DocumentLabel = DocumentFailed
		s.controls.DocumentDetail = ""
		s.controls.ChatStatus = StatusError
		s.controls.ChatStatusKind = StatusKindError

		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			s.logger.Warn("upload rejected", zap.Int("status", apiErr.Status), zap.String("error", apiErr.Message))
			msg := apiErr.Message
			if msg == "" {
				msg = NoticeUploadFailed
			}
			s.notify(NoticeError, msg)
			return
		}

		s.logger.Error("upload failed", zap.String("file", doc.Name), zap.Error(err))
		s.notify(NoticeError, NoticeUploadConnect)
		return
	}

	s.readiness.MarkDocumentIngested()
	s.document = doc
	s.controls.DocumentLabel = doc.Name
	s.controls.DocumentDetail = doc.Summary()
	s.controls.ChatStatus = StatusReady
	s.controls.ChatStatusKind = StatusKindReady
	s.controls.ChatActive = true
	s.transcript.Append(model.RoleAssistant, fmt.Sprintf(announceDocFormat, doc.Name))

	msg := ""
	if resp != nil {
		msg = resp.Message
	}
	s.logger.Info("document ingested", zap.String("file", doc.Name), zap.String("message", msg))

	s.evaluateGate()
}

// Upload opens doc and sends it through b.
func Upload(ctx context.Context, b Backend, doc *document.Document) (*backend.UploadResponse, error) {
	rc, err := doc.Open()
	if err != nil {
		return nil, &backend.TransportError{Op: "read " + doc.Name, Err: err}
	}
	defer rc.Close()
	return b.Upload(ctx, doc.Name, rc)
}

// IngestDocument runs the whole ingestion flow synchronously.
func (s *Session) IngestDocument(ctx context.Context, doc *document.Document) error {
	if err := s.BeginIngest(doc); err != nil {
		return err
	}
	resp, err := Upload(ctx, s.backend, doc)
	s.CompleteIngest(doc, resp, err)
	return err
}
