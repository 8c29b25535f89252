// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/jeranaias/pdfchat-tui/internal/backend"
	"github.com/jeranaias/pdfchat-tui/internal/model"
)

// CanSubmit reports whether the question input accepts a submission.
func (s *Session) CanSubmit() bool {
	return s.readiness.IsReady() && !s.inFlight
}

// BeginQuestion records the user turn and the pending placeholder, and
// disables the input until CompleteQuestion. ok is false when nothing was
// submitted: blank text, gate closed, or a question already outstanding.
func (s *Session) BeginQuestion(text string) (question string, ok bool) {
	question = strings.TrimSpace(text)
	if question == "" || !s.CanSubmit() {
		return "", false
	}

	s.transcript.Append(model.RoleUser, question)
	s.inFlight = true
	s.controls.QuestionEnabled = false
	s.controls.FocusQuestion = false
	s.pendingID = s.transcript.AppendPending()
	return question, true
}

// CompleteQuestion replaces the placeholder with the answer or an error
// entry and re-enables the input. It always leaves the input usable.
func (s *Session) CompleteQuestion(resp *backend.AskResponse, err error) {
	s.transcript.RemovePending(s.pendingID)
	s.pendingID = ""

	switch {
	case err == nil && resp != nil:
		s.transcript.Append(model.RoleAssistant, resp.Answer)

	case err == nil:
		s.transcript.Append(model.RoleAssistant, AskUnreachable)

	default:
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			s.logger.Warn("question rejected", zap.Int("status", apiErr.Status), zap.String("error", apiErr.Message))
			if apiErr.Message == "" {
				s.transcript.Append(model.RoleAssistant, AskUnreachable)
			} else {
				s.transcript.Append(model.RoleAssistant, ErrorPrefix+apiErr.Message)
			}
		} else {
			s.logger.Error("question failed", zap.Error(err))
			s.transcript.Append(model.RoleAssistant, AskUnreachable)
		}
	}

	s.inFlight = false
	s.controls.QuestionEnabled = true
	s.controls.FocusQuestion = true
}

// SubmitQuestion runs one conversation turn synchronously.
// It returns nil without a request when nothing was submitted.
func (s *Session) SubmitQuestion(ctx context.Context, text string) error {
	q, ok := s.BeginQuestion(text)
	if !ok {
		return nil
	}
	resp, err := s.backend.Ask(ctx, q)
	s.CompleteQuestion(resp, err)
	return err
}
