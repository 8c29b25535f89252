// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/jeranaias/pdfchat-tui/internal/backend"
)

// BeginCredential trims raw and, when non-empty, shows the saving label.
// ok is false for blank input, which is silently ignored.
func (s *Session) BeginCredential(raw string) (key string, ok bool) {
	key = strings.TrimSpace(raw)
	if key == "" {
		return "", false
	}
	s.controls.SaveLabel = LabelSaving
	s.controls.Saving = true
	s.logger.Debug("registering credential", zap.String("key_fingerprint", backend.Fingerprint(key)))
	return key, true
}

// CompleteCredential applies the outcome of POST /set_api_key.
// On success the caller schedules ResetSaveLabel.
func (s *Session) CompleteCredential(resp *backend.SetKeyResponse, err error) {
	s.controls.Saving = false

	if err != nil {
		s.controls.SaveLabel = LabelSetKey

		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			s.logger.Warn("credential rejected", zap.Int("status", apiErr.Status), zap.String("error", apiErr.Message))
			msg := apiErr.Message
			if msg == "" {
				msg = NoticeKeyFailed
			}
			s.notify(NoticeError, msg)
			return
		}

		s.logger.Error("credential registration failed", zap.Error(err))
		s.notify(NoticeError, NoticeKeyConnect)
		return
	}

	s.readiness.MarkCredentialAccepted()
	s.controls.KeyAccepted = true
	s.controls.KeyStatus = KeySaved
	s.controls.SaveLabel = LabelUpdated

	if resp != nil {
		if resp.Warning != "" {
			s.logger.Warn("credential accepted with warning", zap.String("warning", resp.Warning))
		}
		if len(resp.Models) > 0 {
			s.controls.Models = append([]string(nil), resp.Models...)
			s.notify(NoticeInfo, ModelsNoticePrefix+strings.Join(resp.Models, ", "))
		}
	}
	s.logger.Info("credential accepted", zap.Int("models", len(s.controls.Models)))

	s.evaluateGate()
}

// ResetSaveLabel reverts the save control to its idle label.
// It does nothing while a save is running.
func (s *Session) ResetSaveLabel() {
	if s.controls.Saving {
		return
	}
	s.controls.SaveLabel = LabelSetKey
}

// RegisterCredential runs the whole credential flow synchronously.
// It returns nil for blank input.
func (s *Session) RegisterCredential(ctx context.Context, raw string) error {
	key, ok := s.BeginCredential(raw)
	if !ok {
		return nil
	}
	resp, err := s.backend.SetAPIKey(ctx, key)
	s.CompleteCredential(resp, err)
	return err
}
