// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zap.InfoLevel, false},
		{"debug", zap.DebugLevel, false},
		{" WARN ", zap.WarnLevel, false},
		{"error", zap.ErrorLevel, false},
		{"loud", zap.InfoLevel, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseLevel(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNew_NoOutputsIsNop(t *testing.T) {
	l, err := New(Options{})
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestNew_WritesAndRecentReads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pdfchat.log")
	l, err := New(Options{Path: path, Level: "debug"})
	require.NoError(t, err)

	l.Named("backend").Info("api response", zap.Int("status", 200))
	l.Warn("upload failed")
	l.Debug("drop event")
	require.NoError(t, l.Sync())

	all, err := Recent(path, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "drop event", all[0].Message, "newest first")
	assert.Equal(t, "backend", all[2].Logger)

	warns, err := Recent(path, "warn", 10)
	require.NoError(t, err)
	require.Len(t, warns, 1)
	assert.Equal(t, "upload failed", warns[0].Message)

	limited, err := Recent(path, "", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "verbose"})
	assert.Error(t, err)
}

func TestRecent_MissingFile(t *testing.T) {
	entries, err := Recent(filepath.Join(t.TempDir(), "none.log"), "", 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
