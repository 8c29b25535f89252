// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tui.go - Full-screen interface command for pdfchat.
package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jeranaias/pdfchat-tui/internal/dropzone"
	"github.com/jeranaias/pdfchat-tui/internal/ui/chat"
	"github.com/jeranaias/pdfchat-tui/internal/ui/styles"
)

// RunTUI starts the Bubble Tea program and blocks until it exits.
func RunTUI(ctx context.Context, args *Args) error {
	if err := RequiresTTY("start the interface"); err != nil {
		return err
	}

	rt, err := NewRuntime(args.Options, false)
	if err != nil {
		return NewCommandError("tui", "startup", err)
	}
	defer rt.Close()

	lipgloss.SetColorProfile(GetColorProfile())
	cfg := rt.Config

	opts := chat.Options{
		Session:         rt.Session,
		Theme:           styles.ThemeFor(cfg.UI.Theme),
		Logger:          rt.Logger,
		Server:          rt.Client.BaseURL(),
		LabelResetDelay: cfg.UI.LabelResetDelay(),
		ExportDir:       cfg.UI.ExportDir,
		ExportFormat:    cfg.UI.ExportFormat,
		InitialKey:      cfg.Server.APIKey,
		InitialDocument: args.File,
	}

	if cfg.UI.DropDir != "" {
		w, err := dropzone.New(cfg.UI.DropDir, cfg.UI.DropDebounce(), rt.Logger)
		if err != nil {
			return NewCommandError("tui", "watch drop directory", err)
		}
		if err := w.Start(); err != nil {
			_ = w.Close()
			return NewCommandError("tui", "watch drop directory", err)
		}
		defer w.Close()
		opts.Drops = w.Events()
		opts.DropDir = w.Dir()
	}

	m := chat.New(opts)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if fm, ok := final.(chat.Model); ok {
		fm.Close()
	} else {
		m.Close()
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		rt.Logger.Error("program exited with error", zap.Error(err))
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
