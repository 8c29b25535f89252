// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Configuration loading and the config command.
package cli

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/jeranaias/pdfchat-tui/internal/backend"
	"github.com/jeranaias/pdfchat-tui/internal/config"
	"github.com/jeranaias/pdfchat-tui/internal/logging"
	"github.com/jeranaias/pdfchat-tui/internal/session"
)

// LoadConfig loads .env, the config file and environment overrides, then
// applies command-line flags on top. The result becomes config.Global.
func LoadConfig(opts Options) (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	var cfg *config.Config
	var err error
	if opts.Config != "" {
		cfg, err = config.LoadFromPath(opts.Config)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	applyFlags(cfg, opts)
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	config.SetGlobal(cfg)
	return cfg, nil
}

// applyFlags copies non-empty flags over cfg. Flags win over the file and
// the environment.
func applyFlags(cfg *config.Config, opts Options) {
	if opts.Server != "" {
		cfg.Server.URL = opts.Server
	}
	if opts.Key != "" {
		cfg.Server.APIKey = opts.Key
	}
	if opts.DropDir != "" {
		cfg.UI.DropDir = opts.DropDir
	}
	if opts.LogFile != "" {
		cfg.Log.File = opts.LogFile
	}
	if opts.Theme != "" {
		cfg.UI.Theme = opts.Theme
	}
	if opts.Debug {
		cfg.Log.Level = "debug"
	}
}

// =============================================================================
// RUNTIME
// =============================================================================

// Runtime bundles what every front end needs.
type Runtime struct {
	Config  *config.Config
	Logger  *zap.Logger
	Client  *backend.Client
	Session *session.Session
}

// NewRuntime loads configuration and builds the logger, client and session.
// console tees warnings to stderr, which only line-mode commands may do.
func NewRuntime(opts Options, console bool) (*Runtime, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Options{
		Path:    cfg.Log.File,
		Level:   cfg.Log.Level,
		Console: console,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	client, err := backend.New(cfg.Server.URL)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	client = client.WithLogger(logger)
	ua := cfg.Server.UserAgent
	if ua == "" {
		ua = "pdfchat/" + Version
	}
	client = client.WithUserAgent(ua)

	logger.Info("starting",
		zap.String("version", Version),
		zap.String("server", client.BaseURL()))

	return &Runtime{
		Config:  cfg,
		Logger:  logger,
		Client:  client,
		Session: session.New(client, logger),
	}, nil
}

// Close flushes the logger.
func (r *Runtime) Close() {
	_ = r.Logger.Sync()
}

// =============================================================================
// CONFIG COMMAND
// =============================================================================

// RunConfig prints the effective configuration with the key redacted.
func RunConfig(w io.Writer, args *Args) error {
	cfg, err := LoadConfig(args.Options)
	if err != nil {
		return NewCommandError("config", "load", err)
	}

	source := args.Config
	if source == "" {
		if p, err := config.ConfigPathTOML(); err == nil {
			source = p
		}
	}
	fmt.Fprintf(w, "%s %s\n\n", dimColor.Sprint("# source:"), source)
	fmt.Fprint(w, strings.TrimRight(cfg.String(), "\n")+"\n")
	return nil
}
