// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for pdfchat.
//
// # Key Types
//
//   - Config: main configuration structure
//   - ServerConfig: service URL and optional startup key
//   - UIConfig: label timing, drop directory, export settings
//   - LogConfig: log file and level
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command line flags (applied by the cli package)
//   - Environment variables (PDFCHAT_*), including those from ./.env
//   - ~/.pdfchat/config.toml
//   - Built-in defaults
//
// # Usage
//
//	_ = config.LoadDotEnv()
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, _ := backend.New(cfg.Server.URL)
package config
