// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for pdfchat.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// CurrentVersion is the config schema version this build reads.
const CurrentVersion = "1"

// Config represents the complete pdfchat configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Server is the document Q&A service
	Server ServerConfig `toml:"server" json:"server"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// Log configuration
	Log LogConfig `toml:"log" json:"log"`
}

// ServerConfig describes how to reach the service.
type ServerConfig struct {
	// URL is the base URL, e.g. http://127.0.0.1:5000
	URL string `toml:"url" json:"url" validate:"required,http_url"`
	// APIKey, when set, is registered automatically at startup.
	// It is never written back by the program.
	APIKey string `toml:"api_key" json:"api_key,omitempty"`
	// UserAgent overrides the default User-Agent header
	UserAgent string `toml:"user_agent" json:"user_agent,omitempty"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme" validate:"oneof=dark light auto"`
	// LabelResetMillis is how long the "Updated" label stays after a key is saved
	LabelResetMillis int `toml:"label_reset_ms" json:"label_reset_ms" validate:"gte=0,lte=60000"`
	// DropDir is the watched drop directory; empty disables it
	DropDir string `toml:"drop_dir" json:"drop_dir"`
	// DropDebounceMillis is how long a dropped file must be quiet
	DropDebounceMillis int `toml:"drop_debounce_ms" json:"drop_debounce_ms" validate:"gte=0,lte=10000"`
	// ExportDir is where ctrl+e and /export write transcripts
	ExportDir string `toml:"export_dir" json:"export_dir"`
	// ExportFormat is "markdown" or "json"
	ExportFormat string `toml:"export_format" json:"export_format" validate:"oneof=markdown json"`
}

// LogConfig controls the log file.
type LogConfig struct {
	// File is the log path; empty disables file logging
	File string `toml:"file" json:"file"`
	// Level is debug, info, warn or error
	Level string `toml:"level" json:"level" validate:"oneof=debug info warn error"`
}

// LabelResetDelay returns LabelResetMillis as a duration.
func (u UIConfig) LabelResetDelay() time.Duration {
	return time.Duration(u.LabelResetMillis) * time.Millisecond
}

// DropDebounce returns DropDebounceMillis as a duration.
func (u UIConfig) DropDebounce() time.Duration {
	return time.Duration(u.DropDebounceMillis) * time.Millisecond
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	dir, err := ConfigDir()
	if err != nil {
		dir = ".pdfchat"
	}
	return &Config{
		Version: CurrentVersion,
		Server: ServerConfig{
			URL: "http://127.0.0.1:5000",
		},
		UI: UIConfig{
			Theme:              "auto",
			LabelResetMillis:   2000,
			DropDir:            "",
			DropDebounceMillis: 300,
			ExportDir:          filepath.Join(dir, "exports"),
			ExportFormat:       "markdown",
		},
		Log: LogConfig{
			File:  filepath.Join(dir, "pdfchat.log"),
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the pdfchat configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".pdfchat"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ensureSecurePermissions tightens a config file to 0600; it may hold a key.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0o600 {
		if err := os.Chmod(path, 0o600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// LoadDotEnv loads a .env file from the working directory into the process
// environment. Variables already set are not overridden; a missing file is
// not an error.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// Load loads ~/.pdfchat/config.toml if it exists, otherwise the defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}
	return finish(Default())
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads a specific TOML or JSON file with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and returns ValidateErrors.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	errs := make(ValidateErrors, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, ValidationError{
			Field:   fieldPath(fe.Namespace()),
			Message: describe(fe),
		})
	}
	return errs
}

// fieldPath turns "Config.UI.LabelResetMillis" into "ui.labelresetmillis".
func fieldPath(ns string) string {
	ns = strings.TrimPrefix(ns, "Config.")
	return strings.ToLower(ns)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "http_url":
		return fmt.Sprintf("must be an http(s) URL, got %q", fe.Value())
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// SetDefaults fills empty fields from Default.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Server.URL == "" {
		c.Server.URL = d.Server.URL
	}
	c.Server.URL = strings.TrimSuffix(strings.TrimSpace(c.Server.URL), "/")
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.UI.ExportFormat == "" {
		c.UI.ExportFormat = d.UI.ExportFormat
	}
	if c.UI.ExportDir == "" {
		c.UI.ExportDir = d.UI.ExportDir
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
	c.UI.DropDir = expandHome(c.UI.DropDir)
	c.UI.ExportDir = expandHome(c.UI.ExportDir)
	c.Log.File = expandHome(c.Log.File)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies PDFCHAT_* environment variables:
//   - PDFCHAT_SERVER_URL: overrides server.url
//   - PDFCHAT_API_KEY: overrides server.api_key
//   - PDFCHAT_DROP_DIR: overrides ui.drop_dir
//   - PDFCHAT_EXPORT_DIR: overrides ui.export_dir
//   - PDFCHAT_LABEL_RESET_MS: overrides ui.label_reset_ms
//   - PDFCHAT_LOG_FILE: overrides log.file
//   - PDFCHAT_LOG_LEVEL: overrides log.level
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("PDFCHAT_SERVER_URL"); v != "" {
		c.Server.URL = v
	}
	if v := os.Getenv("PDFCHAT_API_KEY"); v != "" {
		c.Server.APIKey = v
	}
	if v := os.Getenv("PDFCHAT_DROP_DIR"); v != "" {
		c.UI.DropDir = v
	}
	if v := os.Getenv("PDFCHAT_EXPORT_DIR"); v != "" {
		c.UI.ExportDir = v
	}
	if v := os.Getenv("PDFCHAT_LABEL_RESET_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			c.UI.LabelResetMillis = ms
		}
	}
	if v := os.Getenv("PDFCHAT_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("PDFCHAT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// =============================================================================
// COPY AND DISPLAY
// =============================================================================

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns the config as TOML with the API key redacted.
func (c *Config) String() string {
	safe := c.Clone()
	if safe.Server.APIKey != "" {
		safe.Server.APIKey = "[REDACTED]"
	}
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(safe); err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return sb.String()
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance, loading it on first use.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
