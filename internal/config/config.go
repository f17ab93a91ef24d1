// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/carter/internal/completion"
	"github.com/jeranaias/carter/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete carter configuration.
type Config struct {
	API APIConfig `toml:"api" json:"api"`
	UI  UIConfig  `toml:"ui" json:"ui"`
	Log LogConfig `toml:"log" json:"log"`
}

// APIConfig contains completion endpoint settings.
type APIConfig struct {
	// Key is the bearer credential sent with every request.
	Key string `toml:"key" json:"key"`
	// Endpoint is the URL prompts are POSTed to.
	Endpoint string `toml:"endpoint" json:"endpoint"`
	// TimeoutSecs bounds each request. 0 means wait indefinitely.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
}

// UIConfig contains TUI settings.
type UIConfig struct {
	// Theme is "auto", "dark" or "light".
	Theme string `toml:"theme" json:"theme"`
	// BubbleWidth is the maximum width of a message bubble in columns.
	BubbleWidth int `toml:"bubble_width" json:"bubble_width"`
}

// LogConfig contains debug logging settings.
type LogConfig struct {
	// File receives log output. Empty means ~/.carter/carter.log when Debug is set.
	File  string `toml:"file" json:"file"`
	Debug bool   `toml:"debug" json:"debug"`
}

// Bubble width limits.
const (
	DefaultBubbleWidth = 50
	MinBubbleWidth     = 20
	MaxBubbleWidth     = 200
)

// ValidThemes lists the accepted ui.theme values.
var ValidThemes = []string{"auto", "dark", "light"}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Endpoint:    completion.DefaultEndpoint,
			TimeoutSecs: 0,
		},
		UI: UIConfig{
			Theme:       "auto",
			BubbleWidth: DefaultBubbleWidth,
		},
	}
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSecs) * time.Second
}

// LogPath returns where debug logs are written, or "" when logging is off.
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	if !c.Log.Debug {
		return ""
	}
	dir, err := ConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "carter.log")
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the carter configuration directory path.
func ConfigDir() (string, error) {
	if dir := os.Getenv("CARTER_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".carter"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ActivePath returns the config file Load would read: the TOML file if it
// exists, else the JSON file if it exists, else the TOML path.
func ActivePath() (string, error) {
	tomlPath, err := ConfigPathTOML()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath, nil
	}
	jsonPath, err := ConfigPathJSON()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath, nil
	}
	return tomlPath, nil
}

// ensureSecurePermissions tightens config files to 0600 since they hold the API key.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if mode := info.Mode().Perm(); mode != FilePerm {
		if err := os.Chmod(path, FilePerm); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config directory.
// Tries TOML first, then JSON, and falls back to defaults.
// .env and environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ActivePath()
	if err != nil {
		return finish(Default())
	}
	if _, statErr := os.Stat(path); statErr != nil {
		return finish(Default())
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific file path with full validation.
// Files ending in .json are decoded as JSON, anything else as TOML.
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

// finish applies .env, environment overrides and defaults, then validates.
func finish(cfg *Config) (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file into cfg.
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

// LoadDotEnv loads the given .env files (default: ./.env) into the process
// environment. Variables already set are left alone and missing files are
// not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Permissions for files carter writes under its config directory.
const (
	DirPerm  os.FileMode = 0700
	FilePerm os.FileMode = 0600
)

const tomlHeader = `# carter configuration file
#
# api.key may be left empty and supplied through CARTER_API_KEY or
# OPENAI_API_KEY instead.

`

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration atomically with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf strings.Builder
	buf.WriteString(tomlHeader)
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFileWithDir(path, []byte(buf.String()), FilePerm, DirPerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes the configuration atomically with 0600 permissions.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFileWithDir(path, data, FilePerm, DirPerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
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
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration and returns every problem found.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.API.Endpoint); err != nil || !u.IsAbs() || u.Host == "" {
		errs = append(errs, ValidationError{"api.endpoint", fmt.Sprintf("must be an absolute URL, got %q", c.API.Endpoint)})
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, ValidationError{"api.endpoint", fmt.Sprintf("scheme must be http or https, got %q", u.Scheme)})
	}

	if c.API.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{"api.timeout_secs", "must not be negative"})
	}

	if c.UI.BubbleWidth < MinBubbleWidth || c.UI.BubbleWidth > MaxBubbleWidth {
		errs = append(errs, ValidationError{"ui.bubble_width",
			fmt.Sprintf("must be between %d and %d, got %d", MinBubbleWidth, MaxBubbleWidth, c.UI.BubbleWidth)})
	}

	validTheme := false
	for _, t := range ValidThemes {
		if c.UI.Theme == t {
			validTheme = true
			break
		}
	}
	if !validTheme {
		errs = append(errs, ValidationError{"ui.theme",
			fmt.Sprintf("must be one of %s, got %q", strings.Join(ValidThemes, ", "), c.UI.Theme)})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero values that a partial config file leaves behind.
func (c *Config) SetDefaults() {
	defaults := Default()
	if c.API.Endpoint == "" {
		c.API.Endpoint = defaults.API.Endpoint
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.BubbleWidth == 0 {
		c.UI.BubbleWidth = defaults.UI.BubbleWidth
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//   - CARTER_API_KEY: overrides api.key (OPENAI_API_KEY is used if unset)
//   - CARTER_ENDPOINT: overrides api.endpoint
//   - CARTER_TIMEOUT: overrides api.timeout_secs
//   - CARTER_LOG_FILE: overrides log.file
func (c *Config) ApplyEnvOverrides() {
	if key := os.Getenv("CARTER_API_KEY"); key != "" {
		c.API.Key = key
	} else if key := os.Getenv("OPENAI_API_KEY"); key != "" && c.API.Key == "" {
		c.API.Key = key
	}

	if endpoint := os.Getenv("CARTER_ENDPOINT"); endpoint != "" {
		c.API.Endpoint = endpoint
	}

	if timeout := os.Getenv("CARTER_TIMEOUT"); timeout != "" {
		if secs, err := strconv.Atoi(timeout); err == nil {
			c.API.TimeoutSecs = secs
		} else {
			fmt.Fprintf(os.Stderr, "Warning: ignoring CARTER_TIMEOUT=%q: not an integer\n", timeout)
		}
	}

	if logFile := os.Getenv("CARTER_LOG_FILE"); logFile != "" {
		c.Log.File = logFile
	}
}

// =============================================================================
// DISPLAY
// =============================================================================

// Clone returns a copy of the config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns the config as TOML with the API key redacted.
func (c *Config) String() string {
	safe := c.Clone()
	if safe.API.Key != "" {
		safe.API.Key = "[REDACTED]"
	}

	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(safe); err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return buf.String()
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
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

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
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
