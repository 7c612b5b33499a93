// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration management for octopi with support
// for multiple configuration sources and a well-defined precedence order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file
//  4. Built-in defaults
//
// Files may be YAML (.yaml, .yml), TOML (.toml) or JSON with comments
// (.json, .jsonc); the extension decides. Unknown keys are rejected so a
// typo does not silently fall back to a default.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/sirseerhq/octopi/internal/auth"
	"github.com/sirseerhq/octopi/internal/instrumentation"
	"github.com/sirseerhq/octopi/internal/logging"
	"github.com/sirseerhq/octopi/internal/output"
	"github.com/sirseerhq/octopi/internal/transport"
)

// searchNames are tried, in order, in the current directory and then in
// ~/.octopi when LoadConfig is given no path.
var searchNames = []string{
	".octopi.yaml", ".octopi.yml", ".octopi.toml", ".octopi.jsonc", ".octopi.json",
}

var homeNames = []string{
	"config.yaml", "config.yml", "config.toml", "config.jsonc", "config.json",
}

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .octopi.{yaml,yml,toml,jsonc,json} (current directory)
//   - ~/.octopi/config.{yaml,yml,toml,jsonc,json}
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else if path := findConfigFile(); path != "" {
		if err := loadConfigFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	cfg.Session.Dir = expandPath(cfg.Session.Dir)
	cfg.Instrumentation.MetricsFile = expandPath(cfg.Instrumentation.MetricsFile)

	return cfg, nil
}

func findConfigFile() string {
	candidates := append([]string(nil), searchNames...)
	if home, err := os.UserHomeDir(); err == nil {
		for _, name := range homeNames {
			candidates = append(candidates, filepath.Join(home, ".octopi", name))
		}
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadConfigFile reads path and decodes it according to its extension.
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = decodeYAML(data, cfg)
	case ".toml":
		err = decodeTOML(data, cfg)
	case ".json", ".jsonc":
		// JSON is valid YAML, and the YAML decoder understands durations.
		err = decodeYAML(jsonc.ToJSON(data), cfg)
	default:
		return fmt.Errorf("unsupported config file extension %q (want .yaml, .yml, .toml, .json or .jsonc)", ext)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func decodeTOML(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if endpoint := os.Getenv("GITHUB_API_ENDPOINT"); endpoint != "" {
		cfg.GitHub.APIEndpoint = endpoint
	}
	if endpoint := os.Getenv("GITHUB_GRAPHQL_ENDPOINT"); endpoint != "" {
		cfg.GitHub.GraphQLEndpoint = endpoint
	}
	if username := os.Getenv("OCTOPI_USERNAME"); username != "" {
		cfg.Auth.Username = username
	}
	if level := os.Getenv("OCTOPI_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if format := os.Getenv("OCTOPI_OUTPUT"); format != "" {
		cfg.Output.Format = format
	}
	if dir := os.Getenv("OCTOPI_SESSION_DIR"); dir != "" {
		cfg.Session.Dir = dir
	}
	if enabled := os.Getenv("OCTOPI_INSTRUMENTATION_ENABLED"); enabled != "" {
		cfg.Instrumentation.Enabled = parseBool(enabled)
	}
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home := os.Getenv("HOME")
		if home == "" {
			home = os.Getenv("USERPROFILE") // Windows
		}
		path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return os.ExpandEnv(path)
}

// parseBool parses various boolean representations
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "yes" || s == "1" || s == "on"
}

// Credentials resolves the credential named by the auth section from the
// environment. A token wins over a password. ok is false when neither is set.
func (c *Config) Credentials() (creds auth.Credentials, ok bool) {
	if c.Auth.TokenEnv != "" {
		if token := os.Getenv(c.Auth.TokenEnv); token != "" {
			return auth.Credentials{Token: token}, true
		}
	}
	if c.Auth.Username != "" && c.Auth.PasswordEnv != "" {
		if password := os.Getenv(c.Auth.PasswordEnv); password != "" {
			return auth.Credentials{Username: c.Auth.Username, Password: password}, true
		}
	}
	return auth.Credentials{}, false
}

// SessionPath returns the session file inside Session.Dir.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Session.Dir, "session.json")
}

// TransportRetry converts the retry section.
func (c *Config) TransportRetry() *transport.RetryConfig {
	return &transport.RetryConfig{
		MaxRetries:        c.Retry.MaxRetries,
		InitialBackoff:    c.Retry.InitialBackoff,
		MaxBackoff:        c.Retry.MaxBackoff,
		BackoffMultiplier: c.Retry.BackoffMultiplier,
	}
}

// InstrumentationConfig converts the instrumentation section, starting from
// the OpenTelemetry environment defaults.
func (c *Config) InstrumentationConfig(version string) instrumentation.Config {
	ic := instrumentation.DefaultConfig()
	ic.ServiceVersion = version
	ic.Enabled = c.Instrumentation.Enabled
	if c.Instrumentation.MetricsExporter != "" {
		ic.MetricsExporter = c.Instrumentation.MetricsExporter
	}
	if c.Instrumentation.TracingExporter != "" {
		ic.TracingExporter = c.Instrumentation.TracingExporter
	}
	if c.Instrumentation.OTLPEndpoint != "" {
		ic.OTLPEndpoint = c.Instrumentation.OTLPEndpoint
	}
	ic.OTLPInsecure = ic.OTLPInsecure || c.Instrumentation.OTLPInsecure
	if c.Instrumentation.TraceSamplingRate != 0 {
		ic.TraceSamplingRate = c.Instrumentation.TraceSamplingRate
	}
	ic.MetricsFile = c.Instrumentation.MetricsFile
	return ic
}

// Validate checks if the configuration contains valid values. This should be
// called after loading configuration to catch invalid settings early.
func (c *Config) Validate() error {
	if err := validateEndpoint("GitHub API endpoint", c.GitHub.APIEndpoint, true); err != nil {
		return err
	}
	if err := validateEndpoint("GitHub GraphQL endpoint", c.GitHub.GraphQLEndpoint, false); err != nil {
		return err
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http timeout must be positive, got: %s", c.HTTP.Timeout)
	}
	if c.HTTP.MaxResponseBytes < 0 {
		return fmt.Errorf("max response bytes cannot be negative, got: %d", c.HTTP.MaxResponseBytes)
	}
	if c.Retry.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative, got: %d", c.Retry.MaxRetries)
	}
	if c.Retry.MaxRetries > 0 {
		if c.Retry.InitialBackoff <= 0 || c.Retry.MaxBackoff < c.Retry.InitialBackoff {
			return fmt.Errorf("retry backoff must satisfy 0 < initial (%s) <= max (%s)",
				c.Retry.InitialBackoff, c.Retry.MaxBackoff)
		}
		if c.Retry.BackoffMultiplier < 1 {
			return fmt.Errorf("backoff multiplier must be at least 1, got: %g", c.Retry.BackoffMultiplier)
		}
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch logging.Format(c.Logging.Format) {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.Logging.Format)
	}
	if _, err := output.ParseFormat(c.Output.Format); err != nil {
		return err
	}
	if c.Session.Dir == "" {
		return fmt.Errorf("session directory cannot be empty")
	}
	if c.Instrumentation.Enabled {
		ic := c.InstrumentationConfig("")
		if err := ic.Validate(); err != nil {
			return fmt.Errorf("instrumentation: %w", err)
		}
	}
	return nil
}

func validateEndpoint(name, raw string, required bool) error {
	if raw == "" {
		if required {
			return fmt.Errorf("%s cannot be empty", name)
		}
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s %q is not a valid URL: %w", name, raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s %q must be an absolute http(s) URL", name, raw)
	}
	return nil
}
