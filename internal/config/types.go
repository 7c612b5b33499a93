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

// Package config types define the configuration structures used throughout
// octopi. These types represent settings that can be loaded from YAML, TOML
// or JSON-with-comments files, environment variables, or command-line flags.
package config

import "time"

// Config represents the complete configuration for octopi.
type Config struct {
	GitHub          GitHubConfig          `yaml:"github" toml:"github"`
	Auth            AuthConfig            `yaml:"auth" toml:"auth"`
	HTTP            HTTPConfig            `yaml:"http" toml:"http"`
	Retry           RetryConfig           `yaml:"retry" toml:"retry"`
	Logging         LoggingConfig         `yaml:"logging" toml:"logging"`
	Output          OutputConfig          `yaml:"output" toml:"output"`
	Instrumentation InstrumentationConfig `yaml:"instrumentation" toml:"instrumentation"`
	Session         SessionConfig         `yaml:"session" toml:"session"`
}

// GitHubConfig holds the API endpoints. GraphQLEndpoint is derived from
// APIEndpoint when empty, which is what GitHub Enterprise installs need.
type GitHubConfig struct {
	APIEndpoint     string `yaml:"api_endpoint" toml:"api_endpoint"`
	GraphQLEndpoint string `yaml:"graphql_endpoint" toml:"graphql_endpoint"`
}

// AuthConfig names where credentials come from. Secrets never live in the
// file itself, only the names of the environment variables holding them.
type AuthConfig struct {
	Username    string `yaml:"username" toml:"username"`
	PasswordEnv string `yaml:"password_env" toml:"password_env"`
	TokenEnv    string `yaml:"token_env" toml:"token_env"`
}

// HTTPConfig tunes the REST transport.
type HTTPConfig struct {
	Timeout          time.Duration `yaml:"timeout" toml:"timeout"`
	MaxResponseBytes int64         `yaml:"max_response_bytes" toml:"max_response_bytes"`
}

// RetryConfig controls retries of gateway errors and network failures.
type RetryConfig struct {
	MaxRetries        int           `yaml:"max_retries" toml:"max_retries"`
	InitialBackoff    time.Duration `yaml:"initial_backoff" toml:"initial_backoff"`
	MaxBackoff        time.Duration `yaml:"max_backoff" toml:"max_backoff"`
	BackoffMultiplier float64       `yaml:"backoff_multiplier" toml:"backoff_multiplier"`
}

// LoggingConfig selects the slog level and handler.
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// OutputConfig selects how commands print resources.
type OutputConfig struct {
	Format string `yaml:"format" toml:"format"`
}

// InstrumentationConfig mirrors instrumentation.Config.
type InstrumentationConfig struct {
	Enabled           bool    `yaml:"enabled" toml:"enabled"`
	MetricsExporter   string  `yaml:"metrics_exporter" toml:"metrics_exporter"`
	TracingExporter   string  `yaml:"tracing_exporter" toml:"tracing_exporter"`
	OTLPEndpoint      string  `yaml:"otlp_endpoint" toml:"otlp_endpoint"`
	OTLPInsecure      bool    `yaml:"otlp_insecure" toml:"otlp_insecure"`
	TraceSamplingRate float64 `yaml:"trace_sampling_rate" toml:"trace_sampling_rate"`
	MetricsFile       string  `yaml:"metrics_file" toml:"metrics_file"`
}

// SessionConfig locates the saved login.
type SessionConfig struct {
	Dir string `yaml:"dir" toml:"dir"`
}

// DefaultConfig returns a Config with defaults suitable for github.com.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIEndpoint: "https://api.github.com",
		},
		Auth: AuthConfig{
			PasswordEnv: "OCTOPI_PASSWORD",
			TokenEnv:    "GITHUB_TOKEN",
		},
		HTTP: HTTPConfig{
			Timeout:          30 * time.Second,
			MaxResponseBytes: 10 << 20,
		},
		Retry: RetryConfig{
			MaxRetries:        3,
			InitialBackoff:    time.Second,
			MaxBackoff:        30 * time.Second,
			BackoffMultiplier: 2.0,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
		Output: OutputConfig{
			Format: "ndjson",
		},
		Instrumentation: InstrumentationConfig{
			MetricsExporter:   "prometheus",
			TracingExporter:   "none",
			TraceSamplingRate: 1.0,
		},
		Session: SessionConfig{
			Dir: "~/.octopi",
		},
	}
}
