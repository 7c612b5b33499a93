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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/sirseerhq/octopi/internal/auth"
	"github.com/sirseerhq/octopi/internal/config"
	"github.com/sirseerhq/octopi/internal/github"
	"github.com/sirseerhq/octopi/internal/instrumentation"
	"github.com/sirseerhq/octopi/internal/logging"
	"github.com/sirseerhq/octopi/internal/output"
	"github.com/sirseerhq/octopi/internal/session"
	"github.com/sirseerhq/octopi/internal/transport"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	username   string
	password   string
	token      string
	output     string
	outputFile string
	logLevel   string
	logFormat  string
}

func (f *globalFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "Path to a config file (yaml, toml or jsonc)")
	fs.StringVarP(&f.username, "username", "u", "", "GitHub username for basic authentication")
	fs.StringVarP(&f.password, "password", "p", "", "GitHub password for basic authentication")
	fs.StringVar(&f.token, "token", "", "GitHub personal access token")
	fs.StringVarP(&f.output, "output", "o", "", "Output format: ndjson, pretty or yaml")
	fs.StringVar(&f.outputFile, "output-file", "", "Write records to this file instead of stdout")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	fs.StringVar(&f.logFormat, "log-format", "", "Log format: text or json")
}

// credentials returns the credential given on the command line, if any.
func (f *globalFlags) credentials() (auth.Credentials, bool, error) {
	switch {
	case f.token != "" && (f.username != "" || f.password != ""):
		return auth.Credentials{}, false, fmt.Errorf("--token cannot be combined with --username or --password")
	case f.token != "":
		return auth.Credentials{Token: f.token}, true, nil
	case f.username != "" || f.password != "":
		creds := auth.Credentials{Username: f.username, Password: f.password}
		if err := creds.Validate(); err != nil {
			return auth.Credentials{}, false, fmt.Errorf("--username and --password must be used together: %w", err)
		}
		return creds, true, nil
	}
	return auth.Credentials{}, false, nil
}

// app holds what one invocation builds from its flags and config.
type app struct {
	flags  globalFlags
	stdout io.Writer
	stderr io.Writer

	cfg      *config.Config
	logger   *slog.Logger
	provider *instrumentation.Provider
	auth     *auth.Context
	client   *github.Client
	out      output.RecordWriter

	// explicit is set when the credential came from flags or the environment
	// rather than the saved session.
	explicit bool
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr}
}

// setup loads configuration and builds the client. Flags override the
// config file and environment.
func (a *app) setup(ctx context.Context) error {
	cfg, err := config.LoadConfig(a.flags.configPath)
	if err != nil {
		return err
	}
	if a.flags.username != "" {
		cfg.Auth.Username = a.flags.username
	}
	if a.flags.output != "" {
		cfg.Output.Format = a.flags.output
	}
	if a.flags.logLevel != "" {
		cfg.Logging.Level = a.flags.logLevel
	}
	if a.flags.logFormat != "" {
		cfg.Logging.Format = a.flags.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	a.logger, err = logging.New(a.stderr, level, logging.Format(cfg.Logging.Format))
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	var w *output.Writer
	if a.flags.outputFile != "" {
		w, err = output.NewFileWriter(a.flags.outputFile, format)
	} else {
		w, err = output.NewWriter(a.stdout, format)
	}
	if err != nil {
		return err
	}
	a.out = w

	a.provider, err = instrumentation.NewProvider(ctx, cfg.InstrumentationConfig(version))
	if err != nil {
		return fmt.Errorf("failed to initialize instrumentation: %w", err)
	}

	if err := a.authenticate(); err != nil {
		return err
	}

	ht := transport.NewHTTPTransport(transport.Options{
		Timeout:          cfg.HTTP.Timeout,
		UserAgent:        "octopi/" + version,
		MaxResponseBytes: cfg.HTTP.MaxResponseBytes,
		Retry:            cfg.TransportRetry(),
		Logger:           a.logger,
		TracerProvider:   a.provider.TracerProvider(),
		MeterProvider:    a.provider.MeterProvider(),
	})

	a.client, err = github.NewClient(github.Config{
		BaseURL:    cfg.GitHub.APIEndpoint,
		GraphQLURL: cfg.GitHub.GraphQLEndpoint,
		Auth:       a.auth,
		Transport:  ht,
		HTTPClient: ht.Client(),
		Logger:     a.logger,
		Metrics:    a.provider.Metrics(),
		Tracer:     a.provider.Tracer(),
	})
	return err
}

// authenticate picks the first credential source that is set: flags, the
// environment variables named by the config, then the saved session.
func (a *app) authenticate() error {
	a.auth = auth.New()

	creds, ok, err := a.flags.credentials()
	if err != nil {
		return err
	}
	if !ok {
		creds, ok = a.cfg.Credentials()
	}
	if ok {
		a.explicit = true
		return a.auth.Authenticate(creds)
	}

	s, err := session.Restore(a.auth, a.cfg.SessionPath())
	if err != nil {
		a.logger.Warn("ignoring saved session", logging.Err(err))
		return nil
	}
	if s != nil {
		a.logger.Debug("restored session", slog.String("login", s.Login))
	}
	return nil
}

// write prints each record in the configured format.
func write[T any](a *app, records ...T) error {
	for _, r := range records {
		if err := a.out.Write(r); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// close flushes output and instrumentation. It is safe to call when setup
// never ran.
func (a *app) close(ctx context.Context) error {
	var errs []error
	if a.out != nil {
		errs = append(errs, a.out.Close())
	}
	if a.provider != nil {
		errs = append(errs, a.provider.WriteMetrics(""))
		errs = append(errs, a.provider.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
