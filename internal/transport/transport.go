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

package transport

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	pkgerrors "github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	octoerrors "github.com/sirseerhq/octopi/internal/errors"
	"github.com/sirseerhq/octopi/internal/logging"
	"github.com/sirseerhq/octopi/internal/request"
)

// DefaultMaxResponseBytes caps how much of a response body is read.
const DefaultMaxResponseBytes = 10 * 1024 * 1024

// Response is a received HTTP response with its body fully read.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport executes one request and returns the response for any status.
type Transport interface {
	Do(ctx context.Context, req *request.Request) (*Response, error)
}

// Options configures an HTTPTransport. Zero values select defaults.
type Options struct {
	// Timeout bounds one attempt, including reading the body.
	Timeout time.Duration

	// UserAgent is sent on every request.
	UserAgent string

	// MaxResponseBytes caps the body size. Defaults to DefaultMaxResponseBytes.
	MaxResponseBytes int64

	// Retry controls retries of 502/503/504 and retryable network errors.
	// A nil Retry uses DefaultRetryConfig.
	Retry *RetryConfig

	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider

	// Base is the innermost RoundTripper. Defaults to a pooled http.Transport.
	Base http.RoundTripper
}

// HTTPTransport is the production Transport.
type HTTPTransport struct {
	client *http.Client
	logger *slog.Logger
}

// NewHTTPTransport layers, from the outside in: retries, user agent and body
// limit, OpenTelemetry client instrumentation, then opts.Base.
func NewHTTPTransport(opts Options) *HTTPTransport {
	if opts.UserAgent == "" {
		opts.UserAgent = "octopi"
	}
	if opts.MaxResponseBytes <= 0 {
		opts.MaxResponseBytes = DefaultMaxResponseBytes
	}
	if opts.Retry == nil {
		opts.Retry = DefaultRetryConfig()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	base := opts.Base
	if base == nil {
		base = &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			ForceAttemptHTTP2:   true,
		}
	}

	var otelOpts []otelhttp.Option
	if opts.TracerProvider != nil {
		otelOpts = append(otelOpts, otelhttp.WithTracerProvider(opts.TracerProvider))
	}
	if opts.MeterProvider != nil {
		otelOpts = append(otelOpts, otelhttp.WithMeterProvider(opts.MeterProvider))
	}
	instrumented := otelhttp.NewTransport(base, otelOpts...)

	rt := newRetryTransport(&userAgentTransport{
		base:      instrumented,
		userAgent: opts.UserAgent,
		limit:     opts.MaxResponseBytes,
	}, opts.Retry, opts.Logger)

	return &HTTPTransport{
		client: &http.Client{Transport: rt, Timeout: opts.Timeout},
		logger: opts.Logger,
	}
}

// Client returns the underlying *http.Client, for callers that speak other
// protocols over the same stack.
func (t *HTTPTransport) Client() *http.Client {
	return t.client
}

// Do executes req. Errors before a response is received are wrapped in
// *errors.TransportError.
func (t *HTTPTransport) Do(ctx context.Context, req *request.Request) (*Response, error) {
	httpReq, err := req.HTTPRequest(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, transportError(req, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(req, pkgerrors.Wrap(err, "read response body"))
	}

	t.logger.Debug("github request",
		logging.Method(req.Method),
		logging.Path(req.Path),
		logging.Status(resp.StatusCode),
		logging.Duration(time.Since(start)),
	)

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

func transportError(req *request.Request, err error) error {
	return &octoerrors.TransportError{
		Method: req.Method,
		URL:    req.URL.Redacted(),
		Err:    err,
	}
}
