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

package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/sirseerhq/octopi/internal/auth"
	octoerrors "github.com/sirseerhq/octopi/internal/errors"
	"github.com/sirseerhq/octopi/internal/instrumentation"
	"github.com/sirseerhq/octopi/internal/logging"
	"github.com/sirseerhq/octopi/internal/request"
	"github.com/sirseerhq/octopi/internal/resource"
	"github.com/sirseerhq/octopi/internal/transport"
)

// Config configures a Client. Zero values select defaults.
type Config struct {
	// BaseURL is the REST endpoint. Defaults to https://api.github.com.
	BaseURL string

	// GraphQLURL is the GraphQL endpoint used by Viewer. Derived from BaseURL
	// when empty.
	GraphQLURL string

	// Auth signs requests. Defaults to auth.Default.
	Auth *auth.Context

	// Transport executes REST requests. Defaults to a transport.HTTPTransport.
	Transport transport.Transport

	// HTTPClient carries GraphQL requests. Defaults to the HTTPTransport's
	// client when Transport is nil, otherwise http.DefaultClient.
	HTTPClient *http.Client

	Logger  *slog.Logger
	Metrics *instrumentation.Metrics
	Tracer  trace.Tracer
}

// Client issues API calls on behalf of one auth.Context.
type Client struct {
	builder    *request.Builder
	auth       *auth.Context
	transport  transport.Transport
	httpClient *http.Client
	graphqlURL string
	logger     *slog.Logger
	metrics    *instrumentation.Metrics
	tracer     trace.Tracer
}

// NewClient validates cfg and returns a Client.
func NewClient(cfg Config) (*Client, error) {
	builder, err := request.NewBuilder(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		builder:    builder,
		auth:       cfg.Auth,
		transport:  cfg.Transport,
		httpClient: cfg.HTTPClient,
		graphqlURL: cfg.GraphQLURL,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		tracer:     cfg.Tracer,
	}
	if c.auth == nil {
		c.auth = auth.Default
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.tracer == nil {
		c.tracer = noop.NewTracerProvider().Tracer(instrumentation.TracerName)
	}
	if c.transport == nil {
		ht := transport.NewHTTPTransport(transport.Options{Logger: c.logger})
		c.transport = ht
		if c.httpClient == nil {
			c.httpClient = ht.Client()
		}
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	if c.graphqlURL == "" {
		c.graphqlURL = graphQLEndpoint(builder.BaseURL())
	}
	return c, nil
}

// Auth returns the context that signs this Client's requests.
func (c *Client) Auth() *auth.Context {
	return c.auth
}

// BaseURL returns the REST endpoint.
func (c *Client) BaseURL() string {
	return c.builder.BaseURL()
}

// require fails fast when operation needs a credential the context lacks.
func (c *Client) require(operation string) error {
	return c.auth.Require(operation)
}

// do builds and executes one request. The response is returned for any
// status; only transport failures are errors.
func (c *Client) do(ctx context.Context, operation, method, path string, params *request.Params, enc request.Encoding) (*transport.Response, error) {
	req, err := c.builder.Build(method, path, params, enc, c.auth)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	ctx, span := instrumentation.StartAPISpan(ctx, c.tracer, operation,
		instrumentation.NewSpanAttributeBuilder().
			WithMethod(method).
			WithAuthMode(c.authMode()).
			Build()...)
	defer span.End()

	start := time.Now()
	resp, err := c.transport.Do(ctx, req)
	elapsed := time.Since(start)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	c.metrics.RecordAPIRequest(ctx, operation, method, status, elapsed)

	logger := logging.WithOperation(c.logger, operation)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		logger.Debug("github call failed", logging.Method(method), logging.Path(req.Path), logging.Err(err))
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	logger.Debug("github call", logging.Method(method), logging.Path(req.Path), logging.Status(status), logging.Duration(elapsed))
	span.SetAttributes(attribute.Int("http.response.status_code", status))
	if status < 400 {
		instrumentation.SetSpanSuccess(span)
	}
	return resp, nil
}

// call executes a request and classifies its status, returning the body of
// a 2xx response.
func (c *Client) call(ctx context.Context, operation, method, path string, params *request.Params, enc request.Encoding) ([]byte, error) {
	resp, err := c.do(ctx, operation, method, path, params, enc)
	if err != nil {
		return nil, err
	}
	if err := octoerrors.Classify(resp.StatusCode, resp.Body); err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	return resp.Body, nil
}

// fetch GETs path and parses a single resource.
func (c *Client) fetch(ctx context.Context, operation, path string, kind resource.Kind, opts ...resource.Option) (*resource.Resource, error) {
	body, err := c.call(ctx, operation, http.MethodGet, path, nil, request.EncodingNone)
	if err != nil {
		return nil, err
	}
	r, err := resource.Parse(kind, body, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	return r, nil
}

// fetchList GETs path and parses an array of resources.
func (c *Client) fetchList(ctx context.Context, operation, path string, kind resource.Kind, opts ...resource.Option) ([]*resource.Resource, error) {
	body, err := c.call(ctx, operation, http.MethodGet, path, nil, request.EncodingNone)
	if err != nil {
		return nil, err
	}
	list, err := resource.ParseList(kind, body, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	return list, nil
}

// send issues a write and parses the response as one resource.
func (c *Client) send(ctx context.Context, operation, method, path string, params *request.Params, enc request.Encoding, kind resource.Kind, opts ...resource.Option) (*resource.Resource, error) {
	body, err := c.call(ctx, operation, method, path, params, enc)
	if err != nil {
		return nil, err
	}
	r, err := resource.Parse(kind, body, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	return r, nil
}

// resolve memoizes an association on owner and records how it was satisfied.
func resolve[T any](ctx context.Context, c *Client, owner *resource.Resource, name string, embedded bool, fetch func() (T, error)) (T, error) {
	result := instrumentation.ResolutionMemoized
	if !owner.Resolved(name) {
		result = instrumentation.ResolutionFetched
		if embedded {
			result = instrumentation.ResolutionEmbedded
		}
	}
	v, err := resource.ResolveAs(owner, name, fetch)
	if err != nil {
		result = instrumentation.ResolutionError
	}
	c.metrics.RecordAssociation(ctx, owner.Kind().String(), name, result)
	if result != instrumentation.ResolutionMemoized {
		c.logger.Debug("association resolved",
			logging.Resource(owner.String()),
			slog.String("association", name),
			slog.String("result", result),
			logging.Err(err),
		)
	}
	return v, err
}

func (c *Client) authMode() string {
	creds, ok := c.auth.Credentials()
	switch {
	case !ok:
		return "anonymous"
	case creds.Token != "":
		return "token"
	default:
		return "password"
	}
}
