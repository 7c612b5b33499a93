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
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/sirseerhq/octopi/internal/giterror"
	"github.com/sirseerhq/octopi/internal/logging"
)

// RetryConfig configures retries of transient failures.
type RetryConfig struct {
	// MaxRetries is the number of attempts after the first. Zero disables retries.
	MaxRetries int
	// InitialBackoff is the wait before the first retry.
	InitialBackoff time.Duration
	// MaxBackoff caps any single wait.
	MaxBackoff time.Duration
	// BackoffMultiplier grows the wait between attempts.
	BackoffMultiplier float64
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:        3,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// backoff returns the wait before retry number attempt (0-based), with ±10%
// jitter.
func (c *RetryConfig) backoff(attempt int) time.Duration {
	d := float64(c.InitialBackoff) * math.Pow(c.BackoffMultiplier, float64(attempt))
	if d > float64(c.MaxBackoff) {
		d = float64(c.MaxBackoff)
	}
	d += d * 0.1 * (2*rand.Float64() - 1)
	return time.Duration(d)
}

// limitedReader fails reads past limit instead of truncating silently.
type limitedReader struct {
	io.ReadCloser
	limit int64
	read  int64
}

func (lr *limitedReader) Read(p []byte) (int, error) {
	if lr.read >= lr.limit {
		return 0, fmt.Errorf("response size exceeded limit of %d bytes", lr.limit)
	}

	remaining := lr.limit - lr.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err := lr.ReadCloser.Read(p)
	lr.read += int64(n)
	return n, err
}

// userAgentTransport identifies the client and caps response bodies.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
	limit     int64
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.Body != nil {
		resp.Body = &limitedReader{ReadCloser: resp.Body, limit: t.limit}
	}
	return resp, nil
}

// retryTransport retries retryable network errors and gateway statuses with
// exponential backoff. POST and PATCH are sent once.
type retryTransport struct {
	base      http.RoundTripper
	config    *RetryConfig
	inspector giterror.Inspector
	logger    *slog.Logger
}

func newRetryTransport(base http.RoundTripper, config *RetryConfig, logger *slog.Logger) http.RoundTripper {
	return &retryTransport{
		base:      base,
		config:    config,
		inspector: giterror.NewInspector(),
		logger:    logger,
	}
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if !isIdempotent(req.Method) {
		return t.base.RoundTrip(req)
	}
	attempts := t.config.MaxRetries + 1

	for attempt := 0; ; attempt++ {
		cloned := req.Clone(ctx)
		if req.GetBody != nil && req.Body != nil && req.Body != http.NoBody {
			body, err := req.GetBody()
			if err != nil {
				return nil, pkgerrors.Wrap(err, "rewind request body")
			}
			cloned.Body = body
		}

		resp, err := t.base.RoundTrip(cloned)
		if err == nil && !isRetryableStatusCode(resp.StatusCode) {
			return resp, nil
		}
		if err != nil && !t.inspector.IsRetryable(err) {
			return nil, err
		}

		last := attempt+1 >= attempts
		if err == nil {
			// Out of retries: hand back the gateway response for the caller to classify.
			if last {
				return resp, nil
			}
			resp.Body.Close()
		} else if last {
			return nil, giterror.WithUserAction(
				giterror.WithRetryInfo(err, attempt+1, attempts),
				"Network connection failed. Please check your internet connection and try again")
		}

		wait := t.config.backoff(attempt)
		t.logger.Warn("retrying github request",
			logging.Method(req.Method),
			slog.String("url", req.URL.Redacted()),
			slog.Int(logging.KeyAttempt, attempt+1),
			logging.Duration(wait),
			logging.Err(err),
		)

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// isIdempotent reports whether repeating a request with method cannot create
// a second resource.
func isIdempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete, http.MethodOptions:
		return true
	default:
		return false
	}
}

// isRetryableStatusCode checks if an HTTP status code should trigger a retry.
func isRetryableStatusCode(code int) bool {
	switch code {
	case http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
