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

package request

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirseerhq/octopi/internal/auth"
)

// DefaultBaseURL is the public GitHub REST endpoint.
const DefaultBaseURL = "https://api.github.com"

// mediaType is sent as Accept on every request.
const mediaType = "application/vnd.github+json"

// Request is a fully formed, not yet executed HTTP request.
type Request struct {
	Method string
	URL    *url.URL
	Header http.Header
	Body   []byte

	// Path is the API path the request was built from, without base URL or
	// query. It is what logs and metrics report.
	Path string
}

// HTTPRequest converts r into an *http.Request bound to ctx.
func (r *Request) HTTPRequest(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	if len(r.Body) > 0 {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", r.Method, err)
	}
	req.Header = r.Header.Clone()
	return req, nil
}

// String renders the method and URL with credentials redacted.
func (r *Request) String() string {
	return r.Method + " " + r.URL.Redacted()
}

// Builder composes requests against one API base URL.
type Builder struct {
	base *url.URL
}

// NewBuilder returns a Builder rooted at baseURL, e.g. "https://api.github.com"
// or "https://github.example.com/api/v3".
func NewBuilder(baseURL string) (*Builder, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base URL %q: %w", baseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q must use http or https", baseURL)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("base URL %q has no host", baseURL)
	}
	return &Builder{base: base}, nil
}

// BaseURL returns the base URL requests are built against.
func (b *Builder) BaseURL() string {
	return b.base.String()
}

// Build creates a request for method and path. With EncodingNone, params go in
// the query string; otherwise they become the body in the chosen encoding. The
// credential in ac, if any, is applied.
func (b *Builder) Build(method, path string, params *Params, enc Encoding, ac *auth.Context) (*Request, error) {
	if method == "" {
		return nil, fmt.Errorf("build request: method is required")
	}
	path = strings.Trim(path, "/")
	if path == "" {
		return nil, fmt.Errorf("build %s request: path is required", method)
	}

	u := b.base.JoinPath(path)
	header := make(http.Header)
	header.Set("Accept", mediaType)

	req := &Request{
		Method: method,
		URL:    u,
		Header: header,
		Path:   path,
	}

	switch enc {
	case EncodingNone:
		if params != nil && params.Len() > 0 {
			u.RawQuery = EncodeForm(params)
		}
	case EncodingJSON:
		body, err := EncodeJSON(params)
		if err != nil {
			return nil, fmt.Errorf("build %s %s: %w", method, path, err)
		}
		req.Body = body
		header.Set("Content-Type", enc.ContentType())
	case EncodingForm:
		req.Body = []byte(EncodeForm(params))
		header.Set("Content-Type", enc.ContentType())
	default:
		return nil, fmt.Errorf("build %s %s: unsupported encoding %s", method, path, enc)
	}

	if err := ac.Apply(u, header); err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	return req, nil
}
