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
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sync"

	"github.com/sirseerhq/octopi/internal/request"
)

// ErrUnstubbed is returned by Mock for a request no stub matches.
var ErrUnstubbed = errors.New("no stub registered for request")

// Stub is a canned response for one method and URL. The URL is compared in
// full, userinfo and query included.
type Stub struct {
	Method string
	URL    string
	Status int
	Header http.Header
	Body   []byte
	Err    error
}

// Mock is an in-memory Transport. Later stubs take precedence over earlier
// ones for the same method and URL. It is safe for concurrent use.
type Mock struct {
	mu       sync.Mutex
	stubs    []*Stub
	requests []*request.Request
}

// NewMock returns a Mock with no stubs.
func NewMock() *Mock {
	return &Mock{}
}

// Stub registers a response with a string body.
func (m *Mock) Stub(method, rawURL string, status int, body string) *Stub {
	return m.add(&Stub{Method: method, URL: rawURL, Status: status, Body: []byte(body)})
}

// StubFile registers a response whose body is read from path.
func (m *Mock) StubFile(method, rawURL string, status int, path string) (*Stub, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stub fixture: %w", err)
	}
	return m.add(&Stub{Method: method, URL: rawURL, Status: status, Body: body}), nil
}

// StubError makes requests to method and URL fail without a response.
func (m *Mock) StubError(method, rawURL string, err error) *Stub {
	return m.add(&Stub{Method: method, URL: rawURL, Err: err})
}

func (m *Mock) add(s *Stub) *Stub {
	s.URL = normalizeURL(s.URL)
	if s.Header == nil {
		s.Header = make(http.Header)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stubs = append(m.stubs, s)
	return s
}

// Do records req and answers it from the most recent matching stub.
func (m *Mock) Do(ctx context.Context, req *request.Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, transportError(req, err)
	}

	key := req.URL.String()

	m.mu.Lock()
	m.requests = append(m.requests, req)
	var stub *Stub
	for i := len(m.stubs) - 1; i >= 0; i-- {
		if s := m.stubs[i]; s.Method == req.Method && s.URL == key {
			stub = s
			break
		}
	}
	m.mu.Unlock()

	if stub == nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Redacted(), ErrUnstubbed)
	}
	if stub.Err != nil {
		return nil, transportError(req, stub.Err)
	}
	return &Response{
		StatusCode: stub.Status,
		Header:     stub.Header.Clone(),
		Body:       append([]byte(nil), stub.Body...),
	}, nil
}

// Requests returns every request received, in order.
func (m *Mock) Requests() []*request.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*request.Request(nil), m.requests...)
}

// LastRequest returns the most recent request, or nil.
func (m *Mock) LastRequest() *request.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return nil
	}
	return m.requests[len(m.requests)-1]
}

// CallCount returns the number of requests received.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Count returns how many requests matched method and URL.
func (m *Mock) Count(method, rawURL string) int {
	key := normalizeURL(rawURL)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.requests {
		if r.Method == method && r.URL.String() == key {
			n++
		}
	}
	return n
}

// Reset drops all stubs and recorded requests.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stubs = nil
	m.requests = nil
}

func normalizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.String()
}
