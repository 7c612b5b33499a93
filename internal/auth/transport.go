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

package auth

import "net/http"

// Transport returns a RoundTripper that signs each request with the credential
// active at send time. Clients that do not go through the request builder (the
// GraphQL client) use it so they share the same Context.
func (c *Context) Transport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &signingTransport{auth: c, base: base}
}

type signingTransport struct {
	auth *Context
	base http.RoundTripper
}

// RoundTrip implements http.RoundTripper
func (t *signingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	req = req.Clone(req.Context())
	if err := t.auth.Apply(req.URL, req.Header); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}
