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

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"golang.org/x/oauth2"

	octoerrors "github.com/sirseerhq/octopi/internal/errors"
)

// Credentials identify the caller. Exactly one of Password or Token must be set.
type Credentials struct {
	Username string
	Password string
	Token    string
}

// Validate reports whether the credential can sign a request.
func (c Credentials) Validate() error {
	switch {
	case c.Password != "" && c.Token != "":
		return errors.New("auth: password and token are mutually exclusive")
	case c.Password != "" && c.Username == "":
		return errors.New("auth: password authentication requires a username")
	case c.Password == "" && c.Token == "":
		return errors.New("auth: a password or a token is required")
	}
	return nil
}

// Context holds zero or one active credential.
type Context struct {
	mu     sync.RWMutex
	creds  *Credentials
	tokens oauth2.TokenSource
}

// New returns an unauthenticated Context.
func New() *Context {
	return &Context{}
}

// Default is the process-wide authentication context.
var Default = New()

// Authenticate replaces the active credential. It never touches the network.
func (c *Context) Authenticate(creds Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.creds = &creds
	c.tokens = nil
	if creds.Token != "" {
		c.tokens = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: creds.Token})
	}
	return nil
}

// IsAuthenticated reports whether a credential is set.
func (c *Context) IsAuthenticated() bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.creds != nil
}

// Clear removes the active credential.
func (c *Context) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.creds = nil
	c.tokens = nil
}

// Username returns the login of the active credential, or "" when unknown.
func (c *Context) Username() string {
	if c == nil {
		return ""
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.creds == nil {
		return ""
	}
	return c.creds.Username
}

// Credentials returns a copy of the active credential.
func (c *Context) Credentials() (Credentials, bool) {
	if c == nil {
		return Credentials{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.creds == nil {
		return Credentials{}, false
	}
	return *c.creds, true
}

// Require fails with ErrNotAuthenticated when no credential is set. Protected
// operations call it before building a request.
func (c *Context) Require(operation string) error {
	if !c.IsAuthenticated() {
		return octoerrors.NotAuthenticated(operation)
	}
	return nil
}

// Apply signs a request. Password credentials are embedded as URL userinfo and
// sent as basic auth; token credentials go in the Authorization header. An
// unauthenticated Context leaves both untouched.
func (c *Context) Apply(u *url.URL, header http.Header) error {
	if c == nil {
		return nil
	}

	c.mu.RLock()
	creds, tokens := c.creds, c.tokens
	c.mu.RUnlock()

	if creds == nil {
		return nil
	}

	if tokens != nil {
		tok, err := tokens.Token()
		if err != nil {
			return fmt.Errorf("auth: token source: %w", err)
		}
		header.Set("Authorization", tok.Type()+" "+tok.AccessToken)
		return nil
	}

	u.User = url.UserPassword(creds.Username, creds.Password)
	header.Set("Authorization", "Basic "+basicAuth(creds.Username, creds.Password))
	return nil
}

func basicAuth(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}

// String never includes secrets.
func (c *Context) String() string {
	creds, ok := c.Credentials()
	switch {
	case !ok:
		return "anonymous"
	case creds.Token != "":
		if creds.Username == "" {
			return "token"
		}
		return creds.Username + " (token)"
	default:
		return creds.Username + " (password)"
	}
}

// Authenticate sets the credential on Default.
func Authenticate(creds Credentials) error {
	return Default.Authenticate(creds)
}

// IsAuthenticated reports whether Default holds a credential.
func IsAuthenticated() bool {
	return Default.IsAuthenticated()
}

// Clear removes the credential from Default.
func Clear() {
	Default.Clear()
}
