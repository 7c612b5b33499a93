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

package session

import (
	"time"

	"github.com/sirseerhq/octopi/internal/auth"
)

// CurrentVersion is the session schema version.
// Increment this when making breaking changes to Session.
const CurrentVersion = 1

// Session is the persisted form of an authenticated auth.Context.
type Session struct {
	// Version indicates the schema version of this file.
	Version int `json:"version"`

	// Checksum is the SHA256 hash of the content, excluding this field.
	Checksum string `json:"checksum"`

	// Username is the basic-auth user. Empty for token sessions.
	Username string `json:"username,omitempty"`

	// Password is the basic-auth password. Mutually exclusive with Token.
	Password string `json:"password,omitempty"`

	// Token is a personal access token.
	Token string `json:"token,omitempty"`

	// Login is the account GitHub reported when the session was saved.
	Login string `json:"login"`

	// SavedAt records when the session was written.
	SavedAt time.Time `json:"saved_at"`
}

// New builds a Session for creds, verified as login.
func New(creds auth.Credentials, login string) *Session {
	return &Session{
		Username: creds.Username,
		Password: creds.Password,
		Token:    creds.Token,
		Login:    login,
		SavedAt:  time.Now().UTC(),
	}
}

// Credentials returns the stored credential.
func (s *Session) Credentials() auth.Credentials {
	return auth.Credentials{
		Username: s.Username,
		Password: s.Password,
		Token:    s.Token,
	}
}
