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
	"fmt"
	"testing"

	octoerrors "github.com/sirseerhq/octopi/internal/errors"
	"github.com/sirseerhq/octopi/internal/giterror"
)

func TestMapErrorToExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "not authenticated", err: octoerrors.NotAuthenticated("star_gist"), want: 2},
		{name: "not found", err: &octoerrors.APIError{Kind: octoerrors.KindNotFound, StatusCode: 404}, want: 2},
		{name: "validation", err: &octoerrors.APIError{Kind: octoerrors.KindValidation, StatusCode: 422}, want: 2},
		{name: "forbidden", err: &octoerrors.APIError{Kind: octoerrors.KindNotAuthenticated, StatusCode: 403}, want: 2},
		{name: "unexpected status", err: &octoerrors.APIError{Kind: octoerrors.KindUnexpectedStatus, StatusCode: 500}, want: 1},
		{name: "transport", err: &octoerrors.TransportError{Method: "GET", URL: "https://api.github.com/user", Err: fmt.Errorf("dial tcp: connection refused")}, want: 3},
		{name: "wrapped auth with hint", err: giterror.WithUserAction(fmt.Errorf("viewer: %w", octoerrors.ErrNotAuthenticated), "log in"), want: 2},
		{name: "generic", err: fmt.Errorf("something else"), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapErrorToExitCode(tt.err); got != tt.want {
				t.Errorf("mapErrorToExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestGlobalFlagsCredentials(t *testing.T) {
	tests := []struct {
		name      string
		flags     globalFlags
		wantOK    bool
		wantToken string
		wantUser  string
		wantErr   bool
	}{
		{name: "none", flags: globalFlags{}},
		{name: "token", flags: globalFlags{token: "t0k"}, wantOK: true, wantToken: "t0k"},
		{name: "basic", flags: globalFlags{username: "radar", password: "secret"}, wantOK: true, wantUser: "radar"},
		{name: "username only", flags: globalFlags{username: "radar"}, wantErr: true},
		{name: "password only", flags: globalFlags{password: "secret"}, wantErr: true},
		{name: "token and basic", flags: globalFlags{token: "t0k", username: "radar", password: "secret"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, ok, err := tt.flags.credentials()
			if (err != nil) != tt.wantErr {
				t.Fatalf("credentials() error = %v, wantErr %v", err, tt.wantErr)
			}
			if ok != tt.wantOK {
				t.Errorf("credentials() ok = %v, want %v", ok, tt.wantOK)
			}
			if creds.Token != tt.wantToken {
				t.Errorf("credentials() token = %q, want %q", creds.Token, tt.wantToken)
			}
			if creds.Username != tt.wantUser {
				t.Errorf("credentials() username = %q, want %q", creds.Username, tt.wantUser)
			}
		})
	}
}

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "hello.rb", "puts 'hello'")

	files, err := readFiles([]string{path})
	if err != nil {
		t.Fatalf("readFiles() error = %v", err)
	}
	if files.Len() != 1 {
		t.Fatalf("readFiles() returned %d files, want 1", files.Len())
	}
	if _, ok := files.Get("hello.rb"); !ok {
		t.Errorf("readFiles() missing key hello.rb")
	}

	if _, err := readFiles([]string{dir + "/missing.txt"}); err == nil {
		t.Error("readFiles() with a missing file should fail")
	}
}
