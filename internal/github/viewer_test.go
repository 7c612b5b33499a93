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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirseerhq/octopi/internal/auth"
	octoerrors "github.com/sirseerhq/octopi/internal/errors"
	"github.com/sirseerhq/octopi/internal/logging"
	"github.com/sirseerhq/octopi/internal/transport"
)

func newViewerClient(t *testing.T, server *httptest.Server, creds *auth.Credentials) *Client {
	t.Helper()
	ac := auth.New()
	if creds != nil {
		require.NoError(t, ac.Authenticate(*creds))
	}
	c, err := NewClient(Config{
		BaseURL:    server.URL,
		Auth:       ac,
		Transport:  transport.NewMock(),
		HTTPClient: server.Client(),
		Logger:     logging.Discard(),
	})
	require.NoError(t, err)
	return c
}

func TestViewer(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/graphql", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		gotAuth = r.Header.Get("Authorization")

		var body struct {
			Query string `json:"query"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body.Query, "viewer")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"viewer":{"login":"radar"}}}`))
	}))
	defer server.Close()

	c := newViewerClient(t, server, &auth.Credentials{Token: "ghp_test"})

	login, err := c.Viewer(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "radar", login)
	assert.Equal(t, "Bearer ghp_test", gotAuth)
}

func TestViewerBadCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Bad credentials","documentation_url":"https://docs.github.com/graphql"}`))
	}))
	defer server.Close()

	c := newViewerClient(t, server, &auth.Credentials{Username: "radar", Password: "wrong"})

	_, err := c.Viewer(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, octoerrors.ErrNotAuthenticated)
}

func TestViewerRequiresCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without credentials")
	}))
	defer server.Close()

	c := newViewerClient(t, server, nil)

	_, err := c.Viewer(context.Background())
	assert.ErrorIs(t, err, octoerrors.ErrNotAuthenticated)
}

func TestClassifyGraphQL(t *testing.T) {
	err := classifyGraphQL("viewer", "https://api.github.com/graphql", assert.AnError)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, octoerrors.ErrNotAuthenticated)

	err = classifyGraphQL("viewer", "https://api.github.com/graphql",
		&net500{})
	assert.ErrorIs(t, err, octoerrors.ErrUnexpectedStatus)
}

type net500 struct{}

func (*net500) Error() string { return `non-200 OK status code: 500 Internal Server Error body: ""` }
