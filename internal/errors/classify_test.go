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

package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantNil  bool
		wantKind Kind
		sentinel error
	}{
		{name: "ok", status: 200, body: `{"id":"1"}`, wantNil: true},
		{name: "created", status: 201, body: `{}`, wantNil: true},
		{name: "no content", status: 204, wantNil: true},
		{name: "unauthorized", status: 401, body: `{"message":"Requires authentication"}`, wantKind: KindNotAuthenticated, sentinel: ErrNotAuthenticated},
		{name: "forbidden", status: 403, body: `{"message":"Forbidden"}`, wantKind: KindNotAuthenticated, sentinel: ErrNotAuthenticated},
		{name: "not found", status: 404, body: `{"message":"Not Found"}`, wantKind: KindNotFound, sentinel: ErrNotFound},
		{name: "validation", status: 422, body: `{"message":"Validation Failed"}`, wantKind: KindValidation, sentinel: ErrValidation},
		{name: "server error", status: 500, body: "boom", wantKind: KindUnexpectedStatus, sentinel: ErrUnexpectedStatus},
		{name: "redirect", status: 302, wantKind: KindUnexpectedStatus, sentinel: ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(tt.status, []byte(tt.body))
			if tt.wantNil {
				assert.NoError(t, err)
				return
			}

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr), "expected *APIError, got %T", err)
			assert.Equal(t, tt.wantKind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestClassify_ValidationMessages(t *testing.T) {
	body := `{
		"message": "Validation Failed",
		"documentation_url": "https://docs.github.com/rest",
		"errors": [
			{"resource": "Gist", "field": "files", "code": "missing_field"},
			"description is too long"
		]
	}`

	err := Classify(422, []byte(body))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Validation Failed", apiErr.Message)
	assert.Equal(t, "https://docs.github.com/rest", apiErr.DocumentationURL)
	require.Len(t, apiErr.Errors, 2)
	assert.Equal(t, ValidationError{Resource: "Gist", Field: "files", Code: "missing_field"}, apiErr.Errors[0])
	assert.Equal(t, "description is too long", apiErr.Errors[1].Message)
	assert.Contains(t, err.Error(), "Gist.files: missing_field")
}

func TestClassify_DropsFieldErrorsOutsideValidation(t *testing.T) {
	err := Classify(404, []byte(`{"message":"Not Found","errors":[{"field":"id"}]}`))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Empty(t, apiErr.Errors)
}

func TestClassify_NonJSONBody(t *testing.T) {
	err := Classify(502, []byte("  <html>bad gateway</html>\n"))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "<html>bad gateway</html>", apiErr.Message)
	assert.Equal(t, "github: HTTP 502: <html>bad gateway</html>", apiErr.Error())
}

func TestClassify_EmptyBodyUsesStatusText(t *testing.T) {
	err := Classify(401, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Unauthorized", apiErr.Message)
}
