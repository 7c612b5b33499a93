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
	"encoding/json"
	"net/http"
	"strings"
)

// Classify maps an HTTP status and body to nil (2xx) or an *APIError.
//
//	401, 403 -> KindNotAuthenticated
//	404      -> KindNotFound
//	422      -> KindValidation (with field errors from the body)
//	other    -> KindUnexpectedStatus
func Classify(statusCode int, body []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	apiErr := parseBody(statusCode, body)

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		apiErr.Kind = KindNotAuthenticated
	case http.StatusNotFound:
		apiErr.Kind = KindNotFound
	case http.StatusUnprocessableEntity:
		apiErr.Kind = KindValidation
	default:
		apiErr.Kind = KindUnexpectedStatus
	}

	if apiErr.Kind != KindValidation {
		apiErr.Errors = nil
	}
	return apiErr
}

// parseBody extracts GitHub's structured error body. Anything that is not a
// JSON object with a message is kept verbatim as the message.
func parseBody(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	var wire struct {
		Message          string            `json:"message"`
		DocumentationURL string            `json:"documentation_url"`
		Errors           []json.RawMessage `json:"errors"`
	}
	if json.Unmarshal(body, &wire) == nil && wire.Message != "" {
		apiErr.Message = wire.Message
		apiErr.DocumentationURL = wire.DocumentationURL
		for _, raw := range wire.Errors {
			apiErr.Errors = append(apiErr.Errors, parseValidationError(raw))
		}
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(body))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(statusCode)
	}
	return apiErr
}

// parseValidationError accepts both the object form and the bare string form
// GitHub uses for entries of "errors".
func parseValidationError(raw json.RawMessage) ValidationError {
	var ve ValidationError
	if json.Unmarshal(raw, &ve) == nil {
		return ve
	}
	var msg string
	if json.Unmarshal(raw, &msg) == nil {
		return ValidationError{Message: msg}
	}
	return ValidationError{Message: string(raw)}
}
