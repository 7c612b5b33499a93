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

// Package errors defines the error taxonomy shared by the resource mapping layer.
// Every failure a caller can observe unwraps to exactly one of the sentinels below,
// so callers test with errors.Is. The sentinels also map to CLI exit codes.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotAuthenticated indicates an operation needs credentials that are absent,
	// or that GitHub rejected the request with 401 or 403.
	// Maps to exit code 2.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotFound indicates GitHub answered 404 for the requested resource.
	// Maps to exit code 2.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation indicates GitHub rejected the payload with 422.
	// Maps to exit code 2.
	ErrValidation = errors.New("validation failed")

	// ErrTransport indicates the request never produced an HTTP response
	// (DNS, connection, TLS, timeouts).
	// Maps to exit code 3.
	ErrTransport = errors.New("network connection failed")

	// ErrUnexpectedStatus indicates a status code outside the mapped set.
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// Kind classifies an APIError.
type Kind int

const (
	KindUnexpectedStatus Kind = iota
	KindNotAuthenticated
	KindNotFound
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotAuthenticated:
		return "not_authenticated"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindUnexpectedStatus:
		return "unexpected_status"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// sentinel returns the sentinel error a Kind unwraps to.
func (k Kind) sentinel() error {
	switch k {
	case KindNotAuthenticated:
		return ErrNotAuthenticated
	case KindNotFound:
		return ErrNotFound
	case KindValidation:
		return ErrValidation
	default:
		return ErrUnexpectedStatus
	}
}

// ValidationError describes a field-level failure in a 422 response body.
type ValidationError struct {
	Resource string `json:"resource"`
	Field    string `json:"field"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

// APIError is a non-2xx response from the GitHub REST API.
type APIError struct {
	Kind       Kind
	StatusCode int

	// Message is GitHub's top-level "message", or the raw body when it is not JSON.
	Message string

	// DocumentationURL is GitHub's "documentation_url" when present.
	DocumentationURL string

	// Errors carries field-level messages. Only set for KindValidation.
	Errors []ValidationError
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "github: HTTP %d", e.StatusCode)
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	for _, ve := range e.Errors {
		detail := ve.Message
		if detail == "" {
			detail = ve.Code
		}
		fmt.Fprintf(&b, "; %s.%s: %s", ve.Resource, ve.Field, detail)
	}
	return b.String()
}

// Unwrap exposes the sentinel for the error's Kind.
func (e *APIError) Unwrap() error {
	return e.Kind.sentinel()
}

// TransportError wraps a failure raised by the transport collaborator before
// any HTTP status was received.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns both the underlying cause and ErrTransport, so errors.Is
// matches either.
func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// NotAuthenticated returns an error for an operation refused locally because
// no credential is set.
func NotAuthenticated(operation string) error {
	return fmt.Errorf("%s requires authentication: %w", operation, ErrNotAuthenticated)
}
