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
	"fmt"
	"net/http"
	"strings"

	"github.com/shurcooL/graphql"

	octoerrors "github.com/sirseerhq/octopi/internal/errors"
	"github.com/sirseerhq/octopi/internal/giterror"
	"github.com/sirseerhq/octopi/internal/instrumentation"
)

// graphQLEndpoint derives the GraphQL URL from a REST base URL. GitHub
// Enterprise serves REST under /api/v3 and GraphQL under /api/graphql.
func graphQLEndpoint(base string) string {
	base = strings.TrimSuffix(base, "/")
	if strings.HasSuffix(base, "/api/v3") {
		return strings.TrimSuffix(base, "/v3") + "/graphql"
	}
	return base + "/graphql"
}

// Viewer returns the login GitHub associates with the active credential. It
// is the cheapest way to check that a stored credential still works.
func (c *Client) Viewer(ctx context.Context) (string, error) {
	const op = "viewer"
	if err := c.require(op); err != nil {
		return "", err
	}

	httpClient := &http.Client{
		Transport: c.auth.Transport(c.httpClient.Transport),
		Timeout:   c.httpClient.Timeout,
	}
	client := graphql.NewClient(c.graphqlURL, httpClient)

	var query struct {
		Viewer struct {
			Login graphql.String
		}
	}

	ctx, span := instrumentation.StartAPISpan(ctx, c.tracer, op,
		instrumentation.NewSpanAttributeBuilder().
			WithMethod(http.MethodPost).
			WithAuthMode(c.authMode()).
			Build()...)
	defer span.End()

	if err := client.Query(ctx, &query, nil); err != nil {
		err = classifyGraphQL(op, c.graphqlURL, err)
		instrumentation.SetSpanError(span, err)
		return "", err
	}
	instrumentation.SetSpanSuccess(span)
	return string(query.Viewer.Login), nil
}

// classifyGraphQL maps a GraphQL client failure onto the shared sentinels.
// The client reports non-200 statuses only as text, so auth failures are
// recognized by their message.
func classifyGraphQL(op, endpoint string, err error) error {
	inspector := giterror.NewInspector()
	msg := strings.ToLower(err.Error())
	switch {
	case inspector.IsAuthError(err), strings.Contains(msg, "401 unauthorized"):
		return fmt.Errorf("%s: %v: %w", op, err, octoerrors.ErrNotAuthenticated)
	case strings.Contains(msg, "non-200 ok status code"):
		return fmt.Errorf("%s: %v: %w", op, err, octoerrors.ErrUnexpectedStatus)
	case inspector.IsNetworkError(err):
		return fmt.Errorf("%s: %w", op, &octoerrors.TransportError{Method: http.MethodPost, URL: endpoint, Err: err})
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
