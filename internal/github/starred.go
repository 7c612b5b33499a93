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
	"net/http"

	octoerrors "github.com/sirseerhq/octopi/internal/errors"
)

// StarredStatus reads a star check response: 204 means starred, 404 means
// not starred. Any other status is an *errors.APIError of KindUnexpectedStatus.
// It never goes through errors.Classify, for which 404 is a failure.
func StarredStatus(statusCode int) (bool, error) {
	switch statusCode {
	case http.StatusNoContent:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, &octoerrors.APIError{
			Kind:       octoerrors.KindUnexpectedStatus,
			StatusCode: statusCode,
			Message:    http.StatusText(statusCode),
		}
	}
}
