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

// Package request turns a verb, a path, ordered parameters and an auth context
// into a fully formed HTTP request value without executing it.
//
// The body encoding is chosen by the caller per endpoint, never guessed from
// the payload: GitHub accepts JSON for attribute updates and form encoding with
// bracket notation for some creation endpoints.
//
//	params := request.NewParams("files", request.NewParams(
//	    "file.rb", request.NewParams("content", "puts 'hello world'"),
//	))
//	req, err := builder.Build(http.MethodPost, "gists", params, request.EncodingForm, auth.Default)
//	// req.Body == "files[file.rb][content]=puts%20'hello%20world'"
package request
