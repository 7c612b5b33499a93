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

// Package resource turns GitHub response bodies into attribute-bearing objects.
//
// A Resource keeps every top-level key of the JSON object it was parsed from,
// in server order, as raw JSON. Nothing is coerced: timestamps stay strings
// and numbers keep their literal text. Reading a key the server did not send
// yields the absent Value rather than an error.
//
// Resources compare equal when their Kind and Identity match, regardless of
// which request produced them. Associations are memoized per instance with
// Resolve; the first successfully resolved value is kept for the lifetime of
// the Resource.
//
//	gist, err := resource.Parse(resource.KindGist, body)
//	if err != nil {
//	    return err
//	}
//	desc, _ := gist.Get("description").Str()
//	owner := gist.Get("owner").Field("login")
package resource
