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

// Package transport executes built requests. Transport is the seam between
// the resource layer and the network: HTTPTransport talks to GitHub over
// net/http with retries and tracing, and Mock serves canned responses and
// records every request for tests.
//
// A Transport returns any HTTP response, whatever its status; classifying
// statuses is the caller's job. Only failures that produced no response are
// errors, and those unwrap to errors.ErrTransport.
package transport
