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

// Package auth holds the credential used to sign outgoing GitHub requests.
//
// A Context carries at most one credential: a username with a password, or a
// token (optionally with the username it belongs to). Once Authenticate is
// called, the credential is applied to every request built against that
// Context until Clear is called. Nothing is inferred per request.
//
// Default is the process-wide Context. Callers that need several identities at
// once must create their own Context values with New and hand them to separate
// clients; goroutines that call Authenticate on Default with different
// identities race with each other.
//
//	auth.Authenticate(auth.Credentials{Username: "radar", Password: "password"})
//	defer auth.Clear()
package auth
