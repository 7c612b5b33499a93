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

// Package session persists the active credential between CLI invocations.
//
// A session file holds one credential plus the login GitHub reported for it
// when it was saved. Writes are atomic (write-to-temp-and-rename) and the file
// is created with 0600 permissions. Each file carries a schema version and a
// SHA256 checksum so a truncated or hand-edited file is rejected instead of
// silently authenticating as someone else.
//
// Example usage:
//
//	s := session.New(auth.Credentials{Username: "radar", Password: pw}, "radar")
//	err := session.Save(s, session.DefaultPath())
//	...
//	_, err = session.Restore(auth.Default, session.DefaultPath())
package session
