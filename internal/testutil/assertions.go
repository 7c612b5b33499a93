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

// Package testutil provides an in-memory GitHub for end-to-end tests.
//
// FakeGitHub serves the subset of the REST API octopi uses (users, gists,
// gist stars and comments, repositories and commit comments) plus the
// GraphQL viewer query. It checks Basic and Bearer credentials against the
// accounts registered with AddUser, so authentication failures behave the
// way they do against api.github.com.
package testutil

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// DecodeNDJSON parses every non-empty line of data as a JSON object.
func DecodeNDJSON(t *testing.T, data []byte) []map[string]any {
	t.Helper()

	var records []map[string]any
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 10<<20)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var record map[string]any
		if err := json.Unmarshal([]byte(text), &record); err != nil {
			t.Fatalf("line %d: invalid JSON: %v", line, err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("reading NDJSON: %v", err)
	}
	return records
}
