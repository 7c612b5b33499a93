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

package resource

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Identity is the canonical string form of a resource identifier. Numeric and
// string identifiers with the same text are the same Identity.
type Identity string

// IdentityOf canonicalizes an identifier given as a string, an integer, a
// json.Number or raw JSON.
func IdentityOf(v any) Identity {
	switch id := v.(type) {
	case nil:
		return ""
	case Identity:
		return id
	case string:
		return Identity(id)
	case int:
		return Identity(strconv.Itoa(id))
	case int64:
		return Identity(strconv.FormatInt(id, 10))
	case uint64:
		return Identity(strconv.FormatUint(id, 10))
	case float64:
		if id == math.Trunc(id) && !math.IsInf(id, 0) {
			return Identity(strconv.FormatInt(int64(id), 10))
		}
		return Identity(strconv.FormatFloat(id, 'f', -1, 64))
	case json.Number:
		return Identity(id.String())
	case json.RawMessage:
		return identityFromRaw(id)
	case Value:
		return identityFromRaw(id.raw)
	default:
		return ""
	}
}

func identityFromRaw(raw json.RawMessage) Identity {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return Identity(s)
		}
		return ""
	}
	if raw[0] == '{' || raw[0] == '[' {
		return ""
	}
	return Identity(strings.TrimSpace(string(raw)))
}

// IsZero reports whether the identity is empty.
func (id Identity) IsZero() bool {
	return id == ""
}

func (id Identity) String() string {
	return string(id)
}
