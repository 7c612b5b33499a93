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
	"fmt"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Attributes holds raw JSON values keyed by attribute name, in server order.
type Attributes = orderedmap.OrderedMap[string, json.RawMessage]

// Value is one attribute as the server sent it. The zero Value is absent.
type Value struct {
	raw     json.RawMessage
	present bool
}

// Absent returns the Value read for a key the server did not send.
func Absent() Value {
	return Value{}
}

// ValueOf wraps raw JSON as a present Value.
func ValueOf(raw json.RawMessage) Value {
	return Value{raw: raw, present: true}
}

// IsAbsent reports whether the key was missing.
func (v Value) IsAbsent() bool {
	return !v.present
}

// IsNull reports whether the key was present with a JSON null.
func (v Value) IsNull() bool {
	if !v.present {
		return false
	}
	trimmed := bytes.TrimSpace(v.raw)
	return len(trimmed) == 0 || string(trimmed) == "null"
}

// IsNil reports whether the Value is absent or null.
func (v Value) IsNil() bool {
	return v.IsAbsent() || v.IsNull()
}

// Raw returns the JSON text as received, or nil when absent.
func (v Value) Raw() json.RawMessage {
	if !v.present {
		return nil
	}
	return v.raw
}

func (v Value) first() byte {
	trimmed := bytes.TrimSpace(v.raw)
	if !v.present || len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

// Str returns the value when it is a JSON string.
func (v Value) Str() (string, bool) {
	if v.first() != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v.raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Int returns the value when it is a JSON number without a fraction.
func (v Value) Int() (int64, bool) {
	if !v.isNumber() {
		return 0, false
	}
	n, err := strconv.ParseInt(string(bytes.TrimSpace(v.raw)), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Float returns the value when it is a JSON number.
func (v Value) Float() (float64, bool) {
	if !v.isNumber() {
		return 0, false
	}
	f, err := strconv.ParseFloat(string(bytes.TrimSpace(v.raw)), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func (v Value) isNumber() bool {
	c := v.first()
	return c == '-' || ('0' <= c && c <= '9')
}

// Bool returns the value when it is a JSON boolean.
func (v Value) Bool() (bool, bool) {
	switch string(bytes.TrimSpace(v.Raw())) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

// Decode unmarshals the value into dst.
func (v Value) Decode(dst any) error {
	if !v.present {
		return fmt.Errorf("decode absent value")
	}
	return json.Unmarshal(v.raw, dst)
}

// Object returns the value's keys and raw values in order when it is a JSON
// object.
func (v Value) Object() (*Attributes, bool) {
	if v.first() != '{' {
		return nil, false
	}
	attrs := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(v.raw, attrs); err != nil {
		return nil, false
	}
	return attrs, true
}

// Array returns the elements when the value is a JSON array.
func (v Value) Array() ([]Value, bool) {
	if v.first() != '[' {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(v.raw, &items); err != nil {
		return nil, false
	}
	out := make([]Value, len(items))
	for i, item := range items {
		out[i] = ValueOf(item)
	}
	return out, true
}

// Field reads key from an object value. Anything that is not an object yields
// the absent Value.
func (v Value) Field(key string) Value {
	obj, ok := v.Object()
	if !ok {
		return Absent()
	}
	raw, ok := obj.Get(key)
	if !ok {
		return Absent()
	}
	return ValueOf(raw)
}

// String renders strings unquoted, other JSON as received, and nil-like
// values as "".
func (v Value) String() string {
	if v.IsNil() {
		return ""
	}
	if s, ok := v.Str(); ok {
		return s
	}
	return string(bytes.TrimSpace(v.raw))
}
