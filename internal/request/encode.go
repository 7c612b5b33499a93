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

package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Encoding selects how parameters travel with a request.
type Encoding int

const (
	// EncodingNone sends parameters, if any, as the query string.
	EncodingNone Encoding = iota
	// EncodingJSON sends parameters as a JSON object body.
	EncodingJSON
	// EncodingForm sends parameters as an application/x-www-form-urlencoded
	// body with bracket notation for nested maps.
	EncodingForm
)

func (e Encoding) String() string {
	switch e {
	case EncodingNone:
		return "none"
	case EncodingJSON:
		return "json"
	case EncodingForm:
		return "form"
	default:
		return fmt.Sprintf("encoding(%d)", int(e))
	}
}

// ContentType returns the Content-Type header value for bodies in this encoding.
func (e Encoding) ContentType() string {
	switch e {
	case EncodingJSON:
		return "application/json"
	case EncodingForm:
		return "application/x-www-form-urlencoded"
	default:
		return ""
	}
}

// EncodeJSON marshals p as a JSON object in insertion order. Strings are
// written verbatim: <, > and & are not escaped.
func EncodeJSON(p *Params) ([]byte, error) {
	if p == nil {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	if err := writeJSON(&buf, p); err != nil {
		return nil, fmt.Errorf("encode json body: %w", err)
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, value any) error {
	switch v := value.(type) {
	case *Params:
		if v == nil {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('{')
		for pair, first := v.Oldest(), true; pair != nil; pair, first = pair.Next(), false {
			if !first {
				buf.WriteByte(',')
			}
			if err := writeJSONLeaf(buf, pair.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, pair.Value); err != nil {
				return fmt.Errorf("%s: %w", pair.Key, err)
			}
		}
		buf.WriteByte('}')
		return nil
	case []any:
		if v == nil {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('[')
		for i, elem := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		return writeJSONLeaf(buf, v)
	}
}

func writeJSONLeaf(buf *bytes.Buffer, value any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return err
	}
	// Encode terminates each value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// EncodeForm renders p as key=value pairs joined by '&', in insertion order.
// Nested maps become bracketed keys: files[file.rb][content]=...
func EncodeForm(p *Params) string {
	if p == nil {
		return ""
	}
	var parts []string
	appendParams(&parts, "", p)
	return strings.Join(parts, "&")
}

func appendParams(parts *[]string, prefix string, p *Params) {
	for pair := p.Oldest(); pair != nil; pair = pair.Next() {
		appendValue(parts, nestKey(prefix, pair.Key), pair.Value)
	}
}

func nestKey(prefix, key string) string {
	if prefix == "" {
		return Escape(key)
	}
	return prefix + "[" + Escape(key) + "]"
}

func appendValue(parts *[]string, key string, value any) {
	switch v := value.(type) {
	case *Params:
		appendParams(parts, key, v)
	case map[string]any:
		// Plain maps have no order of their own; sort for a stable wire form.
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			appendValue(parts, nestKey(key, k), v[k])
		}
	case map[string]string:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			appendValue(parts, nestKey(key, k), v[k])
		}
	case []string:
		for _, item := range v {
			appendValue(parts, key+"[]", item)
		}
	case []any:
		for _, item := range v {
			appendValue(parts, key+"[]", item)
		}
	default:
		*parts = append(*parts, key+"="+Escape(formatScalar(v)))
	}
}

func formatScalar(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return s.String()
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(s)
	}
}

// Escape percent-encodes s for a form body. Letters, digits and -_.~!*'()
// pass through unchanged; everything else, including spaces, becomes %XX.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '~', '!', '*', '\'', '(', ')':
		return true
	}
	return false
}
