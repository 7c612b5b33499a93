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
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Params is an insertion-ordered parameter map. Nested *Params values encode
// as nested JSON objects or as bracketed form keys.
type Params = orderedmap.OrderedMap[string, any]

// NewParams builds Params from alternating keys and values, keeping their order.
// It panics if given an odd number of arguments or a non-string key.
func NewParams(kv ...any) *Params {
	if len(kv)%2 == 1 {
		panic("request.NewParams: odd argument count")
	}
	p := orderedmap.New[string, any](len(kv) / 2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("request.NewParams: key %v is %T, not string", kv[i], kv[i]))
		}
		p.Set(key, kv[i+1])
	}
	return p
}

// Has reports whether key is present in p. A nil p has no keys.
func Has(p *Params, key string) bool {
	if p == nil {
		return false
	}
	_, ok := p.Get(key)
	return ok
}

// Copy returns a shallow copy of p preserving order. Copy(nil) is an empty map.
func Copy(p *Params) *Params {
	out := orderedmap.New[string, any]()
	if p == nil {
		return out
	}
	for pair := p.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, pair.Value)
	}
	return out
}
