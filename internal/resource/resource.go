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
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Resource is a typed view over one JSON object returned by the API.
// Attributes never change after Parse.
type Resource struct {
	kind     Kind
	identity Identity
	attrs    *Attributes
	url      string
	parent   *Resource

	mu   sync.Mutex
	memo map[string]any
}

// Option customizes Parse.
type Option func(*Resource)

// WithParent records the owner of a has-many child.
func WithParent(parent *Resource) Option {
	return func(r *Resource) {
		r.parent = parent
	}
}

// WithURL sets the API URL the resource was read from, overriding its "url"
// attribute.
func WithURL(url string) Option {
	return func(r *Resource) {
		r.url = url
	}
}

// WithIdentity overrides the identity taken from the Kind's identity key.
func WithIdentity(id Identity) Option {
	return func(r *Resource) {
		r.identity = id
	}
}

// Parse builds a Resource from a JSON object.
func Parse(kind Kind, body []byte, opts ...Option) (*Resource, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("parse %s: body is not a JSON object", kind)
	}

	attrs := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(trimmed, attrs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", kind, err)
	}
	return fromAttributes(kind, attrs, opts...), nil
}

// ParseList builds one Resource per element of a JSON array. Every element
// receives the same options.
func ParseList(kind Kind, body []byte, opts ...Option) ([]*Resource, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("parse %s list: %w", kind, err)
	}

	out := make([]*Resource, 0, len(items))
	for i, item := range items {
		r, err := Parse(kind, item, opts...)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// FromValue builds a Resource from an embedded object attribute. It returns
// nil when v is not an object.
func FromValue(kind Kind, v Value, opts ...Option) *Resource {
	attrs, ok := v.Object()
	if !ok {
		return nil
	}
	return fromAttributes(kind, attrs, opts...)
}

func fromAttributes(kind Kind, attrs *Attributes, opts ...Option) *Resource {
	r := &Resource{kind: kind, attrs: attrs}
	if key := kind.IdentityKey(); key != "" {
		r.identity = IdentityOf(r.Get(key))
	}
	if u, ok := r.Get("url").Str(); ok {
		r.url = u
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Kind returns the resource type.
func (r *Resource) Kind() Kind {
	return r.kind
}

// Identity returns the canonical identifier.
func (r *Resource) Identity() Identity {
	return r.identity
}

// URL returns the API URL of the resource, if known.
func (r *Resource) URL() string {
	return r.url
}

// Parent returns the owner a has-many child was built for, or nil.
func (r *Resource) Parent() *Resource {
	return r.parent
}

// Get reads an attribute. Missing keys yield the absent Value.
func (r *Resource) Get(name string) Value {
	if r == nil || r.attrs == nil {
		return Absent()
	}
	raw, ok := r.attrs.Get(name)
	if !ok {
		return Absent()
	}
	return ValueOf(raw)
}

// Has reports whether the server sent the attribute, even as null.
func (r *Resource) Has(name string) bool {
	return !r.Get(name).IsAbsent()
}

// Keys returns the attribute names in server order.
func (r *Resource) Keys() []string {
	if r.attrs == nil {
		return nil
	}
	keys := make([]string, 0, r.attrs.Len())
	for pair := r.attrs.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Len returns the number of attributes.
func (r *Resource) Len() int {
	if r.attrs == nil {
		return 0
	}
	return r.attrs.Len()
}

// Equal reports whether r and other are the same remote object: same Kind
// and same non-empty Identity.
func (r *Resource) Equal(other *Resource) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r == other {
		return true
	}
	return r.kind == other.kind && !r.identity.IsZero() && r.identity == other.identity
}

// MarshalJSON writes the attributes back in server order.
func (r *Resource) MarshalJSON() ([]byte, error) {
	if r.attrs == nil {
		return []byte("{}"), nil
	}
	return r.attrs.MarshalJSON()
}

func (r *Resource) String() string {
	return fmt.Sprintf("%s(%s)", r.kind, r.identity)
}

// Resolve returns the value memoized under name, calling fetch on the first
// request. fetch runs without the lock held; if two callers race, the first
// stored value wins and both receive it. Errors are returned but not cached.
func (r *Resource) Resolve(name string, fetch func() (any, error)) (any, error) {
	r.mu.Lock()
	if v, ok := r.memo[name]; ok {
		r.mu.Unlock()
		return v, nil
	}
	r.mu.Unlock()

	v, err := fetch()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.memo[name]; ok {
		return existing, nil
	}
	if r.memo == nil {
		r.memo = make(map[string]any)
	}
	r.memo[name] = v
	return v, nil
}

// Resolved reports whether name has been memoized.
func (r *Resource) Resolved(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.memo[name]
	return ok
}

// ResolveAs is Resolve with a typed fetch.
func ResolveAs[T any](r *Resource, name string, fetch func() (T, error)) (T, error) {
	v, err := r.Resolve(name, func() (any, error) {
		return fetch()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("association %q holds %T", name, v)
	}
	return typed, nil
}
