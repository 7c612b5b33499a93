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

package github

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/http"

	"github.com/sirseerhq/octopi/internal/request"
	"github.com/sirseerhq/octopi/internal/resource"
)

var errCreateUnsupported = errors.New("collection does not support create")

// createPolicy describes how a collection's scope creates new members. path,
// when set, replaces the scope path as the creation endpoint. prepare adjusts
// params before encoding and must not modify its argument.
type createPolicy struct {
	operation    string
	path         string
	encoding     request.Encoding
	requiresAuth bool
	prepare      func(*request.Params) *request.Params
}

// Scope identifies where a collection came from.
type Scope struct {
	// Path is the collection endpoint, e.g. "gists/1115247/comments".
	Path string
	// Kind is the Kind of every member.
	Kind resource.Kind
	// Owner is the resource the collection hangs off, or nil for top-level
	// collections.
	Owner *resource.Resource
}

// Collection is an ordered list of resources from one endpoint.
type Collection[T any] struct {
	items  []T
	scope  Scope
	client *Client
	wrap   func(*Client, *resource.Resource) T
	create *createPolicy
}

func newCollection[T any](c *Client, scope Scope, list []*resource.Resource, wrap func(*Client, *resource.Resource) T, create *createPolicy) *Collection[T] {
	items := make([]T, len(list))
	for i, r := range list {
		items[i] = wrap(c, r)
	}
	return &Collection[T]{items: items, scope: scope, client: c, wrap: wrap, create: create}
}

// Scope returns the collection's origin.
func (c *Collection[T]) Scope() Scope {
	return c.scope
}

// Items returns the members in server order.
func (c *Collection[T]) Items() []T {
	return c.items
}

// Len returns the number of members.
func (c *Collection[T]) Len() int {
	return len(c.items)
}

// At returns member i.
func (c *Collection[T]) At(i int) T {
	return c.items[i]
}

// First returns the first member, if any.
func (c *Collection[T]) First() (T, bool) {
	if len(c.items) == 0 {
		var zero T
		return zero, false
	}
	return c.items[0], true
}

// All iterates over the members in order.
func (c *Collection[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, item := range c.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// Create POSTs params to the collection's endpoint and returns the new
// member. The collection itself is not modified.
func (c *Collection[T]) Create(ctx context.Context, params *request.Params) (T, error) {
	var zero T
	p := c.create
	if p == nil {
		return zero, fmt.Errorf("create in %s: %w", c.scope.Path, errCreateUnsupported)
	}
	if p.requiresAuth {
		if err := c.client.require(p.operation); err != nil {
			return zero, err
		}
	}
	if p.prepare != nil {
		params = p.prepare(params)
	}

	path := p.path
	if path == "" {
		path = c.scope.Path
	}
	var opts []resource.Option
	if c.scope.Owner != nil {
		opts = append(opts, resource.WithParent(c.scope.Owner))
	}
	r, err := c.client.send(ctx, p.operation, http.MethodPost, path, params, p.encoding, c.scope.Kind, opts...)
	if err != nil {
		return zero, err
	}
	return c.wrap(c.client, r), nil
}
