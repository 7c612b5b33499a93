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
	"fmt"
	"net/http"

	"github.com/sirseerhq/octopi/internal/request"
	"github.com/sirseerhq/octopi/internal/resource"
)

// gistCreate is the creation policy shared by every gist collection: a
// form-encoded POST to "gists", open to anonymous callers.
var gistCreate = &createPolicy{
	operation: "create_gist",
	path:      "gists",
	encoding:  request.EncodingForm,
	prepare:   withDefaultVisibility,
}

// withDefaultVisibility appends public=true unless the caller set "public".
// Caller order is kept, so an explicit public=false stays where it was given.
func withDefaultVisibility(params *request.Params) *request.Params {
	out := request.Copy(params)
	if !request.Has(out, "public") {
		out.Set("public", true)
	}
	return out
}

func gistPath(id resource.Identity) string {
	return "gists/" + id.String()
}

// FindGist fetches one gist. A 404 yields an error matching ErrNotFound.
func (c *Client) FindGist(ctx context.Context, id resource.Identity) (*Gist, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("find_gist: empty gist id")
	}
	r, err := c.fetch(ctx, "find_gist", gistPath(id), resource.KindGist)
	if err != nil {
		return nil, err
	}
	return newGist(c, r), nil
}

// GistsForUser lists login's public gists.
func (c *Client) GistsForUser(ctx context.Context, login string) (*Collection[*Gist], error) {
	if login == "" {
		return nil, fmt.Errorf("list_user_gists: empty login")
	}
	return c.gistCollection(ctx, "list_user_gists", "users/"+login+"/gists", nil)
}

// MyGists lists the authenticated user's gists, private ones included.
func (c *Client) MyGists(ctx context.Context) (*Collection[*Gist], error) {
	if err := c.require("list_my_gists"); err != nil {
		return nil, err
	}
	return c.gistCollection(ctx, "list_my_gists", "gists", nil)
}

// StarredGists lists the gists the authenticated user starred.
func (c *Client) StarredGists(ctx context.Context) (*Collection[*Gist], error) {
	if err := c.require("list_starred_gists"); err != nil {
		return nil, err
	}
	return c.gistCollection(ctx, "list_starred_gists", "gists/starred", nil)
}

func (c *Client) gistCollection(ctx context.Context, operation, path string, owner *resource.Resource) (*Collection[*Gist], error) {
	var opts []resource.Option
	if owner != nil {
		opts = append(opts, resource.WithParent(owner))
	}
	list, err := c.fetchList(ctx, operation, path, resource.KindGist, opts...)
	if err != nil {
		return nil, err
	}
	scope := Scope{Path: path, Kind: resource.KindGist, Owner: owner}
	return newCollection(c, scope, list, newGist, gistCreate), nil
}

// CreateGist creates a gist from form-encoded params, e.g.
//
//	request.NewParams("files", request.NewParams("file.rb",
//	    request.NewParams("content", "puts 'hello world'")))
//
// public=true is appended when params has no "public" key. Anonymous callers
// may create gists; the result then has no Owner.
func (c *Client) CreateGist(ctx context.Context, params *request.Params) (*Gist, error) {
	r, err := c.send(ctx, gistCreate.operation, http.MethodPost, gistCreate.path,
		withDefaultVisibility(params), gistCreate.encoding, resource.KindGist)
	if err != nil {
		return nil, err
	}
	return newGist(c, r), nil
}

// ID returns the gist id.
func (g *Gist) ID() string {
	return g.Identity().String()
}

// Description returns the description, "" when unset.
func (g *Gist) Description() string {
	return g.Get("description").String()
}

// Public reports the gist's visibility.
func (g *Gist) Public() bool {
	public, _ := g.Get("public").Bool()
	return public
}

// Owner returns the gist's owner, or nil for an anonymous gist.
func (g *Gist) Owner() *User {
	owner, _ := resolve(context.Background(), g.client, g.Resource, "owner", true, func() (*User, error) {
		return embeddedUser(g.client, g.Resource, "owner", "user"), nil
	})
	return owner
}

// User is Owner under the name older API payloads used.
func (g *Gist) User() *User {
	return g.Owner()
}

// Files returns the gist's files in server order. Each file links back to g.
func (g *Gist) Files() []*GistFile {
	files, _ := resolve(context.Background(), g.client, g.Resource, "files", true, func() ([]*GistFile, error) {
		out := []*GistFile{}
		obj, ok := g.Get("files").Object()
		if !ok {
			return out, nil
		}
		for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
			r := resource.FromValue(resource.KindGistFile, resource.ValueOf(pair.Value),
				resource.WithParent(g.Resource),
				resource.WithIdentity(resource.Identity(pair.Key)))
			if r != nil {
				out = append(out, newGistFile(g.client, r))
			}
		}
		return out, nil
	})
	return files
}

// History returns the gist's revisions, newest first as GitHub sends them.
func (g *Gist) History() []*GistHistory {
	history, _ := resolve(context.Background(), g.client, g.Resource, "history", true, func() ([]*GistHistory, error) {
		return embeddedList(g.client, g.Resource, "history", resource.KindGistHistory, newGistHistory), nil
	})
	return history
}

// Forks returns the forks embedded in the gist body. It is empty, never nil.
func (g *Gist) Forks() []*Gist {
	forks, _ := resolve(context.Background(), g.client, g.Resource, "forks", true, func() ([]*Gist, error) {
		return embeddedList(g.client, g.Resource, "forks", resource.KindGist, newGist), nil
	})
	return forks
}

// Comments fetches the gist's comments once and memoizes them. Each comment
// links back to g.
func (g *Gist) Comments(ctx context.Context) (*Collection[*GistComment], error) {
	return resolve(ctx, g.client, g.Resource, "comments", false, func() (*Collection[*GistComment], error) {
		path := gistPath(g.Identity()) + "/comments"
		list, err := g.client.fetchList(ctx, "list_gist_comments", path, resource.KindGistComment,
			resource.WithParent(g.Resource))
		if err != nil {
			return nil, err
		}
		scope := Scope{Path: path, Kind: resource.KindGistComment, Owner: g.Resource}
		return newCollection(g.client, scope, list, newGistComment, &createPolicy{
			operation:    "create_gist_comment",
			encoding:     request.EncodingJSON,
			requiresAuth: true,
		}), nil
	})
}

// Update sends params as JSON and returns the gist as the server now has it.
// g itself is unchanged.
func (g *Gist) Update(ctx context.Context, params *request.Params) (*Gist, error) {
	r, err := g.client.send(ctx, "update_gist", http.MethodPost, gistPath(g.Identity()),
		params, request.EncodingJSON, resource.KindGist)
	if err != nil {
		return nil, err
	}
	return newGist(g.client, r), nil
}

// Delete removes the gist on the server.
func (g *Gist) Delete(ctx context.Context) error {
	const op = "delete_gist"
	if err := g.client.require(op); err != nil {
		return err
	}
	_, err := g.client.call(ctx, op, http.MethodDelete, gistPath(g.Identity()), nil, request.EncodingNone)
	return err
}

// Fork forks the gist into the authenticated user's account.
func (g *Gist) Fork(ctx context.Context) (*Gist, error) {
	const op = "fork_gist"
	if err := g.client.require(op); err != nil {
		return nil, err
	}
	r, err := g.client.send(ctx, op, http.MethodPost, gistPath(g.Identity())+"/forks",
		nil, request.EncodingNone, resource.KindGist)
	if err != nil {
		return nil, err
	}
	return newGist(g.client, r), nil
}

// Star stars the gist for the authenticated user.
func (g *Gist) Star(ctx context.Context) error {
	return g.toggleStar(ctx, "star_gist", http.MethodPut)
}

// Unstar removes the authenticated user's star.
func (g *Gist) Unstar(ctx context.Context) error {
	return g.toggleStar(ctx, "unstar_gist", http.MethodDelete)
}

func (g *Gist) toggleStar(ctx context.Context, op, method string) error {
	if err := g.client.require(op); err != nil {
		return err
	}
	_, err := g.client.call(ctx, op, method, gistPath(g.Identity())+"/star", nil, request.EncodingNone)
	return err
}

// Starred reports whether the authenticated user starred the gist.
func (g *Gist) Starred(ctx context.Context) (bool, error) {
	const op = "check_gist_star"
	if err := g.client.require(op); err != nil {
		return false, err
	}
	resp, err := g.client.do(ctx, op, http.MethodGet, gistPath(g.Identity())+"/star", nil, request.EncodingNone)
	if err != nil {
		return false, err
	}
	starred, err := StarredStatus(resp.StatusCode)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return starred, nil
}

// Gist returns the gist the file belongs to.
func (f *GistFile) Gist() *Gist {
	return parentGist(f.client, f.Resource)
}

// Filename returns the file name.
func (f *GistFile) Filename() string {
	return f.Identity().String()
}

// Content returns the file content when the payload included it.
func (f *GistFile) Content() (string, bool) {
	return f.Get("content").Str()
}

// Gist returns the gist the revision belongs to.
func (h *GistHistory) Gist() *Gist {
	return parentGist(h.client, h.Resource)
}

// Version returns the revision hash.
func (h *GistHistory) Version() string {
	return h.Identity().String()
}

// Gist returns the gist the comment belongs to.
func (gc *GistComment) Gist() *Gist {
	return parentGist(gc.client, gc.Resource)
}

// User returns the comment's author.
func (gc *GistComment) User() *User {
	user, _ := resolve(context.Background(), gc.client, gc.Resource, "user", true, func() (*User, error) {
		return embeddedUser(gc.client, gc.Resource, "user"), nil
	})
	return user
}

// Body returns the comment text.
func (gc *GistComment) Body() string {
	return gc.Get("body").String()
}

func parentGist(c *Client, child *resource.Resource) *Gist {
	parent := child.Parent()
	if parent == nil || parent.Kind() != resource.KindGist {
		return nil
	}
	return newGist(c, parent)
}

// embeddedList builds children from an array attribute, each linked to owner.
func embeddedList[T any](c *Client, owner *resource.Resource, key string, kind resource.Kind, wrap func(*Client, *resource.Resource) T) []T {
	out := []T{}
	items, ok := owner.Get(key).Array()
	if !ok {
		return out
	}
	for _, item := range items {
		if r := resource.FromValue(kind, item, resource.WithParent(owner)); r != nil {
			out = append(out, wrap(c, r))
		}
	}
	return out
}
