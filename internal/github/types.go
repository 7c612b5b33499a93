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
	"github.com/sirseerhq/octopi/internal/resource"
)

// Repo is a repository.
type Repo struct {
	*resource.Resource
	client *Client
}

// User is a GitHub account.
type User struct {
	*resource.Resource
	client *Client
}

// Gist is a gist. Its files, history and forks are embedded in the gist body;
// its comments are fetched from a sub-path.
type Gist struct {
	*resource.Resource
	client *Client
}

// GistFile is one entry of a gist's "files" map.
type GistFile struct {
	*resource.Resource
	client *Client
}

// GistHistory is one revision in a gist's "history".
type GistHistory struct {
	*resource.Resource
	client *Client
}

// GistComment is a comment on a gist.
type GistComment struct {
	*resource.Resource
	client *Client
}

// Comment is a commit comment on a repository.
type Comment struct {
	*resource.Resource
	client *Client
}

// Commit is an entry of a repository's commit list.
type Commit struct {
	*resource.Resource
	client *Client
}

func newRepo(c *Client, r *resource.Resource) *Repo {
	return &Repo{Resource: r, client: c}
}

func newUser(c *Client, r *resource.Resource) *User {
	return &User{Resource: r, client: c}
}

func newGist(c *Client, r *resource.Resource) *Gist {
	return &Gist{Resource: r, client: c}
}

func newGistFile(c *Client, r *resource.Resource) *GistFile {
	return &GistFile{Resource: r, client: c}
}

func newGistHistory(c *Client, r *resource.Resource) *GistHistory {
	return &GistHistory{Resource: r, client: c}
}

func newGistComment(c *Client, r *resource.Resource) *GistComment {
	return &GistComment{Resource: r, client: c}
}

func newComment(c *Client, r *resource.Resource) *Comment {
	return &Comment{Resource: r, client: c}
}

func newCommit(c *Client, r *resource.Resource) *Commit {
	return &Commit{Resource: r, client: c}
}

// Wrap returns the typed wrapper for r's Kind.
func (c *Client) Wrap(r *resource.Resource) any {
	switch r.Kind() {
	case resource.KindRepo:
		return newRepo(c, r)
	case resource.KindUser:
		return newUser(c, r)
	case resource.KindGist:
		return newGist(c, r)
	case resource.KindGistFile:
		return newGistFile(c, r)
	case resource.KindGistHistory:
		return newGistHistory(c, r)
	case resource.KindGistComment:
		return newGistComment(c, r)
	case resource.KindComment:
		return newComment(c, r)
	case resource.KindCommit:
		return newCommit(c, r)
	default:
		return r
	}
}

// embeddedUser reads a user object embedded under the first present key.
// It returns nil when none of the keys holds an object.
func embeddedUser(c *Client, owner *resource.Resource, keys ...string) *User {
	for _, key := range keys {
		if r := resource.FromValue(resource.KindUser, owner.Get(key)); r != nil {
			return newUser(c, r)
		}
	}
	return nil
}

// Login returns the account name.
func (u *User) Login() string {
	return u.Get("login").String()
}

// ID returns the comment id.
func (c *Comment) ID() resource.Identity {
	return c.Identity()
}

// Body returns the comment text.
func (c *Comment) Body() string {
	return c.Get("body").String()
}

// SHA returns the commit hash.
func (c *Commit) SHA() string {
	return c.Get("sha").String()
}

// FullName returns "owner/name".
func (r *Repo) FullName() string {
	if name := r.Get("full_name").String(); name != "" {
		return name
	}
	owner := r.Get("owner").Field("login").String()
	return owner + "/" + r.Get("name").String()
}
