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

	"github.com/sirseerhq/octopi/internal/resource"
)

// FindUser fetches a user by login.
func (c *Client) FindUser(ctx context.Context, login string) (*User, error) {
	if login == "" {
		return nil, fmt.Errorf("find_user: empty login")
	}
	r, err := c.fetch(ctx, "find_user", "users/"+login, resource.KindUser)
	if err != nil {
		return nil, err
	}
	return newUser(c, r), nil
}

// CurrentUser fetches the authenticated user.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	const op = "current_user"
	if err := c.require(op); err != nil {
		return nil, err
	}
	r, err := c.fetch(ctx, op, "user", resource.KindUser)
	if err != nil {
		return nil, err
	}
	return newUser(c, r), nil
}

// Name returns the display name, "" when unset.
func (u *User) Name() string {
	return u.Get("name").String()
}

// Gists fetches the user's public gists once and memoizes them.
func (u *User) Gists(ctx context.Context) (*Collection[*Gist], error) {
	return resolve(ctx, u.client, u.Resource, "gists", false, func() (*Collection[*Gist], error) {
		return u.client.gistCollection(ctx, "list_user_gists", "users/"+u.Login()+"/gists", u.Resource)
	})
}

// Repos fetches the user's public repositories once and memoizes them.
func (u *User) Repos(ctx context.Context) (*Collection[*Repo], error) {
	return resolve(ctx, u.client, u.Resource, "repos", false, func() (*Collection[*Repo], error) {
		path := "users/" + u.Login() + "/repos"
		list, err := u.client.fetchList(ctx, "list_user_repos", path, resource.KindRepo,
			resource.WithParent(u.Resource))
		if err != nil {
			return nil, err
		}
		return newCollection(u.client, Scope{Path: path, Kind: resource.KindRepo, Owner: u.Resource}, list, newRepo, nil), nil
	})
}
