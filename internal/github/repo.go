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
	"strings"

	"github.com/sirseerhq/octopi/internal/request"
	"github.com/sirseerhq/octopi/internal/resource"
)

// SplitRepoName splits "owner/name". Both parts must be non-empty.
func SplitRepoName(fullName string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid repository %q: expected owner/name", fullName)
	}
	return owner, name, nil
}

// FindRepo fetches a repository by "owner/name".
func (c *Client) FindRepo(ctx context.Context, fullName string) (*Repo, error) {
	owner, name, err := SplitRepoName(fullName)
	if err != nil {
		return nil, fmt.Errorf("find_repo: %w", err)
	}
	r, err := c.fetch(ctx, "find_repo", repoPath(owner+"/"+name), resource.KindRepo)
	if err != nil {
		return nil, err
	}
	return newRepo(c, r), nil
}

func repoPath(fullName string) string {
	return "repos/" + fullName
}

// Name returns the repository name without the owner.
func (r *Repo) Name() string {
	return r.Get("name").String()
}

// Description returns the description, "" when unset.
func (r *Repo) Description() string {
	return r.Get("description").String()
}

// Owner returns the embedded owner.
func (r *Repo) Owner() *User {
	owner, _ := resolve(context.Background(), r.client, r.Resource, "owner", true, func() (*User, error) {
		return embeddedUser(r.client, r.Resource, "owner"), nil
	})
	return owner
}

// Comments fetches the repository's commit comments once and memoizes them.
// Each comment links back to r.
func (r *Repo) Comments(ctx context.Context) (*Collection[*Comment], error) {
	return resolve(ctx, r.client, r.Resource, "comments", false, func() (*Collection[*Comment], error) {
		path := repoPath(r.FullName()) + "/comments"
		list, err := r.client.fetchList(ctx, "list_repo_comments", path, resource.KindComment,
			resource.WithParent(r.Resource))
		if err != nil {
			return nil, err
		}
		scope := Scope{Path: path, Kind: resource.KindComment, Owner: r.Resource}
		return newCollection(r.client, scope, list, newComment, &createPolicy{
			operation:    "create_commit_comment",
			encoding:     request.EncodingJSON,
			requiresAuth: true,
		}), nil
	})
}

// Commits fetches the default branch's recent commits once and memoizes them.
func (r *Repo) Commits(ctx context.Context) (*Collection[*Commit], error) {
	return resolve(ctx, r.client, r.Resource, "commits", false, func() (*Collection[*Commit], error) {
		path := repoPath(r.FullName()) + "/commits"
		list, err := r.client.fetchList(ctx, "list_commits", path, resource.KindCommit,
			resource.WithParent(r.Resource))
		if err != nil {
			return nil, err
		}
		return newCollection(r.client, Scope{Path: path, Kind: resource.KindCommit, Owner: r.Resource}, list, newCommit, nil), nil
	})
}

// FindComment fetches one commit comment of the repository fullName.
func (c *Client) FindComment(ctx context.Context, fullName string, id resource.Identity) (*Comment, error) {
	if _, _, err := SplitRepoName(fullName); err != nil {
		return nil, fmt.Errorf("find_comment: %w", err)
	}
	if id.IsZero() {
		return nil, fmt.Errorf("find_comment: empty comment id")
	}
	r, err := c.fetch(ctx, "find_comment", repoPath(fullName)+"/comments/"+id.String(), resource.KindComment)
	if err != nil {
		return nil, err
	}
	return newComment(c, r), nil
}

// User returns the comment's author.
func (c *Comment) User() *User {
	user, _ := resolve(context.Background(), c.client, c.Resource, "user", true, func() (*User, error) {
		return embeddedUser(c.client, c.Resource, "user"), nil
	})
	return user
}

// CommitID returns the commented commit's hash.
func (c *Comment) CommitID() string {
	return c.Get("commit_id").String()
}

// Repo returns the repository the comment belongs to. Comments loaded through
// Repo.Comments answer from their parent; others fetch the repository named
// in the comment URL once.
func (c *Comment) Repo(ctx context.Context) (*Repo, error) {
	if parent := c.Parent(); parent != nil && parent.Kind() == resource.KindRepo {
		return newRepo(c.client, parent), nil
	}
	return resolve(ctx, c.client, c.Resource, "repo", false, func() (*Repo, error) {
		fullName, err := c.repoName()
		if err != nil {
			return nil, err
		}
		return c.client.FindRepo(ctx, fullName)
	})
}

// repoName returns "owner/name" for the comment's repository.
func (c *Comment) repoName() (string, error) {
	if parent := c.Parent(); parent != nil && parent.Kind() == resource.KindRepo {
		return newRepo(c.client, parent).FullName(), nil
	}
	_, rest, ok := strings.Cut(c.URL(), "/repos/")
	if ok {
		if owner, tail, ok := strings.Cut(rest, "/"); ok {
			if name, _, _ := strings.Cut(tail, "/"); owner != "" && name != "" {
				return owner + "/" + name, nil
			}
		}
	}
	return "", fmt.Errorf("comment %s: cannot determine repository from url %q", c.Identity(), c.URL())
}

func (c *Comment) path() (string, error) {
	fullName, err := c.repoName()
	if err != nil {
		return "", err
	}
	return repoPath(fullName) + "/comments/" + c.Identity().String(), nil
}

// Update replaces the comment body and returns the updated comment.
func (c *Comment) Update(ctx context.Context, body string) (*Comment, error) {
	const op = "update_commit_comment"
	if err := c.client.require(op); err != nil {
		return nil, err
	}
	path, err := c.path()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var opts []resource.Option
	if parent := c.Parent(); parent != nil {
		opts = append(opts, resource.WithParent(parent))
	}
	r, err := c.client.send(ctx, op, http.MethodPatch, path,
		request.NewParams("body", body), request.EncodingJSON, resource.KindComment, opts...)
	if err != nil {
		return nil, err
	}
	return newComment(c.client, r), nil
}

// Delete removes the comment.
func (c *Comment) Delete(ctx context.Context) error {
	const op = "delete_commit_comment"
	if err := c.client.require(op); err != nil {
		return err
	}
	path, err := c.path()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	_, err = c.client.call(ctx, op, http.MethodDelete, path, nil, request.EncodingNone)
	return err
}

// Repo returns the repository the commit was listed from, or nil.
func (c *Commit) Repo() *Repo {
	if parent := c.Parent(); parent != nil && parent.Kind() == resource.KindRepo {
		return newRepo(c.client, parent)
	}
	return nil
}

// Message returns the commit message.
func (c *Commit) Message() string {
	return c.Get("commit").Field("message").String()
}

// Author returns the GitHub account of the author, or nil when GitHub could
// not match the commit email to one.
func (c *Commit) Author() *User {
	return embeddedUser(c.client, c.Resource, "author")
}
