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

// Package github maps GitHub's REST API onto typed, relationship-aware
// resources: repositories, commit comments, users, gists with their files,
// history and comments.
//
// A Client owns the collaborators every call needs: the request builder, the
// auth.Context that signs requests, and the transport.Transport that executes
// them. Finders return typed wrappers around resource.Resource; relations on
// those wrappers are resolved lazily, memoized per instance, and routed
// through the same Client, so they share its credential and base URL.
//
// Basic usage:
//
//	client, err := github.NewClient(github.Config{})
//	if err != nil {
//	    return err
//	}
//	gist, err := client.FindGist(ctx, "1115247")
//	if err != nil {
//	    return err // errors.Is(err, octoerrors.ErrNotFound) for a 404
//	}
//	for _, f := range gist.Files() {
//	    fmt.Println(f.Filename(), f.Gist().Equal(gist.Resource))
//	}
//
// Operations that need a credential (MyGists, StarredGists, Star, ...) fail
// with errors.ErrNotAuthenticated before any request is sent when the
// Client's auth.Context is empty.
package github
