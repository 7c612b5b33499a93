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
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gistBody = `{
  "url": "https://api.github.com/gists/1115247",
  "id": "1115247",
  "description": "Some code I want to share",
  "public": true,
  "comments": 0,
  "user": {"login": "rails3book", "id": 893541},
  "files": {"file.rb": {"filename": "file.rb", "size": 23}},
  "history": [{"version": "abc"}, {"version": "def"}],
  "git_pull_url": null,
  "created_at": "2011-07-31T00:39:54Z"
}`

func TestParse_AttributeFidelity(t *testing.T) {
	g, err := Parse(KindGist, []byte(gistBody))
	require.NoError(t, err)

	assert.Equal(t, KindGist, g.Kind())
	assert.Equal(t, Identity("1115247"), g.Identity())
	assert.Equal(t, "https://api.github.com/gists/1115247", g.URL())
	assert.Equal(t, []string{"url", "id", "description", "public", "comments", "user", "files", "history", "git_pull_url", "created_at"}, g.Keys())
	assert.Equal(t, 10, g.Len())

	desc, ok := g.Get("description").Str()
	require.True(t, ok)
	assert.Equal(t, "Some code I want to share", desc)

	public, ok := g.Get("public").Bool()
	require.True(t, ok)
	assert.True(t, public)

	comments, ok := g.Get("comments").Int()
	require.True(t, ok)
	assert.Equal(t, int64(0), comments)

	// Timestamps are not parsed.
	created, ok := g.Get("created_at").Str()
	require.True(t, ok)
	assert.Equal(t, "2011-07-31T00:39:54Z", created)

	assert.Equal(t, "rails3book", g.Get("user").Field("login").String())
}

func TestParse_AbsentAndNull(t *testing.T) {
	g, err := Parse(KindGist, []byte(gistBody))
	require.NoError(t, err)

	missing := g.Get("forks")
	assert.True(t, missing.IsAbsent())
	assert.False(t, missing.IsNull())
	assert.True(t, missing.IsNil())
	assert.False(t, g.Has("forks"))
	assert.Nil(t, missing.Raw())
	assert.Equal(t, "", missing.String())
	assert.Error(t, missing.Decode(new(string)))

	null := g.Get("git_pull_url")
	assert.False(t, null.IsAbsent())
	assert.True(t, null.IsNull())
	assert.True(t, null.IsNil())
	assert.True(t, g.Has("git_pull_url"))
	_, ok := null.Str()
	assert.False(t, ok)
}

func TestValue_NoCoercion(t *testing.T) {
	g, err := Parse(KindUser, []byte(`{"id": 893541, "login": "42", "ratio": 1.5, "site_admin": false}`))
	require.NoError(t, err)

	_, ok := g.Get("id").Str()
	assert.False(t, ok, "numbers are not strings")
	_, ok = g.Get("login").Int()
	assert.False(t, ok, "strings are not numbers")
	_, ok = g.Get("ratio").Int()
	assert.False(t, ok, "fractions are not integers")

	f, ok := g.Get("ratio").Float()
	require.True(t, ok)
	assert.Equal(t, 1.5, f)

	b, ok := g.Get("site_admin").Bool()
	require.True(t, ok)
	assert.False(t, b)

	_, ok = g.Get("login").Bool()
	assert.False(t, ok)
	assert.Equal(t, "893541", g.Get("id").String())
}

func TestValue_ObjectAndArray(t *testing.T) {
	g, err := Parse(KindGist, []byte(gistBody))
	require.NoError(t, err)

	files, ok := g.Get("files").Object()
	require.True(t, ok)
	assert.Equal(t, 1, files.Len())
	assert.Equal(t, "file.rb", files.Oldest().Key)

	history, ok := g.Get("history").Array()
	require.True(t, ok)
	require.Len(t, history, 2)
	assert.Equal(t, "def", history[1].Field("version").String())

	_, ok = g.Get("history").Object()
	assert.False(t, ok)
	_, ok = g.Get("files").Array()
	assert.False(t, ok)
	assert.True(t, g.Get("description").Field("x").IsAbsent())

	var user struct {
		Login string `json:"login"`
		ID    int    `json:"id"`
	}
	require.NoError(t, g.Get("user").Decode(&user))
	assert.Equal(t, 893541, user.ID)
}

func TestParse_Errors(t *testing.T) {
	for _, body := range []string{"", "[]", "null", `"x"`, "{"} {
		_, err := Parse(KindGist, []byte(body))
		assert.Error(t, err, body)
	}

	_, err := ParseList(KindGist, []byte(`{"id": "1"}`))
	assert.Error(t, err)

	_, err = ParseList(KindGist, []byte(`[{"id": "1"}, 3]`))
	assert.Error(t, err)
}

func TestParseList_ParentInjection(t *testing.T) {
	owner, err := Parse(KindGist, []byte(`{"id": "1115247"}`))
	require.NoError(t, err)

	comments, err := ParseList(KindGistComment, []byte(`[{"id": 1, "body": "a"}, {"id": 2, "body": "b"}]`), WithParent(owner))
	require.NoError(t, err)
	require.Len(t, comments, 2)

	for _, c := range comments {
		assert.True(t, c.Parent().Equal(owner))
		assert.Same(t, owner, c.Parent())
	}
	assert.Nil(t, owner.Parent())
}

func TestEqual(t *testing.T) {
	byString, err := Parse(KindGist, []byte(`{"id": "1115247", "description": "a"}`))
	require.NoError(t, err)
	byNumber, err := Parse(KindGist, []byte(`{"id": 1115247, "description": "b"}`))
	require.NoError(t, err)
	user, err := Parse(KindUser, []byte(`{"id": 1115247}`))
	require.NoError(t, err)
	noID, err := Parse(KindGist, []byte(`{"description": "a"}`))
	require.NoError(t, err)
	noID2, err := Parse(KindGist, []byte(`{"description": "a"}`))
	require.NoError(t, err)

	assert.True(t, byString.Equal(byNumber))
	assert.False(t, byString.Equal(user), "kind participates in equality")
	assert.False(t, noID.Equal(noID2), "empty identity never matches another instance")
	assert.True(t, noID.Equal(noID))
	assert.False(t, byString.Equal(nil))

	var nilRes *Resource
	assert.True(t, nilRes.Equal(nil))
}

func TestOptions(t *testing.T) {
	r, err := Parse(KindGistFile, []byte(`{"filename": "file.rb", "raw_url": "https://gist.github.com/raw/file.rb"}`),
		WithURL("https://api.github.com/gists/1"),
		WithIdentity("other.rb"),
	)
	require.NoError(t, err)
	assert.Equal(t, "https://api.github.com/gists/1", r.URL())
	assert.Equal(t, Identity("other.rb"), r.Identity())
	assert.Equal(t, "gist_file(other.rb)", r.String())
}

func TestFromValue(t *testing.T) {
	g, err := Parse(KindGist, []byte(gistBody))
	require.NoError(t, err)

	u := FromValue(KindUser, g.Get("user"), WithParent(g))
	require.NotNil(t, u)
	assert.Equal(t, Identity("893541"), u.Identity())
	assert.Same(t, g, u.Parent())

	assert.Nil(t, FromValue(KindUser, g.Get("git_pull_url")))
	assert.Nil(t, FromValue(KindUser, g.Get("missing")))
}

func TestMarshalJSON_KeepsOrder(t *testing.T) {
	r, err := Parse(KindComment, []byte(`{"z": 1, "a": "x", "m": null}`))
	require.NoError(t, err)

	out, err := r.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":"x","m":null}`, string(out))
}

func TestResolve_Memoizes(t *testing.T) {
	r, err := Parse(KindGist, []byte(`{"id": "1"}`))
	require.NoError(t, err)

	calls := 0
	fetch := func() (any, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	first, err := r.Resolve("comments", fetch)
	require.NoError(t, err)
	second, err := r.Resolve("comments", fetch)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.True(t, r.Resolved("comments"))
	assert.False(t, r.Resolved("forks"))
}

func TestResolve_ErrorsNotCached(t *testing.T) {
	r, err := Parse(KindGist, []byte(`{"id": "1"}`))
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = r.Resolve("comments", func() (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, r.Resolved("comments"))

	v, err := r.Resolve("comments", func() (any, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestResolve_ConcurrentFirstWriterWins(t *testing.T) {
	r, err := Parse(KindGist, []byte(`{"id": "1"}`))
	require.NoError(t, err)

	var n atomic.Int64
	var wg sync.WaitGroup
	results := make([]any, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := r.Resolve("owner", func() (any, error) {
				return n.Add(1), nil
			})
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	wg.Wait()

	for _, v := range results {
		assert.Equal(t, results[0], v)
	}
}

func TestResolveAs(t *testing.T) {
	r, err := Parse(KindGist, []byte(`{"id": "1"}`))
	require.NoError(t, err)

	s, err := ResolveAs(r, "name", func() (string, error) { return "x", nil })
	require.NoError(t, err)
	assert.Equal(t, "x", s)

	_, err = ResolveAs(r, "name", func() (int, error) { return 1, nil })
	assert.Error(t, err, "memoized value has a different type")
}
