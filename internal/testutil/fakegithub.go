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

package testutil

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// Timestamp is reported for every created_at and updated_at.
const Timestamp = "2011-09-24T00:47:14Z"

type record = map[string]any

// FakeGitHub is an httptest server emulating the GitHub REST API.
type FakeGitHub struct {
	*httptest.Server

	requests atomic.Int64

	mu           sync.Mutex
	nextID       int
	passwords    map[string]string
	tokens       map[string]string
	users        map[string]record
	gists        map[string]record
	gistOrder    []string
	stars        map[string]map[string]bool
	gistComments map[string][]record
	repos        map[string]record
	repoComments map[string][]record
	failures     []int
}

// NewFakeGitHub starts a server and registers its shutdown with t.
func NewFakeGitHub(t *testing.T) *FakeGitHub {
	t.Helper()

	f := &FakeGitHub{
		nextID:       1000,
		passwords:    make(map[string]string),
		tokens:       make(map[string]string),
		users:        make(map[string]record),
		gists:        make(map[string]record),
		stars:        make(map[string]map[string]bool),
		gistComments: make(map[string][]record),
		repos:        make(map[string]record),
		repoComments: make(map[string][]record),
	}
	f.Server = httptest.NewServer(f.routes())
	t.Cleanup(f.Close)
	return f
}

// Requests returns how many requests the server has received.
func (f *FakeGitHub) Requests() int {
	return int(f.requests.Load())
}

// FailNext makes the next len(statuses) requests fail with those statuses.
func (f *FakeGitHub) FailNext(statuses ...int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = append(f.failures, statuses...)
}

// AddUser registers an account that may sign in with password, or with token
// when token is non-empty.
func (f *FakeGitHub) AddUser(login, password, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	f.users[login] = record{
		"login": login,
		"id":    f.nextID,
		"url":   f.URL + "/users/" + login,
		"type":  "User",
	}
	if password != "" {
		f.passwords[login] = password
	}
	if token != "" {
		f.tokens[token] = login
	}
}

// AddGist stores a gist owned by owner ("" for anonymous) and returns its id.
func (f *FakeGitHub) AddGist(owner, description string, public bool, files map[string]string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addGistLocked(owner, description, public, files)
}

// AddRepo stores the repository "owner/name".
func (f *FakeGitHub) AddRepo(owner, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	full := owner + "/" + name
	f.repos[full] = record{
		"id":             f.nextID,
		"name":           name,
		"full_name":      full,
		"owner":          f.users[owner],
		"private":        false,
		"url":            f.URL + "/repos/" + full,
		"html_url":       "https://github.com/" + full,
		"default_branch": "master",
		"created_at":     Timestamp,
		"updated_at":     Timestamp,
	}
}

// AddRepoComment stores a commit comment by author on repository fullName.
func (f *FakeGitHub) AddRepoComment(fullName, author, commitID, body string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addRepoCommentLocked(fullName, author, commitID, body)
}

// Starred reports whether login starred the gist.
func (f *FakeGitHub) Starred(gistID, login string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stars[gistID][login]
}

// Gist returns a copy of the stored gist, or nil.
func (f *FakeGitHub) Gist(id string) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.gists[id]
	if !ok {
		return nil
	}
	out := make(record, len(g))
	for k, v := range g {
		out[k] = v
	}
	return out
}

func (f *FakeGitHub) addGistLocked(owner, description string, public bool, files map[string]string) string {
	f.nextID++
	id := strconv.Itoa(f.nextID)

	fileRecords := make(record, len(files))
	for name, content := range files {
		fileRecords[name] = record{
			"filename": name,
			"size":     len(content),
			"raw_url":  fmt.Sprintf("https://gist.githubusercontent.com/raw/%s/%s", id, name),
			"content":  content,
		}
	}

	g := record{
		"id":           id,
		"url":          f.URL + "/gists/" + id,
		"html_url":     "https://gist.github.com/" + id,
		"git_pull_url": "git://gist.github.com/" + id + ".git",
		"description":  description,
		"public":       public,
		"files":        fileRecords,
		"comments":     0,
		"forks":        []any{},
		"history":      []any{},
		"created_at":   Timestamp,
		"updated_at":   Timestamp,
	}
	if user, ok := f.users[owner]; ok {
		g["owner"] = user
		g["user"] = user
	}
	f.gists[id] = g
	f.gistOrder = append(f.gistOrder, id)
	return id
}

func (f *FakeGitHub) addRepoCommentLocked(fullName, author, commitID, body string) int {
	f.nextID++
	id := f.nextID
	c := record{
		"id":         id,
		"url":        fmt.Sprintf("%s/repos/%s/comments/%d", f.URL, fullName, id),
		"body":       body,
		"commit_id":  commitID,
		"line":       nil,
		"position":   nil,
		"path":       nil,
		"user":       f.users[author],
		"created_at": Timestamp,
		"updated_at": Timestamp,
	}
	f.repoComments[fullName] = append(f.repoComments[fullName], c)
	return id
}

// login resolves the caller. ok is false when credentials were sent but
// are wrong.
func (f *FakeGitHub) login(r *http.Request) (login string, ok bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", true
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if token, found := strings.CutPrefix(header, "Bearer "); found {
		login, known := f.tokens[token]
		return login, known
	}
	if encoded, found := strings.CutPrefix(header, "Basic "); found {
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return "", false
		}
		user, password, _ := strings.Cut(string(raw), ":")
		if want, known := f.passwords[user]; known && want == password {
			return user, true
		}
	}
	return "", false
}

func (f *FakeGitHub) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /user", f.authed(func(w http.ResponseWriter, r *http.Request, login string) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, f.users[login])
	}))
	mux.HandleFunc("GET /users/{login}", f.handleUser)
	mux.HandleFunc("GET /users/{login}/gists", f.handleUserGists)
	mux.HandleFunc("GET /users/{login}/repos", f.handleUserRepos)

	mux.HandleFunc("GET /gists", f.authed(f.handleMyGists))
	mux.HandleFunc("GET /gists/starred", f.authed(f.handleStarredGists))
	mux.HandleFunc("POST /gists", f.handleCreateGist)
	mux.HandleFunc("GET /gists/{id}", f.handleGetGist)
	mux.HandleFunc("POST /gists/{id}", f.authed(f.handleUpdateGist))
	mux.HandleFunc("DELETE /gists/{id}", f.authed(f.handleDeleteGist))
	mux.HandleFunc("PUT /gists/{id}/star", f.authed(f.handleStar(true)))
	mux.HandleFunc("DELETE /gists/{id}/star", f.authed(f.handleStar(false)))
	mux.HandleFunc("GET /gists/{id}/star", f.authed(f.handleCheckStar))
	mux.HandleFunc("POST /gists/{id}/forks", f.authed(f.handleFork))
	mux.HandleFunc("GET /gists/{id}/comments", f.handleGistComments)
	mux.HandleFunc("POST /gists/{id}/comments", f.authed(f.handleCreateGistComment))

	mux.HandleFunc("GET /repos/{owner}/{name}", f.handleRepo)
	mux.HandleFunc("GET /repos/{owner}/{name}/comments", f.handleRepoComments)
	mux.HandleFunc("POST /repos/{owner}/{name}/comments", f.authed(f.handleCreateRepoComment))
	mux.HandleFunc("GET /repos/{owner}/{name}/comments/{id}", f.handleRepoComment)
	mux.HandleFunc("PATCH /repos/{owner}/{name}/comments/{id}", f.authed(f.handleUpdateRepoComment))
	mux.HandleFunc("DELETE /repos/{owner}/{name}/comments/{id}", f.authed(f.handleDeleteRepoComment))
	mux.HandleFunc("GET /repos/{owner}/{name}/commits", f.handleCommits)

	mux.HandleFunc("POST /graphql", f.authed(f.handleGraphQL))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)

		f.mu.Lock()
		var fail int
		if len(f.failures) > 0 {
			fail, f.failures = f.failures[0], f.failures[1:]
		}
		f.mu.Unlock()
		if fail != 0 {
			writeMessage(w, fail, http.StatusText(fail))
			return
		}

		if _, ok := f.login(r); !ok {
			writeMessage(w, http.StatusUnauthorized, "Bad credentials")
			return
		}
		mux.ServeHTTP(w, r)
	})
}

// authed rejects anonymous callers with 401 before calling next.
func (f *FakeGitHub) authed(next func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		login, _ := f.login(r)
		if login == "" {
			writeMessage(w, http.StatusUnauthorized, "Requires authentication")
			return
		}
		next(w, r, login)
	}
}

func (f *FakeGitHub) handleUser(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[r.PathValue("login")]
	if !ok {
		writeMessage(w, http.StatusNotFound, "Not Found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (f *FakeGitHub) gistsWhere(keep func(record) bool) []record {
	out := []record{}
	for _, id := range f.gistOrder {
		if g, ok := f.gists[id]; ok && keep(g) {
			out = append(out, g)
		}
	}
	return out
}

func ownerLogin(g record) string {
	if owner, ok := g["owner"].(record); ok {
		login, _ := owner["login"].(string)
		return login
	}
	return ""
}

func (f *FakeGitHub) handleUserGists(w http.ResponseWriter, r *http.Request) {
	login := r.PathValue("login")
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[login]; !ok {
		writeMessage(w, http.StatusNotFound, "Not Found")
		return
	}
	writeJSON(w, http.StatusOK, f.gistsWhere(func(g record) bool {
		return ownerLogin(g) == login && g["public"] == true
	}))
}

func (f *FakeGitHub) handleMyGists(w http.ResponseWriter, _ *http.Request, login string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, f.gistsWhere(func(g record) bool {
		return ownerLogin(g) == login
	}))
}

func (f *FakeGitHub) handleStarredGists(w http.ResponseWriter, _ *http.Request, login string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, f.gistsWhere(func(g record) bool {
		return f.stars[g["id"].(string)][login]
	}))
}

func (f *FakeGitHub) handleUserRepos(w http.ResponseWriter, r *http.Request) {
	login := r.PathValue("login")
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[login]; !ok {
		writeMessage(w, http.StatusNotFound, "Not Found")
		return
	}

	names := make([]string, 0, len(f.repos))
	for full := range f.repos {
		if strings.HasPrefix(full, login+"/") {
			names = append(names, full)
		}
	}
	sort.Strings(names)

	repos := make([]record, 0, len(names))
	for _, full := range names {
		repos = append(repos, f.repos[full])
	}
	writeJSON(w, http.StatusOK, repos)
}

// gistInput is the union of the form and JSON create/update payloads.
type gistInput struct {
	description *string
	public      *bool
	files       map[string]string
}

func readGistInput(r *http.Request) (gistInput, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return gistInput{}, err
	}
	in := gistInput{files: make(map[string]string)}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return gistInput{}, err
		}
		for key, vals := range values {
			switch {
			case key == "description":
				in.description = &vals[0]
			case key == "public":
				public := vals[0] == "true"
				in.public = &public
			case strings.HasPrefix(key, "files[") && strings.HasSuffix(key, "][content]"):
				name := strings.TrimSuffix(strings.TrimPrefix(key, "files["), "][content]")
				in.files[name] = vals[0]
			}
		}
		return in, nil
	}

	var wire struct {
		Description *string `json:"description"`
		Public      *bool   `json:"public"`
		Files       map[string]struct {
			Content string `json:"content"`
		} `json:"files"`
	}
	if err := json.Unmarshal(body, &wire); err != nil {
		return gistInput{}, err
	}
	in.description, in.public = wire.Description, wire.Public
	for name, file := range wire.Files {
		in.files[name] = file.Content
	}
	return in, nil
}

func (f *FakeGitHub) handleCreateGist(w http.ResponseWriter, r *http.Request) {
	login, _ := f.login(r)
	in, err := readGistInput(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Problems parsing JSON")
		return
	}
	if len(in.files) == 0 {
		writeValidation(w, "Gist", "files", "missing_field")
		return
	}

	description := ""
	if in.description != nil {
		description = *in.description
	}
	public := in.public == nil || *in.public

	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.addGistLocked(login, description, public, in.files)
	writeJSON(w, http.StatusCreated, f.gists[id])
}

func (f *FakeGitHub) handleGetGist(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.gists[r.PathValue("id")]
	if !ok {
		writeMessage(w, http.StatusNotFound, "Not Found")
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// ownedGist returns the gist when login owns it, writing 404 otherwise.
func (f *FakeGitHub) ownedGist(w http.ResponseWriter, id, login string) (record, bool) {
	g, ok := f.gists[id]
	if !ok || ownerLogin(g) != login {
		writeMessage(w, http.StatusNotFound, "Not Found")
		return nil, false
	}
	return g, true
}

func (f *FakeGitHub) handleUpdateGist(w http.ResponseWriter, r *http.Request, login string) {
	in, err := readGistInput(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Problems parsing JSON")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.ownedGist(w, r.PathValue("id"), login)
	if !ok {
		return
	}
	if in.description != nil {
		g["description"] = *in.description
	}
	if len(in.files) > 0 {
		files := g["files"].(record)
		for name, content := range in.files {
			files[name] = record{"filename": name, "size": len(content), "content": content}
		}
	}
	writeJSON(w, http.StatusOK, g)
}

func (f *FakeGitHub) handleDeleteGist(w http.ResponseWriter, r *http.Request, login string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := r.PathValue("id")
	if _, ok := f.ownedGist(w, id, login); !ok {
		return
	}
	delete(f.gists, id)
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeGitHub) handleStar(star bool) func(http.ResponseWriter, *http.Request, string) {
	return func(w http.ResponseWriter, r *http.Request, login string) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id := r.PathValue("id")
		if _, ok := f.gists[id]; !ok {
			writeMessage(w, http.StatusNotFound, "Not Found")
			return
		}
		if f.stars[id] == nil {
			f.stars[id] = make(map[string]bool)
		}
		if star {
			f.stars[id][login] = true
		} else {
			delete(f.stars[id], login)
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (f *FakeGitHub) handleCheckStar(w http.ResponseWriter, r *http.Request, login string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stars[r.PathValue("id")][login] {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (f *FakeGitHub) handleFork(w http.ResponseWriter, r *http.Request, login string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	source, ok := f.gists[r.PathValue("id")]
	if !ok {
		writeMessage(w, http.StatusNotFound, "Not Found")
		return
	}
	if ownerLogin(source) == login {
		writeValidation(w, "Gist", "forks", "already_exists")
		return
	}

	files := make(map[string]string)
	for name, file := range source["files"].(record) {
		content, _ := file.(record)["content"].(string)
		files[name] = content
	}
	id := f.addGistLocked(login, source["description"].(string), source["public"].(bool), files)
	source["forks"] = append(source["forks"].([]any), record{"id": id, "user": f.users[login]})
	writeJSON(w, http.StatusCreated, f.gists[id])
}

func (f *FakeGitHub) handleGistComments(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := r.PathValue("id")
	if _, ok := f.gists[id]; !ok {
		writeMessage(w, http.StatusNotFound, "Not Found")
		return
	}
	comments := f.gistComments[id]
	if comments == nil {
		comments = []record{}
	}
	writeJSON(w, http.StatusOK, comments)
}

type commentInput struct {
	Body     string `json:"body"`
	CommitID string `json:"commit_id"`
}

func (f *FakeGitHub) handleCreateGistComment(w http.ResponseWriter, r *http.Request, login string) {
	var in commentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Problems parsing JSON")
		return
	}
	if in.Body == "" {
		writeValidation(w, "GistComment", "body", "missing_field")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	gistID := r.PathValue("id")
	g, ok := f.gists[gistID]
	if !ok {
		writeMessage(w, http.StatusNotFound, "Not Found")
		return
	}
	f.nextID++
	c := record{
		"id":         f.nextID,
		"url":        fmt.Sprintf("%s/gists/%s/comments/%d", f.URL, gistID, f.nextID),
		"body":       in.Body,
		"user":       f.users[login],
		"created_at": Timestamp,
		"updated_at": Timestamp,
	}
	f.gistComments[gistID] = append(f.gistComments[gistID], c)
	g["comments"] = len(f.gistComments[gistID])
	writeJSON(w, http.StatusCreated, c)
}

func repoName(r *http.Request) string {
	return r.PathValue("owner") + "/" + r.PathValue("name")
}

func (f *FakeGitHub) handleRepo(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	repo, ok := f.repos[repoName(r)]
	if !ok {
		writeMessage(w, http.StatusNotFound, "Not Found")
		return
	}
	writeJSON(w, http.StatusOK, repo)
}

func (f *FakeGitHub) handleRepoComments(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	full := repoName(r)
	if _, ok := f.repos[full]; !ok {
		writeMessage(w, http.StatusNotFound, "Not Found")
		return
	}
	comments := f.repoComments[full]
	if comments == nil {
		comments = []record{}
	}
	writeJSON(w, http.StatusOK, comments)
}

func (f *FakeGitHub) handleCreateRepoComment(w http.ResponseWriter, r *http.Request, login string) {
	var in commentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Problems parsing JSON")
		return
	}
	if len(in.CommitID) != 40 {
		writeValidation(w, "CommitComment", "commit_id", "invalid")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	full := repoName(r)
	if _, ok := f.repos[full]; !ok {
		writeMessage(w, http.StatusNotFound, "Not Found")
		return
	}
	id := f.addRepoCommentLocked(full, login, in.CommitID, in.Body)
	writeJSON(w, http.StatusCreated, f.findRepoCommentLocked(full, id))
}

func (f *FakeGitHub) findRepoCommentLocked(full string, id int) record {
	for _, c := range f.repoComments[full] {
		if c["id"] == id {
			return c
		}
	}
	return nil
}

func (f *FakeGitHub) repoComment(w http.ResponseWriter, r *http.Request) (record, string, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	full := repoName(r)
	var c record
	if err == nil {
		c = f.findRepoCommentLocked(full, id)
	}
	if c == nil {
		writeMessage(w, http.StatusNotFound, "Not Found")
		return nil, "", false
	}
	return c, full, true
}

func (f *FakeGitHub) handleRepoComment(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, _, ok := f.repoComment(w, r); ok {
		writeJSON(w, http.StatusOK, c)
	}
}

func commentAuthor(c record) string {
	if user, ok := c["user"].(record); ok {
		login, _ := user["login"].(string)
		return login
	}
	return ""
}

func (f *FakeGitHub) handleUpdateRepoComment(w http.ResponseWriter, r *http.Request, login string) {
	var in commentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Problems parsing JSON")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	c, _, ok := f.repoComment(w, r)
	if !ok {
		return
	}
	if commentAuthor(c) != login {
		writeMessage(w, http.StatusForbidden, "Must have admin rights to Repository.")
		return
	}
	c["body"] = in.Body
	writeJSON(w, http.StatusOK, c)
}

func (f *FakeGitHub) handleDeleteRepoComment(w http.ResponseWriter, r *http.Request, login string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, full, ok := f.repoComment(w, r)
	if !ok {
		return
	}
	if commentAuthor(c) != login {
		writeMessage(w, http.StatusForbidden, "Must have admin rights to Repository.")
		return
	}
	kept := f.repoComments[full][:0]
	for _, other := range f.repoComments[full] {
		if other["id"] != c["id"] {
			kept = append(kept, other)
		}
	}
	f.repoComments[full] = kept
	w.WriteHeader(http.StatusNoContent)
}

// handleCommits lists one synthetic commit per distinct commented commit id.
func (f *FakeGitHub) handleCommits(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	full := repoName(r)
	if _, ok := f.repos[full]; !ok {
		writeMessage(w, http.StatusNotFound, "Not Found")
		return
	}

	seen := make(map[string]bool)
	var shas []string
	for _, c := range f.repoComments[full] {
		sha, _ := c["commit_id"].(string)
		if !seen[sha] {
			seen[sha] = true
			shas = append(shas, sha)
		}
	}
	sort.Strings(shas)

	commits := []record{}
	for _, sha := range shas {
		commits = append(commits, record{
			"sha":    sha,
			"url":    fmt.Sprintf("%s/repos/%s/commits/%s", f.URL, full, sha),
			"commit": record{"message": "Commit " + sha},
			"author": nil,
		})
	}
	writeJSON(w, http.StatusOK, commits)
}

func (f *FakeGitHub) handleGraphQL(w http.ResponseWriter, r *http.Request, login string) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !strings.Contains(req.Query, "viewer") {
		writeJSON(w, http.StatusOK, record{"errors": []record{{"message": "unsupported query"}}})
		return
	}
	writeJSON(w, http.StatusOK, record{"data": record{"viewer": record{"login": login}}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, record{
		"message":           message,
		"documentation_url": "https://docs.github.com/rest",
	})
}

func writeValidation(w http.ResponseWriter, resource, field, code string) {
	writeJSON(w, http.StatusUnprocessableEntity, record{
		"message": "Validation Failed",
		"errors":  []record{{"resource": resource, "field": field, "code": code}},
	})
}
