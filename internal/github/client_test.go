package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRepos(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Repo{
			{ID: 1, Name: "devlink", FullName: "octocat/devlink", StargazersCount: 12},
		})
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "cid", "csecret")

	repos, err := client.ListRepos(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, "devlink", repos[0].Name)
	assert.Equal(t, 12, repos[0].StargazersCount)

	assert.Equal(t, "/users/octocat/repos", gotPath)
	assert.Equal(t, "5", gotQuery["per_page"])
	assert.Equal(t, "created:asc", gotQuery["sort"])
	assert.Equal(t, "cid", gotQuery["client_id"])
	assert.Equal(t, "csecret", gotQuery["client_secret"])
}

func TestListReposUnknownUser(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "", "")

	_, err := client.ListRepos(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestListReposServerUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // shut down before the request

	client := NewClient(ts.URL, "", "")

	_, err := client.ListRepos(context.Background(), "octocat")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestListReposEscapesUsername(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		json.NewEncoder(w).Encode([]Repo{})
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "", "")

	_, err := client.ListRepos(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, "/users/a%2Fb/repos", gotPath)
}
