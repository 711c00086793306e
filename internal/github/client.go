// Package github looks up public repository metadata for profile enrichment.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"devlink/internal/middleware"

	"github.com/go-resty/resty/v2"
)

// ErrProfileNotFound is returned for any failed lookup; the enrichment is
// best-effort and all upstream failures are reported to the caller the same way.
var ErrProfileNotFound = errors.New("no github profile found")

// Repo is the subset of GitHub repository metadata exposed to clients.
type Repo struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	FullName        string `json:"full_name"`
	HTMLURL         string `json:"html_url"`
	Description     string `json:"description"`
	StargazersCount int    `json:"stargazers_count"`
	ForksCount      int    `json:"forks_count"`
	CreatedAt       string `json:"created_at"`
}

// Client fetches repositories from the GitHub API.
type Client struct {
	http         *resty.Client
	clientID     string
	clientSecret string
}

// NewClient creates a GitHub client. baseURL is configurable so tests can
// point it at a local server.
func NewClient(baseURL, clientID, clientSecret string) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("User-Agent", "devlink-api")

	return &Client{
		http:         httpClient,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// ListRepos returns the user's five most recent public repositories.
func (c *Client) ListRepos(ctx context.Context, username string) ([]Repo, error) {
	var repos []Repo

	req := c.http.R().
		SetContext(ctx).
		SetResult(&repos).
		SetQueryParam("per_page", "5").
		SetQueryParam("sort", "created:asc")

	if c.clientID != "" {
		req.SetQueryParam("client_id", c.clientID)
		req.SetQueryParam("client_secret", c.clientSecret)
	}

	resp, err := req.Get(fmt.Sprintf("/users/%s/repos", url.PathEscape(username)))
	if err != nil {
		middleware.GithubLookupErrors.Inc()
		return nil, ErrProfileNotFound
	}
	if resp.StatusCode() != 200 {
		middleware.GithubLookupErrors.Inc()
		return nil, ErrProfileNotFound
	}

	return repos, nil
}
