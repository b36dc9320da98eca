package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

const userAgent = "gh-skill"

type options struct {
	baseURL    string
	httpClient *http.Client
}

// Option adjusts client construction.
type Option func(*options)

// WithBaseURL points the client at a different API root, e.g. a GitHub
// Enterprise host or an httptest server. The URL may omit the trailing slash.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// restClient implements Client over the go-github library.
type restClient struct {
	gh *github.Client
}

// NewClient builds a GitHub REST client. An empty token is allowed; requests
// then go out unauthenticated and are subject to the lower rate limit.
func NewClient(token string, opts ...Option) (Client, error) {
	var o options
	for _, fn := range opts {
		fn(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil && token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), src)
	}

	gh := github.NewClient(httpClient)
	gh.UserAgent = userAgent
	if o.baseURL != "" {
		u, err := url.Parse(o.baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base URL %q: %w", o.baseURL, err)
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		gh.BaseURL = u
	}

	return &restClient{gh: gh}, nil
}

// AuthenticatedLogin fetches the login of the user owning the current token.
func (c *restClient) AuthenticatedLogin(ctx context.Context) (string, error) {
	user, _, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return "", normalize(err, "authenticated user")
	}
	return user.GetLogin(), nil
}

// ListRepos fetches a single page of repositories owned by username.
func (c *restClient) ListRepos(ctx context.Context, username, sort string, limit int) ([]*github.Repository, error) {
	opts := &github.RepositoryListByUserOptions{
		Sort:        sort,
		ListOptions: github.ListOptions{PerPage: limit},
	}
	repos, _, err := c.gh.Repositories.ListByUser(ctx, username, opts)
	if err != nil {
		return nil, normalize(err, fmt.Sprintf("repositories of %s", username))
	}
	return repos, nil
}

// GetRepo fetches details for one repository.
func (c *restClient) GetRepo(ctx context.Context, owner, repo string) (*github.Repository, error) {
	r, _, err := c.gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, normalize(err, fmt.Sprintf("repository %s/%s", owner, repo))
	}
	return r, nil
}

// ListWorkflowRuns fetches the most recent workflow runs for a repository.
func (c *restClient) ListWorkflowRuns(ctx context.Context, owner, repo string, limit int) ([]*github.WorkflowRun, error) {
	opts := &github.ListWorkflowRunsOptions{
		ListOptions: github.ListOptions{PerPage: limit},
	}
	runs, _, err := c.gh.Actions.ListRepositoryWorkflowRuns(ctx, owner, repo, opts)
	if err != nil {
		return nil, normalize(err, fmt.Sprintf("workflow runs of %s/%s", owner, repo))
	}
	return runs.WorkflowRuns, nil
}

// ListCommits fetches a single page of recent commits for a repository.
func (c *restClient) ListCommits(ctx context.Context, owner, repo string, limit int) ([]*github.RepositoryCommit, error) {
	opts := &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: limit},
	}
	commits, _, err := c.gh.Repositories.ListCommits(ctx, owner, repo, opts)
	if err != nil {
		return nil, normalize(err, fmt.Sprintf("commits of %s/%s", owner, repo))
	}
	return commits, nil
}

// CreateIssue opens an issue. Keys in extra are merged into the POST body
// after the modeled fields, so upstream-only fields like labels or assignees
// pass through unmodeled.
func (c *restClient) CreateIssue(ctx context.Context, owner, repo, title, body string, extra map[string]any) (*github.Issue, error) {
	payload := map[string]any{"title": title}
	if body != "" {
		payload["body"] = body
	}
	for k, v := range extra {
		payload[k] = v
	}

	u := fmt.Sprintf("repos/%s/%s/issues", owner, repo)
	req, err := c.gh.NewRequest(http.MethodPost, u, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to build issue request: %w", err)
	}
	issue := new(github.Issue)
	if _, err := c.gh.Do(ctx, req, issue); err != nil {
		return nil, normalize(err, fmt.Sprintf("issue in %s/%s", owner, repo))
	}
	return issue, nil
}

// CreateRepo creates a repository under the account owning the token.
func (c *restClient) CreateRepo(ctx context.Context, params RepoParams) (*github.Repository, error) {
	repo := &github.Repository{
		Name:     github.String(params.Name),
		Private:  github.Bool(params.Private),
		AutoInit: github.Bool(params.AutoInit),
	}
	if params.Description != "" {
		repo.Description = github.String(params.Description)
	}
	created, _, err := c.gh.Repositories.Create(ctx, "", repo)
	if err != nil {
		return nil, normalize(err, fmt.Sprintf("repository %s", params.Name))
	}
	return created, nil
}

// CreatePullRequest opens a pull request in owner/repo.
func (c *restClient) CreatePullRequest(ctx context.Context, owner, repo string, params PullRequestParams) (*github.PullRequest, error) {
	pull := &github.NewPullRequest{
		Title: github.String(params.Title),
		Head:  github.String(params.Head),
		Base:  github.String(params.Base),
	}
	if params.Body != "" {
		pull.Body = github.String(params.Body)
	}
	if params.Draft {
		pull.Draft = github.Bool(true)
	}
	pr, _, err := c.gh.PullRequests.Create(ctx, owner, repo, pull)
	if err != nil {
		return nil, normalize(err, fmt.Sprintf("pull request in %s/%s", owner, repo))
	}
	return pr, nil
}

// SearchRepos runs a repository search with the given query string.
func (c *restClient) SearchRepos(ctx context.Context, query, sort string, limit int) (*github.RepositoriesSearchResult, error) {
	opts := &github.SearchOptions{
		Sort:        sort,
		ListOptions: github.ListOptions{PerPage: limit},
	}
	result, _, err := c.gh.Search.Repositories(ctx, query, opts)
	if err != nil {
		return nil, normalize(err, fmt.Sprintf("repository search %q", query))
	}
	return result, nil
}
