package github

import (
	"context"

	"github.com/google/go-github/v66/github"
)

// PullRequestParams carries the upstream payload for opening a pull request.
type PullRequestParams struct {
	Title string
	Head  string
	Base  string
	Body  string
	Draft bool
}

// RepoParams carries the upstream payload for creating a repository.
type RepoParams struct {
	Name        string
	Description string
	Private     bool
	AutoInit    bool
}

// Client defines the GitHub operations used by the action adapters. Every
// method performs exactly one API request and returns either the upstream
// payload or an error normalized by this package.
type Client interface {
	AuthenticatedLogin(ctx context.Context) (string, error)
	ListRepos(ctx context.Context, username, sort string, limit int) ([]*github.Repository, error)
	GetRepo(ctx context.Context, owner, repo string) (*github.Repository, error)
	ListWorkflowRuns(ctx context.Context, owner, repo string, limit int) ([]*github.WorkflowRun, error)
	ListCommits(ctx context.Context, owner, repo string, limit int) ([]*github.RepositoryCommit, error)
	CreateIssue(ctx context.Context, owner, repo, title, body string, extra map[string]any) (*github.Issue, error)
	CreateRepo(ctx context.Context, params RepoParams) (*github.Repository, error)
	CreatePullRequest(ctx context.Context, owner, repo string, params PullRequestParams) (*github.PullRequest, error)
	SearchRepos(ctx context.Context, query, sort string, limit int) (*github.RepositoriesSearchResult, error)
}

// Ensure the REST implementation satisfies the interface.
var _ Client = (*restClient)(nil)
