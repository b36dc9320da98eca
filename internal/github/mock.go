package github

import (
	"context"

	"github.com/google/go-github/v66/github"
)

// MockClient implements Client for testing. Each method records its name in
// Calls so tests can assert that validation failures never reach the network.
type MockClient struct {
	Login    string
	LoginErr error

	Repos    []*github.Repository
	ReposErr error

	Repo    *github.Repository
	RepoErr error

	Runs    []*github.WorkflowRun
	RunsErr error

	Commits    []*github.RepositoryCommit
	CommitsErr error

	Issue    *github.Issue
	IssueErr error

	CreatedRepo    *github.Repository
	CreatedRepoErr error

	PR    *github.PullRequest
	PRErr error

	SearchResult *github.RepositoriesSearchResult
	SearchErr    error

	// Call tracking
	Calls      []string
	LoginCalls int

	LastUsername string
	LastOwner    string
	LastRepo     string
	LastSort     string
	LastLimit    int
	LastQuery    string
	LastTitle    string
	LastBody     string
	LastExtra    map[string]any
	LastRepoReq  RepoParams
	LastPullReq  PullRequestParams
}

func (m *MockClient) record(name string) {
	m.Calls = append(m.Calls, name)
}

func (m *MockClient) AuthenticatedLogin(ctx context.Context) (string, error) {
	m.record("AuthenticatedLogin")
	m.LoginCalls++
	return m.Login, m.LoginErr
}

func (m *MockClient) ListRepos(ctx context.Context, username, sort string, limit int) ([]*github.Repository, error) {
	m.record("ListRepos")
	m.LastUsername = username
	m.LastSort = sort
	m.LastLimit = limit
	return m.Repos, m.ReposErr
}

func (m *MockClient) GetRepo(ctx context.Context, owner, repo string) (*github.Repository, error) {
	m.record("GetRepo")
	m.LastOwner = owner
	m.LastRepo = repo
	return m.Repo, m.RepoErr
}

func (m *MockClient) ListWorkflowRuns(ctx context.Context, owner, repo string, limit int) ([]*github.WorkflowRun, error) {
	m.record("ListWorkflowRuns")
	m.LastOwner = owner
	m.LastRepo = repo
	m.LastLimit = limit
	return m.Runs, m.RunsErr
}

func (m *MockClient) ListCommits(ctx context.Context, owner, repo string, limit int) ([]*github.RepositoryCommit, error) {
	m.record("ListCommits")
	m.LastOwner = owner
	m.LastRepo = repo
	m.LastLimit = limit
	return m.Commits, m.CommitsErr
}

func (m *MockClient) CreateIssue(ctx context.Context, owner, repo, title, body string, extra map[string]any) (*github.Issue, error) {
	m.record("CreateIssue")
	m.LastOwner = owner
	m.LastRepo = repo
	m.LastTitle = title
	m.LastBody = body
	m.LastExtra = extra
	return m.Issue, m.IssueErr
}

func (m *MockClient) CreateRepo(ctx context.Context, params RepoParams) (*github.Repository, error) {
	m.record("CreateRepo")
	m.LastRepoReq = params
	return m.CreatedRepo, m.CreatedRepoErr
}

func (m *MockClient) CreatePullRequest(ctx context.Context, owner, repo string, params PullRequestParams) (*github.PullRequest, error) {
	m.record("CreatePullRequest")
	m.LastOwner = owner
	m.LastRepo = repo
	m.LastPullReq = params
	return m.PR, m.PRErr
}

func (m *MockClient) SearchRepos(ctx context.Context, query, sort string, limit int) (*github.RepositoriesSearchResult, error) {
	m.record("SearchRepos")
	m.LastQuery = query
	m.LastSort = sort
	m.LastLimit = limit
	return m.SearchResult, m.SearchErr
}

// Reset clears all tracking data for a fresh test.
func (m *MockClient) Reset() {
	m.Calls = nil
	m.LoginCalls = 0
	m.LastUsername = ""
	m.LastOwner = ""
	m.LastRepo = ""
	m.LastSort = ""
	m.LastLimit = 0
	m.LastQuery = ""
	m.LastTitle = ""
	m.LastBody = ""
	m.LastExtra = nil
	m.LastRepoReq = RepoParams{}
	m.LastPullReq = PullRequestParams{}
}

// Ensure MockClient implements the interface.
var _ Client = (*MockClient)(nil)
