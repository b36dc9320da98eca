package models

// RepoSummary is the compact repository shape returned by list and search actions.
type RepoSummary struct {
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language,omitempty"`
	Stars       int    `json:"stars"`
	Forks       int    `json:"forks"`
	Private     bool   `json:"private"`
	URL         string `json:"url"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// Repository is the full detail shape returned by get_repo.
type Repository struct {
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Owner         string `json:"owner"`
	Description   string `json:"description,omitempty"`
	Language      string `json:"language,omitempty"`
	Stars         int    `json:"stars"`
	Forks         int    `json:"forks"`
	OpenIssues    int    `json:"open_issues"`
	DefaultBranch string `json:"default_branch"`
	Private       bool   `json:"private"`
	URL           string `json:"url"`
	CreatedAt     string `json:"created_at,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

// ListReposResult is the normalized result of list_repos.
type ListReposResult struct {
	Username string        `json:"username"`
	Count    int           `json:"count"`
	Repos    []RepoSummary `json:"repos"`
}

// RunSummary describes one workflow run in a check_ci_status result.
type RunSummary struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Conclusion string `json:"conclusion,omitempty"`
	Branch     string `json:"branch"`
	Commit     string `json:"commit"`
	URL        string `json:"url"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// CheckCIResult is the normalized result of check_ci_status.
type CheckCIResult struct {
	Repo string       `json:"repo"`
	Runs []RunSummary `json:"runs"`
}

// CommitSummary describes one commit in a get_recent_activity result.
// Message carries only the first line of the upstream commit message.
type CommitSummary struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
	Author  string `json:"author,omitempty"`
	Date    string `json:"date,omitempty"`
	URL     string `json:"url"`
}

// RecentActivityResult is the normalized result of get_recent_activity.
type RecentActivityResult struct {
	Repo          string          `json:"repo"`
	DefaultBranch string          `json:"default_branch"`
	Commits       []CommitSummary `json:"commits"`
}

// Issue is the normalized result of create_issue.
type Issue struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	State  string `json:"state"`
	URL    string `json:"url"`
}

// PullRequest is the normalized result of create_pull_request.
type PullRequest struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	State  string `json:"state"`
	Head   string `json:"head"`
	Base   string `json:"base"`
	URL    string `json:"url"`
}

// SearchReposResult is the normalized result of search_repos. Query holds the
// effective query sent upstream, including the acting-user scope qualifier.
type SearchReposResult struct {
	Query      string        `json:"query"`
	TotalCount int           `json:"total_count"`
	Repos      []RepoSummary `json:"repos"`
}
