package action

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/assistkit/gh-skill/internal/credentials"
	"github.com/assistkit/gh-skill/internal/github"
	"github.com/assistkit/gh-skill/internal/models"
)

const (
	defaultListLimit = 30
	defaultListSort  = "updated"
)

var (
	listSortValues   = []string{"created", "updated", "pushed", "full_name"}
	searchSortValues = []string{"stars", "updated", "created"}
)

type listReposParams struct {
	Limit    int    `json:"limit"`
	Sort     string `json:"sort"`
	Language string `json:"language"`
}

func (s *Service) listReposDefinition() *Definition {
	return &Definition{
		Name:        ActionListRepos,
		Description: "List repositories owned by the acting user.",
		Kind:        KindRead,
		Params: []ParamSpec{
			{Name: "limit", Type: "integer", Description: "Maximum number of repositories to return.", Default: defaultListLimit},
			{Name: "sort", Type: "string", Description: "Sort order for the listing.", Default: defaultListSort, Enum: listSortValues},
			{Name: "language", Type: "string", Description: "Only return repositories whose primary language matches (case-insensitive)."},
		},
		handler: s.listRepos,
	}
}

func (s *Service) listRepos(ctx context.Context, creds credentials.Credentials, raw json.RawMessage) (any, error) {
	var p listReposParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	if p.Limit <= 0 {
		p.Limit = defaultListLimit
	}
	if p.Sort == "" {
		p.Sort = defaultListSort
	}
	if err := validateEnum("sort", p.Sort, listSortValues); err != nil {
		return nil, err
	}

	username, err := s.creds.Username(ctx, creds)
	if err != nil {
		return nil, err
	}
	client, err := s.clientFor(creds)
	if err != nil {
		return nil, err
	}

	repos, err := client.ListRepos(ctx, username, p.Sort, p.Limit)
	if err != nil {
		return nil, err
	}

	summaries := summarizeRepos(repos, p.Language, p.Limit)
	return &models.ListReposResult{
		Username: username,
		Count:    len(summaries),
		Repos:    summaries,
	}, nil
}

type repoRefParams struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
}

func (p repoRefParams) validate() error {
	if err := requireField("owner", p.Owner); err != nil {
		return err
	}
	return requireField("repo", p.Repo)
}

func (s *Service) getRepoDefinition() *Definition {
	return &Definition{
		Name:        ActionGetRepo,
		Description: "Fetch details for one repository.",
		Kind:        KindRead,
		Params: []ParamSpec{
			{Name: "owner", Type: "string", Description: "Repository owner.", Required: true},
			{Name: "repo", Type: "string", Description: "Repository name.", Required: true},
		},
		handler: s.getRepo,
	}
}

func (s *Service) getRepo(ctx context.Context, creds credentials.Credentials, raw json.RawMessage) (any, error) {
	var p repoRefParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	client, err := s.clientFor(creds)
	if err != nil {
		return nil, err
	}
	repo, err := client.GetRepo(ctx, p.Owner, p.Repo)
	if err != nil {
		return nil, err
	}
	return repoDetail(repo), nil
}

type createRepoParams struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Private     *bool  `json:"private"`
	AutoInit    *bool  `json:"auto_init"`
}

func (s *Service) createRepoDefinition() *Definition {
	return &Definition{
		Name:        ActionCreateRepo,
		Description: "Create a repository under the account owning the token.",
		Kind:        KindWrite,
		Params: []ParamSpec{
			{Name: "name", Type: "string", Description: "Name of the new repository.", Required: true},
			{Name: "description", Type: "string", Description: "Repository description."},
			{Name: "private", Type: "boolean", Description: "Create as a private repository.", Default: false},
			{Name: "auto_init", Type: "boolean", Description: "Initialize with an empty commit.", Default: true},
		},
		handler: s.createRepo,
	}
}

// createRepo never resolves the acting username: the endpoint always creates
// under the token's account, so the lookup would be dead work.
func (s *Service) createRepo(ctx context.Context, creds credentials.Credentials, raw json.RawMessage) (any, error) {
	var p createRepoParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	if err := requireField("name", p.Name); err != nil {
		return nil, err
	}

	params := github.RepoParams{
		Name:        p.Name,
		Description: p.Description,
		AutoInit:    true,
	}
	if p.Private != nil {
		params.Private = *p.Private
	}
	if p.AutoInit != nil {
		params.AutoInit = *p.AutoInit
	}

	client, err := s.clientFor(creds)
	if err != nil {
		return nil, err
	}
	created, err := client.CreateRepo(ctx, params)
	if err != nil {
		return nil, err
	}
	return repoDetail(created), nil
}

type searchReposParams struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
	Sort  string `json:"sort"`
}

func (s *Service) searchReposDefinition() *Definition {
	return &Definition{
		Name:        ActionSearchRepos,
		Description: "Search the acting user's own repositories.",
		Kind:        KindRead,
		Params: []ParamSpec{
			{Name: "query", Type: "string", Description: "Search terms. The acting-user scope is appended automatically.", Required: true},
			{Name: "limit", Type: "integer", Description: "Maximum number of results.", Default: defaultListLimit},
			{Name: "sort", Type: "string", Description: "Result ordering; best match when omitted.", Enum: searchSortValues},
		},
		handler: s.searchRepos,
	}
}

// searchRepos deliberately narrows every query to the acting user's account;
// callers cannot search beyond it through this action.
func (s *Service) searchRepos(ctx context.Context, creds credentials.Credentials, raw json.RawMessage) (any, error) {
	var p searchReposParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	if err := requireField("query", strings.TrimSpace(p.Query)); err != nil {
		return nil, err
	}
	if p.Limit <= 0 {
		p.Limit = defaultListLimit
	}
	if err := validateEnum("sort", p.Sort, searchSortValues); err != nil {
		return nil, err
	}

	username, err := s.creds.Username(ctx, creds)
	if err != nil {
		return nil, err
	}
	client, err := s.clientFor(creds)
	if err != nil {
		return nil, err
	}

	effective := fmt.Sprintf("%s user:%s", strings.TrimSpace(p.Query), username)
	result, err := client.SearchRepos(ctx, effective, p.Sort, p.Limit)
	if err != nil {
		return nil, err
	}

	summaries := summarizeRepos(result.Repositories, "", p.Limit)
	return &models.SearchReposResult{
		Query:      effective,
		TotalCount: result.GetTotal(),
		Repos:      summaries,
	}, nil
}
