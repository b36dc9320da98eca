package action

import (
	"context"
	"encoding/json"

	"github.com/assistkit/gh-skill/internal/credentials"
	"github.com/assistkit/gh-skill/internal/models"
)

const defaultActivityLimit = 10

type recentActivityParams struct {
	Repo  string `json:"repo"`
	Limit int    `json:"limit"`
}

func (s *Service) recentActivityDefinition() *Definition {
	return &Definition{
		Name:        ActionRecentActivity,
		Description: "List recent commits in one of the acting user's repositories.",
		Kind:        KindRead,
		Params: []ParamSpec{
			{Name: "repo", Type: "string", Description: "Repository name under the acting user.", Required: true},
			{Name: "limit", Type: "integer", Description: "Maximum number of commits to return.", Default: defaultActivityLimit},
		},
		handler: s.recentActivity,
	}
}

// recentActivity is the one action issuing a pair of reads: repository
// details (for the canonical full name and default branch) plus the commit
// listing.
func (s *Service) recentActivity(ctx context.Context, creds credentials.Credentials, raw json.RawMessage) (any, error) {
	var p recentActivityParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	if err := requireField("repo", p.Repo); err != nil {
		return nil, err
	}
	if p.Limit <= 0 {
		p.Limit = defaultActivityLimit
	}

	username, err := s.creds.Username(ctx, creds)
	if err != nil {
		return nil, err
	}
	client, err := s.clientFor(creds)
	if err != nil {
		return nil, err
	}

	repo, err := client.GetRepo(ctx, username, p.Repo)
	if err != nil {
		return nil, err
	}
	commits, err := client.ListCommits(ctx, username, p.Repo, p.Limit)
	if err != nil {
		return nil, err
	}

	result := &models.RecentActivityResult{
		Repo:          repo.GetFullName(),
		DefaultBranch: repo.GetDefaultBranch(),
		Commits:       make([]models.CommitSummary, 0, len(commits)),
	}
	for _, c := range commits {
		author := c.GetAuthor().GetLogin()
		if author == "" {
			author = c.GetCommit().GetAuthor().GetName()
		}
		result.Commits = append(result.Commits, models.CommitSummary{
			SHA:     shortSHA(c.GetSHA()),
			Message: firstLine(c.GetCommit().GetMessage()),
			Author:  author,
			Date:    timeString(c.GetCommit().GetAuthor().GetDate()),
			URL:     c.GetHTMLURL(),
		})
	}
	if len(result.Commits) > p.Limit {
		result.Commits = result.Commits[:p.Limit]
	}
	return result, nil
}
