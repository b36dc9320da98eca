package action

import (
	"context"
	"encoding/json"

	"github.com/assistkit/gh-skill/internal/credentials"
	"github.com/assistkit/gh-skill/internal/models"
)

type createIssueParams struct {
	Repo  string         `json:"repo"`
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Extra map[string]any `json:"extra"`
}

func (s *Service) createIssueDefinition() *Definition {
	return &Definition{
		Name:        ActionCreateIssue,
		Description: "Open an issue in one of the acting user's repositories.",
		Kind:        KindWrite,
		Params: []ParamSpec{
			{Name: "repo", Type: "string", Description: "Repository name under the acting user.", Required: true},
			{Name: "title", Type: "string", Description: "Issue title.", Required: true},
			{Name: "body", Type: "string", Description: "Issue body."},
			{Name: "extra", Type: "object", Description: "Additional upstream fields (labels, assignees, ...) merged into the request."},
		},
		handler: s.createIssue,
	}
}

func (s *Service) createIssue(ctx context.Context, creds credentials.Credentials, raw json.RawMessage) (any, error) {
	var p createIssueParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	if err := requireField("repo", p.Repo); err != nil {
		return nil, err
	}
	if err := requireField("title", p.Title); err != nil {
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

	issue, err := client.CreateIssue(ctx, username, p.Repo, p.Title, p.Body, p.Extra)
	if err != nil {
		return nil, err
	}
	return &models.Issue{
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		State:  issue.GetState(),
		URL:    issue.GetHTMLURL(),
	}, nil
}
