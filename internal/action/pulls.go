package action

import (
	"context"
	"encoding/json"

	"github.com/assistkit/gh-skill/internal/credentials"
	"github.com/assistkit/gh-skill/internal/github"
	"github.com/assistkit/gh-skill/internal/models"
)

const defaultBaseBranch = "main"

type createPRParams struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
	Title string `json:"title"`
	Head  string `json:"head"`
	Base  string `json:"base"`
	Body  string `json:"body"`
	Draft bool   `json:"draft"`
}

func (s *Service) createPullRequestDefinition() *Definition {
	return &Definition{
		Name:        ActionCreatePR,
		Description: "Open a pull request.",
		Kind:        KindWrite,
		Params: []ParamSpec{
			{Name: "repo", Type: "string", Description: "Repository name.", Required: true},
			{Name: "title", Type: "string", Description: "Pull request title.", Required: true},
			{Name: "head", Type: "string", Description: "Branch holding the changes.", Required: true},
			{Name: "base", Type: "string", Description: "Branch to merge into.", Default: defaultBaseBranch},
			{Name: "owner", Type: "string", Description: "Repository owner; the acting user when omitted."},
			{Name: "body", Type: "string", Description: "Pull request description."},
			{Name: "draft", Type: "boolean", Description: "Open as a draft.", Default: false},
		},
		handler: s.createPullRequest,
	}
}

// createPullRequest resolves the acting username only when no explicit owner
// is given.
func (s *Service) createPullRequest(ctx context.Context, creds credentials.Credentials, raw json.RawMessage) (any, error) {
	var p createPRParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	if err := requireField("repo", p.Repo); err != nil {
		return nil, err
	}
	if err := requireField("title", p.Title); err != nil {
		return nil, err
	}
	if err := requireField("head", p.Head); err != nil {
		return nil, err
	}
	if p.Base == "" {
		p.Base = defaultBaseBranch
	}

	owner := p.Owner
	if owner == "" {
		var err error
		owner, err = s.creds.Username(ctx, creds)
		if err != nil {
			return nil, err
		}
	}

	client, err := s.clientFor(creds)
	if err != nil {
		return nil, err
	}
	pr, err := client.CreatePullRequest(ctx, owner, p.Repo, github.PullRequestParams{
		Title: p.Title,
		Head:  p.Head,
		Base:  p.Base,
		Body:  p.Body,
		Draft: p.Draft,
	})
	if err != nil {
		return nil, err
	}
	return &models.PullRequest{
		Number: pr.GetNumber(),
		Title:  pr.GetTitle(),
		State:  pr.GetState(),
		Head:   pr.GetHead().GetRef(),
		Base:   pr.GetBase().GetRef(),
		URL:    pr.GetHTMLURL(),
	}, nil
}
