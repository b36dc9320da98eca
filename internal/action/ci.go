package action

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/assistkit/gh-skill/internal/credentials"
	"github.com/assistkit/gh-skill/internal/models"
)

// ciRunPageSize is fixed: the action always reports the five most recent runs.
const ciRunPageSize = 5

func (s *Service) checkCIStatusDefinition() *Definition {
	return &Definition{
		Name:        ActionCheckCIStatus,
		Description: "Report the five most recent workflow runs for a repository.",
		Kind:        KindRead,
		Params: []ParamSpec{
			{Name: "owner", Type: "string", Description: "Repository owner.", Required: true},
			{Name: "repo", Type: "string", Description: "Repository name.", Required: true},
		},
		handler: s.checkCIStatus,
	}
}

func (s *Service) checkCIStatus(ctx context.Context, creds credentials.Credentials, raw json.RawMessage) (any, error) {
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
	runs, err := client.ListWorkflowRuns(ctx, p.Owner, p.Repo, ciRunPageSize)
	if err != nil {
		return nil, err
	}

	result := &models.CheckCIResult{
		Repo: fmt.Sprintf("%s/%s", p.Owner, p.Repo),
		Runs: make([]models.RunSummary, 0, len(runs)),
	}
	for _, run := range runs {
		result.Runs = append(result.Runs, models.RunSummary{
			Name:       run.GetName(),
			Status:     run.GetStatus(),
			Conclusion: run.GetConclusion(),
			Branch:     run.GetHeadBranch(),
			Commit:     shortSHA(run.GetHeadSHA()),
			URL:        run.GetHTMLURL(),
			CreatedAt:  timeString(run.GetCreatedAt()),
		})
	}
	return result, nil
}
