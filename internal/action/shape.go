package action

import (
	"strings"
	"time"

	"github.com/google/go-github/v66/github"

	"github.com/assistkit/gh-skill/internal/models"
)

const shortSHALen = 7

// shortSHA truncates a commit hash to its conventional 7-character form.
func shortSHA(sha string) string {
	if len(sha) > shortSHALen {
		return sha[:shortSHALen]
	}
	return sha
}

// firstLine cuts a commit message at the first line break.
func firstLine(msg string) string {
	if i := strings.IndexAny(msg, "\r\n"); i >= 0 {
		return msg[:i]
	}
	return msg
}

func timeString(t github.Timestamp) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func repoSummary(r *github.Repository) models.RepoSummary {
	return models.RepoSummary{
		Name:        r.GetName(),
		FullName:    r.GetFullName(),
		Description: r.GetDescription(),
		Language:    r.GetLanguage(),
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		Private:     r.GetPrivate(),
		URL:         r.GetHTMLURL(),
		UpdatedAt:   timeString(r.GetUpdatedAt()),
	}
}

func repoDetail(r *github.Repository) *models.Repository {
	return &models.Repository{
		Name:          r.GetName(),
		FullName:      r.GetFullName(),
		Owner:         r.GetOwner().GetLogin(),
		Description:   r.GetDescription(),
		Language:      r.GetLanguage(),
		Stars:         r.GetStargazersCount(),
		Forks:         r.GetForksCount(),
		OpenIssues:    r.GetOpenIssuesCount(),
		DefaultBranch: r.GetDefaultBranch(),
		Private:       r.GetPrivate(),
		URL:           r.GetHTMLURL(),
		CreatedAt:     timeString(r.GetCreatedAt()),
		UpdatedAt:     timeString(r.GetUpdatedAt()),
	}
}

// summarizeRepos applies the optional case-insensitive language filter and
// caps the result at limit. Repositories without a language are excluded
// whenever a filter is set.
func summarizeRepos(repos []*github.Repository, language string, limit int) []models.RepoSummary {
	out := make([]models.RepoSummary, 0, len(repos))
	for _, r := range repos {
		if language != "" && !strings.EqualFold(r.GetLanguage(), language) {
			continue
		}
		out = append(out, repoSummary(r))
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
