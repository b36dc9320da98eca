package action

import (
	"testing"

	gogithub "github.com/google/go-github/v66/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assistkit/gh-skill/internal/github"
	"github.com/assistkit/gh-skill/internal/models"
)

func TestCreateIssue_MissingTitleBlocksNetwork(t *testing.T) {
	mock := &github.MockClient{Login: "octocat"}
	r := newTestRegistry(mock, nil)

	_, err := invoke(t, r, ActionCreateIssue, `{"repo":"widget","body":"no title"}`)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "title", ve.Field)
	assert.Empty(t, mock.Calls, "validation must precede any network call")
}

func TestCreateIssue_ActingUserAndExtraPassthrough(t *testing.T) {
	mock := &github.MockClient{
		Login: "octocat",
		Issue: &gogithub.Issue{
			Number:  gogithub.Int(7),
			Title:   gogithub.String("bug"),
			State:   gogithub.String("open"),
			HTMLURL: gogithub.String("https://github.com/octocat/widget/issues/7"),
		},
	}
	r := newTestRegistry(mock, nil)

	result, err := invoke(t, r, ActionCreateIssue,
		`{"repo":"widget","title":"bug","body":"it broke","extra":{"labels":["bug","p1"]}}`)
	require.NoError(t, err)

	assert.Equal(t, "octocat", mock.LastOwner, "issues are created under the acting user")
	assert.Equal(t, "widget", mock.LastRepo)
	assert.Equal(t, "bug", mock.LastTitle)
	assert.Equal(t, "it broke", mock.LastBody)
	require.Contains(t, mock.LastExtra, "labels")

	issue := result.(*models.Issue)
	assert.Equal(t, 7, issue.Number)
	assert.Equal(t, "open", issue.State)
}
