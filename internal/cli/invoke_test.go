package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assistkit/gh-skill/internal/action"
	"github.com/assistkit/gh-skill/internal/models"
	"github.com/assistkit/gh-skill/internal/ui"
)

func TestBuildParams_TypedValues(t *testing.T) {
	raw, err := buildParams([]string{"repo=widget", "limit=5", "private=true"}, "")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "widget", got["repo"])
	assert.Equal(t, float64(5), got["limit"])
	assert.Equal(t, true, got["private"])
}

func TestBuildParams_InvalidPair(t *testing.T) {
	_, err := buildParams([]string{"no-equals-sign"}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key=value")
}

func TestBuildParams_RawJSON(t *testing.T) {
	raw, err := buildParams(nil, `{"query":"widget in:name"}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":"widget in:name"}`, string(raw))

	_, err = buildParams([]string{"a=b"}, `{}`)
	require.Error(t, err, "raw JSON and key=value flags are mutually exclusive")

	_, err = buildParams(nil, `not json`)
	require.Error(t, err)
}

func TestBuildParams_Empty(t *testing.T) {
	raw, err := buildParams(nil, "")
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestInvoke_WriteActionDeclinedIsNotAnError(t *testing.T) {
	prompter := &ui.MockPrompter{Confirmed: false}
	opts := &options{
		configPath: writeConfig(t, ""),
		prompter:   prompter,
	}

	var out bytes.Buffer
	cmd := newInvokeCmd(opts)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"create_repo", "--param", "name=widget"})

	require.NoError(t, cmd.Execute())
	assert.True(t, prompter.ConfirmActionCalled)
	assert.Contains(t, out.String(), "Cancelled.")
}

func TestInvoke_ReadActionSkipsConfirmation(t *testing.T) {
	// An unreachable API base makes any network attempt fail loudly; the
	// command still must not prompt for a read action.
	prompter := &ui.MockPrompter{}
	opts := &options{
		configPath: writeConfig(t, "http://127.0.0.1:0/"),
		prompter:   prompter,
	}

	cmd := newInvokeCmd(opts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"get_repo", "--param", "owner=acme", "--param", "repo=widget"})

	_ = cmd.Execute()
	assert.False(t, prompter.ConfirmActionCalled)
}

func TestInvoke_UnknownAction(t *testing.T) {
	opts := &options{
		configPath: writeConfig(t, ""),
		prompter:   &ui.MockPrompter{Confirmed: true},
	}

	cmd := newInvokeCmd(opts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"no_such_action"})

	err := cmd.Execute()
	var unknown *action.UnknownActionError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "no_such_action", unknown.Name)
}

func TestInvoke_ParamsJSONFlag(t *testing.T) {
	prompter := &ui.MockPrompter{Confirmed: false}
	opts := &options{
		configPath: writeConfig(t, ""),
		prompter:   prompter,
	}

	var out bytes.Buffer
	cmd := newInvokeCmd(opts)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"create_repo", "--params-json", `{"name":"widget"}`})

	require.NoError(t, cmd.Execute())
	assert.True(t, prompter.ConfirmActionCalled)

	// --json stays an output toggle elsewhere; invoke must not define it as a
	// parameter payload.
	assert.Nil(t, cmd.Flags().Lookup("json"))
	require.NotNil(t, cmd.Flags().Lookup("params-json"))
}

func TestRenderTable(t *testing.T) {
	out, ok := renderTable(&models.ListReposResult{
		Repos: []models.RepoSummary{{Name: "widget", Language: "Go", Stars: 3}},
	})
	require.True(t, ok)
	assert.Contains(t, out, "widget")

	out, ok = renderTable(&models.CheckCIResult{
		Runs: []models.RunSummary{{Name: "CI", Status: "completed", Conclusion: "success"}},
	})
	require.True(t, ok)
	assert.Contains(t, out, "success")

	_, ok = renderTable(&models.Repository{Name: "widget"})
	assert.False(t, ok, "detail results have no tabular shape")
}

// writeConfig drops a minimal config file and returns its path.
func writeConfig(t *testing.T, apiBaseURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[credentials]\nusername = \"octocat\"\n"
	if apiBaseURL != "" {
		content += "\n[github]\napi_base_url = \"" + apiBaseURL + "\"\n"
	}
	writeFile(t, path, content)
	return path
}
