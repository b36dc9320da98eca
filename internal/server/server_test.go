package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	gogithub "github.com/google/go-github/v66/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assistkit/gh-skill/internal/action"
	"github.com/assistkit/gh-skill/internal/credentials"
	"github.com/assistkit/gh-skill/internal/github"
)

func newTestServer(t *testing.T, mock *github.MockClient) *httptest.Server {
	t.Helper()

	factory := func(token string) (github.Client, error) { return mock, nil }
	resolver := credentials.NewResolver(action.LoginLookup(factory),
		credentials.WithEnv(func(string) string { return "" }),
		credentials.WithGHTokenFunc(func(string) (string, string) { return "", "" }),
	)
	registry := action.NewRegistry(action.NewService(resolver, factory))
	logger := log.NewWithOptions(io.Discard, log.Options{})

	ts := httptest.NewServer(New(registry, logger, NewMetrics()).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestManifestListsAllActions(t *testing.T) {
	ts := newTestServer(t, &github.MockClient{})

	resp, err := http.Get(ts.URL + "/v1/actions")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Actions []action.Definition `json:"actions"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Actions, 8)
	assert.Equal(t, "list_repos", body.Actions[0].Name)
	assert.Equal(t, action.KindRead, body.Actions[0].Kind)

	var kinds []action.Kind
	for _, d := range body.Actions {
		kinds = append(kinds, d.Kind)
	}
	assert.Contains(t, kinds, action.KindWrite)
}

func TestInvokeSuccess(t *testing.T) {
	mock := &github.MockClient{
		Login: "octocat",
		Repos: []*gogithub.Repository{
			{
				Name:            gogithub.String("widget"),
				Language:        gogithub.String("Go"),
				StargazersCount: gogithub.Int(12),
			},
		},
	}
	ts := newTestServer(t, mock)

	resp, err := http.Post(ts.URL+"/v1/actions/list_repos", "application/json",
		strings.NewReader(`{"params":{"limit":5}}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Invocation-Id"))

	var body struct {
		Action string `json:"action"`
		Result struct {
			Username string `json:"username"`
			Count    int    `json:"count"`
		} `json:"result"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "list_repos", body.Action)
	assert.Equal(t, "octocat", body.Result.Username)
	assert.Equal(t, 1, body.Result.Count)
}

func TestInvokeCredentialsFromRequestBody(t *testing.T) {
	mock := &github.MockClient{}
	ts := newTestServer(t, mock)

	resp, err := http.Post(ts.URL+"/v1/actions/list_repos", "application/json",
		strings.NewReader(`{"credentials":{"username":"hubot"}}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "hubot", mock.LastUsername)
	assert.Zero(t, mock.LoginCalls, "explicit username must skip the identity lookup")
}

func TestInvokeUnknownAction(t *testing.T) {
	ts := newTestServer(t, &github.MockClient{})

	resp, err := http.Post(ts.URL+"/v1/actions/nope", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInvokeValidationFailure(t *testing.T) {
	mock := &github.MockClient{Login: "octocat"}
	ts := newTestServer(t, mock)

	resp, err := http.Post(ts.URL+"/v1/actions/create_issue", "application/json",
		strings.NewReader(`{"params":{"repo":"widget"}}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Error, "title")
	assert.Empty(t, mock.Calls)
}

func TestInvokeUpstreamFailure(t *testing.T) {
	mock := &github.MockClient{
		Login: "octocat",
		RepoErr: &github.UpstreamError{
			Resource: "repository acme/widget",
			Detail:   github.ErrorDetail{Kind: github.ErrorKindParsed, Message: "Not Found", StatusCode: 404},
		},
	}
	ts := newTestServer(t, mock)

	resp, err := http.Post(ts.URL+"/v1/actions/get_repo", "application/json",
		strings.NewReader(`{"params":{"owner":"acme","repo":"widget"}}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestInvokeTransportFailure(t *testing.T) {
	mock := &github.MockClient{
		Login:   "octocat",
		RepoErr: &url.Error{Op: "Get", URL: "https://api.github.com/repos/acme/widget", Err: errors.New("connection refused")},
	}
	ts := newTestServer(t, mock)

	resp, err := http.Post(ts.URL+"/v1/actions/get_repo", "application/json",
		strings.NewReader(`{"params":{"owner":"acme","repo":"widget"}}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestInvokeMalformedBody(t *testing.T) {
	ts := newTestServer(t, &github.MockClient{})

	resp, err := http.Post(ts.URL+"/v1/actions/list_repos", "application/json",
		strings.NewReader(`{not json`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthAndMetrics(t *testing.T) {
	mock := &github.MockClient{Login: "octocat"}
	ts := newTestServer(t, mock)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// One invocation so the counter exists in the exposition output.
	inv, err := http.Post(ts.URL+"/v1/actions/list_repos", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	inv.Body.Close()

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "ghskill_action_invocations_total")
}
