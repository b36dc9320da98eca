// Package action exposes GitHub operations as named actions for an
// AI-assistant host. Every adapter follows the same contract: decode
// parameters, apply defaults, validate required fields before any network
// activity, resolve the acting username only when the operation needs it,
// issue one upstream request, and project the response into a stable
// normalized shape.
package action

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/assistkit/gh-skill/internal/credentials"
	"github.com/assistkit/gh-skill/internal/github"
)

// Action names as exposed to the host dispatcher.
const (
	ActionListRepos      = "list_repos"
	ActionGetRepo        = "get_repo"
	ActionCheckCIStatus  = "check_ci_status"
	ActionRecentActivity = "get_recent_activity"
	ActionCreateIssue    = "create_issue"
	ActionCreateRepo     = "create_repo"
	ActionCreatePR       = "create_pull_request"
	ActionSearchRepos    = "search_repos"
)

// Kind tells hosts whether an action mutates upstream state.
type Kind string

const (
	KindRead  Kind = "read"
	KindWrite Kind = "write"
)

// ParamSpec is the declarative schema for one parameter, served in the
// manifest for host-side validation.
type ParamSpec struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Required    bool     `json:"required,omitempty"`
	Default     any      `json:"default,omitempty"`
	Enum        []string `json:"enum,omitempty"`
}

// Handler executes one action invocation against already-decoded raw params.
type Handler func(ctx context.Context, creds credentials.Credentials, raw json.RawMessage) (any, error)

// Definition couples an action's manifest entry with its handler.
type Definition struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Kind        Kind        `json:"kind"`
	Params      []ParamSpec `json:"params"`

	handler Handler
}

// ValidationError reports a missing or invalid parameter. It is always
// raised before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid parameter %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("missing required parameter %q", e.Field)
}

// UnknownActionError reports a dispatch against a name the registry does not
// know.
type UnknownActionError struct {
	Name string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown action %q", e.Name)
}

// ClientFactory builds a GitHub client for a resolved token. The empty token
// yields an unauthenticated client.
type ClientFactory func(token string) (github.Client, error)

// Service owns the collaborators every adapter needs: the credential
// resolver and the upstream client factory.
type Service struct {
	creds   *credentials.Resolver
	clients ClientFactory
}

// NewService wires the adapters' collaborators together.
func NewService(resolver *credentials.Resolver, clients ClientFactory) *Service {
	return &Service{creds: resolver, clients: clients}
}

// LoginLookup adapts a client factory into the resolver's identity lookup.
func LoginLookup(clients ClientFactory) credentials.LookupFunc {
	return func(ctx context.Context, token string) (string, error) {
		client, err := clients(token)
		if err != nil {
			return "", err
		}
		return client.AuthenticatedLogin(ctx)
	}
}

func (s *Service) clientFor(c credentials.Credentials) (github.Client, error) {
	token, _ := s.creds.Token(c)
	return s.clients(token)
}

// Registry holds the action definitions in manifest order.
type Registry struct {
	defs   []*Definition
	byName map[string]*Definition
}

// NewRegistry registers all supported actions.
func NewRegistry(s *Service) *Registry {
	r := &Registry{byName: make(map[string]*Definition)}
	for _, def := range []*Definition{
		s.listReposDefinition(),
		s.getRepoDefinition(),
		s.checkCIStatusDefinition(),
		s.recentActivityDefinition(),
		s.createIssueDefinition(),
		s.createRepoDefinition(),
		s.createPullRequestDefinition(),
		s.searchReposDefinition(),
	} {
		r.defs = append(r.defs, def)
		r.byName[def.Name] = def
	}
	return r
}

// Definitions returns the manifest entries in registration order.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, len(r.defs))
	for i, def := range r.defs {
		out[i] = *def
	}
	return out
}

// Lookup returns the definition for name, if registered.
func (r *Registry) Lookup(name string) (*Definition, bool) {
	def, ok := r.byName[name]
	return def, ok
}

// Invoke dispatches one action by name. The caller supplies per-invocation
// credentials and the raw JSON parameter object.
func (r *Registry) Invoke(ctx context.Context, name string, creds credentials.Credentials, raw json.RawMessage) (any, error) {
	def, ok := r.byName[name]
	if !ok {
		return nil, &UnknownActionError{Name: name}
	}
	return def.handler(ctx, creds, raw)
}

// decodeParams unmarshals the raw parameter object. An empty body is treated
// as an empty object so actions with only optional parameters work without
// one.
func decodeParams(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &ValidationError{Field: "params", Reason: "malformed JSON: " + err.Error()}
	}
	return nil
}

func requireField(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field}
	}
	return nil
}

func validateEnum(field, value string, allowed []string) error {
	if value == "" {
		return nil
	}
	for _, v := range allowed {
		if value == v {
			return nil
		}
	}
	return &ValidationError{Field: field, Reason: fmt.Sprintf("%q is not one of %v", value, allowed)}
}
