// Package credentials resolves the acting GitHub identity for action
// invocations: which token authorizes outbound calls and which username
// implicit (non-owner-qualified) operations act on.
package credentials

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/cli/go-gh/v2/pkg/auth"
	"golang.org/x/sync/singleflight"
)

// Environment overrides. These always win over host-supplied configuration,
// so operators can force an identity without editing config.
const (
	EnvToken    = "GITHUB_TOKEN"
	EnvUsername = "GITHUB_USERNAME"
)

// DefaultHost is the GitHub host tokens are resolved for.
const DefaultHost = "github.com"

// Credentials is the host-supplied per-invocation configuration.
type Credentials struct {
	Token    string `json:"token,omitempty" toml:"token"`
	Username string `json:"username,omitempty" toml:"username"`
}

// LookupFunc fetches the login of the user owning token from the identity
// endpoint. It is the only network dependency of the resolver.
type LookupFunc func(ctx context.Context, token string) (string, error)

// Resolver owns credential precedence and the one-shot username cache. The
// cache lives on the resolver instance, so independent resolvers share
// nothing and tests can assert hit/miss behavior directly.
type Resolver struct {
	lookup  LookupFunc
	getenv  func(string) string
	ghToken func(host string) (string, string)
	host    string

	group singleflight.Group
	mu    sync.Mutex
	login string
}

// Option adjusts resolver construction.
type Option func(*Resolver)

// WithEnv replaces the environment accessor, for tests.
func WithEnv(getenv func(string) string) Option {
	return func(r *Resolver) { r.getenv = getenv }
}

// WithHost sets the GitHub host used for stored-token lookup.
func WithHost(host string) Option {
	return func(r *Resolver) { r.host = host }
}

// WithGHTokenFunc replaces the gh CLI stored-token lookup, for tests.
func WithGHTokenFunc(fn func(host string) (string, string)) Option {
	return func(r *Resolver) { r.ghToken = fn }
}

// NewResolver builds a resolver with an empty username cache.
func NewResolver(lookup LookupFunc, opts ...Option) *Resolver {
	r := &Resolver{
		lookup:  lookup,
		getenv:  os.Getenv,
		ghToken: auth.TokenForHost,
		host:    DefaultHost,
	}
	for _, fn := range opts {
		fn(r)
	}
	return r
}

// Token resolves the authorization token and reports where it came from
// ("env", "config", or the gh CLI's own source label). Precedence: the
// GITHUB_TOKEN environment variable wins outright, then the host-supplied
// configuration, then a token stored by the gh CLI. An empty token is not an
// error: calls proceed unauthenticated and any 401/403 surfaces upstream.
func (r *Resolver) Token(c Credentials) (string, string) {
	if t := r.getenv(EnvToken); t != "" {
		return t, "env"
	}
	if c.Token != "" {
		return c.Token, "config"
	}
	if t, source := r.ghToken(r.host); t != "" {
		return t, source
	}
	return "", ""
}

// Username resolves the acting username. Precedence: GITHUB_USERNAME
// environment variable, host-supplied configuration, a previously cached
// lookup, then exactly one identity-endpoint call whose result is cached for
// the resolver's lifetime. Concurrent first calls are collapsed into a
// single upstream lookup. Only successful lookups are cached.
func (r *Resolver) Username(ctx context.Context, c Credentials) (string, error) {
	if u := r.getenv(EnvUsername); u != "" {
		return u, nil
	}
	if c.Username != "" {
		return c.Username, nil
	}

	r.mu.Lock()
	cached := r.login
	r.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	v, err, _ := r.group.Do("login", func() (any, error) {
		token, _ := r.Token(c)
		login, err := r.lookup(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve acting username: %w", err)
		}
		r.mu.Lock()
		r.login = login
		r.mu.Unlock()
		return login, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
