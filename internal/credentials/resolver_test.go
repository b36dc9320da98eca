package credentials

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string { return "" }

func noGHToken(string) (string, string) { return "", "" }

func staticEnv(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func countingLookup(login string, err error) (LookupFunc, *int) {
	calls := new(int)
	return func(ctx context.Context, token string) (string, error) {
		*calls++
		return login, err
	}, calls
}

func TestToken_EnvWinsOverConfig(t *testing.T) {
	r := NewResolver(nil,
		WithEnv(staticEnv(map[string]string{EnvToken: "env-token"})),
		WithGHTokenFunc(noGHToken),
	)

	token, source := r.Token(Credentials{Token: "config-token"})
	assert.Equal(t, "env-token", token, "environment override must be used exclusively")
	assert.Equal(t, "env", source)
}

func TestToken_ConfigThenStored(t *testing.T) {
	tests := []struct {
		name       string
		creds      Credentials
		ghToken    func(string) (string, string)
		wantToken  string
		wantSource string
	}{
		{
			name:       "config token when env empty",
			creds:      Credentials{Token: "config-token"},
			ghToken:    noGHToken,
			wantToken:  "config-token",
			wantSource: "config",
		},
		{
			name:       "gh stored token as last resort",
			creds:      Credentials{},
			ghToken:    func(string) (string, string) { return "keyring-token", "keyring" },
			wantToken:  "keyring-token",
			wantSource: "keyring",
		},
		{
			name:       "no token anywhere is not an error",
			creds:      Credentials{},
			ghToken:    noGHToken,
			wantToken:  "",
			wantSource: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(nil, WithEnv(noEnv), WithGHTokenFunc(tt.ghToken))
			token, source := r.Token(tt.creds)
			assert.Equal(t, tt.wantToken, token)
			assert.Equal(t, tt.wantSource, source)
		})
	}
}

func TestUsername_EnvWinsOverConfig(t *testing.T) {
	lookup, calls := countingLookup("from-api", nil)
	r := NewResolver(lookup,
		WithEnv(staticEnv(map[string]string{EnvUsername: "env-user"})),
		WithGHTokenFunc(noGHToken),
	)

	u, err := r.Username(context.Background(), Credentials{Username: "config-user"})
	require.NoError(t, err)
	assert.Equal(t, "env-user", u)
	assert.Zero(t, *calls, "environment override must not trigger a lookup")
}

func TestUsername_ConfigSkipsLookup(t *testing.T) {
	lookup, calls := countingLookup("from-api", nil)
	r := NewResolver(lookup, WithEnv(noEnv), WithGHTokenFunc(noGHToken))

	u, err := r.Username(context.Background(), Credentials{Username: "config-user"})
	require.NoError(t, err)
	assert.Equal(t, "config-user", u)
	assert.Zero(t, *calls)
}

func TestUsername_LookupCachedAcrossCalls(t *testing.T) {
	lookup, calls := countingLookup("octocat", nil)
	r := NewResolver(lookup, WithEnv(noEnv), WithGHTokenFunc(noGHToken))

	for i := 0; i < 5; i++ {
		u, err := r.Username(context.Background(), Credentials{})
		require.NoError(t, err)
		assert.Equal(t, "octocat", u)
	}
	assert.Equal(t, 1, *calls, "only the first call may hit the identity endpoint")
}

func TestUsername_FailedLookupNotCached(t *testing.T) {
	failErr := errors.New("boom")
	calls := 0
	r := NewResolver(func(ctx context.Context, token string) (string, error) {
		calls++
		if calls == 1 {
			return "", failErr
		}
		return "octocat", nil
	}, WithEnv(noEnv), WithGHTokenFunc(noGHToken))

	_, err := r.Username(context.Background(), Credentials{})
	require.Error(t, err)
	assert.ErrorIs(t, err, failErr)

	u, err := r.Username(context.Background(), Credentials{})
	require.NoError(t, err)
	assert.Equal(t, "octocat", u)
	assert.Equal(t, 2, calls)
}

func TestUsername_ConcurrentFirstCallsCollapse(t *testing.T) {
	lookup, calls := countingLookup("octocat", nil)
	r := NewResolver(lookup, WithEnv(noEnv), WithGHTokenFunc(noGHToken))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u, err := r.Username(context.Background(), Credentials{})
			assert.NoError(t, err)
			assert.Equal(t, "octocat", u)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, *calls, "concurrent first calls must share one lookup")
}

func TestResolvers_DoNotShareState(t *testing.T) {
	lookupA, callsA := countingLookup("alice", nil)
	lookupB, callsB := countingLookup("bob", nil)
	a := NewResolver(lookupA, WithEnv(noEnv), WithGHTokenFunc(noGHToken))
	b := NewResolver(lookupB, WithEnv(noEnv), WithGHTokenFunc(noGHToken))

	ua, err := a.Username(context.Background(), Credentials{})
	require.NoError(t, err)
	ub, err := b.Username(context.Background(), Credentials{})
	require.NoError(t, err)

	assert.Equal(t, "alice", ua)
	assert.Equal(t, "bob", ub)
	assert.Equal(t, 1, *callsA)
	assert.Equal(t, 1, *callsB)
}
