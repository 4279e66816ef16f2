package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"OpenAIClient/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubCreds struct{}

func (stubCreds) Token() string { return "test-token" }
func (stubCreds) OrgID() string { return "org-test" }
func (stubCreds) Check() bool   { return true }

type noCreds struct{}

func (noCreds) Token() string { return "" }
func (noCreds) OrgID() string { return "" }
func (noCreds) Check() bool   { return false }

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	cfg := config.Defaults()
	cfg.BaseURL = baseURL
	return New(cfg, stubCreds{}, zap.NewNop().Sugar())
}

func TestMissingCredentialsAbortBeforeNetwork(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	cfg := config.Defaults()
	cfg.BaseURL = srv.URL
	c := New(cfg, noCreds{}, zap.NewNop().Sugar())

	_, err := c.Ask(context.Background(), "hi", "")
	assert.ErrorIs(t, err, ErrCredentials)

	_, err = c.CreateThread(context.Background())
	assert.ErrorIs(t, err, ErrCredentials)

	_, err = c.ListEngines(context.Background())
	assert.ErrorIs(t, err, ErrCredentials)

	assert.Zero(t, calls, "no network call may happen without credentials")
}

func TestNon2xxBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.ListEngines(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Contains(t, string(apiErr.Body), "rate limited")
}

func TestPingUsesLegacyCompletions(t *testing.T) {
	var path, org string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		org = r.Header.Get("OpenAI-Organization")
		_, _ = w.Write([]byte(`{"id":"cmpl-1"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	require.NoError(t, c.Ping(context.Background()))
	assert.Equal(t, "/completions", path)
	assert.Equal(t, "org-test", org)
}

func TestAuthorizationHeaderIsAlwaysSet(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.ListEngines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", auth)
}
