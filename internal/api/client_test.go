package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/nutri-cli/internal/api"
	"github.com/saadjs/nutri-cli/internal/apitest"
	"github.com/saadjs/nutri-cli/internal/session"
)

func newClient(t *testing.T, srv *apitest.Server) (*api.Client, *session.Session) {
	t.Helper()
	sess := session.New(session.NewMemoryStore())
	c := api.New(srv.URL, sess, 5*time.Second)
	return c, sess
}

func TestLoginStoresNothingAndBearerFollowsSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	srv := apitest.New(t)
	srv.AddUser("ana@example.com", "secret1", "Ana", false)
	c, sess := newClient(t, srv)

	tok, err := c.Login(ctx, "ana@example.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, tok.AccessToken)

	_, ok, err := sess.Credential(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "login must not write the session by itself")

	require.NoError(t, sess.Set(ctx, tok.AccessToken))
	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana", me.FullName)

	seen, ok := srv.LastRequest("/users/me")
	require.True(t, ok)
	assert.Equal(t, "Bearer "+tok.AccessToken, seen.Authorization)
	assert.NotEmpty(t, seen.RequestID)

	require.NoError(t, sess.Clear(ctx))
	_, err = c.Me(ctx)
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))

	seen, ok = srv.LastRequest("/users/me")
	require.True(t, ok)
	assert.Empty(t, seen.Authorization, "no credential means no header")
}

func TestLoginWrongPasswordCarriesDetail(t *testing.T) {
	t.Parallel()
	srv := apitest.New(t)
	srv.AddUser("ana@example.com", "secret1", "Ana", false)
	c, _ := newClient(t, srv)

	_, err := c.Login(context.Background(), "ana@example.com", "wrong")
	require.Error(t, err)

	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Incorrect email or password", apiErr.Detail)
}

func TestErrorDetailFromValidationList(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":[{"loc":["body","age"],"msg":"ensure this value is greater than 0"}]}`))
	}))
	defer ts.Close()

	c := &api.Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	_, err := c.Profile(context.Background())
	require.Error(t, err)
	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "body.age: ensure this value is greater than 0", apiErr.Detail)
}

func TestNoRetryOnServerError(t *testing.T) {
	t.Parallel()
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := &api.Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	_, err := c.Recipes(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.False(t, api.IsNotFound(err))
}

func TestTimeoutFailsHungRequest(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	c := api.New(ts.URL, nil, 50*time.Millisecond)
	_, err := c.Me(context.Background())
	require.Error(t, err)
}

func TestObserveSeesEveryExchange(t *testing.T) {
	t.Parallel()
	srv := apitest.New(t)
	c, _ := newClient(t, srv)

	var got []api.Exchange
	c.Observe = func(_ context.Context, ex api.Exchange) { got = append(got, ex) }

	_, _ = c.Me(context.Background())
	require.Len(t, got, 1)
	assert.Equal(t, http.MethodGet, got[0].Method)
	assert.Equal(t, "/users/me", got[0].Path)
	assert.Equal(t, http.StatusUnauthorized, got[0].Status)
	assert.Error(t, got[0].Err)
	assert.NotEmpty(t, got[0].RequestID)
}
