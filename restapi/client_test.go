package restapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontoops/go-console-cache/apitypes"
)

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func newClientFor(t *testing.T, srv *httptest.Server, tokens apitypes.TokenPair, onExpired func()) *Client {
	t.Helper()
	c := NewClient(Config{
		BaseURL:          srv.URL,
		Timeout:          5 * time.Second,
		OnSessionExpired: onExpired,
	}, tokens)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestClient_GetDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Equal(t, "admin", r.URL.Query().Get("role"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data":       []map[string]any{{"id": "42", "email": "a@example.com"}},
			"pagination": map[string]any{"page": 1, "per_page": 25, "total": 1, "total_pages": 1},
		})
	}))
	defer srv.Close()

	c := newClientFor(t, srv, apitypes.TokenPair{AccessToken: "tok-1", RefreshToken: "ref-1"}, nil)

	var out apitypes.Envelope[[]apitypes.User]
	err := c.Get(context.Background(), "/users", url.Values{"role": {"admin"}}, &out)
	require.NoError(t, err)
	require.Len(t, out.Data, 1)
	assert.Equal(t, "42", out.Data[0].ID)
	require.NotNil(t, out.Pagination)
	assert.Equal(t, 1, out.Pagination.Total)
}

func TestClient_RefreshAndRetryOn401(t *testing.T) {
	var refreshes atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshes.Add(1)
		var req apitypes.RefreshRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ref-1", req.RefreshToken)
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": apitypes.TokenPair{AccessToken: "tok-2", RefreshToken: "ref-2"},
		})
	})
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-2" {
			writeJSON(t, w, http.StatusUnauthorized, map[string]any{"code": "token_expired", "message": "expired"})
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"data": []apitypes.User{}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newClientFor(t, srv, apitypes.TokenPair{AccessToken: "tok-1", RefreshToken: "ref-1"}, nil)

	var out apitypes.Envelope[[]apitypes.User]
	err := c.Get(context.Background(), "/users", nil, &out)
	require.NoError(t, err)
	assert.EqualValues(t, 1, refreshes.Load())
}

func TestClient_SessionExpiredWhenRefreshFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]any{"code": "refresh_invalid", "message": "nope"})
	})
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]any{"code": "token_expired", "message": "expired"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	var loggedOut atomic.Bool
	c := newClientFor(t, srv, apitypes.TokenPair{AccessToken: "tok-1", RefreshToken: "ref-1"},
		func() { loggedOut.Store(true) })

	err := c.Get(context.Background(), "/users", nil, nil)
	require.ErrorIs(t, err, ErrSessionExpired)
	assert.True(t, loggedOut.Load(), "OnSessionExpired must fire when refresh fails")
}

func TestClient_SecondRejectionExpiresSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": apitypes.TokenPair{AccessToken: "tok-2", RefreshToken: "ref-2"},
		})
	})
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		// rejects even the refreshed token
		writeJSON(t, w, http.StatusUnauthorized, map[string]any{"code": "revoked", "message": "revoked"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newClientFor(t, srv, apitypes.TokenPair{AccessToken: "tok-1", RefreshToken: "ref-1"}, nil)

	err := c.Get(context.Background(), "/users", nil, nil)
	require.ErrorIs(t, err, ErrSessionExpired)
}

func TestClient_ConcurrentRejectionsShareOneRefresh(t *testing.T) {
	var refreshes atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshes.Add(1)
		time.Sleep(20 * time.Millisecond) // widen the race window
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": apitypes.TokenPair{AccessToken: "tok-2", RefreshToken: "ref-2"},
		})
	})
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-2" {
			writeJSON(t, w, http.StatusUnauthorized, map[string]any{"code": "token_expired", "message": "expired"})
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"data": []apitypes.User{}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newClientFor(t, srv, apitypes.TokenPair{AccessToken: "tok-1", RefreshToken: "ref-1"}, nil)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = c.Get(context.Background(), "/users", nil, nil)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.EqualValues(t, 1, refreshes.Load(), "concurrent 401s must coalesce into one refresh")
}

func TestClient_APIErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnprocessableEntity, map[string]any{
			"code":    "validation_failed",
			"message": "name is required",
		})
	}))
	defer srv.Close()

	c := newClientFor(t, srv, apitypes.TokenPair{AccessToken: "tok-1", RefreshToken: "ref-1"}, nil)

	err := c.Post(context.Background(), "/datasources", map[string]any{}, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "validation_failed", apiErr.Code)
	assert.Contains(t, apiErr.Message, "name is required")
}

func TestClient_NotFoundHelper(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]any{"code": "not_found", "message": "no such user"})
	}))
	defer srv.Close()

	c := newClientFor(t, srv, apitypes.TokenPair{AccessToken: "tok-1", RefreshToken: "ref-1"}, nil)

	err := c.Get(context.Background(), "/users/missing", nil, nil)
	assert.True(t, IsNotFound(err))
}

func TestClient_ProactiveRefreshOnExpiredJWT(t *testing.T) {
	expired := signedJWT(t, time.Now().Add(-time.Minute))

	var refreshes, authedCalls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshes.Add(1)
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": apitypes.TokenPair{AccessToken: "tok-2", RefreshToken: "ref-2"},
		})
	})
	mux.HandleFunc("/workers", func(w http.ResponseWriter, r *http.Request) {
		authedCalls.Add(1)
		assert.Equal(t, "Bearer tok-2", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, map[string]any{"data": []apitypes.Worker{}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newClientFor(t, srv, apitypes.TokenPair{AccessToken: expired, RefreshToken: "ref-1"}, nil)

	require.NoError(t, c.Get(context.Background(), "/workers", nil, nil))
	assert.EqualValues(t, 1, refreshes.Load(), "expired JWT must refresh before the request goes out")
	assert.EqualValues(t, 1, authedCalls.Load())
}

func signedJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "tester",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	require.True(t, strings.Count(signed, ".") == 2)
	return signed
}
