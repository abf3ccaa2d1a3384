package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginStoresToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "amina@example.com", req["email"])

		json.NewEncoder(w).Encode(AuthResult{
			User:  Profile{ID: "user-1", Name: "Amina"},
			Token: "jwt-token",
		})
	}))
	defer ts.Close()

	c := New(ts.URL)
	result, err := c.Login(context.Background(), "amina@example.com", "password123")
	require.NoError(t, err)

	assert.Equal(t, "user-1", result.User.ID)
	// The session token is kept for later calls.
	assert.Equal(t, "jwt-token", c.Token())
}

func TestTokenHeaderSent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "jwt-token", r.Header.Get("x-auth-token"))
		json.NewEncoder(w).Encode(Profile{ID: "user-1"})
	}))
	defer ts.Close()

	c := New(ts.URL)
	c.SetToken("jwt-token")

	profile, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", profile.ID)
}

func TestAPIErrorMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	}))
	defer ts.Close()

	c := New(ts.URL)
	_, err := c.Login(context.Background(), "amina@example.com", "wrong")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.Equal(t, "api error 400: Invalid credentials", apiErr.Error())
}

func TestAPIErrorWithoutBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c := New(ts.URL)
	_, err := c.Me(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, http.StatusText(http.StatusServiceUnavailable), apiErr.Message)
}

func TestSuggestions(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/suggestions", r.URL.Path)
		require.Equal(t, "ar", r.URL.Query().Get("language"))
		json.NewEncoder(w).Encode([]string{"one", "two"})
	}))
	defer ts.Close()

	c := New(ts.URL)
	suggestions, err := c.Suggestions(context.Background(), "ar")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, suggestions)
}

func TestBaseURLTrailingSlash(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/acts", r.URL.Path)
		json.NewEncoder(w).Encode([]any{})
	}))
	defer ts.Close()

	c := New(ts.URL + "/")
	_, err := c.ListActs(context.Background())
	require.NoError(t, err)
}
