package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imagematrix/matrix-cli/internal/http/auth/bearer"
)

func TestClient_AppliesModifiers(t *testing.T) {
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer server.Close()

	client := NewClient(nil, bearer.NewAuthorizer("tok"))

	var out struct {
		OK bool `json:"ok"`
	}
	assert.NoError(t, client.Get(server.URL, &out))
	assert.True(t, out.OK)
	assert.Equal(t, "Bearer tok", authHeader)
}

func TestClient_EmptyTokenSendsNoHeader(t *testing.T) {
	var hasAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		fmt.Fprint(w, "{}")
	}))
	defer server.Close()

	client := NewClient(nil, bearer.NewAuthorizer(""))
	assert.NoError(t, client.Get(server.URL))
	assert.False(t, hasAuth)
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, "{}")
	}))
	defer server.Close()

	client := NewClient(nil)
	assert.NoError(t, client.Get(server.URL))
	assert.Equal(t, 3, calls)
}

func TestClient_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(nil)
	err := client.Get(server.URL)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
