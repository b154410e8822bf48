package monarch

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	return NewClient(Config{
		BaseURL:  serverURL,
		Username: "importer",
		Password: "secret",
		Timeout:  5 * time.Second,
	})
}

func TestNewClientDefaultTimeout(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://example.test"})
	assert.Equal(t, 30*time.Second, c.httpClient.Timeout)
}

func TestSearchSendsAuthAndQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok, "expected basic auth")
		assert.Equal(t, "importer", user)
		assert.Equal(t, "secret", pass)

		assert.Equal(t, "/customers/search", r.URL.Path)
		assert.Equal(t, "Acme Printing Co", r.URL.Query().Get("query"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"customer_id":"MON001","customer_name":"Acme Printing Co"}]`))
	}))
	defer server.Close()

	customers, err := newTestClient(server.URL).Search("Acme Printing Co")

	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "MON001", customers[0].CustomerID)
	assert.Equal(t, "Acme Printing Co", customers[0].Name)
}

func TestResolveTruncatesToEightCharacters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"customer_id":"MONARCH-001234"}]`))
	}))
	defer server.Close()

	id, err := newTestClient(server.URL).Resolve("Acme")

	require.NoError(t, err)
	assert.Equal(t, "MONARCH-", id)
}

func TestResolveFirstMatchWins(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"customer_id":"FIRST"},{"customer_id":"SECOND"}]`))
	}))
	defer server.Close()

	id, err := newTestClient(server.URL).Resolve("Acme")

	require.NoError(t, err)
	assert.Equal(t, "FIRST", id)
}

func TestResolveNotFound(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty array", `[]`},
		{"blank id", `[{"customer_id":""}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).Resolve("Ghost Corp")

			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestResolveHTTPErrorIsNotNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Resolve("Acme")

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "500")
}

func TestResolveMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Resolve("Acme")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse response")
}

func TestGetByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customers/MON001", r.URL.Path)
		w.Write([]byte(`[{"customer_id":"MON001","customer_name":"Acme"}]`))
	}))
	defer server.Close()

	customer, err := newTestClient(server.URL).GetByID("MON001")

	require.NoError(t, err)
	assert.Equal(t, "Acme", customer.Name)
}

func TestGetByIDNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetByID("NOPE")

	assert.ErrorIs(t, err, ErrNotFound)
}
