package shiprocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backoffice/backend/internal/domain/shipping"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL}, nil)
}

func TestAuthenticate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/external/auth/login", r.URL.Path)

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ops@example.com", body["email"])
			assert.Equal(t, "secret", body["password"])

			fmt.Fprint(w, `{"token":"jwt-token-value"}`)
		})

		token, err := client.Authenticate(context.Background(), "ops@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, "jwt-token-value", token)
	})

	t.Run("bad credentials", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"message":"Invalid credentials"}`)
		})

		_, err := client.Authenticate(context.Background(), "ops@example.com", "wrong")
		assert.ErrorIs(t, err, shipping.ErrAuthFailed)
	})

	t.Run("provider down", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := client.Authenticate(context.Background(), "ops@example.com", "secret")
		assert.ErrorIs(t, err, shipping.ErrUnavailable)
	})

	t.Run("unreachable", func(t *testing.T) {
		client := NewClient(Config{BaseURL: "http://127.0.0.1:1"}, nil)
		_, err := client.Authenticate(context.Background(), "ops@example.com", "secret")
		assert.ErrorIs(t, err, shipping.ErrUnavailable)
	})

	t.Run("empty token rejected", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"token":""}`)
		})

		_, err := client.Authenticate(context.Background(), "ops@example.com", "secret")
		assert.ErrorIs(t, err, shipping.ErrInvalidResponse)
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `not json`)
		})

		_, err := client.Authenticate(context.Background(), "ops@example.com", "secret")
		assert.ErrorIs(t, err, shipping.ErrInvalidResponse)
	})
}
