package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/roktoseba/ui-gateway/internal/errors"
	"github.com/roktoseba/ui-gateway/internal/ports"
)

func TestClient_ExchangeToken(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/jwt", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"token":"jwt-abc"}`))
	}))
	defer srv.Close()

	token, err := New(Config{BaseURL: srv.URL}).ExchangeToken(context.Background(), "donor@example.com")
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", token)
	assert.Equal(t, map[string]string{"email": "donor@example.com"}, gotBody)
}

func TestClient_ExchangeTokenRequiresEmail(t *testing.T) {
	_, err := New(Config{BaseURL: "http://unused"}).ExchangeToken(context.Background(), "")
	require.Error(t, err)
}

func TestClient_ExchangeTokenEmptyTokenInResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"token":""}`))
	}))
	defer srv.Close()

	_, err := New(Config{BaseURL: srv.URL}).ExchangeToken(context.Background(), "donor@example.com")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeMalformed, apperrors.CodeOf(err))
}

func TestClient_ExchangeTokenBackendDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse connections

	_, err := New(Config{BaseURL: srv.URL}).ExchangeToken(context.Background(), "donor@example.com")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeTransport, apperrors.CodeOf(err))
}

func TestClient_UpsertProfile(t *testing.T) {
	var got ports.ProfileUpsert
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/users", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	err := New(Config{BaseURL: srv.URL}).UpsertProfile(context.Background(), ports.ProfileUpsert{
		Name:   "Donor One",
		Email:  "donor@example.com",
		Avatar: "https://img.example/d.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "donor@example.com", got.Email)
	assert.Equal(t, "Donor One", got.Name)
}

func TestClient_ErrorPayloadPreserved(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"blood group is invalid"}`))
	}))
	defer srv.Close()

	err := New(Config{BaseURL: srv.URL}).UpsertProfile(context.Background(), ports.ProfileUpsert{
		Email: "donor@example.com",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blood group is invalid")
}
