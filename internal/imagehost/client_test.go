package imagehost

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/roktoseba/ui-gateway/internal/errors"
)

func TestNewClient_ValidationErrors(t *testing.T) {
	_, err := NewClient(Config{APIKey: "k"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upload URL is required")

	_, err = NewClient(Config{UploadURL: "https://example.com/upload"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestClient_Upload_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret-key", r.URL.Query().Get("key"))
		assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "avatar.png", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"url":"https://i.example/raw.png","display_url":"https://i.example/a.png"}}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{UploadURL: server.URL, APIKey: "secret-key"})
	require.NoError(t, err)

	url, err := client.Upload(context.Background(), "avatar.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://i.example/a.png", url)
}

func TestClient_Upload_HostRejects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false,"error":{"message":"invalid api key"}}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{UploadURL: server.URL, APIKey: "bad"})
	require.NoError(t, err)

	_, err = client.Upload(context.Background(), "a.png", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
	assert.Equal(t, apperrors.ErrCodeProvider, apperrors.CodeOf(err))
}

func TestClient_Upload_NilImage(t *testing.T) {
	client, err := NewClient(Config{UploadURL: "https://example.com/upload", APIKey: "k"})
	require.NoError(t, err)

	_, err = client.Upload(context.Background(), "a.png", nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeMalformed, apperrors.CodeOf(err))
}

func TestClient_Upload_FallsBackToRawURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"url":"https://i.example/raw.png"}}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{UploadURL: server.URL, APIKey: "k"})
	require.NoError(t, err)

	url, err := client.Upload(context.Background(), "a.png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "https://i.example/raw.png", url)
}
