package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientPut(t *testing.T) {
	t.Run("sends token header and body", func(t *testing.T) {
		var gotMethod, gotToken, gotContentType string
		var gotBody []byte
		var gotLength int64

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotToken = r.Header.Get(AuthHeader)
			gotContentType = r.Header.Get("Content-Type")
			gotLength = r.ContentLength
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := NewClient("secret-token")
		content := "file contents"
		res, err := client.Put(context.Background(), server.URL+"/a.txt", strings.NewReader(content), int64(len(content)))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, http.MethodPut, gotMethod)
		assert.Equal(t, "secret-token", gotToken)
		assert.Equal(t, "application/octet-stream", gotContentType)
		assert.Equal(t, int64(len(content)), gotLength)
		assert.Equal(t, content, string(gotBody))
	})

	t.Run("returns error responses as results, not errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("File already exists"))
		}))
		defer server.Close()

		client := NewClient("tok")
		res, err := client.Put(context.Background(), server.URL+"/a.txt", strings.NewReader("x"), 1)
		require.NoError(t, err)

		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
		assert.Equal(t, "File already exists", res.Body)
	})

	t.Run("transport failure returns error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // connection refused from here on

		client := NewClient("tok")
		_, err := client.Put(context.Background(), server.URL+"/a.txt", strings.NewReader("x"), 1)
		assert.Error(t, err)
	})

	t.Run("does not mutate the caller's request headers", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		transport := &authTransport{token: "tok", base: http.DefaultTransport}
		req, err := http.NewRequest(http.MethodPut, server.URL, strings.NewReader("x"))
		require.NoError(t, err)

		resp, err := transport.RoundTrip(req)
		require.NoError(t, err)
		_ = resp.Body.Close()

		assert.Empty(t, req.Header.Get(AuthHeader))
	})
}
