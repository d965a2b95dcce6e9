package oembed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://www.youtube.com/watch?v=abc", r.URL.Query().Get("url"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		_, _ = w.Write([]byte(`{
			"type": "video",
			"title": "Conference Talk",
			"author_name": "Speaker",
			"provider_name": "YouTube",
			"thumbnail_url": "https://i.example/t.jpg"
		}`))
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint("youtube.com", srv.URL))
	res, err := c.Resolve(context.Background(), "https://www.youtube.com/watch?v=abc")
	require.NoError(t, err)

	assert.Equal(t, "video", res.Type)
	assert.Equal(t, "Conference Talk", res.Title)
	assert.Equal(t, "YouTube", res.ProviderName)
}

func TestResolveUnknownHost(t *testing.T) {
	_, err := NewClient().Resolve(context.Background(), "https://unknownvideo.example/v/1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no endpoint for host")
}

func TestResolveProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint("vimeo.com", srv.URL))
	_, err := c.Resolve(context.Background(), "https://vimeo.com/12345")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 401")
}
