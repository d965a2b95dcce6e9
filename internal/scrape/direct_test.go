package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/scrape-cli/pkg/fetch"
)

func TestDirectScraperHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><head><title> Paper Landing Page </title></head><body>abstract</body></html>"))
	}))
	defer srv.Close()

	s := NewDirectScraper(fetch.NewClient())
	res, err := s.Scrape(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Paper Landing Page", res.Title)
	assert.Equal(t, "direct", res.Via)
	assert.Equal(t, "text/html", res.ContentType)
}

func TestDirectScraperPDFBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.7 fake pdf bytes"))
	}))
	defer srv.Close()

	res, err := NewDirectScraper(fetch.NewClient()).Scrape(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.True(t, res.IsPDF())
	assert.Empty(t, res.Title)
}

func TestDirectScraperBlockedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewDirectScraper(fetch.NewClient()).Scrape(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked")
}

func TestDirectScraperSupports(t *testing.T) {
	s := NewDirectScraper(fetch.NewClient())
	assert.True(t, s.Supports("https://example.org"))
	assert.True(t, s.Supports("ftp://mirror.example/p.pdf"))
	assert.False(t, s.Supports("mailto:someone@example.org"))
}

func TestDetectBlock(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		blocked bool
		kind    BlockType
	}{
		{"clean page", 200, "<html><body>fine</body></html>", false, BlockNone},
		{"forbidden", 403, "", true, BlockStatus},
		{"rate limited", 429, "", true, BlockStatus},
		{"challenge", 200, "<html>Checking your browser before accessing</html>", true, BlockChallenge},
		{"captcha", 200, "<html>please solve this reCAPTCHA</html>", true, BlockCaptcha},
		{"js shell", 200, "<html><noscript>enable javascript</noscript></html>", true, BlockJSShell},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocked, kind := DetectBlock(tt.status, []byte(tt.body))
			assert.Equal(t, tt.blocked, blocked)
			assert.Equal(t, tt.kind, kind)
		})
	}
}
