package scrape

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/scrape-cli/internal/model"
)

type stubScraper struct {
	name     string
	result   *model.FetchResult
	err      error
	supports bool
	calls    int
}

func (s *stubScraper) Name() string         { return s.name }
func (s *stubScraper) Supports(string) bool { return s.supports }
func (s *stubScraper) Scrape(_ context.Context, _ string) (*model.FetchResult, error) {
	s.calls++
	return s.result, s.err
}

func TestChainFirstSuccessWins(t *testing.T) {
	first := &stubScraper{name: "direct", supports: true, result: &model.FetchResult{Via: "direct"}}
	second := &stubScraper{name: "reader", supports: true, result: &model.FetchResult{Via: "reader"}}

	res, err := NewChain(first, second).Fetch(context.Background(), "https://example.org")
	require.NoError(t, err)
	assert.Equal(t, "direct", res.Via)
	assert.Equal(t, 0, second.calls)
}

func TestChainFallsThroughOnError(t *testing.T) {
	first := &stubScraper{name: "direct", supports: true, err: errors.New("blocked (status)")}
	second := &stubScraper{name: "reader", supports: true, result: &model.FetchResult{Via: "reader"}}

	res, err := NewChain(first, second).Fetch(context.Background(), "https://example.org")
	require.NoError(t, err)
	assert.Equal(t, "reader", res.Via)
	assert.Equal(t, 1, first.calls)
}

func TestChainSkipsUnsupported(t *testing.T) {
	reader := &stubScraper{name: "reader", supports: false}
	direct := &stubScraper{name: "direct", supports: true, result: &model.FetchResult{Via: "direct"}}

	res, err := NewChain(reader, direct).Fetch(context.Background(), "ftp://mirror.example/file.pdf")
	require.NoError(t, err)
	assert.Equal(t, "direct", res.Via)
	assert.Equal(t, 0, reader.calls)
}

func TestChainAllFail(t *testing.T) {
	first := &stubScraper{name: "direct", supports: true, err: errors.New("boom")}
	second := &stubScraper{name: "reader", supports: true, err: errors.New("also boom")}

	_, err := NewChain(first, second).Fetch(context.Background(), "https://example.org")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all scrapers failed")
}

func TestChainNoSuitableScraper(t *testing.T) {
	only := &stubScraper{name: "reader", supports: false}
	_, err := NewChain(only).Fetch(context.Background(), "gopher://example.org")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no suitable scraper")
}
