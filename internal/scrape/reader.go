package scrape

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/scrape-cli/internal/model"
	"github.com/sells-group/scrape-cli/pkg/jina"
)

// ReaderScraper fetches pages through the Jina reader API, which renders
// JavaScript and bypasses most anti-bot walls. It only yields markdown, so
// binary payloads and FTP stay with the direct scraper.
type ReaderScraper struct {
	client jina.Client
}

// NewReaderScraper creates a reader scraper over the Jina client.
func NewReaderScraper(client jina.Client) *ReaderScraper {
	return &ReaderScraper{client: client}
}

func (s *ReaderScraper) Name() string { return "reader" }

func (s *ReaderScraper) Supports(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return true
	}
	return false
}

func (s *ReaderScraper) Scrape(ctx context.Context, rawURL string) (*model.FetchResult, error) {
	resp, err := s.client.Read(ctx, rawURL)
	if err != nil {
		return nil, eris.Wrap(err, "scrape: reader fetch")
	}
	if resp.Data.Content == "" {
		return nil, eris.Errorf("scrape: reader returned empty content for %s", rawURL)
	}

	finalURL := resp.Data.URL
	if finalURL == "" {
		finalURL = rawURL
	}
	return &model.FetchResult{
		URL:         rawURL,
		FinalURL:    finalURL,
		StatusCode:  http.StatusOK,
		ContentType: "text/html",
		Title:       resp.Data.Title,
		Content:     resp.Data.Content,
		Via:         s.Name(),
	}, nil
}
