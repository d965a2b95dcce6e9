package scrape

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"github.com/sells-group/scrape-cli/internal/model"
	"github.com/sells-group/scrape-cli/pkg/fetch"
)

// DirectScraper downloads URLs straight from the origin. It handles binary
// payloads and FTP, which the reader fallback cannot, but gets blocked by
// anti-bot protection on some hosts.
type DirectScraper struct {
	client fetch.Client
}

// NewDirectScraper creates a direct scraper over the download client.
func NewDirectScraper(client fetch.Client) *DirectScraper {
	return &DirectScraper{client: client}
}

func (s *DirectScraper) Name() string { return "direct" }

func (s *DirectScraper) Supports(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "ftp":
		return true
	}
	return false
}

func (s *DirectScraper) Scrape(ctx context.Context, rawURL string) (*model.FetchResult, error) {
	resp, err := s.client.Get(ctx, rawURL)
	if err != nil {
		return nil, eris.Wrap(err, "scrape: direct fetch")
	}

	if blocked, kind := DetectBlock(resp.StatusCode, resp.Body); blocked {
		return nil, eris.Errorf("scrape: blocked (%s) at %s", kind, rawURL)
	}
	if resp.StatusCode >= 400 {
		return nil, eris.Errorf("scrape: status %d from %s", resp.StatusCode, rawURL)
	}

	result := &model.FetchResult{
		URL:         rawURL,
		FinalURL:    resp.FinalURL,
		StatusCode:  resp.StatusCode,
		ContentType: resp.ContentType,
		Body:        resp.Body,
		Via:         s.Name(),
	}
	if isHTML(resp.ContentType, resp.Body) {
		result.Title = htmlTitle(resp.Body)
	}
	return result, nil
}

func isHTML(contentType string, body []byte) bool {
	if strings.Contains(contentType, "html") {
		return true
	}
	head := bytes.ToLower(bytes.TrimSpace(body))
	if len(head) > 256 {
		head = head[:256]
	}
	return bytes.Contains(head, []byte("<html")) || bytes.Contains(head, []byte("<!doctype html"))
}

func htmlTitle(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
