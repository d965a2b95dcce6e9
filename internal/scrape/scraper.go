// Package scrape implements the fetch service as a chain of scrapers with
// block detection and a reader-API fallback.
package scrape

import (
	"context"

	"github.com/sells-group/scrape-cli/internal/model"
)

// Scraper fetches a single URL and returns its content.
type Scraper interface {
	Scrape(ctx context.Context, url string) (*model.FetchResult, error)
	Name() string
	Supports(url string) bool
}
