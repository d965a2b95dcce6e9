package extract

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/scrape-cli/internal/model"
)

// ArticleExtractor implements the article service: readable text plus the
// byline and publication metadata articles carry.
type ArticleExtractor struct{}

// NewArticleExtractor creates an article extractor.
func NewArticleExtractor() *ArticleExtractor {
	return &ArticleExtractor{}
}

// Extract pulls article content from the fetched page.
func (e *ArticleExtractor) Extract(_ context.Context, fetch *model.FetchResult) (*model.ArticleContent, error) {
	if fetch == nil {
		return nil, eris.New("extract: nil fetch result")
	}

	// Reader-produced markdown is already readable text.
	if fetch.Content != "" {
		return &model.ArticleContent{
			Title:     fetch.Title,
			Text:      fetch.Content,
			WordCount: len(strings.Fields(fetch.Content)),
		}, nil
	}

	page, err := parseHTML(fetch.Body)
	if err != nil {
		return nil, err
	}
	title := page.Title
	if title == "" {
		title = fetch.Title
	}
	return &model.ArticleContent{
		Title:     title,
		Byline:    page.Byline,
		Published: page.Published,
		Text:      page.Text,
		WordCount: len(strings.Fields(page.Text)),
	}, nil
}
