package extract

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/scrape-cli/internal/model"
)

// DocumentExtractor implements the document service: it sniffs whether a
// fetch result carries PDF or HTML and routes to the matching extractor.
type DocumentExtractor struct {
	pdf *PdfToText
}

// NewDocumentExtractor creates a document extractor over the given PDF
// backend.
func NewDocumentExtractor(pdf *PdfToText) *DocumentExtractor {
	return &DocumentExtractor{pdf: pdf}
}

// Extract pulls plain text out of the fetched payload.
func (e *DocumentExtractor) Extract(ctx context.Context, fetch *model.FetchResult) (*model.DocumentContent, error) {
	if fetch == nil {
		return nil, eris.New("extract: nil fetch result")
	}

	if fetch.IsPDF() {
		text, err := e.pdf.ExtractText(ctx, fetch.Body)
		if err != nil {
			return nil, err
		}
		return &model.DocumentContent{Format: "pdf", Title: fetch.Title, Text: text}, nil
	}

	// Reader-produced markdown is already readable text.
	if fetch.Content != "" {
		return &model.DocumentContent{Format: "markdown", Title: fetch.Title, Text: fetch.Content}, nil
	}

	page, err := parseHTML(fetch.Body)
	if err != nil {
		return nil, err
	}
	title := page.Title
	if title == "" {
		title = fetch.Title
	}
	zap.L().Debug("document extracted",
		zap.String("url", fetch.URL),
		zap.Int("chars", len(page.Text)),
	)
	return &model.DocumentContent{Format: "html", Title: title, Text: page.Text}, nil
}
