package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/scrape-cli/internal/model"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
	<title>Fallback Title</title>
	<meta property="og:title" content="The Real Headline">
	<meta name="author" content="Jane Doe">
	<meta property="article:published_time" content="2024-06-01T10:00:00Z">
	<script>var tracking = true;</script>
	<style>body { color: red; }</style>
</head>
<body>
	<nav>Home | About</nav>
	<header>Site Header</header>
	<p>First paragraph of the story.</p>
	<p>Second   paragraph with   odd spacing.</p>
	<footer>Copyright</footer>
	<noscript>Enable JS</noscript>
</body>
</html>`

func TestParseHTMLStripsBoilerplate(t *testing.T) {
	page, err := parseHTML([]byte(samplePage))
	require.NoError(t, err)

	assert.Equal(t, "The Real Headline", page.Title)
	assert.Equal(t, "Jane Doe", page.Byline)
	assert.Equal(t, "2024-06-01T10:00:00Z", page.Published)

	assert.Contains(t, page.Text, "First paragraph of the story.")
	assert.Contains(t, page.Text, "Second paragraph with odd spacing.")
	assert.NotContains(t, page.Text, "tracking")
	assert.NotContains(t, page.Text, "color: red")
	assert.NotContains(t, page.Text, "Site Header")
	assert.NotContains(t, page.Text, "Copyright")
	assert.NotContains(t, page.Text, "Enable JS")
}

func TestArticleExtractor(t *testing.T) {
	art, err := NewArticleExtractor().Extract(context.Background(), &model.FetchResult{
		URL:  "https://news.example/story",
		Body: []byte(samplePage),
	})
	require.NoError(t, err)

	assert.Equal(t, "The Real Headline", art.Title)
	assert.Equal(t, "Jane Doe", art.Byline)
	assert.Positive(t, art.WordCount)
}

func TestArticleExtractorPrefersReaderContent(t *testing.T) {
	art, err := NewArticleExtractor().Extract(context.Background(), &model.FetchResult{
		URL:     "https://news.example/story",
		Title:   "Reader Title",
		Content: "# Headline\n\nreader markdown body",
	})
	require.NoError(t, err)

	assert.Equal(t, "Reader Title", art.Title)
	assert.Contains(t, art.Text, "reader markdown body")
}

func TestDocumentExtractorHTML(t *testing.T) {
	e := NewDocumentExtractor(NewPdfToText(""))
	doc, err := e.Extract(context.Background(), &model.FetchResult{
		URL:         "https://example.org/page",
		ContentType: "text/html",
		Body:        []byte(samplePage),
	})
	require.NoError(t, err)

	assert.Equal(t, "html", doc.Format)
	assert.Equal(t, "The Real Headline", doc.Title)
	assert.Contains(t, doc.Text, "First paragraph")
}

func TestDocumentExtractorMarkdown(t *testing.T) {
	e := NewDocumentExtractor(NewPdfToText(""))
	doc, err := e.Extract(context.Background(), &model.FetchResult{
		Title:   "Rendered",
		Content: "markdown text from the reader",
	})
	require.NoError(t, err)

	assert.Equal(t, "markdown", doc.Format)
	assert.Equal(t, "markdown text from the reader", doc.Text)
}

func TestDocumentExtractorNilFetch(t *testing.T) {
	e := NewDocumentExtractor(NewPdfToText(""))
	_, err := e.Extract(context.Background(), nil)
	require.Error(t, err)
}

func TestPdfToTextMissingBinary(t *testing.T) {
	p := NewPdfToText("/nonexistent/pdftotext")
	_, err := p.ExtractText(context.Background(), []byte("%PDF-1.7"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftotext failed")
}

func TestCollapseWhitespace(t *testing.T) {
	in := "a   b\n\n\n  c\td  \n"
	assert.Equal(t, "a b\nc d", collapseWhitespace(in))
}
