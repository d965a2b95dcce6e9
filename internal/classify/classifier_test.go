package classify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/scrape-cli/internal/model"
	"github.com/sells-group/scrape-cli/pkg/anthropic"
)

func TestExtractIdentifiers(t *testing.T) {
	tests := []struct {
		name      string
		fetch     *model.FetchResult
		wantDOI   string
		wantArxiv string
	}{
		{
			name:    "doi in url",
			fetch:   &model.FetchResult{URL: "https://doi.org/10.1038/s41586-021-03819-2"},
			wantDOI: "10.1038/s41586-021-03819-2",
		},
		{
			name:    "doi in body with trailing punctuation",
			fetch:   &model.FetchResult{URL: "https://x.example", Body: []byte(`cite as doi: 10.1234/abc.def,`)},
			wantDOI: "10.1234/abc.def",
		},
		{
			name:      "arxiv abs url",
			fetch:     &model.FetchResult{URL: "https://arxiv.org/abs/2106.04560v2"},
			wantArxiv: "2106.04560",
		},
		{
			name:      "arxiv prefix in text",
			fetch:     &model.FetchResult{URL: "https://x.example", Content: "preprint arXiv:1706.03762"},
			wantArxiv: "1706.03762",
		},
		{
			name:  "nothing",
			fetch: &model.FetchResult{URL: "https://example.org", Body: []byte("plain page")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := extractIdentifiers(tt.fetch)
			assert.Equal(t, tt.wantDOI, ids.DOI)
			assert.Equal(t, tt.wantArxiv, ids.ArxivID)
		})
	}
}

func TestClassifyHeuristicScience(t *testing.T) {
	c := New()
	cls, err := c.Classify(context.Background(), &model.FetchResult{
		URL:  "https://www.nature.com/articles/s41586-021-03819-2",
		Body: []byte(`<meta name="citation_title" content="Highly accurate protein structure prediction"> doi 10.1038/s41586-021-03819-2`),
	})
	require.NoError(t, err)

	assert.Equal(t, model.ContentScience, cls.Label)
	assert.Greater(t, cls.Confidence, 0.7)
	assert.Equal(t, "10.1038/s41586-021-03819-2", cls.Identifiers.DOI)
}

func TestClassifyHeuristicSingleSignal(t *testing.T) {
	cls, err := New().Classify(context.Background(), &model.FetchResult{
		URL:  "https://blog.example/post",
		Body: []byte("we cite 10.1234/some.doi here"),
	})
	require.NoError(t, err)

	assert.Equal(t, model.ContentScience, cls.Label)
	assert.InDelta(t, 0.75, cls.Confidence, 1e-9)
}

func TestClassifyHeuristicVideo(t *testing.T) {
	cls, err := New().Classify(context.Background(), &model.FetchResult{
		URL: "https://www.youtube.com/watch?v=abc",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ContentVideo, cls.Label)
}

func TestClassifyHeuristicPDFDocument(t *testing.T) {
	cls, err := New().Classify(context.Background(), &model.FetchResult{
		URL:         "https://example.org/manual.pdf",
		ContentType: "application/pdf",
		Body:        []byte("%PDF-1.4 binary"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.ContentDocument, cls.Label)
	assert.InDelta(t, 0.9, cls.Confidence, 1e-9)
}

func TestClassifyHeuristicArticle(t *testing.T) {
	cls, err := New().Classify(context.Background(), &model.FetchResult{
		URL:  "https://news.example/story",
		Body: []byte(`<meta property="og:type" content="article"><p>story text</p>`),
	})
	require.NoError(t, err)
	assert.Equal(t, model.ContentArticle, cls.Label)
}

func TestClassifyInconclusiveWithoutLLM(t *testing.T) {
	cls, err := New().Classify(context.Background(), &model.FetchResult{
		URL:  "https://example.org/plain",
		Body: []byte("<html><body>hello</body></html>"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.ContentDocument, cls.Label)
	assert.InDelta(t, 0.5, cls.Confidence, 1e-9)
}

type stubLLM struct {
	reply string
	err   error
	calls int
}

func (s *stubLLM) CreateMessage(_ context.Context, _ anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: s.reply}},
	}, nil
}

func TestClassifyLLMFallback(t *testing.T) {
	llm := &stubLLM{reply: "```json\n{\"label\": \"article\", \"confidence\": 0.82}\n```"}
	c := New(WithLLM(llm, "test-model"))

	cls, err := c.Classify(context.Background(), &model.FetchResult{
		URL:  "https://example.org/plain",
		Body: []byte("<html><body>ambiguous page</body></html>"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, llm.calls)
	assert.Equal(t, model.ContentArticle, cls.Label)
	assert.InDelta(t, 0.82, cls.Confidence, 1e-9)
}

func TestClassifyLLMNotCalledWhenHeuristicsHit(t *testing.T) {
	llm := &stubLLM{reply: `{"label": "document", "confidence": 0.9}`}
	c := New(WithLLM(llm, "test-model"))

	_, err := c.Classify(context.Background(), &model.FetchResult{
		URL: "https://youtu.be/abc",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, llm.calls)
}

func TestParseClassification(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantLbl  model.ContentType
		wantConf float64
		wantErr  bool
	}{
		{"plain json", `{"label": "science", "confidence": 0.88}`, model.ContentScience, 0.88, false},
		{"fenced", "```json\n{\"label\": \"news\", \"confidence\": 0.6}\n```", model.ContentNews, 0.6, false},
		{"unknown label", `{"label": "recipe", "confidence": 0.9}`, model.ContentDocument, 0.9, false},
		{"clamped confidence", `{"label": "video", "confidence": 1.4}`, model.ContentVideo, 1.0, false},
		{"garbage", "not json at all", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls, err := parseClassification(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLbl, cls.Label)
			assert.InDelta(t, tt.wantConf, cls.Confidence, 1e-9)
		})
	}
}
