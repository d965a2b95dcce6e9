package workflow

import (
	"context"
	"errors"
	"strings"

	"github.com/sells-group/scrape-cli/internal/model"
)

// fakeFetch serves canned results per URL and records call order.
type fakeFetch struct {
	results map[string]*model.FetchResult
	errs    map[string]error
	calls   []string
}

func (f *fakeFetch) Fetch(_ context.Context, url string) (*model.FetchResult, error) {
	f.calls = append(f.calls, url)
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	if res, ok := f.results[url]; ok {
		return res, nil
	}
	return &model.FetchResult{URL: url, FinalURL: url, StatusCode: 200, ContentType: "text/html"}, nil
}

type fakeClassifier struct {
	cls   *model.Classification
	err   error
	calls int
}

func (f *fakeClassifier) Classify(_ context.Context, _ *model.FetchResult) (*model.Classification, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.cls, nil
}

type fakeRegistry struct {
	name  string
	work  *model.RegistryWork
	err   error
	calls int
}

func (f *fakeRegistry) Name() string { return f.name }

func (f *fakeRegistry) Lookup(_ context.Context, _ model.LookupRequest) (*model.RegistryWork, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.work, nil
}

type fakeVideo struct {
	meta  *model.VideoMetadata
	err   error
	calls int
}

func (f *fakeVideo) Metadata(_ context.Context, _ string) (*model.VideoMetadata, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.meta, nil
}

type fakeArticle struct {
	art   *model.ArticleContent
	err   error
	calls int
}

func (f *fakeArticle) Extract(_ context.Context, _ *model.FetchResult) (*model.ArticleContent, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.art, nil
}

// fakeDocument returns text keyed by the fetched URL, with a default for
// unknown URLs.
type fakeDocument struct {
	texts      map[string]string
	defaultDoc *model.DocumentContent
	err        error
	calls      int
}

func (f *fakeDocument) Extract(_ context.Context, fetch *model.FetchResult) (*model.DocumentContent, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if fetch != nil {
		if text, ok := f.texts[fetch.URL]; ok {
			return &model.DocumentContent{Format: "pdf", Text: text}, nil
		}
	}
	if f.defaultDoc != nil {
		return f.defaultDoc, nil
	}
	return &model.DocumentContent{Format: "html", Text: "stub"}, nil
}

type fakeDiscovery struct {
	res   *model.DiscoveryResult
	err   error
	calls int
}

func (f *fakeDiscovery) DiscoverLinks(_ context.Context, _ *model.RunState) (*model.DiscoveryResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.res, nil
}

// longText builds text safely above the useful-text threshold.
func longText(seed string) string {
	return seed + " " + strings.Repeat("lorem ipsum dolor sit amet ", 10)
}

var errBoom = errors.New("boom")
