package workflow

import (
	"context"

	"github.com/sells-group/scrape-cli/internal/model"
)

// FetchService retrieves a URL's content. Implementations keep retries,
// rate limiting, and fallback chains internal; a returned error means the
// URL could not be fetched at all.
type FetchService interface {
	Fetch(ctx context.Context, url string) (*model.FetchResult, error)
}

// ClassifierService labels fetched content with a content family.
type ClassifierService interface {
	Classify(ctx context.Context, fetch *model.FetchResult) (*model.Classification, error)
}

// RegistryService looks up bibliographic metadata for a work, by DOI when
// present or by fuzzy title match otherwise. A nil work with nil error
// means the registry had no matching record.
type RegistryService interface {
	Name() string
	Lookup(ctx context.Context, req model.LookupRequest) (*model.RegistryWork, error)
}

// VideoService resolves hosted-video metadata for a URL.
type VideoService interface {
	Metadata(ctx context.Context, url string) (*model.VideoMetadata, error)
}

// ArticleService extracts readable article content from a fetch result.
type ArticleService interface {
	Extract(ctx context.Context, fetch *model.FetchResult) (*model.ArticleContent, error)
}

// DocumentService extracts plain text from a generic document, routing
// HTML and PDF bodies to the right extractor.
type DocumentService interface {
	Extract(ctx context.Context, fetch *model.FetchResult) (*model.DocumentContent, error)
}

// DiscoveryService asks an LLM to find full-text links in page content.
type DiscoveryService interface {
	DiscoverLinks(ctx context.Context, state *model.RunState) (*model.DiscoveryResult, error)
}

// Collaborators bundles every service the engine's nodes call. Registries
// are queried in order; the rest are single services.
type Collaborators struct {
	Fetch      FetchService
	Classifier ClassifierService
	Registries []RegistryService
	Video      VideoService
	Article    ArticleService
	Document   DocumentService
	Discovery  DiscoveryService
}
