package model

// ContentType labels a fetched page with the content family it belongs to.
type ContentType string

const (
	ContentScience  ContentType = "science"
	ContentVideo    ContentType = "video"
	ContentArticle  ContentType = "article"
	ContentNews     ContentType = "news"
	ContentDocument ContentType = "document"
	ContentUnknown  ContentType = "unknown"
)

// Identifiers holds the persistent identifiers a classifier may pull out of
// page content. All fields are optional.
type Identifiers struct {
	DOI        string `json:"doi,omitempty"`
	ArxivID    string `json:"arxiv_id,omitempty"`
	ExternalID string `json:"external_id,omitempty"`
}

// Classification is the immutable outcome of content detection: a family
// label, a confidence in [0,1], and any identifiers found along the way.
// It is produced at most once per run.
type Classification struct {
	Label       ContentType `json:"label"`
	Confidence  float64     `json:"confidence"`
	Identifiers Identifiers `json:"identifiers"`
}
