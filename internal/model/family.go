package model

// RegistryWork is a bibliographic record returned by an academic registry
// lookup, normalized across providers.
type RegistryWork struct {
	Source        string   `json:"source"`
	ID            string   `json:"id,omitempty"`
	DOI           string   `json:"doi,omitempty"`
	Title         string   `json:"title,omitempty"`
	Authors       []string `json:"authors,omitempty"`
	Journal       string   `json:"journal,omitempty"`
	Publisher     string   `json:"publisher,omitempty"`
	Year          int      `json:"year,omitempty"`
	CitationCount int      `json:"citation_count,omitempty"`
	OpenAccess    bool     `json:"open_access,omitempty"`

	// PDFURLs are full-text links advertised by the registry. They feed
	// the run's candidate-link pool.
	PDFURLs []string `json:"pdf_urls,omitempty"`

	// Matched indicates the record was located by fuzzy title match
	// rather than an exact identifier lookup.
	Matched bool `json:"matched,omitempty"`
}

// ScienceMetadata aggregates the registry lookups for a scientific paper.
// Either side may be nil when the registry had no matching record.
type ScienceMetadata struct {
	OpenAlex *RegistryWork `json:"openalex,omitempty"`
	Crossref *RegistryWork `json:"crossref,omitempty"`
}

// VideoMetadata is oEmbed-style metadata for a hosted video.
type VideoMetadata struct {
	Title        string `json:"title,omitempty"`
	Author       string `json:"author,omitempty"`
	Provider     string `json:"provider,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Duration     int    `json:"duration,omitempty"`
	Transcript   string `json:"transcript,omitempty"`
}

// ArticleContent is the readable extraction of a news or blog article.
type ArticleContent struct {
	Title     string `json:"title,omitempty"`
	Byline    string `json:"byline,omitempty"`
	Published string `json:"published,omitempty"`
	Text      string `json:"text,omitempty"`
	WordCount int    `json:"word_count,omitempty"`
}

// DocumentContent is text pulled from a generic document (HTML or PDF).
type DocumentContent struct {
	Format string `json:"format,omitempty"`
	Title  string `json:"title,omitempty"`
	Text   string `json:"text,omitempty"`
}

// FamilyResult is a tagged union: Kind names the populated branch, and at
// most one of the pointer fields is non-nil.
type FamilyResult struct {
	Kind     ContentType      `json:"kind"`
	Science  *ScienceMetadata `json:"science,omitempty"`
	Video    *VideoMetadata   `json:"video,omitempty"`
	Article  *ArticleContent  `json:"article,omitempty"`
	Document *DocumentContent `json:"document,omitempty"`
}

// LookupRequest carries what a registry needs to locate a work: an exact
// DOI when known, otherwise a title for fuzzy matching.
type LookupRequest struct {
	DOI   string
	Title string
}

// DiscoveryResult is the parsed outcome of an AI link-discovery pass.
type DiscoveryResult struct {
	Links []string `json:"links"`

	// FullTextAvailable reports whether the page itself already contains
	// the full text, making further link chasing unnecessary.
	FullTextAvailable bool `json:"full_text_available"`
}
