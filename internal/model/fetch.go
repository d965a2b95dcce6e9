package model

// FetchResult is what the fetch service hands back for a URL: the raw body,
// any reader-extracted text, and enough response metadata to classify it.
type FetchResult struct {
	// URL is the requested URL; FinalURL is where the fetch landed after
	// redirects. They match when no redirect occurred.
	URL      string `json:"url"`
	FinalURL string `json:"final_url"`

	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type"`
	Title       string `json:"title,omitempty"`

	// Body is the raw response body. For binary payloads (PDFs and the
	// like) this is the only content available.
	Body []byte `json:"-"`

	// Content is readable text extracted by the fetcher, when available.
	Content string `json:"content,omitempty"`

	// Via names the scraper in the fetch chain that produced the result.
	Via string `json:"via,omitempty"`
}

// IsPDF reports whether the fetched body looks like a PDF, either by
// declared content type or by magic bytes.
func (f *FetchResult) IsPDF() bool {
	if f == nil {
		return false
	}
	if f.ContentType == "application/pdf" {
		return true
	}
	return len(f.Body) >= 5 && string(f.Body[:5]) == "%PDF-"
}
