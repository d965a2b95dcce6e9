// Package openalex provides a client for the OpenAlex works API.
package openalex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/scrape-cli/internal/resilience"
)

// Client defines the OpenAlex operations used for bibliographic lookup.
type Client interface {
	// WorkByDOI fetches a single work record by DOI.
	WorkByDOI(ctx context.Context, doi string) (*Work, error)
	// SearchByTitle runs a full-text title search and returns candidates.
	SearchByTitle(ctx context.Context, title string, limit int) ([]Work, error)
}

// Work is an OpenAlex work record, trimmed to the fields we consume.
type Work struct {
	ID              string     `json:"id"`
	DOI             string     `json:"doi"`
	DisplayName     string     `json:"display_name"`
	PublicationYear int        `json:"publication_year"`
	CitedByCount    int        `json:"cited_by_count"`
	OpenAccess      OpenAccess `json:"open_access"`
	BestOALocation  *Location  `json:"best_oa_location"`
	PrimaryLocation *Location  `json:"primary_location"`
	Authorships     []struct {
		Author struct {
			DisplayName string `json:"display_name"`
		} `json:"author"`
	} `json:"authorships"`
}

// OpenAccess summarizes a work's open-access status.
type OpenAccess struct {
	IsOA  bool   `json:"is_oa"`
	OAURL string `json:"oa_url"`
}

// Location is a hosted copy of a work.
type Location struct {
	PDFURL      string `json:"pdf_url"`
	LandingPage string `json:"landing_page_url"`
	Source      *struct {
		DisplayName string `json:"display_name"`
	} `json:"source"`
}

type searchResponse struct {
	Results []Work `json:"results"`
}

// Option configures the OpenAlex client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithMailto adds a mailto parameter, which routes requests to the polite
// pool with better rate limits.
func WithMailto(email string) Option {
	return func(c *httpClient) {
		c.mailto = email
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	baseURL string
	mailto  string
	http    *http.Client
}

// NewClient creates a new OpenAlex client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: "https://api.openalex.org",
		http: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) WorkByDOI(ctx context.Context, doi string) (*Work, error) {
	reqURL := fmt.Sprintf("%s/works/doi:%s", c.baseURL, url.PathEscape(doi))
	if c.mailto != "" {
		reqURL += "?mailto=" + url.QueryEscape(c.mailto)
	}

	body, status, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, statusError(status, eris.Errorf("openalex: unexpected status %d: %s", status, string(body)))
	}

	var work Work
	if err := json.Unmarshal(body, &work); err != nil {
		return nil, eris.Wrap(err, "openalex: unmarshal work")
	}
	return &work, nil
}

func (c *httpClient) SearchByTitle(ctx context.Context, title string, limit int) ([]Work, error) {
	if limit <= 0 {
		limit = 5
	}
	q := url.Values{}
	q.Set("search", title)
	q.Set("per_page", strconv.Itoa(limit))
	if c.mailto != "" {
		q.Set("mailto", c.mailto)
	}
	reqURL := c.baseURL + "/works?" + q.Encode()

	body, status, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, statusError(status, eris.Errorf("openalex: search unexpected status %d: %s", status, string(body)))
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "openalex: unmarshal search response")
	}
	return result.Results, nil
}

// statusError marks retryable statuses as transient so callers wrapping
// lookups in resilience.DoVal retry them.
func statusError(status int, err error) error {
	if resilience.IsTransientHTTPStatus(status) {
		return resilience.NewTransientError(err, status)
	}
	return err
}

func (c *httpClient) get(ctx context.Context, reqURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, eris.Wrap(err, "openalex: create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, eris.Wrap(err, "openalex: request failed")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, eris.Wrap(err, "openalex: read response body")
	}
	return body, resp.StatusCode, nil
}
