// Package crossref provides a client for the Crossref REST API.
package crossref

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

// Client defines the Crossref operations used for bibliographic lookup.
type Client interface {
	// WorkByDOI fetches a single work record by DOI.
	WorkByDOI(ctx context.Context, doi string) (*Work, error)
	// SearchByTitle runs a bibliographic query and returns candidates.
	SearchByTitle(ctx context.Context, title string, limit int) ([]Work, error)
}

// Work is a Crossref work record, trimmed to the fields we consume.
type Work struct {
	DOI                 string    `json:"DOI"`
	Title               []string  `json:"title"`
	ContainerTitle      []string  `json:"container-title"`
	Publisher           string    `json:"publisher"`
	IsReferencedByCount int       `json:"is-referenced-by-count"`
	Author              []Author  `json:"author"`
	Issued              DateParts `json:"issued"`
	Link                []Link    `json:"link"`
}

// Author is a contributor on a work.
type Author struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

// DateParts is Crossref's nested date encoding.
type DateParts struct {
	DateParts [][]int `json:"date-parts"`
}

// Year returns the first year component, or zero when absent.
func (d DateParts) Year() int {
	if len(d.DateParts) > 0 && len(d.DateParts[0]) > 0 {
		return d.DateParts[0][0]
	}
	return 0
}

// Link is a full-text link advertised on a work.
type Link struct {
	URL         string `json:"URL"`
	ContentType string `json:"content-type"`
}

type workResponse struct {
	Message Work `json:"message"`
}

type searchResponse struct {
	Message struct {
		Items []Work `json:"items"`
	} `json:"message"`
}

// Option configures the Crossref client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithMailto adds a mailto parameter for the Crossref polite pool.
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

// NewClient creates a new Crossref client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: "https://api.crossref.org",
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
	reqURL := fmt.Sprintf("%s/works/%s", c.baseURL, url.PathEscape(doi))
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
		return nil, statusError(status, eris.Errorf("crossref: unexpected status %d: %s", status, string(body)))
	}

	var result workResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "crossref: unmarshal work")
	}
	return &result.Message, nil
}

func (c *httpClient) SearchByTitle(ctx context.Context, title string, limit int) ([]Work, error) {
	if limit <= 0 {
		limit = 5
	}
	q := url.Values{}
	q.Set("query.bibliographic", title)
	q.Set("rows", strconv.Itoa(limit))
	if c.mailto != "" {
		q.Set("mailto", c.mailto)
	}
	reqURL := c.baseURL + "/works?" + q.Encode()

	body, status, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, statusError(status, eris.Errorf("crossref: search unexpected status %d: %s", status, string(body)))
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "crossref: unmarshal search response")
	}
	return result.Message.Items, nil
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
		return nil, 0, eris.Wrap(err, "crossref: create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, eris.Wrap(err, "crossref: request failed")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, eris.Wrap(err, "crossref: read response body")
	}
	return body, resp.StatusCode, nil
}
