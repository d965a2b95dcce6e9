// Package oembed provides a client for provider oEmbed endpoints.
package oembed

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/scrape-cli/internal/resilience"
)

// Client resolves oEmbed metadata for a media URL.
type Client interface {
	// Resolve looks up the oEmbed endpoint for the URL's host and fetches
	// the metadata. Returns an error for hosts without a known endpoint.
	Resolve(ctx context.Context, mediaURL string) (*Response, error)
}

// Response is the subset of the oEmbed payload we consume.
type Response struct {
	Type         string `json:"type"`
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ProviderName string `json:"provider_name"`
	ThumbnailURL string `json:"thumbnail_url"`
	Duration     int    `json:"duration"`
	HTML         string `json:"html"`
}

// defaultEndpoints maps media hosts to their oEmbed endpoints.
var defaultEndpoints = map[string]string{
	"youtube.com": "https://www.youtube.com/oembed",
	"youtu.be":    "https://www.youtube.com/oembed",
	"vimeo.com":   "https://vimeo.com/api/oembed.json",
}

// Option configures the oEmbed client.
type Option func(*httpClient)

// WithEndpoint overrides or adds the oEmbed endpoint for a host (for
// testing or extra providers).
func WithEndpoint(host, endpoint string) Option {
	return func(c *httpClient) {
		c.endpoints[host] = endpoint
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	endpoints map[string]string
	http      *http.Client
}

// NewClient creates a new oEmbed client with the default provider map.
func NewClient(opts ...Option) Client {
	endpoints := make(map[string]string, len(defaultEndpoints))
	for k, v := range defaultEndpoints {
		endpoints[k] = v
	}
	c := &httpClient{
		endpoints: endpoints,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Resolve(ctx context.Context, mediaURL string) (*Response, error) {
	u, err := url.Parse(mediaURL)
	if err != nil {
		return nil, eris.Wrap(err, "oembed: parse url")
	}

	endpoint := c.endpointFor(u.Hostname())
	if endpoint == "" {
		return nil, eris.Errorf("oembed: no endpoint for host %q", u.Hostname())
	}

	q := url.Values{}
	q.Set("url", mediaURL)
	q.Set("format", "json")
	reqURL := endpoint + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "oembed: create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "oembed: request failed")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "oembed: read response body")
	}
	if resp.StatusCode != http.StatusOK {
		err := eris.Errorf("oembed: unexpected status %d: %s", resp.StatusCode, string(body))
		// Retryable statuses become transient so the media adapter's
		// resilience.DoVal wrapper retries them.
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(err, resp.StatusCode)
		}
		return nil, err
	}

	var result Response
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "oembed: unmarshal response")
	}
	return &result, nil
}

func (c *httpClient) endpointFor(host string) string {
	host = strings.ToLower(host)
	for h, endpoint := range c.endpoints {
		if host == h || strings.HasSuffix(host, "."+h) {
			return endpoint
		}
	}
	return ""
}
