// Package fetch provides a rate-limited download client for HTTP, HTTPS,
// and FTP URLs.
package fetch

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Client defines the download operations.
type Client interface {
	// Get downloads a URL and returns the response body with metadata.
	Get(ctx context.Context, rawURL string) (*Response, error)
}

// Response is the outcome of a download.
type Response struct {
	// FinalURL is where the request landed after redirects.
	FinalURL    string
	StatusCode  int
	ContentType string
	Body        []byte
}

// Option configures the fetch client.
type Option func(*httpClient)

// WithUserAgent sets the User-Agent header on HTTP requests.
func WithUserAgent(ua string) Option {
	return func(c *httpClient) {
		c.userAgent = ua
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit sets the request rate in requests per second.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithMaxBodySize caps how many bytes of a response body are read.
func WithMaxBodySize(n int64) Option {
	return func(c *httpClient) {
		c.maxBodySize = n
	}
}

type httpClient struct {
	userAgent   string
	maxBodySize int64
	limiter     *rate.Limiter
	http        *http.Client
}

// NewClient creates a new download client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		userAgent:   "scrape-cli/1.0",
		maxBodySize: 32 << 20,
		limiter:     rate.NewLimiter(10, 10),
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				MaxConnsPerHost:     20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Get(ctx context.Context, rawURL string) (*Response, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: parse url")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "fetch: rate limiter wait")
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return c.getHTTP(ctx, rawURL)
	case "ftp":
		return c.getFTP(ctx, u)
	default:
		return nil, eris.Errorf("fetch: unsupported scheme %q", u.Scheme)
	}
}

// retryableStatusCode returns true if the HTTP status code should trigger a retry.
func retryableStatusCode(code int) bool {
	return code == http.StatusTooManyRequests ||
		code == http.StatusInternalServerError ||
		code == http.StatusBadGateway ||
		code == http.StatusServiceUnavailable
}

func (c *httpClient) getHTTP(ctx context.Context, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: create request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	const maxAttempts = 3
	backoff := 1 * time.Second

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		retryReq := req.Clone(ctx)

		resp, err := c.http.Do(retryReq)
		if err != nil {
			lastErr = err
			if attempt < maxAttempts {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(backoff):
				}
				backoff *= 2
				continue
			}
			return nil, eris.Wrap(lastErr, "fetch: request failed")
		}

		body, readErr := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, eris.Wrap(readErr, "fetch: read response body")
		}

		if retryableStatusCode(resp.StatusCode) && attempt < maxAttempts {
			lastErr = eris.Errorf("fetch: status %d from %s", resp.StatusCode, rawURL)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			continue
		}

		finalURL := rawURL
		if resp.Request != nil && resp.Request.URL != nil {
			finalURL = resp.Request.URL.String()
		}
		ct := resp.Header.Get("Content-Type")
		if i := strings.Index(ct, ";"); i >= 0 {
			ct = strings.TrimSpace(ct[:i])
		}

		return &Response{
			FinalURL:    finalURL,
			StatusCode:  resp.StatusCode,
			ContentType: ct,
			Body:        body,
		}, nil
	}

	return nil, eris.Wrap(lastErr, "fetch: retries exhausted")
}

func (c *httpClient) getFTP(ctx context.Context, u *url.URL) (*Response, error) {
	addr := u.Host
	if u.Port() == "" {
		addr += ":21"
	}

	conn, err := ftp.Dial(addr, ftp.DialWithContext(ctx), ftp.DialWithTimeout(30*time.Second))
	if err != nil {
		return nil, eris.Wrap(err, "fetch: ftp dial")
	}
	defer conn.Quit() //nolint:errcheck

	user, pass := "anonymous", "anonymous"
	if u.User != nil {
		user = u.User.Username()
		if p, ok := u.User.Password(); ok {
			pass = p
		}
	}
	if err := conn.Login(user, pass); err != nil {
		return nil, eris.Wrap(err, "fetch: ftp login")
	}

	resp, err := conn.Retr(u.Path)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: ftp retr")
	}
	defer resp.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp, c.maxBodySize))
	if err != nil {
		return nil, eris.Wrap(err, "fetch: ftp read")
	}

	return &Response{
		FinalURL:   u.String(),
		StatusCode: http.StatusOK,
		Body:       body,
	}, nil
}
