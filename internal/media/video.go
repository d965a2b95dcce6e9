// Package media adapts the oEmbed client to the workflow's video service.
package media

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/scrape-cli/internal/model"
	"github.com/sells-group/scrape-cli/internal/resilience"
	"github.com/sells-group/scrape-cli/pkg/oembed"
)

// Video resolves hosted-video metadata through provider oEmbed endpoints.
type Video struct {
	client oembed.Client
	retry  resilience.RetryConfig
}

// NewVideo creates the video service.
func NewVideo(client oembed.Client) *Video {
	retry := resilience.DefaultRetryConfig()
	retry.OnRetry = resilience.RetryLogger("oembed", "resolve")
	return &Video{client: client, retry: retry}
}

// Metadata fetches oEmbed metadata for the URL.
func (v *Video) Metadata(ctx context.Context, url string) (*model.VideoMetadata, error) {
	resp, err := resilience.DoVal(ctx, v.retry, func(ctx context.Context) (*oembed.Response, error) {
		return v.client.Resolve(ctx, url)
	})
	if err != nil {
		return nil, eris.Wrap(err, "media: oembed resolve")
	}

	return &model.VideoMetadata{
		Title:        resp.Title,
		Author:       resp.AuthorName,
		Provider:     resp.ProviderName,
		ThumbnailURL: resp.ThumbnailURL,
		Duration:     resp.Duration,
	}, nil
}
