package media

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/scrape-cli/pkg/oembed"
)

type stubOEmbed struct {
	resp *oembed.Response
	err  error
}

func (s *stubOEmbed) Resolve(_ context.Context, _ string) (*oembed.Response, error) {
	return s.resp, s.err
}

func TestVideoMetadata(t *testing.T) {
	v := NewVideo(&stubOEmbed{resp: &oembed.Response{
		Type:         "video",
		Title:        "Conference Talk",
		AuthorName:   "Speaker",
		ProviderName: "YouTube",
		ThumbnailURL: "https://i.example/t.jpg",
		Duration:     640,
	}})

	meta, err := v.Metadata(context.Background(), "https://www.youtube.com/watch?v=abc")
	require.NoError(t, err)

	assert.Equal(t, "Conference Talk", meta.Title)
	assert.Equal(t, "Speaker", meta.Author)
	assert.Equal(t, "YouTube", meta.Provider)
	assert.Equal(t, 640, meta.Duration)
}

func TestVideoMetadataError(t *testing.T) {
	v := NewVideo(&stubOEmbed{err: errors.New("no endpoint for host")})
	_, err := v.Metadata(context.Background(), "https://unknown.example/v/1")
	require.Error(t, err)
}
