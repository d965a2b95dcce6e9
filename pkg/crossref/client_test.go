package crossref

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/scrape-cli/internal/resilience"
)

func TestWorkByDOI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message": {
			"DOI": "10.1234/xyz",
			"title": ["A Study of Things"],
			"container-title": ["Journal of Examples"],
			"publisher": "Example Press",
			"is-referenced-by-count": 17,
			"author": [{"given": "Jane", "family": "Doe"}],
			"issued": {"date-parts": [[2021, 3, 5]]},
			"link": [{"URL": "https://cdn.example/p.pdf", "content-type": "application/pdf"}]
		}}`))
	}))
	defer srv.Close()

	work, err := NewClient(WithBaseURL(srv.URL)).WorkByDOI(context.Background(), "10.1234/xyz")
	require.NoError(t, err)
	require.NotNil(t, work)

	assert.Equal(t, "10.1234/xyz", work.DOI)
	require.Len(t, work.Title, 1)
	assert.Equal(t, "Journal of Examples", work.ContainerTitle[0])
	assert.Equal(t, 2021, work.Issued.Year())
	require.Len(t, work.Link, 1)
	assert.Equal(t, "application/pdf", work.Link[0].ContentType)
}

func TestWorkByDOINotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	work, err := NewClient(WithBaseURL(srv.URL)).WorkByDOI(context.Background(), "10.9999/missing")
	require.NoError(t, err)
	assert.Nil(t, work)
}

func TestSearchByTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "deep learning", r.URL.Query().Get("query.bibliographic"))
		assert.Equal(t, "2", r.URL.Query().Get("rows"))
		_, _ = w.Write([]byte(`{"message": {"items": [
			{"DOI": "10.1/a", "title": ["Deep Learning"]},
			{"DOI": "10.1/b", "title": ["Shallow Learning"]}
		]}}`))
	}))
	defer srv.Close()

	works, err := NewClient(WithBaseURL(srv.URL)).SearchByTitle(context.Background(), "deep learning", 2)
	require.NoError(t, err)
	require.Len(t, works, 2)
	assert.Equal(t, "10.1/a", works[0].DOI)
}

func TestSearchByTitleRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient(WithBaseURL(srv.URL)).SearchByTitle(context.Background(), "x", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 429")
	assert.True(t, resilience.IsTransient(err), "429 should be retryable")
}

func TestDatePartsYearEmpty(t *testing.T) {
	assert.Zero(t, DateParts{}.Year())
}
