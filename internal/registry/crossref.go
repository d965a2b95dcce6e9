package registry

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/scrape-cli/internal/model"
	"github.com/sells-group/scrape-cli/internal/resilience"
	"github.com/sells-group/scrape-cli/pkg/crossref"
)

// Crossref adapts the Crossref client to the registry service contract.
type Crossref struct {
	client crossref.Client
	retry  resilience.RetryConfig
}

// NewCrossref creates the Crossref registry adapter.
func NewCrossref(client crossref.Client) *Crossref {
	retry := resilience.DefaultRetryConfig()
	retry.OnRetry = resilience.RetryLogger("crossref", "lookup")
	return &Crossref{client: client, retry: retry}
}

func (r *Crossref) Name() string { return "crossref" }

// Lookup resolves a work by DOI when present, otherwise by fuzzy title
// match over a bibliographic query. A nil work with nil error means no
// match.
func (r *Crossref) Lookup(ctx context.Context, req model.LookupRequest) (*model.RegistryWork, error) {
	if req.DOI != "" {
		work, err := resilience.DoVal(ctx, r.retry, func(ctx context.Context) (*crossref.Work, error) {
			return r.client.WorkByDOI(ctx, req.DOI)
		})
		if err != nil {
			return nil, eris.Wrap(err, "registry: crossref doi lookup")
		}
		if work == nil {
			return nil, nil
		}
		return r.convert(work, false), nil
	}

	if req.Title == "" {
		return nil, nil
	}

	works, err := resilience.DoVal(ctx, r.retry, func(ctx context.Context) ([]crossref.Work, error) {
		return r.client.SearchByTitle(ctx, req.Title, searchLimit)
	})
	if err != nil {
		return nil, eris.Wrap(err, "registry: crossref title search")
	}

	for i := range works {
		if len(works[i].Title) == 0 {
			continue
		}
		if titlesMatch(req.Title, works[i].Title[0]) {
			zap.L().Debug("crossref title match",
				zap.String("query", req.Title),
				zap.String("matched", works[i].Title[0]),
			)
			return r.convert(&works[i], true), nil
		}
	}
	return nil, nil
}

func (r *Crossref) convert(w *crossref.Work, matched bool) *model.RegistryWork {
	out := &model.RegistryWork{
		Source:        r.Name(),
		DOI:           w.DOI,
		Publisher:     w.Publisher,
		Year:          w.Issued.Year(),
		CitationCount: w.IsReferencedByCount,
		Matched:       matched,
	}
	if len(w.Title) > 0 {
		out.Title = w.Title[0]
	}
	if len(w.ContainerTitle) > 0 {
		out.Journal = w.ContainerTitle[0]
	}
	for _, a := range w.Author {
		name := strings.TrimSpace(a.Given + " " + a.Family)
		if name != "" {
			out.Authors = append(out.Authors, name)
		}
	}
	for _, l := range w.Link {
		if l.ContentType == "application/pdf" && l.URL != "" {
			out.PDFURLs = append(out.PDFURLs, l.URL)
		}
	}
	return out
}
