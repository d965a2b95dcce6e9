package registry

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/scrape-cli/internal/model"
	"github.com/sells-group/scrape-cli/internal/resilience"
	"github.com/sells-group/scrape-cli/pkg/openalex"
)

// searchLimit is how many title-search candidates each registry considers.
const searchLimit = 5

// OpenAlex adapts the OpenAlex client to the registry service contract.
type OpenAlex struct {
	client openalex.Client
	retry  resilience.RetryConfig
}

// NewOpenAlex creates the OpenAlex registry adapter.
func NewOpenAlex(client openalex.Client) *OpenAlex {
	retry := resilience.DefaultRetryConfig()
	retry.OnRetry = resilience.RetryLogger("openalex", "lookup")
	return &OpenAlex{client: client, retry: retry}
}

func (r *OpenAlex) Name() string { return "openalex" }

// Lookup resolves a work by DOI when present, otherwise by fuzzy title
// match over a search. A nil work with nil error means no match.
func (r *OpenAlex) Lookup(ctx context.Context, req model.LookupRequest) (*model.RegistryWork, error) {
	if req.DOI != "" {
		work, err := resilience.DoVal(ctx, r.retry, func(ctx context.Context) (*openalex.Work, error) {
			return r.client.WorkByDOI(ctx, req.DOI)
		})
		if err != nil {
			return nil, eris.Wrap(err, "registry: openalex doi lookup")
		}
		if work == nil {
			return nil, nil
		}
		return r.convert(work, false), nil
	}

	if req.Title == "" {
		return nil, nil
	}

	works, err := resilience.DoVal(ctx, r.retry, func(ctx context.Context) ([]openalex.Work, error) {
		return r.client.SearchByTitle(ctx, req.Title, searchLimit)
	})
	if err != nil {
		return nil, eris.Wrap(err, "registry: openalex title search")
	}

	for i := range works {
		if titlesMatch(req.Title, works[i].DisplayName) {
			zap.L().Debug("openalex title match",
				zap.String("query", req.Title),
				zap.String("matched", works[i].DisplayName),
			)
			return r.convert(&works[i], true), nil
		}
	}
	return nil, nil
}

func (r *OpenAlex) convert(w *openalex.Work, matched bool) *model.RegistryWork {
	out := &model.RegistryWork{
		Source:        r.Name(),
		ID:            w.ID,
		DOI:           strings.TrimPrefix(w.DOI, "https://doi.org/"),
		Title:         w.DisplayName,
		Year:          w.PublicationYear,
		CitationCount: w.CitedByCount,
		OpenAccess:    w.OpenAccess.IsOA,
		Matched:       matched,
	}
	for _, a := range w.Authorships {
		if a.Author.DisplayName != "" {
			out.Authors = append(out.Authors, a.Author.DisplayName)
		}
	}
	if w.PrimaryLocation != nil && w.PrimaryLocation.Source != nil {
		out.Journal = w.PrimaryLocation.Source.DisplayName
	}

	seen := map[string]struct{}{}
	addPDF := func(u string) {
		if u == "" {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		out.PDFURLs = append(out.PDFURLs, u)
	}
	if w.BestOALocation != nil {
		addPDF(w.BestOALocation.PDFURL)
	}
	addPDF(w.OpenAccess.OAURL)
	return out
}
