package workflow

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/scrape-cli/internal/model"
)

// ScienceNode handles the scientific-paper branch: registry metadata
// lookups on first entry, then acquisition of full text from candidate
// links. The node is re-entered at most once, via AI discovery, and the
// re-entry pass skips the lookups and only tries newly discovered links.
type ScienceNode struct{}

func (n *ScienceNode) ID() NodeID { return NodeScience }

func (n *ScienceNode) Execute(ctx context.Context, st *model.RunState, deps *Collaborators) (NodeID, error) {
	log := zap.L().With(zap.String("url", st.URL))

	// Re-entry only happens through discovery, so an unset DiscoveryUsed
	// flag marks the first pass.
	if !st.DiscoveryUsed {
		n.lookup(ctx, st, deps, log)
	}

	n.acquire(ctx, st, deps, log)

	switch {
	case st.FullTextExtracted:
		return NodeFinalize, nil
	case !st.DiscoveryUsed:
		return NodeAiDiscovery, nil
	default:
		return NodeFinalize, nil
	}
}

// lookup queries each registry once, in order, attaching whatever records
// come back and pooling their full-text links. Registry failures are
// recorded and skipped.
func (n *ScienceNode) lookup(ctx context.Context, st *model.RunState, deps *Collaborators, log *zap.Logger) {
	req := model.LookupRequest{}
	if st.Classification != nil {
		req.DOI = st.Classification.Identifiers.DOI
	}
	if st.Fetch != nil {
		req.Title = st.Fetch.Title
	}

	if st.Family == nil {
		st.Family = &model.FamilyResult{
			Kind:    model.ContentScience,
			Science: &model.ScienceMetadata{},
		}
	}

	for _, reg := range deps.Registries {
		if runCancelled(ctx, st) {
			return
		}
		st.Bump(model.StageRegistry)
		work, err := reg.Lookup(ctx, req)
		if err != nil {
			st.AddError(model.StageRegistry, reg.Name()+": "+err.Error())
			log.Warn("registry lookup failed", zap.String("registry", reg.Name()), zap.Error(err))
			continue
		}
		if work == nil {
			log.Debug("registry had no record", zap.String("registry", reg.Name()))
			continue
		}

		switch reg.Name() {
		case "openalex":
			st.Family.Science.OpenAlex = work
		case "crossref":
			st.Family.Science.Crossref = work
		}
		st.MetadataComplete = true
		added := st.AddLinks(work.PDFURLs, model.LinkSourceRegistry)
		log.Debug("registry record attached",
			zap.String("registry", reg.Name()),
			zap.Int("links_added", added),
		)
	}
}

// acquire downloads up to maxCandidateAttempts untried candidate links and
// keeps the first extraction that yields useful text.
func (n *ScienceNode) acquire(ctx context.Context, st *model.RunState, deps *Collaborators, log *zap.Logger) {
	for _, link := range st.TakeUntried(maxCandidateAttempts) {
		if runCancelled(ctx, st) {
			return
		}
		st.Bump(model.StageAcquire)

		res, err := deps.Fetch.Fetch(ctx, link.URL)
		if err != nil {
			st.AddError(model.StageAcquire, err.Error())
			log.Debug("candidate fetch failed", zap.String("link", link.URL), zap.Error(err))
			continue
		}

		doc, err := deps.Document.Extract(ctx, res)
		if err != nil {
			st.AddError(model.StageAcquire, err.Error())
			log.Debug("candidate extraction failed", zap.String("link", link.URL), zap.Error(err))
			continue
		}
		if doc == nil || !usefulText(doc.Text) {
			continue
		}

		st.FullText = doc.Text
		st.FullTextExtracted = true
		log.Info("full text acquired",
			zap.String("link", link.URL),
			zap.String("source", string(link.Source)),
			zap.Int("chars", len(doc.Text)),
		)
		return
	}
}
