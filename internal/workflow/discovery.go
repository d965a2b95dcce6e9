package workflow

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/scrape-cli/internal/model"
)

// AiDiscoveryNode runs the single AI link-discovery pass. It marks the
// pass as used before calling out, so the science node can never loop back
// here a second time.
type AiDiscoveryNode struct{}

func (n *AiDiscoveryNode) ID() NodeID { return NodeAiDiscovery }

func (n *AiDiscoveryNode) Execute(ctx context.Context, st *model.RunState, deps *Collaborators) (NodeID, error) {
	st.DiscoveryUsed = true

	if runCancelled(ctx, st) {
		return NodeFinalize, nil
	}

	st.Bump(model.StageDiscovery)
	res, err := deps.Discovery.DiscoverLinks(ctx, st)
	if err != nil {
		st.AddError(model.StageDiscovery, err.Error())
		zap.L().Warn("ai discovery failed", zap.String("url", st.URL), zap.Error(err))
		return NodeDocument, nil
	}

	added := st.AddLinks(res.Links, model.LinkSourceDiscovery)
	zap.L().Debug("ai discovery done",
		zap.String("url", st.URL),
		zap.Int("links", len(res.Links)),
		zap.Int("new_links", added),
		zap.Bool("full_text_available", res.FullTextAvailable),
	)

	confidentScience := st.Classification != nil &&
		st.Classification.Label == model.ContentScience &&
		st.Classification.Confidence > scienceConfidenceMin

	switch {
	case len(res.Links) > 0 && confidentScience:
		return NodeScience, nil
	case len(res.Links) > 0:
		// Non-science content with discovered links: the page content in
		// hand is treated as the full text.
		st.FullTextExtracted = true
		return NodeFinalize, nil
	case !res.FullTextAvailable:
		return NodeDocument, nil
	default:
		return NodeFinalize, nil
	}
}
