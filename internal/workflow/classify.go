package workflow

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/scrape-cli/internal/model"
)

// ClassifyNode runs content detection once and routes to the matching
// family branch. Branch precedence: confident science, then video host,
// then article/news, then the generic document fallback. A classifier
// failure also lands in the document branch so the run still produces
// whatever text it can.
type ClassifyNode struct{}

func (n *ClassifyNode) ID() NodeID { return NodeClassify }

func (n *ClassifyNode) Execute(ctx context.Context, st *model.RunState, deps *Collaborators) (NodeID, error) {
	if runCancelled(ctx, st) {
		return NodeDocument, nil
	}

	cls, err := deps.Classifier.Classify(ctx, st.Fetch)
	if err != nil {
		st.AddError(model.StageClassify, err.Error())
		zap.L().Warn("classification failed", zap.String("url", st.URL), zap.Error(err))
		return NodeDocument, nil
	}
	st.Classification = cls
	zap.L().Debug("classified",
		zap.String("url", st.URL),
		zap.String("label", string(cls.Label)),
		zap.Float64("confidence", cls.Confidence),
	)

	switch {
	case cls.Label == model.ContentScience && cls.Confidence > scienceConfidenceMin:
		return NodeScience, nil
	case isVideoHost(st.URL):
		return NodeVideo, nil
	case cls.Label == model.ContentArticle || cls.Label == model.ContentNews:
		return NodeArticle, nil
	default:
		return NodeDocument, nil
	}
}

var videoHosts = []string{"youtube.com", "youtu.be", "vimeo.com"}

// isVideoHost matches known video hosts against the URL's hostname, with a
// substring fallback for unparseable URLs.
func isVideoHost(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		lower := strings.ToLower(raw)
		for _, h := range videoHosts {
			if strings.Contains(lower, h) {
				return true
			}
		}
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range videoHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}
