package workflow

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/scrape-cli/internal/model"
)

// ArticleNode extracts readable article content and finalizes.
type ArticleNode struct{}

func (n *ArticleNode) ID() NodeID { return NodeArticle }

func (n *ArticleNode) Execute(ctx context.Context, st *model.RunState, deps *Collaborators) (NodeID, error) {
	if runCancelled(ctx, st) {
		return NodeFinalize, nil
	}

	st.Bump(model.StageArticle)
	art, err := deps.Article.Extract(ctx, st.Fetch)
	if err != nil {
		st.AddError(model.StageArticle, err.Error())
		zap.L().Warn("article extraction failed", zap.String("url", st.URL), zap.Error(err))
		return NodeFinalize, nil
	}

	st.Family = &model.FamilyResult{Kind: model.ContentArticle, Article: art}
	st.MetadataComplete = true
	if usefulText(art.Text) {
		st.FullText = art.Text
		st.FullTextExtracted = true
	}
	return NodeFinalize, nil
}
