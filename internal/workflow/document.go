package workflow

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/scrape-cli/internal/model"
)

// DocumentNode is the generic fallback branch: extract whatever text the
// fetched body yields. When a family slot is already populated (science
// runs that fell through discovery land here), only the full text is
// recorded so the union stays single-branch.
type DocumentNode struct{}

func (n *DocumentNode) ID() NodeID { return NodeDocument }

func (n *DocumentNode) Execute(ctx context.Context, st *model.RunState, deps *Collaborators) (NodeID, error) {
	if runCancelled(ctx, st) {
		return NodeFinalize, nil
	}

	st.Bump(model.StageDocument)
	doc, err := deps.Document.Extract(ctx, st.Fetch)
	if err != nil {
		st.AddError(model.StageDocument, err.Error())
		zap.L().Warn("document extraction failed", zap.String("url", st.URL), zap.Error(err))
		return NodeFinalize, nil
	}

	if st.Family == nil {
		st.Family = &model.FamilyResult{Kind: model.ContentDocument, Document: doc}
		st.MetadataComplete = true
	}
	if usefulText(doc.Text) {
		st.FullText = doc.Text
		st.FullTextExtracted = true
	}
	return NodeFinalize, nil
}
