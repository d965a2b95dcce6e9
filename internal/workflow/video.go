package workflow

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/scrape-cli/internal/model"
)

// VideoNode resolves hosted-video metadata and finalizes.
type VideoNode struct{}

func (n *VideoNode) ID() NodeID { return NodeVideo }

func (n *VideoNode) Execute(ctx context.Context, st *model.RunState, deps *Collaborators) (NodeID, error) {
	if runCancelled(ctx, st) {
		return NodeFinalize, nil
	}

	st.Bump(model.StageVideo)
	meta, err := deps.Video.Metadata(ctx, st.URL)
	if err != nil {
		st.AddError(model.StageVideo, err.Error())
		zap.L().Warn("video metadata failed", zap.String("url", st.URL), zap.Error(err))
		return NodeFinalize, nil
	}

	st.Family = &model.FamilyResult{Kind: model.ContentVideo, Video: meta}
	st.MetadataComplete = true
	if usefulText(meta.Transcript) {
		st.FullText = meta.Transcript
		st.FullTextExtracted = true
	}
	return NodeFinalize, nil
}
