package workflow

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/scrape-cli/internal/model"
)

// FetchNode retrieves the target URL. Exactly one fetch attempt is made per
// run; retry policy lives inside the fetch service.
type FetchNode struct{}

func (n *FetchNode) ID() NodeID { return NodeFetch }

func (n *FetchNode) Execute(ctx context.Context, st *model.RunState, deps *Collaborators) (NodeID, error) {
	if runCancelled(ctx, st) {
		return NodeFinalize, nil
	}

	st.Bump(model.StageFetch)
	res, err := deps.Fetch.Fetch(ctx, st.URL)
	if err != nil {
		st.AddError(model.StageFetch, err.Error())
		zap.L().Warn("fetch failed", zap.String("url", st.URL), zap.Error(err))
		return NodeFinalize, nil
	}

	st.Fetch = res
	return NodeClassify, nil
}
