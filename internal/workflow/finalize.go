package workflow

import (
	"context"

	"github.com/sells-group/scrape-cli/internal/model"
)

// FinalizeNode terminates the run. Result assembly itself lives in
// Assemble so the engine can also build a result for cancelled runs.
type FinalizeNode struct{}

func (n *FinalizeNode) ID() NodeID { return NodeFinalize }

func (n *FinalizeNode) Execute(_ context.Context, _ *model.RunState, _ *Collaborators) (NodeID, error) {
	return nodeEnd, nil
}

// Assemble folds the run state into the immutable final result. It reads
// the state without mutating it, so calling it twice yields equal results.
func Assemble(st *model.RunState) *model.FinalResult {
	res := &model.FinalResult{
		URL:                 st.URL,
		Success:             !st.HasError(model.StageFetch) && !st.HasError(model.StageRun),
		ContentType:         model.ContentUnknown,
		FetchAttempts:       st.Attempts[model.StageFetch],
		AiDiscoveryAttempts: st.Attempts[model.StageDiscovery],
		LinksFound:          len(st.CandidateLinks),
		MetadataComplete:    st.MetadataComplete,
		FullTextExtracted:   st.FullTextExtracted,
		AiDiscoveryUsed:     st.DiscoveryUsed,
		Metadata:            st.Family,
		FullText:            st.FullText,
		Errors:              make([]model.ErrorEntry, len(st.Errors)),
	}
	copy(res.Errors, st.Errors)

	if st.Classification != nil {
		res.ContentType = st.Classification.Label
		res.Confidence = st.Classification.Confidence
	}
	return res
}
