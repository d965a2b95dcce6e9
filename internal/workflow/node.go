package workflow

import (
	"context"

	"github.com/sells-group/scrape-cli/internal/model"
)

// NodeID names a node in the routing graph.
type NodeID string

const (
	NodeFetch       NodeID = "fetch"
	NodeClassify    NodeID = "classify"
	NodeScience     NodeID = "science"
	NodeAiDiscovery NodeID = "ai_discovery"
	NodeVideo       NodeID = "video"
	NodeArticle     NodeID = "article"
	NodeDocument    NodeID = "document"
	NodeFinalize    NodeID = "finalize"

	// nodeEnd is the sentinel the finalize node returns to stop the loop.
	nodeEnd NodeID = ""
)

// Node is one decision point in the graph. Execute mutates the shared state
// and returns the next node. A non-nil error is reserved for engine
// contract violations; collaborator failures are recorded on the state and
// expressed as a routing decision instead.
type Node interface {
	ID() NodeID
	Execute(ctx context.Context, st *model.RunState, deps *Collaborators) (NodeID, error)
}

// Routing policy constants. Values are deliberate and tested; changing any
// of them changes run behavior.
const (
	// scienceConfidenceMin is the strict lower bound for the science
	// branch: a confidence of exactly this value routes elsewhere.
	scienceConfidenceMin = 0.7

	// maxCandidateAttempts caps how many untried candidate links one
	// science-node pass will download.
	maxCandidateAttempts = 2

	// minUsefulTextLen is the minimum character count for extracted text
	// to count as full text.
	minUsefulTextLen = 100
)

// runCancelled checks the context and, on cancellation, records a single
// run-stage error entry so repeated checks don't duplicate it.
func runCancelled(ctx context.Context, st *model.RunState) bool {
	if ctx.Err() == nil {
		return false
	}
	if !st.HasError(model.StageRun) {
		st.AddError(model.StageRun, "cancelled: "+ctx.Err().Error())
	}
	return true
}

// usefulText reports whether extracted text is long enough to count as a
// full-text result.
func usefulText(text string) bool {
	return len(text) > minUsefulTextLen
}
