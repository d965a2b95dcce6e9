package workflow

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/scrape-cli/internal/model"
)

// maxSteps is the hard iteration cap. The graph's longest legal path is
// fetch → classify → science → ai_discovery → science → finalize (6 nodes),
// so hitting the cap means a node is misrouting.
const maxSteps = 12

// transitions is the closed routing table: each node may only hand control
// to the nodes listed in its row. The finalize node ends the run.
var transitions = map[NodeID][]NodeID{
	NodeFetch:       {NodeClassify, NodeFinalize},
	NodeClassify:    {NodeScience, NodeVideo, NodeArticle, NodeDocument},
	NodeScience:     {NodeAiDiscovery, NodeFinalize},
	NodeAiDiscovery: {NodeScience, NodeDocument, NodeFinalize},
	NodeVideo:       {NodeFinalize},
	NodeArticle:     {NodeFinalize},
	NodeDocument:    {NodeFinalize},
	NodeFinalize:    {},
}

func transitionAllowed(from, to NodeID) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Engine drives one URL through the routing graph. It is stateless across
// runs and safe for concurrent Process calls.
type Engine struct {
	deps  *Collaborators
	nodes map[NodeID]Node
}

// New builds an engine over the given collaborator set.
func New(deps *Collaborators) *Engine {
	nodes := map[NodeID]Node{}
	for _, n := range []Node{
		&FetchNode{},
		&ClassifyNode{},
		&ScienceNode{},
		&AiDiscoveryNode{},
		&VideoNode{},
		&ArticleNode{},
		&DocumentNode{},
		&FinalizeNode{},
	} {
		nodes[n.ID()] = n
	}
	return &Engine{deps: deps, nodes: nodes}
}

// Process runs a single URL to completion and returns the assembled result.
// Collaborator failures never surface here; they are folded into the
// result's error list. A non-nil error means the engine itself broke its
// routing contract.
func (e *Engine) Process(ctx context.Context, url string) (*model.FinalResult, error) {
	st := model.NewRunState(url)
	log := zap.L().With(zap.String("url", url))
	log.Info("run started")

	current := NodeFetch
	for step := 0; ; step++ {
		if step >= maxSteps {
			return nil, eris.New(fmt.Sprintf("workflow: step cap %d exceeded at node %q", maxSteps, current))
		}
		if runCancelled(ctx, st) {
			log.Warn("run cancelled", zap.String("node", string(current)))
			return Assemble(st), nil
		}

		node, ok := e.nodes[current]
		if !ok {
			return nil, eris.New(fmt.Sprintf("workflow: unknown node %q", current))
		}

		next, err := node.Execute(ctx, st, e.deps)
		if err != nil {
			return nil, eris.Wrap(err, fmt.Sprintf("workflow: node %s", current))
		}
		log.Debug("node executed",
			zap.String("node", string(current)),
			zap.String("next", string(next)),
		)

		if next == nodeEnd {
			if current != NodeFinalize {
				return nil, eris.New(fmt.Sprintf("workflow: node %q ended run without finalize", current))
			}
			break
		}
		if !transitionAllowed(current, next) {
			return nil, eris.New(fmt.Sprintf("workflow: illegal transition %s -> %s", current, next))
		}
		current = next
	}

	result := Assemble(st)
	log.Info("run complete",
		zap.Bool("success", result.Success),
		zap.String("content_type", string(result.ContentType)),
		zap.Bool("full_text", result.FullTextExtracted),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}
