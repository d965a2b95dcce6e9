// Package classify implements content-family detection: deterministic
// heuristics first, with an LLM fallback for inconclusive pages.
package classify

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/scrape-cli/internal/model"
	"github.com/sells-group/scrape-cli/pkg/anthropic"
)

// Classifier labels fetched content. The LLM client is optional; without
// it, inconclusive pages fall back to a low-confidence document label.
type Classifier struct {
	llm      anthropic.Client
	llmModel string
}

// Option configures the classifier.
type Option func(*Classifier)

// WithLLM enables the LLM fallback with the given client and model.
func WithLLM(client anthropic.Client, llmModel string) Option {
	return func(c *Classifier) {
		c.llm = client
		c.llmModel = llmModel
	}
}

// New creates a classifier.
func New(opts ...Option) *Classifier {
	c := &Classifier{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify runs the heuristic tiers and, when they are inconclusive, one
// LLM call. It is called at most once per run.
func (c *Classifier) Classify(ctx context.Context, fetch *model.FetchResult) (*model.Classification, error) {
	if fetch == nil {
		return nil, eris.New("classify: nil fetch result")
	}

	ids := extractIdentifiers(fetch)

	if cls := classifyHeuristic(fetch, ids); cls != nil {
		zap.L().Debug("heuristic classification",
			zap.String("url", fetch.URL),
			zap.String("label", string(cls.Label)),
			zap.Float64("confidence", cls.Confidence),
		)
		return cls, nil
	}

	if c.llm != nil {
		cls, err := c.classifyLLM(ctx, fetch)
		if err != nil {
			return nil, err
		}
		cls.Identifiers = ids
		return cls, nil
	}

	// No LLM configured: generic document at low confidence.
	return &model.Classification{
		Label:       model.ContentDocument,
		Confidence:  0.5,
		Identifiers: ids,
	}, nil
}
