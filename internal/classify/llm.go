package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/scrape-cli/internal/model"
	"github.com/sells-group/scrape-cli/pkg/anthropic"
)

const classifySystemPrompt = `You classify web page content into exactly one label:
science (scholarly paper or preprint), video, article (news or blog post), news, document (anything else).
Respond with strict JSON only: {"label": "<label>", "confidence": <0.0-1.0>}`

// llmExcerptLen bounds how much page content goes into the prompt.
const llmExcerptLen = 8000

type llmClassification struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

func (c *Classifier) classifyLLM(ctx context.Context, fetch *model.FetchResult) (*model.Classification, error) {
	excerpt := contentSample(fetch)
	if len(excerpt) > llmExcerptLen {
		excerpt = excerpt[:llmExcerptLen]
	}

	prompt := fmt.Sprintf("URL: %s\nTitle: %s\nContent-Type: %s\n\nContent excerpt:\n%s",
		fetch.URL, fetch.Title, fetch.ContentType, excerpt)

	resp, err := c.llm.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     c.llmModel,
		MaxTokens: 256,
		System:    []anthropic.SystemBlock{{Text: classifySystemPrompt}},
		Messages:  []anthropic.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, eris.Wrap(err, "classify: llm call")
	}
	resp.Usage.Log(c.llmModel, "classify")

	return parseClassification(resp.Text())
}

// parseClassification decodes the model's JSON reply, tolerating markdown
// fences around it.
func parseClassification(raw string) (*model.Classification, error) {
	var parsed llmClassification
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &parsed); err != nil {
		return nil, eris.Wrapf(err, "classify: parse llm response %q", raw)
	}

	label := model.ContentType(strings.ToLower(strings.TrimSpace(parsed.Label)))
	switch label {
	case model.ContentScience, model.ContentVideo, model.ContentArticle, model.ContentNews, model.ContentDocument:
	default:
		label = model.ContentDocument
	}

	conf := parsed.Confidence
	if conf < 0 {
		conf = 0
	}
	if conf > 1 {
		conf = 1
	}

	return &model.Classification{Label: label, Confidence: conf}, nil
}

// cleanJSON strips markdown code fences the model sometimes wraps around
// JSON output.
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}
