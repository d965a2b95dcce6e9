// Package discovery implements the AI link-discovery service: one LLM pass
// over fetched page content looking for full-text links the registries
// missed.
package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/scrape-cli/internal/model"
	"github.com/sells-group/scrape-cli/pkg/anthropic"
)

const systemPrompt = `You are given the content of a web page about a document or paper.
Find direct links to the full text (PDF or HTML full-text pages).
Respond with strict JSON only:
{"links": ["<url>", ...], "full_text_available": <true if the page itself already contains the full text>}
Return an empty links array when there are none.`

// excerptLen bounds how much page content goes into the prompt.
const excerptLen = 24_000

// maxLinks caps how many discovered links one pass may contribute.
const maxLinks = 10

// LinkDiscoverer asks an LLM for full-text links in fetched content.
type LinkDiscoverer struct {
	llm      anthropic.Client
	llmModel string
}

// NewLinkDiscoverer creates the discovery service.
func NewLinkDiscoverer(llm anthropic.Client, llmModel string) *LinkDiscoverer {
	return &LinkDiscoverer{llm: llm, llmModel: llmModel}
}

type llmDiscovery struct {
	Links             []string `json:"links"`
	FullTextAvailable bool     `json:"full_text_available"`
}

// DiscoverLinks runs one discovery pass over the run's fetched content.
func (d *LinkDiscoverer) DiscoverLinks(ctx context.Context, st *model.RunState) (*model.DiscoveryResult, error) {
	if st.Fetch == nil {
		return nil, eris.New("discovery: no fetched content")
	}

	excerpt := st.Fetch.Content
	if excerpt == "" {
		excerpt = string(st.Fetch.Body)
	}
	if len(excerpt) > excerptLen {
		excerpt = excerpt[:excerptLen]
	}

	prompt := fmt.Sprintf("Page URL: %s\nTitle: %s\n\nPage content:\n%s",
		st.URL, st.Fetch.Title, excerpt)

	resp, err := d.llm.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     d.llmModel,
		MaxTokens: 1024,
		System:    []anthropic.SystemBlock{{Text: systemPrompt}},
		Messages:  []anthropic.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, eris.Wrap(err, "discovery: llm call")
	}
	resp.Usage.Log(d.llmModel, "discovery")

	var parsed llmDiscovery
	raw := cleanJSON(resp.Text())
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, eris.Wrapf(err, "discovery: parse llm response %q", raw)
	}

	base, _ := url.Parse(st.URL)
	links := sanitizeLinks(parsed.Links, base)
	zap.L().Debug("discovery links parsed",
		zap.String("url", st.URL),
		zap.Int("raw", len(parsed.Links)),
		zap.Int("usable", len(links)),
	)

	return &model.DiscoveryResult{
		Links:             links,
		FullTextAvailable: parsed.FullTextAvailable,
	}, nil
}

// sanitizeLinks absolutizes relative links against the page URL and keeps
// only fetchable schemes, deduplicated and capped.
func sanitizeLinks(raw []string, base *url.URL) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		u, err := url.Parse(l)
		if err != nil {
			continue
		}
		if base != nil {
			u = base.ResolveReference(u)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https", "ftp":
		default:
			continue
		}
		abs := u.String()
		if _, ok := seen[abs]; ok {
			continue
		}
		seen[abs] = struct{}{}
		out = append(out, abs)
		if len(out) >= maxLinks {
			break
		}
	}
	return out
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
