// Package extract implements text extraction for the article and document
// services, over HTML and PDF payloads.
package extract

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

// maxTextLen caps extracted text so one giant page cannot blow up run
// results or downstream prompts.
const maxTextLen = 500_000

// htmlPage is the readable projection of an HTML document.
type htmlPage struct {
	Title     string
	Byline    string
	Published string
	Text      string
}

// parseHTML strips boilerplate elements and collapses the remaining text.
func parseHTML(body []byte) (*htmlPage, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "extract: parse html")
	}

	page := &htmlPage{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && og != "" {
		page.Title = og
	}
	if author, ok := doc.Find(`meta[name="author"]`).Attr("content"); ok {
		page.Byline = strings.TrimSpace(author)
	}
	if published, ok := doc.Find(`meta[property="article:published_time"]`).Attr("content"); ok {
		page.Published = strings.TrimSpace(published)
	}

	doc.Find("script, style, nav, header, footer, noscript, iframe, form").Remove()

	var sb strings.Builder
	doc.Find("body").Find("*").Each(func(_ int, sel *goquery.Selection) {
		if sel.Children().Length() > 0 {
			return
		}
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	})

	text := collapseWhitespace(sb.String())
	if len(text) > maxTextLen {
		text = text[:maxTextLen]
	}
	page.Text = text
	return page, nil
}

// collapseWhitespace squeezes runs of blank space into single separators
// while keeping line structure.
func collapseWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
