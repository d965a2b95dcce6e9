package classify

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/sells-group/scrape-cli/internal/model"
)

var (
	doiRe   = regexp.MustCompile(`\b10\.\d{4,9}/[^\s"'<>]+`)
	arxivRe = regexp.MustCompile(`(?i)arxiv(?:\.org/(?:abs|pdf)/|:)(\d{4}\.\d{4,5})(v\d+)?`)
)

// scienceHosts are domains that only serve scholarly content.
var scienceHosts = []string{
	"arxiv.org",
	"doi.org",
	"pubmed.ncbi.nlm.nih.gov",
	"ncbi.nlm.nih.gov",
	"nature.com",
	"sciencedirect.com",
	"link.springer.com",
	"academic.oup.com",
	"journals.plos.org",
	"biorxiv.org",
	"medrxiv.org",
}

var videoHosts = []string{"youtube.com", "youtu.be", "vimeo.com"}

// sampleLen bounds how much of the body the heuristics scan.
const sampleLen = 64 * 1024

func contentSample(fetch *model.FetchResult) string {
	s := fetch.Content
	if s == "" {
		s = string(fetch.Body)
	}
	if len(s) > sampleLen {
		s = s[:sampleLen]
	}
	return s
}

// extractIdentifiers pulls DOI and arXiv identifiers from the URL and the
// content sample.
func extractIdentifiers(fetch *model.FetchResult) model.Identifiers {
	ids := model.Identifiers{}
	scan := fetch.URL + "\n" + fetch.FinalURL + "\n" + contentSample(fetch)

	if m := doiRe.FindString(scan); m != "" {
		ids.DOI = strings.TrimRight(m, ".,;)")
	}
	if m := arxivRe.FindStringSubmatch(scan); m != nil {
		ids.ArxivID = m[1]
	}
	return ids
}

// classifyHeuristic applies the deterministic tiers. A nil return means the
// heuristics were inconclusive.
func classifyHeuristic(fetch *model.FetchResult, ids model.Identifiers) *model.Classification {
	// Video hosts are unambiguous from the URL alone.
	if hostMatches(fetch.URL, videoHosts) || hostMatches(fetch.FinalURL, videoHosts) {
		return &model.Classification{Label: model.ContentVideo, Confidence: 0.95, Identifiers: ids}
	}

	sample := strings.ToLower(contentSample(fetch))

	// Scholarly signals: identifiers, citation meta tags, science hosts.
	signals := 0
	if ids.DOI != "" {
		signals++
	}
	if ids.ArxivID != "" {
		signals++
	}
	if strings.Contains(sample, `name="citation_title"`) || strings.Contains(sample, `name="citation_doi"`) {
		signals++
	}
	if hostMatches(fetch.URL, scienceHosts) || hostMatches(fetch.FinalURL, scienceHosts) {
		signals++
	}
	switch {
	case signals >= 2:
		return &model.Classification{Label: model.ContentScience, Confidence: 0.9, Identifiers: ids}
	case signals == 1:
		return &model.Classification{Label: model.ContentScience, Confidence: 0.75, Identifiers: ids}
	}

	// A bare PDF with no scholarly signal is a generic document.
	if fetch.IsPDF() {
		return &model.Classification{Label: model.ContentDocument, Confidence: 0.9, Identifiers: ids}
	}

	// Article markers.
	if strings.Contains(sample, `property="og:type" content="article"`) ||
		strings.Contains(sample, `content="article" property="og:type"`) ||
		strings.Contains(sample, "<article") {
		return &model.Classification{Label: model.ContentArticle, Confidence: 0.8, Identifiers: ids}
	}

	return nil
}

func hostMatches(rawURL string, hosts []string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range hosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}
