package model

// Stage identifies where in a run an attempt or error originated.
type Stage string

const (
	StageFetch     Stage = "fetch"
	StageClassify  Stage = "classify"
	StageRegistry  Stage = "registry"
	StageAcquire   Stage = "acquire"
	StageDiscovery Stage = "ai_discovery"
	StageVideo     Stage = "video"
	StageArticle   Stage = "article"
	StageDocument  Stage = "document"
	StageRun       Stage = "run"
)

// ErrorEntry records a collaborator failure without aborting the run.
type ErrorEntry struct {
	Stage   Stage  `json:"stage"`
	Message string `json:"message"`
}

// LinkSource says where a candidate link came from.
type LinkSource string

const (
	LinkSourceRegistry  LinkSource = "registry"
	LinkSourceDiscovery LinkSource = "ai_discovery"
)

// CandidateLink is a full-text URL worth attempting during acquisition.
type CandidateLink struct {
	URL    string     `json:"url"`
	Source LinkSource `json:"source"`
}

// RunState is the single mutable state threaded through one run of the
// workflow. Nodes execute strictly sequentially, so no locking is needed.
type RunState struct {
	URL string

	Fetch          *FetchResult
	Classification *Classification
	Family         *FamilyResult

	// CandidateLinks is append-only and deduplicated by exact URL string.
	CandidateLinks []CandidateLink

	// Attempts counts collaborator calls per stage; values never decrease.
	Attempts map[Stage]int

	// Errors is the append-only record of collaborator failures, in the
	// order they occurred.
	Errors []ErrorEntry

	MetadataComplete  bool
	FullTextExtracted bool

	// DiscoveryUsed flips when the AI discovery node runs. Science-node
	// re-entry only happens through discovery, so this flag also tells
	// the science node whether registry lookups already ran.
	DiscoveryUsed bool

	FullText string

	linkSeen map[string]struct{}
	nextLink int
}

// NewRunState initializes state for a single URL.
func NewRunState(url string) *RunState {
	return &RunState{
		URL:      url,
		Attempts: make(map[Stage]int),
		linkSeen: make(map[string]struct{}),
	}
}

// AddError appends a failure record for the given stage.
func (s *RunState) AddError(stage Stage, msg string) {
	s.Errors = append(s.Errors, ErrorEntry{Stage: stage, Message: msg})
}

// HasError reports whether any error was recorded for the stage.
func (s *RunState) HasError(stage Stage) bool {
	for _, e := range s.Errors {
		if e.Stage == stage {
			return true
		}
	}
	return false
}

// Bump increments the attempt counter for a stage and returns the new count.
func (s *RunState) Bump(stage Stage) int {
	s.Attempts[stage]++
	return s.Attempts[stage]
}

// AddLink appends a candidate link unless its URL was already recorded.
// It reports whether the link was new.
func (s *RunState) AddLink(url string, source LinkSource) bool {
	if url == "" {
		return false
	}
	if s.linkSeen == nil {
		s.linkSeen = make(map[string]struct{})
	}
	if _, ok := s.linkSeen[url]; ok {
		return false
	}
	s.linkSeen[url] = struct{}{}
	s.CandidateLinks = append(s.CandidateLinks, CandidateLink{URL: url, Source: source})
	return true
}

// AddLinks appends each new URL from the slice, preserving order.
func (s *RunState) AddLinks(urls []string, source LinkSource) int {
	added := 0
	for _, u := range urls {
		if s.AddLink(u, source) {
			added++
		}
	}
	return added
}

// TakeUntried advances the acquisition cursor and returns up to max
// candidate links that have not been attempted yet. Links handed out are
// never handed out again, even across science-node re-entry.
func (s *RunState) TakeUntried(max int) []CandidateLink {
	if s.nextLink >= len(s.CandidateLinks) || max <= 0 {
		return nil
	}
	end := s.nextLink + max
	if end > len(s.CandidateLinks) {
		end = len(s.CandidateLinks)
	}
	out := s.CandidateLinks[s.nextLink:end]
	s.nextLink = end
	return out
}
