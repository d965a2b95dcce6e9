package model

// FinalResult is the unified output of a run, assembled exactly once at
// finalize. Field names are part of the output contract.
type FinalResult struct {
	URL     string `json:"url"`
	Success bool   `json:"success"`

	ContentType ContentType `json:"content_type"`
	Confidence  float64     `json:"confidence"`

	FetchAttempts       int `json:"fetch_attempts"`
	AiDiscoveryAttempts int `json:"ai_discovery_attempts"`
	LinksFound          int `json:"links_found"`

	MetadataComplete  bool `json:"metadata_complete"`
	FullTextExtracted bool `json:"full_text_extracted"`
	AiDiscoveryUsed   bool `json:"ai_discovery_used"`

	Metadata *FamilyResult `json:"metadata"`
	FullText string        `json:"full_text,omitempty"`

	Errors []ErrorEntry `json:"errors"`
}
