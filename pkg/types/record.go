// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the value types shared by the inspirehep-engine
// packages: search requests, normalized records, tool result documents, and
// configuration.
package types

// Sort orders accepted by the InspireHEP literature endpoint. Other values are
// forwarded unchanged; the upstream decides what they mean.
const (
	SortMostRecent = "mostrecent"
	SortMostCited  = "mostcited"
)

// MaxPageSize is the largest page size the InspireHEP API accepts.
const MaxPageSize = 1000

// SearchRequest holds the parameters of one literature search. A zero Page or
// Size means the parameter was not provided and the upstream default applies.
type SearchRequest struct {
	// Query is the InspireHEP search expression, optionally wrapped in one
	// pair of matching quotes.
	Query string `json:"query" yaml:"query"`

	// Sort is forwarded verbatim when non-empty (mostrecent, mostcited).
	Sort string `json:"sort,omitempty" yaml:"sort,omitempty"`

	// Page is the 1-based result page.
	Page int `json:"page,omitempty" yaml:"page,omitempty"`

	// Size is the number of hits per page, clamped to MaxPageSize.
	Size int `json:"size,omitempty" yaml:"size,omitempty"`

	// IncludeAbstract requests abstracts upstream and emits them per record.
	IncludeAbstract bool `json:"include_abstract,omitempty" yaml:"include_abstract,omitempty"`
}

// PublicationInfo holds the journal reference of a record. Fields the source
// does not carry are omitted from the JSON form, so an unknown reference
// serializes as an empty object.
type PublicationInfo struct {
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`
	Volume  string `json:"volume,omitempty" yaml:"volume,omitempty"`
	Year    int    `json:"year,omitempty" yaml:"year,omitempty"`
	Page    string `json:"page,omitempty" yaml:"page,omitempty"`
}

// PreprintInfo describes the arXiv version of a record.
type PreprintInfo struct {
	Date            string   `json:"date,omitempty" yaml:"date,omitempty"`
	ArxivID         string   `json:"arxiv_id,omitempty" yaml:"arxiv_id,omitempty"`
	ArxivCategories []string `json:"arxiv_categories,omitempty" yaml:"arxiv_categories,omitempty"`
	ArxivURL        string   `json:"arxiv_url,omitempty" yaml:"arxiv_url,omitempty"`
}

// IsEmpty reports whether no preprint field was derived.
func (p PreprintInfo) IsEmpty() bool {
	return p.Date == "" && p.ArxivID == "" && len(p.ArxivCategories) == 0 && p.ArxivURL == ""
}

// NormalizedRecord is the compact, client-facing projection of one search hit.
type NormalizedRecord struct {
	// ID is the InspireHEP control number, or "" when the hit carries none.
	ID string `json:"id" yaml:"id"`

	Title string `json:"title" yaml:"title"`

	// Authors lists full names in source order. Never nil after normalization.
	Authors []string `json:"authors" yaml:"authors"`

	PublicationInfo PublicationInfo `json:"publication_info" yaml:"publication_info"`

	CitationCount int `json:"citation_count" yaml:"citation_count"`

	// Abstract is set only when the search asked for abstracts.
	Abstract *string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// PreprintInfo is set only when at least one preprint field was found.
	PreprintInfo *PreprintInfo `json:"preprint_info,omitempty" yaml:"preprint_info,omitempty"`

	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`
}

// NormalizedResponse is the envelope returned by a search.
type NormalizedResponse struct {
	TotalHits    int                `json:"total_hits" yaml:"total_hits"`
	Hits         []NormalizedRecord `json:"hits" yaml:"hits"`
	NextPageLink string             `json:"next_page_link,omitempty" yaml:"next_page_link,omitempty"`
}

// ErrorDocument is the uniform failure shape handed to tool callers. It is
// never raised; callers always receive a parseable document.
type ErrorDocument struct {
	Error      bool   `json:"error"`
	Message    string `json:"message"`
	StatusCode *int   `json:"status_code,omitempty"`
}

// NewErrorDocument returns an ErrorDocument with Error set.
func NewErrorDocument(message string) ErrorDocument {
	return ErrorDocument{Error: true, Message: message}
}

// BibtexCitation carries the BibTeX entry of a single record.
type BibtexCitation struct {
	RecordID string `json:"record_id"`
	BibTeX   string `json:"bibtex"`
}

// BrowserResult reports the outcome of a browser launch. Exactly one of
// Success and Error is set.
type BrowserResult struct {
	Success bool   `json:"success,omitempty"`
	Error   bool   `json:"error,omitempty"`
	Message string `json:"message"`
	URL     string `json:"url,omitempty"`
}
