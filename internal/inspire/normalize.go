// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package inspire

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pdiddy/inspirehep-engine/pkg/types"
)

const arxivAbsBase = "https://arxiv.org/abs/"

// Result is the outcome of normalizing one search response. When the
// upstream document carries an error marker it is kept verbatim in
// Passthrough and Response is nil.
type Result struct {
	Response    *types.NormalizedResponse
	Passthrough json.RawMessage
}

// IsPassthrough reports whether the document was an error document.
func (r Result) IsPassthrough() bool { return r.Passthrough != nil }

// MarshalJSON emits the passthrough document or the normalized response.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Passthrough != nil {
		return r.Passthrough, nil
	}
	return json.Marshal(r.Response)
}

// Normalize projects a raw literature search response into the compact
// record shape. It fails only when raw is not a well-formed JSON document. Missing or mistyped
// fields fall back to their defaults; a document with a top-level "error"
// member is returned unchanged instead of being walked for hits.
func Normalize(raw []byte, includeAbstract bool) (Result, error) {
	doc, err := Parse(raw)
	if err != nil {
		return Result{}, err
	}
	if doc.Has("error") {
		return Result{Passthrough: append(json.RawMessage(nil), bytes.TrimSpace(raw)...)}, nil
	}
	resp := NormalizeResponse(doc, includeAbstract)
	return Result{Response: &resp}, nil
}

// NormalizeResponse builds the response envelope from a parsed document.
// Hits that are not JSON objects are skipped; every object hit produces a
// record, however sparse.
func NormalizeResponse(doc Node, includeAbstract bool) types.NormalizedResponse {
	hits := doc.Key("hits")
	resp := types.NormalizedResponse{Hits: []types.NormalizedRecord{}}

	resp.TotalHits, _ = hits.Key("total").Int()
	resp.NextPageLink, _ = doc.Key("links").Key("next").String()

	hits.Key("hits").Each(func(hit Node) {
		if !hit.IsObject() {
			return
		}
		resp.Hits = append(resp.Hits, NormalizeHit(hit, includeAbstract))
	})
	return resp
}

// NormalizeHit projects one raw hit into a record.
func NormalizeHit(hit Node, includeAbstract bool) types.NormalizedRecord {
	meta := hit.Key("metadata")

	rec := types.NormalizedRecord{
		ID:              recordID(hit, meta),
		Authors:         authors(meta),
		PublicationInfo: publicationInfo(meta),
	}
	rec.Title, _ = meta.Key("titles").First().Key("title").String()
	rec.CitationCount, _ = meta.Key("citation_count").Int()

	if includeAbstract {
		abstract, _ := meta.Key("abstracts").First().Key("value").String()
		rec.Abstract = &abstract
	}

	if p := preprintInfo(hit, meta); !p.IsEmpty() {
		rec.PreprintInfo = &p
	}

	rec.DOI, _ = meta.Key("dois").First().Key("value").String()
	return rec
}

// recordID prefers the metadata control number over the hit's own id.
// Control numbers arrive as JSON numbers; both forms are rendered as text.
func recordID(hit, meta Node) string {
	if id, ok := meta.Key("control_number").Text(); ok {
		return id
	}
	id, _ := hit.Key("id").Text()
	return id
}

func authors(meta Node) []string {
	names := []string{}
	meta.Key("authors").Each(func(author Node) {
		if name, ok := author.Key("full_name").String(); ok {
			names = append(names, name)
		}
	})
	return names
}

func publicationInfo(meta Node) types.PublicationInfo {
	info := meta.Key("publication_info").First()

	var p types.PublicationInfo
	p.Journal, _ = info.Key("journal_title").String()
	p.Volume, _ = info.Key("journal_volume").Text()
	p.Year, _ = info.Key("year").Int()
	p.Page, _ = info.Key("page_start").Text()
	return p
}

func preprintInfo(hit, meta Node) types.PreprintInfo {
	var p types.PreprintInfo
	p.Date, _ = meta.Key("preprint_date").String()

	eprint := meta.Key("arxiv_eprints").First()
	p.ArxivID, _ = eprint.Key("value").String()
	p.ArxivCategories = eprint.Key("categories").Strings()

	url, found := arxivLink(hit.Key("links"))
	switch {
	case found:
		p.ArxivURL = url
	case p.ArxivID != "":
		p.ArxivURL = ArxivAbsURL(p.ArxivID)
	}
	return p
}

// arxivLink returns the first links member, in document order, whose name
// mentions arxiv (any case) and whose value is a non-empty string.
func arxivLink(links Node) (string, bool) {
	var (
		url   string
		found bool
	)
	links.Members(func(key string, value Node) bool {
		if !strings.Contains(strings.ToLower(key), "arxiv") {
			return true
		}
		url, found = value.String()
		found = found && url != ""
		return !found
	})
	return url, found
}

// ArxivAbsURL returns the canonical abstract page of an arXiv identifier.
func ArxivAbsURL(arxivID string) string {
	return arxivAbsBase + arxivID
}
