// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tools

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/pdiddy/inspirehep-engine/internal/inspire"
	"github.com/pdiddy/inspirehep-engine/pkg/types"
)

// Tool names.
const (
	ToolSearch     = "search"
	ToolBibtex     = "get_bibtex_citation"
	ToolOpenArxiv  = "open_arxiv_in_browser"
	ToolOpenRecord = "open_inspirehep_in_browser"
)

// Searcher runs literature searches and BibTeX lookups.
type Searcher interface {
	Search(ctx context.Context, req types.SearchRequest) (inspire.Result, error)
	Bibtex(ctx context.Context, recordID string) (types.BibtexCitation, error)
}

// BrowserOpener opens validated pages in a local browser.
type BrowserOpener interface {
	OpenArxiv(url string) types.BrowserResult
	OpenRecord(recordID string) types.BrowserResult
}

// SearchArgs are the arguments of the search tool.
type SearchArgs struct {
	Query           string `json:"query" validate:"required"`
	Sort            string `json:"sort,omitempty"`
	Page            int    `json:"page,omitempty"`
	Size            int    `json:"size,omitempty"`
	IncludeAbstract bool   `json:"include_abstract,omitempty"`
}

// RecordID is a record identifier given either as a JSON string or as a
// JSON number.
type RecordID string

func (id *RecordID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = RecordID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.New("record_id must be a string or a number")
	}
	*id = RecordID(n.String())
	return nil
}

// BibtexArgs are the arguments of the get_bibtex_citation tool.
type BibtexArgs struct {
	RecordID RecordID `json:"record_id" validate:"required"`
}

// OpenArxivArgs are the arguments of the open_arxiv_in_browser tool.
type OpenArxivArgs struct {
	URL string `json:"url" validate:"required"`
}

// OpenRecordArgs are the arguments of the open_inspirehep_in_browser tool.
type OpenRecordArgs struct {
	RecordID RecordID `json:"record_id" validate:"required"`
}

const searchDescription = `Search InspireHEP for high energy physics literature matching the query.

The query uses the InspireHEP search syntax, for example:
  "a Edward.Witten.1"                 papers by author Edward Witten
  "t boson"                           papers with "boson" in the title
  "topcite 1000+"                     papers cited at least 1000 times
  "doi:10.1103/PhysRevLett.19.1264"   paper with a specific DOI
  "refersto:recid:2901053"            papers citing a given record
  "gaiotto duality"                   google-like search over title, abstract and authors
See https://help.inspirehep.net/knowledge-base/inspire-paper-search/ for the full syntax.`

// RegisterInspire registers the InspireHEP tools on r.
func RegisterInspire(r *Registry, s Searcher, b BrowserOpener) error {
	defs := []Tool{
		{
			Name:        ToolSearch,
			Description: searchDescription,
			Params: []Param{
				{Name: "query", Type: "string", Description: "InspireHEP search query", Required: true},
				{Name: "sort", Type: "string", Description: `"mostrecent" or "mostcited"; upstream default when omitted`},
				{Name: "page", Type: "integer", Description: "result page, starting at 1"},
				{Name: "size", Type: "integer", Description: "results per page (max 1000)"},
				{Name: "include_abstract", Type: "boolean", Description: "include abstracts in the results"},
			},
			Handler: searchHandler(r, s),
		},
		{
			Name:        ToolBibtex,
			Description: "Fetch the BibTeX citation of an InspireHEP record by its record ID (control number), e.g. \"451647\".",
			Params: []Param{
				{Name: "record_id", Type: "string", Description: "InspireHEP record ID", Required: true},
			},
			Handler: bibtexHandler(r, s),
		},
		{
			Name:        ToolOpenArxiv,
			Description: "Open an arXiv URL (arxiv.org only) in the default web browser.",
			Params: []Param{
				{Name: "url", Type: "string", Description: "http(s) URL on arxiv.org", Required: true},
			},
			Handler: openArxivHandler(r, b),
		},
		{
			Name:        ToolOpenRecord,
			Description: "Open the InspireHEP page of a record in the default web browser.",
			Params: []Param{
				{Name: "record_id", Type: "string", Description: "numeric InspireHEP record ID", Required: true},
			},
			Handler: openRecordHandler(r, b),
		},
	}
	for _, t := range defs {
		if err := r.Register(t); err != nil {
			return err
		}
	}
	return nil
}

func searchHandler(r *Registry, s Searcher) Handler {
	return func(ctx context.Context, raw json.RawMessage) any {
		var args SearchArgs
		if err := r.Decode(ToolSearch, raw, &args); err != nil {
			return types.NewErrorDocument(err.Error())
		}
		res, err := s.Search(ctx, types.SearchRequest{
			Query:           args.Query,
			Sort:            args.Sort,
			Page:            args.Page,
			Size:            args.Size,
			IncludeAbstract: args.IncludeAbstract,
		})
		if err != nil {
			return inspire.ErrorDocument("Error fetching data from InspireHEP", err)
		}
		return res
	}
}

func bibtexHandler(r *Registry, s Searcher) Handler {
	return func(ctx context.Context, raw json.RawMessage) any {
		var args BibtexArgs
		if err := r.Decode(ToolBibtex, raw, &args); err != nil {
			return types.NewErrorDocument(err.Error())
		}
		citation, err := s.Bibtex(ctx, string(args.RecordID))
		if err != nil {
			return inspire.ErrorDocument("Error fetching BibTeX from InspireHEP", err)
		}
		return citation
	}
}

func openArxivHandler(r *Registry, b BrowserOpener) Handler {
	return func(_ context.Context, raw json.RawMessage) any {
		var args OpenArxivArgs
		if err := r.Decode(ToolOpenArxiv, raw, &args); err != nil {
			return types.NewErrorDocument(err.Error())
		}
		return b.OpenArxiv(args.URL)
	}
}

func openRecordHandler(r *Registry, b BrowserOpener) Handler {
	return func(_ context.Context, raw json.RawMessage) any {
		var args OpenRecordArgs
		if err := r.Decode(ToolOpenRecord, raw, &args); err != nil {
			return types.NewErrorDocument(err.Error())
		}
		return b.OpenRecord(string(args.RecordID))
	}
}
