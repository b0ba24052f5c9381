// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package inspire

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/inspirehep-engine/pkg/types"
)

// searchFields names the metadata fields Normalize reads. Sending them as the
// fields hint keeps responses small; Normalize does not rely on the upstream
// honoring it.
var searchFields = []string{
	"control_number",
	"titles",
	"authors.full_name",
	"publication_info",
	"citation_count",
	"dois.value",
	"arxiv_eprints",
	"preprint_date",
}

// SearchFields returns the field-selection hint for a search, with
// abstracts appended when they are wanted.
func SearchFields(includeAbstract bool) []string {
	fields := make([]string, len(searchFields), len(searchFields)+1)
	copy(fields, searchFields)
	if includeAbstract {
		fields = append(fields, "abstracts")
	}
	return fields
}

// StripQuotes removes one pair of matching surrounding quotes ("..." or
// '...'). Inner quotes and unbalanced quotes are left alone.
func StripQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if first == last && (first == '"' || first == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

// BuildSearchParams turns a search request into the query parameters of the
// literature endpoint. A zero Page or Size is treated as not provided, so
// page=0 is never sent.
func BuildSearchParams(req types.SearchRequest) url.Values {
	params := url.Values{}
	params.Set("q", StripQuotes(req.Query))

	if req.Sort != "" {
		params.Set("sort", req.Sort)
	}
	if req.Page != 0 {
		params.Set("page", strconv.Itoa(req.Page))
	}
	if req.Size != 0 {
		params.Set("size", strconv.Itoa(min(req.Size, types.MaxPageSize)))
	}

	params.Set("fields", strings.Join(SearchFields(req.IncludeAbstract), ","))
	return params
}
