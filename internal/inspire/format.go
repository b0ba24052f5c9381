// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package inspire

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/inspirehep-engine/pkg/types"
)

// FormatTable writes a normalized response as a human-readable table to w.
func FormatTable(resp types.NormalizedResponse, w io.Writer) {
	if len(resp.Hits) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-9s  %-56s  %-20s  %-4s  %-6s  %s\n",
		"#", "Record", "Title", "Authors", "Year", "Cites", "arXiv")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for i, r := range resp.Hits {
		year := ""
		if r.PublicationInfo.Year > 0 {
			year = fmt.Sprintf("%d", r.PublicationInfo.Year)
		} else if r.PreprintInfo != nil && len(r.PreprintInfo.Date) >= 4 {
			year = r.PreprintInfo.Date[:4]
		}
		arxiv := ""
		if r.PreprintInfo != nil {
			arxiv = r.PreprintInfo.ArxivID
		}
		fmt.Fprintf(w, "%-4d  %-9s  %-56s  %-20s  %-4s  %-6d  %s\n",
			i+1, r.ID, truncate(r.Title, 56), formatAuthors(r.Authors), year, r.CitationCount, arxiv)
	}

	fmt.Fprintf(w, "\n%d of %d results", len(resp.Hits), resp.TotalHits)
	if resp.NextPageLink != "" {
		fmt.Fprint(w, " (more pages available)")
	}
	fmt.Fprintln(w)
}

// FormatJSON writes v as indented JSON to w.
func FormatJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

// truncate shortens s to at most max runes.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
