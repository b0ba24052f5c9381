// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/inspirehep-engine/internal/inspire"
	"github.com/pdiddy/inspirehep-engine/pkg/types"
)

// CSLItem is a bibliographic entry in CSL-YAML form, consumable by Pandoc
// and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Volume         string    `yaml:"volume,omitempty"`
	Page           string    `yaml:"page,omitempty"`
	Abstract       string    `yaml:"abstract,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
	Number         string    `yaml:"number,omitempty"`
}

// CSLName is a person's name in CSL form.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate is a date in CSL date-parts form.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes records as a CSL-YAML list to w.
func FormatCSL(records []types.NormalizedRecord, w io.Writer) error {
	items := make([]CSLItem, len(records))
	for i, r := range records {
		items[i] = ToCSLItem(r)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// ToCSLItem converts a normalized record. Records published in a journal
// become article-journal entries; preprint-only records stay article.
func ToCSLItem(r types.NormalizedRecord) CSLItem {
	item := CSLItem{
		ID:    "inspire:" + r.ID,
		Type:  "article",
		Title: r.Title,
		DOI:   r.DOI,
	}
	if r.Abstract != nil {
		item.Abstract = *r.Abstract
	}

	for _, a := range r.Authors {
		if name := parseAuthorName(a); name != (CSLName{}) {
			item.Author = append(item.Author, name)
		}
	}

	pub := r.PublicationInfo
	if pub.Journal != "" {
		item.Type = "article-journal"
		item.ContainerTitle = pub.Journal
		item.Volume = pub.Volume
		item.Page = pub.Page
	}
	if pub.Year > 0 {
		item.Issued = &CSLDate{DateParts: [][]int{{pub.Year}}}
	}

	if p := r.PreprintInfo; p != nil {
		item.Number = p.ArxivID
		switch {
		case p.ArxivURL != "":
			item.URL = p.ArxivURL
		case p.ArxivID != "":
			item.URL = inspire.ArxivAbsURL(p.ArxivID)
		}
		if item.Issued == nil && len(p.Date) >= 4 {
			if parts := dateParts(p.Date); parts != nil {
				item.Issued = &CSLDate{DateParts: [][]int{parts}}
			}
		}
	}
	return item
}

// parseAuthorName splits a full name into CSL family/given parts.
// InspireHEP names are "Family, Given"; anything else splits on the last
// space, and single tokens use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	if family, given, ok := strings.Cut(name, ","); ok {
		family, given = strings.TrimSpace(family), strings.TrimSpace(given)
		if given == "" {
			return CSLName{Literal: family}
		}
		return CSLName{Family: family, Given: given}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}

// dateParts parses YYYY, YYYY-MM or YYYY-MM-DD. It returns nil for anything
// else.
func dateParts(date string) []int {
	var parts []int
	for _, field := range strings.SplitN(date, "-", 3) {
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 || strings.HasPrefix(field, "+") {
			return nil
		}
		parts = append(parts, n)
	}
	return parts
}
