// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package inspire

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/inspirehep-engine/pkg/types"
)

const sampleSearchJSON = `{
  "hits": {
    "total": 2345,
    "hits": [
      {
        "id": "1857623",
        "created": "2021-04-20T00:00:00+00:00",
        "links": {
          "bibtex": "https://inspirehep.net/api/literature/1857623?format=bibtex",
          "json": "https://inspirehep.net/api/literature/1857623?format=json"
        },
        "metadata": {
          "control_number": 1857623,
          "titles": [
            {"title": "Measurement of the Positive Muon Anomalous Magnetic Moment to 0.46 ppm", "source": "arXiv"},
            {"title": "Second title is ignored"}
          ],
          "authors": [
            {"full_name": "Abi, B.", "recid": 1},
            {"recid": 2},
            {"full_name": "Albahri, T."}
          ],
          "abstracts": [{"value": "We present the first results of the Fermilab Muon g-2 Experiment.", "source": "APS"}],
          "publication_info": [
            {"journal_title": "Phys.Rev.Lett.", "journal_volume": "126", "year": 2021, "page_start": "141801"},
            {"journal_title": "Other"}
          ],
          "citation_count": 1234,
          "dois": [{"value": "10.1103/PhysRevLett.126.141801"}],
          "arxiv_eprints": [{"value": "2104.03281", "categories": ["hep-ex", "hep-ph"]}],
          "preprint_date": "2021-04-07"
        }
      },
      {
        "id": "4321",
        "links": {"arxiv_pdf": "https://arxiv.org/pdf/1234", "ArXiv": "https://arxiv.org/abs/ignored"},
        "metadata": {
          "titles": [{"title": "A preprint"}],
          "arxiv_eprints": [{"value": "1234"}]
        }
      }
    ]
  },
  "links": {
    "self": "https://inspirehep.net/api/literature?q=muon&page=1&size=2",
    "next": "https://inspirehep.net/api/literature?q=muon&page=2&size=2"
  }
}`

func mustNormalize(t *testing.T, raw string, includeAbstract bool) types.NormalizedResponse {
	t.Helper()
	res, err := Normalize([]byte(raw), includeAbstract)
	require.NoError(t, err)
	require.False(t, res.IsPassthrough())
	require.NotNil(t, res.Response)
	return *res.Response
}

func hitJSON(t *testing.T, hit string, includeAbstract bool) string {
	t.Helper()
	resp := mustNormalize(t, `{"hits":{"total":1,"hits":[`+hit+`]}}`, includeAbstract)
	require.Len(t, resp.Hits, 1)
	data, err := json.Marshal(resp.Hits[0])
	require.NoError(t, err)
	return string(data)
}

func TestNormalize_FullDocument(t *testing.T) {
	resp := mustNormalize(t, sampleSearchJSON, true)

	abstract := "We present the first results of the Fermilab Muon g-2 Experiment."
	want := types.NormalizedResponse{
		TotalHits:    2345,
		NextPageLink: "https://inspirehep.net/api/literature?q=muon&page=2&size=2",
		Hits: []types.NormalizedRecord{
			{
				ID:      "1857623",
				Title:   "Measurement of the Positive Muon Anomalous Magnetic Moment to 0.46 ppm",
				Authors: []string{"Abi, B.", "Albahri, T."},
				PublicationInfo: types.PublicationInfo{
					Journal: "Phys.Rev.Lett.",
					Volume:  "126",
					Year:    2021,
					Page:    "141801",
				},
				CitationCount: 1234,
				Abstract:      &abstract,
				PreprintInfo: &types.PreprintInfo{
					Date:            "2021-04-07",
					ArxivID:         "2104.03281",
					ArxivCategories: []string{"hep-ex", "hep-ph"},
					ArxivURL:        "https://arxiv.org/abs/2104.03281",
				},
				DOI: "10.1103/PhysRevLett.126.141801",
			},
			{
				ID:              "4321",
				Title:           "A preprint",
				Authors:         []string{},
				PublicationInfo: types.PublicationInfo{},
				Abstract:        new(string),
				PreprintInfo: &types.PreprintInfo{
					ArxivID:  "1234",
					ArxivURL: "https://arxiv.org/pdf/1234",
				},
			},
		},
	}

	if diff := cmp.Diff(want, resp); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_HitWithoutMetadata(t *testing.T) {
	for _, include := range []bool{false, true} {
		got := hitJSON(t, `{"links": {"json": "https://inspirehep.net/api/literature/1"}}`, include)
		want := `{"id":"","title":"","authors":[],"publication_info":{},"citation_count":0}`
		if include {
			want = `{"id":"","title":"","authors":[],"publication_info":{},"citation_count":0,"abstract":""}`
		}
		assert.JSONEq(t, want, got, "includeAbstract=%v", include)
	}
}

func TestNormalize_AbstractOnlyWhenRequested(t *testing.T) {
	hit := `{"metadata": {"abstracts": [{"value": "text"}]}}`

	without := hitJSON(t, hit, false)
	assert.NotContains(t, without, `"abstract"`)

	with := hitJSON(t, hit, true)
	assert.Contains(t, with, `"abstract":"text"`)

	empty := hitJSON(t, `{"metadata": {"titles": [{"title": "x"}]}}`, true)
	assert.Contains(t, empty, `"abstract":""`)
}

func TestNormalize_Authors(t *testing.T) {
	tests := []struct {
		name string
		hit  string
		want []string
	}{
		{"skips entries without full_name", `{"metadata":{"authors":[{"full_name":"A"},{},{"full_name":"B"}]}}`, []string{"A", "B"}},
		{"preserves order", `{"metadata":{"authors":[{"full_name":"Z"},{"full_name":"M"},{"full_name":"A"}]}}`, []string{"Z", "M", "A"}},
		{"authors not a list", `{"metadata":{"authors":"Witten, E."}}`, []string{}},
		{"non-object entries", `{"metadata":{"authors":["A", 3, null, {"full_name":"B"}]}}`, []string{"B"}},
		{"non-string full_name", `{"metadata":{"authors":[{"full_name":7},{"full_name":"C"}]}}`, []string{"C"}},
		{"absent", `{"metadata":{}}`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := mustNormalize(t, `{"hits":{"hits":[`+tt.hit+`]}}`, false)
			require.Len(t, resp.Hits, 1)
			assert.Equal(t, tt.want, resp.Hits[0].Authors)
		})
	}
}

func TestNormalize_ArxivURL(t *testing.T) {
	tests := []struct {
		name    string
		hit     string
		wantURL string
	}{
		{
			name:    "synthesized from arxiv id",
			hit:     `{"metadata":{"arxiv_eprints":[{"value":"2104.08394"}]}}`,
			wantURL: "https://arxiv.org/abs/2104.08394",
		},
		{
			name:    "explicit link wins over fallback",
			hit:     `{"links":{"arxiv_pdf":"https://arxiv.org/pdf/1234"},"metadata":{"arxiv_eprints":[{"value":"2104.08394"}]}}`,
			wantURL: "https://arxiv.org/pdf/1234",
		},
		{
			name:    "key match is case-insensitive",
			hit:     `{"links":{"ArXiv":"https://arxiv.org/abs/5678"}}`,
			wantURL: "https://arxiv.org/abs/5678",
		},
		{
			name:    "non-string link value skipped",
			hit:     `{"links":{"arxiv":{"href":"x"},"arxiv_abs":"https://arxiv.org/abs/9"},"metadata":{"arxiv_eprints":[{"value":"1"}]}}`,
			wantURL: "https://arxiv.org/abs/9",
		},
		{
			name:    "first matching key in document order",
			hit:     `{"links":{"json":"j","arxiv_b":"second-key","arxiv_a":"third-key"}}`,
			wantURL: "second-key",
		},
		{
			name:    "links without arxiv keys fall back",
			hit:     `{"links":{"bibtex":"b","json":"j"},"metadata":{"arxiv_eprints":[{"value":"2104.08394"}]}}`,
			wantURL: "https://arxiv.org/abs/2104.08394",
		},
		{
			name:    "empty link falls back to arxiv id",
			hit:     `{"links":{"arxiv":""},"metadata":{"arxiv_eprints":[{"value":"1234"}]}}`,
			wantURL: "https://arxiv.org/abs/1234",
		},
		{
			name:    "empty link skipped for a later one",
			hit:     `{"links":{"arxiv":"","arxiv_pdf":"https://arxiv.org/pdf/1234"}}`,
			wantURL: "https://arxiv.org/pdf/1234",
		},
		{
			name:    "links not an object",
			hit:     `{"links":["arxiv"],"metadata":{"arxiv_eprints":[{"value":"42"}]}}`,
			wantURL: "https://arxiv.org/abs/42",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := mustNormalize(t, `{"hits":{"hits":[`+tt.hit+`]}}`, false)
			require.Len(t, resp.Hits, 1)
			require.NotNil(t, resp.Hits[0].PreprintInfo)
			assert.Equal(t, tt.wantURL, resp.Hits[0].PreprintInfo.ArxivURL)
		})
	}
}

func TestNormalize_PreprintOmittedWithoutData(t *testing.T) {
	got := hitJSON(t, `{"metadata":{"titles":[{"title":"x"}],"arxiv_eprints":[]}}`, false)
	assert.NotContains(t, got, "preprint_info")

	got = hitJSON(t, `{"metadata":{"preprint_date":"2020-01-01"}}`, false)
	assert.Contains(t, got, `"preprint_info":{"date":"2020-01-01"}`)
}

func TestNormalize_MalformedShapesDegrade(t *testing.T) {
	hits := []string{
		`{"metadata": []}`,
		`{"metadata": "oops"}`,
		`{"metadata": null}`,
		`{"metadata": {"titles": {"title": "not a list"}}}`,
		`{"metadata": {"titles": []}}`,
		`{"metadata": {"titles": [null]}}`,
		`{"metadata": {"publication_info": []}}`,
		`{"metadata": {"publication_info": [{"year": "n/a"}]}}`,
		`{"metadata": {"dois": []}}`,
		`{"metadata": {"dois": [{"value": null}]}}`,
		`{"metadata": {"citation_count": "many"}}`,
		`{"metadata": {"arxiv_eprints": "2104.08394"}}`,
	}
	want := `{"id":"","title":"","authors":[],"publication_info":{},"citation_count":0}`
	for _, hit := range hits {
		t.Run(hit, func(t *testing.T) {
			assert.JSONEq(t, want, hitJSON(t, hit, false))
		})
	}
}

func TestNormalize_PublicationInfoKeysIndividually(t *testing.T) {
	got := hitJSON(t, `{"metadata":{"publication_info":[{"journal_title":"JHEP","year":2019}]}}`, false)
	assert.Contains(t, got, `"publication_info":{"journal":"JHEP","year":2019}`)

	got = hitJSON(t, `{"metadata":{"publication_info":[{"journal_volume":12,"page_start":"001"}]}}`, false)
	assert.Contains(t, got, `"publication_info":{"volume":"12","page":"001"}`)
}

func TestNormalize_RecordID(t *testing.T) {
	tests := []struct {
		name string
		hit  string
		want string
	}{
		{"control number", `{"id":"9","metadata":{"control_number":451647}}`, "451647"},
		{"string control number", `{"metadata":{"control_number":"451647"}}`, "451647"},
		{"falls back to hit id", `{"id":"9","metadata":{}}`, "9"},
		{"numeric hit id", `{"id":9}`, "9"},
		{"neither", `{"metadata":{}}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := mustNormalize(t, `{"hits":{"hits":[`+tt.hit+`]}}`, false)
			require.Len(t, resp.Hits, 1)
			assert.Equal(t, tt.want, resp.Hits[0].ID)
		})
	}
}

func TestNormalize_DOI(t *testing.T) {
	got := hitJSON(t, `{"metadata":{"dois":[{"value":"10.1/a"},{"value":"10.1/b"}]}}`, false)
	assert.Contains(t, got, `"doi":"10.1/a"`)

	got = hitJSON(t, `{"metadata":{}}`, false)
	assert.NotContains(t, got, "doi")
}

func TestNormalize_Envelope(t *testing.T) {
	resp := mustNormalize(t, `{}`, false)
	assert.Equal(t, 0, resp.TotalHits)
	assert.Empty(t, resp.Hits)
	assert.Empty(t, resp.NextPageLink)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_hits":0,"hits":[]}`, string(data))

	resp = mustNormalize(t, `{"hits":{"total":3,"hits":[{},null,"x",7,{}]}}`, false)
	assert.Equal(t, 3, resp.TotalHits)
	assert.Len(t, resp.Hits, 2)
}

func TestNormalize_ErrorPassthrough(t *testing.T) {
	raw := `{"error": true, "message": "timeout"}`
	res, err := Normalize([]byte(raw), false)
	require.NoError(t, err)

	assert.True(t, res.IsPassthrough())
	assert.Nil(t, res.Response)
	assert.Equal(t, raw, string(res.Passthrough))

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(data))
}

func TestNormalize_ErrorMarkerWithHitsIsNotWalked(t *testing.T) {
	raw := `{"error": "boom", "hits": {"total": 1, "hits": [{}]}}`
	res, err := Normalize([]byte(raw), false)
	require.NoError(t, err)
	assert.True(t, res.IsPassthrough())
	assert.JSONEq(t, raw, string(res.Passthrough))
}

func TestNormalize_NotJSON(t *testing.T) {
	for _, raw := range []string{
		"", "   ", "<html>", "nope",
		`{"hits":{"total":2,"hits":[{"metadata":{"titles":[{"title":"A"}]}}, {bad}]}}`,
		`{"hits":{"total":1,"hits":[]}} trailing garbage`,
		`{"hits":{"total":1,"hits":[]}}{}`,
		`{"error": true, "message": }`,
	} {
		_, err := Normalize([]byte(raw), false)
		assert.Error(t, err, "input %q", raw)
	}
}

func TestNormalize_PureAndDeterministic(t *testing.T) {
	raw := []byte(sampleSearchJSON)
	orig := bytes.Clone(raw)

	first, err := Normalize(raw, true)
	require.NoError(t, err)
	second, err := Normalize(raw, true)
	require.NoError(t, err)

	if diff := cmp.Diff(first.Response, second.Response); diff != "" {
		t.Errorf("repeated Normalize differs (-first +second):\n%s", diff)
	}
	assert.Equal(t, orig, raw, "input must not be modified")
}

func TestNormalize_EscapedStrings(t *testing.T) {
	got := hitJSON(t, `{"metadata":{"titles":[{"title":"Gauge \"duality\" é"}]}}`, false)
	assert.Contains(t, got, `"title":"Gauge \"duality\" é"`)
}
