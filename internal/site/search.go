package site

import (
	"net/http"
	"strings"

	"github.com/ziadkadry99/cheatsheet/internal/subjects"
)

// SearchEntry is one searchable subject.
type SearchEntry struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Route    string   `json:"route"`
	Keywords []string `json:"keywords"`
}

// matches reports whether the lowercased query q is a substring of the name
// or of any keyword.
func (e SearchEntry) matches(q string) bool {
	if strings.Contains(strings.ToLower(e.Name), q) {
		return true
	}
	for _, k := range e.Keywords {
		if strings.Contains(strings.ToLower(k), q) {
			return true
		}
	}
	return false
}

// SearchIndex is the fixed list of searchable subjects.
type SearchIndex struct {
	entries []SearchEntry
}

// BuildSearchIndex builds the index from the catalog, keeping catalog order.
func BuildSearchIndex(cat *subjects.Catalog) *SearchIndex {
	idx := &SearchIndex{}
	for _, s := range cat.All() {
		idx.entries = append(idx.entries, SearchEntry{
			ID:       s.ID,
			Name:     s.Title,
			Route:    s.Route(),
			Keywords: s.Keywords,
		})
	}
	return idx
}

// Entries returns every entry. The slice is shared; do not modify it.
func (x *SearchIndex) Entries() []SearchEntry { return x.entries }

// Search returns the entries whose name or keywords contain q, ignoring
// case, in catalog order. An empty query matches nothing.
func (x *SearchIndex) Search(q string) []SearchEntry {
	q = strings.ToLower(q)
	if q == "" {
		return nil
	}
	var out []SearchEntry
	for _, e := range x.entries {
		if e.matches(q) {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first match for q, the target of Enter in the search box.
func (x *SearchIndex) First(q string) (SearchEntry, bool) {
	res := x.Search(q)
	if len(res) == 0 {
		return SearchEntry{}, false
	}
	return res[0], true
}

type searchResponse struct {
	Query   string        `json:"query"`
	Results []SearchEntry `json:"results"`
}

func (s *Site) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	results := s.index.Search(q)
	if results == nil {
		results = []SearchEntry{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Query: q, Results: results})
}
