// Package resolver fuzzy-matches free-text place names against the location
// catalog. Matching is deterministic: the same query against the same catalog
// always produces the same ordered candidates.
package resolver

import (
	"sort"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/alexanderchen5966/cwa-weather-api/internal/catalog"
)

// Match is one scored candidate. Score is in [0,100], 100 meaning the
// normalized query equals one of the entry's names.
type Match struct {
	Entry catalog.LocationEntry
	Score float64
}

// Resolver holds a catalog with its names pre-normalized, plus a manual
// correction table consulted before scoring.
type Resolver struct {
	cat         *catalog.Catalog
	names       [][]string // normalized displayName + aliases, per entry, load order
	corrections map[string]string
}

// New builds a resolver over a catalog. The corrections table maps a
// normalized input variant straight to a catalog name; pass nil for none.
func New(cat *catalog.Catalog, corrections map[string]string) *Resolver {
	entries := cat.All()
	names := make([][]string, len(entries))
	for i, e := range entries {
		ns := make([]string, 0, 1+len(e.Aliases))
		ns = append(ns, Normalize(e.DisplayName))
		for _, a := range e.Aliases {
			ns = append(ns, Normalize(a))
		}
		names[i] = ns
	}
	normalized := make(map[string]string, len(corrections))
	for k, v := range corrections {
		normalized[Normalize(k)] = Normalize(v)
	}
	return &Resolver{cat: cat, names: names, corrections: normalized}
}

// DefaultCorrections returns the built-in variant table for the default
// catalog. Config may extend or override it.
func DefaultCorrections() map[string]string {
	return map[string]string{
		"北市":  "臺北市",
		"台北县": "新北市",
		"桃园":  "桃園市",
		"高雄港": "高雄市",
	}
}

// Resolve scores the query against every catalog entry and returns candidates
// at or above minScore, best first. Ties keep catalog load order. An empty or
// whitespace-only query resolves to nothing; that is not an error. limit <= 0
// means no limit.
func (r *Resolver) Resolve(query string, limit int, minScore float64) []Match {
	nq := Normalize(query)
	if nq == "" {
		return nil
	}
	if corrected, ok := r.corrections[nq]; ok {
		nq = corrected
	}

	entries := r.cat.All()
	matches := make([]Match, 0, len(entries))
	for i, e := range entries {
		score := 0.0
		for _, name := range r.names[i] {
			if s := ratio(nq, name); s > score {
				score = s
			}
		}
		if score >= minScore {
			matches = append(matches, Match{Entry: e, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// ratio is the pinned text-distance function: Levenshtein similarity over
// normalized strings, taken as the better of plain and token-sorted order.
// Equal strings score exactly 100.
func ratio(a, b string) float64 {
	if a == b {
		return 100
	}
	plain := similarity(a, b)
	sorted := similarity(tokenSort(a), tokenSort(b))
	if sorted > plain {
		return sorted
	}
	return plain
}

func similarity(a, b string) float64 {
	if a == b {
		return 100
	}
	longest := utf8.RuneCountInString(a)
	if lb := utf8.RuneCountInString(b); lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 100 * (1 - float64(dist)/float64(longest))
}
