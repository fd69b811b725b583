package resolver

import (
	"reflect"
	"testing"

	"github.com/alexanderchen5966/cwa-weather-api/internal/catalog"
)

func mustCatalog(t *testing.T, entries []catalog.LocationEntry) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(entries)
	if err != nil {
		t.Fatal(err)
	}
	return cat
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  San Francisco  ", "san francisco"},
		{"SÃO PAULO", "sao paulo"},
		{"Zürich", "zurich"},
		{"new\t  taipei   city", "new taipei city"},
		{"臺北市", "臺北市"},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolve_ExactMatchScoresHundred(t *testing.T) {
	cat := mustCatalog(t, []catalog.LocationEntry{
		{CanonicalID: "KSFO", DisplayName: "San Francisco", Aliases: []string{"SFO"}},
		{CanonicalID: "KSAN", DisplayName: "San Diego"},
	})
	r := New(cat, nil)

	tests := []string{"San Francisco", "  san francisco ", "SFO", "sfo"}
	for _, query := range tests {
		matches := r.Resolve(query, 5, 60)
		if len(matches) == 0 {
			t.Fatalf("Resolve(%q) returned no matches", query)
		}
		if matches[0].Entry.CanonicalID != "KSFO" {
			t.Errorf("Resolve(%q) top = %s, want KSFO", query, matches[0].Entry.CanonicalID)
		}
		if matches[0].Score != 100 {
			t.Errorf("Resolve(%q) score = %v, want exactly 100", query, matches[0].Score)
		}
	}
}

func TestResolve_EmptyQuery(t *testing.T) {
	cat := mustCatalog(t, []catalog.LocationEntry{
		{CanonicalID: "KSFO", DisplayName: "San Francisco"},
	})
	r := New(cat, nil)

	for _, query := range []string{"", "   ", "\t\n"} {
		if matches := r.Resolve(query, 5, 0); len(matches) != 0 {
			t.Errorf("Resolve(%q) = %d matches, want none", query, len(matches))
		}
	}
}

func TestResolve_Misspelling(t *testing.T) {
	cat := mustCatalog(t, []catalog.LocationEntry{
		{CanonicalID: "KSFO", DisplayName: "San Francisco", Aliases: []string{"SFO"}},
	})
	r := New(cat, nil)

	matches := r.Resolve("San Fransisco", 5, 75)
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}
	if matches[0].Score < 90 {
		t.Errorf("Expected score >= 90 for one-letter misspelling, got %v", matches[0].Score)
	}
}

func TestResolve_NoMatchBelowThreshold(t *testing.T) {
	cat := mustCatalog(t, []catalog.LocationEntry{
		{CanonicalID: "KSFO", DisplayName: "San Francisco"},
		{CanonicalID: "KJFK", DisplayName: "New York"},
	})
	r := New(cat, nil)

	if matches := r.Resolve("Atlantis", 5, 75); len(matches) != 0 {
		t.Errorf("Expected no matches for Atlantis, got %d", len(matches))
	}
}

func TestResolve_Deterministic(t *testing.T) {
	cat := mustCatalog(t, []catalog.LocationEntry{
		{CanonicalID: "SPR-IL", DisplayName: "Springfield", Aliases: []string{"Springfield IL"}},
		{CanonicalID: "SPR-MA", DisplayName: "Springfield", Aliases: []string{"Springfield MA"}},
		{CanonicalID: "KSFO", DisplayName: "San Francisco"},
	})
	r := New(cat, nil)

	first := r.Resolve("Springfield", 5, 60)
	for i := 0; i < 50; i++ {
		again := r.Resolve("Springfield", 5, 60)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Resolve not deterministic on run %d", i)
		}
	}
}

func TestResolve_TiesKeepLoadOrder(t *testing.T) {
	cat := mustCatalog(t, []catalog.LocationEntry{
		{CanonicalID: "SPR-IL", DisplayName: "Springfield"},
		{CanonicalID: "SPR-MA", DisplayName: "Springfield"},
	})
	r := New(cat, nil)

	matches := r.Resolve("Springfield", 5, 60)
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	if matches[0].Entry.CanonicalID != "SPR-IL" || matches[1].Entry.CanonicalID != "SPR-MA" {
		t.Errorf("Expected tie broken by load order, got %s then %s",
			matches[0].Entry.CanonicalID, matches[1].Entry.CanonicalID)
	}
	if matches[0].Score != 100 || matches[1].Score != 100 {
		t.Errorf("Expected both exact scores 100, got %v and %v", matches[0].Score, matches[1].Score)
	}
}

func TestResolve_Limit(t *testing.T) {
	cat := mustCatalog(t, []catalog.LocationEntry{
		{CanonicalID: "a", DisplayName: "Springfield"},
		{CanonicalID: "b", DisplayName: "Springfield"},
		{CanonicalID: "c", DisplayName: "Springfield"},
	})
	r := New(cat, nil)

	if matches := r.Resolve("Springfield", 2, 60); len(matches) != 2 {
		t.Errorf("Expected limit to cap matches at 2, got %d", len(matches))
	}
	if matches := r.Resolve("Springfield", 0, 60); len(matches) != 3 {
		t.Errorf("Expected limit 0 to mean no limit, got %d", len(matches))
	}
}

func TestResolve_Corrections(t *testing.T) {
	r := New(catalog.Default(), DefaultCorrections())

	matches := r.Resolve("北市", 5, 75)
	if len(matches) == 0 {
		t.Fatal("Expected correction table to rescue 北市")
	}
	if matches[0].Entry.CanonicalID != "臺北市" {
		t.Errorf("Expected 臺北市, got %s", matches[0].Entry.CanonicalID)
	}
	if matches[0].Score != 100 {
		t.Errorf("Expected corrected input to score 100, got %v", matches[0].Score)
	}
}

func TestResolve_SimplifiedVariantAliases(t *testing.T) {
	r := New(catalog.Default(), nil)

	tests := []struct {
		query string
		want  string
	}{
		{"台北市", "臺北市"},
		{"Taipei", "臺北市"},
		{"台中", "臺中市"},
		{"Kaohsiung", "高雄市"},
	}
	for _, tt := range tests {
		matches := r.Resolve(tt.query, 5, 75)
		if len(matches) == 0 {
			t.Errorf("Resolve(%q) returned no matches", tt.query)
			continue
		}
		if matches[0].Entry.CanonicalID != tt.want {
			t.Errorf("Resolve(%q) top = %s, want %s", tt.query, matches[0].Entry.CanonicalID, tt.want)
		}
	}
}

func TestRatio_TokenOrder(t *testing.T) {
	if got := ratio("city taipei", "taipei city"); got != 100 {
		t.Errorf("Expected token-sorted equality to score 100, got %v", got)
	}
}
