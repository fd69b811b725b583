package catalog

import (
	"encoding/json"
	"fmt"
	"io"
)

// LocationEntry is one known location: the canonical identifier the CWA
// datastore expects, the name shown to users, and accepted spelling variants.
// Entries are immutable once the catalog is built.
type LocationEntry struct {
	CanonicalID string   `json:"canonical_id"`
	DisplayName string   `json:"display_name"`
	Aliases     []string `json:"aliases,omitempty"`
}

// LoadError reports a malformed or empty catalog source. Catalog loading
// happens once at startup, so a LoadError is fatal to the process.
type LoadError struct {
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog load: %s: %v", e.Reason, e.Err)
	}
	return "catalog load: " + e.Reason
}

func (e *LoadError) Unwrap() error { return e.Err }

// Catalog is the read-only set of known locations. Built once, queried
// concurrently without locking; rebuild by constructing a new one.
type Catalog struct {
	entries []LocationEntry
	byID    map[string]LocationEntry
}

// New builds a catalog from a slice of entries, preserving order.
func New(entries []LocationEntry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, &LoadError{Reason: "no entries"}
	}
	c := &Catalog{
		entries: make([]LocationEntry, len(entries)),
		byID:    make(map[string]LocationEntry, len(entries)),
	}
	copy(c.entries, entries)
	for _, e := range c.entries {
		if e.CanonicalID == "" {
			return nil, &LoadError{Reason: "entry missing canonical_id"}
		}
		if e.DisplayName == "" {
			return nil, &LoadError{Reason: "entry " + e.CanonicalID + " missing display_name"}
		}
		c.byID[e.CanonicalID] = e
	}
	return c, nil
}

// Load reads a JSON array of location entries.
func Load(r io.Reader) (*Catalog, error) {
	var entries []LocationEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, &LoadError{Reason: "invalid JSON", Err: err}
	}
	return New(entries)
}

// All returns every entry in load order. The slice is a copy; callers cannot
// mutate the catalog through it.
func (c *Catalog) All() []LocationEntry {
	result := make([]LocationEntry, len(c.entries))
	copy(result, c.entries)
	return result
}

// Get returns the entry for a canonical identifier.
func (c *Catalog) Get(canonicalID string) (LocationEntry, bool) {
	e, ok := c.byID[canonicalID]
	return e, ok
}

func (c *Catalog) Len() int { return len(c.entries) }
