package model

// LookupStatus discriminates the outcome of one lookup request. Exactly one
// of the optional LookupResult fields is populated for each status.
type LookupStatus string

const (
	StatusResolved  LookupStatus = "resolved"
	StatusNoMatch   LookupStatus = "no_match"
	StatusAmbiguous LookupStatus = "ambiguous"
	StatusFailed    LookupStatus = "fetch_failed"
)

// Candidate is one fuzzy-match candidate surfaced to the caller for
// disambiguation.
type Candidate struct {
	Station     string  `json:"station"`
	DisplayName string  `json:"display_name"`
	Score       float64 `json:"score"`
}

// FailureInfo carries an upstream failure to the caller with its kind intact.
type FailureInfo struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail,omitempty"`
}

// LookupResult is the discriminated outcome of a lookup: a forecast, a
// disambiguation list, a no-match, or a typed upstream failure.
type LookupResult struct {
	Status     LookupStatus `json:"status"`
	Station    string       `json:"station,omitempty"`
	Score      float64      `json:"score,omitempty"`
	Candidates []Candidate  `json:"candidates,omitempty"`
	Forecast   *Forecast    `json:"forecast,omitempty"`
	Failure    *FailureInfo `json:"failure,omitempty"`
}
