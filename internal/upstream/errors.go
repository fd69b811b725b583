package upstream

import (
	"errors"
	"fmt"
)

// Kind classifies an upstream failure. The kind always reaches the caller
// unchanged; nothing downstream is allowed to mask it.
type Kind string

const (
	// KindTimeout: an attempt (or the whole retry budget) ran out of time.
	KindTimeout Kind = "timeout"
	// KindUnreachable: network-level failure before an HTTP response.
	KindUnreachable Kind = "unreachable"
	// KindUpstreamRejected: the CWA API answered with a non-2xx status.
	KindUpstreamRejected Kind = "upstream_rejected"
	// KindMalformedResponse: 2xx body that failed to parse into a forecast.
	KindMalformedResponse Kind = "malformed_response"
)

// Error is the typed failure returned by Client.Fetch.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("upstream %s: %s", e.Kind, e.Detail)
	}
	if e.Err != nil {
		return fmt.Sprintf("upstream %s: %v", e.Kind, e.Err)
	}
	return "upstream " + string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// AsError extracts the typed upstream error from an error chain.
func AsError(err error) (*Error, bool) {
	var ue *Error
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}
