// Package videoid extracts YouTube video identifiers from arbitrary user-supplied text.
//
// Extraction is a Chain of named stages tried in priority order; the first stage to capture a raw candidate wins,
// and that candidate is then reduced to the video ID alphabet by Clean. Extraction is pure: no I/O and no state.
package videoid

import (
	"errors"
	"strings"
)

// ErrNotFound is the expected failure outcome of extraction: the input held no recognisable video ID.
var ErrNotFound = errors.New("no video ID found")

// VideoID is the canonical identifier YouTube assigns to a video. A non-empty VideoID only ever contains characters
// from [A-Za-z0-9_-].
type VideoID string

func (id VideoID) String() string {
	return string(id)
}

// Clean truncates candidate at the first '?' or '&', then drops every character outside [A-Za-z0-9_-]. Clean is
// idempotent, and the result may be empty.
func Clean(candidate string) VideoID {
	if i := strings.IndexAny(candidate, "?&"); i >= 0 {
		candidate = candidate[:i]
	}
	return VideoID(strings.Map(func(r rune) rune {
		if isIDRune(r) {
			return r
		}
		return -1
	}, candidate))
}

func isIDRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-'
}

// Extract runs s through DefaultChain. The error wraps ErrNotFound if no video ID could be extracted.
func Extract(s string) (VideoID, error) {
	return DefaultChain.Extract(s)
}

// IsValid reports whether Extract would succeed for s.
func IsValid(s string) bool {
	_, err := Extract(s)
	return err == nil
}
