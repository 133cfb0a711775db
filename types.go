package throttle

import "time"

// Decision defines a public type used by throttle APIs.
//
// Decision instances are computed fresh per evaluation and never persisted; they carry
// everything a caller needs to translate the outcome into response metadata.
type Decision struct {
	// Allowed reports whether the request is within the limit. A count exactly at the
	// limit is the last permitted request.
	Allowed bool

	// Count is the number of hits observed for the key in the current window,
	// including this one.
	Count int64

	// Limit is the configured maximum for the window, echoed for header writing.
	Limit int64

	// Remaining is max(0, Limit-Count).
	Remaining int64

	// ResetSeconds is the number of whole seconds until the current window expires.
	// Never negative; clamped to the window length when the store reports no TTL.
	// On rejection this doubles as the retry-after value.
	ResetSeconds int64

	// Message is the configured rejection message, carried through unchanged.
	Message string
}

// Policy defines a public type used by throttle APIs.
//
// Policy instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Policy struct {
	Max     int64
	Window  time.Duration
	Message string
}

// Valid reports whether the policy carries positive limits.
func (p Policy) Valid() bool {
	return p.Max > 0 && p.Window > 0
}
