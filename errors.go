package pacing

import "errors"

// Configuration errors abort a run before any period is simulated.
var (
	// ErrInvalidMagnitude reports a monetary input that cannot be
	// normalized: a negative commitment, a malformed decimal, or a value
	// out of the representable range.
	ErrInvalidMagnitude = errors.New("invalid magnitude")

	// ErrInvalidTimeline reports a timeline whose end precedes its start,
	// or a zero timeline.
	ErrInvalidTimeline = errors.New("invalid timeline")

	// ErrInvalidConfiguration reports any other fail-fast configuration
	// problem: a zero pacing window, a cap fraction outside [0,1], a
	// duplicate cohort name, a negative weight.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrUnsupportedReservePolicy reports a reserve policy the engine does
	// not implement. static_pct is the only supported policy; others are a
	// declared extension point.
	ErrUnsupportedReservePolicy = errors.New("unsupported reserve policy")
)

// ErrInvariantViolation is fatal and always a defect in the engine, never a
// business exception: conservation-of-capital mismatch, negative allocable
// reaching the distributor, or cap enforcement over-allocating. It is never
// silently repaired.
var ErrInvariantViolation = errors.New("invariant violation")
