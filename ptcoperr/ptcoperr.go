// Package ptcoperr collects the sentinel errors that distinguish the
// sampler's construction-time configuration failures from one another.
// Callers compare against these with errors.Is rather than parsing error
// strings or switching on a bespoke error code.
package ptcoperr

import "errors"

var (
	// ErrInvalidChainCount is returned when the requested ensemble size K < 1.
	ErrInvalidChainCount = errors.New("invalid chain count")

	// ErrEmptyDataset is returned when the observation dataset has N < 1,
	// or when titre and infected have mismatched lengths.
	ErrEmptyDataset = errors.New("empty or malformed dataset")

	// ErrInvalidPriorSD is returned when a prior standard deviation is <= 0.
	ErrInvalidPriorSD = errors.New("invalid prior standard deviation")

	// ErrInvalidBetaShape is returned when a Beta prior's shape parameters
	// are <= 0.
	ErrInvalidBetaShape = errors.New("invalid Beta prior shape parameter")

	// ErrInvalidLadder is returned when the ladder or proposal configuration
	// itself is malformed (e.g. MaxTemperature <= 1 with more than one chain,
	// a non-positive cadence, or inverted step bounds).
	ErrInvalidLadder = errors.New("invalid temperature ladder configuration")
)
