package recommend

import "errors"

var (
	// ErrInvalidRequest marks input that can never produce a recommendation.
	ErrInvalidRequest = errors.New("invalid recommendation request")
	// ErrInventoryLookup wraps any failure to read room types or availability.
	ErrInventoryLookup = errors.New("inventory lookup failed")
)
