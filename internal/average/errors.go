package average

import (
	"errors"
	"fmt"
)

// ErrNoListings is returned by Compute when no listing survived filtering.
// This is the most common user-facing failure and callers are expected to
// present it as a plain message rather than a fault.
var ErrNoListings = errors.New("no listings matching the search parameters were found")

// ErrZeroPrice is returned when the harmonic mean is requested over a price
// list containing zero. The input was non-empty but mathematically invalid
// for the chosen statistic, so it is kept distinct from ErrNoListings.
var ErrZeroPrice = errors.New("harmonic mean is undefined for zero-platinum listings")

// StatisticError reports a statistic name or value outside the supported set.
type StatisticError struct {
	Name string
}

func (e *StatisticError) Error() string {
	return fmt.Sprintf("not a valid statistic type: %q", e.Name)
}

// FieldError reports an order that lacks a field the item's classification
// requires, e.g. no mod_rank on a listing for a mod. This indicates broken
// marketplace data and always propagates instead of being coerced.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("order is missing required field %q", e.Field)
}
