package money

import "errors"

// Common money package errors
var (
	// ErrInvalidCurrency is returned when a code does not have the ISO 4217 shape.
	ErrInvalidCurrency = errors.New("invalid currency code")

	// ErrInvalidGrouping is returned for an unknown digit grouping name.
	ErrInvalidGrouping = errors.New("invalid numbering format")
)
