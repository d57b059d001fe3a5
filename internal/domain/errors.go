package domain

import "errors"

var (
	// ErrEntryNotFound is returned when no entry has the requested id
	ErrEntryNotFound = errors.New("entry not found")

	// ErrUnknownCategory is returned for category values outside the closed set
	ErrUnknownCategory = errors.New("unknown category")

	// ErrInvalidEntry is returned when an entry or its input fails validation
	ErrInvalidEntry = errors.New("invalid entry")

	// ErrInvalidGrowthRate is returned for NaN or infinite growth rates
	ErrInvalidGrowthRate = errors.New("invalid growth rate")
)
