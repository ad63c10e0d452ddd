package itinerary

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no destination matches a city.
	ErrNotFound = errors.New("destination not found")
	// ErrNoData is returned by Load when the data file does not exist.
	ErrNoData = errors.New("no saved itinerary found")
	// ErrCorrupt marks a data file that is not a valid destination list.
	ErrCorrupt = errors.New("itinerary file is corrupted")

	ErrInvalidMode    = errors.New("invalid search type: choose city, country, or activity")
	ErrInvalidSortKey = errors.New("invalid sort key: options are start_date or budget")
)

// CoercionError reports a raw request value that could not be converted.
type CoercionError struct {
	Field string
	Value any
	Err   error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("invalid input for %s: %v", e.Field, e.Value)
}

func (e *CoercionError) Unwrap() error { return e.Err }

// PersistenceError wraps a failed read or write of the data file.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
