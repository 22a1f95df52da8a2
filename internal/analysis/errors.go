package analysis

import "errors"

var (
	// ErrEntityNotFound means no row has the requested entity key. Selection
	// options sourced from Dataset.Entities never produce it.
	ErrEntityNotFound = errors.New("entity not found")
	// ErrInvalidSelection means an empty, unknown or repeated measure name was passed.
	ErrInvalidSelection = errors.New("invalid measure selection")
)
