package repository

import "errors"

// Sentinel kinds for persistence errors.
var (
	ErrNotFound     = errors.New("race not found")
	ErrInvalidLimit = errors.New("invalid list limit")
)
