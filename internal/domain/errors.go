package domain

import "errors"

// ErrNotFound means the trip or activity does not exist. Repos return it
// from pgx.ErrNoRows and zero-row updates; handlers answer 404.
var ErrNotFound = errors.New("not found")

// ErrValidation marks input rejected before any I/O: a bad activity shape,
// an unknown category, or a place search the provider would refuse.
// Wrap it with a detail, e.g. fmt.Errorf("%w: place name is required", ErrValidation).
var ErrValidation = errors.New("validation error")
