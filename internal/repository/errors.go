package repository

import "errors"

// ErrNotFound is returned when a row does not exist or does not match the
// caller's ownership filter.
var ErrNotFound = errors.New("not found")
