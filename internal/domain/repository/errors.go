package repository

import "errors"

// ErrNotFound is returned by write operations whose target does not exist
var ErrNotFound = errors.New("record not found")
