package memory

import "errors"

// ErrNotFound is returned by point lookups when the entity does not exist
var ErrNotFound = errors.New("not found")
