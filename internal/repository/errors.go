package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist. Adapters
// wrap it with the entity name, e.g. "quest: not found".
var ErrNotFound = errors.New("not found")
