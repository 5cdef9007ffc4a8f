package repository

import "errors"

// ErrNotFound is returned when a lookup matches no row. Callers detect it
// with errors.Is; repositories wrap it with the entity kind and id.
var ErrNotFound = errors.New("not found")
