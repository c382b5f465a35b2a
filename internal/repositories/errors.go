package repositories

import "errors"

// ErrNotFound is returned when an id does not resolve to a record. Callers
// surface it as a 404 and must not have written anything by the time it is
// returned.
var ErrNotFound = errors.New("record not found")
