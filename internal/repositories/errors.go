package repositories

import "github.com/pkg/errors"

// ErrNotFound is returned when a scoped read, update or delete matches no
// row. Callers must treat it as a distinct not-found condition instead of
// assuming the operation succeeded.
var ErrNotFound = errors.New("record not found")
