// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as
// handlers to distinguish "no such row" from a failing store.
package repository

import "errors"

// ErrNotFound is returned when a lookup by primary key matches no row.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")
